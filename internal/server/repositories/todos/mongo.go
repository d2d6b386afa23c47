package todos

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the Mongo collection holding todo documents.
const CollectionName = "todos"

type todoDocument struct {
	ID          primitive.ObjectID  `bson:"_id"`
	Text        string              `bson:"text"`
	Completed   bool                `bson:"completed"`
	CompletedAt *int64              `bson:"completedAt"`
	Creator     *primitive.ObjectID `bson:"_creator,omitempty"`
}

func (d *todoDocument) toModel() *models.Todo {
	t := &models.Todo{ID: d.ID.Hex(), Text: d.Text, Completed: d.Completed, CompletedAt: d.CompletedAt}
	if d.Creator != nil {
		t.CreatorID = d.Creator.Hex()
	}
	return t
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

// scope builds the filter for one todo, or for all todos when id is empty.
func scope(id, creatorID string) (bson.D, error) {
	filter := bson.D{}
	if id != "" {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, common.ErrorNotFound
		}
		filter = append(filter, bson.E{Key: "_id", Value: oid})
	}
	if creatorID != "" {
		oid, err := primitive.ObjectIDFromHex(creatorID)
		if err != nil {
			return nil, common.ErrorNotFound
		}
		filter = append(filter, bson.E{Key: "_creator", Value: oid})
	}
	return filter, nil
}

func (r *MongoRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	if todo.ID == "" {
		todo.ID = models.NewID()
	}
	oid, err := primitive.ObjectIDFromHex(todo.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid todo id: %w", err)
	}

	doc := todoDocument{ID: oid, Text: todo.Text, Completed: todo.Completed, CompletedAt: todo.CompletedAt}
	if todo.CreatorID != "" {
		creator, err := primitive.ObjectIDFromHex(todo.CreatorID)
		if err != nil {
			return nil, fmt.Errorf("invalid creator id: %w", err)
		}
		doc.Creator = &creator
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return todo, nil
}

func (r *MongoRepository) List(ctx context.Context, creatorID string) ([]models.Todo, error) {
	filter, err := scope("", creatorID)
	if err != nil {
		return []models.Todo{}, nil
	}

	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	var docs []todoDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	out := make([]models.Todo, 0, len(docs))
	for i := range docs {
		out = append(out, *docs[i].toModel())
	}
	return out, nil
}

func decodeOne(res *mongo.SingleResult) (*models.Todo, error) {
	var doc todoDocument
	if err := res.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return doc.toModel(), nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id, creatorID string) (*models.Todo, error) {
	filter, err := scope(id, creatorID)
	if err != nil {
		return nil, err
	}
	return decodeOne(r.coll.FindOne(ctx, filter))
}

func (r *MongoRepository) Update(ctx context.Context, id, creatorID string, patch models.TodoPatch) (*models.Todo, error) {
	filter, err := scope(id, creatorID)
	if err != nil {
		return nil, err
	}

	set := bson.D{
		{Key: "completed", Value: patch.Completed},
		{Key: "completedAt", Value: patch.CompletedAt},
	}
	if patch.Text != nil {
		set = append(set, bson.E{Key: "text", Value: *patch.Text})
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	return decodeOne(r.coll.FindOneAndUpdate(ctx, filter, bson.D{{Key: "$set", Value: set}}, opts))
}

func (r *MongoRepository) Delete(ctx context.Context, id, creatorID string) (*models.Todo, error) {
	filter, err := scope(id, creatorID)
	if err != nil {
		return nil, err
	}
	return decodeOne(r.coll.FindOneAndDelete(ctx, filter))
}
