package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/todoapi/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/users"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoRepositoryManager vends Mongo-backed repositories sharing one client.
type MongoRepositoryManager struct {
	client *mongo.Client
	db     *mongo.Database
	users  *users.MongoRepository
	todos  *todos.MongoRepository
}

// OpenMongo connects to uri, verifies the connection and ensures indexes.
func OpenMongo(ctx context.Context, uri, database string) (*MongoRepositoryManager, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	m := NewMongoRepositoryManager(client, database)

	if err := m.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	if err := m.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return m, nil
}

func NewMongoRepositoryManager(client *mongo.Client, database string) *MongoRepositoryManager {
	db := client.Database(database)
	return &MongoRepositoryManager{
		client: client,
		db:     db,
		users:  users.NewMongoRepository(db),
		todos:  todos.NewMongoRepository(db),
	}
}

// EnsureIndexes creates the unique email index and the todo creator index.
// Creating an existing index is a no-op on the server.
func (m *MongoRepositoryManager) EnsureIndexes(ctx context.Context) error {
	_, err := m.db.Collection(users.CollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create users index: %w", err)
	}

	_, err = m.db.Collection(todos.CollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "_creator", Value: 1}},
		Options: options.Index().SetName("creator"),
	})
	if err != nil {
		return fmt.Errorf("create todos index: %w", err)
	}

	return nil
}

func (m *MongoRepositoryManager) Users() users.Repository { return m.users }
func (m *MongoRepositoryManager) Todos() todos.Repository { return m.todos }

func (m *MongoRepositoryManager) Ping(ctx context.Context) error {
	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo ping: %w", err)
	}
	return nil
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
