package todos

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"cloud.google.com/go/firestore"
	"github.com/dmitrijs2005/todoapi/internal/common"
	"github.com/dmitrijs2005/todoapi/internal/server/models"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type firestoreTodo struct {
	Text        string `firestore:"text"`
	Completed   bool   `firestore:"completed"`
	CompletedAt *int64 `firestore:"completedAt"`
	Creator     string `firestore:"_creator,omitempty"`
}

func fromSnapshot(snap *firestore.DocumentSnapshot) (*models.Todo, error) {
	var doc firestoreTodo
	if err := snap.DataTo(&doc); err != nil {
		return nil, err
	}
	return &models.Todo{
		ID:          snap.Ref.ID,
		Text:        doc.Text,
		Completed:   doc.Completed,
		CompletedAt: doc.CompletedAt,
		CreatorID:   doc.Creator,
	}, nil
}

// FirestoreRepository stores todos keyed by their id. Scoped writes run in a
// transaction so the ownership check and the write see the same document.
type FirestoreRepository struct {
	client *firestore.Client
}

func NewFirestoreRepository(client *firestore.Client) *FirestoreRepository {
	return &FirestoreRepository{client: client}
}

func (r *FirestoreRepository) todos() *firestore.CollectionRef {
	return r.client.Collection(CollectionName)
}

func (r *FirestoreRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	if todo.ID == "" {
		todo.ID = models.NewID()
	}

	doc := firestoreTodo{Text: todo.Text, Completed: todo.Completed, CompletedAt: todo.CompletedAt, Creator: todo.CreatorID}
	if _, err := r.todos().Doc(todo.ID).Create(ctx, doc); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return todo, nil
}

func (r *FirestoreRepository) List(ctx context.Context, creatorID string) ([]models.Todo, error) {
	q := r.todos().Query
	if creatorID != "" {
		q = q.Where("_creator", "==", creatorID)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	out := []models.Todo{}
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		t, err := fromSnapshot(snap)
		if err != nil {
			return nil, wrap(err)
		}
		out = append(out, *t)
	}

	// ids are object ids, so their order is creation order
	slices.SortFunc(out, func(a, b models.Todo) int { return strings.Compare(a.ID, b.ID) })
	return out, nil
}

// get turns a document read into a scoped todo. Errors other than
// common.ErrorNotFound are returned unwrapped.
func (r *FirestoreRepository) get(snap *firestore.DocumentSnapshot, err error, creatorID string) (*models.Todo, error) {
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, common.ErrorNotFound
		}
		return nil, err
	}
	t, err := fromSnapshot(snap)
	if err != nil {
		return nil, err
	}
	if creatorID != "" && t.CreatorID != creatorID {
		return nil, common.ErrorNotFound
	}
	return t, nil
}

func (r *FirestoreRepository) GetByID(ctx context.Context, id, creatorID string) (*models.Todo, error) {
	snap, err := r.todos().Doc(id).Get(ctx)
	t, err := r.get(snap, err, creatorID)
	if err != nil {
		return nil, wrap(err)
	}
	return t, nil
}

func (r *FirestoreRepository) Update(ctx context.Context, id, creatorID string, patch models.TodoPatch) (*models.Todo, error) {
	var out *models.Todo

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := r.todos().Doc(id)
		snap, err := tx.Get(ref)
		t, err := r.get(snap, err, creatorID)
		if err != nil {
			return err
		}

		updates := []firestore.Update{
			{Path: "completed", Value: patch.Completed},
			{Path: "completedAt", Value: patch.CompletedAt},
		}
		if patch.Text != nil {
			updates = append(updates, firestore.Update{Path: "text", Value: *patch.Text})
		}
		if err := tx.Update(ref, updates); err != nil {
			return err
		}

		patch.Apply(t)
		out = t
		return nil
	})
	if err != nil {
		return nil, wrap(err)
	}
	return out, nil
}

func (r *FirestoreRepository) Delete(ctx context.Context, id, creatorID string) (*models.Todo, error) {
	var out *models.Todo

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		ref := r.todos().Doc(id)
		snap, err := tx.Get(ref)
		t, err := r.get(snap, err, creatorID)
		if err != nil {
			return err
		}
		if err := tx.Delete(ref); err != nil {
			return err
		}
		out = t
		return nil
	})
	if err != nil {
		return nil, wrap(err)
	}
	return out, nil
}

func wrap(err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return fmt.Errorf("db error: %w", err)
}
