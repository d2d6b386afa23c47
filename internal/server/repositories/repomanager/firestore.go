package repomanager

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/users"
	"google.golang.org/api/iterator"
)

// FirestoreRepositoryManager vends Firestore-backed repositories. With
// FIRESTORE_EMULATOR_HOST set the client talks to the emulator.
type FirestoreRepositoryManager struct {
	client *firestore.Client
	users  *users.FirestoreRepository
	todos  *todos.FirestoreRepository
}

func OpenFirestore(ctx context.Context, projectID string) (*FirestoreRepositoryManager, error) {
	client, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}
	return NewFirestoreRepositoryManager(client), nil
}

func NewFirestoreRepositoryManager(client *firestore.Client) *FirestoreRepositoryManager {
	return &FirestoreRepositoryManager{
		client: client,
		users:  users.NewFirestoreRepository(client),
		todos:  todos.NewFirestoreRepository(client),
	}
}

func (m *FirestoreRepositoryManager) Users() users.Repository { return m.users }
func (m *FirestoreRepositoryManager) Todos() todos.Repository { return m.todos }

// Ping reads at most one user document.
func (m *FirestoreRepositoryManager) Ping(ctx context.Context) error {
	iter := m.client.Collection(users.CollectionName).Limit(1).Documents(ctx)
	defer iter.Stop()

	if _, err := iter.Next(); err != nil && !errors.Is(err, iterator.Done) {
		return fmt.Errorf("firestore ping: %w", err)
	}
	return nil
}

func (m *FirestoreRepositoryManager) Close(context.Context) error {
	return m.client.Close()
}
