// Package repomanager opens the configured store and vends its
// repositories.
package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/todoapi/internal/server/config"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/todos"
	"github.com/dmitrijs2005/todoapi/internal/server/repositories/users"
)

// RepositoryManager owns a store connection and the repositories bound
// to it.
type RepositoryManager interface {
	Users() users.Repository
	Todos() todos.Repository
	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Open connects to the store selected by cfg.StoreKind and prepares its
// schema (indexes or migrations).
func Open(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {
	switch cfg.StoreKind {
	case config.StoreMemory:
		return NewMemoryRepositoryManager(), nil
	case config.StoreMongo:
		return OpenMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.StorePostgres:
		return OpenPostgres(ctx, cfg.DatabaseDSN)
	case config.StoreFirestore:
		return OpenFirestore(ctx, cfg.FirestoreProjectID)
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.StoreKind)
	}
}
