// Package repomanager binds the underlying record store to the entity
// repositories. The manager owns the shared store handles; they are
// established once at startup and safe for concurrent use because every
// mutation is delegated to the store's atomic single-document operations.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/accountkeeper/internal/repositories/sessions"
	"github.com/dmitrijs2005/accountkeeper/internal/repositories/users"
)

type RepositoryManager interface {
	// Ping verifies the store is reachable.
	Ping(ctx context.Context) error

	// EnsureIndexes creates the uniqueness indexes the repositories rely on
	// (users.email; sessions.user_id; sessions.jwt). Idempotent.
	EnsureIndexes(ctx context.Context) error

	Users() users.Repository
	Sessions() sessions.Repository

	// Close releases the store connection.
	Close(ctx context.Context) error
}
