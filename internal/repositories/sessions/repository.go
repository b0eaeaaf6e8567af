// Package sessions declares the repository contract for persisting
// authenticated session records keyed by user identifier.
package sessions

import (
	"context"

	"github.com/dmitrijs2005/accountkeeper/internal/models"
)

// Repository defines create/read/delete operations over session records.
type Repository interface {
	// Upsert stores Session{userID, jwt}, replacing any prior session for
	// that user. A jwt already attached to a different user's session yields
	// common.ErrorDuplicateToken; the check runs before the write and a
	// unique index backs it up against concurrent racers.
	Upsert(ctx context.Context, userID string, jwt string) error

	// GetByUserID returns the session for userID, or
	// common.ErrorSessionNotFound when absent.
	GetByUserID(ctx context.Context, userID string) (*models.Session, error)

	// DeleteByUserID removes the session(s) associated with userID.
	// Idempotent: deleting a non-existent session is not an error.
	DeleteByUserID(ctx context.Context, userID string) error
}
