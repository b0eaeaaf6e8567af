// Package users declares the repository contract for persisting user
// account records.
package users

import (
	"context"

	"github.com/dmitrijs2005/accountkeeper/internal/models"
)

// Repository defines CRUD and query operations over user records.
//
// Absence of a record is reported with common.ErrorUserNotFound, matched via
// errors.Is; implementations never treat a zero-effect write as success.
type Repository interface {
	// Create inserts a new user. The write must be acknowledged durably
	// enough to survive a primary failure before Create returns nil.
	// A user with the same email already present yields
	// common.ErrorDuplicateAccount.
	Create(ctx context.Context, user *models.User) error

	// GetByEmail looks up the user matching email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// UpdatePreferences replaces (not merges) the stored preferences of the
	// user matching email. A nil preferences value is rejected with
	// common.ErrorInvalidInput before any store call.
	UpdatePreferences(ctx context.Context, email string, preferences map[string]any) error

	// Delete removes the user matching email. Callers are responsible for
	// deleting the user's sessions first.
	Delete(ctx context.Context, email string) error
}
