// Package services contains the caller-facing operations of the data-access
// layer. UserService is the surface an API layer consumes: account CRUD,
// preference updates, and session issuance/lookup/revocation.
package services

import (
	"context"

	"github.com/dmitrijs2005/accountkeeper/internal/logging"
	"github.com/dmitrijs2005/accountkeeper/internal/models"
	"github.com/dmitrijs2005/accountkeeper/internal/repositories/repomanager"
)

// UserService orchestrates the user and session repositories. It holds no
// mutable state of its own; every method is a single synchronous
// request/response against the store and is safe for concurrent use.
//
// The user identifier of a session equals the account email, matching the
// stored user_id back-reference.
type UserService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

// NewUserService constructs a UserService over the given store binding.
func NewUserService(m repomanager.RepositoryManager, logger logging.Logger) *UserService {
	return &UserService{repomanager: m, logger: logger}
}

// AddUser inserts a new user record. An already registered email yields
// common.ErrorDuplicateAccount.
func (s *UserService) AddUser(ctx context.Context, user *models.User) error {
	if err := s.repomanager.Users().Create(ctx, user); err != nil {
		s.logger.Error(ctx, "add user failed", "error", err)
		return err
	}
	return nil
}

// GetUser looks up the user matching email; absence yields
// common.ErrorUserNotFound.
func (s *UserService) GetUser(ctx context.Context, email string) (*models.User, error) {
	return s.repomanager.Users().GetByEmail(ctx, email)
}

// UpdateUserPreferences replaces the stored preferences of the user matching
// email. Nil preferences yield common.ErrorInvalidInput; a missing user
// yields common.ErrorUserNotFound.
func (s *UserService) UpdateUserPreferences(ctx context.Context, email string, preferences map[string]any) error {
	if err := s.repomanager.Users().UpdatePreferences(ctx, email, preferences); err != nil {
		s.logger.Error(ctx, "update preferences failed", "email", email, "error", err)
		return err
	}
	return nil
}

// DeleteUser removes the user matching email together with the user's
// sessions. Sessions are deleted first: a crash mid-operation may leave an
// orphaned user, but never a session pointing at a deleted account.
func (s *UserService) DeleteUser(ctx context.Context, email string) error {
	if err := s.repomanager.Sessions().DeleteByUserID(ctx, email); err != nil {
		s.logger.Error(ctx, "delete user sessions failed", "email", email, "error", err)
		return err
	}
	if err := s.repomanager.Users().Delete(ctx, email); err != nil {
		s.logger.Error(ctx, "delete user failed", "email", email, "error", err)
		return err
	}
	return nil
}

// CreateUserSession upserts Session{userID, jwt} keyed by userID, replacing
// any prior session for that user. A jwt already held by a different user's
// session yields common.ErrorDuplicateToken.
func (s *UserService) CreateUserSession(ctx context.Context, userID string, jwt string) error {
	if err := s.repomanager.Sessions().Upsert(ctx, userID, jwt); err != nil {
		s.logger.Error(ctx, "create session failed", "user_id", userID, "error", err)
		return err
	}
	return nil
}

// GetUserSession returns the session for userID; absence yields
// common.ErrorSessionNotFound.
func (s *UserService) GetUserSession(ctx context.Context, userID string) (*models.Session, error) {
	return s.repomanager.Sessions().GetByUserID(ctx, userID)
}

// DeleteUserSessions removes the session(s) for userID. Always succeeds when
// the store is reachable, whether or not a session existed.
func (s *UserService) DeleteUserSessions(ctx context.Context, userID string) error {
	if err := s.repomanager.Sessions().DeleteByUserID(ctx, userID); err != nil {
		s.logger.Error(ctx, "delete sessions failed", "user_id", userID, "error", err)
		return err
	}
	return nil
}
