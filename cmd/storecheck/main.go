// Command storecheck runs a smoke test against the configured record store:
// it connects, ensures indexes, and drives one full probe cycle through the
// user and session operations using a throwaway account.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/config"
	"github.com/dmitrijs2005/accountkeeper/internal/logging"
	"github.com/dmitrijs2005/accountkeeper/internal/models"
	"github.com/dmitrijs2005/accountkeeper/internal/repositories/repomanager"
	"github.com/dmitrijs2005/accountkeeper/internal/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "storecheck failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// optional .env next to the binary; real env vars win
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.OperationTimeout)
	defer cancel()

	logger.Info(ctx, "connecting to store", "uri", cfg.MongoURI, "db", cfg.Database)

	m, err := repomanager.NewMongoRepositoryManager(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = m.Close(context.Background()) }()

	if err := m.Ping(ctx); err != nil {
		return fmt.Errorf("store ping error: %w", err)
	}
	logger.Info(ctx, "store reachable")

	return probe(ctx, services.NewUserService(m, logger), logger)
}

// probe exercises every repository operation once with a throwaway account
// and verifies the expected outcomes.
func probe(ctx context.Context, svc *services.UserService, logger logging.Logger) error {
	email := fmt.Sprintf("probe-%s@storecheck.local", uuid.NewString())

	token1, err := common.MakeRandHexString(16)
	if err != nil {
		return err
	}
	token2, err := common.MakeRandHexString(16)
	if err != nil {
		return err
	}

	user := &models.User{
		Email:       email,
		Name:        "storecheck probe",
		Password:    fmt.Sprintf("%x", common.GenerateRandByteArray(24)), // opaque placeholder credential
		Preferences: map[string]any{"probe": true},
	}

	if err := svc.AddUser(ctx, user); err != nil {
		return fmt.Errorf("add user: %w", err)
	}
	logger.Info(ctx, "probe user created", "email", email)

	if err := svc.AddUser(ctx, user); !errors.Is(err, common.ErrorDuplicateAccount) {
		return fmt.Errorf("duplicate insert: want ErrorDuplicateAccount, got %v", err)
	}

	if _, err := svc.GetUser(ctx, email); err != nil {
		return fmt.Errorf("get user: %w", err)
	}

	if err := svc.UpdateUserPreferences(ctx, email, map[string]any{"probe": true, "round": 2}); err != nil {
		return fmt.Errorf("update preferences: %w", err)
	}

	if err := svc.CreateUserSession(ctx, email, token1); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if err := svc.CreateUserSession(ctx, email, token2); err != nil {
		return fmt.Errorf("replace session: %w", err)
	}

	sess, err := svc.GetUserSession(ctx, email)
	if err != nil {
		return fmt.Errorf("get session: %w", err)
	}
	if sess.JWT != token2 {
		return fmt.Errorf("session upsert: want latest token, got stale one")
	}
	logger.Info(ctx, "probe session verified", "user_id", sess.UserID)

	if err := svc.DeleteUser(ctx, email); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if _, err := svc.GetUser(ctx, email); !errors.Is(err, common.ErrorUserNotFound) {
		return fmt.Errorf("post-delete get user: want ErrorUserNotFound, got %v", err)
	}
	if _, err := svc.GetUserSession(ctx, email); !errors.Is(err, common.ErrorSessionNotFound) {
		return fmt.Errorf("post-delete get session: want ErrorSessionNotFound, got %v", err)
	}

	logger.Info(ctx, "storecheck passed", "email", email)
	return nil
}
