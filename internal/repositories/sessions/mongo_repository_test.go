package sessions

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
)

func ns(mt *mtest.T) string {
	return fmt.Sprintf("%s.%s", mt.DB.Name(), mt.Coll.Name())
}

func emptyCursor(mt *mtest.T) bson.D {
	return mtest.CreateCursorResponse(0, ns(mt), mtest.FirstBatch)
}

func TestMongoRepository_Upsert(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("creates when no session exists", func(mt *mtest.T) {
		mt.AddMockResponses(
			emptyCursor(mt), // duplicate-token pre-check finds nothing
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 1},
				bson.E{Key: "nModified", Value: 0},
				bson.E{Key: "upserted", Value: bson.A{
					bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: "a@x.com"}},
				}},
			),
		)

		repo := NewMongoRepository(mt.Coll)
		if err := repo.Upsert(context.Background(), "a@x.com", "tok1"); err != nil {
			mt.Fatalf("Upsert error: %v", err)
		}
	})

	mt.Run("replaces an existing session for the same user", func(mt *mtest.T) {
		mt.AddMockResponses(
			emptyCursor(mt),
			mtest.CreateSuccessResponse(
				bson.E{Key: "n", Value: 1},
				bson.E{Key: "nModified", Value: 1},
			),
		)

		repo := NewMongoRepository(mt.Coll)
		if err := repo.Upsert(context.Background(), "a@x.com", "tok2"); err != nil {
			mt.Fatalf("Upsert error: %v", err)
		}
	})

	mt.Run("jwt held by another user is rejected before the write", func(mt *mtest.T) {
		doc := bson.D{
			{Key: "user_id", Value: "b@x.com"},
			{Key: "jwt", Value: "tok1"},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns(mt), mtest.FirstBatch, doc))

		repo := NewMongoRepository(mt.Coll)
		err := repo.Upsert(context.Background(), "a@x.com", "tok1")
		if !errors.Is(err, common.ErrorDuplicateToken) {
			mt.Fatalf("want ErrorDuplicateToken, got %v", err)
		}
	})

	mt.Run("duplicate key from the jwt index maps to duplicate token", func(mt *mtest.T) {
		mt.AddMockResponses(
			emptyCursor(mt),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error collection: sessions index: jwt_1",
			}),
		)

		repo := NewMongoRepository(mt.Coll)
		err := repo.Upsert(context.Background(), "a@x.com", "tok1")
		if !errors.Is(err, common.ErrorDuplicateToken) {
			mt.Fatalf("want ErrorDuplicateToken, got %v", err)
		}
	})

	mt.Run("same-user race on the user_id index resolves to last write wins", func(mt *mtest.T) {
		mt.AddMockResponses(
			emptyCursor(mt), // the token is fresh
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error collection: sessions index: user_id_1",
			}),
			mtest.CreateSuccessResponse( // retry updates the winner's document
				bson.E{Key: "n", Value: 1},
				bson.E{Key: "nModified", Value: 1},
			),
		)

		repo := NewMongoRepository(mt.Coll)
		err := repo.Upsert(context.Background(), "a@x.com", "tok-fresh")
		if errors.Is(err, common.ErrorDuplicateToken) {
			mt.Fatalf("user_id conflict must not surface as duplicate token")
		}
		if err != nil {
			mt.Fatalf("Upsert error: %v", err)
		}
	})

	mt.Run("retry after user_id race can still hit the jwt index", func(mt *mtest.T) {
		mt.AddMockResponses(
			emptyCursor(mt),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error collection: sessions index: user_id_1",
			}),
			mtest.CreateWriteErrorsResponse(mtest.WriteError{
				Index:   0,
				Code:    11000,
				Message: "E11000 duplicate key error collection: sessions index: jwt_1",
			}),
		)

		repo := NewMongoRepository(mt.Coll)
		err := repo.Upsert(context.Background(), "a@x.com", "tok1")
		if !errors.Is(err, common.ErrorDuplicateToken) {
			mt.Fatalf("want ErrorDuplicateToken, got %v", err)
		}
	})

	mt.Run("empty inputs rejected before store call", func(mt *mtest.T) {
		repo := NewMongoRepository(mt.Coll)
		if err := repo.Upsert(context.Background(), "", "tok"); !errors.Is(err, common.ErrorInvalidInput) {
			mt.Fatalf("want ErrorInvalidInput for empty user id, got %v", err)
		}
		if err := repo.Upsert(context.Background(), "a@x.com", ""); !errors.Is(err, common.ErrorInvalidInput) {
			mt.Fatalf("want ErrorInvalidInput for empty jwt, got %v", err)
		}
	})
}

func TestMongoRepository_GetByUserID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		doc := bson.D{
			{Key: "user_id", Value: "a@x.com"},
			{Key: "jwt", Value: "tok1"},
		}
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns(mt), mtest.FirstBatch, doc))

		repo := NewMongoRepository(mt.Coll)
		got, err := repo.GetByUserID(context.Background(), "a@x.com")
		if err != nil {
			mt.Fatalf("GetByUserID error: %v", err)
		}
		if got.UserID != "a@x.com" || got.JWT != "tok1" {
			mt.Fatalf("unexpected session: %+v", got)
		}
	})

	mt.Run("absent maps to session not found", func(mt *mtest.T) {
		mt.AddMockResponses(emptyCursor(mt))

		repo := NewMongoRepository(mt.Coll)
		_, err := repo.GetByUserID(context.Background(), "ghost@x.com")
		if !errors.Is(err, common.ErrorSessionNotFound) {
			mt.Fatalf("want ErrorSessionNotFound, got %v", err)
		}
	})
}

func TestMongoRepository_DeleteByUserID(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("deletes existing sessions", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		repo := NewMongoRepository(mt.Coll)
		if err := repo.DeleteByUserID(context.Background(), "a@x.com"); err != nil {
			mt.Fatalf("DeleteByUserID error: %v", err)
		}
	})

	mt.Run("no session is still success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		repo := NewMongoRepository(mt.Coll)
		if err := repo.DeleteByUserID(context.Background(), "ghost@x.com"); err != nil {
			mt.Fatalf("expected idempotent success, got %v", err)
		}
	})

	mt.Run("store failure surfaces as store unavailable", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    91,
			Message: "shutdown in progress",
			Name:    "ShutdownInProgress",
		}))

		repo := NewMongoRepository(mt.Coll)
		err := repo.DeleteByUserID(context.Background(), "a@x.com")
		if !errors.Is(err, common.ErrorStoreUnavailable) {
			mt.Fatalf("want ErrorStoreUnavailable, got %v", err)
		}
	})
}
