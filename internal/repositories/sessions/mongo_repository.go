package sessions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/models"
)

// MongoRepository persists sessions in a MongoDB collection. Writes go
// through atomic single-document upserts keyed by user_id, so concurrent
// logins for the same user resolve to last-write-wins with exactly one
// surviving session.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

// sessionToDoc is the storage shape of a session record: {user_id, jwt}.
func sessionToDoc(s *models.Session) bson.D {
	return bson.D{
		{Key: "user_id", Value: s.UserID},
		{Key: "jwt", Value: s.JWT},
	}
}

func sessionFromDoc(doc bson.M) *models.Session {
	s := &models.Session{}
	if v, ok := doc["user_id"].(string); ok {
		s.UserID = v
	}
	if v, ok := doc["jwt"].(string); ok {
		s.JWT = v
	}
	return s
}

func storeError(err error) error {
	return fmt.Errorf("%w: %v", common.ErrorStoreUnavailable, err)
}

// isTokenIndexConflict reports whether a duplicate-key error came from the
// unique jwt index. The sessions collection also carries a unique user_id
// index, and two upserts for the same user can race its insert path; that
// conflict is not a token reuse and must not surface as one.
func isTokenIndexConflict(err error) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if strings.Contains(e.Message, "jwt") {
				return true
			}
		}
	}
	return false
}

func (r *MongoRepository) Upsert(ctx context.Context, userID string, jwt string) error {
	if userID == "" || jwt == "" {
		return fmt.Errorf("%w: user id and jwt are required", common.ErrorInvalidInput)
	}

	// refuse to attach a token that another user's session already holds;
	// the unique index on jwt catches racers that slip past this check
	err := r.coll.FindOne(ctx, bson.D{
		{Key: "jwt", Value: jwt},
		{Key: "user_id", Value: bson.D{{Key: "$ne", Value: userID}}},
	}).Err()
	switch {
	case err == nil:
		return common.ErrorDuplicateToken
	case !errors.Is(err, mongo.ErrNoDocuments):
		return storeError(err)
	}

	session := &models.Session{UserID: userID, JWT: jwt}
	filter := bson.D{{Key: "user_id", Value: userID}}
	update := bson.D{{Key: "$set", Value: sessionToDoc(session)}}

	_, err = r.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil && mongo.IsDuplicateKeyError(err) && !isTokenIndexConflict(err) {
		// a concurrent upsert for the same user won the insert; the session
		// document exists now, so a plain update resolves to last-write-wins
		_, err = r.coll.UpdateOne(ctx, filter, update)
	}
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return common.ErrorDuplicateToken
		}
		return storeError(err)
	}

	return nil
}

func (r *MongoRepository) GetByUserID(ctx context.Context, userID string) (*models.Session, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", common.ErrorInvalidInput)
	}

	var doc bson.M
	err := r.coll.FindOne(ctx, bson.D{{Key: "user_id", Value: userID}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorSessionNotFound
		}
		return nil, storeError(err)
	}

	return sessionFromDoc(doc), nil
}

func (r *MongoRepository) DeleteByUserID(ctx context.Context, userID string) error {
	if userID == "" {
		return fmt.Errorf("%w: user id is required", common.ErrorInvalidInput)
	}

	// zero deletions is fine: absence of a session is a valid terminal state
	if _, err := r.coll.DeleteMany(ctx, bson.D{{Key: "user_id", Value: userID}}); err != nil {
		return storeError(err)
	}

	return nil
}
