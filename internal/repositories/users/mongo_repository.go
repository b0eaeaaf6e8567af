package users

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/models"
)

// MongoRepository persists users in a MongoDB collection. The collection
// handle is expected to carry a majority write concern (the repomanager
// configures it that way) so acknowledged inserts survive a primary failure.
type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(coll *mongo.Collection) *MongoRepository {
	return &MongoRepository{coll: coll}
}

// userToDoc is the storage shape of a user record: {email, name, password,
// preferences}. Kept explicit so schema changes are visible in review.
func userToDoc(u *models.User) bson.D {
	return bson.D{
		{Key: "email", Value: u.Email},
		{Key: "name", Value: u.Name},
		{Key: "password", Value: u.Password},
		{Key: "preferences", Value: u.Preferences},
	}
}

func userFromDoc(doc bson.M) *models.User {
	u := &models.User{}
	if v, ok := doc["email"].(string); ok {
		u.Email = v
	}
	if v, ok := doc["name"].(string); ok {
		u.Name = v
	}
	if v, ok := doc["password"].(string); ok {
		u.Password = v
	}
	switch v := doc["preferences"].(type) {
	case bson.M:
		u.Preferences = map[string]any(v)
	case bson.D:
		u.Preferences = v.Map()
	}
	return u
}

func storeError(err error) error {
	return fmt.Errorf("%w: %v", common.ErrorStoreUnavailable, err)
}

func (r *MongoRepository) Create(ctx context.Context, user *models.User) error {
	if user == nil || user.Email == "" {
		return fmt.Errorf("%w: user email is required", common.ErrorInvalidInput)
	}

	if _, err := r.coll.InsertOne(ctx, userToDoc(user)); err != nil {
		// the unique index on email is the source of truth for duplicates
		if mongo.IsDuplicateKeyError(err) {
			return common.ErrorDuplicateAccount
		}
		return storeError(err)
	}

	return nil
}

func (r *MongoRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", common.ErrorInvalidInput)
	}

	var doc bson.M
	err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.ErrorUserNotFound
		}
		return nil, storeError(err)
	}

	return userFromDoc(doc), nil
}

func (r *MongoRepository) UpdatePreferences(ctx context.Context, email string, preferences map[string]any) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", common.ErrorInvalidInput)
	}
	if preferences == nil {
		return fmt.Errorf("%w: preferences cannot be null", common.ErrorInvalidInput)
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "$set", Value: bson.D{{Key: "preferences", Value: preferences}}}},
	)
	if err != nil {
		return storeError(err)
	}
	if res.MatchedCount == 0 {
		return common.ErrorUserNotFound
	}

	return nil
}

func (r *MongoRepository) Delete(ctx context.Context, email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", common.ErrorInvalidInput)
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "email", Value: email}})
	if err != nil {
		return storeError(err)
	}
	if res.DeletedCount == 0 {
		return common.ErrorUserNotFound
	}

	return nil
}
