package repomanager

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/dmitrijs2005/accountkeeper/internal/config"
	"github.com/dmitrijs2005/accountkeeper/internal/repositories/sessions"
	"github.com/dmitrijs2005/accountkeeper/internal/repositories/users"
)

type MongoRepositoryManager struct {
	client       *mongo.Client
	usersColl    *mongo.Collection
	sessionsColl *mongo.Collection
	users        users.Repository
	sessions     sessions.Repository
}

func (m *MongoRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *MongoRepositoryManager) Sessions() sessions.Repository {
	return m.sessions
}

func (m *MongoRepositoryManager) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoRepositoryManager) EnsureIndexes(ctx context.Context) error {
	_, err := m.usersColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users index error: %w", err)
	}

	_, err = m.sessionsColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "jwt", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("sessions index error: %w", err)
	}

	return nil
}

// NewMongoRepositoryManager connects to the MongoDB deployment described by
// cfg and builds the repositories over shared, immutable collection handles.
// The users collection carries a majority write concern: a lost registration
// is a correctness failure, so inserts must survive a primary failover
// before they are acknowledged.
func NewMongoRepositoryManager(ctx context.Context, cfg *config.Config) (RepositoryManager, error) {

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("store connect error: %w", err)
	}

	db := client.Database(cfg.Database)

	usersColl := db.Collection(cfg.UsersCollection,
		options.Collection().SetWriteConcern(writeconcern.Majority()))
	sessionsColl := db.Collection(cfg.SessionsCollection)

	m := &MongoRepositoryManager{
		client:       client,
		usersColl:    usersColl,
		sessionsColl: sessionsColl,
		users:        users.NewMongoRepository(usersColl),
		sessions:     sessions.NewMongoRepository(sessionsColl),
	}

	if err := m.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return m, nil
}
