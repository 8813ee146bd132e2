package database

import (
	"context"
	"fmt"
	"time"

	"github.com/eventboard/eventboard/internal/config"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	OrganizationsCollection = "organizations"
	EventsCollection        = "events"
)

// FieldFilter matches documents whose field equals value. Optional fields are stored
// absent when empty, so an empty value also matches a missing or null field, the same
// rows an empty-string comparison finds in Postgres.
func FieldFilter(field string, value string) bson.M {
	if value == "" {
		return bson.M{field: bson.M{"$in": bson.A{"", nil}}}
	}
	return bson.M{field: value}
}

// OpenMongo connects to MongoDB and returns the configured database handle.
func OpenMongo(ctx context.Context, cfg config.Mongo) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return client, client.Database(cfg.Database), nil
}

// EnsureMongoIndexes creates the indexes the repositories rely on. It is idempotent.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(OrganizationsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "orgName", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("orgName_unique"),
	})
	if err != nil {
		return fmt.Errorf("failed to create organizations index: %w", err)
	}

	_, err = db.Collection(EventsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "organizer", Value: 1}}},
		{Keys: bson.D{{Key: "organization", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create events indexes: %w", err)
	}
	log.Debug("mongo indexes ensured")
	return nil
}
