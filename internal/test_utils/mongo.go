package test_utils

import (
	"context"
	"os"
	"testing"

	"github.com/eventboard/eventboard/internal/config"
	"github.com/eventboard/eventboard/internal/database"
	log "github.com/sirupsen/logrus"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TestWithMongo starts a MongoDB container, creates the indexes and returns the database
// handle together with a function stopping everything again. Meant for TestMain.
func TestWithMongo() (*mongo.Database, func()) {
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		log.Errorf("Failed to start mongo container: %v", err)
		os.Exit(1)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		log.Fatalf("Failed to read mongo connection string: %v", err)
	}
	log.Infof("Mongo container started at %s", uri)

	client, db, err := database.OpenMongo(ctx, config.Mongo{URI: uri, Database: dbName})
	if err != nil {
		log.Fatalf("Failed to connect to mongo: %v", err)
	}
	if err := database.EnsureMongoIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create mongo indexes: %v", err)
	}

	return db, func() {
		_ = client.Disconnect(context.Background())
		if err := testcontainers.TerminateContainer(container); err != nil {
			log.Errorf("Failed to terminate mongo container: %v", err)
		}
	}
}

// ClearCollections removes every document of the given collections, keeping their indexes.
func ClearCollections(t *testing.T, db *mongo.Database, collections ...string) {
	t.Helper()
	for _, name := range collections {
		if _, err := db.Collection(name).DeleteMany(context.Background(), bson.M{}); err != nil {
			t.Fatalf("Failed to clear %s: %v", name, err)
		}
	}
}
