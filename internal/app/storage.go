package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/eventboard/eventboard/internal/config"
	"github.com/eventboard/eventboard/internal/database"
	"github.com/eventboard/eventboard/pkg/event"
	"github.com/eventboard/eventboard/pkg/organization"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// Storage is the open backend selected by storage.driver.
type Storage struct {
	Driver      string
	SQL         *sql.DB
	Mongo       *mongo.Database
	mongoClient *mongo.Client
}

// OpenStorage connects to the configured backend and prepares it: migrations for
// Postgres, indexes for Mongo.
func OpenStorage(ctx context.Context, cfg config.Application) (*Storage, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		if err := database.Migrate(cfg.Database); err != nil {
			return nil, err
		}
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, err
		}
		log.Infof("Using postgres storage at %s:%d/%s", cfg.Database.Host, cfg.Database.Port, cfg.Database.Name)
		return &Storage{Driver: config.DriverPostgres, SQL: db}, nil
	case config.DriverMongo:
		client, db, err := database.OpenMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		if err := database.EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Infof("Using mongo storage, database %s", cfg.Mongo.Database)
		return &Storage{Driver: config.DriverMongo, Mongo: db, mongoClient: client}, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q, expected %q or %q",
			cfg.Storage.Driver, config.DriverPostgres, config.DriverMongo)
	}
}

// Repositories returns the event and organization repositories of the open backend.
func (s *Storage) Repositories() Repositories {
	if s.Driver == config.DriverMongo {
		return Repositories{
			Events:        event.NewMongoRepository(s.Mongo),
			Organizations: organization.NewMongoRepository(s.Mongo),
		}
	}
	return Repositories{
		Events:        event.NewPostgresRepository(s.SQL),
		Organizations: organization.NewPostgresRepository(s.SQL),
	}
}

func (s *Storage) Ping(ctx context.Context) error {
	if s.Driver == config.DriverMongo {
		return s.mongoClient.Ping(ctx, nil)
	}
	return s.SQL.PingContext(ctx)
}

func (s *Storage) Close(ctx context.Context) error {
	if s.Driver == config.DriverMongo {
		return s.mongoClient.Disconnect(ctx)
	}
	return s.SQL.Close()
}
