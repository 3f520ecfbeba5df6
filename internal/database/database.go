// Package database opens the single long-lived handle to the document store
// selected by configuration.
package database

import (
	"context"
	"fmt"
	"time"

	"toytopia/internal/config"
	"toytopia/internal/repositories"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const connectTimeout = 10 * time.Second

// Store owns the store connection and the repository built on it.
type Store struct {
	Toys  repositories.ToyRepository
	close func(context.Context) error
}

// Open connects to the configured store and verifies connectivity.
func Open(ctx context.Context, cfg config.StoreConfig, log zerolog.Logger) (*Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, err := NewMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.Info().Str("database", cfg.Database).Str("collection", cfg.Collection).Msg("Connected to MongoDB")
		coll := client.Database(cfg.Database).Collection(cfg.Collection)
		return &Store{
			Toys:  repositories.NewMongoToyRepository(coll),
			close: client.Disconnect,
		}, nil

	case config.DriverPostgres, config.DriverSQLite:
		db, err := NewGORM(cfg, log)
		if err != nil {
			return nil, err
		}
		repo := repositories.NewGORMToyRepository(db, cfg.Collection)
		if err := repo.Migrate(); err != nil {
			return nil, err
		}
		log.Info().Str("driver", cfg.Driver).Msg("Connected to SQL database")
		return &Store{
			Toys: repo,
			close: func(context.Context) error {
				sqlDB, err := db.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("Using in-memory store, data is lost on restart")
		return &Store{
			Toys:  repositories.NewMockToyRepository(),
			close: func(context.Context) error { return nil },
		}, nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
}

// Close releases the store connection.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// NewMongo connects a client using the stable API and pings the primary.
func NewMongo(ctx context.Context, cfg config.StoreConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	serverAPI := options.ServerAPI(options.ServerAPIVersion1).SetStrict(true).SetDeprecationErrors(true)
	opts := options.Client().
		ApplyURI(cfg.MongoURI()).
		SetServerAPIOptions(serverAPI).
		SetConnectTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongo")
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, errors.Wrap(err, "pinging mongo")
	}
	return client, nil
}

// NewGORM opens a postgres or sqlite database, logging through log.
func NewGORM(cfg config.StoreConfig, log zerolog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("driver %q is not a SQL driver", cfg.Driver)
	}

	gormLog := log.With().Str("component", "gorm").Logger()
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(&gormLog, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}
	return db, nil
}
