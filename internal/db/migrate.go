package db

import (
	"context"
	"fmt"
	"time"

	"recipe_manager/internal/config"                // Application configuration
	"recipe_manager/internal/repository"            // Store contracts
	"recipe_manager/internal/repository/mongostore" // MongoDB store
	"recipe_manager/internal/repository/sqlstore"   // GORM store

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"  // MySQL driver for GORM
	"gorm.io/driver/sqlite" // SQLite driver for GORM
	"gorm.io/gorm"          // GORM ORM library
	"gorm.io/gorm/logger"   // GORM logger
)

// OpenGorm opens a gorm connection for the configured SQL driver
func OpenGorm(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.StoreDriver {
	case config.DriverMySQL:
		dialector = mysql.Open(cfg.MySQLDSN())
	case config.DriverSQLite:
		dialector = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", cfg.StoreDriver)
	}
	level := logger.Warn
	if !cfg.IsProd {
		level = logger.Info
	}
	return gorm.Open(dialector, &gorm.Config{
		TranslateError: true, // Surface unique violations as gorm.ErrDuplicatedKey
		Logger: logger.New(logrus.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
}

// OpenStore connects the store selected by cfg.StoreDriver
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	if cfg.StoreDriver == config.DriverMongo {
		return mongostore.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	}
	gdb, err := OpenGorm(cfg)
	if err != nil {
		return nil, err
	}
	return sqlstore.New(gdb), nil
}

// Migrate performs schema migration (tables or indexes) for the configured store
func Migrate(ctx context.Context, cfg *config.Config) {
	store, err := OpenStore(ctx, cfg) // Open a connection to the store
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	defer store.Close(ctx)
	// Creates tables, foreign keys, constraints and unique indexes
	if err := store.Migrate(ctx); err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	logrus.WithField("driver", cfg.StoreDriver).Info("Migration completed.") // Log successful migration
}
