// Package sqlstore implements the repository contracts on gorm. It runs on
// MySQL in production and on SQLite for local development and tests.
package sqlstore

import (
	"context"
	"errors"
	"fmt"

	"recipe_manager/internal/domain"
	"recipe_manager/internal/repository"

	"github.com/go-sql-driver/mysql" // MySQL driver error codes
	"gorm.io/gorm"                   // GORM ORM library
)

var _ repository.Store = (*Store)(nil)

// Store is the gorm-backed implementation of repository.Store
type Store struct {
	db *gorm.DB
}

// New wraps an open gorm connection. The connection should be opened with
// TranslateError enabled so unique violations surface as gorm.ErrDuplicatedKey.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates tables, indexes and constraints
func (s *Store) Migrate(ctx context.Context) error {
	return s.db.WithContext(ctx).AutoMigrate(
		&userRecord{},
		&recipeRecord{},
		&ingredientRecord{},
		&savedRecipeRecord{},
	)
}

// Close releases the underlying connection pool
func (s *Store) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// wrapError maps gorm and driver errors onto domain error kinds
func wrapError(err error, op string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 { // unique constraint
		return fmt.Errorf("%s: %w", op, domain.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}
