// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"recipe_manager/internal/config"
	"recipe_manager/internal/db"
	"recipe_manager/internal/repository/sqlstore"

	"github.com/stretchr/testify/require"
)

// NewSQLiteStore returns a migrated store on a fresh SQLite file in t.TempDir().
// A single connection serialises writers so concurrent tests never see SQLITE_BUSY.
func NewSQLiteStore(t testing.TB) *sqlstore.Store {
	t.Helper()
	cfg := &config.Config{
		StoreDriver: config.DriverSQLite,
		SQLitePath:  filepath.Join(t.TempDir(), "recipes.db") + "?_busy_timeout=5000",
		IsProd:      true, // Keep gorm quiet
	}
	gdb, err := db.OpenGorm(cfg)
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store := sqlstore.New(gdb)
	require.NoError(t, store.Migrate(context.Background()))
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store
}
