// Package testutil holds helpers shared by package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/lshigami/placement/config"
	"github.com/lshigami/placement/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewSQLiteDB opens a migrated SQLite database in a per-test temp dir.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{Database: config.Database{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "placement.db"),
	}}
	db, err := database.NewDatabase(cfg)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
