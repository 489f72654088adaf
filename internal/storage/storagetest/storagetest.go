// Package storagetest opens throwaway SQLite databases for tests.
package storagetest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/lianruiying/Language-Tutor/internal/config"
	"github.com/lianruiying/Language-Tutor/internal/logging"
	"github.com/lianruiying/Language-Tutor/internal/storage"
)

// NewDB returns a migrated database living in the test's temp dir.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		URL:    filepath.Join(t.TempDir(), "tutor.db"),
	}
	db, err := storage.Open(cfg, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close(db) })
	return db
}

func NewStore(t testing.TB) *storage.Store {
	return storage.NewStore(NewDB(t))
}
