// Package testdb opens throwaway gorm databases for tests.
package testdb

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/justsurfingit/recruitment-tracker/internal/database"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New returns an in-memory SQLite database with the schema applied.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	// every new :memory: connection is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
