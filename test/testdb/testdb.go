// Package testdb opens throwaway migrated databases for package tests.
package testdb

import (
	"testing"
	"time"

	"memberhub_backend/database"

	"gorm.io/gorm"
)

// New returns a migrated in-memory SQLite database. nowFunc feeds gorm's
// CreatedAt/UpdatedAt and may be nil.
func New(t *testing.T, nowFunc func() time.Time) *gorm.DB {
	t.Helper()

	db, err := database.Open("sqlite", ":memory:", nowFunc)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}
