// Package dbtest swaps db.DB for an in-memory SQLite database in tests.
package dbtest

import (
	"fmt"
	"sync/atomic"
	"testing"

	"placementhub/internal/db"

	"gorm.io/driver/sqlite"
)

var seq atomic.Int64

// Use points db.DB at a fresh, migrated in-memory database for the
// duration of t.
func Use(t testing.TB) {
	t.Helper()
	prev := db.DB
	name := fmt.Sprintf("file:placementhub_test_%d?mode=memory&cache=shared", seq.Add(1))
	if err := db.Open(sqlite.Open(name)); err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.Migrate(); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	conn := db.DB
	if sqlDB, err := conn.DB(); err == nil {
		// one connection keeps the shared-cache database free of lock errors
		sqlDB.SetMaxOpenConns(1)
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
		db.DB = prev
	})
}
