package database

import (
	"testing"

	"github.com/Daskott/raksha/shared"
	"gorm.io/gorm"
)

// InitializeTestDb opens a migrated sqlite db in a temp directory owned by the test
func InitializeTestDb(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := Open(shared.DatabaseConfig{Driver: SQLITE_DRIVER, Dir: t.TempDir()})
	if err != nil {
		t.Fatalf("InitializeTestDb: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("InitializeTestDb: %v", err)
	}

	// sqlite allows a single writer
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := Migrate(db); err != nil {
		t.Fatalf("InitializeTestDb: %v", err)
	}

	return db
}
