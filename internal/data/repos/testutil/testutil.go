package testutil

import (
	"testing"

	"gorm.io/gorm"

	"github.com/yungbote/prepgenius-backend/internal/data/db"
	"github.com/yungbote/prepgenius-backend/internal/platform/logger"
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	return logger.NewNop()
}

// DB opens a fresh, migrated in-memory SQLite database that lives for the test.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	svc, err := db.NewService(Logger(tb), db.Config{Driver: db.DriverSQLite, DSN: ":memory:", Quiet: true})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	if err := svc.AutoMigrateAll(); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	tb.Cleanup(func() { _ = svc.Close() })
	return svc.DB()
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}
