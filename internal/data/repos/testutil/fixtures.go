package testutil

import (
	"fmt"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/prepgenius-backend/internal/domain"
)

func SeedActivity(tb testing.TB, tx *gorm.DB, kind domain.ActivityKind, at time.Time) *domain.Activity {
	tb.Helper()
	a := domain.NewActivity(kind, fmt.Sprintf("%s at %s", kind, at.Format(time.RFC3339Nano)), "", nil, at)
	if err := tx.Create(a).Error; err != nil {
		tb.Fatalf("seed activity: %v", err)
	}
	return a
}
