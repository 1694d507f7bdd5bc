package study

import (
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/prepgenius-backend/internal/domain"
	"github.com/yungbote/prepgenius-backend/internal/pkg/dbctx"
	"github.com/yungbote/prepgenius-backend/internal/platform/logger"
)

type ActivityRepo interface {
	Create(dbc dbctx.Context, rows []*domain.Activity) ([]*domain.Activity, error)

	CountByKind(dbc dbctx.Context, kind domain.ActivityKind) (int64, error)
	// CountBetween counts rows with start <= created_at < end.
	CountBetween(dbc dbctx.Context, start, end time.Time) (int64, error)

	ListRecent(dbc dbctx.Context, limit int) ([]*domain.Activity, error)
}

type activityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewActivityRepo(db *gorm.DB, baseLog *logger.Logger) ActivityRepo {
	return &activityRepo{db: db, log: baseLog.With("repo", "ActivityRepo")}
}

func (r *activityRepo) tx(dbc dbctx.Context) *gorm.DB {
	t := dbc.Tx
	if t == nil {
		t = r.db
	}
	return t.WithContext(dbc.Context())
}

func (r *activityRepo) Create(dbc dbctx.Context, rows []*domain.Activity) ([]*domain.Activity, error) {
	if len(rows) == 0 {
		return []*domain.Activity{}, nil
	}
	if err := r.tx(dbc).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *activityRepo) CountByKind(dbc dbctx.Context, kind domain.ActivityKind) (int64, error) {
	var n int64
	if err := r.tx(dbc).
		Model(&domain.Activity{}).
		Where("kind = ?", kind).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *activityRepo) CountBetween(dbc dbctx.Context, start, end time.Time) (int64, error) {
	var n int64
	if !end.After(start) {
		return 0, nil
	}
	if err := r.tx(dbc).
		Model(&domain.Activity{}).
		Where("created_at >= ? AND created_at < ?", start.UTC(), end.UTC()).
		Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *activityRepo) ListRecent(dbc dbctx.Context, limit int) ([]*domain.Activity, error) {
	var out []*domain.Activity
	if limit <= 0 {
		return out, nil
	}
	if err := r.tx(dbc).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
