package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/yungbote/prepgenius-backend/internal/data/repos"
	"github.com/yungbote/prepgenius-backend/internal/domain"
	"github.com/yungbote/prepgenius-backend/internal/pkg/dbctx"
	"github.com/yungbote/prepgenius-backend/internal/platform/logger"
)

type ActivityInput struct {
	Kind    domain.ActivityKind
	Title   string
	Details string
	Meta    map[string]any
}

type ActivityObserver interface {
	IncActivity(kind string)
}

type ActivityLogService interface {
	Log(ctx context.Context, in ActivityInput) (*domain.Activity, error)
}

type activityLogService struct {
	log      *logger.Logger
	repo     repos.ActivityRepo
	now      func() time.Time
	observer ActivityObserver
}

func NewActivityLogService(baseLog *logger.Logger, repo repos.ActivityRepo, now func() time.Time, observer ActivityObserver) ActivityLogService {
	if now == nil {
		now = time.Now
	}
	return &activityLogService{
		log:      baseLog.With("service", "ActivityLogService"),
		repo:     repo,
		now:      now,
		observer: observer,
	}
}

func (s *activityLogService) Log(ctx context.Context, in ActivityInput) (*domain.Activity, error) {
	var meta datatypes.JSON
	if len(in.Meta) > 0 {
		b, err := json.Marshal(in.Meta)
		if err != nil {
			return nil, fmt.Errorf("encode activity meta: %w", err)
		}
		meta = datatypes.JSON(b)
	}

	row := domain.NewActivity(in.Kind, in.Title, in.Details, meta, s.now())
	if _, err := s.repo.Create(dbctx.Context{Ctx: ctx}, []*domain.Activity{row}); err != nil {
		return nil, fmt.Errorf("log %s activity: %w", in.Kind, err)
	}
	if s.observer != nil {
		s.observer.IncActivity(string(in.Kind))
	}
	s.log.Debug("activity logged", "kind", in.Kind, "activity_id", row.ID.String())
	return row, nil
}
