package services

import (
	"context"
	"fmt"

	"github.com/yungbote/prepgenius-backend/internal/data/repos"
	"github.com/yungbote/prepgenius-backend/internal/domain"
	"github.com/yungbote/prepgenius-backend/internal/pkg/dbctx"
	"github.com/yungbote/prepgenius-backend/internal/platform/logger"
)

const (
	HistoryLimit = 30

	historyTimeLayout = "2006-01-02T15:04:05.000000"
)

type HistoryItem struct {
	Kind      string `json:"kind"`
	Title     string `json:"title"`
	Details   string `json:"details"`
	CreatedAt string `json:"createdAt"`
}

type HistoryService interface {
	Recent(ctx context.Context) ([]HistoryItem, error)
}

type historyService struct {
	log  *logger.Logger
	repo repos.ActivityRepo
}

func NewHistoryService(baseLog *logger.Logger, repo repos.ActivityRepo) HistoryService {
	return &historyService{log: baseLog.With("service", "HistoryService"), repo: repo}
}

func (s *historyService) Recent(ctx context.Context) ([]HistoryItem, error) {
	rows, err := s.repo.ListRecent(dbctx.Context{Ctx: ctx}, HistoryLimit)
	if err != nil {
		return nil, fmt.Errorf("list recent activities: %w", err)
	}
	out := make([]HistoryItem, 0, len(rows))
	for _, a := range rows {
		out = append(out, toHistoryItem(a))
	}
	return out, nil
}

func toHistoryItem(a *domain.Activity) HistoryItem {
	return HistoryItem{
		Kind:      string(a.Kind),
		Title:     a.Title,
		Details:   a.Details,
		CreatedAt: a.CreatedAt.UTC().Format(historyTimeLayout) + "Z",
	}
}
