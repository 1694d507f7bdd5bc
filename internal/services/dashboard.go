package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yungbote/prepgenius-backend/internal/data/repos"
	"github.com/yungbote/prepgenius-backend/internal/domain"
	"github.com/yungbote/prepgenius-backend/internal/pkg/dbctx"
	"github.com/yungbote/prepgenius-backend/internal/platform/logger"
)

const (
	DailyGoal = 4

	// maxStreakDays bounds the backward walk to ten years of day queries.
	maxStreakDays = 3660
)

type DashboardSummary struct {
	NotesCreated int64 `json:"notesCreated"`
	QuizzesTaken int64 `json:"quizzesTaken"`
	DayStreak    int   `json:"dayStreak"`
	TodayActions int64 `json:"todayActions"`
	DailyGoal    int   `json:"dailyGoal"`
	GoalProgress int   `json:"goalProgress"`
}

type DashboardService interface {
	Summary(ctx context.Context) (DashboardSummary, error)
}

type dashboardService struct {
	log  *logger.Logger
	repo repos.ActivityRepo
	now  func() time.Time
	loc  *time.Location
}

func NewDashboardService(baseLog *logger.Logger, repo repos.ActivityRepo, now func() time.Time, loc *time.Location) DashboardService {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &dashboardService{
		log:  baseLog.With("service", "DashboardService"),
		repo: repo,
		now:  now,
		loc:  loc,
	}
}

func (s *dashboardService) Summary(ctx context.Context) (DashboardSummary, error) {
	dbc := dbctx.Context{Ctx: ctx}
	out := DashboardSummary{DailyGoal: DailyGoal}

	var err error
	if out.NotesCreated, err = s.repo.CountByKind(dbc, domain.ActivityNotes); err != nil {
		return DashboardSummary{}, fmt.Errorf("count notes: %w", err)
	}
	if out.QuizzesTaken, err = s.repo.CountByKind(dbc, domain.ActivityQuiz); err != nil {
		return DashboardSummary{}, fmt.Errorf("count quizzes: %w", err)
	}

	now := s.now().In(s.loc)
	start, end := DayBounds(now, 0, s.loc)
	if out.TodayActions, err = s.repo.CountBetween(dbc, start, end); err != nil {
		return DashboardSummary{}, fmt.Errorf("count today: %w", err)
	}

	if out.TodayActions > 0 {
		out.DayStreak = 1
		for back := 1; back < maxStreakDays; back++ {
			ds, de := DayBounds(now, back, s.loc)
			n, err := s.repo.CountBetween(dbc, ds, de)
			if err != nil {
				return DashboardSummary{}, fmt.Errorf("count day -%d: %w", back, err)
			}
			if n == 0 {
				break
			}
			out.DayStreak++
		}
	}

	out.GoalProgress = GoalProgress(out.TodayActions, DailyGoal)
	return out, nil
}

// DayBounds returns [start, end) of the calendar day daysBack days before t in loc.
func DayBounds(t time.Time, daysBack int, loc *time.Location) (time.Time, time.Time) {
	y, m, d := t.In(loc).Date()
	start := time.Date(y, m, d-daysBack, 0, 0, 0, 0, loc)
	end := time.Date(y, m, d-daysBack+1, 0, 0, 0, 0, loc)
	return start, end
}

func GoalProgress(today int64, goal int) int {
	if goal <= 0 || today <= 0 {
		return 0
	}
	p := today * 100 / int64(goal)
	if p > 100 {
		return 100
	}
	return int(p)
}
