package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/prepgenius-backend/internal/data/repos"
	"github.com/yungbote/prepgenius-backend/internal/data/repos/testutil"
	"github.com/yungbote/prepgenius-backend/internal/domain"
)

var dashNow = time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func newDashboard(t *testing.T, loc *time.Location) (DashboardService, func(domain.ActivityKind, time.Time)) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	svc := NewDashboardService(log, repos.NewActivityRepo(db, log), fixedClock(dashNow), loc)
	seed := func(kind domain.ActivityKind, at time.Time) { testutil.SeedActivity(t, db, kind, at) }
	return svc, seed
}

func TestDashboardStreakStopsAtGap(t *testing.T) {
	svc, seed := newDashboard(t, time.UTC)
	day := 24 * time.Hour

	seed(domain.ActivityNotes, dashNow.Add(-time.Hour))
	seed(domain.ActivityQuiz, dashNow.Add(-day))
	// nothing two days ago
	seed(domain.ActivityChat, dashNow.Add(-3*day))
	seed(domain.ActivityChat, dashNow.Add(-4*day))

	got, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, got.DayStreak)
	assert.EqualValues(t, 1, got.NotesCreated)
	assert.EqualValues(t, 1, got.QuizzesTaken)
	assert.EqualValues(t, 1, got.TodayActions)
	assert.Equal(t, DailyGoal, got.DailyGoal)
	assert.Equal(t, 25, got.GoalProgress)
}

func TestDashboardNoActivityToday(t *testing.T) {
	svc, seed := newDashboard(t, time.UTC)
	seed(domain.ActivityNotes, dashNow.Add(-24*time.Hour))
	seed(domain.ActivityNotes, dashNow.Add(-48*time.Hour))

	got, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, got.DayStreak)
	assert.EqualValues(t, 0, got.TodayActions)
	assert.Equal(t, 0, got.GoalProgress)
	assert.EqualValues(t, 2, got.NotesCreated)
}

func TestDashboardGoalProgress(t *testing.T) {
	t.Run("half", func(t *testing.T) {
		svc, seed := newDashboard(t, time.UTC)
		seed(domain.ActivityChat, dashNow.Add(-time.Minute))
		seed(domain.ActivityMentor, dashNow.Add(-2*time.Minute))

		got, err := svc.Summary(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 50, got.GoalProgress)
		assert.Equal(t, 1, got.DayStreak)
	})
	t.Run("clamped", func(t *testing.T) {
		svc, seed := newDashboard(t, time.UTC)
		for i := 0; i < 6; i++ {
			seed(domain.ActivityChat, dashNow.Add(-time.Duration(i+1)*time.Minute))
		}
		got, err := svc.Summary(context.Background())
		require.NoError(t, err)
		assert.EqualValues(t, 6, got.TodayActions)
		assert.Equal(t, 100, got.GoalProgress)
	})
}

func TestDashboardUsesConfiguredLocation(t *testing.T) {
	// 15:00 UTC is 01:00 the next day at UTC+10.
	loc := time.FixedZone("UTC+10", 10*60*60)
	svc, seed := newDashboard(t, loc)

	seed(domain.ActivityChat, dashNow.Add(-30*time.Minute)) // 00:30 local, today
	seed(domain.ActivityChat, dashNow.Add(-2*time.Hour))    // 23:00 local, yesterday

	got, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.TodayActions)
	assert.Equal(t, 2, got.DayStreak)
}

func TestDayBounds(t *testing.T) {
	start, end := DayBounds(dashNow, 0, time.UTC)
	assert.Equal(t, time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC), end)

	start, _ = DayBounds(dashNow, 10, time.UTC)
	assert.Equal(t, time.Date(2026, time.February, 28, 0, 0, 0, 0, time.UTC), start)
}

func TestGoalProgress(t *testing.T) {
	assert.Equal(t, 0, GoalProgress(0, 4))
	assert.Equal(t, 25, GoalProgress(1, 4))
	assert.Equal(t, 75, GoalProgress(3, 4))
	assert.Equal(t, 100, GoalProgress(4, 4))
	assert.Equal(t, 100, GoalProgress(9, 4))
	assert.Equal(t, 0, GoalProgress(3, 0))
}
