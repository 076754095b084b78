package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shiftcheck/backend/domain"
	"github.com/shiftcheck/backend/pkg/clock"
	"github.com/shiftcheck/backend/repository"
	"github.com/shiftcheck/backend/usecase/report"
)

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	args := m.Called(ctx, id)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

func (m *mockTaskRepo) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	args := m.Called(ctx, filter)
	tasks, _ := args.Get(0).([]domain.Task)
	return tasks, args.Error(1)
}

func (m *mockTaskRepo) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	args := m.Called(ctx, task)
	created, _ := args.Get(0).(*domain.Task)
	return created, args.Error(1)
}

func (m *mockTaskRepo) CreateBatch(ctx context.Context, tasks []domain.Task) (int, error) {
	args := m.Called(ctx, tasks)
	return args.Int(0), args.Error(1)
}

func (m *mockTaskRepo) Toggle(ctx context.Context, params repository.ToggleParams) (*domain.Task, error) {
	args := m.Called(ctx, params)
	task, _ := args.Get(0).(*domain.Task)
	return task, args.Error(1)
}

type mockAuditRepo struct {
	mock.Mock
}

func (m *mockAuditRepo) ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, limit)
	entries, _ := args.Get(0).([]domain.AuditEntry)
	return entries, args.Error(1)
}

var loc = time.FixedZone("", 7*3600)

func completedAt(hour int) *time.Time {
	t := time.Date(2026, 8, 29, hour, 15, 0, 0, loc)
	return &t
}

func TestComputeStats(t *testing.T) {
	now := time.Date(2026, 8, 29, 16, 0, 0, 0, loc)

	dl := func(hour int) *domain.DayTime {
		return &domain.DayTime{Hour: hour}
	}
	done := func(by, name string, hour int) domain.Task {
		return domain.Task{
			IsCompleted:     true,
			CompletedBy:     by,
			CompletedByName: name,
			CompletedAt:     completedAt(hour),
		}
	}

	tasks := []domain.Task{
		done("u1", "Anna", 9),
		done("u1", "Anna", 9),
		done("u1", "Anna", 10),
		done("u2", "Boris", 10),
		done("u2", "Boris", 14),
		done("u3", "Chinggis", 14),
		{Deadline: dl(9)},  // late at 16:00
		{Deadline: dl(12)}, // late
		{Deadline: dl(20)}, // still pending
		{},                 // no deadline, pending
	}

	stats := report.ComputeStats(tasks, now)

	assert.Equal(t, 10, stats.TotalTasks)
	assert.Equal(t, 6, stats.CompletedTasks)
	assert.Equal(t, 2, stats.LateTasks)
	assert.Equal(t, 60, stats.CompletionRate)

	require.Len(t, stats.ByUser, 3)
	assert.Equal(t, domain.UserStat{UserID: "u1", Name: "Anna", Count: 3}, stats.ByUser[0])
	assert.Equal(t, domain.UserStat{UserID: "u2", Name: "Boris", Count: 2}, stats.ByUser[1])
	assert.Equal(t, domain.UserStat{UserID: "u3", Name: "Chinggis", Count: 1}, stats.ByUser[2])

	require.Len(t, stats.ByHour, 3, "hours with no completions are omitted")
	assert.Equal(t, []domain.HourStat{
		{Hour: 9, Count: 2},
		{Hour: 10, Count: 2},
		{Hour: 14, Count: 2},
	}, stats.ByHour)
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := report.ComputeStats(nil, time.Now())

	assert.Equal(t, 0, stats.TotalTasks)
	assert.Equal(t, 0, stats.CompletedTasks)
	assert.Equal(t, 0, stats.LateTasks)
	assert.Equal(t, 0, stats.CompletionRate)
	assert.Empty(t, stats.ByUser)
	assert.Empty(t, stats.ByHour)
	assert.NotNil(t, stats.ByUser, "json renders [] rather than null")
	assert.NotNil(t, stats.ByHour)
}

func TestComputeStatsRounding(t *testing.T) {
	now := time.Now().In(loc)

	oneOfThree := []domain.Task{
		{IsCompleted: true, CompletedBy: "u1"},
		{},
		{},
	}
	assert.Equal(t, 33, report.ComputeStats(oneOfThree, now).CompletionRate)

	twoOfThree := []domain.Task{
		{IsCompleted: true, CompletedBy: "u1"},
		{IsCompleted: true, CompletedBy: "u1"},
		{},
	}
	assert.Equal(t, 67, report.ComputeStats(twoOfThree, now).CompletionRate)
}

func TestComputeStatsUnattributed(t *testing.T) {
	now := time.Now().In(loc)

	tasks := []domain.Task{
		{IsCompleted: true},
		{IsCompleted: true, CompletedBy: "u1", CompletedByName: "Anna"},
	}
	stats := report.ComputeStats(tasks, now)

	assert.Equal(t, 2, stats.CompletedTasks, "unattributed completions still count")
	require.Len(t, stats.ByUser, 1, "but they never join the leaderboard")
	assert.Equal(t, "u1", stats.ByUser[0].UserID)
}

func TestComputeStatsTieBreaksByName(t *testing.T) {
	now := time.Now().In(loc)

	tasks := []domain.Task{
		{IsCompleted: true, CompletedBy: "u2", CompletedByName: "Boris"},
		{IsCompleted: true, CompletedBy: "u1", CompletedByName: "Anna"},
	}
	stats := report.ComputeStats(tasks, now)

	require.Len(t, stats.ByUser, 2)
	assert.Equal(t, "Anna", stats.ByUser[0].Name)
	assert.Equal(t, "Boris", stats.ByUser[1].Name)
}

func TestComputeStatsHourUsesFixedOffset(t *testing.T) {
	now := time.Date(2026, 8, 29, 23, 0, 0, 0, loc)

	// 02:30 UTC is 09:30 in the +07 locale.
	utc := time.Date(2026, 8, 29, 2, 30, 0, 0, time.UTC)
	tasks := []domain.Task{
		{IsCompleted: true, CompletedBy: "u1", CompletedAt: &utc},
	}
	stats := report.ComputeStats(tasks, now)

	require.Len(t, stats.ByHour, 1)
	assert.Equal(t, 9, stats.ByHour[0].Hour)
}

func TestStatsReadsEveryTask(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 29, 16, 0, 0, 0, loc)

	tasks := new(mockTaskRepo)
	audit := new(mockAuditRepo)
	uc := report.New(tasks, audit, clock.Fixed{T: now}, nil)

	// The clamp that guards paginated listings must not apply here: a
	// capped read would silently truncate every total on large task sets.
	tasks.On("List", ctx, repository.TaskFilter{Limit: repository.NoLimit}).
		Return([]domain.Task{
			{IsCompleted: true, CompletedBy: "u1", CompletedByName: "Anna"},
			{},
			{},
		}, nil)

	stats, err := uc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalTasks)
	assert.Equal(t, 1, stats.CompletedTasks)
	tasks.AssertExpectations(t)
}
