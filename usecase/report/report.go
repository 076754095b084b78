// Package report turns the current task set into summary statistics and
// exposes the audit ledger as a chronological activity feed. The two
// read paths cover the same facts: every task counted as completed also
// has at least one complete entry in the ledger.
package report

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/shiftcheck/backend/domain"
	"github.com/shiftcheck/backend/pkg/clock"
	"github.com/shiftcheck/backend/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	audit  repository.AuditRepository
	clock  clock.Clock
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, audit repository.AuditRepository, clk clock.Clock, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		audit:  audit,
		clock:  clk,
		logger: logger,
	}
}

// Stats aggregates completion state over every task. The read is
// unbounded on purpose: totals over a paginated slice would be wrong.
// An empty task set is a valid zero-valued result, not an error.
func (uc *UseCase) Stats(ctx context.Context) (*domain.Stats, error) {
	tasks, err := uc.tasks.List(ctx, repository.TaskFilter{Limit: repository.NoLimit})
	if err != nil {
		return nil, err
	}
	return ComputeStats(tasks, uc.clock.Now()), nil
}

// ActivityFeed lists audit entries most-recent-first, bounded by limit.
func (uc *UseCase) ActivityFeed(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	return uc.audit.ListRecent(ctx, limit)
}

// ComputeStats is the pure aggregation over current task state. It reads
// only is_completed, completed_by and completed_at; the audit ledger is
// not consulted here.
func ComputeStats(tasks []domain.Task, now time.Time) *domain.Stats {
	stats := &domain.Stats{
		ByUser: []domain.UserStat{},
		ByHour: []domain.HourStat{},
	}

	userCounts := make(map[string]*domain.UserStat)
	hourCounts := make(map[int]int)

	for _, task := range tasks {
		stats.TotalTasks++

		switch domain.DeriveStatus(task.IsCompleted, task.Deadline, now) {
		case domain.StatusLate:
			stats.LateTasks++
		case domain.StatusDone:
			stats.CompletedTasks++
		}

		if !task.IsCompleted {
			continue
		}
		if task.CompletedBy != "" {
			entry, ok := userCounts[task.CompletedBy]
			if !ok {
				entry = &domain.UserStat{UserID: task.CompletedBy, Name: task.CompletedByName}
				userCounts[task.CompletedBy] = entry
			}
			entry.Count++
		}
		if task.CompletedAt != nil {
			hourCounts[task.CompletedAt.In(now.Location()).Hour()]++
		}
	}

	if stats.TotalTasks > 0 {
		rate := float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100
		stats.CompletionRate = int(math.Round(rate))
	}

	for _, entry := range userCounts {
		stats.ByUser = append(stats.ByUser, *entry)
	}
	sort.Slice(stats.ByUser, func(i, j int) bool {
		if stats.ByUser[i].Count != stats.ByUser[j].Count {
			return stats.ByUser[i].Count > stats.ByUser[j].Count
		}
		return stats.ByUser[i].Name < stats.ByUser[j].Name
	})

	for hour, count := range hourCounts {
		stats.ByHour = append(stats.ByHour, domain.HourStat{Hour: hour, Count: count})
	}
	sort.Slice(stats.ByHour, func(i, j int) bool {
		return stats.ByHour[i].Hour < stats.ByHour[j].Hour
	})

	return stats
}
