package repository

import (
	"context"
	"time"

	"github.com/shiftcheck/backend/domain"
)

// NoLimit disables the row cap on List. Aggregation must see every
// task; paginated endpoints keep the default clamp.
const NoLimit = -1

type TaskFilter struct {
	Department domain.Department
	Limit      int
	Offset     int
}

// ToggleParams carries one completion toggle. The implementation must
// apply the task mutation and the audit append as a single atomic unit:
// either both commit or neither does.
type ToggleParams struct {
	TaskID       string
	ActorID      string
	SetCompleted bool
	ProofImage   string
	Action       domain.AuditAction
	Now          time.Time
}

type TaskRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	Create(ctx context.Context, task *domain.Task) (*domain.Task, error)
	CreateBatch(ctx context.Context, tasks []domain.Task) (int, error)
	Toggle(ctx context.Context, params ToggleParams) (*domain.Task, error)
}
