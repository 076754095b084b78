// Package checklist implements the task lifecycle engine: listing with
// freshly derived status and the toggle-and-audit write path.
package checklist

import (
	"context"

	"go.uber.org/zap"

	"github.com/shiftcheck/backend/domain"
	"github.com/shiftcheck/backend/pkg/clock"
	"github.com/shiftcheck/backend/repository"
)

type UseCase struct {
	tasks  repository.TaskRepository
	users  repository.UserRepository
	clock  clock.Clock
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, users repository.UserRepository, clk clock.Clock, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		users:  users,
		clock:  clk,
		logger: logger,
	}
}

// ListTasks returns tasks with the status re-derived against the current
// time. The stored status column is never trusted across a day boundary.
func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	tasks, err := uc.tasks.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	for i := range tasks {
		tasks[i].Refresh(now)
	}
	return tasks, nil
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	task.Refresh(uc.clock.Now())
	return task, nil
}

// ToggleInput describes one completion toggle requested by an actor.
type ToggleInput struct {
	TaskID       string
	ActorID      string
	SetCompleted bool
	ProofImage   string
}

// Toggle flips the completion state of a task and appends exactly one
// audit entry, atomically. Toggling to the value the task already holds
// is accepted and still audited: the ledger records intent. The proof
// image, when present, is stored whether or not the task is completed
// and takes precedence in the audit action.
func (uc *UseCase) Toggle(ctx context.Context, in ToggleInput) (*domain.Task, error) {
	task, err := uc.tasks.GetByID(ctx, in.TaskID)
	if err != nil {
		return nil, err
	}

	actor, err := uc.users.GetByID(ctx, in.ActorID)
	if err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if !actor.CanModify(task.Department) {
		uc.logger.Warn("toggle rejected",
			zap.String("task_id", task.ID),
			zap.String("actor_id", actor.ID),
			zap.String("department", string(task.Department)))
		return nil, domain.ErrNotPermitted
	}

	now := uc.clock.Now()
	updated, err := uc.tasks.Toggle(ctx, repository.ToggleParams{
		TaskID:       in.TaskID,
		ActorID:      in.ActorID,
		SetCompleted: in.SetCompleted,
		ProofImage:   in.ProofImage,
		Action:       domain.AuditActionFor(in.SetCompleted, in.ProofImage != ""),
		Now:          now,
	})
	if err != nil {
		return nil, err
	}
	updated.Refresh(now)

	uc.logger.Info("task toggled",
		zap.String("task_id", updated.ID),
		zap.String("actor_id", in.ActorID),
		zap.Bool("is_completed", updated.IsCompleted),
		zap.String("status", string(updated.Status)))
	return updated, nil
}

// CreateTask registers a new checklist item. Administrative path only.
func (uc *UseCase) CreateTask(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil || task.Title == "" || !task.Department.Valid() {
		return nil, domain.ErrInvalidPayload
	}
	created, err := uc.tasks.Create(ctx, task)
	if err != nil {
		return nil, err
	}
	created.Refresh(uc.clock.Now())
	return created, nil
}

// ImportTasks bulk-inserts checklist items, skipping invalid rows.
func (uc *UseCase) ImportTasks(ctx context.Context, tasks []domain.Task) (int, error) {
	valid := tasks[:0]
	for _, task := range tasks {
		if task.Title == "" || !task.Department.Valid() {
			continue
		}
		valid = append(valid, task)
	}
	if len(valid) == 0 {
		return 0, domain.ErrInvalidPayload
	}
	return uc.tasks.CreateBatch(ctx, valid)
}
