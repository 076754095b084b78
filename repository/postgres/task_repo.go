package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shiftcheck/backend/domain"
	"github.com/shiftcheck/backend/repository"
)

const taskColumns = `
	t.id, t.title, t.description, t.department, t.deadline, t.status,
	t.is_completed, t.completed_by, u.name, t.completed_at, t.proof_image,
	t.created_at, t.updated_at`

// database is the slice of pgxpool.Pool the task repository uses. Tests
// substitute it to drive transaction failures without a live server.
type database interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}

type taskRepository struct {
	db database
}

// NewTaskRepository returns a Postgres-backed implementation of TaskRepository.
func NewTaskRepository(pool *pgxpool.Pool) repository.TaskRepository {
	return &taskRepository{db: pool}
}

func (r *taskRepository) GetByID(ctx context.Context, id string) (*domain.Task, error) {
	const query = `
	SELECT` + taskColumns + `
	FROM tasks t
	LEFT JOIN users u ON u.id = t.completed_by
	WHERE t.id = $1
	`
	row := r.db.QueryRow(ctx, query, id)
	return scanTask(row)
}

func (r *taskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	const query = `
	SELECT` + taskColumns + `
	FROM tasks t
	LEFT JOIN users u ON u.id = t.completed_by
	WHERE ($1 = '' OR t.department = $1)
	ORDER BY t.deadline NULLS LAST, t.created_at
	LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, string(filter.Department), limitValue(filter.Limit), filter.Offset)
	if err != nil {
		return nil, domain.StoreUnavailable(err)
	}
	defer rows.Close()

	var tasks []domain.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	return tasks, rows.Err()
}

func (r *taskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	if task == nil {
		return nil, domain.ErrInvalidPayload
	}
	if task.ID == "" {
		task.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO tasks (id, title, description, department, deadline, status)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at, updated_at
	`

	if err := r.db.QueryRow(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		string(task.Department),
		deadlineValue(task.Deadline),
		string(domain.StatusPending),
	).Scan(&task.CreatedAt, &task.UpdatedAt); err != nil {
		return nil, domain.StoreUnavailable(err)
	}

	task.Status = domain.StatusPending
	return task, nil
}

func (r *taskRepository) CreateBatch(ctx context.Context, tasks []domain.Task) (int, error) {
	batch := &pgx.Batch{}
	const query = `
	INSERT INTO tasks (id, title, description, department, deadline, status)
	VALUES ($1, $2, $3, $4, $5, $6)
	`
	for i := range tasks {
		if tasks[i].ID == "" {
			tasks[i].ID = uuid.NewString()
		}
		batch.Queue(query,
			tasks[i].ID,
			tasks[i].Title,
			tasks[i].Description,
			string(tasks[i].Department),
			deadlineValue(tasks[i].Deadline),
			string(domain.StatusPending),
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for range tasks {
		if _, err := results.Exec(); err != nil {
			return inserted, domain.StoreUnavailable(err)
		}
		inserted++
	}
	return inserted, nil
}

// Toggle mutates the completion fields and appends the audit entry in
// one transaction. The UPDATE is a single statement, so two overlapping
// toggles resolve last-writer-wins without ever exposing a half-written
// task; the ledger keeps both attempts.
func (r *taskRepository) Toggle(ctx context.Context, params repository.ToggleParams) (*domain.Task, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, domain.StoreUnavailable(err)
	}
	defer tx.Rollback(ctx)

	const update = `
	UPDATE tasks
	SET is_completed = $2,
		completed_by = CASE WHEN $2 THEN $3 ELSE NULL END,
		completed_at = CASE WHEN $2 THEN $4::timestamptz ELSE NULL END,
		proof_image = COALESCE(NULLIF($5, ''), proof_image),
		status = $6,
		updated_at = NOW()
	WHERE id = $1
	RETURNING id, title, description, department, deadline, status,
		is_completed, completed_by, completed_at, proof_image,
		created_at, updated_at
	`

	cached := domain.DeriveStatus(params.SetCompleted, nil, params.Now)

	var task domain.Task
	var (
		deadline    *string
		completedBy *string
		completedAt *time.Time
		proof       *string
	)
	if err := tx.QueryRow(ctx, update,
		params.TaskID,
		params.SetCompleted,
		params.ActorID,
		params.Now,
		params.ProofImage,
		string(cached),
	).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Department,
		&deadline,
		&task.Status,
		&task.IsCompleted,
		&completedBy,
		&completedAt,
		&proof,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, domain.StoreUnavailable(err)
	}
	applyNullable(&task, deadline, completedBy, completedAt, proof)

	const appendEntry = `
	INSERT INTO audit_log (id, task_id, actor_id, action, created_at)
	VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.Exec(ctx, appendEntry,
		uuid.NewString(),
		params.TaskID,
		params.ActorID,
		string(params.Action),
		params.Now,
	); err != nil {
		return nil, domain.StoreUnavailable(err)
	}

	if task.CompletedBy != "" {
		const name = `SELECT name FROM users WHERE id = $1`
		err := tx.QueryRow(ctx, name, task.CompletedBy).Scan(&task.CompletedByName)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.StoreUnavailable(err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, domain.StoreUnavailable(err)
	}
	return &task, nil
}

func scanTask(row interface {
	Scan(dest ...interface{}) error
}) (*domain.Task, error) {
	var task domain.Task
	var (
		deadline    *string
		completedBy *string
		byName      *string
		completedAt *time.Time
		proof       *string
	)

	if err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Department,
		&deadline,
		&task.Status,
		&task.IsCompleted,
		&completedBy,
		&byName,
		&completedAt,
		&proof,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, domain.StoreUnavailable(err)
	}

	applyNullable(&task, deadline, completedBy, completedAt, proof)
	if byName != nil {
		task.CompletedByName = *byName
	}
	return &task, nil
}

func applyNullable(task *domain.Task, deadline, completedBy *string, completedAt *time.Time, proof *string) {
	if deadline != nil {
		if dt, err := domain.ParseDayTime(*deadline); err == nil {
			task.Deadline = &dt
		}
	}
	if completedBy != nil {
		task.CompletedBy = *completedBy
	}
	task.CompletedAt = completedAt
	if proof != nil {
		task.ProofImage = *proof
	}
}

func deadlineValue(dt *domain.DayTime) interface{} {
	if dt == nil {
		return nil
	}
	return dt.String()
}

// limitValue clamps paginated reads to 500 rows. repository.NoLimit maps
// to LIMIT NULL so aggregate readers see the whole table.
func limitValue(limit int) interface{} {
	switch {
	case limit == repository.NoLimit:
		return nil
	case limit <= 0 || limit > 500:
		return 500
	default:
		return limit
	}
}
