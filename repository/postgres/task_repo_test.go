package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftcheck/backend/domain"
	"github.com/shiftcheck/backend/repository"
)

type fakeDB struct {
	tx *fakeTx
}

func (f *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) { return f.tx, nil }

func (f *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	panic("not used")
}

func (f *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("not used")
}

func (f *fakeDB) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	panic("not used")
}

// fakeTx drives the toggle transaction statement by statement. The
// embedded interface panics on anything the repository should not call.
type fakeTx struct {
	pgx.Tx
	updateScan func(dest ...any) error
	nameScan   func(dest ...any) error
	execErr    error
	committed  bool
	rolledBack bool
}

type rowFunc func(dest ...any) error

func (f rowFunc) Scan(dest ...any) error { return f(dest...) }

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	if t.updateScan != nil {
		scan := t.updateScan
		t.updateScan = nil
		return rowFunc(scan)
	}
	return rowFunc(t.nameScan)
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, t.execErr
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	t.rolledBack = true
	return nil
}

func scanCompletedRow(dest ...any) error {
	at := time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC)
	deadline := "09:00"
	actor := "u1"

	*dest[0].(*string) = "t1"
	*dest[1].(*string) = "Check freezer temperature"
	*dest[2].(*string) = ""
	*dest[3].(*domain.Department) = domain.DepartmentKitchen
	*dest[4].(**string) = &deadline
	*dest[5].(*domain.Status) = domain.StatusDone
	*dest[6].(*bool) = true
	*dest[7].(**string) = &actor
	*dest[8].(**time.Time) = &at
	*dest[9].(**string) = nil
	*dest[10].(*time.Time) = at
	*dest[11].(*time.Time) = at
	return nil
}

func toggleParams() repository.ToggleParams {
	return repository.ToggleParams{
		TaskID:       "t1",
		ActorID:      "u1",
		SetCompleted: true,
		Action:       domain.ActionComplete,
		Now:          time.Date(2026, 8, 29, 10, 30, 0, 0, time.UTC),
	}
}

func TestToggleRollsBackWhenAuditAppendFails(t *testing.T) {
	tx := &fakeTx{
		updateScan: scanCompletedRow,
		execErr:    errors.New("connection reset"),
	}
	repo := &taskRepository{db: &fakeDB{tx: tx}}

	task, err := repo.Toggle(context.Background(), toggleParams())

	require.Error(t, err)
	assert.Nil(t, task)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnavailable))
	assert.False(t, tx.committed, "a failed ledger append must never commit the task update")
	assert.True(t, tx.rolledBack)
}

func TestToggleSurfacesNameLookupFailure(t *testing.T) {
	tx := &fakeTx{
		updateScan: scanCompletedRow,
		nameScan:   func(dest ...any) error { return errors.New("connection reset") },
	}
	repo := &taskRepository{db: &fakeDB{tx: tx}}

	task, err := repo.Toggle(context.Background(), toggleParams())

	require.Error(t, err)
	assert.Nil(t, task)
	assert.True(t, domain.IsDomainError(err, domain.ErrCodeUnavailable))
	assert.False(t, tx.committed)
	assert.True(t, tx.rolledBack)
}

func TestToggleToleratesMissingNameRow(t *testing.T) {
	tx := &fakeTx{
		updateScan: scanCompletedRow,
		nameScan:   func(dest ...any) error { return pgx.ErrNoRows },
	}
	repo := &taskRepository{db: &fakeDB{tx: tx}}

	task, err := repo.Toggle(context.Background(), toggleParams())

	require.NoError(t, err)
	require.NotNil(t, task)
	assert.True(t, tx.committed)
	assert.Equal(t, "u1", task.CompletedBy)
	assert.Empty(t, task.CompletedByName)
}

func TestLimitValue(t *testing.T) {
	assert.Nil(t, limitValue(repository.NoLimit), "aggregate reads run without a cap")
	assert.Equal(t, 500, limitValue(0))
	assert.Equal(t, 500, limitValue(1000))
	assert.Equal(t, 42, limitValue(42))
}
