package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shiftcheck/backend/domain"
	"github.com/shiftcheck/backend/repository"
)

type auditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository returns a Postgres-backed read side of the audit ledger.
func NewAuditRepository(pool *pgxpool.Pool) repository.AuditRepository {
	return &auditRepository{pool: pool}
}

func (r *auditRepository) ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	const query = `
	SELECT a.id, a.task_id, COALESCE(t.title, ''), a.actor_id, COALESCE(u.name, ''),
		a.action, a.created_at
	FROM audit_log a
	LEFT JOIN tasks t ON t.id = a.task_id
	LEFT JOIN users u ON u.id = a.actor_id
	ORDER BY a.created_at DESC, a.id DESC
	LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, clampAuditLimit(limit))
	if err != nil {
		return nil, domain.StoreUnavailable(err)
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var entry domain.AuditEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.TaskID,
			&entry.TaskTitle,
			&entry.ActorID,
			&entry.ActorName,
			&entry.Action,
			&entry.Timestamp,
		); err != nil {
			return nil, domain.StoreUnavailable(err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func clampAuditLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 100
	}
	return limit
}
