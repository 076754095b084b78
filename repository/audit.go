package repository

import (
	"context"

	"github.com/shiftcheck/backend/domain"
)

// AuditRepository reads the append-only ledger. Entries are written only
// through TaskRepository.Toggle so a mutation can never land without its
// ledger record.
type AuditRepository interface {
	ListRecent(ctx context.Context, limit int) ([]domain.AuditEntry, error)
}
