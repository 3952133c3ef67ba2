package repository

import (
	"context"
	"fmt"

	"payment_portal/internal/model"
)

// AuditRepository appends audit entries. There is no read path in scope.
type AuditRepository interface {
	Insert(ctx context.Context, entry *model.AuditEntry) error
}

type auditRepository struct {
	db DB
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db DB) AuditRepository {
	return &auditRepository{db: db}
}

// Insert appends one audit entry
func (r *auditRepository) Insert(ctx context.Context, entry *model.AuditEntry) error {
	sql := `INSERT INTO audit_logs (actor_id, action, ip, user_agent, request_id, created_at)
            VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, sql, entry.ActorID, entry.Action, entry.IP, entry.UserAgent, entry.RequestID, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}
	return nil
}
