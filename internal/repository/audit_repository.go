package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/parkease/parkease-backend/internal/models"
)

// AuditRepository хранит журнал переходов статусов.
// Записи только добавляются, никогда не изменяются.
type AuditRepository struct {
	db *sqlx.DB
}

func NewAuditRepository(db *sqlx.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(ctx context.Context, a *models.TransitionAudit) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO transition_audit (actor_id, entity_type, entity_id, from_status, to_status, note)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, a.ActorID, a.EntityType, a.EntityID, a.FromStatus, a.ToStatus, a.Note).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("audit repository: create %w", err)
	}
	return nil
}

// ListByEntity возвращает историю переходов сущности, старые первыми.
func (r *AuditRepository) ListByEntity(ctx context.Context, entityType string, entityID uuid.UUID) ([]models.TransitionAudit, error) {
	var audits []models.TransitionAudit
	err := r.db.SelectContext(ctx, &audits, `
		SELECT * FROM transition_audit
		WHERE entity_type = $1 AND entity_id = $2
		ORDER BY created_at ASC
	`, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("audit repository: list %w", err)
	}
	return audits, nil
}
