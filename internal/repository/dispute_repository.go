package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/parkease/parkease-backend/internal/models"
)

type DisputeRepository struct {
	db *sqlx.DB
}

func NewDisputeRepository(db *sqlx.DB) *DisputeRepository {
	return &DisputeRepository{db: db}
}

func (r *DisputeRepository) Create(ctx context.Context, d *models.Dispute) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO disputes (title, type, priority, reporter_id, reporter_role, description, amount, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, d.Title, d.Type, d.Priority, d.ReporterID, d.ReporterRole, d.Description, d.Amount, d.Status).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *DisputeRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Dispute, error) {
	var d models.Dispute
	err := r.db.GetContext(ctx, &d, `SELECT * FROM disputes WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDisputeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("dispute repository: get %w", err)
	}
	return &d, nil
}

// UpdateStatus применяет переход с guard по текущему статусу.
// Ноль затронутых строк означает конкурирующий переход.
func (r *DisputeRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string, resolution *string, at time.Time) error {
	var resolvedAt *time.Time
	if to == models.DisputeStatusResolved {
		resolvedAt = &at
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE disputes
		SET status = $3, resolution = COALESCE($4, resolution), resolved_at = COALESCE($5, resolved_at), updated_at = $6
		WHERE id = $1 AND status = $2
	`, id, from, to, resolution, resolvedAt, at)
	if err != nil {
		return fmt.Errorf("dispute repository: update status %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrStatusConflict
	}
	return nil
}

// List возвращает споры в порядке создания; пустой статус — без фильтра.
func (r *DisputeRepository) List(ctx context.Context, status string) ([]models.Dispute, error) {
	var disputes []models.Dispute
	var err error
	if status == "" {
		err = r.db.SelectContext(ctx, &disputes, `SELECT * FROM disputes ORDER BY created_at ASC`)
	} else {
		err = r.db.SelectContext(ctx, &disputes, `SELECT * FROM disputes WHERE status = $1 ORDER BY created_at ASC`, status)
	}
	if err != nil {
		return nil, fmt.Errorf("dispute repository: list %w", err)
	}
	return disputes, nil
}

func (r *DisputeRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	return countByStatus(ctx, r.db, "disputes")
}
