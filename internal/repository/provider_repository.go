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

type ProviderRepository struct {
	db *sqlx.DB
}

func NewProviderRepository(db *sqlx.DB) *ProviderRepository {
	return &ProviderRepository{db: db}
}

func (r *ProviderRepository) Create(ctx context.Context, p *models.ProviderApplication) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO provider_applications (name, owner_name, email, phone, location, slot_count, status, doc_license, doc_insurance, doc_tax)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`, p.Name, p.OwnerName, p.Email, p.Phone, p.Location, p.SlotCount, p.Status, p.DocLicense, p.DocInsurance, p.DocTax).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
}

func (r *ProviderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ProviderApplication, error) {
	var p models.ProviderApplication
	err := r.db.GetContext(ctx, &p, `SELECT * FROM provider_applications WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("provider repository: get %w", err)
	}
	return &p, nil
}

func (r *ProviderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE provider_applications SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
	`, id, from, to, at)
	if err != nil {
		return fmt.Errorf("provider repository: update status %w", err)
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

// SetDocumentFlag отмечает загруженный документ заявки.
func (r *ProviderRepository) SetDocumentFlag(ctx context.Context, id uuid.UUID, column string) error {
	var query string
	switch column {
	case "doc_license":
		query = `UPDATE provider_applications SET doc_license = TRUE, updated_at = NOW() WHERE id = $1`
	case "doc_insurance":
		query = `UPDATE provider_applications SET doc_insurance = TRUE, updated_at = NOW() WHERE id = $1`
	case "doc_tax":
		query = `UPDATE provider_applications SET doc_tax = TRUE, updated_at = NOW() WHERE id = $1`
	default:
		return fmt.Errorf("provider repository: unknown document column %q", column)
	}

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("provider repository: set document flag %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProviderNotFound
	}
	return nil
}

func (r *ProviderRepository) List(ctx context.Context, status string) ([]models.ProviderApplication, error) {
	var providers []models.ProviderApplication
	var err error
	if status == "" {
		err = r.db.SelectContext(ctx, &providers, `SELECT * FROM provider_applications ORDER BY created_at ASC`)
	} else {
		err = r.db.SelectContext(ctx, &providers, `SELECT * FROM provider_applications WHERE status = $1 ORDER BY created_at ASC`, status)
	}
	if err != nil {
		return nil, fmt.Errorf("provider repository: list %w", err)
	}
	return providers, nil
}

func (r *ProviderRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	return countByStatus(ctx, r.db, "provider_applications")
}
