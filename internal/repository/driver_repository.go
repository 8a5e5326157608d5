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

type DriverRepository struct {
	db *sqlx.DB
}

func NewDriverRepository(db *sqlx.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) Create(ctx context.Context, d *models.Driver) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO drivers (name, email, phone, vehicle_number, status, wallet_balance, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, d.Name, d.Email, d.Phone, d.VehicleNumber, d.Status, d.WalletBalance, d.Rating).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *DriverRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Driver, error) {
	var d models.Driver
	err := r.db.GetContext(ctx, &d, `SELECT * FROM drivers WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDriverNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("driver repository: get %w", err)
	}
	return &d, nil
}

func (r *DriverRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE drivers SET status = $3, updated_at = $4
		WHERE id = $1 AND status = $2
	`, id, from, to, at)
	if err != nil {
		return fmt.Errorf("driver repository: update status %w", err)
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

func (r *DriverRepository) List(ctx context.Context, status string) ([]models.Driver, error) {
	var drivers []models.Driver
	var err error
	if status == "" {
		err = r.db.SelectContext(ctx, &drivers, `SELECT * FROM drivers ORDER BY created_at ASC`)
	} else {
		err = r.db.SelectContext(ctx, &drivers, `SELECT * FROM drivers WHERE status = $1 ORDER BY created_at ASC`, status)
	}
	if err != nil {
		return nil, fmt.Errorf("driver repository: list %w", err)
	}
	return drivers, nil
}

func (r *DriverRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	return countByStatus(ctx, r.db, "drivers")
}
