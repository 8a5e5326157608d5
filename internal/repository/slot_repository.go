package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/parkease/parkease-backend/internal/models"
)

type SlotRepository struct {
	db *sqlx.DB
}

func NewSlotRepository(db *sqlx.DB) *SlotRepository {
	return &SlotRepository{db: db}
}

func (r *SlotRepository) Create(ctx context.Context, s *models.ParkingSlot) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO parking_slots (provider_id, name, location, category, price_per_hour, available, rating)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, s.ProviderID, s.Name, s.Location, s.Category, s.PricePerHour, s.Available, s.Rating).
		Scan(&s.ID, &s.CreatedAt)
}

func (r *SlotRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ParkingSlot, error) {
	var s models.ParkingSlot
	err := r.db.GetContext(ctx, &s, `SELECT * FROM parking_slots WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("slot repository: get %w", err)
	}
	return &s, nil
}

// ListByCategory возвращает места категории в порядке создания.
// Пустая категория — все места. Порядок стабилен: поисковая выдача
// не пересортировывается.
func (r *SlotRepository) ListByCategory(ctx context.Context, category string) ([]models.ParkingSlot, error) {
	var slots []models.ParkingSlot
	var err error
	if category == "" {
		err = r.db.SelectContext(ctx, &slots, `SELECT * FROM parking_slots ORDER BY created_at ASC`)
	} else {
		err = r.db.SelectContext(ctx, &slots, `SELECT * FROM parking_slots WHERE category = $1 ORDER BY created_at ASC`, category)
	}
	if err != nil {
		return nil, fmt.Errorf("slot repository: list %w", err)
	}
	return slots, nil
}

// ListByProvider возвращает места оператора.
func (r *SlotRepository) ListByProvider(ctx context.Context, providerID uuid.UUID) ([]models.ParkingSlot, error) {
	var slots []models.ParkingSlot
	err := r.db.SelectContext(ctx, &slots, `
		SELECT * FROM parking_slots WHERE provider_id = $1 ORDER BY created_at ASC
	`, providerID)
	if err != nil {
		return nil, fmt.Errorf("slot repository: list by provider %w", err)
	}
	return slots, nil
}

// SetAvailable выставляет флаг доступности (операторская ручка).
func (r *SlotRepository) SetAvailable(ctx context.Context, id uuid.UUID, available bool) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE parking_slots SET available = $2, updated_at = NOW() WHERE id = $1
	`, id, available)
	if err != nil {
		return fmt.Errorf("slot repository: set available %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrSlotNotFound
	}
	return nil
}
