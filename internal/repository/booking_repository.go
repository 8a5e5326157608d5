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

type BookingRepository struct {
	db *sqlx.DB
}

func NewBookingRepository(db *sqlx.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// CreateWithDebit создаёт бронь одной транзакцией со списанием с кошелька
// и занятием места. Либо применяется всё, либо ничего: при нехватке
// средств или занятом месте ни одна строка не меняется.
func (r *BookingRepository) CreateWithDebit(ctx context.Context, b *models.Booking) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Блокируем кошелёк водителя
	var balance float64
	err = tx.GetContext(ctx, &balance, `SELECT wallet_balance FROM drivers WHERE id = $1 FOR UPDATE`, b.DriverID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrAccountNotFound
	}
	if err != nil {
		return fmt.Errorf("booking repository: lock driver %w", err)
	}
	if balance < b.Amount {
		return ErrInsufficientFunds
	}

	// Перепроверяем доступность места под блокировкой
	var available bool
	err = tx.GetContext(ctx, &available, `SELECT available FROM parking_slots WHERE id = $1 FOR UPDATE`, b.SlotID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrSlotNotFound
	}
	if err != nil {
		return fmt.Errorf("booking repository: lock slot %w", err)
	}
	if !available {
		return ErrSlotUnavailable
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE drivers SET wallet_balance = wallet_balance - $2, total_bookings = total_bookings + 1, updated_at = NOW()
		WHERE id = $1
	`, b.DriverID, b.Amount)
	if err != nil {
		return fmt.Errorf("booking repository: debit %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE parking_slots SET available = FALSE, updated_at = NOW() WHERE id = $1
	`, b.SlotID)
	if err != nil {
		return fmt.Errorf("booking repository: occupy slot %w", err)
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO bookings (slot_id, driver_id, vehicle_category, hours, amount, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, b.SlotID, b.DriverID, b.VehicleCategory, b.Hours, b.Amount, b.Status).
		Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("booking repository: insert booking %w", err)
	}

	if _, err := insertTransaction(ctx, tx, b.DriverID, &b.ID, models.TransactionTypeBooking, b.Amount,
		fmt.Sprintf("Booking for %d hour(s)", b.Hours)); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *BookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var b models.Booking
	err := r.db.GetContext(ctx, &b, `SELECT * FROM bookings WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("booking repository: get %w", err)
	}
	return &b, nil
}

// Complete переводит active -> completed и освобождает место.
// Guard по статусу защищает от конкурирующего завершения/отмены.
func (r *BookingRepository) Complete(ctx context.Context, id uuid.UUID, at time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var slotID uuid.UUID
	err = tx.GetContext(ctx, &slotID, `
		UPDATE bookings SET status = $2, completed_at = $3
		WHERE id = $1 AND status = $4
		RETURNING slot_id
	`, id, models.BookingStatusCompleted, at, models.BookingStatusActive)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrStatusConflict
	}
	if err != nil {
		return fmt.Errorf("booking repository: complete %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE parking_slots SET available = TRUE, updated_at = NOW() WHERE id = $1
	`, slotID); err != nil {
		return fmt.Errorf("booking repository: release slot %w", err)
	}

	return tx.Commit()
}

// CancelWithRefund переводит active -> cancelled, возвращает полную
// сумму на кошелёк и освобождает место — одной транзакцией.
func (r *BookingRepository) CancelWithRefund(ctx context.Context, id uuid.UUID, at time.Time) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var b models.Booking
	err = tx.GetContext(ctx, &b, `
		UPDATE bookings SET status = $2, cancelled_at = $3
		WHERE id = $1 AND status = $4
		RETURNING id, slot_id, driver_id, vehicle_category, hours, amount, status, created_at, completed_at, cancelled_at
	`, id, models.BookingStatusCancelled, at, models.BookingStatusActive)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrStatusConflict
	}
	if err != nil {
		return fmt.Errorf("booking repository: cancel %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE drivers SET wallet_balance = wallet_balance + $2, updated_at = NOW() WHERE id = $1
	`, b.DriverID, b.Amount); err != nil {
		return fmt.Errorf("booking repository: refund %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE parking_slots SET available = TRUE, updated_at = NOW() WHERE id = $1
	`, b.SlotID); err != nil {
		return fmt.Errorf("booking repository: release slot %w", err)
	}

	if _, err := insertTransaction(ctx, tx, b.DriverID, &b.ID, models.TransactionTypeRefund, b.Amount,
		"Refund for cancelled booking"); err != nil {
		return err
	}

	return tx.Commit()
}

// ListByDriver возвращает брони водителя, новые первыми.
func (r *BookingRepository) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.SelectContext(ctx, &bookings, `
		SELECT * FROM bookings WHERE driver_id = $1 ORDER BY created_at DESC
	`, driverID)
	if err != nil {
		return nil, fmt.Errorf("booking repository: list %w", err)
	}
	return bookings, nil
}

// CountByStatus — агрегат для дашбордов.
func (r *BookingRepository) CountByStatus(ctx context.Context) (map[string]int, error) {
	return countByStatus(ctx, r.db, "bookings")
}
