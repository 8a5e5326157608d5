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

// WalletRepository — единственная поверхность изменения баланса водителя.
// Каждая операция выполняется в транзакции с блокировкой строки водителя,
// чтобы проверка средств и само списание не могли разъехаться.
type WalletRepository struct {
	db *sqlx.DB
}

func NewWalletRepository(db *sqlx.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// GetBalance возвращает текущий баланс кошелька.
func (r *WalletRepository) GetBalance(ctx context.Context, driverID uuid.UUID) (float64, error) {
	var balance float64
	err := r.db.GetContext(ctx, &balance, `SELECT wallet_balance FROM drivers WHERE id = $1`, driverID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrAccountNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("wallet repository: get balance %w", err)
	}
	return balance, nil
}

// Credit пополняет баланс и записывает транзакцию.
func (r *WalletRepository) Credit(ctx context.Context, driverID uuid.UUID, amount float64, description string) (*models.WalletTransaction, float64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	var balance float64
	err = tx.GetContext(ctx, &balance, `
		UPDATE drivers SET wallet_balance = wallet_balance + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING wallet_balance
	`, driverID, amount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrAccountNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("wallet repository: credit %w", err)
	}

	transaction, err := insertTransaction(ctx, tx, driverID, nil, models.TransactionTypeTopup, amount, description)
	if err != nil {
		return nil, 0, err
	}

	return transaction, balance, tx.Commit()
}

// Debit списывает средства; при нехватке возвращает ErrInsufficientFunds,
// не меняя баланс.
func (r *WalletRepository) Debit(ctx context.Context, driverID uuid.UUID, amount float64, description string) (*models.WalletTransaction, float64, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	var balance float64
	err = tx.GetContext(ctx, &balance, `SELECT wallet_balance FROM drivers WHERE id = $1 FOR UPDATE`, driverID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, 0, ErrAccountNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("wallet repository: debit lock %w", err)
	}
	if balance < amount {
		return nil, 0, ErrInsufficientFunds
	}

	err = tx.GetContext(ctx, &balance, `
		UPDATE drivers SET wallet_balance = wallet_balance - $2, updated_at = NOW()
		WHERE id = $1
		RETURNING wallet_balance
	`, driverID, amount)
	if err != nil {
		return nil, 0, fmt.Errorf("wallet repository: debit update %w", err)
	}

	transaction, err := insertTransaction(ctx, tx, driverID, nil, models.TransactionTypeBooking, amount, description)
	if err != nil {
		return nil, 0, err
	}

	return transaction, balance, tx.Commit()
}

// ListTransactions возвращает историю кошелька, новые записи первыми.
func (r *WalletRepository) ListTransactions(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]models.WalletTransaction, error) {
	var transactions []models.WalletTransaction
	err := r.db.SelectContext(ctx, &transactions, `
		SELECT * FROM wallet_transactions
		WHERE driver_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3
	`, driverID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("wallet repository: list transactions %w", err)
	}
	return transactions, nil
}

func insertTransaction(ctx context.Context, tx *sqlx.Tx, driverID uuid.UUID, bookingID *uuid.UUID, txType string, amount float64, description string) (*models.WalletTransaction, error) {
	var transaction models.WalletTransaction
	err := tx.GetContext(ctx, &transaction, `
		INSERT INTO wallet_transactions (driver_id, booking_id, type, amount, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, driver_id, booking_id, type, amount, description, created_at
	`, driverID, bookingID, txType, amount, description)
	if err != nil {
		return nil, fmt.Errorf("wallet repository: insert transaction %w", err)
	}
	return &transaction, nil
}
