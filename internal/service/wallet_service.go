package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/parkease/parkease-backend/internal/models"
	"github.com/parkease/parkease-backend/internal/pkg/apperror"
	"github.com/parkease/parkease-backend/internal/repository"
)

// WalletRepository — контракт хранилища кошельков. Реализация обязана
// сериализовать операции по одному счёту: проверка средств и списание
// не могут перемежаться.
type WalletRepository interface {
	GetBalance(ctx context.Context, driverID uuid.UUID) (float64, error)
	Credit(ctx context.Context, driverID uuid.UUID, amount float64, description string) (*models.WalletTransaction, float64, error)
	Debit(ctx context.Context, driverID uuid.UUID, amount float64, description string) (*models.WalletTransaction, float64, error)
	ListTransactions(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]models.WalletTransaction, error)
}

type WalletService struct {
	repo WalletRepository
}

func NewWalletService(repo WalletRepository) *WalletService {
	return &WalletService{repo: repo}
}

// GetBalance возвращает баланс кошелька водителя.
func (s *WalletService) GetBalance(ctx context.Context, driverID uuid.UUID) (float64, error) {
	balance, err := s.repo.GetBalance(ctx, driverID)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return 0, apperror.ErrAccountNotFound
	}
	return balance, err
}

// Credit пополняет кошелёк.
func (s *WalletService) Credit(ctx context.Context, driverID uuid.UUID, amount float64) (*models.WalletTransaction, float64, error) {
	if amount <= 0 {
		return nil, 0, apperror.New(apperror.ErrCodeValidation, "top-up amount must be positive")
	}

	transaction, balance, err := s.repo.Credit(ctx, driverID, amount, "Wallet top-up")
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, 0, apperror.ErrAccountNotFound
	}
	return transaction, balance, err
}

// Debit списывает средства; нехватка — ожидаемый бизнес-результат,
// а не внутренняя ошибка.
func (s *WalletService) Debit(ctx context.Context, driverID uuid.UUID, amount float64, description string) (*models.WalletTransaction, float64, error) {
	if amount <= 0 {
		return nil, 0, apperror.New(apperror.ErrCodeValidation, "debit amount must be positive")
	}

	transaction, balance, err := s.repo.Debit(ctx, driverID, amount, description)
	switch {
	case errors.Is(err, repository.ErrInsufficientFunds):
		return nil, 0, apperror.ErrInsufficientFunds
	case errors.Is(err, repository.ErrAccountNotFound):
		return nil, 0, apperror.ErrAccountNotFound
	}
	return transaction, balance, err
}

// ListTransactions возвращает историю кошелька.
func (s *WalletService) ListTransactions(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]models.WalletTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return s.repo.ListTransactions(ctx, driverID, limit, offset)
}
