package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/parkease/parkease-backend/internal/models"
	"github.com/parkease/parkease-backend/internal/pkg/apperror"
	"github.com/parkease/parkease-backend/internal/repository"
)

type mockWalletRepo struct {
	mock.Mock
}

func (m *mockWalletRepo) GetBalance(ctx context.Context, driverID uuid.UUID) (float64, error) {
	args := m.Called(ctx, driverID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockWalletRepo) Credit(ctx context.Context, driverID uuid.UUID, amount float64, description string) (*models.WalletTransaction, float64, error) {
	args := m.Called(ctx, driverID, amount, description)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*models.WalletTransaction), args.Get(1).(float64), args.Error(2)
}

func (m *mockWalletRepo) Debit(ctx context.Context, driverID uuid.UUID, amount float64, description string) (*models.WalletTransaction, float64, error) {
	args := m.Called(ctx, driverID, amount, description)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*models.WalletTransaction), args.Get(1).(float64), args.Error(2)
}

func (m *mockWalletRepo) ListTransactions(ctx context.Context, driverID uuid.UUID, limit, offset int) ([]models.WalletTransaction, error) {
	args := m.Called(ctx, driverID, limit, offset)
	return args.Get(0).([]models.WalletTransaction), args.Error(1)
}

func TestWalletService_GetBalance(t *testing.T) {
	repo := new(mockWalletRepo)
	svc := NewWalletService(repo)
	ctx := context.Background()
	driverID := uuid.New()

	repo.On("GetBalance", ctx, driverID).Return(float64(1250), nil)

	balance, err := svc.GetBalance(ctx, driverID)
	assert.NoError(t, err)
	assert.Equal(t, float64(1250), balance)
	repo.AssertExpectations(t)
}

func TestWalletService_GetBalance_NotFound(t *testing.T) {
	repo := new(mockWalletRepo)
	svc := NewWalletService(repo)
	ctx := context.Background()
	driverID := uuid.New()

	repo.On("GetBalance", ctx, driverID).Return(float64(0), repository.ErrAccountNotFound)

	_, err := svc.GetBalance(ctx, driverID)
	assert.ErrorIs(t, err, apperror.ErrAccountNotFound)
}

func TestWalletService_Credit_Success(t *testing.T) {
	repo := new(mockWalletRepo)
	svc := NewWalletService(repo)
	ctx := context.Background()
	driverID := uuid.New()

	expected := &models.WalletTransaction{ID: uuid.New(), DriverID: driverID, Type: models.TransactionTypeTopup, Amount: 500}
	repo.On("Credit", ctx, driverID, float64(500), "Wallet top-up").Return(expected, float64(1750), nil)

	tx, balance, err := svc.Credit(ctx, driverID, 500)
	assert.NoError(t, err)
	assert.Equal(t, expected, tx)
	assert.Equal(t, float64(1750), balance)
	repo.AssertExpectations(t)
}

func TestWalletService_Credit_InvalidAmount(t *testing.T) {
	repo := new(mockWalletRepo)
	svc := NewWalletService(repo)
	ctx := context.Background()
	driverID := uuid.New()

	_, _, err := svc.Credit(ctx, driverID, 0)
	assert.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	_, _, err = svc.Credit(ctx, driverID, -100)
	assert.Error(t, err)
	repo.AssertNotCalled(t, "Credit")
}

func TestWalletService_Debit_InsufficientFunds(t *testing.T) {
	repo := new(mockWalletRepo)
	svc := NewWalletService(repo)
	ctx := context.Background()
	driverID := uuid.New()

	repo.On("Debit", ctx, driverID, float64(2000), "Booking payment").Return(nil, float64(0), repository.ErrInsufficientFunds)

	_, _, err := svc.Debit(ctx, driverID, 2000, "Booking payment")
	assert.ErrorIs(t, err, apperror.ErrInsufficientFunds)
}

func TestWalletService_ListTransactions_NormalizesPaging(t *testing.T) {
	repo := new(mockWalletRepo)
	svc := NewWalletService(repo)
	ctx := context.Background()
	driverID := uuid.New()

	repo.On("ListTransactions", ctx, driverID, 20, 0).Return([]models.WalletTransaction{}, nil)

	_, err := svc.ListTransactions(ctx, driverID, 0, -5)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
