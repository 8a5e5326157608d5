package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/parkease/parkease-backend/internal/clock"
	"github.com/parkease/parkease-backend/internal/domain/valueobject"
	"github.com/parkease/parkease-backend/internal/goroutine"
	"github.com/parkease/parkease-backend/internal/logger"
	"github.com/parkease/parkease-backend/internal/models"
	"github.com/parkease/parkease-backend/internal/pkg/apperror"
	"github.com/parkease/parkease-backend/internal/repository"
)

const (
	MinBookingHours = 1
	MaxBookingHours = 24
)

// BookingRepository — контракт хранилища броней. CreateWithDebit обязан
// выполнять списание, занятие места и вставку брони атомарно.
type BookingRepository interface {
	CreateWithDebit(ctx context.Context, b *models.Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	Complete(ctx context.Context, id uuid.UUID, at time.Time) error
	CancelWithRefund(ctx context.Context, id uuid.UUID, at time.Time) error
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]models.Booking, error)
}

type SlotGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.ParkingSlot, error)
}

type DriverGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Driver, error)
}

type BookingService struct {
	bookings BookingRepository
	slots    SlotGetter
	drivers  DriverGetter
	clock    clock.Clock
	notifier StatusNotifier
}

func NewBookingService(bookings BookingRepository, slots SlotGetter, drivers DriverGetter, clk clock.Clock) *BookingService {
	return &BookingService{
		bookings: bookings,
		slots:    slots,
		drivers:  drivers,
		clock:    clk,
	}
}

// SetNotifier подключает рассылку событий брони.
func (s *BookingService) SetNotifier(n StatusNotifier) {
	s.notifier = n
}

// Quote считает стоимость брони: цена места * часы.
func (s *BookingService) Quote(ctx context.Context, slotID uuid.UUID, hours int) (float64, error) {
	if hours < MinBookingHours || hours > MaxBookingHours {
		return 0, apperror.ErrInvalidDuration
	}

	slot, err := s.slots.GetByID(ctx, slotID)
	if errors.Is(err, repository.ErrSlotNotFound) {
		return 0, apperror.ErrSlotNotFound
	}
	if err != nil {
		return 0, err
	}
	if !slot.Available {
		return 0, apperror.ErrSlotUnavailable
	}

	return slot.PricePerHour * float64(hours), nil
}

type CreateBookingInput struct {
	DriverID        uuid.UUID
	SlotID          uuid.UUID
	Hours           int
	VehicleCategory string
}

// AuthorizeAndBook превращает запрос в бронь плюс списание с кошелька,
// как одну логическую транзакцию: либо и то и другое, либо ничего.
func (s *BookingService) AuthorizeAndBook(ctx context.Context, in CreateBookingInput) (*models.Booking, error) {
	category, err := valueobject.NewVehicleCategory(in.VehicleCategory)
	if err != nil {
		return nil, err
	}
	if in.Hours < MinBookingHours || in.Hours > MaxBookingHours {
		return nil, apperror.ErrInvalidDuration
	}

	driver, err := s.drivers.GetByID(ctx, in.DriverID)
	if errors.Is(err, repository.ErrDriverNotFound) {
		return nil, apperror.ErrAccountNotFound
	}
	if err != nil {
		return nil, err
	}
	// Приостановленный или неактивный аккаунт не создаёт новых броней.
	if driver.Status != models.DriverStatusActive {
		return nil, apperror.ErrDriverSuspended
	}

	slot, err := s.slots.GetByID(ctx, in.SlotID)
	if errors.Is(err, repository.ErrSlotNotFound) {
		return nil, apperror.ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	if !slot.Available {
		return nil, apperror.ErrSlotUnavailable
	}
	if slot.Category != string(category) {
		return nil, apperror.New(apperror.ErrCodeValidation, "vehicle category does not match the slot category")
	}

	booking := &models.Booking{
		SlotID:          slot.ID,
		DriverID:        driver.ID,
		VehicleCategory: string(category),
		Hours:           in.Hours,
		Amount:          slot.PricePerHour * float64(in.Hours),
		Status:          models.BookingStatusActive,
	}

	if err := s.bookings.CreateWithDebit(ctx, booking); err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientFunds):
			return nil, apperror.ErrInsufficientFunds
		case errors.Is(err, repository.ErrSlotUnavailable):
			return nil, apperror.ErrSlotUnavailable
		case errors.Is(err, repository.ErrAccountNotFound):
			return nil, apperror.ErrAccountNotFound
		}
		return nil, err
	}

	s.logEvent(booking, "booking created")
	s.notify(driver.ID, "booking_created", booking)

	return booking, nil
}

// Complete переводит бронь в completed. Идемпотентно: повторный вызов
// сообщает AlreadyCompleted и ничего не меняет.
func (s *BookingService) Complete(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	switch booking.Status {
	case models.BookingStatusCompleted:
		return booking, apperror.ErrAlreadyCompleted
	case models.BookingStatusCancelled:
		return nil, apperror.ErrInvalidTransition
	}

	now := s.clock.Now()
	if err := s.bookings.Complete(ctx, bookingID, now); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			// Конкурирующий вызов успел раньше; перечитываем итог.
			return s.resolveConflict(ctx, bookingID)
		}
		return nil, err
	}

	booking.Status = models.BookingStatusCompleted
	booking.CompletedAt = &now

	s.logEvent(booking, "booking completed")
	s.notify(booking.DriverID, "booking_completed", booking)

	return booking, nil
}

// Cancel переводит бронь в cancelled с полным возвратом средств.
func (s *BookingService) Cancel(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status != models.BookingStatusActive {
		return nil, apperror.ErrInvalidTransition
	}

	now := s.clock.Now()
	if err := s.bookings.CancelWithRefund(ctx, bookingID, now); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, apperror.ErrInvalidTransition
		}
		return nil, err
	}

	booking.Status = models.BookingStatusCancelled
	booking.CancelledAt = &now

	s.logEvent(booking, "booking cancelled, full refund issued")
	s.notify(booking.DriverID, "booking_cancelled", booking)

	return booking, nil
}

// GetBooking возвращает бронь по идентификатору.
func (s *BookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	return s.getBooking(ctx, bookingID)
}

func (s *BookingService) getBooking(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if errors.Is(err, repository.ErrBookingNotFound) {
		return nil, apperror.ErrBookingNotFound
	}
	if err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) resolveConflict(ctx context.Context, bookingID uuid.UUID) (*models.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Status == models.BookingStatusCompleted {
		return booking, apperror.ErrAlreadyCompleted
	}
	return nil, apperror.ErrInvalidTransition
}

func (s *BookingService) logEvent(b *models.Booking, msg string) {
	if logger.Log == nil {
		return
	}
	logger.Log.WithFields(logrus.Fields{
		"booking_id": b.ID,
		"driver_id":  b.DriverID,
		"slot_id":    b.SlotID,
		"amount":     b.Amount,
		"status":     b.Status,
	}).Info(msg)
}

func (s *BookingService) notify(driverID uuid.UUID, event string, b *models.Booking) {
	if s.notifier == nil {
		return
	}
	snapshot := *b
	goroutine.SafeGo(func() {
		_ = s.notifier.BroadcastToUser(driverID, event, snapshot)
	})
}
