package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DriverStatusActive    = "active"
	DriverStatusInactive  = "inactive"
	DriverStatusSuspended = "suspended"
)

// Driver описывает аккаунт водителя с балансом кошелька.
// Баланс меняется только через WalletRepository/BookingRepository.
type Driver struct {
	ID            uuid.UUID `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Email         string    `db:"email" json:"email"`
	Phone         string    `db:"phone" json:"phone"`
	VehicleNumber *string   `db:"vehicle_number" json:"vehicle_number,omitempty"`
	Status        string    `db:"status" json:"status"`
	WalletBalance float64   `db:"wallet_balance" json:"wallet_balance"`
	TotalBookings int       `db:"total_bookings" json:"total_bookings"`
	Rating        float64   `db:"rating" json:"rating"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
