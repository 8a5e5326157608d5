package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TransactionTypeTopup   = "topup"
	TransactionTypeBooking = "booking"
	TransactionTypeRefund  = "refund"
)

// WalletTransaction — строка истории кошелька водителя.
type WalletTransaction struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	DriverID    uuid.UUID  `db:"driver_id" json:"driver_id"`
	BookingID   *uuid.UUID `db:"booking_id" json:"booking_id,omitempty"`
	Type        string     `db:"type" json:"type"`
	Amount      float64    `db:"amount" json:"amount"`
	Description string     `db:"description" json:"description"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}
