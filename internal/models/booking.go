package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingStatusActive    = "active"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"
)

// Booking — подтверждённая бронь. Создаётся только вместе со списанием
// с кошелька: не бывает брони без списания и списания без брони.
type Booking struct {
	ID              uuid.UUID  `db:"id" json:"id"`
	SlotID          uuid.UUID  `db:"slot_id" json:"slot_id"`
	DriverID        uuid.UUID  `db:"driver_id" json:"driver_id"`
	VehicleCategory string     `db:"vehicle_category" json:"vehicle_category"`
	Hours           int        `db:"hours" json:"hours"`
	Amount          float64    `db:"amount" json:"amount"`
	Status          string     `db:"status" json:"status"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	CompletedAt     *time.Time `db:"completed_at" json:"completed_at,omitempty"`
	CancelledAt     *time.Time `db:"cancelled_at" json:"cancelled_at,omitempty"`
}
