package models

import (
	"time"

	"github.com/google/uuid"
)

// ParkingSlot — одно бронируемое место оператора.
// Доступность бинарная: место либо свободно, либо занято активной бронью.
// TODO: заменить флаг на счётчик вместимости, когда операторы начнут
// выставлять несколько мест под одним объектом.
type ParkingSlot struct {
	ID           uuid.UUID `db:"id" json:"id"`
	ProviderID   uuid.UUID `db:"provider_id" json:"provider_id"`
	Name         string    `db:"name" json:"name"`
	Location     string    `db:"location" json:"location"`
	Category     string    `db:"category" json:"category"`
	PricePerHour float64   `db:"price_per_hour" json:"price_per_hour"`
	Available    bool      `db:"available" json:"available"`
	Rating       float64   `db:"rating" json:"rating"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
