package models

import (
	"time"

	"github.com/google/uuid"
)

// TransitionAudit — запись журнала о применённом переходе статуса.
// Пишется на каждый успешный переход, с актором и временем.
type TransitionAudit struct {
	ID         uuid.UUID `db:"id" json:"id"`
	ActorID    uuid.UUID `db:"actor_id" json:"actor_id"`
	EntityType string    `db:"entity_type" json:"entity_type"`
	EntityID   uuid.UUID `db:"entity_id" json:"entity_id"`
	FromStatus string    `db:"from_status" json:"from_status"`
	ToStatus   string    `db:"to_status" json:"to_status"`
	Note       *string   `db:"note" json:"note,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
