package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	DisputeStatusOpen       = "open"
	DisputeStatusInProgress = "in_progress"
	DisputeStatusResolved   = "resolved"
	DisputeStatusClosed     = "closed"
)

const (
	DisputeTypeRefund    = "refund"
	DisputeTypeComplaint = "complaint"
	DisputeTypeTechnical = "technical"
	DisputeTypePayment   = "payment"
)

const (
	DisputePriorityLow    = "low"
	DisputePriorityMedium = "medium"
	DisputePriorityHigh   = "high"
	DisputePriorityUrgent = "urgent"
)

type Dispute struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Title        string     `db:"title" json:"title"`
	Type         string     `db:"type" json:"type"`
	Priority     string     `db:"priority" json:"priority"`
	ReporterID   uuid.UUID  `db:"reporter_id" json:"reporter_id"`
	ReporterRole string     `db:"reporter_role" json:"reporter_role"`
	Description  string     `db:"description" json:"description"`
	Amount       *float64   `db:"amount" json:"amount,omitempty"`
	Status       string     `db:"status" json:"status"`
	Resolution   *string    `db:"resolution" json:"resolution,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
	ResolvedAt   *time.Time `db:"resolved_at" json:"resolved_at,omitempty"`
}
