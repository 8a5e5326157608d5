package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ProviderStatusPending   = "pending"
	ProviderStatusApproved  = "approved"
	ProviderStatusRejected  = "rejected"
	ProviderStatusSuspended = "suspended"
)

// ProviderApplication описывает заявку оператора парковки.
// Флаги документов выставляются загрузкой через DocumentStorage.
type ProviderApplication struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	OwnerName    string    `db:"owner_name" json:"owner_name"`
	Email        string    `db:"email" json:"email"`
	Phone        string    `db:"phone" json:"phone"`
	Location     string    `db:"location" json:"location"`
	SlotCount    int       `db:"slot_count" json:"slot_count"`
	Status       string    `db:"status" json:"status"`
	Rating       *float64  `db:"rating" json:"rating,omitempty"`
	DocLicense   bool      `db:"doc_license" json:"doc_license"`
	DocInsurance bool      `db:"doc_insurance" json:"doc_insurance"`
	DocTax       bool      `db:"doc_tax" json:"doc_tax"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// DocumentsComplete сообщает, загружен ли полный пакет документов.
func (p *ProviderApplication) DocumentsComplete() bool {
	return p.DocLicense && p.DocInsurance && p.DocTax
}
