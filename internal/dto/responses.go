package dto

import (
	"github.com/parkease/parkease-backend/internal/models"
)

// ErrorResponse is the uniform error envelope
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// AuthResponse carries the user together with a fresh token pair
type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// BalanceResponse carries the current wallet balance
type BalanceResponse struct {
	Balance float64 `json:"balance"`
}

// TopUpResponse carries the transaction and the resulting balance
type TopUpResponse struct {
	Transaction *models.WalletTransaction `json:"transaction"`
	Balance     float64                   `json:"balance"`
}

// QuoteResponse carries the price of a prospective booking
type QuoteResponse struct {
	Amount float64 `json:"amount"`
	Hours  int     `json:"hours"`
}

// StatsResponse carries per-status entity counts
type StatsResponse struct {
	EntityType string         `json:"entity_type"`
	Counts     map[string]int `json:"counts"`
}

// ChatResponse carries the assistant reply
type ChatResponse struct {
	Reply string `json:"reply"`
}

// DocumentUploadResponse carries the stored document location
type DocumentUploadResponse struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}
