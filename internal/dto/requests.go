package dto

// RegisterRequest represents the request to register a user
type RegisterRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// LoginRequest represents the request to log in
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents the request to refresh a token pair
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TopUpRequest represents the request to top up a wallet
type TopUpRequest struct {
	Amount float64 `json:"amount" binding:"required"`
}

// CreateBookingRequest represents the request to book a parking slot
type CreateBookingRequest struct {
	DriverID        string `json:"driver_id" binding:"required"`
	SlotID          string `json:"slot_id" binding:"required"`
	Hours           int    `json:"hours" binding:"required"`
	VehicleCategory string `json:"vehicle_category" binding:"required"`
}

// QuoteRequest represents the request to price a booking before paying
type QuoteRequest struct {
	SlotID string `json:"slot_id" binding:"required"`
	Hours  int    `json:"hours" binding:"required"`
}

// TransitionRequest represents an admin request to change an entity status
type TransitionRequest struct {
	Target string `json:"target" binding:"required"`
	Note   string `json:"note"`
}

// CreateDisputeRequest represents the request to open a dispute
type CreateDisputeRequest struct {
	Title       string   `json:"title" binding:"required"`
	Type        string   `json:"type" binding:"required"`
	Priority    string   `json:"priority"`
	Description string   `json:"description" binding:"required"`
	Amount      *float64 `json:"amount"`
}

// CreateProviderRequest represents the request to apply as a parking provider
type CreateProviderRequest struct {
	Name      string `json:"name" binding:"required"`
	OwnerName string `json:"owner_name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Location  string `json:"location" binding:"required"`
	SlotCount int    `json:"slot_count" binding:"required"`
}

// CreateSlotRequest represents the request to publish a parking slot
type CreateSlotRequest struct {
	ProviderID   string  `json:"provider_id" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Location     string  `json:"location" binding:"required"`
	Category     string  `json:"category" binding:"required"`
	PricePerHour float64 `json:"price_per_hour" binding:"required"`
}

// CreateDriverRequest represents the request to register a driver account
type CreateDriverRequest struct {
	Name          string  `json:"name" binding:"required"`
	Email         string  `json:"email" binding:"required"`
	Phone         string  `json:"phone" binding:"required"`
	VehicleNumber *string `json:"vehicle_number"`
}

// ChatRequest represents a message to the help assistant
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}
