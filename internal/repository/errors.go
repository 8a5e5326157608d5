package repository

import "errors"

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrDriverNotFound    = errors.New("driver not found")
	ErrProviderNotFound  = errors.New("provider application not found")
	ErrSlotNotFound      = errors.New("parking slot not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrDisputeNotFound   = errors.New("dispute not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already registered")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSlotUnavailable   = errors.New("slot unavailable")
	// ErrStatusConflict возвращается, когда guard по текущему статусу
	// не нашёл строку: кто-то успел применить конкурирующий переход.
	ErrStatusConflict = errors.New("status conflict")
)
