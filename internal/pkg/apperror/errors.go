package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound          ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized      ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden         ErrorCode = "FORBIDDEN"
	ErrCodeBadRequest        ErrorCode = "BAD_REQUEST"
	ErrCodeConflict          ErrorCode = "CONFLICT"
	ErrCodeInternal          ErrorCode = "INTERNAL_ERROR"
	ErrCodeValidation        ErrorCode = "VALIDATION_ERROR"
	ErrCodeInsufficientFunds ErrorCode = "INSUFFICIENT_FUNDS"
	ErrCodeInvalidTransition ErrorCode = "INVALID_TRANSITION"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeForbidden:
		return http.StatusForbidden
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeConflict, ErrCodeInvalidTransition:
		return http.StatusConflict
	case ErrCodeInsufficientFunds:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeNotFound
}

func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == ErrCodeValidation
}

func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// Бизнес-ошибки ядра. Каждая несёт текст подсказки для пользователя,
// который презентационный слой показывает как есть.
var (
	ErrInsufficientFunds = New(ErrCodeInsufficientFunds, "insufficient wallet balance, please top up your wallet to proceed")
	ErrSlotUnavailable   = New(ErrCodeConflict, "this parking slot is not available right now")
	ErrInvalidDuration   = New(ErrCodeValidation, "booking duration must be between 1 and 24 hours")
	ErrAccountNotFound   = New(ErrCodeNotFound, "account not found")
	ErrInvalidTransition = New(ErrCodeInvalidTransition, "this status transition is not allowed")
	ErrAlreadyCompleted  = New(ErrCodeConflict, "booking is already completed")
	ErrBookingNotFound   = New(ErrCodeNotFound, "booking not found")
	ErrSlotNotFound      = New(ErrCodeNotFound, "parking slot not found")
	ErrDisputeNotFound   = New(ErrCodeNotFound, "dispute not found")
	ErrProviderNotFound  = New(ErrCodeNotFound, "provider application not found")
	ErrDriverNotFound    = New(ErrCodeNotFound, "driver not found")
	ErrDriverSuspended   = New(ErrCodeForbidden, "your account is suspended, new bookings are blocked")
	ErrUnauthorized      = New(ErrCodeUnauthorized, "authorization required")
	ErrForbidden         = New(ErrCodeForbidden, "insufficient permissions")
)
