package valueobject

import "github.com/parkease/parkease-backend/internal/pkg/apperror"

// Table описывает допустимые переходы статусов для одной сущности.
type Table map[string][]string

// Allowed проверяет, разрешён ли переход from -> to.
func (t Table) Allowed(from, to string) bool {
	next, ok := t[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

var bookingTransitions = Table{
	string(BookingStatusActive):    {string(BookingStatusCompleted), string(BookingStatusCancelled)},
	string(BookingStatusCompleted): {},
	string(BookingStatusCancelled): {},
}

func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusActive, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

func (s BookingStatus) CanTransitionTo(newStatus BookingStatus) bool {
	return bookingTransitions.Allowed(string(s), string(newStatus))
}

func NewBookingStatus(status string) (BookingStatus, error) {
	s := BookingStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "unknown booking status")
	}
	return s, nil
}

type DisputeStatus string

const (
	DisputeStatusOpen       DisputeStatus = "open"
	DisputeStatusInProgress DisputeStatus = "in_progress"
	DisputeStatusResolved   DisputeStatus = "resolved"
	DisputeStatusClosed     DisputeStatus = "closed"
)

// closed достижим только из resolved.
var disputeTransitions = Table{
	string(DisputeStatusOpen):       {string(DisputeStatusInProgress), string(DisputeStatusResolved)},
	string(DisputeStatusInProgress): {string(DisputeStatusResolved)},
	string(DisputeStatusResolved):   {string(DisputeStatusClosed)},
	string(DisputeStatusClosed):     {},
}

func (s DisputeStatus) IsValid() bool {
	switch s {
	case DisputeStatusOpen, DisputeStatusInProgress, DisputeStatusResolved, DisputeStatusClosed:
		return true
	}
	return false
}

func (s DisputeStatus) CanTransitionTo(newStatus DisputeStatus) bool {
	return disputeTransitions.Allowed(string(s), string(newStatus))
}

func NewDisputeStatus(status string) (DisputeStatus, error) {
	s := DisputeStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "unknown dispute status")
	}
	return s, nil
}

type ProviderStatus string

const (
	ProviderStatusPending   ProviderStatus = "pending"
	ProviderStatusApproved  ProviderStatus = "approved"
	ProviderStatusRejected  ProviderStatus = "rejected"
	ProviderStatusSuspended ProviderStatus = "suspended"
)

// rejected терминален; suspended может вернуться в approved.
var providerTransitions = Table{
	string(ProviderStatusPending):   {string(ProviderStatusApproved), string(ProviderStatusRejected)},
	string(ProviderStatusApproved):  {string(ProviderStatusSuspended)},
	string(ProviderStatusSuspended): {string(ProviderStatusApproved)},
	string(ProviderStatusRejected):  {},
}

func (s ProviderStatus) IsValid() bool {
	switch s {
	case ProviderStatusPending, ProviderStatusApproved, ProviderStatusRejected, ProviderStatusSuspended:
		return true
	}
	return false
}

func (s ProviderStatus) CanTransitionTo(newStatus ProviderStatus) bool {
	return providerTransitions.Allowed(string(s), string(newStatus))
}

func NewProviderStatus(status string) (ProviderStatus, error) {
	s := ProviderStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "unknown provider status")
	}
	return s, nil
}

type DriverStatus string

const (
	DriverStatusActive    DriverStatus = "active"
	DriverStatusInactive  DriverStatus = "inactive"
	DriverStatusSuspended DriverStatus = "suspended"
)

var driverTransitions = Table{
	string(DriverStatusActive):    {string(DriverStatusSuspended), string(DriverStatusInactive)},
	string(DriverStatusSuspended): {string(DriverStatusActive)},
	string(DriverStatusInactive):  {},
}

func (s DriverStatus) IsValid() bool {
	switch s {
	case DriverStatusActive, DriverStatusInactive, DriverStatusSuspended:
		return true
	}
	return false
}

func (s DriverStatus) CanTransitionTo(newStatus DriverStatus) bool {
	return driverTransitions.Allowed(string(s), string(newStatus))
}

func NewDriverStatus(status string) (DriverStatus, error) {
	s := DriverStatus(status)
	if !s.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "unknown driver status")
	}
	return s, nil
}

type VehicleCategory string

const (
	VehicleCategoryCar   VehicleCategory = "car"
	VehicleCategoryBike  VehicleCategory = "bike"
	VehicleCategoryTruck VehicleCategory = "truck"
)

func (c VehicleCategory) IsValid() bool {
	switch c {
	case VehicleCategoryCar, VehicleCategoryBike, VehicleCategoryTruck:
		return true
	}
	return false
}

func NewVehicleCategory(category string) (VehicleCategory, error) {
	c := VehicleCategory(category)
	if !c.IsValid() {
		return "", apperror.New(apperror.ErrCodeValidation, "unknown vehicle category")
	}
	return c, nil
}
