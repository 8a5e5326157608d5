package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBookingStatusTransitions(t *testing.T) {
	assert.True(t, BookingStatusActive.CanTransitionTo(BookingStatusCompleted))
	assert.True(t, BookingStatusActive.CanTransitionTo(BookingStatusCancelled))

	// Терминальные статусы
	assert.False(t, BookingStatusCompleted.CanTransitionTo(BookingStatusActive))
	assert.False(t, BookingStatusCompleted.CanTransitionTo(BookingStatusCancelled))
	assert.False(t, BookingStatusCancelled.CanTransitionTo(BookingStatusActive))
	assert.False(t, BookingStatusCancelled.CanTransitionTo(BookingStatusCompleted))
}

func TestDisputeStatusTransitions(t *testing.T) {
	assert.True(t, DisputeStatusOpen.CanTransitionTo(DisputeStatusInProgress))
	assert.True(t, DisputeStatusOpen.CanTransitionTo(DisputeStatusResolved))
	assert.True(t, DisputeStatusInProgress.CanTransitionTo(DisputeStatusResolved))
	assert.True(t, DisputeStatusResolved.CanTransitionTo(DisputeStatusClosed))

	// closed достижим только из resolved
	assert.False(t, DisputeStatusOpen.CanTransitionTo(DisputeStatusClosed))
	assert.False(t, DisputeStatusInProgress.CanTransitionTo(DisputeStatusClosed))
	assert.False(t, DisputeStatusInProgress.CanTransitionTo(DisputeStatusOpen))
	assert.False(t, DisputeStatusResolved.CanTransitionTo(DisputeStatusOpen))
	assert.False(t, DisputeStatusClosed.CanTransitionTo(DisputeStatusOpen))
}

func TestProviderStatusTransitions(t *testing.T) {
	assert.True(t, ProviderStatusPending.CanTransitionTo(ProviderStatusApproved))
	assert.True(t, ProviderStatusPending.CanTransitionTo(ProviderStatusRejected))
	assert.True(t, ProviderStatusApproved.CanTransitionTo(ProviderStatusSuspended))
	assert.True(t, ProviderStatusSuspended.CanTransitionTo(ProviderStatusApproved))

	assert.False(t, ProviderStatusPending.CanTransitionTo(ProviderStatusSuspended))
	assert.False(t, ProviderStatusApproved.CanTransitionTo(ProviderStatusPending))
	assert.False(t, ProviderStatusApproved.CanTransitionTo(ProviderStatusRejected))
	assert.False(t, ProviderStatusRejected.CanTransitionTo(ProviderStatusApproved))
	assert.False(t, ProviderStatusSuspended.CanTransitionTo(ProviderStatusRejected))
}

func TestDriverStatusTransitions(t *testing.T) {
	assert.True(t, DriverStatusActive.CanTransitionTo(DriverStatusSuspended))
	assert.True(t, DriverStatusActive.CanTransitionTo(DriverStatusInactive))
	assert.True(t, DriverStatusSuspended.CanTransitionTo(DriverStatusActive))

	assert.False(t, DriverStatusInactive.CanTransitionTo(DriverStatusActive))
	assert.False(t, DriverStatusSuspended.CanTransitionTo(DriverStatusInactive))
}

func TestNewStatusRejectsUnknownValues(t *testing.T) {
	_, err := NewBookingStatus("parked")
	assert.Error(t, err)

	_, err = NewDisputeStatus("escalated")
	assert.Error(t, err)

	_, err = NewProviderStatus("archived")
	assert.Error(t, err)

	_, err = NewDriverStatus("banned")
	assert.Error(t, err)

	_, err = NewVehicleCategory("scooter")
	assert.Error(t, err)
}
