package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/parkease/parkease-backend/internal/clock"
	"github.com/parkease/parkease-backend/internal/models"
	"github.com/parkease/parkease-backend/internal/pkg/apperror"
	"github.com/parkease/parkease-backend/internal/repository"
)

type fakeProviderWorkflowRepo struct {
	provider *models.ProviderApplication
}

func (f *fakeProviderWorkflowRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.ProviderApplication, error) {
	if f.provider == nil || f.provider.ID != id {
		return nil, repository.ErrProviderNotFound
	}
	copied := *f.provider
	return &copied, nil
}

func (f *fakeProviderWorkflowRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string, at time.Time) error {
	if f.provider.Status != from {
		return repository.ErrStatusConflict
	}
	f.provider.Status = to
	f.provider.UpdatedAt = at
	return nil
}

type fakeDriverWorkflowRepo struct {
	driver *models.Driver
}

func (f *fakeDriverWorkflowRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Driver, error) {
	if f.driver == nil || f.driver.ID != id {
		return nil, repository.ErrDriverNotFound
	}
	copied := *f.driver
	return &copied, nil
}

func (f *fakeDriverWorkflowRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string, at time.Time) error {
	if f.driver.Status != from {
		return repository.ErrStatusConflict
	}
	f.driver.Status = to
	f.driver.UpdatedAt = at
	return nil
}

type fakeDisputeWorkflowRepo struct {
	dispute *models.Dispute
}

func (f *fakeDisputeWorkflowRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Dispute, error) {
	if f.dispute == nil || f.dispute.ID != id {
		return nil, repository.ErrDisputeNotFound
	}
	copied := *f.dispute
	return &copied, nil
}

func (f *fakeDisputeWorkflowRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to string, resolution *string, at time.Time) error {
	if f.dispute.Status != from {
		return repository.ErrStatusConflict
	}
	f.dispute.Status = to
	f.dispute.UpdatedAt = at
	if resolution != nil {
		f.dispute.Resolution = resolution
		f.dispute.ResolvedAt = &at
	}
	return nil
}

type fakeAuditLog struct {
	entries []models.TransitionAudit
}

func (f *fakeAuditLog) Create(ctx context.Context, a *models.TransitionAudit) error {
	f.entries = append(f.entries, *a)
	return nil
}

func newWorkflowFixture() (*WorkflowService, *fakeProviderWorkflowRepo, *fakeDriverWorkflowRepo, *fakeDisputeWorkflowRepo, *fakeAuditLog) {
	providers := &fakeProviderWorkflowRepo{provider: &models.ProviderApplication{
		ID:           uuid.New(),
		Name:         "Lakeside Lots",
		Status:       models.ProviderStatusPending,
		DocLicense:   true,
		DocInsurance: true,
		DocTax:       true,
	}}
	drivers := &fakeDriverWorkflowRepo{driver: &models.Driver{
		ID:     uuid.New(),
		Name:   "Alex Driver",
		Status: models.DriverStatusActive,
	}}
	amount := 75.0
	disputes := &fakeDisputeWorkflowRepo{dispute: &models.Dispute{
		ID:       uuid.New(),
		Title:    "Refund not received for cancelled booking",
		Type:     models.DisputeTypeRefund,
		Priority: models.DisputePriorityHigh,
		Amount:   &amount,
		Status:   models.DisputeStatusOpen,
	}}
	audits := &fakeAuditLog{}
	svc := NewWorkflowService(providers, drivers, disputes, audits, clock.NewFixed(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)))
	return svc, providers, drivers, disputes, audits
}

func TestWorkflowService_TransitionDispute(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("walks open to in_progress to resolved", func(t *testing.T) {
		svc, _, _, disputes, audits := newWorkflowFixture()
		id := disputes.dispute.ID

		d, err := svc.TransitionDispute(ctx, TransitionInput{EntityID: id, Target: models.DisputeStatusInProgress, ActorID: actor})
		assert.NoError(t, err)
		assert.Equal(t, models.DisputeStatusInProgress, d.Status)

		d, err = svc.TransitionDispute(ctx, TransitionInput{EntityID: id, Target: models.DisputeStatusResolved, ActorID: actor, Note: "refunded 75 to wallet"})
		assert.NoError(t, err)
		assert.Equal(t, models.DisputeStatusResolved, d.Status)
		assert.NotNil(t, d.Resolution)
		assert.Equal(t, "refunded 75 to wallet", *d.Resolution)
		assert.NotNil(t, d.ResolvedAt)

		assert.Len(t, audits.entries, 2)
		assert.Equal(t, models.DisputeStatusOpen, audits.entries[0].FromStatus)
		assert.Equal(t, models.DisputeStatusInProgress, audits.entries[0].ToStatus)
		assert.Equal(t, EntityDispute, audits.entries[0].EntityType)
		assert.Equal(t, actor, audits.entries[0].ActorID)
		assert.Equal(t, models.DisputeStatusInProgress, audits.entries[1].FromStatus)
		assert.Equal(t, models.DisputeStatusResolved, audits.entries[1].ToStatus)
	})

	t.Run("open cannot jump to closed", func(t *testing.T) {
		svc, _, _, disputes, audits := newWorkflowFixture()

		_, err := svc.TransitionDispute(ctx, TransitionInput{EntityID: disputes.dispute.ID, Target: models.DisputeStatusClosed, ActorID: actor})
		assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
		assert.Equal(t, models.DisputeStatusOpen, disputes.dispute.Status)
		assert.Empty(t, audits.entries)
	})

	t.Run("resolved requires a note", func(t *testing.T) {
		svc, _, _, disputes, _ := newWorkflowFixture()
		id := disputes.dispute.ID

		_, err := svc.TransitionDispute(ctx, TransitionInput{EntityID: id, Target: models.DisputeStatusInProgress, ActorID: actor})
		assert.NoError(t, err)

		_, err = svc.TransitionDispute(ctx, TransitionInput{EntityID: id, Target: models.DisputeStatusResolved, ActorID: actor, Note: "   "})
		assert.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
		assert.Equal(t, models.DisputeStatusInProgress, disputes.dispute.Status)
	})

	t.Run("open can resolve directly", func(t *testing.T) {
		svc, _, _, disputes, _ := newWorkflowFixture()

		d, err := svc.TransitionDispute(ctx, TransitionInput{EntityID: disputes.dispute.ID, Target: models.DisputeStatusResolved, ActorID: actor, Note: "duplicate of another dispute"})
		assert.NoError(t, err)
		assert.Equal(t, models.DisputeStatusResolved, d.Status)
	})

	t.Run("resolved can close", func(t *testing.T) {
		svc, _, _, disputes, _ := newWorkflowFixture()
		disputes.dispute.Status = models.DisputeStatusResolved

		d, err := svc.TransitionDispute(ctx, TransitionInput{EntityID: disputes.dispute.ID, Target: models.DisputeStatusClosed, ActorID: actor})
		assert.NoError(t, err)
		assert.Equal(t, models.DisputeStatusClosed, d.Status)
	})

	t.Run("unknown target status", func(t *testing.T) {
		svc, _, _, disputes, _ := newWorkflowFixture()

		_, err := svc.TransitionDispute(ctx, TransitionInput{EntityID: disputes.dispute.ID, Target: "escalated", ActorID: actor})
		assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
	})

	t.Run("unknown dispute", func(t *testing.T) {
		svc, _, _, _, _ := newWorkflowFixture()

		_, err := svc.TransitionDispute(ctx, TransitionInput{EntityID: uuid.New(), Target: models.DisputeStatusInProgress, ActorID: actor})
		assert.ErrorIs(t, err, apperror.ErrDisputeNotFound)
	})
}

func TestWorkflowService_TransitionProvider(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("approves pending application with full documents", func(t *testing.T) {
		svc, providers, _, _, audits := newWorkflowFixture()

		p, err := svc.TransitionProvider(ctx, TransitionInput{EntityID: providers.provider.ID, Target: models.ProviderStatusApproved, ActorID: actor})
		assert.NoError(t, err)
		assert.Equal(t, models.ProviderStatusApproved, p.Status)
		assert.Len(t, audits.entries, 1)
		assert.Equal(t, EntityProviderApplication, audits.entries[0].EntityType)
	})

	t.Run("incomplete documents block approval", func(t *testing.T) {
		svc, providers, _, _, audits := newWorkflowFixture()
		providers.provider.DocInsurance = false

		_, err := svc.TransitionProvider(ctx, TransitionInput{EntityID: providers.provider.ID, Target: models.ProviderStatusApproved, ActorID: actor})
		assert.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
		assert.Equal(t, models.ProviderStatusPending, providers.provider.Status)
		assert.Empty(t, audits.entries)
	})

	t.Run("incomplete documents do not block rejection", func(t *testing.T) {
		svc, providers, _, _, _ := newWorkflowFixture()
		providers.provider.DocLicense = false

		p, err := svc.TransitionProvider(ctx, TransitionInput{EntityID: providers.provider.ID, Target: models.ProviderStatusRejected, ActorID: actor, Note: "license missing"})
		assert.NoError(t, err)
		assert.Equal(t, models.ProviderStatusRejected, p.Status)
	})

	t.Run("approved can be suspended and restored", func(t *testing.T) {
		svc, providers, _, _, _ := newWorkflowFixture()
		providers.provider.Status = models.ProviderStatusApproved

		p, err := svc.TransitionProvider(ctx, TransitionInput{EntityID: providers.provider.ID, Target: models.ProviderStatusSuspended, ActorID: actor})
		assert.NoError(t, err)
		assert.Equal(t, models.ProviderStatusSuspended, p.Status)

		p, err = svc.TransitionProvider(ctx, TransitionInput{EntityID: providers.provider.ID, Target: models.ProviderStatusApproved, ActorID: actor})
		assert.NoError(t, err)
		assert.Equal(t, models.ProviderStatusApproved, p.Status)
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		svc, providers, _, _, _ := newWorkflowFixture()
		providers.provider.Status = models.ProviderStatusRejected

		_, err := svc.TransitionProvider(ctx, TransitionInput{EntityID: providers.provider.ID, Target: models.ProviderStatusApproved, ActorID: actor})
		assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
	})
}

func TestWorkflowService_TransitionDriver(t *testing.T) {
	ctx := context.Background()
	actor := uuid.New()

	t.Run("suspend and reinstate", func(t *testing.T) {
		svc, _, drivers, _, audits := newWorkflowFixture()
		id := drivers.driver.ID

		d, err := svc.TransitionDriver(ctx, TransitionInput{EntityID: id, Target: models.DriverStatusSuspended, ActorID: actor, Note: "repeated no-shows"})
		assert.NoError(t, err)
		assert.Equal(t, models.DriverStatusSuspended, d.Status)

		d, err = svc.TransitionDriver(ctx, TransitionInput{EntityID: id, Target: models.DriverStatusActive, ActorID: actor})
		assert.NoError(t, err)
		assert.Equal(t, models.DriverStatusActive, d.Status)

		assert.Len(t, audits.entries, 2)
		assert.Equal(t, "repeated no-shows", *audits.entries[0].Note)
	})

	t.Run("inactive is terminal", func(t *testing.T) {
		svc, _, drivers, _, _ := newWorkflowFixture()
		drivers.driver.Status = models.DriverStatusInactive

		_, err := svc.TransitionDriver(ctx, TransitionInput{EntityID: drivers.driver.ID, Target: models.DriverStatusActive, ActorID: actor})
		assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
	})

	t.Run("suspended cannot go inactive", func(t *testing.T) {
		svc, _, drivers, _, _ := newWorkflowFixture()
		drivers.driver.Status = models.DriverStatusSuspended

		_, err := svc.TransitionDriver(ctx, TransitionInput{EntityID: drivers.driver.ID, Target: models.DriverStatusInactive, ActorID: actor})
		assert.ErrorIs(t, err, apperror.ErrInvalidTransition)
	})
}
