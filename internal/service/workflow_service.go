package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/parkease/parkease-backend/internal/clock"
	"github.com/parkease/parkease-backend/internal/domain/valueobject"
	"github.com/parkease/parkease-backend/internal/goroutine"
	"github.com/parkease/parkease-backend/internal/logger"
	"github.com/parkease/parkease-backend/internal/models"
	"github.com/parkease/parkease-backend/internal/pkg/apperror"
	"github.com/parkease/parkease-backend/internal/repository"
)

// Типы сущностей в журнале переходов.
const (
	EntityProviderApplication = "provider_application"
	EntityDriverAccount       = "driver_account"
	EntityDispute             = "dispute"
)

type ProviderWorkflowRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.ProviderApplication, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string, at time.Time) error
}

type DriverWorkflowRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Driver, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string, at time.Time) error
}

type DisputeWorkflowRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Dispute, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to string, resolution *string, at time.Time) error
}

type AuditWriter interface {
	Create(ctx context.Context, a *models.TransitionAudit) error
}

// WorkflowService — единый движок переходов статусов для заявок
// операторов, аккаунтов водителей и споров. Таблицы переходов живут
// в domain/valueobject; движок только применяет их, пишет журнал и
// рассылает события.
type WorkflowService struct {
	providers ProviderWorkflowRepository
	drivers   DriverWorkflowRepository
	disputes  DisputeWorkflowRepository
	audits    AuditWriter
	clock     clock.Clock
	notifier  StatusNotifier
}

func NewWorkflowService(providers ProviderWorkflowRepository, drivers DriverWorkflowRepository, disputes DisputeWorkflowRepository, audits AuditWriter, clk clock.Clock) *WorkflowService {
	return &WorkflowService{
		providers: providers,
		drivers:   drivers,
		disputes:  disputes,
		audits:    audits,
		clock:     clk,
	}
}

// SetNotifier подключает рассылку событий смены статуса.
func (s *WorkflowService) SetNotifier(n StatusNotifier) {
	s.notifier = n
}

// TransitionInput — запрос на переход статуса от актора.
type TransitionInput struct {
	EntityID uuid.UUID
	Target   string
	ActorID  uuid.UUID
	Note     string
}

// TransitionProvider применяет переход заявки оператора.
// pending -> approved дополнительно требует полный пакет документов.
func (s *WorkflowService) TransitionProvider(ctx context.Context, in TransitionInput) (*models.ProviderApplication, error) {
	p, err := s.providers.GetByID(ctx, in.EntityID)
	if errors.Is(err, repository.ErrProviderNotFound) {
		return nil, apperror.ErrProviderNotFound
	}
	if err != nil {
		return nil, err
	}

	target, err := valueobject.NewProviderStatus(in.Target)
	if err != nil {
		return nil, apperror.ErrInvalidTransition
	}
	current := valueobject.ProviderStatus(p.Status)
	if !current.CanTransitionTo(target) {
		return nil, apperror.ErrInvalidTransition
	}

	if target == valueobject.ProviderStatusApproved && current == valueobject.ProviderStatusPending && !p.DocumentsComplete() {
		return nil, apperror.New(apperror.ErrCodeValidation, "all required documents must be uploaded before approval")
	}

	now := s.clock.Now()
	if err := s.providers.UpdateStatus(ctx, p.ID, p.Status, string(target), now); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, apperror.ErrInvalidTransition
		}
		return nil, err
	}

	s.commit(ctx, EntityProviderApplication, p.ID, in, p.Status, string(target))
	p.Status = string(target)
	p.UpdatedAt = now
	return p, nil
}

// TransitionDriver применяет переход аккаунта водителя.
func (s *WorkflowService) TransitionDriver(ctx context.Context, in TransitionInput) (*models.Driver, error) {
	d, err := s.drivers.GetByID(ctx, in.EntityID)
	if errors.Is(err, repository.ErrDriverNotFound) {
		return nil, apperror.ErrDriverNotFound
	}
	if err != nil {
		return nil, err
	}

	target, err := valueobject.NewDriverStatus(in.Target)
	if err != nil {
		return nil, apperror.ErrInvalidTransition
	}
	current := valueobject.DriverStatus(d.Status)
	if !current.CanTransitionTo(target) {
		return nil, apperror.ErrInvalidTransition
	}

	now := s.clock.Now()
	if err := s.drivers.UpdateStatus(ctx, d.ID, d.Status, string(target), now); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, apperror.ErrInvalidTransition
		}
		return nil, err
	}

	s.commit(ctx, EntityDriverAccount, d.ID, in, d.Status, string(target))
	d.Status = string(target)
	d.UpdatedAt = now
	return d, nil
}

// TransitionDispute применяет переход спора. Переход в resolved
// требует непустой заметки о решении.
func (s *WorkflowService) TransitionDispute(ctx context.Context, in TransitionInput) (*models.Dispute, error) {
	d, err := s.disputes.GetByID(ctx, in.EntityID)
	if errors.Is(err, repository.ErrDisputeNotFound) {
		return nil, apperror.ErrDisputeNotFound
	}
	if err != nil {
		return nil, err
	}

	target, err := valueobject.NewDisputeStatus(in.Target)
	if err != nil {
		return nil, apperror.ErrInvalidTransition
	}
	current := valueobject.DisputeStatus(d.Status)
	if !current.CanTransitionTo(target) {
		return nil, apperror.ErrInvalidTransition
	}

	var resolution *string
	if target == valueobject.DisputeStatusResolved {
		note := strings.TrimSpace(in.Note)
		if note == "" {
			return nil, apperror.New(apperror.ErrCodeValidation, "a resolution note is required")
		}
		resolution = &note
	}

	now := s.clock.Now()
	if err := s.disputes.UpdateStatus(ctx, d.ID, d.Status, string(target), resolution, now); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, apperror.ErrInvalidTransition
		}
		return nil, err
	}

	s.commit(ctx, EntityDispute, d.ID, in, d.Status, string(target))
	d.Status = string(target)
	d.UpdatedAt = now
	if resolution != nil {
		d.Resolution = resolution
		d.ResolvedAt = &now
	}
	return d, nil
}

// commit — общий хвост успешного перехода: журнал, лог, событие.
func (s *WorkflowService) commit(ctx context.Context, entityType string, entityID uuid.UUID, in TransitionInput, from, to string) {
	audit := &models.TransitionAudit{
		ActorID:    in.ActorID,
		EntityType: entityType,
		EntityID:   entityID,
		FromStatus: from,
		ToStatus:   to,
	}
	if note := strings.TrimSpace(in.Note); note != "" {
		audit.Note = &note
	}

	// Переход уже применён; сбой журнала логируем, но не откатываем.
	if err := s.audits.Create(ctx, audit); err != nil && logger.Log != nil {
		logger.Log.WithError(err).Error("workflow: failed to write transition audit")
	}

	if logger.Log != nil {
		logger.Log.WithFields(logrus.Fields{
			"entity_type": entityType,
			"entity_id":   entityID,
			"actor_id":    in.ActorID,
			"from":        from,
			"to":          to,
		}).Info("workflow: status transition applied")
	}

	if s.notifier != nil {
		payload := map[string]any{
			"entity_type": entityType,
			"entity_id":   entityID,
			"from":        from,
			"to":          to,
		}
		goroutine.SafeGo(func() {
			_ = s.notifier.BroadcastAll("status_changed", payload)
		})
	}
}
