package service

import (
	"context"
	"iter"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/parkease/parkease-backend/internal/models"
	"github.com/parkease/parkease-backend/internal/pkg/apperror"
)

// Читающие контракты слоя выборок. Никаких побочных эффектов:
// сервис только проецирует то, что отдали репозитории.
type SlotLister interface {
	ListByCategory(ctx context.Context, category string) ([]models.ParkingSlot, error)
}

type BookingLister interface {
	ListByDriver(ctx context.Context, driverID uuid.UUID) ([]models.Booking, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type DisputeLister interface {
	List(ctx context.Context, status string) ([]models.Dispute, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type ProviderLister interface {
	List(ctx context.Context, status string) ([]models.ProviderApplication, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

type DriverLister interface {
	List(ctx context.Context, status string) ([]models.Driver, error)
	CountByStatus(ctx context.Context) (map[string]int, error)
}

const statsCacheTTL = 30 * time.Second

type QueryService struct {
	slots     SlotLister
	bookings  BookingLister
	disputes  DisputeLister
	providers ProviderLister
	drivers   DriverLister
	cache     *CacheService
}

func NewQueryService(slots SlotLister, bookings BookingLister, disputes DisputeLister, providers ProviderLister, drivers DriverLister, cache *CacheService) *QueryService {
	return &QueryService{
		slots:     slots,
		bookings:  bookings,
		disputes:  disputes,
		providers: providers,
		drivers:   drivers,
		cache:     cache,
	}
}

// SearchSlots ищет места по категории и подстроке в имени/локации.
// Возвращает ленивую конечную последовательность в исходном порядке;
// повторный range начинает фильтрацию заново.
func (s *QueryService) SearchSlots(ctx context.Context, category, query string) (iter.Seq[models.ParkingSlot], error) {
	slots, err := s.slots.ListByCategory(ctx, normalizeFilter(category))
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	return func(yield func(models.ParkingSlot) bool) {
		for _, slot := range slots {
			if needle != "" && !matchesQuery(needle, slot.Name, slot.Location) {
				continue
			}
			if !yield(slot) {
				return
			}
		}
	}, nil
}

// ListBookings возвращает брони водителя.
func (s *QueryService) ListBookings(ctx context.Context, driverID uuid.UUID) ([]models.Booking, error) {
	return s.bookings.ListByDriver(ctx, driverID)
}

// ListDisputes возвращает споры с фильтром по статусу и тексту.
func (s *QueryService) ListDisputes(ctx context.Context, status, query string) ([]models.Dispute, error) {
	disputes, err := s.disputes.List(ctx, normalizeFilter(status))
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return disputes, nil
	}

	filtered := make([]models.Dispute, 0, len(disputes))
	for _, d := range disputes {
		if matchesQuery(needle, d.Title, d.Description) {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}

// ListProviders возвращает заявки операторов с фильтрами.
func (s *QueryService) ListProviders(ctx context.Context, status, query string) ([]models.ProviderApplication, error) {
	providers, err := s.providers.List(ctx, normalizeFilter(status))
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return providers, nil
	}

	filtered := make([]models.ProviderApplication, 0, len(providers))
	for _, p := range providers {
		if matchesQuery(needle, p.Name, p.OwnerName, p.Location) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// ListDrivers возвращает водителей с фильтрами.
func (s *QueryService) ListDrivers(ctx context.Context, status, query string) ([]models.Driver, error) {
	drivers, err := s.drivers.List(ctx, normalizeFilter(status))
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return drivers, nil
	}

	filtered := make([]models.Driver, 0, len(drivers))
	for _, d := range drivers {
		if matchesQuery(needle, d.Name, d.Email, d.Phone) {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}

// AggregateStats возвращает количество сущностей по статусам.
// Чистая свёртка; на горячем пути закрыта коротким кэшем.
func (s *QueryService) AggregateStats(ctx context.Context, entityType string) (map[string]int, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get("stats:" + entityType); ok {
			if counts, ok := cached.(map[string]int); ok {
				return counts, nil
			}
		}
	}

	var counts map[string]int
	var err error
	switch entityType {
	case "bookings":
		counts, err = s.bookings.CountByStatus(ctx)
	case "disputes":
		counts, err = s.disputes.CountByStatus(ctx)
	case "providers":
		counts, err = s.providers.CountByStatus(ctx)
	case "drivers":
		counts, err = s.drivers.CountByStatus(ctx)
	default:
		return nil, apperror.New(apperror.ErrCodeValidation, "unknown entity type for stats")
	}
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set("stats:"+entityType, counts, statsCacheTTL)
	}
	return counts, nil
}

// normalizeFilter превращает "all" (и пустоту) в отсутствие фильтра.
func normalizeFilter(status string) string {
	status = strings.TrimSpace(strings.ToLower(status))
	if status == "all" {
		return ""
	}
	return status
}

func matchesQuery(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}
