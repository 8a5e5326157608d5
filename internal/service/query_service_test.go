package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/parkease/parkease-backend/internal/models"
)

type fakeSlotLister struct {
	slots []models.ParkingSlot
	calls int
}

func (f *fakeSlotLister) ListByCategory(ctx context.Context, category string) ([]models.ParkingSlot, error) {
	f.calls++
	if category == "" {
		return f.slots, nil
	}
	var out []models.ParkingSlot
	for _, s := range f.slots {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeBookingLister struct {
	bookings []models.Booking
	counts   map[string]int
	calls    int
}

func (f *fakeBookingLister) ListByDriver(ctx context.Context, driverID uuid.UUID) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.DriverID == driverID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingLister) CountByStatus(ctx context.Context) (map[string]int, error) {
	f.calls++
	return f.counts, nil
}

type fakeDisputeLister struct {
	disputes []models.Dispute
	counts   map[string]int
}

func (f *fakeDisputeLister) List(ctx context.Context, status string) ([]models.Dispute, error) {
	if status == "" {
		return f.disputes, nil
	}
	var out []models.Dispute
	for _, d := range f.disputes {
		if d.Status == status {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDisputeLister) CountByStatus(ctx context.Context) (map[string]int, error) {
	return f.counts, nil
}

type fakeProviderLister struct {
	providers []models.ProviderApplication
	counts    map[string]int
}

func (f *fakeProviderLister) List(ctx context.Context, status string) ([]models.ProviderApplication, error) {
	if status == "" {
		return f.providers, nil
	}
	var out []models.ProviderApplication
	for _, p := range f.providers {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProviderLister) CountByStatus(ctx context.Context) (map[string]int, error) {
	return f.counts, nil
}

type fakeDriverLister struct {
	drivers []models.Driver
	counts  map[string]int
}

func (f *fakeDriverLister) List(ctx context.Context, status string) ([]models.Driver, error) {
	if status == "" {
		return f.drivers, nil
	}
	var out []models.Driver
	for _, d := range f.drivers {
		if d.Status == status {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDriverLister) CountByStatus(ctx context.Context) (map[string]int, error) {
	return f.counts, nil
}

func newQueryFixture() (*QueryService, *fakeSlotLister, *fakeBookingLister) {
	slots := &fakeSlotLister{slots: []models.ParkingSlot{
		{ID: uuid.New(), Name: "City Center Hub", Location: "MG Road", Category: "car", PricePerHour: 50, Available: true},
		{ID: uuid.New(), Name: "Grand Mall Plaza", Location: "Brigade Road", Category: "car", PricePerHour: 40, Available: true},
		{ID: uuid.New(), Name: "Airport Premium", Location: "KIA Terminal 1", Category: "car", PricePerHour: 100, Available: false},
		{ID: uuid.New(), Name: "Seaside Parking", Location: "Marine Drive", Category: "bike", PricePerHour: 60, Available: true},
	}}
	bookings := &fakeBookingLister{counts: map[string]int{"active": 2, "completed": 5}}
	disputes := &fakeDisputeLister{
		disputes: []models.Dispute{
			{ID: uuid.New(), Title: "Refund not received", Description: "wallet refund missing", Status: models.DisputeStatusOpen},
			{ID: uuid.New(), Title: "Slot was occupied", Description: "another car in my spot", Status: models.DisputeStatusResolved},
		},
		counts: map[string]int{"open": 1, "resolved": 1},
	}
	providers := &fakeProviderLister{counts: map[string]int{"pending": 1}}
	drivers := &fakeDriverLister{counts: map[string]int{"active": 3}}
	svc := NewQueryService(slots, bookings, disputes, providers, drivers, NewCacheService())
	return svc, slots, bookings
}

func TestQueryService_SearchSlots(t *testing.T) {
	ctx := context.Background()

	t.Run("matches name and location case-insensitively", func(t *testing.T) {
		svc, _, _ := newQueryFixture()

		seq, err := svc.SearchSlots(ctx, "", "AIRPORT")
		assert.NoError(t, err)

		var names []string
		for slot := range seq {
			names = append(names, slot.Name)
		}
		assert.Equal(t, []string{"Airport Premium"}, names)
	})

	t.Run("sequence is restartable", func(t *testing.T) {
		svc, _, _ := newQueryFixture()

		seq, err := svc.SearchSlots(ctx, "car", "")
		assert.NoError(t, err)

		first := 0
		for range seq {
			first++
		}
		second := 0
		for range seq {
			second++
		}
		assert.Equal(t, 3, first)
		assert.Equal(t, first, second)
	})

	t.Run("preserves source order", func(t *testing.T) {
		svc, _, _ := newQueryFixture()

		seq, err := svc.SearchSlots(ctx, "", "")
		assert.NoError(t, err)

		var names []string
		for slot := range seq {
			names = append(names, slot.Name)
		}
		assert.Equal(t, []string{"City Center Hub", "Grand Mall Plaza", "Airport Premium", "Seaside Parking"}, names)
	})

	t.Run("early break stops iteration", func(t *testing.T) {
		svc, _, _ := newQueryFixture()

		seq, err := svc.SearchSlots(ctx, "", "")
		assert.NoError(t, err)

		count := 0
		for range seq {
			count++
			if count == 2 {
				break
			}
		}
		assert.Equal(t, 2, count)
	})

	t.Run("treats all as no category filter", func(t *testing.T) {
		svc, _, _ := newQueryFixture()

		seq, err := svc.SearchSlots(ctx, "all", "")
		assert.NoError(t, err)

		count := 0
		for range seq {
			count++
		}
		assert.Equal(t, 4, count)
	})
}

func TestQueryService_ListDisputes(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newQueryFixture()

	t.Run("filters by status", func(t *testing.T) {
		disputes, err := svc.ListDisputes(ctx, models.DisputeStatusOpen, "")
		assert.NoError(t, err)
		assert.Len(t, disputes, 1)
		assert.Equal(t, "Refund not received", disputes[0].Title)
	})

	t.Run("text filter spans title and description", func(t *testing.T) {
		disputes, err := svc.ListDisputes(ctx, "all", "my spot")
		assert.NoError(t, err)
		assert.Len(t, disputes, 1)
		assert.Equal(t, "Slot was occupied", disputes[0].Title)
	})

	t.Run("no match yields empty", func(t *testing.T) {
		disputes, err := svc.ListDisputes(ctx, "", "nonexistent")
		assert.NoError(t, err)
		assert.Empty(t, disputes)
	})
}

func TestQueryService_AggregateStats(t *testing.T) {
	ctx := context.Background()

	t.Run("returns counts per status", func(t *testing.T) {
		svc, _, _ := newQueryFixture()

		counts, err := svc.AggregateStats(ctx, "bookings")
		assert.NoError(t, err)
		assert.Equal(t, map[string]int{"active": 2, "completed": 5}, counts)
	})

	t.Run("second call is served from cache", func(t *testing.T) {
		svc, _, bookings := newQueryFixture()

		_, err := svc.AggregateStats(ctx, "bookings")
		assert.NoError(t, err)
		_, err = svc.AggregateStats(ctx, "bookings")
		assert.NoError(t, err)
		assert.Equal(t, 1, bookings.calls)
	})

	t.Run("unknown entity type", func(t *testing.T) {
		svc, _, _ := newQueryFixture()

		_, err := svc.AggregateStats(ctx, "vehicles")
		assert.Error(t, err)
	})
}

func TestQueryService_ListBookings(t *testing.T) {
	ctx := context.Background()
	svc, _, bookings := newQueryFixture()
	driverID := uuid.New()
	bookings.bookings = []models.Booking{
		{ID: uuid.New(), DriverID: driverID, Status: models.BookingStatusActive},
		{ID: uuid.New(), DriverID: uuid.New(), Status: models.BookingStatusActive},
	}

	list, err := svc.ListBookings(ctx, driverID)
	assert.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, driverID, list[0].DriverID)
}
