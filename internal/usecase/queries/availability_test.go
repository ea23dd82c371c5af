//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"parkspot/internal/domain/garage"
	"parkspot/internal/infra"
	"parkspot/internal/infra/cache"
	"parkspot/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubBookingStore struct {
	views     []*queries.BookingView
	listCalls int
}

func (s *stubBookingStore) FindByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	for _, v := range s.views {
		if v.ID == id {
			return v, nil
		}
	}
	return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
}

func (s *stubBookingStore) ListByUser(_ context.Context, userID uuid.UUID) ([]*queries.BookingView, error) {
	var result []*queries.BookingView
	for _, v := range s.views {
		if v.UserID == userID {
			result = append(result, v)
		}
	}
	return result, nil
}

func (s *stubBookingStore) ListBlockingByGarage(_ context.Context, garageID uuid.UUID, from, to time.Time) ([]*queries.BookingView, error) {
	s.listCalls++
	var result []*queries.BookingView
	for _, v := range s.views {
		if v.GarageID == garageID && v.StartTime.Before(to) && from.Before(v.EndTime) {
			result = append(result, v)
		}
	}
	return result, nil
}

type stubScheduleStore struct {
	schedule garage.WeeklySchedule
}

func (s *stubScheduleStore) ActiveByGarage(_ context.Context, _ uuid.UUID) (garage.WeeklySchedule, error) {
	return s.schedule, nil
}

func allWeekSchedule(t *testing.T, garageID uuid.UUID) garage.WeeklySchedule {
	t.Helper()
	var schedule garage.WeeklySchedule
	for day := 0; day < 7; day++ {
		entry, err := garage.NewScheduleEntry(garageID, day, "00:00", "23:59")
		require.NoError(t, err)
		schedule = append(schedule, entry)
	}
	return schedule
}

func TestAvailabilityDay(t *testing.T) {
	ctx := context.Background()
	garageID := uuid.New()
	// Use a local-midnight anchor so the date string and the day window agree
	// regardless of the test machine's zone.
	dayStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)
	date := dayStart.Format("2006-01-02")

	booked := &queries.BookingView{
		ID:        uuid.New(),
		GarageID:  garageID,
		UserID:    uuid.New(),
		StartTime: dayStart.Add(10 * time.Hour),
		EndTime:   dayStart.Add(12 * time.Hour),
		Status:    "CONFIRMED",
	}

	t.Run("lists occupied slots for the date", func(t *testing.T) {
		store := &stubBookingStore{views: []*queries.BookingView{booked}}
		q := queries.NewAvailabilityQueries(store, &stubScheduleStore{}, cache.NewMemoryCache(time.Minute))

		day, err := q.Day(ctx, garageID, date)
		require.NoError(t, err)
		assert.Equal(t, date, day.Date)
		require.Len(t, day.Booked, 1)
		assert.True(t, day.Booked[0].StartTime.Equal(booked.StartTime))
	})

	t.Run("second read is served from cache", func(t *testing.T) {
		store := &stubBookingStore{views: []*queries.BookingView{booked}}
		q := queries.NewAvailabilityQueries(store, &stubScheduleStore{}, cache.NewMemoryCache(time.Minute))

		_, err := q.Day(ctx, garageID, date)
		require.NoError(t, err)
		_, err = q.Day(ctx, garageID, date)
		require.NoError(t, err)

		assert.Equal(t, 1, store.listCalls)
	})

	t.Run("rejects malformed dates", func(t *testing.T) {
		q := queries.NewAvailabilityQueries(&stubBookingStore{}, &stubScheduleStore{}, cache.NewMemoryCache(time.Minute))

		_, err := q.Day(ctx, garageID, "02/03/2026")
		assert.Error(t, err)
	})
}

func TestAvailabilityCheckWindow(t *testing.T) {
	ctx := context.Background()
	garageID := uuid.New()
	dayStart := time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local) // Monday

	newQueries := func(t *testing.T, store *stubBookingStore, schedule garage.WeeklySchedule) queries.AvailabilityQueries {
		t.Helper()
		return queries.NewAvailabilityQueries(store, &stubScheduleStore{schedule: schedule}, cache.NewMemoryCache(time.Minute))
	}

	t.Run("free window is available", func(t *testing.T) {
		q := newQueries(t, &stubBookingStore{}, allWeekSchedule(t, garageID))

		result, err := q.CheckWindow(ctx, garageID, dayStart.Add(10*time.Hour), dayStart.Add(12*time.Hour))
		require.NoError(t, err)
		assert.True(t, result.Available)
		assert.Empty(t, result.Reasons)
	})

	t.Run("schedule gap wins over booking check", func(t *testing.T) {
		entry, err := garage.NewScheduleEntry(garageID, 1, "08:00", "09:00")
		require.NoError(t, err)
		q := newQueries(t, &stubBookingStore{}, garage.WeeklySchedule{entry})

		result, err := q.CheckWindow(ctx, garageID, dayStart.Add(10*time.Hour), dayStart.Add(12*time.Hour))
		require.NoError(t, err)
		assert.False(t, result.Available)
		assert.NotEmpty(t, result.Reasons)
	})

	t.Run("overlapping booking blocks the window", func(t *testing.T) {
		store := &stubBookingStore{views: []*queries.BookingView{{
			ID:        uuid.New(),
			GarageID:  garageID,
			StartTime: dayStart.Add(10 * time.Hour),
			EndTime:   dayStart.Add(12 * time.Hour),
			Status:    "PENDING",
		}}}
		q := newQueries(t, store, allWeekSchedule(t, garageID))

		result, err := q.CheckWindow(ctx, garageID, dayStart.Add(11*time.Hour), dayStart.Add(13*time.Hour))
		require.NoError(t, err)
		assert.False(t, result.Available)
		assert.Equal(t, []string{"time slot already booked"}, result.Reasons)
	})

	t.Run("back-to-back window is available", func(t *testing.T) {
		store := &stubBookingStore{views: []*queries.BookingView{{
			ID:        uuid.New(),
			GarageID:  garageID,
			StartTime: dayStart.Add(10 * time.Hour),
			EndTime:   dayStart.Add(12 * time.Hour),
			Status:    "PENDING",
		}}}
		q := newQueries(t, store, allWeekSchedule(t, garageID))

		result, err := q.CheckWindow(ctx, garageID, dayStart.Add(12*time.Hour), dayStart.Add(14*time.Hour))
		require.NoError(t, err)
		assert.True(t, result.Available)
	})
}

func TestBookingQueriesVisibility(t *testing.T) {
	ctx := context.Background()
	ownerID := uuid.New()
	renterID := uuid.New()

	view := &queries.BookingView{
		ID:            uuid.New(),
		GarageID:      uuid.New(),
		GarageOwnerID: ownerID,
		UserID:        renterID,
		Status:        "PENDING",
	}
	store := &stubBookingStore{views: []*queries.BookingView{view}}
	q := queries.NewBookingQueries(store, cache.NewMemoryCache(time.Minute))

	t.Run("renter can see it", func(t *testing.T) {
		got, err := q.GetByID(ctx, renterID, view.ID)
		require.NoError(t, err)
		assert.Equal(t, view.ID, got.ID)
	})

	t.Run("garage owner can see it", func(t *testing.T) {
		_, err := q.GetByID(ctx, ownerID, view.ID)
		assert.NoError(t, err)
	})

	t.Run("stranger cannot", func(t *testing.T) {
		_, err := q.GetByID(ctx, uuid.New(), view.ID)
		assert.ErrorIs(t, err, queries.ErrForbidden)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := q.GetByID(ctx, renterID, uuid.New())
		assert.ErrorIs(t, err, queries.ErrBookingNotFound)
	})
}
