package queries

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"parkspot/internal/domain/garage"
	"parkspot/internal/pkg/errs"
	"parkspot/internal/usecase/shared"

	"github.com/google/uuid"
)

const availabilityCacheTTL = 5 * time.Minute

type ScheduleReadStore interface {
	ActiveByGarage(ctx context.Context, garageID uuid.UUID) (garage.WeeklySchedule, error)
}

// BookedSlot is an occupied interval of a garage's day.
type BookedSlot struct {
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type DayAvailability struct {
	GarageID uuid.UUID    `json:"garage_id"`
	Date     string       `json:"date"`
	Booked   []BookedSlot `json:"booked"`
}

type WindowAvailability struct {
	Available bool     `json:"available"`
	Reasons   []string `json:"reasons,omitempty"`
}

// AvailabilityQueries serves the advisory availability surface. Results may
// lag writes by up to the cache TTL; the booking transaction never trusts
// them and re-checks against the primary store under its lock.
type AvailabilityQueries interface {
	Day(ctx context.Context, garageID uuid.UUID, date string) (*DayAvailability, error)
	CheckWindow(ctx context.Context, garageID uuid.UUID, start, end time.Time) (*WindowAvailability, error)
}

type availabilityQueriesImpl struct {
	bookings  BookingReadStore
	schedules ScheduleReadStore
	cache     shared.Cache
	loc       *time.Location
}

func NewAvailabilityQueries(bookings BookingReadStore, schedules ScheduleReadStore, cache shared.Cache) AvailabilityQueries {
	return &availabilityQueriesImpl{
		bookings:  bookings,
		schedules: schedules,
		cache:     cache,
		loc:       time.Local,
	}
}

// Day lists a garage's occupied intervals for one calendar date,
// read-through cached.
func (q *availabilityQueriesImpl) Day(ctx context.Context, garageID uuid.UUID, date string) (*DayAvailability, error) {
	key := shared.AvailabilityKey(garageID, date)
	if data, ok := q.cache.Get(ctx, key); ok {
		var day DayAvailability
		if err := json.Unmarshal(data, &day); err == nil {
			return &day, nil
		}
		q.cache.Delete(ctx, key)
	}

	dayStart, err := time.ParseInLocation("2006-01-02", date, q.loc)
	if err != nil {
		return nil, errs.Wrap(err, "invalid date")
	}
	dayEnd := dayStart.AddDate(0, 0, 1)

	views, err := q.bookings.ListBlockingByGarage(ctx, garageID, dayStart, dayEnd)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	day := &DayAvailability{
		GarageID: garageID,
		Date:     date,
		Booked:   make([]BookedSlot, len(views)),
	}
	for i, v := range views {
		day.Booked[i] = BookedSlot{StartTime: v.StartTime, EndTime: v.EndTime}
	}

	if data, err := json.Marshal(day); err == nil {
		q.cache.Set(ctx, key, data, availabilityCacheTTL)
	} else {
		slog.Warn("failed to cache day availability", "garage_id", garageID, "date", date, "error", err.Error())
	}

	return day, nil
}

// CheckWindow is the advisory pre-check used by listings and forms: weekly
// schedule first, then overlap against the (possibly cached) day picture.
func (q *availabilityQueriesImpl) CheckWindow(ctx context.Context, garageID uuid.UUID, start, end time.Time) (*WindowAvailability, error) {
	schedule, err := q.schedules.ActiveByGarage(ctx, garageID)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	if avail := schedule.Covers(start, end); !avail.Available {
		return &WindowAvailability{Available: false, Reasons: avail.Reasons}, nil
	}

	day, err := q.Day(ctx, garageID, start.In(q.loc).Format("2006-01-02"))
	if err != nil {
		return nil, err
	}

	for _, slot := range day.Booked {
		if slot.StartTime.Before(end) && start.Before(slot.EndTime) {
			return &WindowAvailability{
				Available: false,
				Reasons:   []string{"time slot already booked"},
			}, nil
		}
	}

	return &WindowAvailability{Available: true}, nil
}
