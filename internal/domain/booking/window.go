package booking

import (
	"fmt"
	"time"

	"parkspot/internal/pkg/errs"
)

var (
	ErrEndNotAfterStart = errs.New("end time must be after start time")
	ErrStartInPast      = errs.New("start time cannot be in the past")
	ErrTooShort         = errs.New("booking must last at least 30 minutes")
	ErrTooLong          = errs.New("booking cannot last more than 24 hours")
	ErrTooFarAhead      = errs.New("booking cannot start more than 30 days ahead")
)

const (
	MinDuration = 30 * time.Minute
	MaxDuration = 24 * time.Hour
	MaxAdvance  = 30 * 24 * time.Hour
)

// TimeWindow is a half-open interval [start, end).
type TimeWindow struct {
	start time.Time
	end   time.Time
}

// NewTimeWindow validates the request-time constraints. now is injected so
// callers can pin the reference instant (see clock.Clock).
func NewTimeWindow(start, end, now time.Time) (TimeWindow, error) {
	if !end.After(start) {
		return TimeWindow{}, ErrEndNotAfterStart
	}
	if start.Before(now) {
		return TimeWindow{}, ErrStartInPast
	}

	d := end.Sub(start)
	if d < MinDuration {
		return TimeWindow{}, ErrTooShort
	}
	if d > MaxDuration {
		return TimeWindow{}, ErrTooLong
	}
	if start.After(now.Add(MaxAdvance)) {
		return TimeWindow{}, ErrTooFarAhead
	}

	return TimeWindow{start: start, end: end}, nil
}

// ReconstructTimeWindow rehydrates a stored window without request-time
// validation (an existing booking's start is usually in the past).
func ReconstructTimeWindow(start, end time.Time) TimeWindow {
	return TimeWindow{start: start, end: end}
}

func (w TimeWindow) Start() time.Time        { return w.start }
func (w TimeWindow) End() time.Time          { return w.end }
func (w TimeWindow) Duration() time.Duration { return w.end.Sub(w.start) }

// Overlaps reports whether two half-open windows share any instant.
// Touching endpoints (w.end == other.start) do not overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.start.Before(other.end) && other.start.Before(w.end)
}

// Dates returns each calendar date the window touches, in loc, formatted as
// YYYY-MM-DD. Used for availability-cache invalidation.
func (w TimeWindow) Dates(loc *time.Location) []string {
	var dates []string
	day := w.start.In(loc)
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	// The end instant itself is excluded, so a window ending exactly at
	// midnight does not touch the next day.
	last := w.end.In(loc).Add(-time.Nanosecond)
	for !day.After(last) {
		dates = append(dates, day.Format("2006-01-02"))
		day = day.AddDate(0, 0, 1)
	}
	return dates
}

func (w TimeWindow) String() string {
	return fmt.Sprintf("[%s, %s)", w.start.Format(time.RFC3339), w.end.Format(time.RFC3339))
}
