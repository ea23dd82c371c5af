//go:build unit

package booking_test

import (
	"testing"
	"time"

	"parkspot/internal/domain/booking"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC) // Monday

func TestNewTimeWindow(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		start := now.Add(time.Hour)
		end := start.Add(2 * time.Hour)

		w, err := booking.NewTimeWindow(start, end, now)
		require.NoError(t, err)
		assert.Equal(t, start, w.Start())
		assert.Equal(t, end, w.End())
		assert.Equal(t, 2*time.Hour, w.Duration())
	})

	t.Run("validation", func(t *testing.T) {
		cases := []struct {
			name       string
			start, end time.Time
			errIs      error
		}{
			{
				name:  "end equals start",
				start: now.Add(time.Hour),
				end:   now.Add(time.Hour),
				errIs: booking.ErrEndNotAfterStart,
			},
			{
				name:  "end before start",
				start: now.Add(2 * time.Hour),
				end:   now.Add(time.Hour),
				errIs: booking.ErrEndNotAfterStart,
			},
			{
				name:  "start in past",
				start: now.Add(-time.Minute),
				end:   now.Add(time.Hour),
				errIs: booking.ErrStartInPast,
			},
			{
				name:  "start exactly now is allowed",
				start: now,
				end:   now.Add(time.Hour),
			},
			{
				name:  "under thirty minutes",
				start: now.Add(time.Hour),
				end:   now.Add(time.Hour + 29*time.Minute),
				errIs: booking.ErrTooShort,
			},
			{
				name:  "exactly thirty minutes",
				start: now.Add(time.Hour),
				end:   now.Add(time.Hour + 30*time.Minute),
			},
			{
				name:  "over twenty four hours",
				start: now.Add(time.Hour),
				end:   now.Add(25*time.Hour + time.Minute),
				errIs: booking.ErrTooLong,
			},
			{
				name:  "exactly twenty four hours",
				start: now.Add(time.Hour),
				end:   now.Add(25 * time.Hour),
			},
			{
				name:  "more than thirty days ahead",
				start: now.Add(30*24*time.Hour + time.Minute),
				end:   now.Add(30*24*time.Hour + 2*time.Hour),
				errIs: booking.ErrTooFarAhead,
			},
			{
				name:  "exactly thirty days ahead",
				start: now.Add(30 * 24 * time.Hour),
				end:   now.Add(30*24*time.Hour + 2*time.Hour),
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := booking.NewTimeWindow(tc.start, tc.end, now)
				if tc.errIs != nil {
					assert.ErrorIs(t, err, tc.errIs)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})
}

func TestTimeWindowOverlaps(t *testing.T) {
	at := func(h int) time.Time { return now.Add(time.Duration(h) * time.Hour) }
	window := func(s, e int) booking.TimeWindow {
		return booking.ReconstructTimeWindow(at(s), at(e))
	}

	cases := []struct {
		name     string
		a, b     booking.TimeWindow
		overlaps bool
	}{
		{name: "identical", a: window(1, 3), b: window(1, 3), overlaps: true},
		{name: "partial overlap", a: window(1, 3), b: window(2, 4), overlaps: true},
		{name: "contained", a: window(1, 5), b: window(2, 3), overlaps: true},
		{name: "touching endpoints do not overlap", a: window(1, 3), b: window(3, 5), overlaps: false},
		{name: "disjoint", a: window(1, 2), b: window(3, 4), overlaps: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlaps, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.overlaps, tc.b.Overlaps(tc.a))
		})
	}
}

func TestTimeWindowDates(t *testing.T) {
	cases := []struct {
		name       string
		start, end time.Time
		dates      []string
	}{
		{
			name:  "single day",
			start: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
			dates: []string{"2026-03-02"},
		},
		{
			name:  "spans two days",
			start: time.Date(2026, 3, 2, 23, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 3, 3, 1, 0, 0, 0, time.UTC),
			dates: []string{"2026-03-02", "2026-03-03"},
		},
		{
			name:  "end exactly at midnight excludes next day",
			start: time.Date(2026, 3, 2, 22, 0, 0, 0, time.UTC),
			end:   time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
			dates: []string{"2026-03-02"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := booking.ReconstructTimeWindow(tc.start, tc.end)
			if diff := cmp.Diff(tc.dates, w.Dates(time.UTC)); diff != "" {
				t.Errorf("Dates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
