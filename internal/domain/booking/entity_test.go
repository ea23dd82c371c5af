//go:build unit

package booking_test

import (
	"testing"
	"time"

	"parkspot/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBooking(t *testing.T) *booking.Booking {
	t.Helper()
	window := booking.ReconstructTimeWindow(now.Add(time.Hour), now.Add(3*time.Hour))
	b, err := booking.NewBooking(uuid.New(), uuid.New(), uuid.New(), window, 20.0, now)
	require.NoError(t, err)
	return b
}

func TestNewBooking(t *testing.T) {
	t.Run("starts pending", func(t *testing.T) {
		b := newTestBooking(t)
		assert.Equal(t, booking.StatusPending, b.Status())
		assert.True(t, b.Blocks())
		assert.Equal(t, 20.0, b.TotalPrice())
		assert.Equal(t, b.CreatedAt(), b.UpdatedAt())
	})

	t.Run("rejects negative price", func(t *testing.T) {
		window := booking.ReconstructTimeWindow(now.Add(time.Hour), now.Add(2*time.Hour))
		_, err := booking.NewBooking(uuid.New(), uuid.New(), uuid.New(), window, -1, now)
		assert.ErrorIs(t, err, booking.ErrNegativePrice)
	})
}

func TestBookingLifecycle(t *testing.T) {
	later := now.Add(time.Minute)

	t.Run("full happy path", func(t *testing.T) {
		b := newTestBooking(t)

		require.NoError(t, b.Confirm(later))
		assert.Equal(t, booking.StatusConfirmed, b.Status())

		require.NoError(t, b.CheckIn(later))
		assert.Equal(t, booking.StatusActive, b.Status())

		require.NoError(t, b.CheckOut(later))
		assert.Equal(t, booking.StatusCompleted, b.Status())
		assert.False(t, b.Blocks())
		assert.True(t, b.Status().IsTerminal())
	})

	t.Run("cancel from pending", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.Cancel(later))
		assert.Equal(t, booking.StatusCancelled, b.Status())
		assert.False(t, b.Blocks())
	})

	t.Run("cancel from confirmed", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.Confirm(later))
		require.NoError(t, b.Cancel(later))
		assert.Equal(t, booking.StatusCancelled, b.Status())
	})

	t.Run("invalid transitions", func(t *testing.T) {
		cases := []struct {
			name  string
			setup func(*booking.Booking)
			apply func(*booking.Booking) error
		}{
			{
				name:  "check in from pending",
				setup: func(b *booking.Booking) {},
				apply: func(b *booking.Booking) error { return b.CheckIn(later) },
			},
			{
				name:  "check out from pending",
				setup: func(b *booking.Booking) {},
				apply: func(b *booking.Booking) error { return b.CheckOut(later) },
			},
			{
				name:  "confirm twice",
				setup: func(b *booking.Booking) { _ = b.Confirm(later) },
				apply: func(b *booking.Booking) error { return b.Confirm(later) },
			},
			{
				name:  "cancel active booking",
				setup: func(b *booking.Booking) { _ = b.Confirm(later); _ = b.CheckIn(later) },
				apply: func(b *booking.Booking) error { return b.Cancel(later) },
			},
			{
				name:  "cancel completed booking",
				setup: func(b *booking.Booking) { _ = b.Confirm(later); _ = b.CheckIn(later); _ = b.CheckOut(later) },
				apply: func(b *booking.Booking) error { return b.Cancel(later) },
			},
			{
				name:  "confirm cancelled booking",
				setup: func(b *booking.Booking) { _ = b.Cancel(later) },
				apply: func(b *booking.Booking) error { return b.Confirm(later) },
			},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				b := newTestBooking(t)
				tc.setup(b)
				assert.ErrorIs(t, tc.apply(b), booking.ErrInvalidTransition)
			})
		}
	})

	t.Run("updatedAt moves on transition", func(t *testing.T) {
		b := newTestBooking(t)
		require.NoError(t, b.Confirm(later))
		assert.Equal(t, later, b.UpdatedAt())
		assert.Equal(t, now, b.CreatedAt())
	})
}

func TestBlockingStatuses(t *testing.T) {
	assert.Equal(t,
		[]booking.Status{booking.StatusPending, booking.StatusConfirmed, booking.StatusActive},
		booking.BlockingStatuses(),
	)
	for _, s := range booking.BlockingStatuses() {
		assert.True(t, s.Blocks())
	}
	assert.False(t, booking.StatusCompleted.Blocks())
	assert.False(t, booking.StatusCancelled.Blocks())
}
