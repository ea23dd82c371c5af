package booking

import (
	"time"

	"parkspot/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus     = errs.New("invalid booking status")
	ErrInvalidTransition = errs.New("invalid booking status transition")
	ErrNegativePrice     = errs.New("price cannot be negative")
)

type Booking struct {
	id         uuid.UUID
	garageID   uuid.UUID
	userID     uuid.UUID
	vehicleID  uuid.UUID
	window     TimeWindow
	status     Status
	totalPrice float64
	createdAt  time.Time
	updatedAt  time.Time
}

// NewBooking creates a booking in PENDING. totalPrice is computed by the
// pricing engine before creation and is immutable afterwards.
func NewBooking(garageID, userID, vehicleID uuid.UUID, window TimeWindow, totalPrice float64, now time.Time) (*Booking, error) {
	if totalPrice < 0 {
		return nil, ErrNegativePrice
	}

	return &Booking{
		id:         uuid.New(),
		garageID:   garageID,
		userID:     userID,
		vehicleID:  vehicleID,
		window:     window,
		status:     StatusPending,
		totalPrice: totalPrice,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func Reconstruct(
	id, garageID, userID, vehicleID uuid.UUID,
	window TimeWindow,
	status Status,
	totalPrice float64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:         id,
		garageID:   garageID,
		userID:     userID,
		vehicleID:  vehicleID,
		window:     window,
		status:     status,
		totalPrice: totalPrice,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (b *Booking) transition(next Status, now time.Time) error {
	if !b.status.canTransitionTo(next) {
		return ErrInvalidTransition
	}
	b.status = next
	b.updatedAt = now
	return nil
}

// Confirm moves PENDING -> CONFIRMED. Caller authorization (garage owner
// only) is enforced at the usecase layer.
func (b *Booking) Confirm(now time.Time) error {
	return b.transition(StatusConfirmed, now)
}

// Cancel moves PENDING or CONFIRMED -> CANCELLED.
func (b *Booking) Cancel(now time.Time) error {
	return b.transition(StatusCancelled, now)
}

// CheckIn moves CONFIRMED -> ACTIVE.
func (b *Booking) CheckIn(now time.Time) error {
	return b.transition(StatusActive, now)
}

// CheckOut moves ACTIVE -> COMPLETED.
func (b *Booking) CheckOut(now time.Time) error {
	return b.transition(StatusCompleted, now)
}

func (b *Booking) Blocks() bool {
	return b.status.Blocks()
}

func (b *Booking) ID() uuid.UUID        { return b.id }
func (b *Booking) GarageID() uuid.UUID  { return b.garageID }
func (b *Booking) UserID() uuid.UUID    { return b.userID }
func (b *Booking) VehicleID() uuid.UUID { return b.vehicleID }
func (b *Booking) Window() TimeWindow   { return b.window }
func (b *Booking) Status() Status       { return b.status }
func (b *Booking) TotalPrice() float64  { return b.totalPrice }
func (b *Booking) CreatedAt() time.Time { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }
