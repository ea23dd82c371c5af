package shared

import (
	"context"

	"parkspot/internal/domain/booking"
	"parkspot/internal/domain/garage"
	"parkspot/internal/domain/user"
	"parkspot/internal/domain/vehicle"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full read-write transaction; retried on serialization failures.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: direct access for validation reads outside transactions.
	Reads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Garages() GarageRepository
	Vehicles() VehicleRepository
	Schedules() ScheduleRepository
	Users() UserRepository
}

// CommandReads are the pre-transaction lookups commands need. Results may be
// stale; anything correctness-critical is re-read inside Within.
type CommandReads interface {
	GarageByID(ctx context.Context, id uuid.UUID) (*garage.Garage, error)
	VehicleByID(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error)
	ActiveSchedules(ctx context.Context, garageID uuid.UUID) (garage.WeeklySchedule, error)
	UserByEmail(ctx context.Context, email string) (*user.User, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	// LockGarage serializes admission control per garage for the duration of
	// the surrounding transaction, so concurrent overlap checks cannot
	// interleave with inserts.
	LockGarage(ctx context.Context, garageID uuid.UUID) error
	// FindBlockingOverlaps returns PENDING/CONFIRMED/ACTIVE bookings of the
	// garage overlapping the half-open window, excluding excludeID when set.
	FindBlockingOverlaps(ctx context.Context, garageID uuid.UUID, window booking.TimeWindow, excludeID *uuid.UUID) ([]*booking.Booking, error)
	UpdateStatus(ctx context.Context, b *booking.Booking) error
}

type GarageRepository interface {
	Create(ctx context.Context, g *garage.Garage) error
	Update(ctx context.Context, g *garage.Garage) error
}

type VehicleRepository interface {
	Create(ctx context.Context, v *vehicle.Vehicle) error
	Update(ctx context.Context, v *vehicle.Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type ScheduleRepository interface {
	// Replace swaps a garage's whole weekly schedule in one shot.
	Replace(ctx context.Context, garageID uuid.UUID, entries []garage.ScheduleEntry) error
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
}
