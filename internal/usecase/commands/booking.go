package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"parkspot/internal/domain/booking"
	"parkspot/internal/domain/garage"
	"parkspot/internal/infra"
	"parkspot/internal/pkg/clock"
	"parkspot/internal/pkg/errs"
	"parkspot/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrGarageNotFound          = errs.New("garage not found")
	ErrVehicleNotFound         = errs.New("vehicle not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrGarageInactive          = errs.New("garage is not active")
	ErrVehicleNotOwned         = errs.New("vehicle does not belong to requester")
	ErrInvalidWindow           = errs.New("invalid booking window")
	ErrIncompatibleVehicle     = errs.New("vehicle incompatible with garage")
	ErrScheduleUnavailable     = errs.New("garage not available in requested window")
	ErrBookingConflict         = errs.New("time slot no longer available")
	ErrNoPricing               = errs.New("no pricing available for garage")
	ErrForbidden               = errs.New("operation not permitted for this user")
	ErrInvalidTransition       = errs.New("invalid booking status transition")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

// IncompatibilityError carries the itemized issues so callers can render
// them; it always travels marked with ErrIncompatibleVehicle.
type IncompatibilityError struct {
	Issues []string
}

func (e *IncompatibilityError) Error() string {
	return "vehicle incompatible with garage: " + strings.Join(e.Issues, "; ")
}

type ScheduleUnavailableError struct {
	Reasons []string
}

func (e *ScheduleUnavailableError) Error() string {
	return "garage not available: " + strings.Join(e.Reasons, "; ")
}

type CreateBookingInput struct {
	GarageID  uuid.UUID
	VehicleID uuid.UUID
	StartTime time.Time
	EndTime   time.Time
}

type QuoteInput struct {
	GarageID  uuid.UUID
	StartTime time.Time
	EndTime   time.Time
}

type BookingResult struct {
	Booking *booking.Booking
	Quote   garage.Quote
}

type BookingCommands interface {
	Create(ctx context.Context, userID uuid.UUID, in CreateBookingInput) (*BookingResult, error)
	Quote(ctx context.Context, in QuoteInput) (*garage.Quote, error)
	Confirm(ctx context.Context, actorID, bookingID uuid.UUID) (*booking.Booking, error)
	Cancel(ctx context.Context, actorID, bookingID uuid.UUID) (*booking.Booking, error)
	CheckIn(ctx context.Context, actorID, bookingID uuid.UUID) (*booking.Booking, error)
	CheckOut(ctx context.Context, actorID, bookingID uuid.UUID) (*booking.Booking, error)
}

type bookingCommandsImpl struct {
	uow   shared.UnitOfWork
	cache shared.Cache
	clock clock.Clock
}

func NewBookingCommands(uow shared.UnitOfWork, cache shared.Cache, clk clock.Clock) BookingCommands {
	return &bookingCommandsImpl{
		uow:   uow,
		cache: cache,
		clock: clk,
	}
}

// Create runs the full admission control for a new booking: time-window
// validation, vehicle/garage compatibility, weekly-schedule check, then the
// authoritative conflict check and insert inside one locked transaction.
// Exactly one of N concurrent overlapping calls for the same garage wins.
func (c *bookingCommandsImpl) Create(ctx context.Context, userID uuid.UUID, in CreateBookingInput) (*BookingResult, error) {
	window, err := booking.NewTimeWindow(in.StartTime, in.EndTime, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidWindow)
	}

	reads := c.uow.Reads()

	g, err := c.activeGarage(ctx, in.GarageID)
	if err != nil {
		return nil, err
	}

	v, err := reads.VehicleByID(ctx, in.VehicleID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if v.OwnerID() != userID {
		return nil, ErrVehicleNotOwned
	}

	if compat := garage.CheckCompatibility(v, g); !compat.Compatible {
		return nil, errs.Mark(&IncompatibilityError{Issues: compat.Issues}, ErrIncompatibleVehicle)
	}

	schedules, err := reads.ActiveSchedules(ctx, g.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if avail := schedules.Covers(window.Start(), window.End()); !avail.Available {
		return nil, errs.Mark(&ScheduleUnavailableError{Reasons: avail.Reasons}, ErrScheduleUnavailable)
	}

	quote, err := garage.ComputePrice(g.Pricing(), window.Start(), window.End(), nil)
	if err != nil {
		return nil, errs.Mark(err, ErrNoPricing)
	}

	b, err := booking.NewBooking(g.ID(), userID, v.ID(), window, quote.Price, c.clock.Now())
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Serialize per garage before the overlap check so a concurrent
		// transaction cannot read-then-insert between ours.
		if lockErr := tx.Bookings().LockGarage(ctx, g.ID()); lockErr != nil {
			return lockErr
		}

		overlaps, findErr := tx.Bookings().FindBlockingOverlaps(ctx, g.ID(), window, nil)
		if findErr != nil {
			return findErr
		}
		if len(overlaps) > 0 {
			return ErrBookingConflict
		}

		return tx.Bookings().Create(ctx, b)
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingConflict):
			return nil, err
		case infra.IsKind(err, infra.KindConflict), infra.IsKind(err, infra.KindLockNotAvailable):
			// Lock-wait timeouts and exclusion violations mean someone else
			// won the slot; the caller may resubmit.
			return nil, errs.Mark(err, ErrBookingConflict)
		default:
			slog.Error("booking creation failed",
				"garage_id", g.ID(),
				"user_id", userID,
				"window", window.String(),
				"error", err.Error())
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	c.invalidateBookingCaches(ctx, g.ID(), userID, window)

	return &BookingResult{Booking: b, Quote: quote}, nil
}

// Quote prices a window without creating anything.
func (c *bookingCommandsImpl) Quote(ctx context.Context, in QuoteInput) (*garage.Quote, error) {
	window, err := booking.NewTimeWindow(in.StartTime, in.EndTime, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidWindow)
	}

	g, err := c.activeGarage(ctx, in.GarageID)
	if err != nil {
		return nil, err
	}

	quote, err := garage.ComputePrice(g.Pricing(), window.Start(), window.End(), nil)
	if err != nil {
		return nil, errs.Mark(err, ErrNoPricing)
	}
	return &quote, nil
}

func (c *bookingCommandsImpl) Confirm(ctx context.Context, actorID, bookingID uuid.UUID) (*booking.Booking, error) {
	return c.applyTransition(ctx, actorID, bookingID,
		func(b *booking.Booking, g *garage.Garage) error {
			if actorID != g.OwnerID() {
				return ErrForbidden
			}
			return nil
		},
		(*booking.Booking).Confirm,
	)
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, actorID, bookingID uuid.UUID) (*booking.Booking, error) {
	return c.applyTransition(ctx, actorID, bookingID, c.requireParty(actorID), (*booking.Booking).Cancel)
}

func (c *bookingCommandsImpl) CheckIn(ctx context.Context, actorID, bookingID uuid.UUID) (*booking.Booking, error) {
	return c.applyTransition(ctx, actorID, bookingID, c.requireParty(actorID), (*booking.Booking).CheckIn)
}

func (c *bookingCommandsImpl) CheckOut(ctx context.Context, actorID, bookingID uuid.UUID) (*booking.Booking, error) {
	return c.applyTransition(ctx, actorID, bookingID, c.requireParty(actorID), (*booking.Booking).CheckOut)
}

// requireParty allows the booking requester or the garage owner.
func (c *bookingCommandsImpl) requireParty(actorID uuid.UUID) func(*booking.Booking, *garage.Garage) error {
	return func(b *booking.Booking, g *garage.Garage) error {
		if actorID != b.UserID() && actorID != g.OwnerID() {
			return ErrForbidden
		}
		return nil
	}
}

func (c *bookingCommandsImpl) applyTransition(
	ctx context.Context,
	actorID, bookingID uuid.UUID,
	authorize func(*booking.Booking, *garage.Garage) error,
	apply func(*booking.Booking, time.Time) error,
) (*booking.Booking, error) {
	reads := c.uow.Reads()

	stale, err := reads.BookingByID(ctx, bookingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// Ownership never changes, so the pre-transaction snapshot is enough to
	// authorize. The status transition itself re-reads inside the
	// transaction.
	g, err := reads.GarageByID(ctx, stale.GarageID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if authErr := authorize(stale, g); authErr != nil {
		return nil, authErr
	}

	var updated *booking.Booking
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, findErr := tx.Bookings().FindByID(ctx, bookingID)
		if findErr != nil {
			return findErr
		}
		if applyErr := apply(b, c.clock.Now()); applyErr != nil {
			return applyErr
		}
		if updateErr := tx.Bookings().UpdateStatus(ctx, b); updateErr != nil {
			return updateErr
		}
		updated = b
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, booking.ErrInvalidTransition):
			return nil, errs.Mark(err, ErrInvalidTransition)
		case infra.IsKind(err, infra.KindNotFound):
			return nil, ErrBookingNotFound
		default:
			slog.Error("booking transition failed",
				"booking_id", bookingID,
				"actor_id", actorID,
				"error", err.Error())
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	c.invalidateBookingCaches(ctx, updated.GarageID(), updated.UserID(), updated.Window())

	return updated, nil
}

func (c *bookingCommandsImpl) activeGarage(ctx context.Context, garageID uuid.UUID) (*garage.Garage, error) {
	g, err := c.uow.Reads().GarageByID(ctx, garageID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrGarageNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !g.IsActive() {
		return nil, ErrGarageInactive
	}
	return g, nil
}

func (c *bookingCommandsImpl) invalidateBookingCaches(ctx context.Context, garageID, userID uuid.UUID, window booking.TimeWindow) {
	keys := []string{shared.UserBookingsKey(userID)}
	for _, date := range window.Dates(time.Local) {
		keys = append(keys, shared.AvailabilityKey(garageID, date))
	}
	c.cache.Delete(ctx, keys...)
}
