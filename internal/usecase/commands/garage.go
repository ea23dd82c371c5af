package commands

import (
	"context"
	"log/slog"

	"parkspot/internal/domain/garage"
	"parkspot/internal/infra"
	"parkspot/internal/pkg/clock"
	"parkspot/internal/pkg/errs"
	"parkspot/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateGarageInput struct {
	Name         string
	Address      string
	Height       float64
	Width        float64
	Length       float64
	Type         string
	Access       string
	HourlyPrice  *float64
	DailyPrice   *float64
	MonthlyPrice *float64
}

type UpdateGarageInput struct {
	Name         *string
	Address      *string
	HourlyPrice  *float64
	DailyPrice   *float64
	MonthlyPrice *float64
	IsActive     *bool
}

type ScheduleEntryInput struct {
	DayOfWeek int
	StartTime string
	EndTime   string
}

type GarageCommands interface {
	Create(ctx context.Context, ownerID uuid.UUID, in CreateGarageInput) (*garage.Garage, error)
	Update(ctx context.Context, ownerID, garageID uuid.UUID, in UpdateGarageInput) (*garage.Garage, error)
	// Deactivate is the normal "delete": it soft-scopes the garage out of
	// listings and new bookings.
	Deactivate(ctx context.Context, ownerID, garageID uuid.UUID) error
	ReplaceSchedule(ctx context.Context, ownerID, garageID uuid.UUID, entries []ScheduleEntryInput) (garage.WeeklySchedule, error)
}

type garageCommandsImpl struct {
	uow   shared.UnitOfWork
	cache shared.Cache
	clock clock.Clock
}

func NewGarageCommands(uow shared.UnitOfWork, cache shared.Cache, clk clock.Clock) GarageCommands {
	return &garageCommandsImpl{uow: uow, cache: cache, clock: clk}
}

func (c *garageCommandsImpl) Create(ctx context.Context, ownerID uuid.UUID, in CreateGarageInput) (*garage.Garage, error) {
	attrs := garage.Attributes{
		Name:       in.Name,
		Address:    in.Address,
		Dimensions: garage.Dimensions{Height: in.Height, Width: in.Width, Length: in.Length},
		Type:       garage.GarageType(in.Type),
		Access:     garage.AccessType(in.Access),
		Pricing:    garage.Pricing{Hourly: in.HourlyPrice, Daily: in.DailyPrice, Monthly: in.MonthlyPrice},
	}

	g, err := garage.NewGarage(ownerID, attrs, c.clock.Now())
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Garages().Create(ctx, g)
	})
	if err != nil {
		slog.Error("garage creation failed", "owner_id", ownerID, "error", err.Error())
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return g, nil
}

func (c *garageCommandsImpl) Update(ctx context.Context, ownerID, garageID uuid.UUID, in UpdateGarageInput) (*garage.Garage, error) {
	g, err := c.ownedGarage(ctx, ownerID, garageID)
	if err != nil {
		return nil, err
	}

	attrs := garage.Attributes{
		Name:       g.Name(),
		Address:    g.Address(),
		Dimensions: g.Dimensions(),
		Type:       g.Type(),
		Access:     g.Access(),
		Pricing:    g.Pricing(),
	}
	if in.Name != nil {
		attrs.Name = *in.Name
	}
	if in.Address != nil {
		attrs.Address = *in.Address
	}
	if in.HourlyPrice != nil {
		attrs.Pricing.Hourly = in.HourlyPrice
	}
	if in.DailyPrice != nil {
		attrs.Pricing.Daily = in.DailyPrice
	}
	if in.MonthlyPrice != nil {
		attrs.Pricing.Monthly = in.MonthlyPrice
	}
	if err := attrs.Pricing.Validate(); err != nil {
		return nil, err
	}

	active := g.IsActive()
	if in.IsActive != nil {
		active = *in.IsActive
	}
	updated := garage.Reconstruct(g.ID(), g.OwnerID(), attrs, active, g.CreatedAt())

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Garages().Update(ctx, updated)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return updated, nil
}

func (c *garageCommandsImpl) Deactivate(ctx context.Context, ownerID, garageID uuid.UUID) error {
	g, err := c.ownedGarage(ctx, ownerID, garageID)
	if err != nil {
		return err
	}

	g.Deactivate()
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Garages().Update(ctx, g)
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *garageCommandsImpl) ReplaceSchedule(ctx context.Context, ownerID, garageID uuid.UUID, entries []ScheduleEntryInput) (garage.WeeklySchedule, error) {
	if _, err := c.ownedGarage(ctx, ownerID, garageID); err != nil {
		return nil, err
	}

	schedule := make(garage.WeeklySchedule, 0, len(entries))
	for _, in := range entries {
		entry, err := garage.NewScheduleEntry(garageID, in.DayOfWeek, in.StartTime, in.EndTime)
		if err != nil {
			return nil, err
		}
		schedule = append(schedule, entry)
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Schedules().Replace(ctx, garageID, schedule)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// The whole weekly availability picture changed.
	c.cache.DeletePrefix(ctx, shared.AvailabilityPrefix(garageID))

	return schedule, nil
}

func (c *garageCommandsImpl) ownedGarage(ctx context.Context, ownerID, garageID uuid.UUID) (*garage.Garage, error) {
	g, err := c.uow.Reads().GarageByID(ctx, garageID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrGarageNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if g.OwnerID() != ownerID {
		return nil, ErrForbidden
	}
	return g, nil
}
