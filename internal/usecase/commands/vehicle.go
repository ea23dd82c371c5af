package commands

import (
	"context"

	"parkspot/internal/domain/vehicle"
	"parkspot/internal/infra"
	"parkspot/internal/pkg/clock"
	"parkspot/internal/pkg/errs"
	"parkspot/internal/usecase/shared"

	"github.com/google/uuid"
)

type VehicleInput struct {
	Plate       string
	Description string
	Height      *float64
	Width       *float64
	Length      *float64
	MinHeight   *float64
	CoveredOnly bool
}

type UpdateVehicleInput struct {
	Description *string
	Height      *float64
	Width       *float64
	Length      *float64
	MinHeight   *float64
	CoveredOnly *bool
}

type VehicleCommands interface {
	Create(ctx context.Context, ownerID uuid.UUID, in VehicleInput) (*vehicle.Vehicle, error)
	Update(ctx context.Context, ownerID, vehicleID uuid.UUID, in UpdateVehicleInput) (*vehicle.Vehicle, error)
	Delete(ctx context.Context, ownerID, vehicleID uuid.UUID) error
}

type vehicleCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewVehicleCommands(uow shared.UnitOfWork, clk clock.Clock) VehicleCommands {
	return &vehicleCommandsImpl{uow: uow, clock: clk}
}

func (c *vehicleCommandsImpl) Create(ctx context.Context, ownerID uuid.UUID, in VehicleInput) (*vehicle.Vehicle, error) {
	v, err := vehicle.NewVehicle(ownerID, vehicle.Attributes{
		Plate:       in.Plate,
		Description: in.Description,
		Height:      in.Height,
		Width:       in.Width,
		Length:      in.Length,
		MinHeight:   in.MinHeight,
		CoveredOnly: in.CoveredOnly,
	}, c.clock.Now())
	if err != nil {
		return nil, err
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Vehicles().Create(ctx, v)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return v, nil
}

func (c *vehicleCommandsImpl) Update(ctx context.Context, ownerID, vehicleID uuid.UUID, in UpdateVehicleInput) (*vehicle.Vehicle, error) {
	existing, err := c.ownedVehicle(ctx, ownerID, vehicleID)
	if err != nil {
		return nil, err
	}

	attrs := vehicle.Attributes{
		Plate:       existing.Plate(),
		Description: existing.Description(),
		Height:      existing.Height(),
		Width:       existing.Width(),
		Length:      existing.Length(),
		MinHeight:   existing.MinHeight(),
		CoveredOnly: existing.CoveredOnly(),
	}
	if in.Description != nil {
		attrs.Description = *in.Description
	}
	if in.Height != nil {
		attrs.Height = in.Height
	}
	if in.Width != nil {
		attrs.Width = in.Width
	}
	if in.Length != nil {
		attrs.Length = in.Length
	}
	if in.MinHeight != nil {
		attrs.MinHeight = in.MinHeight
	}
	if in.CoveredOnly != nil {
		attrs.CoveredOnly = *in.CoveredOnly
	}

	for _, dim := range []*float64{attrs.Height, attrs.Width, attrs.Length, attrs.MinHeight} {
		if dim != nil && *dim <= 0 {
			return nil, vehicle.ErrInvalidDimension
		}
	}

	updated := vehicle.Reconstruct(existing.ID(), existing.OwnerID(), attrs, existing.CreatedAt())
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Vehicles().Update(ctx, updated)
	})
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return updated, nil
}

func (c *vehicleCommandsImpl) Delete(ctx context.Context, ownerID, vehicleID uuid.UUID) error {
	if _, err := c.ownedVehicle(ctx, ownerID, vehicleID); err != nil {
		return err
	}

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Vehicles().Delete(ctx, vehicleID)
	})
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

func (c *vehicleCommandsImpl) ownedVehicle(ctx context.Context, ownerID, vehicleID uuid.UUID) (*vehicle.Vehicle, error) {
	v, err := c.uow.Reads().VehicleByID(ctx, vehicleID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if v.OwnerID() != ownerID {
		return nil, ErrForbidden
	}
	return v, nil
}
