package repository

import (
	"context"
	"errors"
	"time"

	"parkspot/internal/domain/vehicle"
	"parkspot/internal/infra"
	"parkspot/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const vehicleColumns = `id, owner_id, plate, description, height, width, length, min_height, covered_only, created_at`

type VehicleRepository struct {
	db db.DBTX
}

func NewVehicleRepository(dbtx db.DBTX) *VehicleRepository {
	return &VehicleRepository{db: dbtx}
}

func (r *VehicleRepository) Create(ctx context.Context, v *vehicle.Vehicle) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO vehicles (`+vehicleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		v.ID(), v.OwnerID(), v.Plate(), v.Description(),
		v.Height(), v.Width(), v.Length(), v.MinHeight(),
		v.CoveredOnly(), v.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create vehicle", err)
	}
	return nil
}

func (r *VehicleRepository) Update(ctx context.Context, v *vehicle.Vehicle) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE vehicles
		SET description = $2, height = $3, width = $4, length = $5,
		    min_height = $6, covered_only = $7
		WHERE id = $1`,
		v.ID(), v.Description(), v.Height(), v.Width(), v.Length(),
		v.MinHeight(), v.CoveredOnly(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update vehicle", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("vehicle not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete vehicle", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("vehicle not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+vehicleColumns+`
		FROM vehicles
		WHERE id = $1`,
		id,
	)

	var (
		vid, ownerID                uuid.UUID
		plate, description          string
		height, width, length, minH *float64
		coveredOnly                 bool
		createdAt                   time.Time
	)
	err := row.Scan(&vid, &ownerID, &plate, &description, &height, &width, &length, &minH, &coveredOnly, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find vehicle by ID", err)
	}

	return vehicle.Reconstruct(vid, ownerID, vehicle.Attributes{
		Plate:       plate,
		Description: description,
		Height:      height,
		Width:       width,
		Length:      length,
		MinHeight:   minH,
		CoveredOnly: coveredOnly,
	}, createdAt), nil
}
