package readstore

import (
	"context"
	"errors"

	"parkspot/internal/infra"
	"parkspot/internal/infra/db"
	"parkspot/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const vehicleViewColumns = `id, owner_id, plate, description, height, width, length, min_height, covered_only, created_at`

type VehicleReadStore struct {
	db db.DBTX
}

func NewVehicleReadStore(dbtx db.DBTX) *VehicleReadStore {
	return &VehicleReadStore{db: dbtx}
}

func (s *VehicleReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.VehicleView, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+vehicleViewColumns+`
		FROM vehicles
		WHERE id = $1`,
		id,
	)

	view, err := scanVehicleView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("vehicle not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find vehicle view", err)
	}
	return view, nil
}

func (s *VehicleReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.VehicleView, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+vehicleViewColumns+`
		FROM vehicles
		WHERE owner_id = $1
		ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vehicles by owner", err)
	}
	defer rows.Close()

	var views []*queries.VehicleView
	for rows.Next() {
		view, err := scanVehicleView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan vehicle view", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read vehicle views", err)
	}
	return views, nil
}

func scanVehicleView(row pgx.Row) (*queries.VehicleView, error) {
	var v queries.VehicleView
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.Plate, &v.Description,
		&v.Height, &v.Width, &v.Length, &v.MinHeight,
		&v.CoveredOnly, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
