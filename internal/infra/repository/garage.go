package repository

import (
	"context"
	"errors"
	"time"

	"parkspot/internal/domain/garage"
	"parkspot/internal/infra"
	"parkspot/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const garageColumns = `id, owner_id, name, address, height, width, length, garage_type, access, hourly_price, daily_price, monthly_price, is_active, created_at`

type GarageRepository struct {
	db db.DBTX
}

func NewGarageRepository(dbtx db.DBTX) *GarageRepository {
	return &GarageRepository{db: dbtx}
}

func (r *GarageRepository) Create(ctx context.Context, g *garage.Garage) error {
	dims := g.Dimensions()
	pricing := g.Pricing()
	_, err := r.db.Exec(ctx, `
		INSERT INTO garages (`+garageColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		g.ID(), g.OwnerID(), g.Name(), g.Address(),
		dims.Height, dims.Width, dims.Length,
		string(g.Type()), string(g.Access()),
		pricing.Hourly, pricing.Daily, pricing.Monthly,
		g.IsActive(), g.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create garage", err)
	}
	return nil
}

func (r *GarageRepository) Update(ctx context.Context, g *garage.Garage) error {
	dims := g.Dimensions()
	pricing := g.Pricing()
	tag, err := r.db.Exec(ctx, `
		UPDATE garages
		SET name = $2, address = $3, height = $4, width = $5, length = $6,
		    garage_type = $7, access = $8,
		    hourly_price = $9, daily_price = $10, monthly_price = $11,
		    is_active = $12
		WHERE id = $1`,
		g.ID(), g.Name(), g.Address(),
		dims.Height, dims.Width, dims.Length,
		string(g.Type()), string(g.Access()),
		pricing.Hourly, pricing.Daily, pricing.Monthly,
		g.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update garage", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("garage not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *GarageRepository) FindByID(ctx context.Context, id uuid.UUID) (*garage.Garage, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+garageColumns+`
		FROM garages
		WHERE id = $1`,
		id,
	)

	g, err := scanGarage(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("garage not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find garage by ID", err)
	}
	return g, nil
}

func scanGarage(row pgx.Row) (*garage.Garage, error) {
	var (
		id, ownerID            uuid.UUID
		name, address          string
		height, width, length  float64
		garageType, access     string
		hourly, daily, monthly *float64
		isActive               bool
		createdAt              time.Time
	)
	if err := row.Scan(&id, &ownerID, &name, &address, &height, &width, &length, &garageType, &access, &hourly, &daily, &monthly, &isActive, &createdAt); err != nil {
		return nil, err
	}

	return garage.Reconstruct(id, ownerID, garage.Attributes{
		Name:       name,
		Address:    address,
		Dimensions: garage.Dimensions{Height: height, Width: width, Length: length},
		Type:       garage.GarageType(garageType),
		Access:     garage.AccessType(access),
		Pricing:    garage.Pricing{Hourly: hourly, Daily: daily, Monthly: monthly},
	}, isActive, createdAt), nil
}
