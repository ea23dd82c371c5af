package queries

import (
	"context"
	"time"

	"parkspot/internal/infra"
	"parkspot/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrVehicleNotFound = errs.New("vehicle not found")

type VehicleView struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Plate       string    `json:"plate"`
	Description string    `json:"description,omitempty"`
	Height      *float64  `json:"height,omitempty"`
	Width       *float64  `json:"width,omitempty"`
	Length      *float64  `json:"length,omitempty"`
	MinHeight   *float64  `json:"min_height,omitempty"`
	CoveredOnly bool      `json:"covered_only"`
	CreatedAt   time.Time `json:"created_at"`
}

type VehicleReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*VehicleView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*VehicleView, error)
}

type VehicleQueries interface {
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*VehicleView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*VehicleView, error)
}

type vehicleQueriesImpl struct {
	store VehicleReadStore
}

func NewVehicleQueries(store VehicleReadStore) VehicleQueries {
	return &vehicleQueriesImpl{store: store}
}

func (q *vehicleQueriesImpl) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*VehicleView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	if view.OwnerID != ownerID {
		return nil, ErrForbidden
	}
	return view, nil
}

func (q *vehicleQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*VehicleView, error) {
	views, err := q.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return views, nil
}
