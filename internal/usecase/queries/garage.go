package queries

import (
	"context"
	"time"

	"parkspot/internal/infra"
	"parkspot/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrGarageNotFound = errs.New("garage not found")

type GarageView struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	Height       float64   `json:"height"`
	Width        float64   `json:"width"`
	Length       float64   `json:"length"`
	Type         string    `json:"type"`
	Access       string    `json:"access"`
	HourlyPrice  *float64  `json:"hourly_price,omitempty"`
	DailyPrice   *float64  `json:"daily_price,omitempty"`
	MonthlyPrice *float64  `json:"monthly_price,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

type ScheduleEntryView struct {
	ID        uuid.UUID `json:"id"`
	DayOfWeek int       `json:"day_of_week"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	IsActive  bool      `json:"is_active"`
}

type GarageReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*GarageView, error)
	ListActive(ctx context.Context) ([]*GarageView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*GarageView, error)
	SchedulesByGarage(ctx context.Context, garageID uuid.UUID) ([]*ScheduleEntryView, error)
}

type GarageQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*GarageView, error)
	ListActive(ctx context.Context) ([]*GarageView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*GarageView, error)
	Schedules(ctx context.Context, garageID uuid.UUID) ([]*ScheduleEntryView, error)
}

type garageQueriesImpl struct {
	store GarageReadStore
}

func NewGarageQueries(store GarageReadStore) GarageQueries {
	return &garageQueriesImpl{store: store}
}

func (q *garageQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*GarageView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrGarageNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return view, nil
}

func (q *garageQueriesImpl) ListActive(ctx context.Context) ([]*GarageView, error) {
	views, err := q.store.ListActive(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return views, nil
}

func (q *garageQueriesImpl) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*GarageView, error) {
	views, err := q.store.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return views, nil
}

func (q *garageQueriesImpl) Schedules(ctx context.Context, garageID uuid.UUID) ([]*ScheduleEntryView, error) {
	views, err := q.store.SchedulesByGarage(ctx, garageID)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}
	return views, nil
}
