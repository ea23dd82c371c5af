package queries

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"parkspot/internal/infra"
	"parkspot/internal/pkg/errs"
	"parkspot/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.New("booking not found")
	ErrForbidden       = errs.New("operation not permitted for this user")
	ErrQueryFailed     = errs.New("query failed")
)

const listCacheTTL = 2 * time.Minute

type BookingView struct {
	ID            uuid.UUID `json:"id"`
	GarageID      uuid.UUID `json:"garage_id"`
	GarageName    string    `json:"garage_name"`
	GarageOwnerID uuid.UUID `json:"garage_owner_id"`
	UserID        uuid.UUID `json:"user_id"`
	VehicleID     uuid.UUID `json:"vehicle_id"`
	VehiclePlate  string    `json:"vehicle_plate"`
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	Status        string    `json:"status"`
	TotalPrice    float64   `json:"total_price"`
	CreatedAt     time.Time `json:"created_at"`
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingView, error)
	// ListBlockingByGarage returns PENDING/CONFIRMED/ACTIVE bookings of the
	// garage overlapping [from, to).
	ListBlockingByGarage(ctx context.Context, garageID uuid.UUID, from, to time.Time) ([]*BookingView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actorID, id uuid.UUID) (*BookingView, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store BookingReadStore
	cache shared.Cache
}

func NewBookingQueries(store BookingReadStore, cache shared.Cache) BookingQueries {
	return &bookingQueriesImpl{store: store, cache: cache}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID, id uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	// Only the two parties may see a booking.
	if actorID != view.UserID && actorID != view.GarageOwnerID {
		return nil, ErrForbidden
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListByUser(ctx context.Context, userID uuid.UUID) ([]*BookingView, error) {
	key := shared.UserBookingsKey(userID)
	if data, ok := q.cache.Get(ctx, key); ok {
		var views []*BookingView
		if err := json.Unmarshal(data, &views); err == nil {
			return views, nil
		}
		// Corrupt entry: drop it and fall through to the store.
		q.cache.Delete(ctx, key)
	}

	views, err := q.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, errs.Mark(err, ErrQueryFailed)
	}

	if data, err := json.Marshal(views); err == nil {
		q.cache.Set(ctx, key, data, listCacheTTL)
	} else {
		slog.Warn("failed to cache booking list", "user_id", userID, "error", err.Error())
	}

	return views, nil
}
