package readstore

import (
	"context"
	"errors"
	"time"

	"parkspot/internal/infra"
	"parkspot/internal/infra/db"
	"parkspot/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookingViewQuery = `
	SELECT b.id, b.garage_id, g.name, g.owner_id, b.user_id, b.vehicle_id, v.plate,
	       b.start_time, b.end_time, b.status, b.total_price, b.created_at
	FROM bookings b
	JOIN garages g ON g.id = b.garage_id
	JOIN vehicles v ON v.id = b.vehicle_id`

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (s *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := s.db.QueryRow(ctx, bookingViewQuery+` WHERE b.id = $1`, id)

	view, err := scanBookingView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}
	return view, nil
}

func (s *BookingReadStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*queries.BookingView, error) {
	rows, err := s.db.Query(ctx, bookingViewQuery+`
		WHERE b.user_id = $1
		ORDER BY b.start_time DESC`,
		userID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by user", err)
	}
	defer rows.Close()

	return collectBookingViews(rows)
}

func (s *BookingReadStore) ListBlockingByGarage(ctx context.Context, garageID uuid.UUID, from, to time.Time) ([]*queries.BookingView, error) {
	rows, err := s.db.Query(ctx, bookingViewQuery+`
		WHERE b.garage_id = $1
		  AND b.status IN ('PENDING', 'CONFIRMED', 'ACTIVE')
		  AND b.start_time < $2
		  AND b.end_time > $3
		ORDER BY b.start_time`,
		garageID, to, from,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list blocking bookings", err)
	}
	defer rows.Close()

	return collectBookingViews(rows)
}

func collectBookingViews(rows pgx.Rows) ([]*queries.BookingView, error) {
	var views []*queries.BookingView
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking view", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read booking views", err)
	}
	return views, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var v queries.BookingView
	err := row.Scan(
		&v.ID, &v.GarageID, &v.GarageName, &v.GarageOwnerID,
		&v.UserID, &v.VehicleID, &v.VehiclePlate,
		&v.StartTime, &v.EndTime, &v.Status, &v.TotalPrice, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
