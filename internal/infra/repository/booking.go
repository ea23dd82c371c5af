package repository

import (
	"context"
	"errors"
	"time"

	"parkspot/internal/domain/booking"
	"parkspot/internal/infra"
	"parkspot/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookingColumns = `id, garage_id, user_id, vehicle_id, start_time, end_time, total_price, status, created_at, updated_at`

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(dbtx db.DBTX) *BookingRepository {
	return &BookingRepository{db: dbtx}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		b.ID(), b.GarageID(), b.UserID(), b.VehicleID(),
		b.Window().Start(), b.Window().End(),
		b.TotalPrice(), b.Status().String(), b.CreatedAt(), b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE id = $1`,
		id,
	)

	b, err := scanBooking(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}
	return b, nil
}

// LockGarage takes a transaction-scoped advisory lock keyed by the garage id,
// serializing admission control per garage. A bounded lock_timeout turns a
// stuck wait into a 55P03, which callers treat as a conflict.
func (r *BookingRepository) LockGarage(ctx context.Context, garageID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, `SET LOCAL lock_timeout = '3s'`); err != nil {
		return infra.WrapRepoErr("failed to set lock timeout", err)
	}

	if _, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`, garageID); err != nil {
		return infra.WrapRepoErr("failed to acquire garage lock", err)
	}
	return nil
}

func (r *BookingRepository) FindBlockingOverlaps(ctx context.Context, garageID uuid.UUID, window booking.TimeWindow, excludeID *uuid.UUID) ([]*booking.Booking, error) {
	// Half-open overlap: existing.start < requested.end AND existing.end >
	// requested.start. Rows are locked so they cannot be cancelled out from
	// under the admission check.
	rows, err := r.db.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE garage_id = $1
		  AND status IN ('PENDING', 'CONFIRMED', 'ACTIVE')
		  AND start_time < $2
		  AND end_time > $3
		  AND ($4::uuid IS NULL OR id <> $4)
		FOR UPDATE`,
		garageID, window.End(), window.Start(), excludeID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query overlapping bookings", err)
	}
	defer rows.Close()

	var result []*booking.Booking
	for rows.Next() {
		b, scanErr := scanBooking(rows)
		if scanErr != nil {
			return nil, infra.WrapRepoErr("failed to scan overlapping booking", scanErr)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read overlapping bookings", err)
	}
	return result, nil
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, b *booking.Booking) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE bookings
		SET status = $2, updated_at = $3
		WHERE id = $1`,
		b.ID(), b.Status().String(), b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id, garageID, userID, vehicleID uuid.UUID
		startTime, endTime              time.Time
		totalPrice                      float64
		status                          string
		createdAt, updatedAt            time.Time
	)
	if err := row.Scan(&id, &garageID, &userID, &vehicleID, &startTime, &endTime, &totalPrice, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	return booking.Reconstruct(
		id, garageID, userID, vehicleID,
		booking.ReconstructTimeWindow(startTime, endTime),
		booking.Status(status),
		totalPrice,
		createdAt, updatedAt,
	), nil
}
