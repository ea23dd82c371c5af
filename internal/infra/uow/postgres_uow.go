package uow

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"log/slog"
	"time"

	"parkspot/internal/domain/booking"
	"parkspot/internal/domain/garage"
	"parkspot/internal/domain/user"
	"parkspot/internal/domain/vehicle"
	"parkspot/internal/infra/db"
	"parkspot/internal/infra/repository"
	"parkspot/internal/pkg/errs"
	"parkspot/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	pgErrCodeSerializationFailure = "40001"
	pgErrCodeDeadlockDetected     = "40P01"
)

var (
	errTransactionBegin   = errs.New("failed to begin transaction")
	errTransactionCommit  = errs.New("failed to commit transaction")
	errMaxRetriesExceeded = errs.New("transaction failed after max retries")
)

type PostgresUoW struct {
	pool *pgxpool.Pool
}

func NewPostgresUoW(pool *pgxpool.Pool) shared.UnitOfWork {
	return &PostgresUoW{pool: pool}
}

// ReadCommitted prevents dirty reads while allowing concurrent writes. The
// advisory garage lock inside the transaction handles admission serialization.
func (u *PostgresUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return u.runInTxWithOptions(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, fn)
}

func (u *PostgresUoW) Reads() shared.CommandReads {
	return &commandReads{dbtx: u.pool}
}

// Avoids defer accumulation in retry loops to prevent connection leaks
func (u *PostgresUoW) runInTxWithOptions(ctx context.Context, options pgx.TxOptions, fn func(ctx context.Context, tx shared.Tx) error) error {
	const maxRetries = 3
	base := 100 * time.Millisecond

	for attempt := 0; attempt <= maxRetries; attempt++ {
		pgxTx, err := u.pool.BeginTx(ctx, options)
		if err != nil {
			return errs.Mark(err, errTransactionBegin)
		}

		tx := &pgTx{dbtx: pgxTx}

		err = fn(ctx, tx)
		if err == nil {
			if err = pgxTx.Commit(ctx); err == nil {
				return nil
			}
			err = errs.Mark(err, errTransactionCommit)
		}

		if rollbackErr := pgxTx.Rollback(ctx); rollbackErr != nil {
			if !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				slog.Warn("rollback failed", "attempt", attempt+1, "error", rollbackErr.Error())
			}
		}

		if !shouldRetry(err, attempt, maxRetries) {
			if attempt == maxRetries {
				slog.Error("transaction failed after max retries",
					"attempts", attempt+1,
					"error", err.Error())
				return errs.Mark(err, errMaxRetriesExceeded)
			}
			return err
		}

		waitTime := calculateBackoff(attempt, base)

		slog.Warn("retrying transaction due to retryable error",
			"attempt", attempt+1,
			"wait_ms", waitTime.Milliseconds(),
			"error", err.Error())

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitTime):
		}
	}

	return errMaxRetriesExceeded
}

func shouldRetry(err error, attempt, maxRetries int) bool {
	return isRetryableError(err) && attempt < maxRetries
}

func calculateBackoff(attempt int, base time.Duration) time.Duration {
	waitTime := time.Duration(1<<attempt) * base
	jitter := cryptoRandInt63n(int64(waitTime / 5))
	return waitTime + time.Duration(jitter)
}

func cryptoRandInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0
	}
	// Mask high bit to keep the conversion positive
	uval := binary.BigEndian.Uint64(buf[:]) & 0x7FFFFFFFFFFFFFFF
	return int64(uval) % n
}

func isRetryableError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgErrCodeSerializationFailure, pgErrCodeDeadlockDetected:
		return true
	default:
		return false
	}
}

type pgTx struct {
	dbtx db.DBTX

	// Lazy-initialized repositories
	bookingRepo  shared.BookingRepository
	garageRepo   shared.GarageRepository
	vehicleRepo  shared.VehicleRepository
	scheduleRepo shared.ScheduleRepository
	userRepo     shared.UserRepository
}

func (t *pgTx) Bookings() shared.BookingRepository {
	if t.bookingRepo == nil {
		t.bookingRepo = repository.NewBookingRepository(t.dbtx)
	}
	return t.bookingRepo
}

func (t *pgTx) Garages() shared.GarageRepository {
	if t.garageRepo == nil {
		t.garageRepo = repository.NewGarageRepository(t.dbtx)
	}
	return t.garageRepo
}

func (t *pgTx) Vehicles() shared.VehicleRepository {
	if t.vehicleRepo == nil {
		t.vehicleRepo = repository.NewVehicleRepository(t.dbtx)
	}
	return t.vehicleRepo
}

func (t *pgTx) Schedules() shared.ScheduleRepository {
	if t.scheduleRepo == nil {
		t.scheduleRepo = repository.NewScheduleRepository(t.dbtx)
	}
	return t.scheduleRepo
}

func (t *pgTx) Users() shared.UserRepository {
	if t.userRepo == nil {
		t.userRepo = repository.NewUserRepository(t.dbtx)
	}
	return t.userRepo
}

type commandReads struct {
	dbtx db.DBTX

	// Lazy-initialized repositories used for validation reads
	garageRepo   *repository.GarageRepository
	vehicleRepo  *repository.VehicleRepository
	scheduleRepo *repository.ScheduleRepository
	userRepo     *repository.UserRepository
	bookingRepo  *repository.BookingRepository
}

func (r *commandReads) GarageByID(ctx context.Context, id uuid.UUID) (*garage.Garage, error) {
	if r.garageRepo == nil {
		r.garageRepo = repository.NewGarageRepository(r.dbtx)
	}
	return r.garageRepo.FindByID(ctx, id)
}

func (r *commandReads) VehicleByID(ctx context.Context, id uuid.UUID) (*vehicle.Vehicle, error) {
	if r.vehicleRepo == nil {
		r.vehicleRepo = repository.NewVehicleRepository(r.dbtx)
	}
	return r.vehicleRepo.FindByID(ctx, id)
}

func (r *commandReads) ActiveSchedules(ctx context.Context, garageID uuid.UUID) (garage.WeeklySchedule, error) {
	if r.scheduleRepo == nil {
		r.scheduleRepo = repository.NewScheduleRepository(r.dbtx)
	}
	return r.scheduleRepo.ActiveByGarage(ctx, garageID)
}

func (r *commandReads) UserByEmail(ctx context.Context, email string) (*user.User, error) {
	if r.userRepo == nil {
		r.userRepo = repository.NewUserRepository(r.dbtx)
	}
	return r.userRepo.FindByEmail(ctx, email)
}

func (r *commandReads) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	if r.bookingRepo == nil {
		r.bookingRepo = repository.NewBookingRepository(r.dbtx)
	}
	return r.bookingRepo.FindByID(ctx, id)
}
