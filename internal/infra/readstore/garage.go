package readstore

import (
	"context"
	"errors"

	"parkspot/internal/domain/garage"
	"parkspot/internal/infra"
	"parkspot/internal/infra/db"
	"parkspot/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const garageViewColumns = `id, owner_id, name, address, height, width, length, garage_type, access, hourly_price, daily_price, monthly_price, is_active, created_at`

type GarageReadStore struct {
	db db.DBTX
}

func NewGarageReadStore(dbtx db.DBTX) *GarageReadStore {
	return &GarageReadStore{db: dbtx}
}

func (s *GarageReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.GarageView, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+garageViewColumns+`
		FROM garages
		WHERE id = $1`,
		id,
	)

	view, err := scanGarageView(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("garage not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find garage view", err)
	}
	return view, nil
}

func (s *GarageReadStore) ListActive(ctx context.Context) ([]*queries.GarageView, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+garageViewColumns+`
		FROM garages
		WHERE is_active
		ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active garages", err)
	}
	defer rows.Close()

	return collectGarageViews(rows)
}

func (s *GarageReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.GarageView, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+garageViewColumns+`
		FROM garages
		WHERE owner_id = $1
		ORDER BY created_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list garages by owner", err)
	}
	defer rows.Close()

	return collectGarageViews(rows)
}

func (s *GarageReadStore) SchedulesByGarage(ctx context.Context, garageID uuid.UUID) ([]*queries.ScheduleEntryView, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, day_of_week, start_minute, end_minute, is_active
		FROM garage_schedules
		WHERE garage_id = $1
		ORDER BY day_of_week, start_minute`,
		garageID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list garage schedules", err)
	}
	defer rows.Close()

	var views []*queries.ScheduleEntryView
	for rows.Next() {
		var (
			id           uuid.UUID
			day          int
			startM, endM int
			isActive     bool
		)
		if err := rows.Scan(&id, &day, &startM, &endM, &isActive); err != nil {
			return nil, infra.WrapRepoErr("failed to scan schedule view", err)
		}
		views = append(views, &queries.ScheduleEntryView{
			ID:        id,
			DayOfWeek: day,
			StartTime: garage.FormatClock(startM),
			EndTime:   garage.FormatClock(endM),
			IsActive:  isActive,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read schedule views", err)
	}
	return views, nil
}

func collectGarageViews(rows pgx.Rows) ([]*queries.GarageView, error) {
	var views []*queries.GarageView
	for rows.Next() {
		view, err := scanGarageView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan garage view", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read garage views", err)
	}
	return views, nil
}

func scanGarageView(row pgx.Row) (*queries.GarageView, error) {
	var v queries.GarageView
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.Name, &v.Address,
		&v.Height, &v.Width, &v.Length, &v.Type, &v.Access,
		&v.HourlyPrice, &v.DailyPrice, &v.MonthlyPrice,
		&v.IsActive, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
