package repository

import (
	"context"

	"parkspot/internal/domain/garage"
	"parkspot/internal/infra"
	"parkspot/internal/infra/db"

	"github.com/google/uuid"
)

const scheduleColumns = `id, garage_id, day_of_week, start_minute, end_minute, is_active`

type ScheduleRepository struct {
	db db.DBTX
}

func NewScheduleRepository(dbtx db.DBTX) *ScheduleRepository {
	return &ScheduleRepository{db: dbtx}
}

// Replace swaps the garage's whole weekly schedule atomically. Callers run
// this inside a transaction, so a failed insert rolls the delete back too.
func (r *ScheduleRepository) Replace(ctx context.Context, garageID uuid.UUID, entries []garage.ScheduleEntry) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM garage_schedules WHERE garage_id = $1`, garageID); err != nil {
		return infra.WrapRepoErr("failed to clear garage schedule", err)
	}

	for _, e := range entries {
		_, err := r.db.Exec(ctx, `
			INSERT INTO garage_schedules (`+scheduleColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			e.ID(), garageID, int(e.Day()), e.StartMinute(), e.EndMinute(), e.IsActive(),
		)
		if err != nil {
			return infra.WrapRepoErr("failed to insert schedule entry", err)
		}
	}
	return nil
}

func (r *ScheduleRepository) ActiveByGarage(ctx context.Context, garageID uuid.UUID) (garage.WeeklySchedule, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+scheduleColumns+`
		FROM garage_schedules
		WHERE garage_id = $1 AND is_active
		ORDER BY day_of_week, start_minute`,
		garageID,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query garage schedule", err)
	}
	defer rows.Close()

	var schedule garage.WeeklySchedule
	for rows.Next() {
		var (
			id, gid           uuid.UUID
			day, startM, endM int
			isActive          bool
		)
		if err := rows.Scan(&id, &gid, &day, &startM, &endM, &isActive); err != nil {
			return nil, infra.WrapRepoErr("failed to scan schedule entry", err)
		}
		schedule = append(schedule, garage.ReconstructScheduleEntry(id, gid, day, startM, endM, isActive))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read garage schedule", err)
	}
	return schedule, nil
}
