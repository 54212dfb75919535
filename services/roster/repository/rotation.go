package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fleetops/rosterd/internal/pkg/models"
)

// recordShift increments the (driver, month) rotation counters as part of
// the assignment-creation transaction. The single upsert statement keeps
// concurrent creations for the same driver and month from losing
// increments; counters are never recomputed from scratch.
func recordShift(ctx context.Context, tx sqlx.ExtContext, driverID uuid.UUID, date time.Time, shift models.ShiftType) error {
	month := models.MonthOf(date)
	isWeekend := models.IsWeekend(date)
	isNight := shift == models.ShiftNight

	weekendInc := 0
	if isWeekend {
		weekendInc = 1
	}
	nightInc := 0
	if isNight {
		nightInc = 1
	}

	var lastWeekend *time.Time
	if isWeekend {
		lastWeekend = &date
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO rotation_tracking (
			id, driver_id, month, weekend_count, night_shift_count,
			total_shifts, last_weekend_date
		) VALUES ($1, $2, $3, $4, $5, 1, $6)
		ON CONFLICT (driver_id, month) DO UPDATE SET
			weekend_count     = rotation_tracking.weekend_count + EXCLUDED.weekend_count,
			night_shift_count = rotation_tracking.night_shift_count + EXCLUDED.night_shift_count,
			total_shifts      = rotation_tracking.total_shifts + 1,
			last_weekend_date = COALESCE(EXCLUDED.last_weekend_date, rotation_tracking.last_weekend_date),
			updated_at        = NOW()`,
		uuid.New(), driverID, month, weekendInc, nightInc, lastWeekend,
	)
	if err != nil {
		return fmt.Errorf("failed to record shift in rotation ledger: %w", err)
	}
	return nil
}

// GetRotation returns the ledger entry for (driver, month), or nil when the
// driver has no recorded shifts that month.
func (r *RosterRepo) GetRotation(ctx context.Context, driverID uuid.UUID, month time.Time) (*models.RotationEntry, error) {
	var entry models.RotationEntry
	err := r.db.GetContext(ctx, &entry, `
		SELECT id, driver_id, month, weekend_count, night_shift_count,
			total_shifts, last_weekend_date, created_at, updated_at
		FROM rotation_tracking
		WHERE driver_id = $1 AND month = $2`,
		driverID, models.MonthOf(month))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get rotation entry: %w", err)
	}
	return &entry, nil
}
