package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/fleetops/rosterd/internal/pkg/errs"
	"github.com/fleetops/rosterd/internal/pkg/models"
)

// UpsertBoarding inserts or overwrites the boarding record keyed by
// (trip, stop, employee). A repeated report for the same key replaces the
// prior status and refreshes the timestamp.
func (r *TripRepo) UpsertBoarding(ctx context.Context, rec *models.BoardingRecord) (*models.BoardingRecord, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}

	var saved models.BoardingRecord
	err := r.db.GetContext(ctx, &saved, `
		INSERT INTO trip_boarding_logs (id, trip_id, stop_id, employee_id, status, boarded_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (trip_id, stop_id, employee_id) DO UPDATE SET
			status     = EXCLUDED.status,
			boarded_at = EXCLUDED.boarded_at
		RETURNING id, trip_id, stop_id, employee_id, status, boarded_at, created_at`,
		rec.ID, rec.TripID, rec.StopID, rec.EmployeeID, rec.Status, rec.BoardedAt,
	)
	if err != nil {
		return nil, errs.ClassifyPg(err, "failed to upsert boarding record")
	}
	return &saved, nil
}

// ListBoardings returns the trip's boarding records, most recent first.
func (r *TripRepo) ListBoardings(ctx context.Context, tripID uuid.UUID) ([]*models.BoardingRecord, error) {
	var records []*models.BoardingRecord
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, trip_id, stop_id, employee_id, status, boarded_at, created_at
		FROM trip_boarding_logs
		WHERE trip_id = $1
		ORDER BY boarded_at DESC`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list boarding records: %w", err)
	}
	return records, nil
}
