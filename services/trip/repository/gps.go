package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/fleetops/rosterd/internal/pkg/errs"
	"github.com/fleetops/rosterd/internal/pkg/models"
)

// AddGPSSample appends one GPS ping to the trip trail.
func (r *TripRepo) AddGPSSample(ctx context.Context, s *models.GPSSample) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO trip_gps_logs (id, trip_id, lat, lng, speed_kmh, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		s.ID, s.TripID, s.Latitude, s.Longitude, s.SpeedKmh, s.Timestamp,
	)
	if err != nil {
		return errs.ClassifyPg(err, "failed to insert gps sample")
	}
	return nil
}

// LastGPSSample returns the most recent sample for the trip, or nil when the
// trail is empty.
func (r *TripRepo) LastGPSSample(ctx context.Context, tripID uuid.UUID) (*models.GPSSample, error) {
	var sample models.GPSSample
	err := r.db.GetContext(ctx, &sample, `
		SELECT id, trip_id, lat, lng, speed_kmh, timestamp
		FROM trip_gps_logs
		WHERE trip_id = $1
		ORDER BY timestamp DESC
		LIMIT 1`, tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last gps sample: %w", err)
	}
	return &sample, nil
}

// ListGPSSamples returns the full trail ordered by timestamp ascending.
func (r *TripRepo) ListGPSSamples(ctx context.Context, tripID uuid.UUID) ([]*models.GPSSample, error) {
	var samples []*models.GPSSample
	err := r.db.SelectContext(ctx, &samples, `
		SELECT id, trip_id, lat, lng, speed_kmh, timestamp
		FROM trip_gps_logs
		WHERE trip_id = $1
		ORDER BY timestamp ASC`, tripID)
	if err != nil {
		return nil, fmt.Errorf("failed to list gps samples: %w", err)
	}
	return samples, nil
}
