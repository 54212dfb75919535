package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fleetops/rosterd/internal/pkg/errs"
	"github.com/fleetops/rosterd/internal/pkg/models"
	"github.com/fleetops/rosterd/services/trip"
)

// TripRepo implements trip.TripRepo on postgres.
type TripRepo struct {
	db *sqlx.DB
}

// NewTripRepository creates a new trip repository
func NewTripRepository(db *sqlx.DB) trip.TripRepo {
	return &TripRepo{db: db}
}

type tripRow struct {
	models.Trip
	DriverUserID     uuid.UUID            `db:"driver_user_id"`
	DriverName       string               `db:"driver_name"`
	DriverLicense    string               `db:"driver_license"`
	DriverStatus     models.DriverStatus  `db:"driver_status"`
	VehiclePlate     string               `db:"vehicle_plate"`
	VehicleModel     string               `db:"vehicle_model"`
	VehicleCapacity  int                  `db:"vehicle_capacity"`
	VehicleStatus    models.VehicleStatus `db:"vehicle_status"`
	RouteName        string               `db:"route_name"`
	RouteOrigin      string               `db:"route_origin"`
	RouteDestination string               `db:"route_destination"`
}

func (row *tripRow) toModel() *models.Trip {
	t := row.Trip
	t.Driver = &models.Driver{
		ID:            t.DriverID,
		UserID:        row.DriverUserID,
		Name:          row.DriverName,
		LicenseNumber: row.DriverLicense,
		Status:        row.DriverStatus,
	}
	t.Vehicle = &models.Vehicle{
		ID:           t.VehicleID,
		LicensePlate: row.VehiclePlate,
		Model:        row.VehicleModel,
		Capacity:     row.VehicleCapacity,
		Status:       row.VehicleStatus,
	}
	t.Route = &models.Route{
		ID:          t.RouteID,
		Name:        row.RouteName,
		Origin:      row.RouteOrigin,
		Destination: row.RouteDestination,
	}
	return &t
}

const tripSelect = `
	SELECT
		t.id, t.route_id, t.driver_id, t.vehicle_id, t.status, t.type,
		t.start_time, t.end_time, t.distance_traveled_km,
		t.created_at, t.updated_at,
		d.user_id AS driver_user_id, u.name AS driver_name,
		d.license_number AS driver_license, d.status AS driver_status,
		v.license_plate AS vehicle_plate, v.model AS vehicle_model,
		v.capacity AS vehicle_capacity, v.status AS vehicle_status,
		r.name AS route_name, r.origin AS route_origin,
		r.destination AS route_destination
	FROM trips t
	JOIN drivers d ON d.id = t.driver_id
	JOIN users u ON u.id = d.user_id
	JOIN vehicles v ON v.id = t.vehicle_id
	JOIN routes r ON r.id = t.route_id`

// CreateTrip inserts a new trip.
func (r *TripRepo) CreateTrip(ctx context.Context, t *models.Trip) (*models.Trip, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = models.TripStatusScheduled
	}
	if t.Type == "" {
		t.Type = models.TripTypePickup
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO trips (id, route_id, driver_id, vehicle_id, status, type, start_time, distance_traveled_km)
		VALUES ($1, $2, $3, $4, $5, $6, $7, 0)`,
		t.ID, t.RouteID, t.DriverID, t.VehicleID, t.Status, t.Type, t.StartTime,
	)
	if err != nil {
		return nil, errs.ClassifyPg(err, "failed to insert trip")
	}

	return r.GetTrip(ctx, t.ID)
}

// GetTrip returns one trip with joined driver, vehicle and route.
func (r *TripRepo) GetTrip(ctx context.Context, id uuid.UUID) (*models.Trip, error) {
	var row tripRow
	err := r.db.GetContext(ctx, &row, tripSelect+` WHERE t.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFoundf("trip %s", id)
		}
		return nil, fmt.Errorf("failed to get trip: %w", err)
	}
	return row.toModel(), nil
}

// ListTrips returns trips matching the filter, newest start time first.
func (r *TripRepo) ListTrips(ctx context.Context, f models.TripFilter) ([]*models.Trip, error) {
	query := tripSelect
	var (
		conds []string
		args  []interface{}
	)

	if f.DriverID != nil {
		args = append(args, *f.DriverID)
		conds = append(conds, fmt.Sprintf("t.driver_id = $%d", len(args)))
	}
	if len(f.Statuses) > 0 {
		placeholders := ""
		for i, s := range f.Statuses {
			args = append(args, s)
			if i > 0 {
				placeholders += ", "
			}
			placeholders += fmt.Sprintf("$%d", len(args))
		}
		conds = append(conds, fmt.Sprintf("t.status IN (%s)", placeholders))
	}

	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY t.start_time DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var rows []tripRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list trips: %w", err)
	}

	trips := make([]*models.Trip, 0, len(rows))
	for i := range rows {
		trips = append(trips, rows[i].toModel())
	}
	return trips, nil
}

// UpdateTrip applies a partial update.
func (r *TripRepo) UpdateTrip(ctx context.Context, id uuid.UUID, patch models.TripPatch) error {
	sets := []string{"updated_at = NOW()"}
	var args []interface{}

	set := func(clause string, arg interface{}) {
		args = append(args, arg)
		sets = append(sets, fmt.Sprintf(clause, len(args)))
	}

	if patch.Status != nil {
		set("status = $%d", *patch.Status)
	}
	if patch.DriverID != nil {
		set("driver_id = $%d", *patch.DriverID)
	}
	if patch.VehicleID != nil {
		set("vehicle_id = $%d", *patch.VehicleID)
	}
	if patch.DistanceTraveledKm != nil {
		set("distance_traveled_km = $%d", *patch.DistanceTraveledKm)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE trips SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return errs.ClassifyPg(err, "failed to update trip")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.NotFoundf("trip %s", id)
	}
	return nil
}

// DeleteTrip removes the trip and its GPS and boarding trails in one
// transaction.
func (r *TripRepo) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM trip_boarding_logs WHERE trip_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete boarding logs: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM trip_gps_logs WHERE trip_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete gps logs: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		return errs.ClassifyPg(err, "failed to delete trip")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.NotFoundf("trip %s", id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit trip delete: %w", err)
	}
	return nil
}

// TripExists reports whether a trip with the identity tuple already exists.
func (r *TripRepo) TripExists(ctx context.Context, driverID, vehicleID, routeID uuid.UUID, startTime time.Time) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM trips
			WHERE driver_id = $1 AND vehicle_id = $2 AND route_id = $3 AND start_time = $4
		)`, driverID, vehicleID, routeID, startTime)
	if err != nil {
		return false, fmt.Errorf("failed to check trip existence: %w", err)
	}
	return exists, nil
}

// MarkCompleted sets the terminal completed state.
func (r *TripRepo) MarkCompleted(ctx context.Context, id uuid.UUID, endTime time.Time, distanceKm float64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE trips
		SET status = $1, end_time = $2, distance_traveled_km = $3, updated_at = NOW()
		WHERE id = $4`,
		models.TripStatusCompleted, endTime, distanceKm, id)
	if err != nil {
		return fmt.Errorf("failed to complete trip: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.NotFoundf("trip %s", id)
	}
	return nil
}

// MarkCancelled sets the terminal cancelled state.
func (r *TripRepo) MarkCancelled(ctx context.Context, id uuid.UUID, endTime time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE trips
		SET status = $1, end_time = $2, updated_at = NOW()
		WHERE id = $3`,
		models.TripStatusCancelled, endTime, id)
	if err != nil {
		return fmt.Errorf("failed to cancel trip: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.NotFoundf("trip %s", id)
	}
	return nil
}

// AddDistance accumulates km onto the trip atomically and returns the new
// running total.
func (r *TripRepo) AddDistance(ctx context.Context, tripID uuid.UUID, km float64) (float64, error) {
	var total float64
	err := r.db.GetContext(ctx, &total, `
		UPDATE trips
		SET distance_traveled_km = distance_traveled_km + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING distance_traveled_km`,
		km, tripID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, errs.NotFoundf("trip %s", tripID)
		}
		return 0, fmt.Errorf("failed to accumulate trip distance: %w", err)
	}
	return total, nil
}
