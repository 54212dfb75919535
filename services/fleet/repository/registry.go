package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fleetops/rosterd/internal/pkg/errs"
	"github.com/fleetops/rosterd/internal/pkg/models"
	"github.com/fleetops/rosterd/services/fleet"
)

// FleetRepo reads fleet master data from the shared database. It is the
// in-process stand-in for the external fleet collaborator.
type FleetRepo struct {
	db *sqlx.DB
}

// NewFleetRepository creates a new fleet registry backed by postgres.
func NewFleetRepository(db *sqlx.DB) fleet.Registry {
	return &FleetRepo{db: db}
}

const driverColumns = `
	d.id, d.user_id, u.name, COALESCE(u.phone, '') AS phone,
	d.license_number, d.status`

// GetDriver retrieves a driver with joined user data.
func (r *FleetRepo) GetDriver(ctx context.Context, id uuid.UUID) (*models.Driver, error) {
	query := `
		SELECT` + driverColumns + `
		FROM drivers d
		JOIN users u ON u.id = d.user_id
		WHERE d.id = $1`

	var driver models.Driver
	err := r.db.GetContext(ctx, &driver, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFoundf("driver %s", id)
		}
		return nil, fmt.Errorf("failed to get driver: %w", err)
	}
	return &driver, nil
}

// GetDriverByUserID resolves the driver record for an authenticated user.
func (r *FleetRepo) GetDriverByUserID(ctx context.Context, userID uuid.UUID) (*models.Driver, error) {
	query := `
		SELECT` + driverColumns + `
		FROM drivers d
		JOIN users u ON u.id = d.user_id
		WHERE d.user_id = $1`

	var driver models.Driver
	err := r.db.GetContext(ctx, &driver, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFoundf("driver for user %s", userID)
		}
		return nil, fmt.Errorf("failed to get driver by user: %w", err)
	}
	return &driver, nil
}

// ListDrivers returns all known drivers.
func (r *FleetRepo) ListDrivers(ctx context.Context) ([]*models.Driver, error) {
	query := `
		SELECT` + driverColumns + `
		FROM drivers d
		JOIN users u ON u.id = d.user_id
		ORDER BY u.name ASC`

	var drivers []*models.Driver
	if err := r.db.SelectContext(ctx, &drivers, query); err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	return drivers, nil
}

// SetDriverStatus updates the driver's operational status.
func (r *FleetRepo) SetDriverStatus(ctx context.Context, driverID uuid.UUID, status models.DriverStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE drivers SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, driverID)
	if err != nil {
		return fmt.Errorf("failed to update driver status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.NotFoundf("driver %s", driverID)
	}
	return nil
}

// GetVehicle retrieves a vehicle by id.
func (r *FleetRepo) GetVehicle(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	query := `
		SELECT id, license_plate, model, capacity, status
		FROM vehicles
		WHERE id = $1`

	var vehicle models.Vehicle
	err := r.db.GetContext(ctx, &vehicle, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFoundf("vehicle %s", id)
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}
	return &vehicle, nil
}

// GetRoute retrieves a route by id.
func (r *FleetRepo) GetRoute(ctx context.Context, id uuid.UUID) (*models.Route, error) {
	query := `
		SELECT id, name, origin, destination
		FROM routes
		WHERE id = $1`

	var route models.Route
	err := r.db.GetContext(ctx, &route, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFoundf("route %s", id)
		}
		return nil, fmt.Errorf("failed to get route: %w", err)
	}
	return &route, nil
}

// ListEmployees returns employees for the given ids. Unknown ids are
// silently skipped.
func (r *FleetRepo) ListEmployees(ctx context.Context, ids []uuid.UUID) ([]*models.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In(`
		SELECT e.id, e.user_id, u.name, e.department
		FROM employees e
		JOIN users u ON u.id = e.user_id
		WHERE e.id IN (?)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to build employee query: %w", err)
	}

	var employees []*models.Employee
	if err := r.db.SelectContext(ctx, &employees, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}
