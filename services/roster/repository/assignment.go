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
	"github.com/fleetops/rosterd/services/roster"
)

// RosterRepo implements roster.RosterRepo on postgres.
type RosterRepo struct {
	db *sqlx.DB
}

// NewRosterRepository creates a new roster repository
func NewRosterRepository(db *sqlx.DB) roster.RosterRepo {
	return &RosterRepo{db: db}
}

// assignmentRow is the flat join row scanned from the assignment listing
// queries.
type assignmentRow struct {
	models.RosterAssignment
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

func (row *assignmentRow) toModel() *models.RosterAssignment {
	a := row.RosterAssignment
	a.Driver = &models.Driver{
		ID:            a.DriverID,
		UserID:        row.DriverUserID,
		Name:          row.DriverName,
		LicenseNumber: row.DriverLicense,
		Status:        row.DriverStatus,
	}
	a.Vehicle = &models.Vehicle{
		ID:           a.VehicleID,
		LicensePlate: row.VehiclePlate,
		Model:        row.VehicleModel,
		Capacity:     row.VehicleCapacity,
		Status:       row.VehicleStatus,
	}
	a.Route = &models.Route{
		ID:          a.RouteID,
		Name:        row.RouteName,
		Origin:      row.RouteOrigin,
		Destination: row.RouteDestination,
	}
	if a.EmployeeIDs == nil {
		a.EmployeeIDs = []uuid.UUID{}
	}
	return &a
}

const assignmentSelect = `
	SELECT
		a.id, a.driver_id, a.vehicle_id, a.route_id, a.date,
		a.shift_type, a.trip_type, a.scheduled_time::text AS scheduled_time,
		a.status, COALESCE(a.notes, '') AS notes, a.created_at, a.updated_at,
		d.user_id AS driver_user_id, u.name AS driver_name,
		d.license_number AS driver_license, d.status AS driver_status,
		v.license_plate AS vehicle_plate, v.model AS vehicle_model,
		v.capacity AS vehicle_capacity, v.status AS vehicle_status,
		r.name AS route_name, r.origin AS route_origin,
		r.destination AS route_destination
	FROM roster_assignments a
	JOIN drivers d ON d.id = a.driver_id
	JOIN users u ON u.id = d.user_id
	JOIN vehicles v ON v.id = a.vehicle_id
	JOIN routes r ON r.id = a.route_id`

// CreateAssignment inserts the assignment, its employee associations and
// the rotation ledger increment in one transaction so the ledger can never
// disagree with the assignment table.
func (r *RosterRepo) CreateAssignment(ctx context.Context, a *models.RosterAssignment) (*models.RosterAssignment, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = models.AssignmentStatusAssigned
	}
	if a.TripType == "" {
		a.TripType = models.TripTypePickup
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO roster_assignments (
			id, driver_id, vehicle_id, route_id, date,
			shift_type, trip_type, scheduled_time, status, notes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8::time, $9, $10)`,
		a.ID, a.DriverID, a.VehicleID, a.RouteID, a.Date,
		a.ShiftType, a.TripType, a.ScheduledTime, a.Status, a.Notes,
	)
	if err != nil {
		return nil, errs.ClassifyPg(err, "failed to insert assignment")
	}

	for _, empID := range a.EmployeeIDs {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO roster_assignment_employees (id, roster_assignment_id, employee_id)
			VALUES ($1, $2, $3)`,
			uuid.New(), a.ID, empID,
		)
		if err != nil {
			return nil, errs.ClassifyPg(err, "failed to insert assignment employee")
		}
	}

	if err := recordShift(ctx, tx, a.DriverID, a.Date, a.ShiftType); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit assignment: %w", err)
	}

	return r.GetAssignment(ctx, a.ID)
}

// GetAssignment returns one assignment with joined driver, vehicle, route
// and employee ids.
func (r *RosterRepo) GetAssignment(ctx context.Context, id uuid.UUID) (*models.RosterAssignment, error) {
	var row assignmentRow
	err := r.db.GetContext(ctx, &row, assignmentSelect+` WHERE a.id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.NotFoundf("assignment %s", id)
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	assignment := row.toModel()
	if err := r.attachEmployees(ctx, []*models.RosterAssignment{assignment}); err != nil {
		return nil, err
	}
	return assignment, nil
}

// ListAssignments returns assignments matching the filter, ordered by date
// ascending.
func (r *RosterRepo) ListAssignments(ctx context.Context, f models.AssignmentFilter) ([]*models.RosterAssignment, error) {
	query := assignmentSelect
	var (
		conds []string
		args  []interface{}
	)

	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Date != nil {
		add("a.date = $%d", *f.Date)
	}
	if f.DriverID != nil {
		add("a.driver_id = $%d", *f.DriverID)
	}
	if f.VehicleID != nil {
		add("a.vehicle_id = $%d", *f.VehicleID)
	}
	if f.FromDate != nil {
		add("a.date >= $%d", *f.FromDate)
	}
	if f.ToDate != nil {
		add("a.date <= $%d", *f.ToDate)
	}

	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY a.date ASC"

	var rows []assignmentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	assignments := make([]*models.RosterAssignment, 0, len(rows))
	for i := range rows {
		assignments = append(assignments, rows[i].toModel())
	}

	if err := r.attachEmployees(ctx, assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// attachEmployees loads the employee id sets for the given assignments in
// one query.
func (r *RosterRepo) attachEmployees(ctx context.Context, assignments []*models.RosterAssignment) error {
	if len(assignments) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, 0, len(assignments))
	byID := make(map[uuid.UUID]*models.RosterAssignment, len(assignments))
	for _, a := range assignments {
		ids = append(ids, a.ID)
		byID[a.ID] = a
	}

	query, args, err := sqlx.In(`
		SELECT roster_assignment_id, employee_id
		FROM roster_assignment_employees
		WHERE roster_assignment_id IN (?)`, ids)
	if err != nil {
		return fmt.Errorf("failed to build employee query: %w", err)
	}

	var links []struct {
		AssignmentID uuid.UUID `db:"roster_assignment_id"`
		EmployeeID   uuid.UUID `db:"employee_id"`
	}
	if err := r.db.SelectContext(ctx, &links, r.db.Rebind(query), args...); err != nil {
		return fmt.Errorf("failed to load assignment employees: %w", err)
	}

	for _, link := range links {
		if a, ok := byID[link.AssignmentID]; ok {
			a.EmployeeIDs = append(a.EmployeeIDs, link.EmployeeID)
		}
	}
	return nil
}

// UpdateAssignment applies a partial update. A non-nil employee set replaces
// all existing associations (remove-all-then-insert, not a diff). The
// rotation ledger is not touched.
func (r *RosterRepo) UpdateAssignment(ctx context.Context, id uuid.UUID, patch models.AssignmentPatch) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sets := []string{"updated_at = NOW()"}
	var args []interface{}

	set := func(clause string, arg interface{}) {
		args = append(args, arg)
		sets = append(sets, fmt.Sprintf(clause, len(args)))
	}

	if patch.Status != nil {
		set("status = $%d", *patch.Status)
	}
	if patch.Notes != nil {
		set("notes = $%d", *patch.Notes)
	}
	if patch.TripType != nil {
		set("trip_type = $%d", *patch.TripType)
	}
	if patch.ScheduledTime != nil {
		set("scheduled_time = $%d::time", *patch.ScheduledTime)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE roster_assignments SET %s WHERE id = $%d",
		strings.Join(sets, ", "), len(args))

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return errs.ClassifyPg(err, "failed to update assignment")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.NotFoundf("assignment %s", id)
	}

	if patch.EmployeeIDs != nil {
		_, err = tx.ExecContext(ctx,
			`DELETE FROM roster_assignment_employees WHERE roster_assignment_id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to clear assignment employees: %w", err)
		}

		for _, empID := range *patch.EmployeeIDs {
			_, err = tx.ExecContext(ctx, `
				INSERT INTO roster_assignment_employees (id, roster_assignment_id, employee_id)
				VALUES ($1, $2, $3)`,
				uuid.New(), id, empID,
			)
			if err != nil {
				return errs.ClassifyPg(err, "failed to insert assignment employee")
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit assignment update: %w", err)
	}
	return nil
}

// DeleteAssignment removes the assignment; employee associations go with it
// via cascade. Rotation counters are intentionally left as recorded.
func (r *RosterRepo) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM roster_assignments WHERE id = $1`, id)
	if err != nil {
		return errs.ClassifyPg(err, "failed to delete assignment")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return errs.NotFoundf("assignment %s", id)
	}
	return nil
}

// DriverAssignedOn reports whether the driver already holds any assignment
// on the given date, regardless of route or shift.
func (r *RosterRepo) DriverAssignedOn(ctx context.Context, driverID uuid.UUID, date time.Time) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (
			SELECT 1 FROM roster_assignments
			WHERE driver_id = $1 AND date = $2
		)`, driverID, date)
	if err != nil {
		return false, fmt.Errorf("failed to check driver assignment: %w", err)
	}
	return exists, nil
}
