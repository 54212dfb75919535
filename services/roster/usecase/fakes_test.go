package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fleetops/rosterd/internal/pkg/errs"
	"github.com/fleetops/rosterd/internal/pkg/models"
)

// fakeRosterRepo is an in-memory stand-in for the postgres repository.
type fakeRosterRepo struct {
	assignments map[uuid.UUID]*models.RosterAssignment
	rotations   map[string]*models.RotationEntry // driverID|month
	createErr   error

	createdShifts []models.ShiftType
}

func newFakeRosterRepo() *fakeRosterRepo {
	return &fakeRosterRepo{
		assignments: make(map[uuid.UUID]*models.RosterAssignment),
		rotations:   make(map[string]*models.RotationEntry),
	}
}

func rotationKey(driverID uuid.UUID, month time.Time) string {
	return driverID.String() + "|" + models.MonthOf(month).Format("2006-01")
}

func (f *fakeRosterRepo) CreateAssignment(_ context.Context, a *models.RosterAssignment) (*models.RosterAssignment, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.assignments[a.ID] = a
	f.createdShifts = append(f.createdShifts, a.ShiftType)
	return a, nil
}

func (f *fakeRosterRepo) GetAssignment(_ context.Context, id uuid.UUID) (*models.RosterAssignment, error) {
	a, ok := f.assignments[id]
	if !ok {
		return nil, errs.NotFoundf("assignment %s", id)
	}
	return a, nil
}

func (f *fakeRosterRepo) ListAssignments(_ context.Context, filter models.AssignmentFilter) ([]*models.RosterAssignment, error) {
	var out []*models.RosterAssignment
	for _, a := range f.assignments {
		if filter.Date != nil && !a.Date.Equal(*filter.Date) {
			continue
		}
		if filter.DriverID != nil && a.DriverID != *filter.DriverID {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (f *fakeRosterRepo) UpdateAssignment(_ context.Context, id uuid.UUID, patch models.AssignmentPatch) error {
	a, ok := f.assignments[id]
	if !ok {
		return errs.NotFoundf("assignment %s", id)
	}
	if patch.Status != nil {
		a.Status = *patch.Status
	}
	if patch.Notes != nil {
		a.Notes = *patch.Notes
	}
	if patch.EmployeeIDs != nil {
		a.EmployeeIDs = *patch.EmployeeIDs
	}
	return nil
}

func (f *fakeRosterRepo) DeleteAssignment(_ context.Context, id uuid.UUID) error {
	if _, ok := f.assignments[id]; !ok {
		return errs.NotFoundf("assignment %s", id)
	}
	delete(f.assignments, id)
	return nil
}

func (f *fakeRosterRepo) DriverAssignedOn(_ context.Context, driverID uuid.UUID, date time.Time) (bool, error) {
	for _, a := range f.assignments {
		if a.DriverID == driverID && a.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRosterRepo) GetRotation(_ context.Context, driverID uuid.UUID, month time.Time) (*models.RotationEntry, error) {
	return f.rotations[rotationKey(driverID, month)], nil
}

// fakeRegistry serves reference data from maps.
type fakeRegistry struct {
	drivers   map[uuid.UUID]*models.Driver
	vehicles  map[uuid.UUID]*models.Vehicle
	routes    map[uuid.UUID]*models.Route
	employees map[uuid.UUID]*models.Employee

	statusChanges map[uuid.UUID]models.DriverStatus
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		drivers:       make(map[uuid.UUID]*models.Driver),
		vehicles:      make(map[uuid.UUID]*models.Vehicle),
		routes:        make(map[uuid.UUID]*models.Route),
		employees:     make(map[uuid.UUID]*models.Employee),
		statusChanges: make(map[uuid.UUID]models.DriverStatus),
	}
}

func (f *fakeRegistry) addDriver(name string) *models.Driver {
	d := &models.Driver{ID: uuid.New(), UserID: uuid.New(), Name: name, Status: models.DriverStatusActive}
	f.drivers[d.ID] = d
	return d
}

func (f *fakeRegistry) addVehicle() *models.Vehicle {
	v := &models.Vehicle{ID: uuid.New(), LicensePlate: "B 1234 XY", Status: models.VehicleStatusActive}
	f.vehicles[v.ID] = v
	return v
}

func (f *fakeRegistry) addRoute() *models.Route {
	r := &models.Route{ID: uuid.New(), Name: "HQ Loop", Origin: "Depot", Destination: "HQ"}
	f.routes[r.ID] = r
	return r
}

func (f *fakeRegistry) GetDriver(_ context.Context, id uuid.UUID) (*models.Driver, error) {
	d, ok := f.drivers[id]
	if !ok {
		return nil, errs.NotFoundf("driver %s", id)
	}
	return d, nil
}

func (f *fakeRegistry) GetDriverByUserID(_ context.Context, userID uuid.UUID) (*models.Driver, error) {
	for _, d := range f.drivers {
		if d.UserID == userID {
			return d, nil
		}
	}
	return nil, errs.NotFoundf("driver for user %s", userID)
}

func (f *fakeRegistry) ListDrivers(_ context.Context) ([]*models.Driver, error) {
	out := make([]*models.Driver, 0, len(f.drivers))
	for _, d := range f.drivers {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeRegistry) SetDriverStatus(_ context.Context, driverID uuid.UUID, status models.DriverStatus) error {
	d, ok := f.drivers[driverID]
	if !ok {
		return errs.NotFoundf("driver %s", driverID)
	}
	d.Status = status
	f.statusChanges[driverID] = status
	return nil
}

func (f *fakeRegistry) GetVehicle(_ context.Context, id uuid.UUID) (*models.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, errs.NotFoundf("vehicle %s", id)
	}
	return v, nil
}

func (f *fakeRegistry) GetRoute(_ context.Context, id uuid.UUID) (*models.Route, error) {
	r, ok := f.routes[id]
	if !ok {
		return nil, errs.NotFoundf("route %s", id)
	}
	return r, nil
}

func (f *fakeRegistry) ListEmployees(_ context.Context, ids []uuid.UUID) ([]*models.Employee, error) {
	var out []*models.Employee
	for _, id := range ids {
		if e, ok := f.employees[id]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeRosterGW records published events.
type fakeRosterGW struct {
	published []*models.RosterAssignment
	err       error
}

func (f *fakeRosterGW) PublishAssignmentCreated(_ context.Context, a *models.RosterAssignment) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, a)
	return nil
}
