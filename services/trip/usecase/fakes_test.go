package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/fleetops/rosterd/internal/pkg/errs"
	"github.com/fleetops/rosterd/internal/pkg/models"
)

// fakeTripRepo is an in-memory stand-in for the postgres trip repository.
type fakeTripRepo struct {
	trips     map[uuid.UUID]*models.Trip
	gps       map[uuid.UUID][]*models.GPSSample
	boardings map[uuid.UUID]map[string]*models.BoardingRecord // tripID -> stop|employee
}

func newFakeTripRepo() *fakeTripRepo {
	return &fakeTripRepo{
		trips:     make(map[uuid.UUID]*models.Trip),
		gps:       make(map[uuid.UUID][]*models.GPSSample),
		boardings: make(map[uuid.UUID]map[string]*models.BoardingRecord),
	}
}

func (f *fakeTripRepo) CreateTrip(_ context.Context, t *models.Trip) (*models.Trip, error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.Status == "" {
		t.Status = models.TripStatusScheduled
	}
	f.trips[t.ID] = t
	return t, nil
}

func (f *fakeTripRepo) GetTrip(_ context.Context, id uuid.UUID) (*models.Trip, error) {
	t, ok := f.trips[id]
	if !ok {
		return nil, errs.NotFoundf("trip %s", id)
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTripRepo) ListTrips(_ context.Context, filter models.TripFilter) ([]*models.Trip, error) {
	var out []*models.Trip
	for _, t := range f.trips {
		if filter.DriverID != nil && t.DriverID != *filter.DriverID {
			continue
		}
		if len(filter.Statuses) > 0 {
			match := false
			for _, s := range filter.Statuses {
				if t.Status == s {
					match = true
				}
			}
			if !match {
				continue
			}
		}
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.After(out[j].StartTime) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeTripRepo) UpdateTrip(_ context.Context, id uuid.UUID, patch models.TripPatch) error {
	t, ok := f.trips[id]
	if !ok {
		return errs.NotFoundf("trip %s", id)
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.DriverID != nil {
		t.DriverID = *patch.DriverID
	}
	if patch.VehicleID != nil {
		t.VehicleID = *patch.VehicleID
	}
	if patch.DistanceTraveledKm != nil {
		t.DistanceTraveledKm = *patch.DistanceTraveledKm
	}
	return nil
}

func (f *fakeTripRepo) DeleteTrip(_ context.Context, id uuid.UUID) error {
	if _, ok := f.trips[id]; !ok {
		return errs.NotFoundf("trip %s", id)
	}
	delete(f.trips, id)
	delete(f.gps, id)
	delete(f.boardings, id)
	return nil
}

func (f *fakeTripRepo) TripExists(_ context.Context, driverID, vehicleID, routeID uuid.UUID, startTime time.Time) (bool, error) {
	for _, t := range f.trips {
		if t.DriverID == driverID && t.VehicleID == vehicleID &&
			t.RouteID == routeID && t.StartTime.Equal(startTime) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTripRepo) MarkCompleted(_ context.Context, id uuid.UUID, endTime time.Time, distanceKm float64) error {
	t, ok := f.trips[id]
	if !ok {
		return errs.NotFoundf("trip %s", id)
	}
	t.Status = models.TripStatusCompleted
	t.EndTime = &endTime
	t.DistanceTraveledKm = distanceKm
	return nil
}

func (f *fakeTripRepo) MarkCancelled(_ context.Context, id uuid.UUID, endTime time.Time) error {
	t, ok := f.trips[id]
	if !ok {
		return errs.NotFoundf("trip %s", id)
	}
	t.Status = models.TripStatusCancelled
	t.EndTime = &endTime
	return nil
}

func (f *fakeTripRepo) AddGPSSample(_ context.Context, s *models.GPSSample) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.gps[s.TripID] = append(f.gps[s.TripID], s)
	return nil
}

func (f *fakeTripRepo) LastGPSSample(_ context.Context, tripID uuid.UUID) (*models.GPSSample, error) {
	trail := f.gps[tripID]
	if len(trail) == 0 {
		return nil, nil
	}
	return trail[len(trail)-1], nil
}

func (f *fakeTripRepo) ListGPSSamples(_ context.Context, tripID uuid.UUID) ([]*models.GPSSample, error) {
	return f.gps[tripID], nil
}

func (f *fakeTripRepo) AddDistance(_ context.Context, tripID uuid.UUID, km float64) (float64, error) {
	t, ok := f.trips[tripID]
	if !ok {
		return 0, errs.NotFoundf("trip %s", tripID)
	}
	t.DistanceTraveledKm += km
	return t.DistanceTraveledKm, nil
}

func boardingKey(stopID, employeeID uuid.UUID) string {
	return stopID.String() + "|" + employeeID.String()
}

func (f *fakeTripRepo) UpsertBoarding(_ context.Context, rec *models.BoardingRecord) (*models.BoardingRecord, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	byKey, ok := f.boardings[rec.TripID]
	if !ok {
		byKey = make(map[string]*models.BoardingRecord)
		f.boardings[rec.TripID] = byKey
	}

	key := boardingKey(rec.StopID, rec.EmployeeID)
	if existing, ok := byKey[key]; ok {
		existing.Status = rec.Status
		existing.BoardedAt = rec.BoardedAt
		return existing, nil
	}
	byKey[key] = rec
	return rec, nil
}

func (f *fakeTripRepo) ListBoardings(_ context.Context, tripID uuid.UUID) ([]*models.BoardingRecord, error) {
	var out []*models.BoardingRecord
	for _, rec := range f.boardings[tripID] {
		out = append(out, rec)
	}
	return out, nil
}

// fakeCache records vehicle positions in a map.
type fakeCache struct {
	positions map[uuid.UUID]*models.VehiclePosition
	err       error
}

func newFakeCache() *fakeCache {
	return &fakeCache{positions: make(map[uuid.UUID]*models.VehiclePosition)}
}

func (f *fakeCache) SetPosition(_ context.Context, pos *models.VehiclePosition) error {
	if f.err != nil {
		return f.err
	}
	f.positions[pos.VehicleID] = pos
	return nil
}

func (f *fakeCache) GetPosition(_ context.Context, vehicleID uuid.UUID) (*models.VehiclePosition, error) {
	pos, ok := f.positions[vehicleID]
	if !ok {
		return nil, errs.NotFoundf("no position for vehicle %s", vehicleID)
	}
	return pos, nil
}

func (f *fakeCache) ListPositions(_ context.Context) ([]*models.VehiclePosition, error) {
	out := make([]*models.VehiclePosition, 0, len(f.positions))
	for _, pos := range f.positions {
		out = append(out, pos)
	}
	return out, nil
}

// fakeAssignments serves a fixed roster.
type fakeAssignments struct {
	byDate map[string][]*models.RosterAssignment
}

func newFakeAssignments() *fakeAssignments {
	return &fakeAssignments{byDate: make(map[string][]*models.RosterAssignment)}
}

func (f *fakeAssignments) add(a *models.RosterAssignment) {
	key := a.Date.Format(dateLayout)
	f.byDate[key] = append(f.byDate[key], a)
}

func (f *fakeAssignments) ListAssignments(_ context.Context, filter models.AssignmentFilter) ([]*models.RosterAssignment, error) {
	if filter.Date == nil {
		return nil, nil
	}
	return f.byDate[filter.Date.Format(dateLayout)], nil
}

// fakeRegistry serves reference data from maps.
type fakeRegistry struct {
	drivers  map[uuid.UUID]*models.Driver
	vehicles map[uuid.UUID]*models.Vehicle
	routes   map[uuid.UUID]*models.Route

	statusChanges []models.DriverStatus
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{
		drivers:  make(map[uuid.UUID]*models.Driver),
		vehicles: make(map[uuid.UUID]*models.Vehicle),
		routes:   make(map[uuid.UUID]*models.Route),
	}
}

func (f *fakeRegistry) addDriver() *models.Driver {
	d := &models.Driver{ID: uuid.New(), UserID: uuid.New(), Status: models.DriverStatusActive}
	f.drivers[d.ID] = d
	return d
}

func (f *fakeRegistry) addVehicle() *models.Vehicle {
	v := &models.Vehicle{ID: uuid.New(), Status: models.VehicleStatusActive}
	f.vehicles[v.ID] = v
	return v
}

func (f *fakeRegistry) addRoute() *models.Route {
	r := &models.Route{ID: uuid.New()}
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
	f.statusChanges = append(f.statusChanges, status)
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
	return nil, nil
}

// fakeTripGW records published events.
type fakeTripGW struct {
	statusEvents    []models.TripStatusEvent
	locationEvents  []models.VehicleLocationEvent
	boardingEvents  []models.BoardingEvent
	generatedEvents []models.TripsGeneratedEvent
}

func (f *fakeTripGW) PublishTripStatusChanged(_ context.Context, t *models.Trip) error {
	f.statusEvents = append(f.statusEvents, models.TripStatusEvent{TripID: t.ID, Status: t.Status, Trip: t})
	return nil
}

func (f *fakeTripGW) PublishVehicleLocation(_ context.Context, event models.VehicleLocationEvent) error {
	f.locationEvents = append(f.locationEvents, event)
	return nil
}

func (f *fakeTripGW) PublishBoarding(_ context.Context, event models.BoardingEvent) error {
	f.boardingEvents = append(f.boardingEvents, event)
	return nil
}

func (f *fakeTripGW) PublishTripsGenerated(_ context.Context, event models.GenerationReport) error {
	f.generatedEvents = append(f.generatedEvents, models.TripsGeneratedEvent{Date: event.Date, Count: event.TripsCreated})
	return nil
}

func setupTripUC() (*fakeTripRepo, *fakeCache, *fakeAssignments, *fakeRegistry, *fakeTripGW, *TripUC) {
	repo := newFakeTripRepo()
	cache := newFakeCache()
	assignments := newFakeAssignments()
	registry := newFakeRegistry()
	gw := &fakeTripGW{}
	uc := NewTripUC(repo, cache, assignments, registry, gw).(*TripUC)
	return repo, cache, assignments, registry, gw, uc
}
