package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/rosterd/internal/pkg/models"
)

func rosterAssignment(date time.Time, shift models.ShiftType) *models.RosterAssignment {
	return &models.RosterAssignment{
		ID:        uuid.New(),
		DriverID:  uuid.New(),
		VehicleID: uuid.New(),
		RouteID:   uuid.New(),
		Date:      date,
		ShiftType: shift,
	}
}

func TestShiftStartTime(t *testing.T) {
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name      string
		shift     models.ShiftType
		scheduled *string
		expected  string
	}{
		{name: "Morning", shift: models.ShiftMorning, expected: "07:00:00"},
		{name: "Afternoon", shift: models.ShiftAfternoon, expected: "15:00:00"},
		{name: "Night", shift: models.ShiftNight, expected: "22:00:00"},
		{name: "Weekend", shift: models.ShiftWeekend, expected: "09:00:00"},
		{name: "Unknown falls back to default", shift: "split", expected: "08:00:00"},
		{
			name:      "Explicit scheduled time wins",
			shift:     models.ShiftMorning,
			scheduled: strPtr("06:30:00"),
			expected:  "06:30:00",
		},
		{
			name:      "Scheduled time without seconds",
			shift:     models.ShiftMorning,
			scheduled: strPtr("06:45"),
			expected:  "06:45:00",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := shiftStartTime(day, tc.shift, tc.scheduled)
			assert.Equal(t, "2026-09-07 "+tc.expected, got.Format("2006-01-02 15:04:05"))
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}

func strPtr(s string) *string { return &s }

func TestGenerateTrips_CreatesOneTripPerAssignment(t *testing.T) {
	repo, _, assignments, _, gw, uc := setupTripUC()
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	morning := rosterAssignment(date, models.ShiftMorning)
	night := rosterAssignment(date, models.ShiftNight)
	assignments.add(morning)
	assignments.add(night)

	report, err := uc.GenerateTrips(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, 2, report.TripsCreated)
	assert.Equal(t, "2026-09-07", report.Date)
	assert.Len(t, repo.trips, 2)

	for _, trip := range repo.trips {
		assert.Equal(t, models.TripStatusScheduled, trip.Status)
		assert.Equal(t, models.TripTypePickup, trip.Type)
	}

	require.Len(t, gw.generatedEvents, 1)
	assert.Equal(t, 2, gw.generatedEvents[0].Count)
}

func TestGenerateTrips_Idempotent(t *testing.T) {
	repo, _, assignments, _, _, uc := setupTripUC()
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	assignments.add(rosterAssignment(date, models.ShiftMorning))

	first, err := uc.GenerateTrips(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, 1, first.TripsCreated)

	second, err := uc.GenerateTrips(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, 0, second.TripsCreated)
	assert.Len(t, repo.trips, 1)
}

func TestGenerateTrips_SkipsExistingEvenWhenTerminal(t *testing.T) {
	repo, _, assignments, _, _, uc := setupTripUC()
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	a := rosterAssignment(date, models.ShiftMorning)
	assignments.add(a)

	// A completed trip with the same identity tuple already exists.
	existing := &models.Trip{
		ID:        uuid.New(),
		DriverID:  a.DriverID,
		VehicleID: a.VehicleID,
		RouteID:   a.RouteID,
		Status:    models.TripStatusCompleted,
		StartTime: time.Date(2026, 9, 7, 7, 0, 0, 0, time.UTC),
	}
	repo.trips[existing.ID] = existing

	report, err := uc.GenerateTrips(context.Background(), date)
	require.NoError(t, err)
	assert.Equal(t, 0, report.TripsCreated)
	assert.Len(t, repo.trips, 1)
	assert.Equal(t, models.TripStatusCompleted, repo.trips[existing.ID].Status)
}

func TestGenerateTrips_AssignmentTripTypeCarriesOver(t *testing.T) {
	repo, _, assignments, _, _, uc := setupTripUC()
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	a := rosterAssignment(date, models.ShiftAfternoon)
	a.TripType = models.TripTypeDrop
	assignments.add(a)

	_, err := uc.GenerateTrips(context.Background(), date)
	require.NoError(t, err)

	for _, trip := range repo.trips {
		assert.Equal(t, models.TripTypeDrop, trip.Type)
	}
}

// flakyTripRepo fails generation-path calls for a chosen driver.
type flakyTripRepo struct {
	*fakeTripRepo
	failInsertFor uuid.UUID
	failExistsFor uuid.UUID
}

func (f *flakyTripRepo) CreateTrip(ctx context.Context, trip *models.Trip) (*models.Trip, error) {
	if trip.DriverID == f.failInsertFor {
		return nil, errors.New("insert failed")
	}
	return f.fakeTripRepo.CreateTrip(ctx, trip)
}

func (f *flakyTripRepo) TripExists(ctx context.Context, driverID, vehicleID, routeID uuid.UUID, startTime time.Time) (bool, error) {
	if driverID == f.failExistsFor {
		return false, errors.New("existence check failed")
	}
	return f.fakeTripRepo.TripExists(ctx, driverID, vehicleID, routeID, startTime)
}

func TestGenerateTrips_OneFailingAssignmentDoesNotBlockTheRest(t *testing.T) {
	date := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	t.Run("Insert failure is skipped", func(t *testing.T) {
		repo, _, assignments, registry, gw, _ := setupTripUC()
		healthy := rosterAssignment(date, models.ShiftMorning)
		broken := rosterAssignment(date, models.ShiftNight)
		assignments.add(healthy)
		assignments.add(broken)

		flaky := &flakyTripRepo{fakeTripRepo: repo, failInsertFor: broken.DriverID}
		uc := NewTripUC(flaky, newFakeCache(), assignments, registry, gw)

		report, err := uc.GenerateTrips(context.Background(), date)
		require.NoError(t, err)
		assert.Equal(t, 1, report.TripsCreated)
		require.Len(t, repo.trips, 1)
		for _, created := range repo.trips {
			assert.Equal(t, healthy.DriverID, created.DriverID)
		}
		require.Len(t, gw.generatedEvents, 1)
		assert.Equal(t, 1, gw.generatedEvents[0].Count)
	})

	t.Run("Existence check failure is skipped", func(t *testing.T) {
		repo, _, assignments, registry, gw, _ := setupTripUC()
		healthy := rosterAssignment(date, models.ShiftMorning)
		broken := rosterAssignment(date, models.ShiftNight)
		assignments.add(broken)
		assignments.add(healthy)

		flaky := &flakyTripRepo{fakeTripRepo: repo, failExistsFor: broken.DriverID}
		uc := NewTripUC(flaky, newFakeCache(), assignments, registry, gw)

		report, err := uc.GenerateTrips(context.Background(), date)
		require.NoError(t, err)
		assert.Equal(t, 1, report.TripsCreated)
		assert.Len(t, repo.trips, 1)
	})
}

func TestGenerateTrips_EmptyRoster(t *testing.T) {
	repo, _, _, _, gw, uc := setupTripUC()

	report, err := uc.GenerateTrips(context.Background(), time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 0, report.TripsCreated)
	assert.Empty(t, repo.trips)
	assert.Len(t, gw.generatedEvents, 1)
}
