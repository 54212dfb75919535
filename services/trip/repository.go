package trip

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fleetops/rosterd/internal/pkg/models"
)

// TripRepo defines data access for trips, their GPS trail and boarding
// records.
type TripRepo interface {
	CreateTrip(ctx context.Context, t *models.Trip) (*models.Trip, error)
	GetTrip(ctx context.Context, id uuid.UUID) (*models.Trip, error)
	ListTrips(ctx context.Context, f models.TripFilter) ([]*models.Trip, error)
	UpdateTrip(ctx context.Context, id uuid.UUID, patch models.TripPatch) error
	DeleteTrip(ctx context.Context, id uuid.UUID) error

	// TripExists reports whether a trip with the identity tuple already
	// exists, regardless of its status.
	TripExists(ctx context.Context, driverID, vehicleID, routeID uuid.UUID, startTime time.Time) (bool, error)

	// MarkCompleted sets the terminal completed state with end time and
	// final distance in one statement.
	MarkCompleted(ctx context.Context, id uuid.UUID, endTime time.Time, distanceKm float64) error
	// MarkCancelled sets the terminal cancelled state with end time.
	MarkCancelled(ctx context.Context, id uuid.UUID, endTime time.Time) error

	AddGPSSample(ctx context.Context, s *models.GPSSample) error
	LastGPSSample(ctx context.Context, tripID uuid.UUID) (*models.GPSSample, error)
	ListGPSSamples(ctx context.Context, tripID uuid.UUID) ([]*models.GPSSample, error)
	// AddDistance atomically accumulates km onto the trip and returns the
	// new running total.
	AddDistance(ctx context.Context, tripID uuid.UUID, km float64) (float64, error)

	// UpsertBoarding inserts or overwrites the record keyed by
	// (trip, stop, employee); last write wins.
	UpsertBoarding(ctx context.Context, rec *models.BoardingRecord) (*models.BoardingRecord, error)
	ListBoardings(ctx context.Context, tripID uuid.UUID) ([]*models.BoardingRecord, error)
}

// VehicleCacheRepo is the last-known-position cache, overwritten on every
// accepted GPS ping.
type VehicleCacheRepo interface {
	SetPosition(ctx context.Context, pos *models.VehiclePosition) error
	GetPosition(ctx context.Context, vehicleID uuid.UUID) (*models.VehiclePosition, error)
	ListPositions(ctx context.Context) ([]*models.VehiclePosition, error)
}

// AssignmentSource feeds the trip generator with the roster for a date.
// Satisfied by the roster repository.
type AssignmentSource interface {
	ListAssignments(ctx context.Context, f models.AssignmentFilter) ([]*models.RosterAssignment, error)
}
