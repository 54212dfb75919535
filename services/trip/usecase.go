package trip

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fleetops/rosterd/internal/pkg/models"
)

// CreateTripRequest is the operator's request to create a trip manually,
// outside the generator.
type CreateTripRequest struct {
	RouteID   uuid.UUID       `json:"route_id"`
	DriverID  uuid.UUID       `json:"driver_id"`
	VehicleID uuid.UUID       `json:"vehicle_id"`
	Type      models.TripType `json:"type,omitempty"`
	StartTime time.Time       `json:"start_time"`
}

// UpdateTripRequest is the operator's partial update.
type UpdateTripRequest struct {
	Status    *models.TripStatus `json:"status,omitempty"`
	DriverID  *uuid.UUID         `json:"driver_id,omitempty"`
	VehicleID *uuid.UUID         `json:"vehicle_id,omitempty"`
}

// CompleteTripRequest carries the driver-reported distance. When zero or
// negative the accumulated GPS distance stands.
type CompleteTripRequest struct {
	DistanceKm float64 `json:"distance_km"`
}

// RecordLocationRequest is one GPS ping from the driver app.
type RecordLocationRequest struct {
	Latitude  float64  `json:"lat"`
	Longitude float64  `json:"lng"`
	SpeedKmh  *float64 `json:"speed_kmh,omitempty"`
}

// LocationUpdate is the result of an accepted GPS ping.
type LocationUpdate struct {
	Sample          *models.GPSSample `json:"sample"`
	DistanceDeltaKm float64           `json:"distance_delta_km"`
	TotalDistanceKm float64           `json:"total_distance_km"`
}

// RecordBoardingRequest records one employee's outcome at one stop.
type RecordBoardingRequest struct {
	StopID     uuid.UUID             `json:"stop_id"`
	EmployeeID uuid.UUID             `json:"employee_id"`
	Status     models.BoardingStatus `json:"status"`
	Latitude   float64               `json:"lat"`
	Longitude  float64               `json:"lng"`
}

// TripUC defines the trip business logic: generation, lifecycle, GPS
// tracking and boarding records.
type TripUC interface {
	CreateTrip(ctx context.Context, req CreateTripRequest) (*models.Trip, error)
	GetTrip(ctx context.Context, id uuid.UUID) (*models.Trip, error)
	ListTrips(ctx context.Context, f models.TripFilter) ([]*models.Trip, error)
	UpdateTrip(ctx context.Context, id uuid.UUID, req UpdateTripRequest) (*models.Trip, error)
	DeleteTrip(ctx context.Context, id uuid.UUID) error

	// GenerateTrips creates one scheduled trip per roster assignment on the
	// date, skipping tuples that already exist. Safe to re-run.
	GenerateTrips(ctx context.Context, date time.Time) (*models.GenerationReport, error)

	StartTrip(ctx context.Context, tripID uuid.UUID) (*models.Trip, error)
	CompleteTrip(ctx context.Context, tripID uuid.UUID, req CompleteTripRequest) (*models.Trip, error)
	CancelTrip(ctx context.Context, tripID uuid.UUID) (*models.Trip, error)

	RecordLocation(ctx context.Context, tripID uuid.UUID, req RecordLocationRequest) (*LocationUpdate, error)
	ListLocations(ctx context.Context, tripID uuid.UUID) ([]*models.GPSSample, error)

	RecordBoarding(ctx context.Context, tripID uuid.UUID, req RecordBoardingRequest) (*models.BoardingRecord, error)
	ListBoardings(ctx context.Context, tripID uuid.UUID) ([]*models.BoardingRecord, error)

	// DriverTrips resolves the driver behind the authenticated user and
	// lists that driver's trips, most recent first.
	DriverTrips(ctx context.Context, userID uuid.UUID, f models.TripFilter) ([]*models.Trip, error)
	// VerifyTripDriver confirms the trip belongs to the driver behind the
	// authenticated user.
	VerifyTripDriver(ctx context.Context, tripID, userID uuid.UUID) error

	VehiclePositions(ctx context.Context) ([]*models.VehiclePosition, error)
	VehiclePosition(ctx context.Context, vehicleID uuid.UUID) (*models.VehiclePosition, error)
}
