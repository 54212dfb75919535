package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fleetops/rosterd/internal/pkg/errs"
	"github.com/fleetops/rosterd/internal/pkg/logger"
	"github.com/fleetops/rosterd/internal/pkg/models"
	"github.com/fleetops/rosterd/services/fleet"
	"github.com/fleetops/rosterd/services/trip"
)

const dateLayout = "2006-01-02"

// TripUC implements trip.TripUC.
type TripUC struct {
	repo        trip.TripRepo
	cache       trip.VehicleCacheRepo
	assignments trip.AssignmentSource
	registry    fleet.Registry
	gw          trip.TripGW
}

// NewTripUC creates the trip usecase
func NewTripUC(
	repo trip.TripRepo,
	cache trip.VehicleCacheRepo,
	assignments trip.AssignmentSource,
	registry fleet.Registry,
	gw trip.TripGW,
) trip.TripUC {
	return &TripUC{
		repo:        repo,
		cache:       cache,
		assignments: assignments,
		registry:    registry,
		gw:          gw,
	}
}

// CreateTrip validates the references and inserts a scheduled trip.
func (uc *TripUC) CreateTrip(ctx context.Context, req trip.CreateTripRequest) (*models.Trip, error) {
	if req.StartTime.IsZero() {
		return nil, errs.Validationf("start_time is required")
	}
	if req.Type != "" && !models.ValidTripType(req.Type) {
		return nil, errs.Validationf("invalid trip type %q", req.Type)
	}

	if _, err := uc.registry.GetDriver(ctx, req.DriverID); err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.Validationf("driver %s does not exist", req.DriverID)
		}
		return nil, err
	}
	if _, err := uc.registry.GetVehicle(ctx, req.VehicleID); err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.Validationf("vehicle %s does not exist", req.VehicleID)
		}
		return nil, err
	}
	if _, err := uc.registry.GetRoute(ctx, req.RouteID); err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.Validationf("route %s does not exist", req.RouteID)
		}
		return nil, err
	}

	return uc.repo.CreateTrip(ctx, &models.Trip{
		RouteID:   req.RouteID,
		DriverID:  req.DriverID,
		VehicleID: req.VehicleID,
		Status:    models.TripStatusScheduled,
		Type:      req.Type,
		StartTime: req.StartTime.UTC(),
	})
}

// GetTrip returns one trip by id.
func (uc *TripUC) GetTrip(ctx context.Context, id uuid.UUID) (*models.Trip, error) {
	return uc.repo.GetTrip(ctx, id)
}

// ListTrips returns trips matching the filter.
func (uc *TripUC) ListTrips(ctx context.Context, f models.TripFilter) ([]*models.Trip, error) {
	return uc.repo.ListTrips(ctx, f)
}

// UpdateTrip applies an operator's partial update. Status changes go through
// the same transition rules as the driver lifecycle endpoints.
func (uc *TripUC) UpdateTrip(ctx context.Context, id uuid.UUID, req trip.UpdateTripRequest) (*models.Trip, error) {
	if req.Status != nil {
		if !models.ValidTripStatus(*req.Status) {
			return nil, errs.Validationf("invalid trip status %q", *req.Status)
		}

		current, err := uc.repo.GetTrip(ctx, id)
		if err != nil {
			return nil, err
		}
		if *req.Status != current.Status && !canTransition(current.Status, *req.Status) {
			return nil, errs.InvalidTransitionf("cannot move trip from %q to %q", current.Status, *req.Status)
		}
	}

	err := uc.repo.UpdateTrip(ctx, id, models.TripPatch{
		Status:    req.Status,
		DriverID:  req.DriverID,
		VehicleID: req.VehicleID,
	})
	if err != nil {
		return nil, err
	}

	updated, err := uc.repo.GetTrip(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		uc.publishStatusChanged(ctx, updated)
	}
	return updated, nil
}

// DeleteTrip removes the trip and its GPS and boarding trails.
func (uc *TripUC) DeleteTrip(ctx context.Context, id uuid.UUID) error {
	return uc.repo.DeleteTrip(ctx, id)
}

// VehiclePositions returns the last known position of every tracked vehicle.
func (uc *TripUC) VehiclePositions(ctx context.Context) ([]*models.VehiclePosition, error) {
	return uc.cache.ListPositions(ctx)
}

// VehiclePosition returns one vehicle's last known position.
func (uc *TripUC) VehiclePosition(ctx context.Context, vehicleID uuid.UUID) (*models.VehiclePosition, error) {
	return uc.cache.GetPosition(ctx, vehicleID)
}

func (uc *TripUC) publishStatusChanged(ctx context.Context, t *models.Trip) {
	if err := uc.gw.PublishTripStatusChanged(ctx, t); err != nil {
		logger.WithFields(logrus.Fields{
			"trip_id": t.ID,
			"status":  t.Status,
			"error":   err.Error(),
		}).Warn("Failed to publish trip status event")
	}
}
