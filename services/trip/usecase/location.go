package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fleetops/rosterd/internal/pkg/errs"
	"github.com/fleetops/rosterd/internal/pkg/logger"
	"github.com/fleetops/rosterd/internal/pkg/models"
	"github.com/fleetops/rosterd/internal/utils"
	"github.com/fleetops/rosterd/services/trip"
)

// RecordLocation appends one GPS ping to an ongoing trip, accumulates the
// haversine distance from the previous sample onto the trip, refreshes the
// vehicle position cache and broadcasts the location.
func (uc *TripUC) RecordLocation(ctx context.Context, tripID uuid.UUID, req trip.RecordLocationRequest) (*trip.LocationUpdate, error) {
	if !utils.ValidCoordinates(req.Latitude, req.Longitude) {
		return nil, errs.Validationf("invalid coordinates (%f, %f)", req.Latitude, req.Longitude)
	}

	current, err := uc.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if current.Status != models.TripStatusOngoing {
		return nil, errs.Validationf("trip %s is not ongoing", tripID)
	}

	last, err := uc.repo.LastGPSSample(ctx, tripID)
	if err != nil {
		return nil, err
	}

	delta := 0.0
	if last != nil {
		delta = utils.CalculateDistance(
			utils.GeoPoint{Latitude: last.Latitude, Longitude: last.Longitude},
			utils.GeoPoint{Latitude: req.Latitude, Longitude: req.Longitude},
		)
	}

	sample := &models.GPSSample{
		TripID:    tripID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		SpeedKmh:  req.SpeedKmh,
		Timestamp: time.Now().UTC(),
	}
	if err := uc.repo.AddGPSSample(ctx, sample); err != nil {
		return nil, err
	}

	total := current.DistanceTraveledKm
	if last != nil {
		total, err = uc.repo.AddDistance(ctx, tripID, delta)
		if err != nil {
			return nil, err
		}
	}

	if err := uc.cache.SetPosition(ctx, &models.VehiclePosition{
		VehicleID: current.VehicleID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Timestamp: sample.Timestamp,
	}); err != nil {
		logger.WithFields(logrus.Fields{
			"vehicle_id": current.VehicleID,
			"error":      err.Error(),
		}).Warn("Failed to refresh vehicle position cache")
	}

	if err := uc.gw.PublishVehicleLocation(ctx, models.VehicleLocationEvent{
		VehicleID: current.VehicleID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		TripID:    &tripID,
		Timestamp: sample.Timestamp,
	}); err != nil {
		logger.WithFields(logrus.Fields{
			"trip_id": tripID,
			"error":   err.Error(),
		}).Warn("Failed to publish vehicle location event")
	}

	return &trip.LocationUpdate{
		Sample:          sample,
		DistanceDeltaKm: delta,
		TotalDistanceKm: total,
	}, nil
}

// ListLocations returns the trip's full GPS trail, oldest first.
func (uc *TripUC) ListLocations(ctx context.Context, tripID uuid.UUID) ([]*models.GPSSample, error) {
	if _, err := uc.repo.GetTrip(ctx, tripID); err != nil {
		return nil, err
	}
	return uc.repo.ListGPSSamples(ctx, tripID)
}
