package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fleetops/rosterd/internal/pkg/errs"
	"github.com/fleetops/rosterd/internal/pkg/logger"
	"github.com/fleetops/rosterd/internal/pkg/models"
	"github.com/fleetops/rosterd/services/trip"
)

// transitions is the complete trip state machine. Completed and cancelled
// are terminal.
var transitions = map[models.TripStatus][]models.TripStatus{
	models.TripStatusScheduled: {models.TripStatusOngoing, models.TripStatusCancelled},
	models.TripStatusOngoing:   {models.TripStatusCompleted, models.TripStatusCancelled},
}

func canTransition(from, to models.TripStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// StartTrip moves a scheduled trip to ongoing and flips the driver to
// on_trip.
func (uc *TripUC) StartTrip(ctx context.Context, tripID uuid.UUID) (*models.Trip, error) {
	current, err := uc.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !canTransition(current.Status, models.TripStatusOngoing) {
		return nil, errs.InvalidTransitionf("cannot start trip in status %q", current.Status)
	}

	ongoing := models.TripStatusOngoing
	if err := uc.repo.UpdateTrip(ctx, tripID, models.TripPatch{Status: &ongoing}); err != nil {
		return nil, err
	}

	uc.setDriverStatus(ctx, current.DriverID, models.DriverStatusOnTrip)

	updated, err := uc.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	uc.publishStatusChanged(ctx, updated)
	return updated, nil
}

// CompleteTrip moves an ongoing trip to completed. The driver-reported
// distance wins when positive; otherwise the GPS-accumulated distance
// stands. The driver returns to active.
func (uc *TripUC) CompleteTrip(ctx context.Context, tripID uuid.UUID, req trip.CompleteTripRequest) (*models.Trip, error) {
	current, err := uc.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !canTransition(current.Status, models.TripStatusCompleted) {
		return nil, errs.InvalidTransitionf("cannot complete trip in status %q", current.Status)
	}

	distance := current.DistanceTraveledKm
	if req.DistanceKm > 0 {
		distance = req.DistanceKm
	}

	if err := uc.repo.MarkCompleted(ctx, tripID, time.Now().UTC(), distance); err != nil {
		return nil, err
	}

	uc.setDriverStatus(ctx, current.DriverID, models.DriverStatusActive)

	updated, err := uc.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	uc.publishStatusChanged(ctx, updated)
	return updated, nil
}

// CancelTrip moves a scheduled or ongoing trip to cancelled. A driver mid
// trip returns to active.
func (uc *TripUC) CancelTrip(ctx context.Context, tripID uuid.UUID) (*models.Trip, error) {
	current, err := uc.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	if !canTransition(current.Status, models.TripStatusCancelled) {
		return nil, errs.InvalidTransitionf("cannot cancel trip in status %q", current.Status)
	}

	if err := uc.repo.MarkCancelled(ctx, tripID, time.Now().UTC()); err != nil {
		return nil, err
	}

	if current.Status == models.TripStatusOngoing {
		uc.setDriverStatus(ctx, current.DriverID, models.DriverStatusActive)
	}

	updated, err := uc.repo.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	uc.publishStatusChanged(ctx, updated)
	return updated, nil
}

// setDriverStatus flips the driver's operational status; a failure here must
// not fail the trip transition that already committed.
func (uc *TripUC) setDriverStatus(ctx context.Context, driverID uuid.UUID, status models.DriverStatus) {
	if err := uc.registry.SetDriverStatus(ctx, driverID, status); err != nil {
		logger.WithFields(logrus.Fields{
			"driver_id": driverID,
			"status":    status,
			"error":     err.Error(),
		}).Warn("Failed to update driver status")
	}
}
