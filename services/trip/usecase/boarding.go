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

// RecordBoarding records one employee's outcome at one stop. A repeated
// report for the same (trip, stop, employee) overwrites the prior record.
func (uc *TripUC) RecordBoarding(ctx context.Context, tripID uuid.UUID, req trip.RecordBoardingRequest) (*models.BoardingRecord, error) {
	if !models.ValidBoardingStatus(req.Status) {
		return nil, errs.Validationf("invalid boarding status %q", req.Status)
	}
	if req.StopID == uuid.Nil {
		return nil, errs.Validationf("stop_id is required")
	}
	if req.EmployeeID == uuid.Nil {
		return nil, errs.Validationf("employee_id is required")
	}

	if _, err := uc.repo.GetTrip(ctx, tripID); err != nil {
		return nil, err
	}

	saved, err := uc.repo.UpsertBoarding(ctx, &models.BoardingRecord{
		TripID:     tripID,
		StopID:     req.StopID,
		EmployeeID: req.EmployeeID,
		Status:     req.Status,
		BoardedAt:  time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	if err := uc.gw.PublishBoarding(ctx, models.BoardingEvent{
		TripID: tripID,
		Record: saved,
		Location: models.GeoPoint{
			Latitude:  req.Latitude,
			Longitude: req.Longitude,
		},
	}); err != nil {
		logger.WithFields(logrus.Fields{
			"trip_id": tripID,
			"error":   err.Error(),
		}).Warn("Failed to publish boarding event")
	}

	return saved, nil
}

// ListBoardings returns the trip's boarding records, most recent first.
func (uc *TripUC) ListBoardings(ctx context.Context, tripID uuid.UUID) ([]*models.BoardingRecord, error) {
	if _, err := uc.repo.GetTrip(ctx, tripID); err != nil {
		return nil, err
	}
	return uc.repo.ListBoardings(ctx, tripID)
}
