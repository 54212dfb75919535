package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/fleetops/rosterd/internal/pkg/errs"
	"github.com/fleetops/rosterd/internal/pkg/models"
)

// Driver app listings are capped; history beyond this is the admin's
// concern.
const driverTripLimit = 50

// DriverTrips resolves the driver behind the authenticated user and lists
// that driver's trips, newest first.
func (uc *TripUC) DriverTrips(ctx context.Context, userID uuid.UUID, f models.TripFilter) ([]*models.Trip, error) {
	driver, err := uc.registry.GetDriverByUserID(ctx, userID)
	if err != nil {
		if errs.IsNotFound(err) {
			return nil, errs.NotFoundf("driver profile for user %s", userID)
		}
		return nil, err
	}

	f.DriverID = &driver.ID
	if f.Limit <= 0 || f.Limit > driverTripLimit {
		f.Limit = driverTripLimit
	}
	return uc.repo.ListTrips(ctx, f)
}

// VerifyTripDriver confirms the trip belongs to the driver behind the
// authenticated user. Trips of other drivers are reported as not found
// rather than forbidden.
func (uc *TripUC) VerifyTripDriver(ctx context.Context, tripID, userID uuid.UUID) error {
	driver, err := uc.registry.GetDriverByUserID(ctx, userID)
	if err != nil {
		if errs.IsNotFound(err) {
			return errs.NotFoundf("driver profile for user %s", userID)
		}
		return err
	}

	t, err := uc.repo.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if t.DriverID != driver.ID {
		return errs.NotFoundf("trip %s", tripID)
	}
	return nil
}
