package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/rosterd/internal/pkg/errs"
	"github.com/fleetops/rosterd/internal/pkg/models"
	"github.com/fleetops/rosterd/services/trip"
)

func TestRecordBoarding(t *testing.T) {
	repo, _, _, registry, gw, uc := setupTripUC()
	seeded := seedTrip(repo, registry, models.TripStatusOngoing)

	req := trip.RecordBoardingRequest{
		StopID:     uuid.New(),
		EmployeeID: uuid.New(),
		Status:     models.BoardingStatusBoarded,
		Latitude:   10.0,
		Longitude:  76.0,
	}

	rec, err := uc.RecordBoarding(context.Background(), seeded.ID, req)
	require.NoError(t, err)
	assert.Equal(t, models.BoardingStatusBoarded, rec.Status)
	assert.False(t, rec.BoardedAt.IsZero())

	require.Len(t, gw.boardingEvents, 1)
	assert.Equal(t, seeded.ID, gw.boardingEvents[0].TripID)
	assert.InDelta(t, 10.0, gw.boardingEvents[0].Location.Latitude, 1e-9)
}

func TestRecordBoarding_LastWriteWins(t *testing.T) {
	repo, _, _, registry, _, uc := setupTripUC()
	seeded := seedTrip(repo, registry, models.TripStatusOngoing)

	stopID := uuid.New()
	employeeID := uuid.New()

	first, err := uc.RecordBoarding(context.Background(), seeded.ID, trip.RecordBoardingRequest{
		StopID: stopID, EmployeeID: employeeID, Status: models.BoardingStatusNoShow,
	})
	require.NoError(t, err)

	second, err := uc.RecordBoarding(context.Background(), seeded.ID, trip.RecordBoardingRequest{
		StopID: stopID, EmployeeID: employeeID, Status: models.BoardingStatusBoarded,
	})
	require.NoError(t, err)

	// Same record, new status.
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.BoardingStatusBoarded, second.Status)

	records, err := uc.ListBoardings(context.Background(), seeded.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.BoardingStatusBoarded, records[0].Status)
}

func TestRecordBoarding_Validation(t *testing.T) {
	repo, _, _, registry, _, uc := setupTripUC()
	seeded := seedTrip(repo, registry, models.TripStatusOngoing)

	_, err := uc.RecordBoarding(context.Background(), seeded.ID, trip.RecordBoardingRequest{
		StopID: uuid.New(), EmployeeID: uuid.New(), Status: "waiting",
	})
	assert.True(t, errs.IsValidation(err))

	_, err = uc.RecordBoarding(context.Background(), seeded.ID, trip.RecordBoardingRequest{
		EmployeeID: uuid.New(), Status: models.BoardingStatusBoarded,
	})
	assert.True(t, errs.IsValidation(err))

	_, err = uc.RecordBoarding(context.Background(), seeded.ID, trip.RecordBoardingRequest{
		StopID: uuid.New(), Status: models.BoardingStatusBoarded,
	})
	assert.True(t, errs.IsValidation(err))
}

func TestRecordBoarding_UnknownTrip(t *testing.T) {
	_, _, _, _, _, uc := setupTripUC()

	_, err := uc.RecordBoarding(context.Background(), uuid.New(), trip.RecordBoardingRequest{
		StopID: uuid.New(), EmployeeID: uuid.New(), Status: models.BoardingStatusBoarded,
	})
	assert.True(t, errs.IsNotFound(err))
}
