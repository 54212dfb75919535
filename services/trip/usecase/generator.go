package usecase

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fleetops/rosterd/internal/pkg/logger"
	"github.com/fleetops/rosterd/internal/pkg/models"
)

// Default trip start times per shift.
var shiftStartTimes = map[models.ShiftType]string{
	models.ShiftMorning:   "07:00:00",
	models.ShiftAfternoon: "15:00:00",
	models.ShiftNight:     "22:00:00",
	models.ShiftWeekend:   "09:00:00",
}

const defaultShiftStart = "08:00:00"

// shiftStartTime computes the trip start for an assignment: the assignment's
// scheduled time when set, otherwise the shift default.
func shiftStartTime(date time.Time, shift models.ShiftType, scheduled *string) time.Time {
	clock := shiftStartTimes[shift]
	if clock == "" {
		clock = defaultShiftStart
	}
	if scheduled != nil && *scheduled != "" {
		clock = *scheduled
	}

	t, err := time.Parse("15:04:05", clock)
	if err != nil {
		if t, err = time.Parse("15:04", clock); err != nil {
			t, _ = time.Parse("15:04:05", defaultShiftStart)
		}
	}

	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// GenerateTrips creates one scheduled trip per roster assignment on the
// date. A trip whose (driver, vehicle, route, start_time) tuple already
// exists is skipped regardless of its current status, so re-running for the
// same date never duplicates and never resurrects completed or cancelled
// trips.
func (uc *TripUC) GenerateTrips(ctx context.Context, date time.Time) (*models.GenerationReport, error) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	assignments, err := uc.assignments.ListAssignments(ctx, models.AssignmentFilter{Date: &day})
	if err != nil {
		return nil, err
	}

	// One bad assignment must not block the rest of the run, so failures
	// are logged and skipped per assignment. A concurrent run racing the
	// existence check lands here too: the unique trip tuple turns the
	// duplicate insert into a conflict, which is just another skip.
	created := 0
	for _, a := range assignments {
		start := shiftStartTime(day, a.ShiftType, a.ScheduledTime)

		exists, err := uc.repo.TripExists(ctx, a.DriverID, a.VehicleID, a.RouteID, start)
		if err != nil {
			logger.WithFields(logrus.Fields{
				"assignment_id": a.ID,
				"error":         err.Error(),
			}).Warn("Skipping assignment, trip existence check failed")
			continue
		}
		if exists {
			continue
		}

		tripType := a.TripType
		if tripType == "" {
			tripType = models.TripTypePickup
		}

		_, err = uc.repo.CreateTrip(ctx, &models.Trip{
			RouteID:   a.RouteID,
			DriverID:  a.DriverID,
			VehicleID: a.VehicleID,
			Status:    models.TripStatusScheduled,
			Type:      tripType,
			StartTime: start,
		})
		if err != nil {
			logger.WithFields(logrus.Fields{
				"assignment_id": a.ID,
				"error":         err.Error(),
			}).Warn("Skipping assignment, trip insert failed")
			continue
		}
		created++
	}

	report := &models.GenerationReport{
		Date:         day.Format(dateLayout),
		TripsCreated: created,
	}

	logger.WithFields(logrus.Fields{
		"date":          report.Date,
		"assignments":   len(assignments),
		"trips_created": created,
	}).Info("Trip generation run finished")

	if err := uc.gw.PublishTripsGenerated(ctx, *report); err != nil {
		logger.WithFields(logrus.Fields{
			"date":  report.Date,
			"error": err.Error(),
		}).Warn("Failed to publish trips generated event")
	}

	return report, nil
}
