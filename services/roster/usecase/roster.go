package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fleetops/rosterd/internal/pkg/errs"
	"github.com/fleetops/rosterd/internal/pkg/logger"
	"github.com/fleetops/rosterd/internal/pkg/models"
	"github.com/fleetops/rosterd/services/fleet"
	"github.com/fleetops/rosterd/services/roster"
)

const dateLayout = "2006-01-02"

// RosterUC implements roster.RosterUC.
type RosterUC struct {
	repo     roster.RosterRepo
	registry fleet.Registry
	gw       roster.RosterGW
}

// NewRosterUC creates the roster usecase
func NewRosterUC(repo roster.RosterRepo, registry fleet.Registry, gw roster.RosterGW) roster.RosterUC {
	return &RosterUC{
		repo:     repo,
		registry: registry,
		gw:       gw,
	}
}

// CreateAssignment validates the request against the fleet registry, persists
// the assignment together with its rotation ledger increment and broadcasts
// the created event.
func (uc *RosterUC) CreateAssignment(ctx context.Context, req roster.CreateAssignmentRequest) (*models.RosterAssignment, error) {
	date, err := time.ParseInLocation(dateLayout, req.Date, time.UTC)
	if err != nil {
		return nil, errs.Validationf("invalid date %q, expected YYYY-MM-DD", req.Date)
	}
	if !models.ValidShiftType(req.ShiftType) {
		return nil, errs.Validationf("invalid shift type %q", req.ShiftType)
	}
	if req.TripType != "" && !models.ValidTripType(req.TripType) {
		return nil, errs.Validationf("invalid trip type %q", req.TripType)
	}
	if req.ScheduledTime != nil {
		if _, err := time.Parse("15:04", *req.ScheduledTime); err != nil {
			if _, err := time.Parse("15:04:05", *req.ScheduledTime); err != nil {
				return nil, errs.Validationf("invalid scheduled time %q", *req.ScheduledTime)
			}
		}
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

	assignment, err := uc.repo.CreateAssignment(ctx, &models.RosterAssignment{
		DriverID:      req.DriverID,
		VehicleID:     req.VehicleID,
		RouteID:       req.RouteID,
		Date:          date,
		ShiftType:     req.ShiftType,
		TripType:      req.TripType,
		ScheduledTime: req.ScheduledTime,
		Notes:         req.Notes,
		EmployeeIDs:   req.EmployeeIDs,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.gw.PublishAssignmentCreated(ctx, assignment); err != nil {
		logger.WithFields(logrus.Fields{
			"assignment_id": assignment.ID,
			"error":         err.Error(),
		}).Warn("Failed to publish assignment created event")
	}

	return assignment, nil
}

// GetAssignment returns one assignment by id.
func (uc *RosterUC) GetAssignment(ctx context.Context, id uuid.UUID) (*models.RosterAssignment, error) {
	return uc.repo.GetAssignment(ctx, id)
}

// ListAssignments returns assignments matching the filter.
func (uc *RosterUC) ListAssignments(ctx context.Context, f models.AssignmentFilter) ([]*models.RosterAssignment, error) {
	return uc.repo.ListAssignments(ctx, f)
}

// UpdateAssignment applies a partial update and returns the fresh row.
func (uc *RosterUC) UpdateAssignment(ctx context.Context, id uuid.UUID, req roster.UpdateAssignmentRequest) (*models.RosterAssignment, error) {
	if req.Status != nil && !models.ValidAssignmentStatus(*req.Status) {
		return nil, errs.Validationf("invalid assignment status %q", *req.Status)
	}
	if req.TripType != nil && !models.ValidTripType(*req.TripType) {
		return nil, errs.Validationf("invalid trip type %q", *req.TripType)
	}

	err := uc.repo.UpdateAssignment(ctx, id, models.AssignmentPatch{
		Status:        req.Status,
		Notes:         req.Notes,
		TripType:      req.TripType,
		ScheduledTime: req.ScheduledTime,
		EmployeeIDs:   req.EmployeeIDs,
	})
	if err != nil {
		return nil, err
	}

	return uc.repo.GetAssignment(ctx, id)
}

// DeleteAssignment removes the assignment. The rotation ledger keeps the
// already-recorded counters.
func (uc *RosterUC) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	return uc.repo.DeleteAssignment(ctx, id)
}
