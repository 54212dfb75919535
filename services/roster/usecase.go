package roster

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fleetops/rosterd/internal/pkg/models"
)

// CreateAssignmentRequest is the operator's request to create a roster
// assignment.
type CreateAssignmentRequest struct {
	DriverID      uuid.UUID        `json:"driver_id"`
	VehicleID     uuid.UUID        `json:"vehicle_id"`
	RouteID       uuid.UUID        `json:"route_id"`
	Date          string           `json:"date"` // YYYY-MM-DD
	ShiftType     models.ShiftType `json:"shift_type"`
	TripType      models.TripType  `json:"trip_type,omitempty"`
	ScheduledTime *string          `json:"scheduled_time,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	EmployeeIDs   []uuid.UUID      `json:"employee_ids,omitempty"`
}

// UpdateAssignmentRequest is the operator's partial update.
type UpdateAssignmentRequest struct {
	Status        *models.AssignmentStatus `json:"status,omitempty"`
	Notes         *string                  `json:"notes,omitempty"`
	TripType      *models.TripType         `json:"trip_type,omitempty"`
	ScheduledTime *string                  `json:"scheduled_time,omitempty"`
	EmployeeIDs   *[]uuid.UUID             `json:"employee_ids,omitempty"`
}

// RosterUC defines the roster business logic: assignment management and the
// fairness-based driver suggestion engine.
type RosterUC interface {
	CreateAssignment(ctx context.Context, req CreateAssignmentRequest) (*models.RosterAssignment, error)
	GetAssignment(ctx context.Context, id uuid.UUID) (*models.RosterAssignment, error)
	ListAssignments(ctx context.Context, f models.AssignmentFilter) ([]*models.RosterAssignment, error)
	UpdateAssignment(ctx context.Context, id uuid.UUID, req UpdateAssignmentRequest) (*models.RosterAssignment, error)
	DeleteAssignment(ctx context.Context, id uuid.UUID) error

	SuggestDrivers(ctx context.Context, date time.Time, routeID uuid.UUID) ([]models.DriverSuggestion, error)
}
