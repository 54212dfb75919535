package roster

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/fleetops/rosterd/internal/pkg/models"
)

// RosterRepo defines data access for roster assignments and the monthly
// rotation ledger. CreateAssignment applies the assignment insert, the
// employee associations and the ledger increment in a single transaction.
type RosterRepo interface {
	CreateAssignment(ctx context.Context, a *models.RosterAssignment) (*models.RosterAssignment, error)
	GetAssignment(ctx context.Context, id uuid.UUID) (*models.RosterAssignment, error)
	ListAssignments(ctx context.Context, f models.AssignmentFilter) ([]*models.RosterAssignment, error)
	UpdateAssignment(ctx context.Context, id uuid.UUID, patch models.AssignmentPatch) error
	DeleteAssignment(ctx context.Context, id uuid.UUID) error
	DriverAssignedOn(ctx context.Context, driverID uuid.UUID, date time.Time) (bool, error)

	GetRotation(ctx context.Context, driverID uuid.UUID, month time.Time) (*models.RotationEntry, error)
}
