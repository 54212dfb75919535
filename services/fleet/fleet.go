package fleet

import (
	"context"

	"github.com/google/uuid"

	"github.com/fleetops/rosterd/internal/pkg/models"
)

// Registry is the narrow interface to the fleet master data (drivers,
// vehicles, routes, employees). The core reads reference data through it and
// mutates nothing except the driver's operational status.
type Registry interface {
	GetDriver(ctx context.Context, id uuid.UUID) (*models.Driver, error)
	GetDriverByUserID(ctx context.Context, userID uuid.UUID) (*models.Driver, error)
	ListDrivers(ctx context.Context) ([]*models.Driver, error)
	SetDriverStatus(ctx context.Context, driverID uuid.UUID, status models.DriverStatus) error

	GetVehicle(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
	GetRoute(ctx context.Context, id uuid.UUID) (*models.Route, error)
	ListEmployees(ctx context.Context, ids []uuid.UUID) ([]*models.Employee, error)
}
