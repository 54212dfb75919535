package roster

import (
	"context"

	"github.com/fleetops/rosterd/internal/pkg/models"
)

// RosterGW publishes roster events to the broadcast stream.
type RosterGW interface {
	PublishAssignmentCreated(ctx context.Context, a *models.RosterAssignment) error
}
