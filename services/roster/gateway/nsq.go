package gateway

import (
	"context"
	"time"

	"github.com/fleetops/rosterd/internal/pkg/constants"
	"github.com/fleetops/rosterd/internal/pkg/models"
	"github.com/fleetops/rosterd/internal/pkg/nsq"
	"github.com/fleetops/rosterd/services/roster"
)

// RosterGW publishes roster events to NSQ.
type RosterGW struct {
	publisher nsq.Publisher
}

// NewRosterGW creates the roster gateway
func NewRosterGW(publisher nsq.Publisher) roster.RosterGW {
	return &RosterGW{publisher: publisher}
}

// PublishAssignmentCreated broadcasts a newly created assignment.
func (g *RosterGW) PublishAssignmentCreated(_ context.Context, a *models.RosterAssignment) error {
	return g.publisher.Publish(constants.TopicAssignmentCreated, models.AssignmentCreatedEvent{
		Assignment: a,
		CreatedAt:  time.Now().UTC(),
	})
}
