package gateway

import (
	"context"

	"github.com/fleetops/rosterd/internal/pkg/constants"
	"github.com/fleetops/rosterd/internal/pkg/models"
	"github.com/fleetops/rosterd/internal/pkg/nsq"
	"github.com/fleetops/rosterd/services/trip"
)

// TripGW publishes trip events to NSQ.
type TripGW struct {
	publisher nsq.Publisher
}

// NewTripGW creates the trip gateway
func NewTripGW(publisher nsq.Publisher) trip.TripGW {
	return &TripGW{publisher: publisher}
}

// PublishTripStatusChanged broadcasts a lifecycle transition.
func (g *TripGW) PublishTripStatusChanged(_ context.Context, t *models.Trip) error {
	return g.publisher.Publish(constants.TopicTripStatusChanged, models.TripStatusEvent{
		TripID: t.ID,
		Status: t.Status,
		Trip:   t,
	})
}

// PublishVehicleLocation broadcasts an accepted GPS ping.
func (g *TripGW) PublishVehicleLocation(_ context.Context, event models.VehicleLocationEvent) error {
	return g.publisher.Publish(constants.TopicVehicleLocation, event)
}

// PublishBoarding broadcasts a recorded boarding status.
func (g *TripGW) PublishBoarding(_ context.Context, event models.BoardingEvent) error {
	return g.publisher.Publish(constants.TopicTripBoarding, event)
}

// PublishTripsGenerated broadcasts the outcome of a generation run.
func (g *TripGW) PublishTripsGenerated(_ context.Context, report models.GenerationReport) error {
	return g.publisher.Publish(constants.TopicTripsGenerated, models.TripsGeneratedEvent{
		Date:  report.Date,
		Count: report.TripsCreated,
	})
}
