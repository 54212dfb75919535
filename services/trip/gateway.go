package trip

import (
	"context"

	"github.com/fleetops/rosterd/internal/pkg/models"
)

// TripGW publishes trip events to the broadcast stream.
type TripGW interface {
	PublishTripStatusChanged(ctx context.Context, t *models.Trip) error
	PublishVehicleLocation(ctx context.Context, event models.VehicleLocationEvent) error
	PublishBoarding(ctx context.Context, event models.BoardingEvent) error
	PublishTripsGenerated(ctx context.Context, report models.GenerationReport) error
}
