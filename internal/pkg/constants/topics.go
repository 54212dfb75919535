package constants

// NSQ topics for the broadcast stream. Delivery is at most once to current
// subscribers; there is no replay.
const (
	TopicAssignmentCreated = "roster.assignment.created"
	TopicTripStatusChanged = "trip.status.changed"
	TopicVehicleLocation   = "vehicle.location"
	TopicTripBoarding      = "trip.boarding"
	TopicTripsGenerated    = "trip.generated"
)
