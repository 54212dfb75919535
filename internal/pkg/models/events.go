package models

import (
	"time"

	"github.com/google/uuid"
)

// Event payloads published to the broadcast topics. Delivery is at most
// once to current subscribers; clients that miss an event reconcile with a
// full re-fetch.

// AssignmentCreatedEvent is published when a roster assignment is created.
type AssignmentCreatedEvent struct {
	Assignment *RosterAssignment `json:"assignment"`
	CreatedAt  time.Time         `json:"created_at"`
}

// TripStatusEvent is published on every trip lifecycle transition.
type TripStatusEvent struct {
	TripID uuid.UUID  `json:"trip_id"`
	Status TripStatus `json:"status"`
	Trip   *Trip      `json:"trip"`
}

// VehicleLocationEvent is published on every accepted GPS ping.
type VehicleLocationEvent struct {
	VehicleID uuid.UUID  `json:"vehicle_id"`
	Latitude  float64    `json:"lat"`
	Longitude float64    `json:"lng"`
	TripID    *uuid.UUID `json:"trip_id,omitempty"`
	Timestamp time.Time  `json:"timestamp"`
}

// GeoPoint is a bare coordinate pair carried on boarding events for display.
type GeoPoint struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// BoardingEvent is published when a boarding status is recorded.
type BoardingEvent struct {
	TripID   uuid.UUID       `json:"trip_id"`
	Record   *BoardingRecord `json:"record"`
	Location GeoPoint        `json:"location"`
}

// TripsGeneratedEvent is published after a generation run.
type TripsGeneratedEvent struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
