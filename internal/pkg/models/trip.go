package models

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus represents the current status of a trip
type TripStatus string

const (
	TripStatusScheduled TripStatus = "scheduled"
	TripStatusOngoing   TripStatus = "ongoing"
	TripStatusCompleted TripStatus = "completed"
	TripStatusCancelled TripStatus = "cancelled"
)

// ValidTripStatus reports whether s is a known trip status.
func ValidTripStatus(s TripStatus) bool {
	switch s {
	case TripStatusScheduled, TripStatusOngoing, TripStatusCompleted, TripStatusCancelled:
		return true
	}
	return false
}

// TripType represents the direction of a trip
type TripType string

const (
	TripTypePickup TripType = "pickup"
	TripTypeDrop   TripType = "drop"
	TripTypeReturn TripType = "return"
	TripTypeBoth   TripType = "both"
)

// ValidTripType reports whether t is a known trip type.
func ValidTripType(t TripType) bool {
	switch t {
	case TripTypePickup, TripTypeDrop, TripTypeReturn, TripTypeBoth:
		return true
	}
	return false
}

// Trip is one concrete movement of a vehicle along a route. The tuple
// (driver_id, vehicle_id, route_id, start_time) identifies a generated trip
// for idempotency purposes.
type Trip struct {
	ID                 uuid.UUID  `json:"id" db:"id"`
	RouteID            uuid.UUID  `json:"route_id" db:"route_id"`
	DriverID           uuid.UUID  `json:"driver_id" db:"driver_id"`
	VehicleID          uuid.UUID  `json:"vehicle_id" db:"vehicle_id"`
	Status             TripStatus `json:"status" db:"status"`
	Type               TripType   `json:"type" db:"type"`
	StartTime          time.Time  `json:"start_time" db:"start_time"`
	EndTime            *time.Time `json:"end_time,omitempty" db:"end_time"`
	DistanceTraveledKm float64    `json:"distance_traveled_km" db:"distance_traveled_km"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at" db:"updated_at"`

	// Joined reference data, populated on reads.
	Driver  *Driver  `json:"driver,omitempty"`
	Vehicle *Vehicle `json:"vehicle,omitempty"`
	Route   *Route   `json:"route,omitempty"`
}

// TripFilter narrows trip listings. Zero values are ignored.
type TripFilter struct {
	DriverID *uuid.UUID
	Statuses []TripStatus
	Limit    int
}

// TripPatch carries partial updates for a trip. Nil fields are left
// untouched.
type TripPatch struct {
	Status             *TripStatus
	DriverID           *uuid.UUID
	VehicleID          *uuid.UUID
	DistanceTraveledKm *float64
}

// GPSSample is one GPS ping for a trip, append-only and ordered by
// timestamp. The latest sample is the vehicle's current position.
type GPSSample struct {
	ID        uuid.UUID `json:"id" db:"id"`
	TripID    uuid.UUID `json:"trip_id" db:"trip_id"`
	Latitude  float64   `json:"lat" db:"lat"`
	Longitude float64   `json:"lng" db:"lng"`
	SpeedKmh  *float64  `json:"speed_kmh,omitempty" db:"speed_kmh"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}

// BoardingStatus is the recorded outcome of one employee at one stop.
type BoardingStatus string

const (
	BoardingStatusBoarded BoardingStatus = "boarded"
	BoardingStatusMissed  BoardingStatus = "missed"
	BoardingStatusNoShow  BoardingStatus = "no_show"
	BoardingStatusSkipped BoardingStatus = "skipped"
)

// ValidBoardingStatus reports whether s is a known boarding status.
func ValidBoardingStatus(s BoardingStatus) bool {
	switch s {
	case BoardingStatusBoarded, BoardingStatusMissed, BoardingStatusNoShow, BoardingStatusSkipped:
		return true
	}
	return false
}

// BoardingRecord is keyed by (trip_id, stop_id, employee_id); a repeated
// status report overwrites the prior record, last write wins.
type BoardingRecord struct {
	ID         uuid.UUID      `json:"id" db:"id"`
	TripID     uuid.UUID      `json:"trip_id" db:"trip_id"`
	StopID     uuid.UUID      `json:"stop_id" db:"stop_id"`
	EmployeeID uuid.UUID      `json:"employee_id" db:"employee_id"`
	Status     BoardingStatus `json:"status" db:"status"`
	BoardedAt  time.Time      `json:"boarded_at" db:"boarded_at"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
}

// GenerationReport summarizes one trip generation run.
type GenerationReport struct {
	Date         string `json:"date"` // YYYY-MM-DD
	TripsCreated int    `json:"trips_created"`
}
