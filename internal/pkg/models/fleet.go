package models

import (
	"time"

	"github.com/google/uuid"
)

// DriverStatus represents a driver's operational status
type DriverStatus string

const (
	DriverStatusActive  DriverStatus = "active"
	DriverStatusOnTrip  DriverStatus = "on_trip"
	DriverStatusOffDuty DriverStatus = "off_duty"
)

// VehicleStatus represents a vehicle's operational status
type VehicleStatus string

const (
	VehicleStatusActive      VehicleStatus = "active"
	VehicleStatusMaintenance VehicleStatus = "maintenance"
	VehicleStatusInactive    VehicleStatus = "inactive"
)

// Driver is reference data owned by the fleet master; this service reads it
// and mutates only the operational status.
type Driver struct {
	ID            uuid.UUID    `json:"id" db:"id"`
	UserID        uuid.UUID    `json:"user_id" db:"user_id"`
	Name          string       `json:"name" db:"name"`
	Phone         string       `json:"phone,omitempty" db:"phone"`
	LicenseNumber string       `json:"license_number" db:"license_number"`
	Status        DriverStatus `json:"status" db:"status"`
}

// Vehicle is reference data owned by the fleet master.
type Vehicle struct {
	ID           uuid.UUID     `json:"id" db:"id"`
	LicensePlate string        `json:"license_plate" db:"license_plate"`
	Model        string        `json:"model" db:"model"`
	Capacity     int           `json:"capacity" db:"capacity"`
	Status       VehicleStatus `json:"status" db:"status"`
}

// Route is reference data owned by the route-topology service.
type Route struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Origin      string    `json:"origin" db:"origin"`
	Destination string    `json:"destination" db:"destination"`
}

// Employee is reference data owned by the employee master.
type Employee struct {
	ID         uuid.UUID `json:"id" db:"id"`
	UserID     uuid.UUID `json:"user_id" db:"user_id"`
	Name       string    `json:"name" db:"name"`
	Department string    `json:"department" db:"department"`
}

// VehiclePosition is the last known position of a vehicle, kept in the
// process-wide cache and overwritten last-write-wins on every GPS ping.
type VehiclePosition struct {
	VehicleID uuid.UUID `json:"vehicle_id"`
	Latitude  float64   `json:"lat"`
	Longitude float64   `json:"lng"`
	Geohash   string    `json:"geohash,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
