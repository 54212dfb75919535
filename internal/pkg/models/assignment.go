package models

import (
	"time"

	"github.com/google/uuid"
)

// ShiftType is the coarse time-of-day bucket used for fairness weighting and
// for computing a generated trip's default start time.
type ShiftType string

const (
	ShiftMorning   ShiftType = "morning"
	ShiftAfternoon ShiftType = "afternoon"
	ShiftNight     ShiftType = "night"
	ShiftWeekend   ShiftType = "weekend"
)

// ValidShiftType reports whether s is a known shift type.
func ValidShiftType(s ShiftType) bool {
	switch s {
	case ShiftMorning, ShiftAfternoon, ShiftNight, ShiftWeekend:
		return true
	}
	return false
}

// AssignmentStatus represents the status of a roster assignment
type AssignmentStatus string

const (
	AssignmentStatusAssigned   AssignmentStatus = "assigned"
	AssignmentStatusInProgress AssignmentStatus = "in_progress"
	AssignmentStatusCompleted  AssignmentStatus = "completed"
	AssignmentStatusCancelled  AssignmentStatus = "cancelled"
)

// ValidAssignmentStatus reports whether s is a known assignment status.
func ValidAssignmentStatus(s AssignmentStatus) bool {
	switch s {
	case AssignmentStatusAssigned, AssignmentStatusInProgress,
		AssignmentStatusCompleted, AssignmentStatusCancelled:
		return true
	}
	return false
}

// RosterAssignment pairs a driver, vehicle and route for one calendar date.
// A driver may hold multiple assignments on the same day (different routes
// or shifts); vehicle double-booking is deliberately left to the operator.
type RosterAssignment struct {
	ID            uuid.UUID        `json:"id" db:"id"`
	DriverID      uuid.UUID        `json:"driver_id" db:"driver_id"`
	VehicleID     uuid.UUID        `json:"vehicle_id" db:"vehicle_id"`
	RouteID       uuid.UUID        `json:"route_id" db:"route_id"`
	Date          time.Time        `json:"date" db:"date"` // calendar day, midnight UTC
	ShiftType     ShiftType        `json:"shift_type" db:"shift_type"`
	TripType      TripType         `json:"trip_type" db:"trip_type"`
	ScheduledTime *string          `json:"scheduled_time,omitempty" db:"scheduled_time"` // HH:MM:SS
	Status        AssignmentStatus `json:"status" db:"status"`
	Notes         string           `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at" db:"updated_at"`

	EmployeeIDs []uuid.UUID `json:"employee_ids"`

	// Joined reference data, populated on reads.
	Driver  *Driver  `json:"driver,omitempty"`
	Vehicle *Vehicle `json:"vehicle,omitempty"`
	Route   *Route   `json:"route,omitempty"`
}

// AssignmentFilter narrows assignment listings. Zero values are ignored.
type AssignmentFilter struct {
	Date      *time.Time
	DriverID  *uuid.UUID
	VehicleID *uuid.UUID
	FromDate  *time.Time
	ToDate    *time.Time
}

// AssignmentPatch carries partial updates for an assignment. Nil fields are
// left untouched. A non-nil EmployeeIDs replaces the whole employee set.
type AssignmentPatch struct {
	Status        *AssignmentStatus
	Notes         *string
	TripType      *TripType
	ScheduledTime *string
	EmployeeIDs   *[]uuid.UUID
}

// RotationEntry is the monthly fairness ledger row for one driver. Counters
// only ever increase once recorded; deleting an assignment does not roll
// them back.
type RotationEntry struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	DriverID        uuid.UUID  `json:"driver_id" db:"driver_id"`
	Month           time.Time  `json:"month" db:"month"` // first day of month
	WeekendCount    int        `json:"weekend_count" db:"weekend_count"`
	NightShiftCount int        `json:"night_shift_count" db:"night_shift_count"`
	TotalShifts     int        `json:"total_shifts" db:"total_shifts"`
	LastWeekendDate *time.Time `json:"last_weekend_date,omitempty" db:"last_weekend_date"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// DriverSuggestion is one ranked candidate from the suggestion engine.
type DriverSuggestion struct {
	Driver     *Driver `json:"driver"`
	Score      float64 `json:"fairness_score"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// MonthOf normalizes a date to the first day of its month in UTC, the key
// used by the rotation ledger.
func MonthOf(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// IsWeekend reports whether the date falls on a Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}
