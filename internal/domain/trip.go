// Package domain contains the core data types for the gear planner.
// This package has no database or transport dependencies and is imported by
// every other internal package (repo, service, recommend, handler).
package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// TripStatus is the lifecycle state of a trip.
type TripStatus string

const (
	// TripPlanned is the initial status of every new trip.
	TripPlanned TripStatus = "planned"
	// TripInProgress marks a trip that has started.
	TripInProgress TripStatus = "in_progress"
	// TripCompleted is terminal and set only by trip completion.
	TripCompleted TripStatus = "completed"
)

// Valid reports whether s is one of the known statuses.
func (s TripStatus) Valid() bool {
	switch s {
	case TripPlanned, TripInProgress, TripCompleted:
		return true
	}
	return false
}

// CanTransitionTo reports whether a trip may move from s to next.
// Staying in the same state is allowed except that completed is terminal
// and can only be reached through trip completion.
//
//	planned -> in_progress -> completed
//	planned -> completed
func (s TripStatus) CanTransitionTo(next TripStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case TripPlanned:
		return next == TripInProgress || next == TripCompleted
	case TripInProgress:
		return next == TripCompleted
	}
	return false
}

// Trip is a planned, active or completed outing owned by one user.
// DurationDays is derived from the date range and is never set by callers;
// use ComputeDuration before every save.
type Trip struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	Title           string
	Description     string
	Location        string
	StartDate       time.Time
	EndDate         time.Time
	DurationDays    int
	Activities      []string
	ExpectedTempMin *int // Celsius
	ExpectedTempMax *int // Celsius
	ExpectedWeather []string
	Status          TripStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// Read-only aggregates populated by detail and list queries.
	GearCount   int
	PackedCount int
}

// DurationDays returns the inclusive number of days between start and end.
// A trip that starts and ends on the same day lasts one day. Whole days are
// counted from Unix seconds since time.Duration saturates at about 292 years.
func DurationDays(start, end time.Time) int {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	return int((e.Unix()-s.Unix())/secondsPerDay) + 1
}

const secondsPerDay = 24 * 60 * 60

// ComputeDuration recomputes DurationDays from the date range.
func (t *Trip) ComputeDuration() {
	t.DurationDays = DurationDays(t.StartDate, t.EndDate)
}

// HasActivity reports whether any of names is among the trip's activities.
func (t Trip) HasActivity(names ...string) bool {
	for _, n := range names {
		if slices.Contains(t.Activities, n) {
			return true
		}
	}
	return false
}

// HasWeather reports whether tag is among the expected weather conditions.
func (t Trip) HasWeather(tag string) bool {
	return slices.Contains(t.ExpectedWeather, tag)
}
