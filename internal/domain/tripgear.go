package domain

import (
	"time"

	"github.com/google/uuid"
)

// LinkOrigin records how a gear item came to be on a trip.
type LinkOrigin string

const (
	OriginRecommended LinkOrigin = "recommended"
	OriginUserAdded   LinkOrigin = "user_added"
)

// TripGearLink records how one gear item participates in one trip.
// At most one link exists per (TripID, GearID). Gear fields are read-only
// projections joined in by the repo.
type TripGearLink struct {
	ID               uuid.UUID
	TripID           uuid.UUID
	GearID           uuid.UUID
	Origin           LinkOrigin
	Packed           bool
	Used             bool
	Quantity         int
	UsefulnessRating *int // 1..5
	Notes            string
	CreatedAt        time.Time

	GearName     string
	GearCategory string
	GearWeight   *int
}

// LinkStatusUpdate carries the optional fields of an update-gear-status call.
// Nil fields are left unchanged.
type LinkStatusUpdate struct {
	Packed           *bool
	Used             *bool
	UsefulnessRating *int
	Notes            *string
}

// Apply copies the non-nil fields of u onto l.
func (u LinkStatusUpdate) Apply(l *TripGearLink) {
	if u.Packed != nil {
		l.Packed = *u.Packed
	}
	if u.Used != nil {
		l.Used = *u.Used
	}
	if u.UsefulnessRating != nil {
		r := *u.UsefulnessRating
		l.UsefulnessRating = &r
	}
	if u.Notes != nil {
		l.Notes = *u.Notes
	}
}

// TripDetail is a trip together with its gear links, as returned by the
// trip detail endpoint.
type TripDetail struct {
	Trip
	Gear []TripGearLink
}
