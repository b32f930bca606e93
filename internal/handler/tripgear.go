package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/gear-planner/internal/domain"
)

// AddTripGearRequest is the body of POST /trips/{id}/gear.
type AddTripGearRequest struct {
	GearID           uuid.UUID `json:"gear_id" validate:"required"`
	Quantity         int       `json:"quantity" validate:"omitempty,min=1"`
	Origin           string    `json:"origin" validate:"omitempty,oneof=recommended user_added"`
	Packed           bool      `json:"packed"`
	UsefulnessRating *int      `json:"usefulness_rating" validate:"omitempty,min=1,max=5"`
	Notes            string    `json:"notes"`
}

// UpdateTripGearRequest is the body of PATCH /trips/{id}/gear/{gearID}.
// Omitted fields are left unchanged.
type UpdateTripGearRequest struct {
	Packed           *bool   `json:"packed"`
	Used             *bool   `json:"used"`
	UsefulnessRating *int    `json:"usefulness_rating" validate:"omitempty,min=1,max=5"`
	Notes            *string `json:"notes"`
}

// TripGearResponse is the JSON view of a trip gear link.
type TripGearResponse struct {
	ID               uuid.UUID         `json:"id"`
	TripID           uuid.UUID         `json:"trip_id"`
	GearID           uuid.UUID         `json:"gear_id"`
	GearName         string            `json:"gear_name"`
	GearCategory     string            `json:"gear_category"`
	GearWeightGrams  *int              `json:"gear_weight_grams"`
	Origin           domain.LinkOrigin `json:"origin"`
	Quantity         int               `json:"quantity"`
	Packed           bool              `json:"packed"`
	Used             bool              `json:"used"`
	UsefulnessRating *int              `json:"usefulness_rating"`
	Notes            string            `json:"notes"`
	CreatedAt        time.Time         `json:"created_at"`
}

// AddTripGear handles POST /trips/{id}/gear.
func (s *Server) AddTripGear(w http.ResponseWriter, r *http.Request) {
	tripID, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	var req AddTripGearRequest
	if !s.decode(w, r, &req) {
		return
	}
	link, err := s.svc.Trips.AddGear(r.Context(), currentUser(r), domain.TripGearLink{
		TripID:           tripID,
		GearID:           req.GearID,
		Quantity:         req.Quantity,
		Origin:           domain.LinkOrigin(req.Origin),
		Packed:           req.Packed,
		UsefulnessRating: req.UsefulnessRating,
		Notes:            req.Notes,
	})
	if err != nil {
		s.writeError(w, r, err, "trip gear")
		return
	}
	writeJSON(w, http.StatusCreated, linkToResponse(link))
}

// UpdateTripGear handles PATCH /trips/{id}/gear/{gearID}.
func (s *Server) UpdateTripGear(w http.ResponseWriter, r *http.Request) {
	tripID, gearID, ok := s.linkIDs(w, r)
	if !ok {
		return
	}
	var req UpdateTripGearRequest
	if !s.decode(w, r, &req) {
		return
	}
	link, err := s.svc.Trips.UpdateGearStatus(r.Context(), currentUser(r), tripID, gearID, domain.LinkStatusUpdate{
		Packed:           req.Packed,
		Used:             req.Used,
		UsefulnessRating: req.UsefulnessRating,
		Notes:            req.Notes,
	})
	if err != nil {
		s.writeError(w, r, err, "trip gear")
		return
	}
	writeJSON(w, http.StatusOK, linkToResponse(link))
}

// RemoveTripGear handles DELETE /trips/{id}/gear/{gearID}.
func (s *Server) RemoveTripGear(w http.ResponseWriter, r *http.Request) {
	tripID, gearID, ok := s.linkIDs(w, r)
	if !ok {
		return
	}
	if err := s.svc.Trips.RemoveGear(r.Context(), currentUser(r), tripID, gearID); err != nil {
		s.writeError(w, r, err, "trip gear")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) linkIDs(w http.ResponseWriter, r *http.Request) (tripID, gearID uuid.UUID, ok bool) {
	tripID, err := pathUUID(r, "id")
	if err == nil {
		gearID, err = pathUUID(r, "gearID")
	}
	if err != nil {
		s.writeError(w, r, err, "")
		return uuid.Nil, uuid.Nil, false
	}
	return tripID, gearID, true
}

func linkToResponse(l domain.TripGearLink) TripGearResponse {
	return TripGearResponse{
		ID:               l.ID,
		TripID:           l.TripID,
		GearID:           l.GearID,
		GearName:         l.GearName,
		GearCategory:     l.GearCategory,
		GearWeightGrams:  l.GearWeight,
		Origin:           l.Origin,
		Quantity:         l.Quantity,
		Packed:           l.Packed,
		Used:             l.Used,
		UsefulnessRating: l.UsefulnessRating,
		Notes:            l.Notes,
		CreatedAt:        l.CreatedAt,
	}
}
