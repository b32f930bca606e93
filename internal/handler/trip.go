package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/gear-planner/internal/domain"
)

// TripRequest is the body of POST /trips and PUT /trips/{id}.
// An empty status means planned on create and "unchanged" on update.
type TripRequest struct {
	Title           string              `json:"title" validate:"required,max=200"`
	Description     string              `json:"description"`
	Location        string              `json:"location" validate:"max=200"`
	StartDate       *openapi_types.Date `json:"start_date" validate:"required"`
	EndDate         *openapi_types.Date `json:"end_date" validate:"required"`
	Activities      []string            `json:"activities"`
	ExpectedTempMin *int                `json:"expected_temp_min"`
	ExpectedTempMax *int                `json:"expected_temp_max"`
	ExpectedWeather []string            `json:"expected_weather" validate:"dive,oneof=Sunny Cloudy Rainy Snowy Windy"`
	Status          string              `json:"status" validate:"omitempty,oneof=planned in_progress completed"`
}

// TripResponse is the JSON view of a trip.
type TripResponse struct {
	ID              uuid.UUID          `json:"id"`
	Title           string             `json:"title"`
	Description     string             `json:"description"`
	Location        string             `json:"location"`
	StartDate       openapi_types.Date `json:"start_date"`
	EndDate         openapi_types.Date `json:"end_date"`
	DurationDays    int                `json:"duration_days"`
	Activities      []string           `json:"activities"`
	ExpectedTempMin *int               `json:"expected_temp_min"`
	ExpectedTempMax *int               `json:"expected_temp_max"`
	ExpectedWeather []string           `json:"expected_weather"`
	Status          domain.TripStatus  `json:"status"`
	GearCount       int                `json:"gear_count"`
	PackedCount     int                `json:"packed_count"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

// TripDetailResponse is a trip with its gear links.
type TripDetailResponse struct {
	TripResponse
	Gear []TripGearResponse `json:"gear"`
}

// ListTrips handles GET /trips?status=&page=&limit=.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	var status *domain.TripStatus
	if err := queryParam(r, "status", &status); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	p, err := pagination(r)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	page, err := s.svc.Trips.List(r.Context(), currentUser(r), status, p)
	if err != nil {
		s.writeError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, listResponse(page, tripToResponse))
}

// CreateTrip handles POST /trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req TripRequest
	if !s.decode(w, r, &req) {
		return
	}
	trip := req.toDomain()
	trip.UserID = currentUser(r)

	created, err := s.svc.Trips.Create(r.Context(), trip)
	if err != nil {
		s.writeError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// GetTrip handles GET /trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	detail, err := s.svc.Trips.Get(r.Context(), currentUser(r), id)
	if err != nil {
		s.writeError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, TripDetailResponse{
		TripResponse: tripToResponse(detail.Trip),
		Gear:         mapSlice(detail.Gear, linkToResponse),
	})
}

// UpdateTrip handles PUT /trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	var req TripRequest
	if !s.decode(w, r, &req) {
		return
	}
	trip := req.toDomain()
	trip.ID = id
	trip.UserID = currentUser(r)

	updated, err := s.svc.Trips.Update(r.Context(), trip)
	if err != nil {
		s.writeError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	if err := s.svc.Trips.Delete(r.Context(), currentUser(r), id); err != nil {
		s.writeError(w, r, err, "trip")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CompleteTrip handles POST /trips/{id}/complete.
func (s *Server) CompleteTrip(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	trip, err := s.svc.Trips.Complete(r.Context(), currentUser(r), id)
	if err != nil {
		s.writeError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, tripToResponse(trip))
}

func (req TripRequest) toDomain() domain.Trip {
	t := domain.Trip{
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		Activities:      req.Activities,
		ExpectedTempMin: req.ExpectedTempMin,
		ExpectedTempMax: req.ExpectedTempMax,
		ExpectedWeather: req.ExpectedWeather,
		Status:          domain.TripStatus(req.Status),
	}
	if req.StartDate != nil {
		t.StartDate = req.StartDate.Time
	}
	if req.EndDate != nil {
		t.EndDate = req.EndDate.Time
	}
	return t
}

func tripToResponse(t domain.Trip) TripResponse {
	return TripResponse{
		ID:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		Location:        t.Location,
		StartDate:       openapi_types.Date{Time: t.StartDate},
		EndDate:         openapi_types.Date{Time: t.EndDate},
		DurationDays:    t.DurationDays,
		Activities:      nonNil(t.Activities),
		ExpectedTempMin: t.ExpectedTempMin,
		ExpectedTempMax: t.ExpectedTempMax,
		ExpectedWeather: nonNil(t.ExpectedWeather),
		Status:          t.Status,
		GearCount:       t.GearCount,
		PackedCount:     t.PackedCount,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// nonNil keeps empty lists as [] in JSON.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
