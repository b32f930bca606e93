package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/gear-planner/internal/domain"
)

// GearRequest is the body of POST /gear and PUT /gear/{id}.
type GearRequest struct {
	Name         string              `json:"name" validate:"required,max=200"`
	Description  string              `json:"description"`
	CategoryID   *uuid.UUID          `json:"category_id"`
	WeightGrams  *int                `json:"weight_grams" validate:"omitempty,min=0"`
	PurchaseDate *openapi_types.Date `json:"purchase_date"`
	Notes        string              `json:"notes"`
}

// GearResponse is the JSON view of a gear item.
type GearResponse struct {
	ID           uuid.UUID           `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	CategoryID   *uuid.UUID          `json:"category_id"`
	CategoryName string              `json:"category_name,omitempty"`
	WeightGrams  *int                `json:"weight_grams"`
	PurchaseDate *openapi_types.Date `json:"purchase_date"`
	Notes        string              `json:"notes"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// UsageStatsResponse is the JSON view of a gear item's usage statistics.
type UsageStatsResponse struct {
	GearID              uuid.UUID      `json:"gear_id"`
	GearName            string         `json:"gear_name"`
	TimesPacked         int            `json:"times_packed"`
	TimesUsed           int            `json:"times_used"`
	TimesNotUsed        int            `json:"times_not_used"`
	AvgUsefulnessRating *float64       `json:"avg_usefulness_rating"`
	UsageByActivity     map[string]int `json:"usage_by_activity"`
	UsageByWeather      map[string]int `json:"usage_by_weather"`
	UsageByDuration     map[string]int `json:"usage_by_duration"`
	LastUsedDate        *string        `json:"last_used_date"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// ListGear handles GET /gear, optionally filtered by ?category_id=.
func (s *Server) ListGear(w http.ResponseWriter, r *http.Request) {
	var categoryID *uuid.UUID
	if err := queryParam(r, "category_id", &categoryID); err != nil {
		s.writeError(w, r, err, "")
		return
	}
	items, err := s.svc.Gear.List(r.Context(), currentUser(r), categoryID)
	if err != nil {
		s.writeError(w, r, err, "gear")
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(items, gearToResponse))
}

// CreateGear handles POST /gear.
func (s *Server) CreateGear(w http.ResponseWriter, r *http.Request) {
	var req GearRequest
	if !s.decode(w, r, &req) {
		return
	}
	item := req.toDomain()
	item.UserID = currentUser(r)

	created, err := s.svc.Gear.Create(r.Context(), item)
	if err != nil {
		s.writeError(w, r, err, "gear")
		return
	}
	writeJSON(w, http.StatusCreated, gearToResponse(created))
}

// GetGear handles GET /gear/{id}.
func (s *Server) GetGear(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	item, err := s.svc.Gear.Get(r.Context(), currentUser(r), id)
	if err != nil {
		s.writeError(w, r, err, "gear")
		return
	}
	writeJSON(w, http.StatusOK, gearToResponse(item))
}

// UpdateGear handles PUT /gear/{id}. The body replaces every editable field.
func (s *Server) UpdateGear(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	var req GearRequest
	if !s.decode(w, r, &req) {
		return
	}
	item := req.toDomain()
	item.ID = id
	item.UserID = currentUser(r)

	updated, err := s.svc.Gear.Update(r.Context(), item)
	if err != nil {
		s.writeError(w, r, err, "gear")
		return
	}
	writeJSON(w, http.StatusOK, gearToResponse(updated))
}

// DeleteGear handles DELETE /gear/{id}.
func (s *Server) DeleteGear(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	if err := s.svc.Gear.Delete(r.Context(), currentUser(r), id); err != nil {
		s.writeError(w, r, err, "gear")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetGearUsageStats handles GET /gear/{id}/usage-stats.
func (s *Server) GetGearUsageStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	stats, err := s.svc.Gear.UsageStats(r.Context(), currentUser(r), id)
	if err != nil {
		s.writeError(w, r, err, "usage stats")
		return
	}
	writeJSON(w, http.StatusOK, statsToResponse(stats))
}

func (req GearRequest) toDomain() domain.GearItem {
	item := domain.GearItem{
		Name:        req.Name,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		WeightGrams: req.WeightGrams,
		Notes:       req.Notes,
	}
	if req.PurchaseDate != nil {
		d := req.PurchaseDate.Time
		item.PurchaseDate = &d
	}
	return item
}

func gearToResponse(g domain.GearItem) GearResponse {
	resp := GearResponse{
		ID:           g.ID,
		Name:         g.Name,
		Description:  g.Description,
		CategoryID:   g.CategoryID,
		CategoryName: g.CategoryName,
		WeightGrams:  g.WeightGrams,
		Notes:        g.Notes,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
	if g.PurchaseDate != nil {
		resp.PurchaseDate = &openapi_types.Date{Time: *g.PurchaseDate}
	}
	return resp
}

func statsToResponse(st domain.UsageStats) UsageStatsResponse {
	resp := UsageStatsResponse{
		GearID:              st.GearID,
		GearName:            st.GearName,
		TimesPacked:         st.TimesPacked,
		TimesUsed:           st.TimesUsed,
		TimesNotUsed:        st.TimesNotUsed,
		AvgUsefulnessRating: st.AvgUsefulnessRating,
		UsageByActivity:     counterOrEmpty(st.UsageByActivity),
		UsageByWeather:      counterOrEmpty(st.UsageByWeather),
		UsageByDuration:     counterOrEmpty(st.UsageByDuration),
		UpdatedAt:           st.UpdatedAt,
	}
	if st.LastUsedDate != nil {
		d := st.LastUsedDate.Format(time.DateOnly)
		resp.LastUsedDate = &d
	}
	return resp
}

// counterOrEmpty keeps empty counters as {} instead of null in JSON.
func counterOrEmpty(c domain.Counter) map[string]int {
	if c == nil {
		return map[string]int{}
	}
	return c
}
