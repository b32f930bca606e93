package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/gear-planner/internal/domain"
)

// SuggestedItemResponse is one concrete item inside a recommendation.
type SuggestedItemResponse struct {
	ID          uuid.UUID               `json:"id"`
	Name        string                  `json:"name"`
	Description string                  `json:"description"`
	WeightGrams *int                    `json:"weight_grams"`
	Source      domain.SuggestionSource `json:"source"`
	TimesUsed   *int                    `json:"times_used,omitempty"`
	AvgRating   *float64                `json:"avg_rating,omitempty"`
	LastUsed    *string                 `json:"last_used,omitempty"`
}

// RecommendationResponse is one entry of GET /trips/{id}/recommendations.
type RecommendationResponse struct {
	Category       string                  `json:"category"`
	CategoryID     *uuid.UUID              `json:"category_id"`
	SuggestedItems []SuggestedItemResponse `json:"suggested_items"`
	Reason         string                  `json:"reason"`
	Quantity       int                     `json:"quantity"`
	Priority       domain.Priority         `json:"priority"`
	Source         domain.SuggestionSource `json:"source"`
}

// ForecastDetailResponse is one sampled forecast interval.
type ForecastDetailResponse struct {
	Date        string  `json:"date"`
	Temp        float64 `json:"temp"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
}

// ForecastResponse is the body of GET /trips/{id}/forecast. Only available
// and message are sent when no forecast could be produced.
type ForecastResponse struct {
	Available  bool                     `json:"available"`
	Message    string                   `json:"message,omitempty"`
	TempMin    *int                     `json:"temp_min,omitempty"`
	TempMax    *int                     `json:"temp_max,omitempty"`
	Conditions []string                 `json:"conditions,omitempty"`
	Details    []ForecastDetailResponse `json:"details,omitempty"`
}

// GetRecommendations handles GET /trips/{id}/recommendations.
func (s *Server) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	suggestions, err := s.svc.Plans.Recommendations(r.Context(), currentUser(r), id)
	if err != nil {
		s.writeError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, mapSlice(suggestions, suggestionToResponse))
}

// GetForecast handles GET /trips/{id}/forecast. An unavailable forecast is
// still a 200; only a missing trip is an error.
func (s *Server) GetForecast(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	fc, err := s.svc.Plans.Forecast(r.Context(), currentUser(r), id)
	if err != nil {
		s.writeError(w, r, err, "trip")
		return
	}
	writeJSON(w, http.StatusOK, forecastToResponse(fc))
}

func suggestionToResponse(sg domain.Suggestion) RecommendationResponse {
	return RecommendationResponse{
		Category:       sg.Category,
		CategoryID:     sg.CategoryID,
		SuggestedItems: mapSlice(sg.SuggestedItems, suggestedItemToResponse),
		Reason:         sg.Reason,
		Quantity:       sg.Quantity,
		Priority:       sg.Priority,
		Source:         sg.Source,
	}
}

func suggestedItemToResponse(it domain.SuggestedItem) SuggestedItemResponse {
	resp := SuggestedItemResponse{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		WeightGrams: it.WeightGrams,
		Source:      it.Source,
		TimesUsed:   it.TimesUsed,
		AvgRating:   it.AvgRating,
	}
	if it.LastUsed != nil {
		d := it.LastUsed.Format(time.DateOnly)
		resp.LastUsed = &d
	}
	return resp
}

func forecastToResponse(fc domain.Forecast) ForecastResponse {
	if !fc.Available {
		return ForecastResponse{Available: false, Message: fc.Message}
	}
	lo, hi := fc.TempMin, fc.TempMax
	return ForecastResponse{
		Available:  true,
		TempMin:    &lo,
		TempMax:    &hi,
		Conditions: nonNil(fc.Conditions),
		Details: mapSlice(fc.Details, func(d domain.ForecastDetail) ForecastDetailResponse {
			return ForecastDetailResponse{Date: d.Date, Temp: d.Temp, Condition: d.Condition, Description: d.Description}
		}),
	}
}
