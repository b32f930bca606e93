package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/gear-planner/internal/domain"
	"github.com/pkordes/gear-planner/internal/handler"
)

func TestGetRecommendations(t *testing.T) {
	tripID := uuid.New()
	catID := uuid.New()
	last := date(2025, 5, 1)
	svc := handler.Services{Plans: &mockPlanServicer{
		recommendations: func(_ context.Context, userID, id uuid.UUID) ([]domain.Suggestion, error) {
			assert.Equal(t, testUserID, userID)
			assert.Equal(t, tripID, id)
			return []domain.Suggestion{
				{
					Category:   "Clothing",
					CategoryID: &catID,
					SuggestedItems: []domain.SuggestedItem{
						{ID: uuid.New(), Name: "Rain Jacket", Source: domain.SourceUser, TimesUsed: ptr(3), LastUsed: &last},
					},
					Reason:   "Rain expected",
					Quantity: 1,
					Priority: domain.PriorityHigh,
					Source:   domain.SourceUser,
				},
				{Category: "Navigation", Reason: "Hiking", Quantity: 1, Priority: domain.PriorityMedium, Source: domain.SourceSuggestion, SuggestedItems: []domain.SuggestedItem{}},
			}, nil
		},
	}}

	rec := doRequest(t, newHTTPHandler(svc), http.MethodGet, "/trips/"+tripID.String()+"/recommendations", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON[[]handler.RecommendationResponse](t, rec)
	require.Len(t, body, 2)
	assert.Equal(t, domain.PriorityHigh, body[0].Priority)
	require.Len(t, body[0].SuggestedItems, 1)
	require.NotNil(t, body[0].SuggestedItems[0].LastUsed)
	assert.Equal(t, "2025-05-01", *body[0].SuggestedItems[0].LastUsed)
	assert.Nil(t, body[1].CategoryID)
	assert.Empty(t, body[1].SuggestedItems)
}

func TestGetRecommendations_TripNotFound(t *testing.T) {
	svc := handler.Services{Plans: &mockPlanServicer{
		recommendations: func(context.Context, uuid.UUID, uuid.UUID) ([]domain.Suggestion, error) {
			return nil, fmt.Errorf("service.PlanService.Recommendations: %w", domain.ErrNotFound)
		},
	}}

	rec := doRequest(t, newHTTPHandler(svc), http.MethodGet, "/trips/"+uuid.NewString()+"/recommendations", nil)

	requireError(t, rec, http.StatusNotFound, "not_found")
}

func TestGetForecast_Available(t *testing.T) {
	svc := handler.Services{Plans: &mockPlanServicer{
		forecast: func(context.Context, uuid.UUID, uuid.UUID) (domain.Forecast, error) {
			return domain.Forecast{
				Available:  true,
				TempMin:    0,
				TempMax:    21,
				Conditions: []string{"Rainy", "Sunny"},
				Details:    []domain.ForecastDetail{{Date: "2025-06-01", Temp: 14.5, Condition: "Rainy", Description: "light rain"}},
			}, nil
		},
	}}

	rec := doRequest(t, newHTTPHandler(svc), http.MethodGet, "/trips/"+uuid.NewString()+"/forecast", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeJSON[handler.ForecastResponse](t, rec)
	assert.True(t, body.Available)
	require.NotNil(t, body.TempMin)
	assert.Equal(t, 0, *body.TempMin)
	assert.Equal(t, 21, *body.TempMax)
	assert.Equal(t, []string{"Rainy", "Sunny"}, body.Conditions)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "light rain", body.Details[0].Description)
}

func TestGetForecast_UnavailableIsStill200(t *testing.T) {
	svc := handler.Services{Plans: &mockPlanServicer{
		forecast: func(context.Context, uuid.UUID, uuid.UUID) (domain.Forecast, error) {
			return domain.Forecast{Message: "Weather service unavailable"}, nil
		},
	}}

	rec := doRequest(t, newHTTPHandler(svc), http.MethodGet, "/trips/"+uuid.NewString()+"/forecast", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"available":false,"message":"Weather service unavailable"}`, rec.Body.String())
}
