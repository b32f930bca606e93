package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/gear-planner/internal/domain"
	"github.com/pkordes/gear-planner/internal/metrics"
	"github.com/pkordes/gear-planner/internal/repo"
)

// Recommender produces packing suggestions for a trip.
// *recommend.Engine is the production implementation.
type Recommender interface {
	Generate(ctx context.Context, trip domain.Trip, userID uuid.UUID) ([]domain.Suggestion, error)
}

// Forecaster looks up the weather for a trip. It never fails; degraded
// results come back with Available set to false.
// *weather.Client is the production implementation.
type Forecaster interface {
	Forecast(ctx context.Context, location string, start, end time.Time) domain.Forecast
}

// PlanService answers the read-only planning questions for a trip:
// what to pack and what weather to expect.
type PlanService struct {
	trips      repo.TripRepo
	recommends Recommender
	forecasts  Forecaster
	metrics    metrics.Recorder
	log        *slog.Logger
}

// NewPlanService constructs a PlanService. A nil recorder disables metrics
// and a nil logger means slog.Default().
func NewPlanService(trips repo.TripRepo, r Recommender, f Forecaster, rec metrics.Recorder, log *slog.Logger) *PlanService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &PlanService{trips: trips, recommends: r, forecasts: f, metrics: rec, log: log}
}

// Recommendations returns the prioritized packing suggestions for a trip.
func (s *PlanService) Recommendations(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Suggestion, error) {
	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.PlanService.Recommendations: %w", err)
	}

	suggestions, err := s.recommends.Generate(ctx, trip, userID)
	if err != nil {
		return nil, fmt.Errorf("service.PlanService.Recommendations: %w", err)
	}
	if suggestions == nil {
		suggestions = []domain.Suggestion{}
	}

	s.metrics.RecordRecommendations(len(suggestions))
	return suggestions, nil
}

// Forecast returns the weather forecast for a trip's location and dates.
// Only a failed trip lookup is an error.
func (s *PlanService) Forecast(ctx context.Context, userID, tripID uuid.UUID) (domain.Forecast, error) {
	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return domain.Forecast{}, fmt.Errorf("service.PlanService.Forecast: %w", err)
	}
	if strings.TrimSpace(trip.Location) == "" {
		return domain.Forecast{Message: "Trip has no location"}, nil
	}

	f := s.forecasts.Forecast(ctx, trip.Location, trip.StartDate, trip.EndDate)
	if !f.Available {
		s.log.InfoContext(ctx, "forecast unavailable", "trip_id", tripID, "reason", f.Message)
	}
	return f, nil
}
