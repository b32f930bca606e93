// Package service contains the business logic for the gear planner API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/gear-planner/internal/domain"
	"github.com/pkordes/gear-planner/internal/metrics"
	"github.com/pkordes/gear-planner/internal/repo"
	"github.com/pkordes/gear-planner/internal/usage"
)

// TripService implements business logic for trips, their gear links and
// trip completion.
type TripService struct {
	trips   repo.TripRepo
	links   repo.TripGearRepo
	gear    repo.GearRepo
	tx      repo.TxRunner
	metrics metrics.Recorder
	log     *slog.Logger
}

// NewTripService constructs a TripService. A nil recorder disables metrics
// and a nil logger means slog.Default().
func NewTripService(trips repo.TripRepo, links repo.TripGearRepo, gear repo.GearRepo, tx repo.TxRunner, rec metrics.Recorder, log *slog.Logger) *TripService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	if log == nil {
		log = slog.Default()
	}
	return &TripService{trips: trips, links: links, gear: gear, tx: tx, metrics: rec, log: log}
}

// Create validates and persists a new trip for trip.UserID.
// Status defaults to planned; a trip cannot be created as completed.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if trip.Status == "" {
		trip.Status = domain.TripPlanned
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	if trip.Status == domain.TripCompleted {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: trips are completed through the complete action", domain.ErrValidation)
	}
	trip.Title = strings.TrimSpace(trip.Title)
	trip.ComputeDuration()

	result, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// Get returns a trip with its gear links.
func (s *TripService) Get(ctx context.Context, userID, id uuid.UUID) (domain.TripDetail, error) {
	trip, err := s.trips.GetByID(ctx, userID, id)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	links, err := s.links.ListByTrip(ctx, id)
	if err != nil {
		return domain.TripDetail{}, fmt.Errorf("service.TripService.Get: %w", err)
	}
	if links == nil {
		links = []domain.TripGearLink{}
	}
	return domain.TripDetail{Trip: trip, Gear: links}, nil
}

// List returns one page of the user's trips, optionally filtered by status.
func (s *TripService) List(ctx context.Context, userID uuid.UUID, status *domain.TripStatus, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	if status != nil && !status.Valid() {
		return domain.Page[domain.Trip]{}, fmt.Errorf("service.TripService.List: %w: unknown status %q", domain.ErrValidation, *status)
	}
	page, err := s.trips.List(ctx, userID, status, p)
	if err != nil {
		return domain.Page[domain.Trip]{}, fmt.Errorf("service.TripService.List: %w", err)
	}
	if page.Items == nil {
		page.Items = []domain.Trip{}
	}
	return page, nil
}

// Update validates and persists changes to an existing trip.
// Status changes must follow the lifecycle; moving to completed is only
// possible through Complete.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	current, err := s.trips.GetByID(ctx, trip.UserID, trip.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if trip.Status == "" {
		trip.Status = current.Status
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	if trip.Status != current.Status {
		if trip.Status == domain.TripCompleted {
			return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w: trips are completed through the complete action", domain.ErrValidation)
		}
		if !current.Status.CanTransitionTo(trip.Status) {
			return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w: cannot change status from %s to %s",
				domain.ErrValidation, current.Status, trip.Status)
		}
	}
	trip.Title = strings.TrimSpace(trip.Title)
	trip.ComputeDuration()

	result, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip and its gear links.
func (s *TripService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// AddGear links one of the user's gear items to one of their trips.
// Quantity defaults to 1 and origin to user_added. Linking the same gear twice
// returns domain.ErrConflict.
func (s *TripService) AddGear(ctx context.Context, userID uuid.UUID, link domain.TripGearLink) (domain.TripGearLink, error) {
	if link.Quantity == 0 {
		link.Quantity = 1
	}
	if link.Quantity < 0 {
		return domain.TripGearLink{}, fmt.Errorf("service.TripService.AddGear: %w: quantity must be at least 1", domain.ErrValidation)
	}
	if link.Origin == "" {
		link.Origin = domain.OriginUserAdded
	}
	if link.Origin != domain.OriginUserAdded && link.Origin != domain.OriginRecommended {
		return domain.TripGearLink{}, fmt.Errorf("service.TripService.AddGear: %w: unknown origin %q", domain.ErrValidation, link.Origin)
	}
	if err := validateRating(link.UsefulnessRating); err != nil {
		return domain.TripGearLink{}, fmt.Errorf("service.TripService.AddGear: %w", err)
	}

	if _, err := s.trips.GetByID(ctx, userID, link.TripID); err != nil {
		return domain.TripGearLink{}, fmt.Errorf("service.TripService.AddGear: %w", explain(err, domain.ErrNotFound, "trip not found"))
	}
	if _, err := s.gear.GetByID(ctx, userID, link.GearID); err != nil {
		return domain.TripGearLink{}, fmt.Errorf("service.TripService.AddGear: %w", explain(err, domain.ErrNotFound, "gear not found"))
	}

	result, err := s.links.Create(ctx, link)
	if err != nil {
		return domain.TripGearLink{}, fmt.Errorf("service.TripService.AddGear: %w", explain(err, domain.ErrConflict, "gear is already on this trip"))
	}
	return result, nil
}

// RemoveGear unlinks a gear item from a trip.
func (s *TripService) RemoveGear(ctx context.Context, userID, tripID, gearID uuid.UUID) error {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return fmt.Errorf("service.TripService.RemoveGear: %w", err)
	}
	if err := s.links.Delete(ctx, tripID, gearID); err != nil {
		return fmt.Errorf("service.TripService.RemoveGear: %w", err)
	}
	return nil
}

// UpdateGearStatus applies a partial update to a trip gear link.
func (s *TripService) UpdateGearStatus(ctx context.Context, userID, tripID, gearID uuid.UUID, upd domain.LinkStatusUpdate) (domain.TripGearLink, error) {
	if err := validateRating(upd.UsefulnessRating); err != nil {
		return domain.TripGearLink{}, fmt.Errorf("service.TripService.UpdateGearStatus: %w", err)
	}
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return domain.TripGearLink{}, fmt.Errorf("service.TripService.UpdateGearStatus: %w", err)
	}
	link, err := s.links.Get(ctx, tripID, gearID)
	if err != nil {
		return domain.TripGearLink{}, fmt.Errorf("service.TripService.UpdateGearStatus: %w", err)
	}

	upd.Apply(&link)

	result, err := s.links.Update(ctx, link)
	if err != nil {
		return domain.TripGearLink{}, fmt.Errorf("service.TripService.UpdateGearStatus: %w", err)
	}
	return result, nil
}

// Complete marks the trip completed and folds every gear link into the
// user's usage statistics. The status change and all stats writes commit
// together or not at all. Completing an already completed trip returns
// domain.ErrAlreadyCompleted and changes nothing.
func (s *TripService) Complete(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	var (
		completed domain.Trip
		folded    int
	)

	err := s.tx.WithinTx(ctx, func(r repo.Repos) error {
		trip, err := r.Trips.GetForUpdate(ctx, userID, tripID)
		if err != nil {
			return err
		}
		if trip.Status == domain.TripCompleted {
			return domain.ErrAlreadyCompleted
		}

		trip.Status = domain.TripCompleted
		trip.ComputeDuration()
		trip, err = r.Trips.Update(ctx, trip)
		if err != nil {
			return err
		}

		links, err := r.TripGear.ListByTrip(ctx, trip.ID)
		if err != nil {
			return err
		}
		for _, link := range links {
			stats, err := r.Stats.GetOrCreate(ctx, userID, link.GearID)
			if err != nil {
				return fmt.Errorf("stats for gear %s: %w", link.GearID, err)
			}
			usage.Apply(&stats, trip, link)
			if _, err := r.Stats.Save(ctx, stats); err != nil {
				return fmt.Errorf("stats for gear %s: %w", link.GearID, err)
			}
		}

		completed, folded = trip, len(links)
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrConflict) {
			s.log.ErrorContext(ctx, "trip completion failed", "trip_id", tripID, "error", err)
		}
		return domain.Trip{}, fmt.Errorf("service.TripService.Complete: %w", err)
	}

	s.metrics.RecordTripCompleted(folded)
	s.log.InfoContext(ctx, "trip completed", "trip_id", tripID, "user_id", userID, "links", folded)
	return completed, nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Title must be non-empty (whitespace-only titles are rejected).
//   - EndDate must not be before StartDate.
//   - Status must be a known value.
//   - ExpectedTempMin must not exceed ExpectedTempMax when both are set.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	if !trip.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", domain.ErrValidation, trip.Status)
	}
	if trip.ExpectedTempMin != nil && trip.ExpectedTempMax != nil && *trip.ExpectedTempMin > *trip.ExpectedTempMax {
		return fmt.Errorf("%w: expected_temp_min must not exceed expected_temp_max", domain.ErrValidation)
	}
	return nil
}

func validateRating(r *int) error {
	if r != nil && (*r < 1 || *r > 5) {
		return fmt.Errorf("%w: usefulness_rating must be between 1 and 5", domain.ErrValidation)
	}
	return nil
}

// explain replaces err with a client-facing message when it matches sentinel.
// Other errors pass through unchanged.
func explain(err, sentinel error, msg string) error {
	if errors.Is(err, sentinel) {
		return fmt.Errorf("%w: %s", sentinel, msg)
	}
	return err
}
