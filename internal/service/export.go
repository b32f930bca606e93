package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/gear-planner/internal/domain"
	"github.com/pkordes/gear-planner/internal/repo"
)

// ExportService assembles a flat packing-list export for a trip.
type ExportService struct {
	trips repo.TripRepo
	links repo.TripGearRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, links repo.TripGearRepo) *ExportService {
	return &ExportService{trips: trips, links: links}
}

// PackingList returns one PackingRow per gear link of the trip, in the order
// the repo lists them. A trip with no gear contributes one row with empty gear
// fields.
func (s *ExportService) PackingList(ctx context.Context, userID, tripID uuid.UUID) ([]domain.PackingRow, error) {
	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.PackingList: %w", err)
	}
	links, err := s.links.ListByTrip(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.PackingList: %w", err)
	}

	base := domain.PackingRow{
		TripID:        trip.ID.String(),
		TripTitle:     trip.Title,
		TripStartDate: trip.StartDate.Format(time.DateOnly),
		TripEndDate:   trip.EndDate.Format(time.DateOnly),
	}
	if len(links) == 0 {
		return []domain.PackingRow{base}, nil
	}

	rows := make([]domain.PackingRow, 0, len(links))
	for _, l := range links {
		row := base
		row.GearName = l.GearName
		row.Category = l.GearCategory
		row.WeightGrams = l.GearWeight
		row.Quantity = l.Quantity
		row.Packed = l.Packed
		row.Used = l.Used
		row.Rating = l.UsefulnessRating
		row.Notes = l.Notes
		rows = append(rows, row)
	}
	return rows, nil
}
