package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/gear-planner/internal/domain"
	"github.com/pkordes/gear-planner/internal/repo"
)

// Hand-written test doubles for the repo interfaces.
// Each method is a function field; set only the ones your test needs.

type mockTripRepo struct {
	create       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	getByID      func(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	getForUpdate func(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error)
	list         func(ctx context.Context, userID uuid.UUID, status *domain.TripStatus, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	update       func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete       func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.create(ctx, trip)
}
func (m *mockTripRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockTripRepo) GetForUpdate(ctx context.Context, userID, id uuid.UUID) (domain.Trip, error) {
	return m.getForUpdate(ctx, userID, id)
}
func (m *mockTripRepo) List(ctx context.Context, userID uuid.UUID, status *domain.TripStatus, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	return m.list(ctx, userID, status, p)
}
func (m *mockTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

var _ repo.TripRepo = (*mockTripRepo)(nil)

type mockTripGearRepo struct {
	create     func(ctx context.Context, link domain.TripGearLink) (domain.TripGearLink, error)
	get        func(ctx context.Context, tripID, gearID uuid.UUID) (domain.TripGearLink, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.TripGearLink, error)
	update     func(ctx context.Context, link domain.TripGearLink) (domain.TripGearLink, error)
	delete     func(ctx context.Context, tripID, gearID uuid.UUID) error
}

func (m *mockTripGearRepo) Create(ctx context.Context, link domain.TripGearLink) (domain.TripGearLink, error) {
	return m.create(ctx, link)
}
func (m *mockTripGearRepo) Get(ctx context.Context, tripID, gearID uuid.UUID) (domain.TripGearLink, error) {
	return m.get(ctx, tripID, gearID)
}
func (m *mockTripGearRepo) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.TripGearLink, error) {
	return m.listByTrip(ctx, tripID)
}
func (m *mockTripGearRepo) Update(ctx context.Context, link domain.TripGearLink) (domain.TripGearLink, error) {
	return m.update(ctx, link)
}
func (m *mockTripGearRepo) Delete(ctx context.Context, tripID, gearID uuid.UUID) error {
	return m.delete(ctx, tripID, gearID)
}

var _ repo.TripGearRepo = (*mockTripGearRepo)(nil)

type mockGearRepo struct {
	create  func(ctx context.Context, item domain.GearItem) (domain.GearItem, error)
	getByID func(ctx context.Context, userID, id uuid.UUID) (domain.GearItem, error)
	list    func(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) ([]domain.GearItem, error)
	update  func(ctx context.Context, item domain.GearItem) (domain.GearItem, error)
	delete  func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockGearRepo) Create(ctx context.Context, item domain.GearItem) (domain.GearItem, error) {
	return m.create(ctx, item)
}
func (m *mockGearRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.GearItem, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockGearRepo) List(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) ([]domain.GearItem, error) {
	return m.list(ctx, userID, categoryID)
}
func (m *mockGearRepo) Update(ctx context.Context, item domain.GearItem) (domain.GearItem, error) {
	return m.update(ctx, item)
}
func (m *mockGearRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

var _ repo.GearRepo = (*mockGearRepo)(nil)

type mockCategoryRepo struct {
	list      func(ctx context.Context) ([]domain.Category, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.Category, error)
	getByName func(ctx context.Context, name string) (domain.Category, error)
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]domain.Category, error) {
	return m.list(ctx)
}
func (m *mockCategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Category, error) {
	return m.getByID(ctx, id)
}
func (m *mockCategoryRepo) GetByName(ctx context.Context, name string) (domain.Category, error) {
	return m.getByName(ctx, name)
}

var _ repo.CategoryRepo = (*mockCategoryRepo)(nil)

type mockActivityRepo struct {
	list    func(ctx context.Context, prefix string) ([]domain.ActivityType, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.ActivityType, error)
}

func (m *mockActivityRepo) List(ctx context.Context, prefix string) ([]domain.ActivityType, error) {
	return m.list(ctx, prefix)
}
func (m *mockActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.ActivityType, error) {
	return m.getByID(ctx, id)
}

var _ repo.ActivityRepo = (*mockActivityRepo)(nil)

type mockCatalogRepo struct {
	list          func(ctx context.Context, categoryID *uuid.UUID, p domain.PaginationParams) (domain.Page[domain.CatalogItem], error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.CatalogItem, error)
	topByCategory func(ctx context.Context, categoryID uuid.UUID, limit int) ([]domain.CatalogItem, error)
	byActivities  func(ctx context.Context, activities []string) ([]domain.CatalogItem, error)
}

func (m *mockCatalogRepo) List(ctx context.Context, categoryID *uuid.UUID, p domain.PaginationParams) (domain.Page[domain.CatalogItem], error) {
	return m.list(ctx, categoryID, p)
}
func (m *mockCatalogRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.CatalogItem, error) {
	return m.getByID(ctx, id)
}
func (m *mockCatalogRepo) TopByCategory(ctx context.Context, categoryID uuid.UUID, limit int) ([]domain.CatalogItem, error) {
	return m.topByCategory(ctx, categoryID, limit)
}
func (m *mockCatalogRepo) ByActivities(ctx context.Context, activities []string) ([]domain.CatalogItem, error) {
	return m.byActivities(ctx, activities)
}

var _ repo.CatalogRepo = (*mockCatalogRepo)(nil)

type mockUserRepo struct {
	create        func(ctx context.Context, u domain.User) (domain.User, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.User, error)
	getByUsername func(ctx context.Context, username string) (domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	return m.create(ctx, u)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}
func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return m.getByUsername(ctx, username)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

type mockStatsRepo struct {
	getOrCreate func(ctx context.Context, userID, gearID uuid.UUID) (domain.UsageStats, error)
	save        func(ctx context.Context, stats domain.UsageStats) (domain.UsageStats, error)
	getByGear   func(ctx context.Context, userID, gearID uuid.UUID) (domain.UsageStats, error)
	listByUser  func(ctx context.Context, userID uuid.UUID) ([]domain.UsageStats, error)
}

func (m *mockStatsRepo) GetOrCreate(ctx context.Context, userID, gearID uuid.UUID) (domain.UsageStats, error) {
	return m.getOrCreate(ctx, userID, gearID)
}
func (m *mockStatsRepo) Save(ctx context.Context, stats domain.UsageStats) (domain.UsageStats, error) {
	return m.save(ctx, stats)
}
func (m *mockStatsRepo) GetByGear(ctx context.Context, userID, gearID uuid.UUID) (domain.UsageStats, error) {
	return m.getByGear(ctx, userID, gearID)
}
func (m *mockStatsRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.UsageStats, error) {
	return m.listByUser(ctx, userID)
}

var _ repo.StatsRepo = (*mockStatsRepo)(nil)

// mockTxRunner runs fn directly against its repos. committed reports whether
// the last fn returned nil.
type mockTxRunner struct {
	repos     repo.Repos
	calls     int
	committed bool
}

func (m *mockTxRunner) WithinTx(_ context.Context, fn func(repo.Repos) error) error {
	m.calls++
	err := fn(m.repos)
	m.committed = err == nil
	return err
}

var _ repo.TxRunner = (*mockTxRunner)(nil)

type mockRecommender struct {
	generate func(ctx context.Context, trip domain.Trip, userID uuid.UUID) ([]domain.Suggestion, error)
}

func (m *mockRecommender) Generate(ctx context.Context, trip domain.Trip, userID uuid.UUID) ([]domain.Suggestion, error) {
	return m.generate(ctx, trip, userID)
}

type mockForecaster struct {
	forecast func(ctx context.Context, location string, start, end time.Time) domain.Forecast
}

func (m *mockForecaster) Forecast(ctx context.Context, location string, start, end time.Time) domain.Forecast {
	return m.forecast(ctx, location, start, end)
}

type fakeRecorder struct {
	recommendations []int
	completed       []int
	forecasts       []string
}

func (f *fakeRecorder) RecordRecommendations(n int) { f.recommendations = append(f.recommendations, n) }
func (f *fakeRecorder) RecordTripCompleted(n int)   { f.completed = append(f.completed, n) }
func (f *fakeRecorder) RecordForecast(o string)     { f.forecasts = append(f.forecasts, o) }

// ---- shared fixtures -------------------------------------------------------

var (
	userID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	tripID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	gearID = uuid.MustParse("33333333-3333-3333-3333-333333333333")
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func validTrip() domain.Trip {
	return domain.Trip{
		ID:              tripID,
		UserID:          userID,
		Title:           "Summer Traverse",
		Location:        "Boulder, CO",
		StartDate:       date(2025, 6, 1),
		EndDate:         date(2025, 6, 3),
		Activities:      []string{"Hiking", "Camping"},
		ExpectedWeather: []string{"Rainy"},
		Status:          domain.TripPlanned,
	}
}

func ptr[T any](v T) *T { return &v }
