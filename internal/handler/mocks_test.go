package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/gear-planner/internal/domain"
	"github.com/pkordes/gear-planner/internal/handler"
	"github.com/pkordes/gear-planner/internal/service"
)

// Each mock below is a test double for one handler servicer interface.
// Set only the method fields your test needs.

type mockAuthServicer struct {
	register func(ctx context.Context, reg service.Registration) (domain.User, error)
	login    func(ctx context.Context, username, password string) (service.Token, error)
	me       func(ctx context.Context, userID uuid.UUID) (domain.User, error)
}

func (m *mockAuthServicer) Register(ctx context.Context, reg service.Registration) (domain.User, error) {
	return m.register(ctx, reg)
}
func (m *mockAuthServicer) Login(ctx context.Context, username, password string) (service.Token, error) {
	return m.login(ctx, username, password)
}
func (m *mockAuthServicer) Me(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	return m.me(ctx, userID)
}

var _ handler.AuthServicer = (*mockAuthServicer)(nil)

type mockGearServicer struct {
	create     func(ctx context.Context, item domain.GearItem) (domain.GearItem, error)
	get        func(ctx context.Context, userID, id uuid.UUID) (domain.GearItem, error)
	list       func(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) ([]domain.GearItem, error)
	update     func(ctx context.Context, item domain.GearItem) (domain.GearItem, error)
	delete     func(ctx context.Context, userID, id uuid.UUID) error
	usageStats func(ctx context.Context, userID, gearID uuid.UUID) (domain.UsageStats, error)
}

func (m *mockGearServicer) Create(ctx context.Context, item domain.GearItem) (domain.GearItem, error) {
	return m.create(ctx, item)
}
func (m *mockGearServicer) Get(ctx context.Context, userID, id uuid.UUID) (domain.GearItem, error) {
	return m.get(ctx, userID, id)
}
func (m *mockGearServicer) List(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) ([]domain.GearItem, error) {
	return m.list(ctx, userID, categoryID)
}
func (m *mockGearServicer) Update(ctx context.Context, item domain.GearItem) (domain.GearItem, error) {
	return m.update(ctx, item)
}
func (m *mockGearServicer) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}
func (m *mockGearServicer) UsageStats(ctx context.Context, userID, gearID uuid.UUID) (domain.UsageStats, error) {
	return m.usageStats(ctx, userID, gearID)
}

var _ handler.GearServicer = (*mockGearServicer)(nil)

type mockTripServicer struct {
	create           func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	get              func(ctx context.Context, userID, id uuid.UUID) (domain.TripDetail, error)
	list             func(ctx context.Context, userID uuid.UUID, status *domain.TripStatus, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	update           func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	delete           func(ctx context.Context, userID, id uuid.UUID) error
	addGear          func(ctx context.Context, userID uuid.UUID, link domain.TripGearLink) (domain.TripGearLink, error)
	removeGear       func(ctx context.Context, userID, tripID, gearID uuid.UUID) error
	updateGearStatus func(ctx context.Context, userID, tripID, gearID uuid.UUID, upd domain.LinkStatusUpdate) (domain.TripGearLink, error)
	complete         func(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)
}

func (m *mockTripServicer) Create(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.create(ctx, t)
}
func (m *mockTripServicer) Get(ctx context.Context, userID, id uuid.UUID) (domain.TripDetail, error) {
	return m.get(ctx, userID, id)
}
func (m *mockTripServicer) List(ctx context.Context, userID uuid.UUID, status *domain.TripStatus, p domain.PaginationParams) (domain.Page[domain.Trip], error) {
	return m.list(ctx, userID, status, p)
}
func (m *mockTripServicer) Update(ctx context.Context, t domain.Trip) (domain.Trip, error) {
	return m.update(ctx, t)
}
func (m *mockTripServicer) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}
func (m *mockTripServicer) AddGear(ctx context.Context, userID uuid.UUID, link domain.TripGearLink) (domain.TripGearLink, error) {
	return m.addGear(ctx, userID, link)
}
func (m *mockTripServicer) RemoveGear(ctx context.Context, userID, tripID, gearID uuid.UUID) error {
	return m.removeGear(ctx, userID, tripID, gearID)
}
func (m *mockTripServicer) UpdateGearStatus(ctx context.Context, userID, tripID, gearID uuid.UUID, upd domain.LinkStatusUpdate) (domain.TripGearLink, error) {
	return m.updateGearStatus(ctx, userID, tripID, gearID, upd)
}
func (m *mockTripServicer) Complete(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	return m.complete(ctx, userID, tripID)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockPlanServicer struct {
	recommendations func(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Suggestion, error)
	forecast        func(ctx context.Context, userID, tripID uuid.UUID) (domain.Forecast, error)
}

func (m *mockPlanServicer) Recommendations(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Suggestion, error) {
	return m.recommendations(ctx, userID, tripID)
}
func (m *mockPlanServicer) Forecast(ctx context.Context, userID, tripID uuid.UUID) (domain.Forecast, error) {
	return m.forecast(ctx, userID, tripID)
}

var _ handler.PlanServicer = (*mockPlanServicer)(nil)

type mockCatalogServicer struct {
	categories   func(ctx context.Context) ([]domain.Category, error)
	category     func(ctx context.Context, id uuid.UUID) (domain.Category, error)
	activities   func(ctx context.Context, prefix string) ([]domain.ActivityType, error)
	activity     func(ctx context.Context, id uuid.UUID) (domain.ActivityType, error)
	items        func(ctx context.Context, categoryID *uuid.UUID, p domain.PaginationParams) (domain.Page[domain.CatalogItem], error)
	item         func(ctx context.Context, id uuid.UUID) (domain.CatalogItem, error)
	byActivities func(ctx context.Context, activities []string) ([]domain.CatalogItem, error)
}

func (m *mockCatalogServicer) Categories(ctx context.Context) ([]domain.Category, error) {
	return m.categories(ctx)
}
func (m *mockCatalogServicer) Category(ctx context.Context, id uuid.UUID) (domain.Category, error) {
	return m.category(ctx, id)
}
func (m *mockCatalogServicer) Activities(ctx context.Context, prefix string) ([]domain.ActivityType, error) {
	return m.activities(ctx, prefix)
}
func (m *mockCatalogServicer) Activity(ctx context.Context, id uuid.UUID) (domain.ActivityType, error) {
	return m.activity(ctx, id)
}
func (m *mockCatalogServicer) Items(ctx context.Context, categoryID *uuid.UUID, p domain.PaginationParams) (domain.Page[domain.CatalogItem], error) {
	return m.items(ctx, categoryID, p)
}
func (m *mockCatalogServicer) Item(ctx context.Context, id uuid.UUID) (domain.CatalogItem, error) {
	return m.item(ctx, id)
}
func (m *mockCatalogServicer) ByActivities(ctx context.Context, activities []string) ([]domain.CatalogItem, error) {
	return m.byActivities(ctx, activities)
}

var _ handler.CatalogServicer = (*mockCatalogServicer)(nil)

type mockStatsServicer struct {
	list func(ctx context.Context, userID uuid.UUID) ([]domain.UsageStats, error)
}

func (m *mockStatsServicer) List(ctx context.Context, userID uuid.UUID) ([]domain.UsageStats, error) {
	return m.list(ctx, userID)
}

var _ handler.StatsServicer = (*mockStatsServicer)(nil)

type mockExportServicer struct {
	packingList func(ctx context.Context, userID, tripID uuid.UUID) ([]domain.PackingRow, error)
}

func (m *mockExportServicer) PackingList(ctx context.Context, userID, tripID uuid.UUID) ([]domain.PackingRow, error) {
	return m.packingList(ctx, userID, tripID)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

// ---- auth stub ---------------------------------------------------------------

const validToken = "valid-token"

var testUserID = uuid.MustParse("11111111-1111-1111-1111-111111111111")

// stubTokens accepts validToken as testUserID and rejects everything else.
type stubTokens struct{}

func (stubTokens) ValidateToken(token string) (uuid.UUID, error) {
	if token != validToken {
		return uuid.Nil, fmt.Errorf("%w: invalid token", domain.ErrUnauthorized)
	}
	return testUserID, nil
}

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into the full router.
// This mirrors how main.go wires it in production.
func newHTTPHandler(svc handler.Services) http.Handler {
	return newHTTPHandlerWith(svc, handler.RouterOptions{})
}

func newHTTPHandlerWith(svc handler.Services, opts handler.RouterOptions) http.Handler {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handler.NewServer(svc, stubTokens{}, log).Routes(opts)
}

// doRequest sends an authenticated request. A non-nil body is JSON-encoded
// unless it is already a string.
func doRequest(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Authorization", "Bearer "+validToken)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

// requireError asserts the status and error code of an error response.
func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) handler.ErrorResponse {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decodeJSON[handler.ErrorResponse](t, rec)
	require.Equal(t, code, body.Error.Code)
	return body
}

func ptr[T any](v T) *T { return &v }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tripFixture() domain.Trip {
	return domain.Trip{
		ID:              uuid.New(),
		UserID:          testUserID,
		Title:           "Boulder weekend",
		Location:        "Boulder, CO",
		StartDate:       date(2025, 6, 1),
		EndDate:         date(2025, 6, 3),
		DurationDays:    3,
		Activities:      []string{"Hiking", "Camping"},
		ExpectedWeather: []string{"Rainy"},
		Status:          domain.TripPlanned,
		CreatedAt:       time.Now().UTC(),
		UpdatedAt:       time.Now().UTC(),
	}
}
