// Package handler implements the HTTP handlers for the gear planner API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, etc.) but share the same Server struct so they
// can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/pkordes/gear-planner/internal/auth"
	"github.com/pkordes/gear-planner/internal/domain"
	"github.com/pkordes/gear-planner/internal/metrics"
	"github.com/pkordes/gear-planner/internal/middleware"
	"github.com/pkordes/gear-planner/internal/service"
)

// The servicer interfaces below define the business operations the handlers
// depend on. Defining them here, in the consumer package, lets handler tests
// inject mocks without touching the database or service layer.

// AuthServicer registers users and issues tokens.
type AuthServicer interface {
	Register(ctx context.Context, reg service.Registration) (domain.User, error)
	Login(ctx context.Context, username, password string) (service.Token, error)
	Me(ctx context.Context, userID uuid.UUID) (domain.User, error)
}

// GearServicer manages the user's gear inventory.
type GearServicer interface {
	Create(ctx context.Context, item domain.GearItem) (domain.GearItem, error)
	Get(ctx context.Context, userID, id uuid.UUID) (domain.GearItem, error)
	List(ctx context.Context, userID uuid.UUID, categoryID *uuid.UUID) ([]domain.GearItem, error)
	Update(ctx context.Context, item domain.GearItem) (domain.GearItem, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	UsageStats(ctx context.Context, userID, gearID uuid.UUID) (domain.UsageStats, error)
}

// TripServicer manages trips, their gear links and completion.
type TripServicer interface {
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Get(ctx context.Context, userID, id uuid.UUID) (domain.TripDetail, error)
	List(ctx context.Context, userID uuid.UUID, status *domain.TripStatus, p domain.PaginationParams) (domain.Page[domain.Trip], error)
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	AddGear(ctx context.Context, userID uuid.UUID, link domain.TripGearLink) (domain.TripGearLink, error)
	RemoveGear(ctx context.Context, userID, tripID, gearID uuid.UUID) error
	UpdateGearStatus(ctx context.Context, userID, tripID, gearID uuid.UUID, upd domain.LinkStatusUpdate) (domain.TripGearLink, error)
	Complete(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)
}

// PlanServicer answers what to pack and what weather to expect.
type PlanServicer interface {
	Recommendations(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Suggestion, error)
	Forecast(ctx context.Context, userID, tripID uuid.UUID) (domain.Forecast, error)
}

// CatalogServicer exposes read-only reference data.
type CatalogServicer interface {
	Categories(ctx context.Context) ([]domain.Category, error)
	Category(ctx context.Context, id uuid.UUID) (domain.Category, error)
	Activities(ctx context.Context, prefix string) ([]domain.ActivityType, error)
	Activity(ctx context.Context, id uuid.UUID) (domain.ActivityType, error)
	Items(ctx context.Context, categoryID *uuid.UUID, p domain.PaginationParams) (domain.Page[domain.CatalogItem], error)
	Item(ctx context.Context, id uuid.UUID) (domain.CatalogItem, error)
	ByActivities(ctx context.Context, activities []string) ([]domain.CatalogItem, error)
}

// StatsServicer lists usage statistics.
type StatsServicer interface {
	List(ctx context.Context, userID uuid.UUID) ([]domain.UsageStats, error)
}

// ExportServicer builds packing-list exports.
type ExportServicer interface {
	PackingList(ctx context.Context, userID, tripID uuid.UUID) ([]domain.PackingRow, error)
}

// Services bundles every service the Server dispatches to.
type Services struct {
	Auth    AuthServicer
	Gear    GearServicer
	Trips   TripServicer
	Plans   PlanServicer
	Catalog CatalogServicer
	Stats   StatsServicer
	Export  ExportServicer
}

// Server holds the dependencies shared by all handlers.
type Server struct {
	svc    Services
	tokens auth.TokenValidator
	log    *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger means slog.Default().
func NewServer(svc Services, tokens auth.TokenValidator, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{svc: svc, tokens: tokens, log: log}
}

// RouterOptions configures the cross-cutting middleware of Routes.
// Zero values disable the corresponding feature.
type RouterOptions struct {
	CORSOrigins       []string
	MaxBodyBytes      int64
	AuthRatePerMinute int
	Metrics           *metrics.Collector
	Gatherer          prometheus.Gatherer
}

// Routes builds the chi router for the whole API.
//
// Middleware is applied in order: RequestID, RealIP, SlogLogger, Recoverer,
// metrics, CORS, body limit. RequestID generates a unique trace ID per
// request, RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP and
// Recoverer turns panics into HTTP 500 instead of crashing.
func (s *Server) Routes(opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(s.log))
	r.Use(chimiddleware.Recoverer)
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	if len(opts.CORSOrigins) > 0 {
		r.Use(middleware.NewCORSHandler(opts.CORSOrigins))
	}
	if opts.MaxBodyBytes > 0 {
		r.Use(middleware.NewMaxBodySizeHandler(opts.MaxBodyBytes))
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeErrorBody(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeErrorBody(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(opts.Gatherer))
	}

	requireUser := auth.RequireUser(s.tokens, s.unauthorized)

	r.Route("/auth", func(r chi.Router) {
		if opts.AuthRatePerMinute > 0 {
			r.Use(middleware.NewRateLimiter(opts.AuthRatePerMinute, s.tooManyRequests))
		}
		r.Post("/register", s.Register)
		r.Post("/login", s.Login)
		r.With(requireUser).Get("/me", s.Me)
	})

	r.Group(func(r chi.Router) {
		r.Use(requireUser)

		r.Get("/categories", s.ListCategories)
		r.Get("/categories/{id}", s.GetCategory)
		r.Get("/activities", s.ListActivities)
		r.Get("/activities/{id}", s.GetActivity)

		r.Get("/catalog", s.ListCatalog)
		r.Get("/catalog/by-activity", s.CatalogByActivity)
		r.Get("/catalog/{id}", s.GetCatalogItem)

		r.Route("/gear", func(r chi.Router) {
			r.Get("/", s.ListGear)
			r.Post("/", s.CreateGear)
			r.Get("/{id}", s.GetGear)
			r.Put("/{id}", s.UpdateGear)
			r.Delete("/{id}", s.DeleteGear)
			r.Get("/{id}/usage-stats", s.GetGearUsageStats)
		})

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.ListTrips)
			r.Post("/", s.CreateTrip)
			r.Get("/{id}", s.GetTrip)
			r.Put("/{id}", s.UpdateTrip)
			r.Delete("/{id}", s.DeleteTrip)
			r.Post("/{id}/gear", s.AddTripGear)
			r.Patch("/{id}/gear/{gearID}", s.UpdateTripGear)
			r.Delete("/{id}/gear/{gearID}", s.RemoveTripGear)
			r.Post("/{id}/complete", s.CompleteTrip)
			r.Get("/{id}/recommendations", s.GetRecommendations)
			r.Get("/{id}/forecast", s.GetForecast)
			r.Get("/{id}/export", s.ExportTrip)
		})

		r.Get("/stats", s.ListStats)
	})

	return r
}

// currentUser returns the authenticated user's ID. Routes behind RequireUser
// always have one.
func currentUser(r *http.Request) uuid.UUID {
	id, _ := auth.UserIDFromContext(r.Context())
	return id
}
