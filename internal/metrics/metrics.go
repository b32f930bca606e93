// Package metrics collects domain and HTTP metrics and exposes them for
// Prometheus scraping.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Forecast outcomes recorded by RecordForecast.
const (
	ForecastAvailable   = "available"
	ForecastUnavailable = "unavailable"
	ForecastBreakerOpen = "breaker_open"
)

// Recorder is the metrics interface used by services and the weather client.
type Recorder interface {
	RecordRecommendations(suggestions int)
	RecordTripCompleted(links int)
	RecordForecast(outcome string)
}

// Collector is the Prometheus implementation of Recorder.
type Collector struct {
	recommendations prometheus.Histogram
	tripsCompleted  prometheus.Counter
	linksFolded     prometheus.Counter
	forecasts       *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
}

var _ Recorder = (*Collector)(nil)

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		recommendations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gearplanner_recommendation_suggestions",
			Help:    "Number of suggestions returned per recommendation request.",
			Buckets: []float64{0, 5, 10, 15, 20, 25, 30},
		}),
		tripsCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gearplanner_trips_completed_total",
			Help: "Trips moved to the completed state.",
		}),
		linksFolded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "gearplanner_usage_links_folded_total",
			Help: "Trip gear links folded into usage statistics.",
		}),
		forecasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gearplanner_forecast_requests_total",
			Help: "Weather forecast lookups by outcome.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gearplanner_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gearplanner_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	reg.MustRegister(
		c.recommendations,
		c.tripsCompleted,
		c.linksFolded,
		c.forecasts,
		c.httpRequests,
		c.httpLatency,
	)
	return c
}

// RecordRecommendations observes the size of one recommendation response.
func (c *Collector) RecordRecommendations(suggestions int) {
	c.recommendations.Observe(float64(suggestions))
}

// RecordTripCompleted counts one completion and the links it folded.
func (c *Collector) RecordTripCompleted(links int) {
	c.tripsCompleted.Inc()
	c.linksFolded.Add(float64(links))
}

// RecordForecast counts one forecast lookup.
func (c *Collector) RecordForecast(outcome string) {
	c.forecasts.WithLabelValues(outcome).Inc()
}

// Middleware records the status and latency of every request, labelled by
// the matched chi route pattern so path parameters do not explode cardinality.
func (c *Collector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rc := chi.RouteContext(r.Context()); rc != nil {
			if p := rc.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		c.httpRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		c.httpLatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// Handler returns the Prometheus scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop is a Recorder that discards everything.
type Nop struct{}

func (Nop) RecordRecommendations(int) {}
func (Nop) RecordTripCompleted(int)   {}
func (Nop) RecordForecast(string)     {}
