// Package weather fetches best-effort trip forecasts from OpenWeatherMap.
//
// Every failure mode degrades to an unavailable domain.Forecast; callers never
// see an error from this package.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/pkordes/gear-planner/internal/domain"
	"github.com/pkordes/gear-planner/internal/metrics"
)

// DefaultBaseURL is the public OpenWeatherMap endpoint.
const DefaultBaseURL = "https://api.openweathermap.org"

// windyThreshold is the wind speed (m/s) above which a trip is tagged Windy.
const windyThreshold = 8.0

const (
	msgNoKey       = "Weather forecast is not configured"
	msgNoLocation  = "Location could not be found"
	msgUnavailable = "Weather service unavailable"
	msgBreakerOpen = "Weather service temporarily unavailable"
	msgNoDates     = "Weather forecast not available for these dates"
)

// conditionMap folds OpenWeatherMap's main condition into the app's tags.
// Anything not listed maps to Cloudy.
var conditionMap = map[string]string{
	"Clear":        domain.WeatherSunny,
	"Clouds":       domain.WeatherCloudy,
	"Mist":         domain.WeatherCloudy,
	"Fog":          domain.WeatherCloudy,
	"Haze":         domain.WeatherCloudy,
	"Rain":         domain.WeatherRainy,
	"Drizzle":      domain.WeatherRainy,
	"Thunderstorm": domain.WeatherRainy,
	"Snow":         domain.WeatherSnowy,
}

// MapCondition returns the simplified tag for an OpenWeatherMap condition.
func MapCondition(main string) string {
	if tag, ok := conditionMap[main]; ok {
		return tag
	}
	return domain.WeatherCloudy
}

// Config holds the client settings.
type Config struct {
	APIKey        string
	BaseURL       string        // defaults to DefaultBaseURL
	Timeout       time.Duration // per request; defaults to 5s
	RatePerMinute int           // outbound budget; defaults to 50

	// Breaker trips after this many consecutive failures and stays open for
	// BreakerCooldown. Defaults: 5 failures, 30s.
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// Client is an OpenWeatherMap forecast client. It is safe for concurrent use.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[[]byte]
	metrics metrics.Recorder
	log     *slog.Logger
}

// NewClient builds a Client. A nil recorder disables metrics; a nil logger
// means slog.Default().
func NewClient(cfg Config, rec metrics.Recorder, log *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}
	if cfg.RatePerMinute <= 0 {
		cfg.RatePerMinute = 50
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = 5
	}
	if cfg.BreakerCooldown <= 0 {
		cfg.BreakerCooldown = 30 * time.Second
	}
	if rec == nil {
		rec = metrics.Nop{}
	}
	if log == nil {
		log = slog.Default()
	}

	c := &Client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RatePerMinute)), cfg.RatePerMinute),
		metrics: rec,
		log:     log,
	}
	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "openweathermap",
		MaxRequests: 1,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("weather circuit breaker state change",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})
	return c
}

// Forecast summarises the forecast for location over the inclusive date range
// [start, end]. It always returns a value; on any failure Available is false.
func (c *Client) Forecast(ctx context.Context, location string, start, end time.Time) domain.Forecast {
	if c.cfg.APIKey == "" {
		c.metrics.RecordForecast(metrics.ForecastUnavailable)
		return unavailable(msgNoKey)
	}

	fc, err := c.fetch(ctx, location)
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		c.metrics.RecordForecast(metrics.ForecastBreakerOpen)
		return unavailable(msgBreakerOpen)
	case errors.Is(err, errNoLocation):
		c.metrics.RecordForecast(metrics.ForecastUnavailable)
		return unavailable(msgNoLocation)
	case err != nil:
		c.log.WarnContext(ctx, "weather forecast failed", "location", location, "error", err)
		c.metrics.RecordForecast(metrics.ForecastUnavailable)
		return unavailable(msgUnavailable)
	}

	result := summarise(fc.List, start, end)
	if result.Available {
		c.metrics.RecordForecast(metrics.ForecastAvailable)
	} else {
		c.metrics.RecordForecast(metrics.ForecastUnavailable)
	}
	return result
}

var errNoLocation = errors.New("location not found")

type geoMatch struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

type forecastResponse struct {
	List []interval `json:"list"`
}

type interval struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
}

func (c *Client) fetch(ctx context.Context, location string) (forecastResponse, error) {
	var matches []geoMatch
	geo := url.Values{
		"q":     {location},
		"limit": {"1"},
		"appid": {c.cfg.APIKey},
	}
	if err := c.getJSON(ctx, "/geo/1.0/direct", geo, &matches); err != nil {
		return forecastResponse{}, fmt.Errorf("weather.Client.fetch: geocode: %w", err)
	}
	if len(matches) == 0 {
		return forecastResponse{}, errNoLocation
	}

	var fc forecastResponse
	params := url.Values{
		"lat":   {strconv.FormatFloat(matches[0].Lat, 'f', -1, 64)},
		"lon":   {strconv.FormatFloat(matches[0].Lon, 'f', -1, 64)},
		"appid": {c.cfg.APIKey},
		"units": {"metric"},
	}
	if err := c.getJSON(ctx, "/data/2.5/forecast", params, &fc); err != nil {
		return forecastResponse{}, fmt.Errorf("weather.Client.fetch: forecast: %w", err)
	}
	return fc, nil
}

// getJSON performs one rate-limited, breaker-guarded GET and decodes the body.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, dst any) error {
	body, err := c.breaker.Execute(func() ([]byte, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path+"?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dst)
}

// summarise aggregates the intervals whose UTC date falls in [start, end].
func summarise(list []interval, start, end time.Time) domain.Forecast {
	from, to := start.Format(time.DateOnly), end.Format(time.DateOnly)

	var window []interval
	for _, it := range list {
		d := time.Unix(it.Dt, 0).UTC().Format(time.DateOnly)
		if d >= from && d <= to {
			window = append(window, it)
		}
	}
	if len(window) == 0 {
		return unavailable(msgNoDates)
	}

	f := domain.Forecast{Available: true}
	minTemp, maxTemp, maxWind := window[0].Main.Temp, window[0].Main.Temp, 0.0
	seen := map[string]bool{}
	for i, it := range window {
		minTemp = min(minTemp, it.Main.Temp)
		maxTemp = max(maxTemp, it.Main.Temp)
		maxWind = max(maxWind, it.Wind.Speed)

		main, desc := "", ""
		if len(it.Weather) > 0 {
			main, desc = it.Weather[0].Main, it.Weather[0].Description
		}
		cond := MapCondition(main)
		seen[cond] = true

		if i%2 == 0 {
			f.Details = append(f.Details, domain.ForecastDetail{
				Date:        time.Unix(it.Dt, 0).UTC().Format(time.DateOnly),
				Temp:        it.Main.Temp,
				Condition:   cond,
				Description: desc,
			})
		}
	}
	if maxWind > windyThreshold {
		seen[domain.WeatherWindy] = true
	}

	f.TempMin, f.TempMax = int(minTemp), int(maxTemp)
	for cond := range seen {
		f.Conditions = append(f.Conditions, cond)
	}
	slices.Sort(f.Conditions)
	return f
}

func unavailable(msg string) domain.Forecast {
	return domain.Forecast{Available: false, Message: msg}
}
