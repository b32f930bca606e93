package domain

// Simplified weather condition tags used by trips, the catalog and forecasts.
const (
	WeatherSunny  = "Sunny"
	WeatherCloudy = "Cloudy"
	WeatherRainy  = "Rainy"
	WeatherSnowy  = "Snowy"
	WeatherWindy  = "Windy"
)

// Forecast is the best-effort weather summary for a trip's location and dates.
// When Available is false only Message is meaningful.
type Forecast struct {
	Available  bool
	Message    string
	TempMin    int
	TempMax    int
	Conditions []string
	Details    []ForecastDetail
}

// ForecastDetail is a single sampled forecast interval.
type ForecastDetail struct {
	Date        string // "2006-01-02"
	Temp        float64
	Condition   string
	Description string
}
