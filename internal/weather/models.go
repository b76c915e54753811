package weather

import (
	"time"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// OutputMode selects how command replies are delivered.
type OutputMode string

const (
	OutputText  OutputMode = "text"
	OutputImage OutputMode = "image"
)

// AuthMode selects where the API key travels on outbound requests.
type AuthMode string

const (
	AuthQuery  AuthMode = "query"
	AuthHeader AuthMode = "header"
)

// DefaultAuthHeader is used when AuthMode is AuthHeader and no header name is configured.
const DefaultAuthHeader = "X-Provider-Api-Key"

// DefaultTimeout bounds every outbound provider call.
const DefaultTimeout = 10 * time.Second

// ProviderConfig is the immutable per-client provider configuration.
type ProviderConfig struct {
	BaseURL      string
	APIKey       string
	DefaultCity  string
	OutputMode   OutputMode
	AuthMode     AuthMode
	AuthHeader   string
	ForecastDays int
	Timeout      time.Duration
}

// LocationKey is an opaque provider-specific location identifier.
type LocationKey string

// CurrentConditions is the normalized "now" view for a city.
type CurrentConditions struct {
	City          string    `json:"city"`
	Description   string    `json:"description"`
	Temperature   float64   `json:"temperatureC"`
	FeelsLike     *float64  `json:"feelsLikeC,omitempty"`
	Humidity      float64   `json:"humidityPercent"` // 0..100
	WindDirection *string   `json:"windDirection,omitempty"`
	WindSpeed     float64   `json:"windSpeed"`
	WindUnit      string    `json:"windUnit,omitempty"`
	Condition     Condition `json:"condition"`
}

// ForecastDay is one day of a multi-day forecast.
type ForecastDay struct {
	Date             string    `json:"date"` // YYYY-MM-DD
	DayDescription   string    `json:"dayDescription"`
	NightDescription string    `json:"nightDescription"`
	HighTemp         float64   `json:"highC"`
	LowTemp          float64   `json:"lowC"`
	Humidity         float64   `json:"humidityPercent"`
	WindSpeed        float64   `json:"windSpeed"`
	WindUnit         string    `json:"windUnit,omitempty"`
	Condition        Condition `json:"condition"`
}

// Wind units reported by providers.
const (
	WindKPH   = "km/h"
	WindGrade = "级"
)

// ForecastSet is ordered by Date ascending.
type ForecastSet []ForecastDay
