package weather

import (
	"net/url"
)

// Request describes one outbound GET relative to the provider base URL.
// The client adds authentication.
type Request struct {
	// BaseURL overrides the client base for providers whose geocoding lives on another host.
	BaseURL string
	Path    string
	Query   url.Values
}

// Adapter abstracts a weather data source (e.g. QWeather, Amap, Seniverse).
// Adapters only know paths, parameters and field mapping; the Client owns
// transport, auth and error classification.
type Adapter interface {
	Name() string
	DefaultBaseURL() string
	RequiresGeocoding() bool
	RequiresAPIKey() bool

	GeocodeRequest(city string) Request
	CurrentRequest(location string) Request
	ForecastRequest(location string, days int) Request

	// ParseLocation returns the first candidate's key, or ErrNoMatch.
	ParseLocation(raw []byte) (LocationKey, error)
	// MapCurrent returns ErrMissingField when the top-level field is absent.
	MapCurrent(raw []byte, city string) (CurrentConditions, error)
	MapForecast(raw []byte) (ForecastSet, error)
}
