package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"
)

// Client looks up weather through a single provider Adapter.
// It performs no retries and keeps no cache: every call is one attempt.
type Client struct {
	adapter Adapter
	cfg     ProviderConfig
	http    *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewClient creates a Client. A nil httpClient gets one with cfg.Timeout.
func NewClient(adapter Adapter, cfg ProviderConfig, httpClient *http.Client) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = adapter.DefaultBaseURL()
	}
	if cfg.AuthMode == "" {
		cfg.AuthMode = AuthQuery
	}
	if cfg.AuthHeader == "" {
		cfg.AuthHeader = DefaultAuthHeader
	}
	if cfg.OutputMode == "" {
		cfg.OutputMode = OutputText
	}
	if cfg.ForecastDays <= 0 {
		cfg.ForecastDays = 3
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		adapter: adapter,
		cfg:     cfg,
		http:    httpClient,
		circuit: newCircuitBreaker(adapter.Name()),
	}
}

// Provider returns the adapter name.
func (c *Client) Provider() string {
	return c.adapter.Name()
}

// CityOrDefault returns the trimmed city, or the configured default when blank.
func (c *Client) CityOrDefault(city string) string {
	if city = strings.TrimSpace(city); city != "" {
		return city
	}
	return strings.TrimSpace(c.cfg.DefaultCity)
}

// CheckConfig reports Misconfigured when the adapter needs a key and none is set.
func (c *Client) CheckConfig() error {
	if c.adapter.RequiresAPIKey() && strings.TrimSpace(c.cfg.APIKey) == "" {
		return newError("config", KindMisconfigured, ErrMissingAPIKey)
	}
	return nil
}

// ResolveLocation maps a free-text city to the provider's location key.
// Providers that accept city names directly get the city back unchanged.
// Zero matches, transport failures and malformed bodies all yield false;
// the cause is only logged.
func (c *Client) ResolveLocation(ctx context.Context, city string) (LocationKey, bool) {
	if !c.adapter.RequiresGeocoding() {
		return LocationKey(city), city != ""
	}
	if err := c.CheckConfig(); err != nil {
		log.Printf("ERROR: %s geocoding skipped for %q: %v", c.adapter.Name(), city, err)
		return "", false
	}

	raw, err := c.get(ctx, c.adapter.GeocodeRequest(city))
	if err != nil {
		log.Printf("ERROR: %s geocoding failed for %q: %v", c.adapter.Name(), city, err)
		return "", false
	}

	key, err := c.adapter.ParseLocation(raw)
	if err != nil {
		if errors.Is(err, ErrNoMatch) {
			log.Printf("INFO: %s geocoding found no match for %q", c.adapter.Name(), city)
		} else {
			log.Printf("ERROR: %s geocoding response for %q unusable: %v", c.adapter.Name(), city, err)
		}
		return "", false
	}
	if key == "" {
		return "", false
	}

	log.Printf("DEBUG: %s resolved %q to %s", c.adapter.Name(), city, key)
	return key, true
}

// FetchCurrent fetches current conditions for a location key (or city, for
// providers without geocoding).
func (c *Client) FetchCurrent(ctx context.Context, location string) (CurrentConditions, error) {
	return c.fetchCurrent(ctx, location, location)
}

// FetchForecast fetches the multi-day forecast for a location key or city.
func (c *Client) FetchForecast(ctx context.Context, location string) (ForecastSet, error) {
	const op = "forecast"

	if err := c.CheckConfig(); err != nil {
		return nil, err
	}

	raw, err := c.get(ctx, c.adapter.ForecastRequest(location, c.cfg.ForecastDays))
	if err != nil {
		return nil, classifyTransport(op, err)
	}

	set, err := c.adapter.MapForecast(raw)
	if err != nil {
		return nil, classifyMapping(op, err)
	}
	if len(set) == 0 {
		return nil, newError(op, KindNoData, ErrMissingField)
	}
	if len(set) > c.cfg.ForecastDays {
		set = set[:c.cfg.ForecastDays]
	}

	for i := range set {
		if err := checkHumidity(set[i].Humidity); err != nil {
			return nil, newError(op, KindMalformedResponse, err)
		}
		if set[i].Condition == "" {
			set[i].Condition = ClassifyCondition(set[i].DayDescription)
		}
	}
	return set, nil
}

// Current resolves city (falling back to the default city) and fetches current conditions.
func (c *Client) Current(ctx context.Context, city string) (CurrentConditions, error) {
	city = c.CityOrDefault(city)
	loc, err := c.locate(ctx, "current", city)
	if err != nil {
		return CurrentConditions{}, err
	}
	return c.fetchCurrent(ctx, string(loc), city)
}

// Forecast resolves city (falling back to the default city) and fetches the forecast.
func (c *Client) Forecast(ctx context.Context, city string) (ForecastSet, error) {
	city = c.CityOrDefault(city)
	loc, err := c.locate(ctx, "forecast", city)
	if err != nil {
		return nil, err
	}
	return c.FetchForecast(ctx, string(loc))
}

func (c *Client) locate(ctx context.Context, op, city string) (LocationKey, error) {
	if err := c.CheckConfig(); err != nil {
		return "", err
	}
	if city == "" {
		return "", newError(op, KindGeocodingFailure, errors.New("no city given and no default city configured"))
	}

	key, ok := c.ResolveLocation(ctx, city)
	if !ok {
		return "", newError(op, KindGeocodingFailure, fmt.Errorf("%w: %s", ErrNoMatch, city))
	}
	return key, nil
}

func (c *Client) fetchCurrent(ctx context.Context, location, city string) (CurrentConditions, error) {
	const op = "current"

	if err := c.CheckConfig(); err != nil {
		return CurrentConditions{}, err
	}

	raw, err := c.get(ctx, c.adapter.CurrentRequest(location))
	if err != nil {
		return CurrentConditions{}, classifyTransport(op, err)
	}

	cur, err := c.adapter.MapCurrent(raw, city)
	if err != nil {
		return CurrentConditions{}, classifyMapping(op, err)
	}
	if err := checkHumidity(cur.Humidity); err != nil {
		return CurrentConditions{}, newError(op, KindMalformedResponse, err)
	}
	if cur.City == "" {
		cur.City = city
	}
	if cur.Condition == "" {
		cur.Condition = ClassifyCondition(cur.Description)
	}
	return cur, nil
}

func (c *Client) get(ctx context.Context, r Request) ([]byte, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		values := url.Values{}
		for k, v := range r.Query {
			values[k] = append([]string(nil), v...)
		}
		if c.cfg.APIKey != "" && c.cfg.AuthMode == AuthQuery {
			values.Set("key", c.cfg.APIKey)
		}

		base := c.cfg.BaseURL
		if r.BaseURL != "" {
			base = r.BaseURL
		}
		u := strings.TrimRight(base, "/") + r.Path
		if len(values) > 0 {
			u = fmt.Sprintf("%s?%s", u, values.Encode())
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return nil, err
		}
		if c.cfg.APIKey != "" && c.cfg.AuthMode == AuthHeader {
			req.Header.Set(c.cfg.AuthHeader, c.cfg.APIKey)
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	// The configured timeout holds even when the shared http.Client has none.
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	return doRequest(ctx, c.http, c.circuit, buildRequest)
}

func classifyTransport(op string, err error) *Error {
	if errors.Is(err, errUnexpected) {
		return newError(op, KindNoData, err)
	}
	return newError(op, KindNetwork, err)
}

func checkHumidity(h float64) error {
	if math.IsNaN(h) || h < 0 || h > 100 {
		return fmt.Errorf("humidity %v out of range", h)
	}
	return nil
}
