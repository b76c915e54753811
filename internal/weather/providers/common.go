package providers

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/i474232898/weather-command/internal/common"
	"github.com/i474232898/weather-command/internal/weather"
)

// New returns the adapter registered under name.
func New(name string) (weather.Adapter, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "seniverse":
		return NewSeniverseAdapter(), true
	case "amap":
		return NewAmapAdapter(), true
	case "qweather":
		return NewQWeatherAdapter(), true
	case "openmeteo", "open-meteo":
		return NewOpenMeteoAdapter(""), true
	default:
		return nil, false
	}
}

// Names lists the registered adapter names.
func Names() []string {
	return []string{"seniverse", "amap", "qweather", "openmeteo"}
}

func decode(raw []byte, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return weather.MalformedError(err)
	}
	return nil
}

// number parses a required numeric string field.
func number(field, s string) (float64, error) {
	v, err := common.ParseNumber(field, s)
	if err != nil {
		return 0, weather.MalformedError(err)
	}
	return v, nil
}

// numberOrZero treats an empty string as 0; free API plans omit some fields.
func numberOrZero(field, s string) (float64, error) {
	if strings.TrimSpace(s) == "" {
		return 0, nil
	}
	return number(field, s)
}

func optionalNumber(field, s string) (*float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	v, err := number(field, s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func optionalString(s string) *string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return &s
}

func query(kv ...string) url.Values {
	values := url.Values{}
	for i := 0; i+1 < len(kv); i += 2 {
		values.Set(kv[i], kv[i+1])
	}
	return values
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
