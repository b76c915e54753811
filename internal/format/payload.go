package format

import (
	"github.com/i474232898/weather-command/internal/weather"
)

// CurrentPayload flattens current conditions into template fields.
// Optional fields are omitted when the provider did not report them.
func CurrentPayload(c weather.CurrentConditions) map[string]any {
	p := map[string]any{
		"city":        c.City,
		"description": c.Description,
		"condition":   string(c.Condition),
		"temperature": c.Temperature,
		"humidity":    c.Humidity,
		"wind_speed":  c.WindSpeed,
		"wind_unit":   c.WindUnit,
	}
	if c.FeelsLike != nil {
		p["feels_like"] = *c.FeelsLike
	}
	if c.WindDirection != nil {
		p["wind_direction"] = *c.WindDirection
	}
	return p
}

// ForecastPayload flattens a forecast; days keep input order.
func ForecastPayload(set weather.ForecastSet, city string) map[string]any {
	days := make([]map[string]any, 0, len(set))
	for _, d := range set {
		days = append(days, map[string]any{
			"date":              d.Date,
			"day_description":   d.DayDescription,
			"night_description": d.NightDescription,
			"condition":         string(d.Condition),
			"high":              d.HighTemp,
			"low":               d.LowTemp,
			"humidity":          d.Humidity,
			"wind_speed":        d.WindSpeed,
			"wind_unit":         d.WindUnit,
		})
	}
	return map[string]any{
		"city":      city,
		"day_count": len(set),
		"days":      days,
	}
}
