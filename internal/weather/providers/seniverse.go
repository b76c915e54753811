package providers

import (
	"github.com/i474232898/weather-command/internal/weather"
)

// SeniverseAdapter implements weather.Adapter for Seniverse (心知天气).
// Seniverse accepts city names directly, so no geocoding step is needed.
type SeniverseAdapter struct {
	language string
	unit     string
}

var _ weather.Adapter = (*SeniverseAdapter)(nil)

func NewSeniverseAdapter() *SeniverseAdapter {
	return &SeniverseAdapter{language: "zh-Hans", unit: "c"}
}

func (a *SeniverseAdapter) Name() string            { return "seniverse" }
func (a *SeniverseAdapter) DefaultBaseURL() string  { return "https://api.seniverse.com" }
func (a *SeniverseAdapter) RequiresGeocoding() bool { return false }
func (a *SeniverseAdapter) RequiresAPIKey() bool    { return true }

// GeocodeRequest and ParseLocation only satisfy weather.Adapter; the client
// never geocodes for Seniverse because RequiresGeocoding is false.
func (a *SeniverseAdapter) GeocodeRequest(city string) weather.Request {
	return weather.Request{
		Path:  "/v3/location/search.json",
		Query: query("q", city, "language", a.language),
	}
}

func (a *SeniverseAdapter) CurrentRequest(location string) weather.Request {
	return weather.Request{
		Path:  "/v3/weather/now.json",
		Query: query("location", location, "language", a.language, "unit", a.unit),
	}
}

func (a *SeniverseAdapter) ForecastRequest(location string, days int) weather.Request {
	return weather.Request{
		Path: "/v3/weather/daily.json",
		Query: query(
			"location", location,
			"language", a.language,
			"unit", a.unit,
			"start", "0",
			"days", itoa(days),
		),
	}
}

func (a *SeniverseAdapter) ParseLocation(raw []byte) (weather.LocationKey, error) {
	var payload struct {
		Results []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"results"`
	}
	if err := decode(raw, &payload); err != nil {
		return "", err
	}
	if len(payload.Results) == 0 {
		return "", weather.ErrNoMatch
	}
	return weather.LocationKey(payload.Results[0].ID), nil
}

func (a *SeniverseAdapter) MapCurrent(raw []byte, city string) (weather.CurrentConditions, error) {
	var payload struct {
		Results []struct {
			Location struct {
				Name string `json:"name"`
			} `json:"location"`
			Now *struct {
				Text          string `json:"text"`
				Temperature   string `json:"temperature"`
				FeelsLike     string `json:"feels_like"`
				Humidity      string `json:"humidity"`
				WindDirection string `json:"wind_direction"`
				WindSpeed     string `json:"wind_speed"`
			} `json:"now"`
		} `json:"results"`
	}
	if err := decode(raw, &payload); err != nil {
		return weather.CurrentConditions{}, err
	}
	if len(payload.Results) == 0 || payload.Results[0].Now == nil {
		return weather.CurrentConditions{}, weather.ErrMissingField
	}

	res := payload.Results[0]
	now := res.Now

	temp, err := number("temperature", now.Temperature)
	if err != nil {
		return weather.CurrentConditions{}, err
	}
	feels, err := optionalNumber("feels_like", now.FeelsLike)
	if err != nil {
		return weather.CurrentConditions{}, err
	}
	humidity, err := numberOrZero("humidity", now.Humidity)
	if err != nil {
		return weather.CurrentConditions{}, err
	}
	wind, err := numberOrZero("wind_speed", now.WindSpeed)
	if err != nil {
		return weather.CurrentConditions{}, err
	}

	name := res.Location.Name
	if name == "" {
		name = city
	}

	return weather.CurrentConditions{
		City:          name,
		Description:   now.Text,
		Temperature:   temp,
		FeelsLike:     feels,
		Humidity:      humidity,
		WindDirection: optionalString(now.WindDirection),
		WindSpeed:     wind,
		WindUnit:      weather.WindKPH,
	}, nil
}

func (a *SeniverseAdapter) MapForecast(raw []byte) (weather.ForecastSet, error) {
	var payload struct {
		Results []struct {
			Daily []struct {
				Date      string `json:"date"`
				TextDay   string `json:"text_day"`
				TextNight string `json:"text_night"`
				High      string `json:"high"`
				Low       string `json:"low"`
				Humidity  string `json:"humidity"`
				WindSpeed string `json:"wind_speed"`
			} `json:"daily"`
		} `json:"results"`
	}
	if err := decode(raw, &payload); err != nil {
		return nil, err
	}
	if len(payload.Results) == 0 || len(payload.Results[0].Daily) == 0 {
		return nil, weather.ErrMissingField
	}

	set := make(weather.ForecastSet, 0, len(payload.Results[0].Daily))
	for _, d := range payload.Results[0].Daily {
		high, err := number("high", d.High)
		if err != nil {
			return nil, err
		}
		low, err := number("low", d.Low)
		if err != nil {
			return nil, err
		}
		humidity, err := numberOrZero("humidity", d.Humidity)
		if err != nil {
			return nil, err
		}
		wind, err := numberOrZero("wind_speed", d.WindSpeed)
		if err != nil {
			return nil, err
		}

		set = append(set, weather.ForecastDay{
			Date:             d.Date,
			DayDescription:   d.TextDay,
			NightDescription: d.TextNight,
			HighTemp:         high,
			LowTemp:          low,
			Humidity:         humidity,
			WindSpeed:        wind,
			WindUnit:         weather.WindKPH,
		})
	}
	return set, nil
}
