package providers

import (
	"fmt"

	"github.com/i474232898/weather-command/internal/common"
	"github.com/i474232898/weather-command/internal/weather"
)

// AmapAdapter implements weather.Adapter for the Amap (高德) weather API.
// Weather is indexed by adcode, which is resolved through the geocoding endpoint.
type AmapAdapter struct{}

var _ weather.Adapter = (*AmapAdapter)(nil)

func NewAmapAdapter() *AmapAdapter {
	return &AmapAdapter{}
}

func (a *AmapAdapter) Name() string            { return "amap" }
func (a *AmapAdapter) DefaultBaseURL() string  { return "https://restapi.amap.com" }
func (a *AmapAdapter) RequiresGeocoding() bool { return true }
func (a *AmapAdapter) RequiresAPIKey() bool    { return true }

func (a *AmapAdapter) GeocodeRequest(city string) weather.Request {
	return weather.Request{
		Path:  "/v3/geocode/geo",
		Query: query("address", city),
	}
}

func (a *AmapAdapter) CurrentRequest(location string) weather.Request {
	return weather.Request{
		Path:  "/v3/weather/weatherInfo",
		Query: query("city", location, "extensions", "base"),
	}
}

// ForecastRequest ignores days: Amap always returns its fixed 4-day window.
func (a *AmapAdapter) ForecastRequest(location string, _ int) weather.Request {
	return weather.Request{
		Path:  "/v3/weather/weatherInfo",
		Query: query("city", location, "extensions", "all"),
	}
}

func (a *AmapAdapter) ParseLocation(raw []byte) (weather.LocationKey, error) {
	var payload struct {
		Status   string `json:"status"`
		Info     string `json:"info"`
		Geocodes []struct {
			Adcode string `json:"adcode"`
		} `json:"geocodes"`
	}
	if err := decode(raw, &payload); err != nil {
		return "", err
	}
	if payload.Status == "0" {
		return "", fmt.Errorf("amap geocoding: %s", payload.Info)
	}
	if len(payload.Geocodes) == 0 || payload.Geocodes[0].Adcode == "" {
		return "", weather.ErrNoMatch
	}
	return weather.LocationKey(payload.Geocodes[0].Adcode), nil
}

func (a *AmapAdapter) MapCurrent(raw []byte, city string) (weather.CurrentConditions, error) {
	var payload struct {
		Lives []struct {
			City          string `json:"city"`
			Weather       string `json:"weather"`
			Temperature   string `json:"temperature"`
			WindDirection string `json:"winddirection"`
			WindPower     string `json:"windpower"`
			Humidity      string `json:"humidity"`
		} `json:"lives"`
	}
	if err := decode(raw, &payload); err != nil {
		return weather.CurrentConditions{}, err
	}
	if len(payload.Lives) == 0 {
		return weather.CurrentConditions{}, weather.ErrMissingField
	}

	live := payload.Lives[0]

	temp, err := number("temperature", live.Temperature)
	if err != nil {
		return weather.CurrentConditions{}, err
	}
	humidity, err := numberOrZero("humidity", live.Humidity)
	if err != nil {
		return weather.CurrentConditions{}, err
	}
	wind, err := windPower(live.WindPower)
	if err != nil {
		return weather.CurrentConditions{}, err
	}

	name := live.City
	if name == "" {
		name = city
	}

	return weather.CurrentConditions{
		City:          name,
		Description:   live.Weather,
		Temperature:   temp,
		Humidity:      humidity,
		WindDirection: optionalString(live.WindDirection),
		WindSpeed:     wind,
		WindUnit:      weather.WindGrade,
	}, nil
}

func (a *AmapAdapter) MapForecast(raw []byte) (weather.ForecastSet, error) {
	var payload struct {
		Forecasts []struct {
			Casts []struct {
				Date         string `json:"date"`
				DayWeather   string `json:"dayweather"`
				NightWeather string `json:"nightweather"`
				DayTemp      string `json:"daytemp"`
				NightTemp    string `json:"nighttemp"`
				DayPower     string `json:"daypower"`
			} `json:"casts"`
		} `json:"forecasts"`
	}
	if err := decode(raw, &payload); err != nil {
		return nil, err
	}
	if len(payload.Forecasts) == 0 || len(payload.Forecasts[0].Casts) == 0 {
		return nil, weather.ErrMissingField
	}

	casts := payload.Forecasts[0].Casts
	set := make(weather.ForecastSet, 0, len(casts))
	for _, c := range casts {
		high, err := number("daytemp", c.DayTemp)
		if err != nil {
			return nil, err
		}
		low, err := number("nighttemp", c.NightTemp)
		if err != nil {
			return nil, err
		}
		wind, err := windPower(c.DayPower)
		if err != nil {
			return nil, err
		}

		// Amap casts carry no humidity; it stays 0.
		set = append(set, weather.ForecastDay{
			Date:             c.Date,
			DayDescription:   c.DayWeather,
			NightDescription: c.NightWeather,
			HighTemp:         high,
			LowTemp:          low,
			WindSpeed:        wind,
			WindUnit:         weather.WindGrade,
		})
	}
	return set, nil
}

// windPower converts Amap's Beaufort grade strings ("≤3", "4-5") to a number.
func windPower(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := common.FirstNumber("windpower", s)
	if err != nil {
		return 0, weather.MalformedError(err)
	}
	return v, nil
}
