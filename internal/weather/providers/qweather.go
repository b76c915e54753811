package providers

import (
	"github.com/i474232898/weather-command/internal/weather"
)

// QWeatherAdapter implements weather.Adapter for QWeather (和风天气).
// Weather endpoints take a location id resolved via the GeoAPI city lookup.
// Accounts on a dedicated API host should set WEATHER_API_BASE to it.
type QWeatherAdapter struct {
	lang string
}

var _ weather.Adapter = (*QWeatherAdapter)(nil)

func NewQWeatherAdapter() *QWeatherAdapter {
	return &QWeatherAdapter{lang: "zh"}
}

func (a *QWeatherAdapter) Name() string            { return "qweather" }
func (a *QWeatherAdapter) DefaultBaseURL() string  { return "https://devapi.qweather.com" }
func (a *QWeatherAdapter) RequiresGeocoding() bool { return true }
func (a *QWeatherAdapter) RequiresAPIKey() bool    { return true }

func (a *QWeatherAdapter) GeocodeRequest(city string) weather.Request {
	return weather.Request{
		Path:  "/geo/v2/city/lookup",
		Query: query("location", city, "lang", a.lang),
	}
}

func (a *QWeatherAdapter) CurrentRequest(location string) weather.Request {
	return weather.Request{
		Path:  "/v7/weather/now",
		Query: query("location", location, "lang", a.lang),
	}
}

func (a *QWeatherAdapter) ForecastRequest(location string, days int) weather.Request {
	window := "3d"
	if days > 3 {
		window = "7d"
	}
	return weather.Request{
		Path:  "/v7/weather/" + window,
		Query: query("location", location, "lang", a.lang),
	}
}

func (a *QWeatherAdapter) ParseLocation(raw []byte) (weather.LocationKey, error) {
	var payload struct {
		Code     string `json:"code"`
		Location []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"location"`
	}
	if err := decode(raw, &payload); err != nil {
		return "", err
	}
	if len(payload.Location) == 0 || payload.Location[0].ID == "" {
		return "", weather.ErrNoMatch
	}
	return weather.LocationKey(payload.Location[0].ID), nil
}

func (a *QWeatherAdapter) MapCurrent(raw []byte, city string) (weather.CurrentConditions, error) {
	var payload struct {
		Now *struct {
			Temp      string `json:"temp"`
			FeelsLike string `json:"feelsLike"`
			Text      string `json:"text"`
			WindDir   string `json:"windDir"`
			WindSpeed string `json:"windSpeed"`
			Humidity  string `json:"humidity"`
		} `json:"now"`
	}
	if err := decode(raw, &payload); err != nil {
		return weather.CurrentConditions{}, err
	}
	if payload.Now == nil {
		return weather.CurrentConditions{}, weather.ErrMissingField
	}

	now := payload.Now

	temp, err := number("temp", now.Temp)
	if err != nil {
		return weather.CurrentConditions{}, err
	}
	feels, err := optionalNumber("feelsLike", now.FeelsLike)
	if err != nil {
		return weather.CurrentConditions{}, err
	}
	humidity, err := numberOrZero("humidity", now.Humidity)
	if err != nil {
		return weather.CurrentConditions{}, err
	}
	wind, err := numberOrZero("windSpeed", now.WindSpeed)
	if err != nil {
		return weather.CurrentConditions{}, err
	}

	return weather.CurrentConditions{
		City:          city,
		Description:   now.Text,
		Temperature:   temp,
		FeelsLike:     feels,
		Humidity:      humidity,
		WindDirection: optionalString(now.WindDir),
		WindSpeed:     wind,
		WindUnit:      weather.WindKPH,
	}, nil
}

func (a *QWeatherAdapter) MapForecast(raw []byte) (weather.ForecastSet, error) {
	var payload struct {
		Daily []struct {
			FxDate       string `json:"fxDate"`
			TempMax      string `json:"tempMax"`
			TempMin      string `json:"tempMin"`
			TextDay      string `json:"textDay"`
			TextNight    string `json:"textNight"`
			WindSpeedDay string `json:"windSpeedDay"`
			Humidity     string `json:"humidity"`
		} `json:"daily"`
	}
	if err := decode(raw, &payload); err != nil {
		return nil, err
	}
	if len(payload.Daily) == 0 {
		return nil, weather.ErrMissingField
	}

	set := make(weather.ForecastSet, 0, len(payload.Daily))
	for _, d := range payload.Daily {
		high, err := number("tempMax", d.TempMax)
		if err != nil {
			return nil, err
		}
		low, err := number("tempMin", d.TempMin)
		if err != nil {
			return nil, err
		}
		humidity, err := numberOrZero("humidity", d.Humidity)
		if err != nil {
			return nil, err
		}
		wind, err := numberOrZero("windSpeedDay", d.WindSpeedDay)
		if err != nil {
			return nil, err
		}

		set = append(set, weather.ForecastDay{
			Date:             d.FxDate,
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
