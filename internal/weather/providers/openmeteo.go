package providers

import (
	"fmt"
	"math"
	"strings"

	"github.com/i474232898/weather-command/internal/weather"
)

const openMeteoGeocodingURL = "https://geocoding-api.open-meteo.com"

// OpenMeteoAdapter implements weather.Adapter for Open-Meteo.
// It needs no API key; cities are geocoded to a "lat,lon" key.
type OpenMeteoAdapter struct {
	geocodingURL string
}

var _ weather.Adapter = (*OpenMeteoAdapter)(nil)

// NewOpenMeteoAdapter creates the adapter. An empty geocodingURL uses the public geocoding host.
func NewOpenMeteoAdapter(geocodingURL string) *OpenMeteoAdapter {
	if geocodingURL == "" {
		geocodingURL = openMeteoGeocodingURL
	}
	return &OpenMeteoAdapter{geocodingURL: geocodingURL}
}

func (a *OpenMeteoAdapter) Name() string            { return "openmeteo" }
func (a *OpenMeteoAdapter) DefaultBaseURL() string  { return "https://api.open-meteo.com" }
func (a *OpenMeteoAdapter) RequiresGeocoding() bool { return true }
func (a *OpenMeteoAdapter) RequiresAPIKey() bool    { return false }

func (a *OpenMeteoAdapter) GeocodeRequest(city string) weather.Request {
	return weather.Request{
		BaseURL: a.geocodingURL,
		Path:    "/v1/search",
		Query:   query("name", city, "count", "1", "language", "zh", "format", "json"),
	}
}

func (a *OpenMeteoAdapter) CurrentRequest(location string) weather.Request {
	lat, lon := splitLatLon(location)
	return weather.Request{
		Path: "/v1/forecast",
		Query: query(
			"latitude", lat,
			"longitude", lon,
			"current", "temperature_2m,relative_humidity_2m,apparent_temperature,weather_code,wind_speed_10m,wind_direction_10m",
			"timezone", "auto",
		),
	}
}

func (a *OpenMeteoAdapter) ForecastRequest(location string, days int) weather.Request {
	lat, lon := splitLatLon(location)
	return weather.Request{
		Path: "/v1/forecast",
		Query: query(
			"latitude", lat,
			"longitude", lon,
			"daily", "weather_code,temperature_2m_max,temperature_2m_min,relative_humidity_2m_mean,wind_speed_10m_max",
			"forecast_days", itoa(days),
			"timezone", "auto",
		),
	}
}

func (a *OpenMeteoAdapter) ParseLocation(raw []byte) (weather.LocationKey, error) {
	var payload struct {
		Results []struct {
			Name      string  `json:"name"`
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"results"`
	}
	if err := decode(raw, &payload); err != nil {
		return "", err
	}
	if len(payload.Results) == 0 {
		return "", weather.ErrNoMatch
	}
	r := payload.Results[0]
	return weather.LocationKey(fmt.Sprintf("%.4f,%.4f", r.Latitude, r.Longitude)), nil
}

func (a *OpenMeteoAdapter) MapCurrent(raw []byte, city string) (weather.CurrentConditions, error) {
	var payload struct {
		Current *struct {
			Temperature   float64 `json:"temperature_2m"`
			Humidity      float64 `json:"relative_humidity_2m"`
			Apparent      float64 `json:"apparent_temperature"`
			WeatherCode   int     `json:"weather_code"`
			WindSpeed     float64 `json:"wind_speed_10m"`
			WindDirection float64 `json:"wind_direction_10m"`
		} `json:"current"`
	}
	if err := decode(raw, &payload); err != nil {
		return weather.CurrentConditions{}, err
	}
	if payload.Current == nil {
		return weather.CurrentConditions{}, weather.ErrMissingField
	}

	cur := payload.Current
	feels := cur.Apparent
	dir := compassDirection(cur.WindDirection)

	return weather.CurrentConditions{
		City:          city,
		Description:   describeOpenMeteoCode(cur.WeatherCode),
		Temperature:   cur.Temperature,
		FeelsLike:     &feels,
		Humidity:      cur.Humidity,
		WindDirection: &dir,
		WindSpeed:     cur.WindSpeed,
		WindUnit:      weather.WindKPH,
		Condition:     mapOpenMeteoCondition(cur.WeatherCode),
	}, nil
}

func (a *OpenMeteoAdapter) MapForecast(raw []byte) (weather.ForecastSet, error) {
	var payload struct {
		Daily *struct {
			Time        []string  `json:"time"`
			WeatherCode []int     `json:"weather_code"`
			TempMax     []float64 `json:"temperature_2m_max"`
			TempMin     []float64 `json:"temperature_2m_min"`
			Humidity    []float64 `json:"relative_humidity_2m_mean"`
			WindSpeed   []float64 `json:"wind_speed_10m_max"`
		} `json:"daily"`
	}
	if err := decode(raw, &payload); err != nil {
		return nil, err
	}
	if payload.Daily == nil || len(payload.Daily.Time) == 0 {
		return nil, weather.ErrMissingField
	}

	d := payload.Daily
	n := len(d.Time)
	if len(d.WeatherCode) != n || len(d.TempMax) != n || len(d.TempMin) != n {
		return nil, weather.MalformedError(fmt.Errorf("daily columns have mismatched lengths"))
	}

	set := make(weather.ForecastSet, 0, n)
	for i := 0; i < n; i++ {
		day := weather.ForecastDay{
			Date:           d.Time[i],
			DayDescription: describeOpenMeteoCode(d.WeatherCode[i]),
			HighTemp:       d.TempMax[i],
			LowTemp:        d.TempMin[i],
			WindUnit:       weather.WindKPH,
			Condition:      mapOpenMeteoCondition(d.WeatherCode[i]),
		}
		if i < len(d.Humidity) {
			day.Humidity = d.Humidity[i]
		}
		if i < len(d.WindSpeed) {
			day.WindSpeed = d.WindSpeed[i]
		}
		set = append(set, day)
	}
	return set, nil
}

func splitLatLon(location string) (string, string) {
	lat, lon, _ := strings.Cut(location, ",")
	return strings.TrimSpace(lat), strings.TrimSpace(lon)
}

func mapOpenMeteoCondition(code int) weather.Condition {
	// Mapping based on WMO weather codes (simplified).
	switch {
	case code == 0:
		return weather.ConditionClear
	case code >= 1 && code <= 3:
		return weather.ConditionCloudy
	case code == 45 || code == 48:
		return weather.ConditionMist
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return weather.ConditionRain
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return weather.ConditionSnow
	case code >= 95:
		return weather.ConditionStorm
	default:
		return weather.ConditionUnknown
	}
}

func describeOpenMeteoCode(code int) string {
	switch {
	case code == 0:
		return "晴"
	case code == 1 || code == 2:
		return "多云"
	case code == 3:
		return "阴"
	case code == 45 || code == 48:
		return "雾"
	case code >= 51 && code <= 57:
		return "毛毛雨"
	case code == 61 || code == 80:
		return "小雨"
	case code == 63 || code == 81:
		return "中雨"
	case code == 65 || code == 82:
		return "大雨"
	case code == 66 || code == 67:
		return "冻雨"
	case code == 71 || code == 85:
		return "小雪"
	case code == 73:
		return "中雪"
	case code == 75 || code == 86:
		return "大雪"
	case code == 77:
		return "雪粒"
	case code >= 95:
		return "雷阵雨"
	default:
		return "未知"
	}
}

var compassPoints = []string{"北", "东北", "东", "东南", "南", "西南", "西", "西北"}

func compassDirection(deg float64) string {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	i := int(math.Round(d/45)) % len(compassPoints)
	return compassPoints[i]
}
