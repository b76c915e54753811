// Package format turns normalized weather results into chat text or flat
// payloads for an external renderer. Nothing here performs I/O.
package format

import (
	"fmt"
	"strings"

	"github.com/i474232898/weather-command/internal/common"
	"github.com/i474232898/weather-command/internal/weather"
)

// CurrentText renders current conditions. Line order is fixed:
// city, description, temperature, humidity, wind.
func CurrentText(c weather.CurrentConditions) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s 实时天气\n", c.City)
	fmt.Fprintf(&b, "天气: %s\n", c.Description)

	fmt.Fprintf(&b, "温度: %s°C", common.FormatNumber(c.Temperature))
	if c.FeelsLike != nil {
		fmt.Fprintf(&b, " (体感 %s°C)", common.FormatNumber(*c.FeelsLike))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "湿度: %s%%\n", common.FormatNumber(c.Humidity))

	b.WriteString("风: ")
	if c.WindDirection != nil {
		b.WriteString(*c.WindDirection)
		b.WriteString(" ")
	}
	b.WriteString(windSpeed(c.WindSpeed, c.WindUnit))

	return b.String()
}

// ForecastText renders a header followed by exactly one line per day, in input order.
func ForecastText(set weather.ForecastSet, city string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s 未来%d天天气预报", city, len(set))
	for _, d := range set {
		b.WriteString("\n")
		b.WriteString(forecastLine(d))
	}
	return b.String()
}

// forecastLine only reads fields of d.
func forecastLine(d weather.ForecastDay) string {
	return fmt.Sprintf("%s %s %s~%s°C 湿度%s%% 风%s",
		d.Date,
		dayNight(d.DayDescription, d.NightDescription),
		common.FormatNumber(d.LowTemp),
		common.FormatNumber(d.HighTemp),
		common.FormatNumber(d.Humidity),
		windSpeed(d.WindSpeed, d.WindUnit),
	)
}

// dayNight joins descriptions the way Chinese forecasts read: "晴转多云".
func dayNight(day, night string) string {
	switch {
	case night == "" || night == day:
		return day
	case day == "":
		return night
	default:
		return day + "转" + night
	}
}

func windSpeed(v float64, unit string) string {
	if unit == "" {
		unit = weather.WindKPH
	}
	if unit == weather.WindGrade {
		return common.FormatNumber(v) + unit
	}
	return common.FormatNumber(v) + " " + unit
}
