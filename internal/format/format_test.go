package format

import (
	"strings"
	"testing"

	"github.com/i474232898/weather-command/internal/weather"
)

func ptr[T any](v T) *T { return &v }

func TestCurrentTextLineOrder(t *testing.T) {
	c := weather.CurrentConditions{
		City:          "北京",
		Description:   "晴",
		Temperature:   25,
		FeelsLike:     ptr(26.5),
		Humidity:      40,
		WindDirection: ptr("北"),
		WindSpeed:     10,
		WindUnit:      weather.WindKPH,
	}

	got := CurrentText(c)
	want := "北京 实时天气\n天气: 晴\n温度: 25°C (体感 26.5°C)\n湿度: 40%\n风: 北 10 km/h"
	if got != want {
		t.Fatalf("unexpected text:\n%s\nwant:\n%s", got, want)
	}

	for _, field := range []string{"北京", "晴", "25", "40"} {
		if strings.Count(got, field) != 1 {
			t.Errorf("expected %q exactly once in %q", field, got)
		}
	}
}

func TestCurrentTextOmitsMissingOptionals(t *testing.T) {
	c := weather.CurrentConditions{City: "上海", Description: "多云", Temperature: 28, Humidity: 0, WindSpeed: 3, WindUnit: weather.WindGrade}

	got := CurrentText(c)
	if strings.Contains(got, "体感") {
		t.Fatalf("did not expect feels-like in %q", got)
	}
	if !strings.HasSuffix(got, "风: 3级") {
		t.Fatalf("expected grade wind without direction, got %q", got)
	}
	if !strings.Contains(got, "湿度: 0%") {
		t.Fatalf("expected zero humidity line, got %q", got)
	}
}

func TestForecastTextOneLinePerDay(t *testing.T) {
	set := weather.ForecastSet{
		{Date: "2024-05-01", DayDescription: "晴", NightDescription: "多云", HighTemp: 30, LowTemp: 20, Humidity: 55, WindSpeed: 8, WindUnit: weather.WindKPH},
		{Date: "2024-05-02", DayDescription: "小雨", NightDescription: "小雨", HighTemp: 24, LowTemp: 18, Humidity: 90, WindSpeed: 3, WindUnit: weather.WindGrade},
		{Date: "2024-05-03", DayDescription: "阴", HighTemp: 22.5, LowTemp: 17, Humidity: 70, WindSpeed: 12, WindUnit: weather.WindKPH},
	}

	got := ForecastText(set, "杭州")
	lines := strings.Split(got, "\n")
	if len(lines) != len(set)+1 {
		t.Fatalf("expected %d lines, got %d: %q", len(set)+1, len(lines), got)
	}
	if lines[0] != "杭州 未来3天天气预报" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != "2024-05-01 晴转多云 20~30°C 湿度55% 风8 km/h" {
		t.Fatalf("unexpected first line %q", lines[1])
	}
	if lines[2] != "2024-05-02 小雨 18~24°C 湿度90% 风3级" {
		t.Fatalf("unexpected second line %q", lines[2])
	}

	// Each line carries only its own day.
	for i, d := range set {
		if !strings.HasPrefix(lines[i+1], d.Date) {
			t.Fatalf("line %d out of order: %q", i+1, lines[i+1])
		}
		for j, other := range set {
			if j != i && strings.Contains(lines[i+1], other.Date) {
				t.Fatalf("line %d leaks date %s", i+1, other.Date)
			}
		}
	}
}

func TestCurrentTextIsDeterministic(t *testing.T) {
	c := weather.CurrentConditions{City: "北京", Description: "晴", Temperature: 25, FeelsLike: ptr(24.0), Humidity: 40, WindDirection: ptr("北"), WindSpeed: 10}
	if CurrentText(c) != CurrentText(c) {
		t.Fatalf("expected identical output for identical input")
	}
}

func TestForecastTextIsDeterministic(t *testing.T) {
	set := weather.ForecastSet{{Date: "2024-05-01", DayDescription: "晴", HighTemp: 30, LowTemp: 20}}
	if ForecastText(set, "x") != ForecastText(set, "x") {
		t.Fatalf("expected identical output for identical input")
	}
	if got := ForecastText(nil, "x"); got != "x 未来0天天气预报" {
		t.Fatalf("unexpected empty forecast text %q", got)
	}
}

func TestCurrentPayloadKeys(t *testing.T) {
	c := weather.CurrentConditions{City: "北京", Description: "晴", Temperature: 25, Humidity: 40, WindSpeed: 10, WindUnit: weather.WindKPH, Condition: weather.ConditionClear}

	p := CurrentPayload(c)
	for _, key := range []string{"city", "description", "condition", "temperature", "humidity", "wind_speed", "wind_unit"} {
		if _, ok := p[key]; !ok {
			t.Errorf("missing key %s", key)
		}
	}
	if _, ok := p["feels_like"]; ok {
		t.Errorf("feels_like should be omitted when absent")
	}
	if _, ok := p["wind_direction"]; ok {
		t.Errorf("wind_direction should be omitted when absent")
	}

	c.FeelsLike = ptr(24.0)
	if p := CurrentPayload(c); p["feels_like"] != 24.0 {
		t.Fatalf("expected feels_like 24, got %v", p["feels_like"])
	}
}

func TestForecastPayloadKeepsOrder(t *testing.T) {
	set := weather.ForecastSet{{Date: "d1"}, {Date: "d2"}, {Date: "d3"}}

	p := ForecastPayload(set, "广州")
	if p["city"] != "广州" || p["day_count"] != 3 {
		t.Fatalf("unexpected payload header: %v", p)
	}
	days := p["days"].([]map[string]any)
	for i, want := range []string{"d1", "d2", "d3"} {
		if days[i]["date"] != want {
			t.Fatalf("day %d: expected %s, got %v", i, want, days[i]["date"])
		}
	}
}
