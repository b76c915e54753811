package command

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Command
	}{
		{"天气 北京", Command{Kind: KindCurrent, City: "北京"}},
		{"天气北京", Command{Kind: KindCurrent, City: "北京"}},
		{"天气预报 上海", Command{Kind: KindForecast, City: "上海"}},
		{"天气预报上海", Command{Kind: KindForecast, City: "上海"}},
		{"预报 广州", Command{Kind: KindForecast, City: "广州"}},
		{"/forecast Shanghai", Command{Kind: KindForecast, City: "Shanghai"}},
		{"Weather  New York ", Command{Kind: KindCurrent, City: "New York"}},
		{"current", Command{Kind: KindCurrent}},
		{"天气", Command{Kind: KindCurrent}},
		{"天气帮助", Command{Kind: KindHelp}},
		{"/help", Command{Kind: KindHelp}},
	}

	for _, tc := range cases {
		got, err := Parse(tc.in)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestParseRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "   ", "/", "hello", "weathering", "currently sunny"} {
		if _, err := Parse(in); !errors.Is(err, ErrUnknownCommand) {
			t.Errorf("Parse(%q): expected ErrUnknownCommand, got %v", in, err)
		}
	}
}

func TestParseKind(t *testing.T) {
	if k, err := ParseKind(" Forecast "); err != nil || k != KindForecast {
		t.Fatalf("expected forecast, got %q %v", k, err)
	}
	if _, err := ParseKind("radar"); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("expected ErrUnknownCommand, got %v", err)
	}
}
