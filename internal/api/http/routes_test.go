package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"

	"github.com/i474232898/weather-command/internal/command"
)

// recordingHandler echoes the command it received.
type recordingHandler struct {
	calls []command.Command
}

func (h *recordingHandler) Handle(_ context.Context, cmd command.Command) command.Reply {
	h.calls = append(h.calls, cmd)
	return command.Reply{Text: string(cmd.Kind) + ":" + cmd.City}
}

func newTestApp(limiter *rate.Limiter) (*fiber.App, *recordingHandler) {
	app := fiber.New()
	h := &recordingHandler{}
	RegisterRoutes(app, h, limiter)
	return app, h
}

func decodeReply(t *testing.T, resp *http.Response) command.Reply {
	t.Helper()
	defer resp.Body.Close()
	var reply command.Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		t.Fatalf("failed to decode reply: %v", err)
	}
	return reply
}

func TestCurrentEndpoint(t *testing.T) {
	app, h := newTestApp(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/current?city=Beijing", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if reply := decodeReply(t, resp); reply.Text != "current:Beijing" {
		t.Fatalf("unexpected reply %+v", reply)
	}
	if len(h.calls) != 1 {
		t.Fatalf("expected one call, got %d", len(h.calls))
	}
}

func TestForecastEndpointBlankCity(t *testing.T) {
	app, h := newTestApp(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/forecast", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if h.calls[0] != (command.Command{Kind: command.KindForecast}) {
		t.Fatalf("unexpected command %+v", h.calls[0])
	}
}

func TestCityTooLong(t *testing.T) {
	app, h := newTestApp(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/weather/current?city="+strings.Repeat("a", 65), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, resp.StatusCode)
	}
	if len(h.calls) != 0 {
		t.Fatalf("handler should not run for invalid input")
	}
}

func TestHelpEndpoint(t *testing.T) {
	app, h := newTestApp(nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/help", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK || h.calls[0].Kind != command.KindHelp {
		t.Fatalf("unexpected help response: %d %+v", resp.StatusCode, h.calls)
	}
}

func postCommand(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/commands", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return resp
}

func TestCommandsEndpoint(t *testing.T) {
	app, h := newTestApp(nil)

	resp := postCommand(t, app, `{"command":"Forecast","city":" 上海 "}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if reply := decodeReply(t, resp); reply.Text != "forecast:上海" {
		t.Fatalf("unexpected reply %+v", reply)
	}

	resp = postCommand(t, app, `{"text":"天气预报杭州"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}
	if got := h.calls[len(h.calls)-1]; got != (command.Command{Kind: command.KindForecast, City: "杭州"}) {
		t.Fatalf("unexpected parsed command %+v", got)
	}
}

func TestCommandsEndpointRejectsBadInput(t *testing.T) {
	app, h := newTestApp(nil)

	for _, body := range []string{
		`{}`,
		`{"command":"radar"}`,
		`{"text":"hello"}`,
		`{"command":"current","city":"` + strings.Repeat("a", 65) + `"}`,
		`not json`,
	} {
		resp := postCommand(t, app, body)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("body %s: expected status %d, got %d", body, http.StatusBadRequest, resp.StatusCode)
		}
	}
	if len(h.calls) != 0 {
		t.Fatalf("handler should not run for invalid input, got %d calls", len(h.calls))
	}
}

func TestThrottle(t *testing.T) {
	app, _ := newTestApp(rate.NewLimiter(rate.Limit(0), 1))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/help", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, resp.StatusCode)
	}

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/help", nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected status %d, got %d", http.StatusTooManyRequests, resp.StatusCode)
	}
}
