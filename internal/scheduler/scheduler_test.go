package scheduler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/i474232898/weather-command/internal/command"
)

type fakeDispatcher struct {
	mu   sync.Mutex
	cmds []command.Command
}

func (f *fakeDispatcher) Handle(_ context.Context, cmd command.Command) command.Reply {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cmds = append(f.cmds, cmd)
	return command.Reply{Text: "forecast for " + cmd.City}
}

type recordingNotifier struct {
	mu     sync.Mutex
	cities []string
}

func (n *recordingNotifier) Notify(_ context.Context, city string, _ command.Reply) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cities = append(n.cities, city)
	return nil
}

func TestRunOnceBroadcastsEveryCity(t *testing.T) {
	d := &fakeDispatcher{}
	n := &recordingNotifier{}
	s := New([]string{"北京", "上海", "广州"}, time.Hour, d, n)
	defer s.Stop()

	s.RunOnce(context.Background())

	if len(d.cmds) != 3 {
		t.Fatalf("expected 3 commands, got %d", len(d.cmds))
	}
	for _, cmd := range d.cmds {
		if cmd.Kind != command.KindForecast {
			t.Fatalf("expected forecast commands, got %s", cmd.Kind)
		}
	}

	sort.Strings(n.cities)
	if want := []string{"上海", "北京", "广州"}; len(n.cities) != 3 || n.cities[0] != want[0] || n.cities[1] != want[1] || n.cities[2] != want[2] {
		t.Fatalf("unexpected notified cities %v", n.cities)
	}
}

func TestStartWithoutCitiesIsNoop(t *testing.T) {
	s := New(nil, 0, &fakeDispatcher{}, LogNotifier{})
	defer s.Stop()

	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.interval != 24*time.Hour {
		t.Fatalf("expected default interval, got %s", s.interval)
	}
}

func TestWebhookNotifier(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL, srv.Client())
	if err := n.Notify(context.Background(), "北京", command.Reply{Text: "晴"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["city"] != "北京" || got["text"] != "晴" {
		t.Fatalf("unexpected webhook body %v", got)
	}
	if _, ok := got["image_url"]; ok {
		t.Fatalf("image_url should be omitted for text replies")
	}
}

func TestWebhookNotifierErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := NewNotifier(srv.URL, srv.Client()).Notify(context.Background(), "北京", command.Reply{}); err == nil {
		t.Fatalf("expected error for 500 response")
	}
}

func TestNewNotifierWithoutURLLogs(t *testing.T) {
	if _, ok := NewNotifier("", nil).(LogNotifier); !ok {
		t.Fatalf("expected LogNotifier when no webhook is configured")
	}
}
