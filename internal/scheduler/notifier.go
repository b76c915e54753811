package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/i474232898/weather-command/internal/command"
)

// Notifier delivers a broadcast reply somewhere users will see it.
type Notifier interface {
	Notify(ctx context.Context, city string, reply command.Reply) error
}

// NewNotifier returns a webhook notifier, or a log notifier when webhookURL is empty.
func NewNotifier(webhookURL string, client *http.Client) Notifier {
	if webhookURL == "" {
		return LogNotifier{}
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &WebhookNotifier{url: webhookURL, client: client}
}

// LogNotifier writes replies to the process log.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, city string, reply command.Reply) error {
	if reply.ImageURL != "" {
		log.Printf("INFO: broadcast %s: %s", city, reply.ImageURL)
		return nil
	}
	log.Printf("INFO: broadcast %s:\n%s", city, reply.Text)
	return nil
}

// WebhookNotifier POSTs {"city", "text", "image_url"} JSON to a chat webhook.
type WebhookNotifier struct {
	url    string
	client *http.Client
}

func (n *WebhookNotifier) Notify(ctx context.Context, city string, reply command.Reply) error {
	body, err := json.Marshal(struct {
		City string `json:"city"`
		command.Reply
	}{City: city, Reply: reply})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook error (status %d)", resp.StatusCode)
	}
	return nil
}
