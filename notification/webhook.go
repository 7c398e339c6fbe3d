package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"naebak/models"
)

// WebhookSender posts notification events to an external delivery gateway
// (the messaging service owns citizen contact details and channel choice).
type WebhookSender struct {
	url    string
	client *http.Client
}

// NewWebhookSender creates a sender posting to the given gateway URL
func NewWebhookSender(url string) *WebhookSender {
	return &WebhookSender{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Send posts the event as JSON; any non-2xx response is a delivery failure.
func (s *WebhookSender) Send(e *models.NotificationEvent) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	resp, err := s.client.Post(s.url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to post notification: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification gateway returned %d", resp.StatusCode)
	}
	return nil
}
