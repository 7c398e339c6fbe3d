package notification

import (
	"log"

	"naebak/models"
)

// Sender delivers one notification event to the citizen. Implementations
// talk to the outside world (mail gateway, SMS provider); the engine never
// calls them directly, only the worker does.
type Sender interface {
	Send(e *models.NotificationEvent) error
}

// LogSender writes notifications to the application log. The default sender
// in development and the fallback when no gateway is configured.
type LogSender struct{}

// Send logs the notification
func (LogSender) Send(e *models.NotificationEvent) error {
	log.Printf("[notify] citizen=%d complaint=%s event=%s: %s", e.CitizenID, e.ComplaintID, e.Event, e.Message)
	return nil
}
