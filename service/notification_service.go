package service

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"naebak/models"
)

// NotificationQueue is the persistence surface for queued notifications.
// Satisfied by repository.NotificationRepository.
type NotificationQueue interface {
	Enqueue(e *models.NotificationEvent) error
}

// NotificationService implements Notifier by queueing events for the
// delivery worker. Enqueue failures are logged and dropped; lifecycle
// operations never fail because a notification could not be recorded.
type NotificationService struct {
	queue NotificationQueue
	now   func() time.Time
}

// NewNotificationService creates a new notification service
func NewNotificationService(queue NotificationQueue) *NotificationService {
	return &NotificationService{
		queue: queue,
		now:   time.Now,
	}
}

// Submitted queues the submission confirmation
func (s *NotificationService) Submitted(c *models.Complaint) {
	s.enqueue(&models.NotificationEvent{
		ComplaintID: c.ID,
		CitizenID:   c.CitizenID,
		Event:       models.UpdateStatusChange,
		NewStatus:   sql.NullString{String: string(c.Status), Valid: true},
		Message:     fmt.Sprintf("complaint %s received", c.ComplaintNumber),
	})
}

// StatusChanged queues a status-change notification unless the actor
// suppressed it.
func (s *NotificationService) StatusChanged(c *models.Complaint, oldStatus, newStatus models.ComplaintStatus, notify bool) {
	if !notify {
		return
	}
	s.enqueue(&models.NotificationEvent{
		ComplaintID: c.ID,
		CitizenID:   c.CitizenID,
		Event:       models.UpdateStatusChange,
		OldStatus:   sql.NullString{String: string(oldStatus), Valid: true},
		NewStatus:   sql.NullString{String: string(newStatus), Valid: true},
		Message:     fmt.Sprintf("complaint %s moved from %s to %s", c.ComplaintNumber, oldStatus, newStatus),
	})
}

// Assigned queues an assignment notification
func (s *NotificationService) Assigned(c *models.Complaint, deputyID int64) {
	s.enqueue(&models.NotificationEvent{
		ComplaintID: c.ID,
		CitizenID:   c.CitizenID,
		Event:       models.UpdateAssignment,
		Message:     fmt.Sprintf("complaint %s was assigned to a representative", c.ComplaintNumber),
	})
}

func (s *NotificationService) enqueue(e *models.NotificationEvent) {
	e.CreatedAt = s.now().UTC()
	if err := s.queue.Enqueue(e); err != nil {
		log.Printf("[notification] failed to enqueue event for %s: %v", e.ComplaintID, err)
	}
}
