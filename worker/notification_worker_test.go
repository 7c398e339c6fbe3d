package worker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"naebak/models"
	"naebak/notification"
)

type fakeQueue struct {
	pending []models.NotificationEvent
	sent    []int64
	failed  []int64
}

func (q *fakeQueue) ListPending(limit int) ([]models.NotificationEvent, error) {
	if len(q.pending) > limit {
		return q.pending[:limit], nil
	}
	return q.pending, nil
}

func (q *fakeQueue) MarkSent(eventID int64) error {
	q.sent = append(q.sent, eventID)
	return nil
}

func (q *fakeQueue) MarkFailed(eventID int64, deliveryErr error) error {
	q.failed = append(q.failed, eventID)
	return nil
}

type flakySender struct {
	failID int64
}

func (s flakySender) Send(e *models.NotificationEvent) error {
	if e.ID == s.failID {
		return errors.New("gateway unavailable")
	}
	return nil
}

func TestDrainMarksSentAndFailed(t *testing.T) {
	queue := &fakeQueue{pending: []models.NotificationEvent{
		{ID: 1, Message: "one"},
		{ID: 2, Message: "two"},
		{ID: 3, Message: "three"},
	}}
	w := NewNotificationWorker(queue, flakySender{failID: 2}, time.Minute)

	w.drain()

	assert.Equal(t, []int64{1, 3}, queue.sent)
	assert.Equal(t, []int64{2}, queue.failed, "a failed delivery is recorded, not retried in a loop")
}

func TestDrainWithLogSender(t *testing.T) {
	queue := &fakeQueue{pending: []models.NotificationEvent{{ID: 5, Message: "hello"}}}
	w := NewNotificationWorker(queue, notification.LogSender{}, time.Minute)

	w.drain()
	assert.Equal(t, []int64{5}, queue.sent)
	assert.Empty(t, queue.failed)
}
