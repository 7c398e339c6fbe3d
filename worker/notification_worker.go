package worker

import (
	"log"
	"time"

	"naebak/models"
	"naebak/notification"
)

// NotificationQueue is the queue surface the worker drains.
// Satisfied by repository.NotificationRepository.
type NotificationQueue interface {
	ListPending(limit int) ([]models.NotificationEvent, error)
	MarkSent(eventID int64) error
	MarkFailed(eventID int64, deliveryErr error) error
}

// NotificationWorker drains the pending notification queue on an interval.
// Delivery is at-least-once from the queue's point of view; a failed send is
// marked failed and left for operator attention, never retried in a loop.
type NotificationWorker struct {
	queue     NotificationQueue
	sender    notification.Sender
	interval  time.Duration
	batchSize int
	stopChan  chan struct{}
}

// NewNotificationWorker creates a new notification worker
func NewNotificationWorker(queue NotificationQueue, sender notification.Sender, interval time.Duration) *NotificationWorker {
	return &NotificationWorker{
		queue:     queue,
		sender:    sender,
		interval:  interval,
		batchSize: 50,
		stopChan:  make(chan struct{}),
	}
}

// Start begins the delivery loop in a goroutine
func (w *NotificationWorker) Start() {
	log.Printf("[worker] notification worker started, interval %s", w.interval)
	go w.run()
}

// Stop signals the delivery loop to exit
func (w *NotificationWorker) Stop() {
	close(w.stopChan)
}

func (w *NotificationWorker) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.drain()
		case <-w.stopChan:
			log.Println("[worker] notification worker stopped")
			return
		}
	}
}

func (w *NotificationWorker) drain() {
	events, err := w.queue.ListPending(w.batchSize)
	if err != nil {
		log.Printf("[worker] failed to list pending notifications: %v", err)
		return
	}
	for i := range events {
		e := &events[i]
		if err := w.sender.Send(e); err != nil {
			log.Printf("[worker] delivery failed for event %d: %v", e.ID, err)
			if markErr := w.queue.MarkFailed(e.ID, err); markErr != nil {
				log.Printf("[worker] failed to mark event %d failed: %v", e.ID, markErr)
			}
			continue
		}
		if err := w.queue.MarkSent(e.ID); err != nil {
			log.Printf("[worker] failed to mark event %d sent: %v", e.ID, err)
		}
	}
}
