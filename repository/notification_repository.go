package repository

import (
	"database/sql"
	"fmt"

	"naebak/models"
)

// NotificationRepository handles the queued notification log
type NotificationRepository struct {
	db *sql.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Enqueue records a pending notification event for the delivery worker.
func (r *NotificationRepository) Enqueue(e *models.NotificationEvent) error {
	result, err := r.db.Exec(
		`INSERT INTO notifications_log (complaint_id, citizen_id, event, old_status, new_status, message, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, 'pending', ?)`,
		e.ComplaintID, e.CitizenID, e.Event, e.OldStatus, e.NewStatus, e.Message, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get notification ID: %w", err)
	}
	e.ID = id
	e.Status = "pending"
	return nil
}

// ListPending returns up to limit pending notifications, oldest first.
func (r *NotificationRepository) ListPending(limit int) ([]models.NotificationEvent, error) {
	rows, err := r.db.Query(
		`SELECT event_id, complaint_id, citizen_id, event, old_status, new_status, message, status, last_error, created_at, sent_at
		 FROM notifications_log
		 WHERE status = 'pending'
		 ORDER BY created_at ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending notifications: %w", err)
	}
	defer rows.Close()

	var events []models.NotificationEvent
	for rows.Next() {
		var e models.NotificationEvent
		err := rows.Scan(&e.ID, &e.ComplaintID, &e.CitizenID, &e.Event, &e.OldStatus, &e.NewStatus, &e.Message, &e.Status, &e.LastError, &e.CreatedAt, &e.SentAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		events = append(events, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}
	return events, nil
}

// MarkSent marks a notification as delivered
func (r *NotificationRepository) MarkSent(eventID int64) error {
	_, err := r.db.Exec(
		`UPDATE notifications_log SET status = 'sent', sent_at = NOW(), last_error = NULL WHERE event_id = ?`,
		eventID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification sent: %w", err)
	}
	return nil
}

// MarkFailed marks a notification as failed with the delivery error
func (r *NotificationRepository) MarkFailed(eventID int64, deliveryErr error) error {
	var msg sql.NullString
	if deliveryErr != nil {
		msg = sql.NullString{String: deliveryErr.Error(), Valid: true}
	}
	_, err := r.db.Exec(
		`UPDATE notifications_log SET status = 'failed', last_error = ? WHERE event_id = ?`,
		msg, eventID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification failed: %w", err)
	}
	return nil
}
