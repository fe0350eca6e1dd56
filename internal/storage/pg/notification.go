package pg

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/waypost-dev/waypost/internal/domain"
	internal_errors "github.com/waypost-dev/waypost/internal/errors"
)

func (s *Storage) CreateNotification(recipient domain.UserId, kind domain.NotificationKind, payload domain.NotificationPayload) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal notification payload: %w", err)
	}
	if _, err := s.db.Exec(`
        INSERT INTO notifications (recipient_id, kind, payload)
        VALUES ($1, $2, $3)
    `, recipient, kind, raw); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	return nil
}

func (s *Storage) NotificationsByRecipient(recipient domain.UserId, limit int) ([]domain.Notification, error) {
	rows, err := s.db.Query(`
        SELECT id, recipient_id, kind, payload, read, created_at
        FROM notifications
        WHERE recipient_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT $2
    `, recipient, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var raw []byte
		if err := rows.Scan(&n.Id, &n.Recipient, &n.Kind, &raw, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		if err := json.Unmarshal(raw, &n.Payload); err != nil {
			return nil, fmt.Errorf("failed to unmarshal notification payload: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkNotificationRead is scoped by recipient so users can only ack their
// own notifications.
func (s *Storage) MarkNotificationRead(recipient domain.UserId, id domain.NotificationId) error {
	result, err := s.db.Exec(`
        UPDATE notifications SET read = TRUE
        WHERE id = $1 AND recipient_id = $2
    `, id, recipient)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return &internal_errors.ErrorWithStatusCode{
			Message:    "Notification not found",
			StatusCode: http.StatusNotFound,
		}
	}
	return nil
}
