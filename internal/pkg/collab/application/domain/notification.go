package collab

import (
	"strings"
	"time"
)

// NotificationType tags a notification with the kind of event that produced it.
type NotificationType string

const (
	NotificationActivityCreated  NotificationType = "activity_created"
	NotificationStatusChanged    NotificationType = "status_changed"
	NotificationMemberAdded      NotificationType = "member_added"
	NotificationMemberRemoved    NotificationType = "member_removed"
	NotificationMemberAssigned   NotificationType = "member_assigned"
	NotificationMemberUnassigned NotificationType = "member_unassigned"
	NotificationRemarkAdded      NotificationType = "remark_added"
)

// Notification is a persisted message for a single recipient.
// Once created only the Read flag mutates; rows are removed only by the
// retention sweep or an explicit user delete.
type Notification struct {
	ID         string           `db:"id" json:"id"`
	UserID     string           `db:"user_id" json:"user_id"`
	Title      string           `db:"title" json:"title"`
	Message    string           `db:"message" json:"message"`
	Type       NotificationType `db:"type" json:"type"`
	TeamID     *string          `db:"team_id" json:"team_id,omitempty"`
	ActivityID *string          `db:"activity_id" json:"activity_id,omitempty"`
	Read       bool             `db:"read" json:"read"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
}

// NewNotification validates and normalizes a notification before persistence.
// Read always starts false regardless of the input.
func NewNotification(n Notification) (*Notification, error) {
	if n.UserID == "" {
		return nil, ErrMissingField
	}
	n.Title = strings.TrimSpace(n.Title)
	n.Message = strings.TrimSpace(n.Message)
	if n.Title == "" && n.Message == "" {
		return nil, ErrMissingField
	}
	n.Read = false
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	return &n, nil
}
