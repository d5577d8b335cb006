package collab

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of an activity.
// No status is strictly terminal; completed activities can be reopened.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusOnHold     Status = "on_hold"
)

// ValidStatus reports whether s is one of the four known statuses.
func ValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted, StatusOnHold:
		return true
	}
	return false
}

// Activity is a unit of shared work owned by a team.
type Activity struct {
	ID          string     `db:"id"`
	TeamID      string     `db:"team_id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	Status      Status     `db:"status"`
	AssigneeIDs []string   // ordered by assignment; duplicate-free
	CreatorID   string     `db:"creator_id"`
	TargetDate  *time.Time `db:"target_date"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// Remark is an immutable comment appended to an activity, ordered by creation time.
type Remark struct {
	ID         string    `db:"id"`
	ActivityID string    `db:"activity_id"`
	AuthorID   string    `db:"author_id"`
	Text       string    `db:"text"`
	CreatedAt  time.Time `db:"created_at"`
}

// Attachment references a stored file linked to an activity.
// File content lives behind the storage service; only metadata is kept here.
type Attachment struct {
	ID         string    `db:"id"`
	ActivityID string    `db:"activity_id"`
	FileName   string    `db:"file_name"`
	URL        string    `db:"url"`
	UploadedBy string    `db:"uploaded_by"`
	CreatedAt  time.Time `db:"created_at"`
}

// NewActivity validates and normalizes a fresh activity.
func NewActivity(a Activity) (*Activity, error) {
	if a.TeamID == "" || a.CreatorID == "" {
		return nil, ErrMissingField
	}
	a.Title = strings.TrimSpace(a.Title)
	if a.Title == "" {
		return nil, ErrMissingField
	}
	if a.Status == "" {
		a.Status = StatusPending
	}
	if !ValidStatus(a.Status) {
		return nil, ErrInvalidStatus
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = a.CreatedAt
	}
	return &a, nil
}

// Transition moves the activity to newStatus and returns the old status.
// The only rule enforced here is that the target must be a known status;
// who may transition is the caller's concern.
func (a *Activity) Transition(newStatus Status, now time.Time) (Status, error) {
	if !ValidStatus(newStatus) {
		return "", ErrInvalidStatus
	}
	old := a.Status
	a.Status = newStatus
	if now.IsZero() {
		now = time.Now().UTC()
	}
	a.UpdatedAt = now
	return old, nil
}

// SystemRemarkText is the audit remark body appended on every transition.
func SystemRemarkText(newStatus Status) string {
	return fmt.Sprintf("Status changed to: %s", newStatus)
}

// Assign adds userID to the assignee set. Returns false if already assigned.
func (a *Activity) Assign(userID string) bool {
	for _, id := range a.AssigneeIDs {
		if id == userID {
			return false
		}
	}
	a.AssigneeIDs = append(a.AssigneeIDs, userID)
	return true
}

// Unassign removes userID from the assignee set. Returns false if not assigned.
func (a *Activity) Unassign(userID string) bool {
	for i, id := range a.AssigneeIDs {
		if id == userID {
			a.AssigneeIDs = append(a.AssigneeIDs[:i], a.AssigneeIDs[i+1:]...)
			return true
		}
	}
	return false
}

// IsAssigned tells whether userID is currently assigned.
func (a *Activity) IsAssigned(userID string) bool {
	for _, id := range a.AssigneeIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// NewRemark validates and normalizes a remark before persistence.
func NewRemark(r Remark) (*Remark, error) {
	if r.ActivityID == "" || r.AuthorID == "" {
		return nil, ErrMissingField
	}
	r.Text = strings.TrimSpace(r.Text)
	if r.Text == "" {
		return nil, ErrEmptyRemark
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	return &r, nil
}
