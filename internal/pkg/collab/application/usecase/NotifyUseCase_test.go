package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	collab "go-collab/internal/pkg/collab/application/domain"
	repository "go-collab/internal/pkg/collab/persistence/repository/port"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// recordingNotificationRepo keeps saved notifications in order and can fail
// persistence for selected users.
type recordingNotificationRepo struct {
	mu     sync.Mutex
	saved  []collab.Notification
	failed map[string]error // userID -> error to return from Save
}

var _ repository.NotificationRepository = (*recordingNotificationRepo)(nil)

func (r *recordingNotificationRepo) Save(_ context.Context, n collab.Notification) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failed[n.UserID]; err != nil {
		return "", err
	}
	n.ID = "n-" + n.UserID
	r.saved = append(r.saved, n)
	return n.ID, nil
}

func (r *recordingNotificationRepo) ListByUser(_ context.Context, userID string, _ int, _ int) ([]collab.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []collab.Notification
	for i := len(r.saved) - 1; i >= 0; i-- {
		if r.saved[i].UserID == userID {
			out = append(out, r.saved[i])
		}
	}
	return out, nil
}

func (r *recordingNotificationRepo) CountUnread(_ context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, n := range r.saved {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *recordingNotificationRepo) MarkRead(_ context.Context, id string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.saved {
		if r.saved[i].ID == id && r.saved[i].UserID == userID {
			r.saved[i].Read = true
			return nil
		}
	}
	return collab.ErrNotFound
}

func (r *recordingNotificationRepo) MarkAllRead(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.saved {
		if r.saved[i].UserID == userID {
			r.saved[i].Read = true
		}
	}
	return nil
}

func (r *recordingNotificationRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.saved[:0]
	var swept int64
	for _, n := range r.saved {
		if n.CreatedAt.Before(cutoff) {
			swept++
			continue
		}
		kept = append(kept, n)
	}
	r.saved = kept
	return swept, nil
}

func (r *recordingNotificationRepo) savedUsers() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var users []string
	for _, n := range r.saved {
		users = append(users, n.UserID)
	}
	return users
}

func newNotifyFixture(t *testing.T) (*NotifyUseCase, *MockUserRepository, *MockTeamRepository, *recordingNotificationRepo, *fakeDelivery) {
	t.Helper()
	users := new(MockUserRepository)
	teams := new(MockTeamRepository)
	repo := &recordingNotificationRepo{}
	delivery := newFakeDelivery()
	uc := NewNotifyUseCase(users, teams, repo, delivery, newFakeUnread())
	return uc, users, teams, repo, delivery
}

func TestNotify_StatusChangedExcludesActorAndAddsAdmin(t *testing.T) {
	uc, users, _, repo, delivery := newNotifyFixture(t)

	users.On("FirstActiveAdmin", mock.Anything).Return(&collab.User{ID: "admin", Role: collab.RoleAdmin, Active: true}, nil)

	// Activity A on team T, assignees [u1, u2], transitioned by u1.
	err := uc.Execute(context.Background(), collab.Event{
		Type:        collab.EventStatusChanged,
		TeamID:      "T",
		ActivityID:  "A",
		ActorID:     "u1",
		Title:       "Ship the report",
		AssigneeIDs: []string{"u1", "u2"},
		OldStatus:   collab.StatusPending,
		NewStatus:   collab.StatusCompleted,
	})
	require.NoError(t, err)

	// Deterministic order: assignees first (minus the actor), then the admin.
	assert.Equal(t, []string{"u2", "admin"}, repo.savedUsers())
	assert.Equal(t, 1, delivery.pushedTo("u2"))
	assert.Equal(t, 1, delivery.pushedTo("admin"))
	assert.Equal(t, 0, delivery.pushedTo("u1"))

	list, err := repo.ListByUser(context.Background(), "u2", 50, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, collab.NotificationStatusChanged, list[0].Type)
	assert.Equal(t, "Activity 'Ship the report' status changed to completed", list[0].Message)
	assert.False(t, list[0].Read)
}

func TestNotify_ActorWhoIsAdminGetsNothing(t *testing.T) {
	uc, users, _, repo, _ := newNotifyFixture(t)

	users.On("FirstActiveAdmin", mock.Anything).Return(&collab.User{ID: "admin", Role: collab.RoleAdmin, Active: true}, nil)

	err := uc.Execute(context.Background(), collab.Event{
		Type:        collab.EventStatusChanged,
		TeamID:      "T",
		ActivityID:  "A",
		ActorID:     "admin",
		Title:       "Ship it",
		AssigneeIDs: []string{"admin", "u2"},
		NewStatus:   collab.StatusInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, repo.savedUsers())
}

func TestNotify_NoActiveAdminStillNotifiesAssignees(t *testing.T) {
	uc, users, _, repo, _ := newNotifyFixture(t)

	users.On("FirstActiveAdmin", mock.Anything).Return(nil, collab.ErrNotFound)

	err := uc.Execute(context.Background(), collab.Event{
		Type:        collab.EventStatusChanged,
		TeamID:      "T",
		ActivityID:  "A",
		ActorID:     "u1",
		Title:       "Ship it",
		AssigneeIDs: []string{"u1", "u2"},
		NewStatus:   collab.StatusOnHold,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, repo.savedUsers())
}

func TestNotify_DisconnectedRecipientStillPersisted(t *testing.T) {
	uc, users, _, repo, delivery := newNotifyFixture(t)

	users.On("FirstActiveAdmin", mock.Anything).Return(nil, collab.ErrNotFound)
	delivery.live = map[string]bool{} // nobody connected

	err := uc.Execute(context.Background(), collab.Event{
		Type:        collab.EventStatusChanged,
		TeamID:      "T",
		ActivityID:  "A",
		ActorID:     "u1",
		Title:       "Ship it",
		AssigneeIDs: []string{"u1", "u2"},
		NewStatus:   collab.StatusCompleted,
	})
	require.NoError(t, err)

	// Zero live pushes, but the notification is recoverable on next fetch.
	assert.Equal(t, 0, delivery.pushedTo("u2"))
	list, err := repo.ListByUser(context.Background(), "u2", 50, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Read)
}

func TestNotify_PersistFailureSkipsOnlyThatRecipient(t *testing.T) {
	uc, users, _, repo, delivery := newNotifyFixture(t)

	users.On("FirstActiveAdmin", mock.Anything).Return(&collab.User{ID: "admin", Role: collab.RoleAdmin, Active: true}, nil)
	repo.failed = map[string]error{"u2": errors.New("storage down")}

	err := uc.Execute(context.Background(), collab.Event{
		Type:        collab.EventStatusChanged,
		TeamID:      "T",
		ActivityID:  "A",
		ActorID:     "u1",
		Title:       "Ship it",
		AssigneeIDs: []string{"u1", "u2"},
		NewStatus:   collab.StatusCompleted,
	})
	require.NoError(t, err, "fan-out failures are contained")

	// u2's notification is lost from this event, but the admin's went through
	// and u2 received no push for an unpersisted notification.
	assert.Equal(t, []string{"admin"}, repo.savedUsers())
	assert.Equal(t, 0, delivery.pushedTo("u2"))
	assert.Equal(t, 1, delivery.pushedTo("admin"))
}

func TestNotify_MemberAddedNotifiesAddedUser(t *testing.T) {
	uc, _, _, repo, delivery := newNotifyFixture(t)

	err := uc.Execute(context.Background(), collab.Event{
		Type:      collab.EventMemberAdded,
		TeamID:    "T",
		ActorID:   "admin",
		SubjectID: "u3",
		TeamName:  "backend",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"u3"}, repo.savedUsers())

	list, _ := repo.ListByUser(context.Background(), "u3", 50, 0)
	require.Len(t, list, 1)
	assert.Equal(t, "You have been added to team 'backend'", list[0].Message)
	assert.Equal(t, 1, delivery.pushedTo("u3"))
}

func TestNotify_RemarkAddedExcludesAuthor(t *testing.T) {
	uc, _, teams, repo, _ := newNotifyFixture(t)

	teams.On("ListMemberIDs", mock.Anything, "T").Return([]string{"u1", "u2", "u3"}, nil)

	err := uc.Execute(context.Background(), collab.Event{
		Type:       collab.EventRemarkAdded,
		TeamID:     "T",
		ActivityID: "A",
		ActorID:    "u2",
		Title:      "Ship it",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u3"}, repo.savedUsers())
}

func TestNotify_SelfAssignmentIsSilent(t *testing.T) {
	uc, _, _, repo, _ := newNotifyFixture(t)

	err := uc.Execute(context.Background(), collab.Event{
		Type:       collab.EventMemberAssigned,
		TeamID:     "T",
		ActivityID: "A",
		ActorID:    "u1",
		SubjectID:  "u1",
		Title:      "Ship it",
	})
	require.NoError(t, err)
	assert.Empty(t, repo.savedUsers())
}

func TestNotify_FrameEnvelope(t *testing.T) {
	uc, _, _, _, delivery := newNotifyFixture(t)

	err := uc.Execute(context.Background(), collab.Event{
		Type:      collab.EventMemberAdded,
		TeamID:    "T",
		ActorID:   "admin",
		SubjectID: "u3",
		TeamName:  "backend",
	})
	require.NoError(t, err)

	delivery.mu.Lock()
	payloads := delivery.pushes["u3"]
	delivery.mu.Unlock()
	require.Len(t, payloads, 1)

	var frame struct {
		Type string              `json:"type"`
		Data collab.Notification `json:"data"`
	}
	require.NoError(t, json.Unmarshal(payloads[0], &frame))
	assert.Equal(t, "notification", frame.Type)
	assert.Equal(t, "u3", frame.Data.UserID)
	assert.NotEmpty(t, frame.Data.ID)
}
