package usecase

import (
	"context"
	"testing"

	collab "go-collab/internal/pkg/collab/application/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignUser_NewAssigneeEmitsEvent(t *testing.T) {
	repo := newMemActivityRepository()
	seedActivity(repo, "act-1", "u1")
	notifier := &recordingNotifier{}
	uc := NewAssignUserUseCase(repo, notifier)

	result, err := uc.Execute(context.Background(), AssignUserInput{
		ActivityID: "act-1",
		UserID:     "u2",
		ActorID:    "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, result.AssigneeIDs)

	events := notifier.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, collab.EventMemberAssigned, events[0].Type)
	assert.Equal(t, "u2", events[0].SubjectID)
}

func TestAssignUser_AlreadyAssignedIsNoop(t *testing.T) {
	repo := newMemActivityRepository()
	seedActivity(repo, "act-1", "u1", "u2")
	notifier := &recordingNotifier{}
	uc := NewAssignUserUseCase(repo, notifier)

	result, err := uc.Execute(context.Background(), AssignUserInput{
		ActivityID: "act-1",
		UserID:     "u2",
		ActorID:    "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"u1", "u2"}, result.AssigneeIDs)
	assert.Empty(t, notifier.recorded(), "no duplicate event for an already-assigned user")
}

func TestUnassignUser_RemovesAndEmits(t *testing.T) {
	repo := newMemActivityRepository()
	seedActivity(repo, "act-1", "u1", "u2")
	notifier := &recordingNotifier{}
	uc := NewUnassignUserUseCase(repo, notifier)

	result, err := uc.Execute(context.Background(), UnassignUserInput{
		ActivityID: "act-1",
		UserID:     "u1",
		ActorID:    "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"u2"}, result.AssigneeIDs)

	events := notifier.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, collab.EventMemberUnassigned, events[0].Type)
	assert.Equal(t, "u1", events[0].SubjectID)
}

func TestUnassignUser_NotAssignedIsNoop(t *testing.T) {
	repo := newMemActivityRepository()
	seedActivity(repo, "act-1", "u1")
	notifier := &recordingNotifier{}
	uc := NewUnassignUserUseCase(repo, notifier)

	_, err := uc.Execute(context.Background(), UnassignUserInput{
		ActivityID: "act-1",
		UserID:     "stranger",
		ActorID:    "u1",
	})
	require.NoError(t, err)
	assert.Empty(t, notifier.recorded())
}
