package usecase

import (
	"context"
	"testing"
	"time"

	collab "go-collab/internal/pkg/collab/application/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedActivity(repo *memActivityRepository, id string, assignees ...string) collab.Activity {
	a := collab.Activity{
		ID:          id,
		TeamID:      "team-1",
		Title:       "Ship the report",
		Status:      collab.StatusPending,
		AssigneeIDs: assignees,
		CreatorID:   "creator",
		CreatedAt:   time.Now().UTC().Add(-time.Hour),
		UpdatedAt:   time.Now().UTC().Add(-time.Hour),
	}
	repo.put(a)
	return a
}

func TestTransitionActivity_Success(t *testing.T) {
	repo := newMemActivityRepository()
	seedActivity(repo, "act-1", "u1", "u2")
	notifier := &recordingNotifier{}
	uc := NewTransitionActivityUseCase(repo, notifier)

	result, err := uc.Execute(context.Background(), TransitionActivityInput{
		ActivityID: "act-1",
		NewStatus:  collab.StatusCompleted,
		ActorID:    "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, collab.StatusCompleted, result.Status)

	// Exactly one system remark, authored by the actor.
	remarks, err := repo.ListRemarks(context.Background(), "act-1")
	require.NoError(t, err)
	require.Len(t, remarks, 1)
	assert.Equal(t, "Status changed to: completed", remarks[0].Text)
	assert.Equal(t, "u1", remarks[0].AuthorID)

	// Exactly one StatusChanged event, emitted after the write.
	events := notifier.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, collab.EventStatusChanged, events[0].Type)
	assert.Equal(t, collab.StatusPending, events[0].OldStatus)
	assert.Equal(t, collab.StatusCompleted, events[0].NewStatus)
	assert.Equal(t, "u1", events[0].ActorID)
	assert.Equal(t, []string{"u1", "u2"}, events[0].AssigneeIDs)
}

func TestTransitionActivity_CallerRemarkAppendedSeparately(t *testing.T) {
	repo := newMemActivityRepository()
	seedActivity(repo, "act-1")
	uc := NewTransitionActivityUseCase(repo, &recordingNotifier{})

	_, err := uc.Execute(context.Background(), TransitionActivityInput{
		ActivityID: "act-1",
		NewStatus:  collab.StatusOnHold,
		ActorID:    "u1",
		RemarkText: "waiting on vendor",
	})
	require.NoError(t, err)

	remarks, err := repo.ListRemarks(context.Background(), "act-1")
	require.NoError(t, err)
	require.Len(t, remarks, 2)
	assert.Equal(t, "Status changed to: on_hold", remarks[0].Text)
	assert.Equal(t, "waiting on vendor", remarks[1].Text)
}

func TestTransitionActivity_InvalidStatusHasNoSideEffects(t *testing.T) {
	repo := newMemActivityRepository()
	seedActivity(repo, "act-1")
	notifier := &recordingNotifier{}
	uc := NewTransitionActivityUseCase(repo, notifier)

	_, err := uc.Execute(context.Background(), TransitionActivityInput{
		ActivityID: "act-1",
		NewStatus:  collab.Status("archived"),
		ActorID:    "u1",
	})
	assert.ErrorIs(t, err, collab.ErrInvalidStatus)

	current, err := repo.FindByID(context.Background(), "act-1")
	require.NoError(t, err)
	assert.Equal(t, collab.StatusPending, current.Status)

	remarks, _ := repo.ListRemarks(context.Background(), "act-1")
	assert.Empty(t, remarks)
	assert.Empty(t, notifier.recorded())
}

func TestTransitionActivity_ReopenFromCompleted(t *testing.T) {
	repo := newMemActivityRepository()
	a := seedActivity(repo, "act-1")
	a.Status = collab.StatusCompleted
	repo.put(a)
	uc := NewTransitionActivityUseCase(repo, &recordingNotifier{})

	result, err := uc.Execute(context.Background(), TransitionActivityInput{
		ActivityID: "act-1",
		NewStatus:  collab.StatusInProgress,
		ActorID:    "u1",
	})
	require.NoError(t, err)
	assert.Equal(t, collab.StatusInProgress, result.Status)
}

func TestTransitionActivity_UnknownActivity(t *testing.T) {
	uc := NewTransitionActivityUseCase(newMemActivityRepository(), &recordingNotifier{})

	_, err := uc.Execute(context.Background(), TransitionActivityInput{
		ActivityID: "missing",
		NewStatus:  collab.StatusCompleted,
		ActorID:    "u1",
	})
	assert.ErrorIs(t, err, collab.ErrNotFound)
}
