package usecase

import (
	"context"
	"testing"

	collab "go-collab/internal/pkg/collab/application/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddRemark_MemberAppendsAndEmits(t *testing.T) {
	repo := newMemActivityRepository()
	seedActivity(repo, "act-1", "u1")
	teams := new(MockTeamRepository)
	notifier := &recordingNotifier{}
	uc := NewAddRemarkUseCase(repo, teams, notifier)

	teams.On("IsMember", mock.Anything, "team-1", "u2").Return(true, nil)

	remark, err := uc.Execute(context.Background(), AddRemarkInput{
		ActivityID: "act-1",
		AuthorID:   "u2",
		Text:       " blocked on review ",
	})
	require.NoError(t, err)
	assert.Equal(t, "blocked on review", remark.Text)
	assert.NotEmpty(t, remark.ID)

	events := notifier.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, collab.EventRemarkAdded, events[0].Type)
	assert.Equal(t, "team-1", events[0].TeamID)
	assert.Equal(t, "u2", events[0].ActorID)
}

func TestAddRemark_CreatorBypassesMembershipCheck(t *testing.T) {
	repo := newMemActivityRepository()
	seedActivity(repo, "act-1")
	teams := new(MockTeamRepository) // no IsMember expectation: must not be called
	uc := NewAddRemarkUseCase(repo, teams, &recordingNotifier{})

	_, err := uc.Execute(context.Background(), AddRemarkInput{
		ActivityID: "act-1",
		AuthorID:   "creator",
		Text:       "note to self",
	})
	require.NoError(t, err)
	teams.AssertExpectations(t)
}

func TestAddRemark_NonMemberRejected(t *testing.T) {
	repo := newMemActivityRepository()
	seedActivity(repo, "act-1")
	teams := new(MockTeamRepository)
	notifier := &recordingNotifier{}
	uc := NewAddRemarkUseCase(repo, teams, notifier)

	teams.On("IsMember", mock.Anything, "team-1", "outsider").Return(false, nil)

	_, err := uc.Execute(context.Background(), AddRemarkInput{
		ActivityID: "act-1",
		AuthorID:   "outsider",
		Text:       "hello",
	})
	assert.ErrorIs(t, err, collab.ErrNotMember)

	remarks, _ := repo.ListRemarks(context.Background(), "act-1")
	assert.Empty(t, remarks)
	assert.Empty(t, notifier.recorded())
}

func TestAddRemark_EmptyTextRejectedBeforeStorage(t *testing.T) {
	uc := NewAddRemarkUseCase(newMemActivityRepository(), new(MockTeamRepository), &recordingNotifier{})

	_, err := uc.Execute(context.Background(), AddRemarkInput{
		ActivityID: "act-1",
		AuthorID:   "u1",
		Text:       "   ",
	})
	assert.ErrorIs(t, err, collab.ErrEmptyRemark)
}
