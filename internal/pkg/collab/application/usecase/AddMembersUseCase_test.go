package usecase

import (
	"context"
	"testing"

	collab "go-collab/internal/pkg/collab/application/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddMembers_DuplicateInputAddsOnce(t *testing.T) {
	teams := new(MockTeamRepository)
	notifier := &recordingNotifier{}
	uc := NewAddMembersUseCase(teams, notifier)

	teams.On("FindByID", mock.Anything, "t1").Return(&collab.Team{ID: "t1", Name: "backend"}, nil)
	// The duplicate in the input is deduped before storage is touched, so
	// exactly one insert happens.
	teams.On("AddMember", mock.Anything, mock.MatchedBy(func(m collab.Membership) bool {
		return m.TeamID == "t1" && m.UserID == "u3"
	})).Return(true, nil).Once()

	added, err := uc.Execute(context.Background(), AddMembersInput{
		TeamID:  "t1",
		UserIDs: []string{"u3", "u3"},
		ActorID: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"u3"}, added)

	events := notifier.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, collab.EventMemberAdded, events[0].Type)
	assert.Equal(t, "u3", events[0].SubjectID)
	assert.Equal(t, "backend", events[0].TeamName)
	teams.AssertExpectations(t)
}

func TestAddMembers_InputSliceLeftUntouched(t *testing.T) {
	teams := new(MockTeamRepository)
	uc := NewAddMembersUseCase(teams, &recordingNotifier{})

	teams.On("FindByID", mock.Anything, "t1").Return(&collab.Team{ID: "t1", Name: "backend"}, nil)
	teams.On("AddMember", mock.Anything, mock.Anything).Return(true, nil)

	userIDs := []string{"u3", "u3", "u4"}
	_, err := uc.Execute(context.Background(), AddMembersInput{
		TeamID:  "t1",
		UserIDs: userIDs,
		ActorID: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"u3", "u3", "u4"}, userIDs, "deduplication must not rewrite the caller's slice")
}

func TestAddMembers_ExistingMemberSilentlySkipped(t *testing.T) {
	teams := new(MockTeamRepository)
	notifier := &recordingNotifier{}
	uc := NewAddMembersUseCase(teams, notifier)

	teams.On("FindByID", mock.Anything, "t1").Return(&collab.Team{ID: "t1", Name: "backend"}, nil)
	teams.On("AddMember", mock.Anything, mock.MatchedBy(func(m collab.Membership) bool {
		return m.UserID == "existing"
	})).Return(false, nil).Once()
	teams.On("AddMember", mock.Anything, mock.MatchedBy(func(m collab.Membership) bool {
		return m.UserID == "fresh"
	})).Return(true, nil).Once()

	added, err := uc.Execute(context.Background(), AddMembersInput{
		TeamID:  "t1",
		UserIDs: []string{"existing", "fresh"},
		ActorID: "admin",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, added)

	events := notifier.recorded()
	require.Len(t, events, 1, "no MemberAdded event for ids already members")
	assert.Equal(t, "fresh", events[0].SubjectID)
}

func TestAddMembers_UnknownTeam(t *testing.T) {
	teams := new(MockTeamRepository)
	uc := NewAddMembersUseCase(teams, &recordingNotifier{})

	teams.On("FindByID", mock.Anything, "ghost").Return(nil, collab.ErrNotFound)

	_, err := uc.Execute(context.Background(), AddMembersInput{TeamID: "ghost", UserIDs: []string{"u1"}})
	assert.ErrorIs(t, err, collab.ErrNotFound)
}

func TestRemoveMember_RemovesAndEmits(t *testing.T) {
	teams := new(MockTeamRepository)
	notifier := &recordingNotifier{}
	uc := NewRemoveMemberUseCase(teams, notifier)

	teams.On("FindByID", mock.Anything, "t1").Return(&collab.Team{ID: "t1", Name: "backend"}, nil)
	teams.On("RemoveMember", mock.Anything, "t1", "u2").Return(true, nil)

	removed, err := uc.Execute(context.Background(), RemoveMemberInput{TeamID: "t1", UserID: "u2", ActorID: "admin"})
	require.NoError(t, err)
	assert.True(t, removed)

	events := notifier.recorded()
	require.Len(t, events, 1)
	assert.Equal(t, collab.EventMemberRemoved, events[0].Type)
	assert.Equal(t, "u2", events[0].SubjectID)
}

func TestRemoveMember_NonMemberIsNoop(t *testing.T) {
	teams := new(MockTeamRepository)
	notifier := &recordingNotifier{}
	uc := NewRemoveMemberUseCase(teams, notifier)

	teams.On("FindByID", mock.Anything, "t1").Return(&collab.Team{ID: "t1", Name: "backend"}, nil)
	teams.On("RemoveMember", mock.Anything, "t1", "stranger").Return(false, nil)

	removed, err := uc.Execute(context.Background(), RemoveMemberInput{TeamID: "t1", UserID: "stranger", ActorID: "admin"})
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Empty(t, notifier.recorded())
}
