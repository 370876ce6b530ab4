package lobby

import (
	"testing"

	models "Pairly/models/postgres"
	redis_models "Pairly/models/redis"
	state_sync "Pairly/services/sync"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *MemoryRepository) {
	t.Helper()
	repo := NewMemoryRepository()
	for _, username := range []string{"alice", "bob", "carol"} {
		repo.AddProfile(models.PlayerProfile{Username: username, DisplayName: username})
	}
	return NewServiceWithRepository(repo, state_sync.NewLocalNotifier()), repo
}

func createTestLobby(t *testing.T, svc *Service, host string) *models.GameLobby {
	t.Helper()
	lobby, err := svc.CreateLobby(host, models.GameTypeGuessAnswer, 2)
	require.NoError(t, err)
	return lobby
}

func TestCreateLobby(t *testing.T) {
	svc, _ := newTestService(t)

	t.Run("Creator becomes the first participant", func(t *testing.T) {
		lobby := createTestLobby(t, svc, "alice")
		assert.Equal(t, models.LobbyStatusWaiting, lobby.Status)
		assert.Equal(t, 1, lobby.CurrentPlayers)

		info, err := svc.GetLobby(lobby.ID)
		require.NoError(t, err)
		require.Len(t, info.Participants, 1)
		assert.Equal(t, "alice", info.Participants[0].Username)
		assert.False(t, info.Participants[0].IsReady)
	})

	t.Run("Unknown game type is rejected", func(t *testing.T) {
		_, err := svc.CreateLobby("alice", "chess", 2)
		assert.ErrorIs(t, err, ErrBadGameType)
	})

	t.Run("Max players is clamped to two", func(t *testing.T) {
		lobby, err := svc.CreateLobby("alice", models.GameTypeTwentyQuestions, 1)
		require.NoError(t, err)
		assert.Equal(t, 2, lobby.MaxPlayers)
	})
}

func TestJoinLobby(t *testing.T) {
	t.Run("Join fills the second seat", func(t *testing.T) {
		svc, _ := newTestService(t)
		lobby := createTestLobby(t, svc, "alice")

		require.NoError(t, svc.JoinLobby(lobby.ID, "bob"))

		info, err := svc.GetLobby(lobby.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, info.Lobby.CurrentPlayers)
		require.Len(t, info.Participants, 2)
		assert.Equal(t, "bob", info.Participants[1].Username)
	})

	t.Run("Full lobby never admits a third player", func(t *testing.T) {
		svc, _ := newTestService(t)
		lobby := createTestLobby(t, svc, "alice")
		require.NoError(t, svc.JoinLobby(lobby.ID, "bob"))

		err := svc.JoinLobby(lobby.ID, "carol")
		assert.ErrorIs(t, err, ErrLobbyFull)

		// The failed join must leave no trace: same count, same members
		info, err := svc.GetLobby(lobby.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, info.Lobby.CurrentPlayers)
		require.Len(t, info.Participants, 2)
		for _, p := range info.Participants {
			assert.NotEqual(t, "carol", p.Username)
		}
	})

	t.Run("Joining twice is rejected", func(t *testing.T) {
		svc, _ := newTestService(t)
		lobby := createTestLobby(t, svc, "alice")
		assert.ErrorIs(t, svc.JoinLobby(lobby.ID, "alice"), ErrAlreadyMember)
	})

	t.Run("A playing lobby rejects joins", func(t *testing.T) {
		svc, _ := newTestService(t)
		lobby := createTestLobby(t, svc, "alice")
		require.NoError(t, svc.JoinLobby(lobby.ID, "bob"))
		require.NoError(t, svc.UpdateLobbyStatus(lobby.ID, "alice", models.LobbyStatusPlaying))

		// bob left, but the game already started
		require.NoError(t, svc.LeaveLobby(lobby.ID, "bob"))
		assert.ErrorIs(t, svc.JoinLobby(lobby.ID, "carol"), ErrLobbyNotWaiting)
	})

	t.Run("Unknown lobby id", func(t *testing.T) {
		svc, _ := newTestService(t)
		assert.ErrorIs(t, svc.JoinLobby("ZZZZ", "bob"), ErrLobbyNotFound)
	})
}

func TestLeaveLobby(t *testing.T) {
	t.Run("Leaving decrements the count", func(t *testing.T) {
		svc, _ := newTestService(t)
		lobby := createTestLobby(t, svc, "alice")
		require.NoError(t, svc.JoinLobby(lobby.ID, "bob"))

		require.NoError(t, svc.LeaveLobby(lobby.ID, "bob"))

		info, err := svc.GetLobby(lobby.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, info.Lobby.CurrentPlayers)
	})

	t.Run("Last participant deletes the lobby", func(t *testing.T) {
		svc, _ := newTestService(t)
		lobby := createTestLobby(t, svc, "alice")

		require.NoError(t, svc.LeaveLobby(lobby.ID, "alice"))

		_, err := svc.GetLobby(lobby.ID)
		assert.ErrorIs(t, err, ErrLobbyNotFound)
	})

	t.Run("Non-member cannot leave", func(t *testing.T) {
		svc, _ := newTestService(t)
		lobby := createTestLobby(t, svc, "alice")
		assert.ErrorIs(t, svc.LeaveLobby(lobby.ID, "bob"), ErrNotMember)
	})
}

func TestSetReadyStatus(t *testing.T) {
	svc, _ := newTestService(t)
	lobby := createTestLobby(t, svc, "alice")
	require.NoError(t, svc.JoinLobby(lobby.ID, "bob"))

	t.Run("Ready flag is per participant", func(t *testing.T) {
		require.NoError(t, svc.SetReadyStatus(lobby.ID, "bob", true))

		info, err := svc.GetLobby(lobby.ID)
		require.NoError(t, err)
		for _, p := range info.Participants {
			assert.Equal(t, p.Username == "bob", p.IsReady)
		}
	})

	t.Run("Non-member cannot set ready", func(t *testing.T) {
		assert.ErrorIs(t, svc.SetReadyStatus(lobby.ID, "carol", true), ErrNotMember)
	})
}

func TestUpdateLobbyStatus(t *testing.T) {
	svc, _ := newTestService(t)
	lobby := createTestLobby(t, svc, "alice")
	require.NoError(t, svc.JoinLobby(lobby.ID, "bob"))

	t.Run("Only the host can change the status", func(t *testing.T) {
		assert.ErrorIs(t, svc.UpdateLobbyStatus(lobby.ID, "bob", models.LobbyStatusPlaying), ErrNotHost)
	})

	t.Run("Unknown status is rejected", func(t *testing.T) {
		assert.ErrorIs(t, svc.UpdateLobbyStatus(lobby.ID, "alice", "paused"), ErrBadStatus)
	})

	t.Run("Status only moves forward", func(t *testing.T) {
		require.NoError(t, svc.UpdateLobbyStatus(lobby.ID, "alice", models.LobbyStatusPlaying))
		assert.ErrorIs(t, svc.UpdateLobbyStatus(lobby.ID, "alice", models.LobbyStatusWaiting), ErrStatusBackward)

		info, err := svc.GetLobby(lobby.ID)
		require.NoError(t, err)
		assert.Equal(t, models.LobbyStatusPlaying, info.Lobby.Status)
	})
}

func TestInvitationLifecycle(t *testing.T) {
	t.Run("Only the host can invite", func(t *testing.T) {
		svc, _ := newTestService(t)
		lobby := createTestLobby(t, svc, "alice")
		require.NoError(t, svc.JoinLobby(lobby.ID, "bob"))
		assert.ErrorIs(t, svc.InviteFriendToLobby(lobby.ID, "bob", "carol"), ErrNotHost)
	})

	t.Run("Duplicate pending invitation is rejected", func(t *testing.T) {
		svc, _ := newTestService(t)
		lobby := createTestLobby(t, svc, "alice")
		require.NoError(t, svc.InviteFriendToLobby(lobby.ID, "alice", "bob"))
		assert.ErrorIs(t, svc.InviteFriendToLobby(lobby.ID, "alice", "bob"), ErrDuplicateInvitation)
	})

	t.Run("Accepting seats the invitee", func(t *testing.T) {
		svc, _ := newTestService(t)
		lobby := createTestLobby(t, svc, "alice")
		require.NoError(t, svc.InviteFriendToLobby(lobby.ID, "alice", "bob"))

		require.NoError(t, svc.AcceptLobbyInvitation(lobby.ID, "bob"))

		info, err := svc.GetLobby(lobby.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, info.Lobby.CurrentPlayers)
		require.Len(t, info.Participants, 2)

		// Resolved: the invitation leaves the inbox and cannot be reused
		pending, err := svc.ListPendingInvitations("bob")
		require.NoError(t, err)
		assert.Empty(t, pending)
		assert.ErrorIs(t, svc.AcceptLobbyInvitation(lobby.ID, "bob"), ErrInvitationNotPending)
	})

	t.Run("Declining is terminal but allows a re-invite", func(t *testing.T) {
		svc, _ := newTestService(t)
		lobby := createTestLobby(t, svc, "alice")
		require.NoError(t, svc.InviteFriendToLobby(lobby.ID, "alice", "bob"))

		require.NoError(t, svc.DeclineLobbyInvitation(lobby.ID, "bob"))
		assert.ErrorIs(t, svc.AcceptLobbyInvitation(lobby.ID, "bob"), ErrInvitationNotPending)

		// A fresh invitation replaces the declined one
		require.NoError(t, svc.InviteFriendToLobby(lobby.ID, "alice", "bob"))
		require.NoError(t, svc.AcceptLobbyInvitation(lobby.ID, "bob"))
	})

	t.Run("Accept fails once the lobby filled up", func(t *testing.T) {
		svc, _ := newTestService(t)
		lobby := createTestLobby(t, svc, "alice")
		require.NoError(t, svc.InviteFriendToLobby(lobby.ID, "alice", "carol"))
		require.NoError(t, svc.JoinLobby(lobby.ID, "bob"))

		assert.ErrorIs(t, svc.AcceptLobbyInvitation(lobby.ID, "carol"), ErrLobbyFull)

		info, err := svc.GetLobby(lobby.ID)
		require.NoError(t, err)
		assert.Equal(t, 2, info.Lobby.CurrentPlayers)
		require.Len(t, info.Participants, 2)
	})

	t.Run("Only the invitee sees or resolves the invitation", func(t *testing.T) {
		svc, _ := newTestService(t)
		lobby := createTestLobby(t, svc, "alice")
		require.NoError(t, svc.InviteFriendToLobby(lobby.ID, "alice", "bob"))

		assert.ErrorIs(t, svc.AcceptLobbyInvitation(lobby.ID, "carol"), ErrInvitationNotFound)
		assert.ErrorIs(t, svc.DeclineLobbyInvitation(lobby.ID, "carol"), ErrInvitationNotFound)

		pending, err := svc.ListPendingInvitations("bob")
		require.NoError(t, err)
		require.Len(t, pending, 1)
		assert.Equal(t, "alice", pending[0].SenderUsername)
		assert.Equal(t, lobby.ID, pending[0].LobbyID)
	})
}

func TestLobbyFlowFromInviteToStart(t *testing.T) {
	svc, _ := newTestService(t)

	lobby := createTestLobby(t, svc, "alice")
	require.NoError(t, svc.InviteFriendToLobby(lobby.ID, "alice", "bob"))
	require.NoError(t, svc.AcceptLobbyInvitation(lobby.ID, "bob"))
	require.NoError(t, svc.SetReadyStatus(lobby.ID, "alice", true))
	require.NoError(t, svc.SetReadyStatus(lobby.ID, "bob", true))
	require.NoError(t, svc.UpdateLobbyStatus(lobby.ID, "alice", models.LobbyStatusPlaying))

	info, err := svc.GetLobby(lobby.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LobbyStatusPlaying, info.Lobby.Status)
	for _, p := range info.Participants {
		assert.True(t, p.IsReady)
	}

	// No late joins once the couple is playing
	assert.ErrorIs(t, svc.JoinLobby(lobby.ID, "carol"), ErrLobbyNotWaiting)
}

func TestMutationsPublishChangeEvents(t *testing.T) {
	repo := NewMemoryRepository()
	repo.AddProfile(models.PlayerProfile{Username: "alice"})
	repo.AddProfile(models.PlayerProfile{Username: "bob"})
	notifier := state_sync.NewLocalNotifier()
	svc := NewServiceWithRepository(repo, notifier)

	lobby := createTestLobby(t, svc, "alice")

	var events []*redis_models.StateChangeEvent
	unsubscribe, err := notifier.Subscribe(lobby.ID, func(e *redis_models.StateChangeEvent) {
		events = append(events, e)
	})
	require.NoError(t, err)
	defer unsubscribe()

	require.NoError(t, svc.JoinLobby(lobby.ID, "bob"))
	require.NoError(t, svc.SetReadyStatus(lobby.ID, "bob", true))

	require.Len(t, events, 2)
	assert.Equal(t, redis_models.TableLobbies, events[0].Table)
	assert.Equal(t, "bob", events[0].Actor)
}
