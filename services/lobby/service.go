package lobby

import (
	models "Pairly/models/postgres"
	redis_models "Pairly/models/redis"
	state_sync "Pairly/services/sync"
	"log"

	"gorm.io/gorm"
)

// Service implements the lobby lifecycle: create/join/leave, ready toggling,
// host-only status transitions and the invitation flow. Every mutation is
// made visible to other participants only through the change notifier or the
// polling fallback; there is no direct push between clients.
type Service struct {
	Repo     Repository
	Notifier state_sync.Notifier
}

func NewService(db *gorm.DB, notifier state_sync.Notifier) *Service {
	return &Service{Repo: NewGormRepository(db), Notifier: notifier}
}

// NewServiceWithRepository wires an explicit repository. Tests use it with
// the in-memory one.
func NewServiceWithRepository(repo Repository, notifier state_sync.Notifier) *Service {
	return &Service{Repo: repo, Notifier: notifier}
}

// ParticipantInfo is the denormalized profile snapshot returned with a lobby.
type ParticipantInfo struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	UserIcon    int    `json:"user_icon"`
	IsReady     bool   `json:"is_ready"`
}

// LobbyInfo is a lobby joined with its current participants.
type LobbyInfo struct {
	Lobby        models.GameLobby  `json:"lobby"`
	Participants []ParticipantInfo `json:"participants"`
}

// CreateLobby creates a waiting lobby and auto-adds the creator as a
// not-ready participant.
func (s *Service) CreateLobby(host, gameType string, maxPlayers int) (*models.GameLobby, error) {
	if gameType != models.GameTypeGuessAnswer && gameType != models.GameTypeTwentyQuestions {
		return nil, ErrBadGameType
	}
	if maxPlayers < 2 {
		maxPlayers = 2
	}

	newLobby := models.GameLobby{
		HostUsername:   host,
		GameType:       gameType,
		MaxPlayers:     maxPlayers,
		CurrentPlayers: 1,
		Status:         models.LobbyStatusWaiting,
	}

	err := s.Repo.Atomically(func(tx Tx) error {
		if err := tx.CreateLobby(&newLobby); err != nil {
			return err
		}
		return tx.AddParticipant(&models.LobbyParticipant{
			LobbyID:  newLobby.ID,
			Username: host,
		})
	})
	if err != nil {
		return nil, err
	}
	return &newLobby, nil
}

// GetLobby returns the lobby joined with all current participants and a
// profile snapshot for each. ErrLobbyNotFound when the lobby no longer
// exists (e.g. deleted after its last member left).
func (s *Service) GetLobby(lobbyID string) (*LobbyInfo, error) {
	lobby, participants, err := s.Repo.LobbyWithParticipants(lobbyID)
	if err != nil {
		return nil, err
	}

	info := &LobbyInfo{Lobby: *lobby, Participants: make([]ParticipantInfo, len(participants))}
	for i, p := range participants {
		info.Participants[i] = ParticipantInfo{
			Username:    p.Username,
			DisplayName: p.PlayerProfile.DisplayName,
			UserIcon:    p.PlayerProfile.UserIcon,
			IsReady:     p.IsReady,
		}
	}
	return info, nil
}

// JoinLobby inserts the caller as a participant and bumps the player count.
func (s *Service) JoinLobby(lobbyID, username string) error {
	err := s.Repo.Atomically(func(tx Tx) error {
		lobby, err := tx.LobbyForUpdate(lobbyID)
		if err != nil {
			return err
		}
		if lobby.Status != models.LobbyStatusWaiting {
			return ErrLobbyNotWaiting
		}
		if lobby.CurrentPlayers >= lobby.MaxPlayers {
			return ErrLobbyFull
		}

		member, err := tx.IsMember(lobbyID, username)
		if err != nil {
			return err
		}
		if member {
			return ErrAlreadyMember
		}

		if err := tx.AddParticipant(&models.LobbyParticipant{LobbyID: lobbyID, Username: username}); err != nil {
			return err
		}
		return tx.AdjustPlayerCount(lobbyID, 1)
	})
	if err != nil {
		return err
	}

	s.notify(lobbyID, redis_models.TableLobbies, username)
	return nil
}

// LeaveLobby removes the caller's participant row. The last participant to
// leave deletes the lobby; invitations and the state document go with it
// through the FK cascades.
func (s *Service) LeaveLobby(lobbyID, username string) error {
	err := s.Repo.Atomically(func(tx Tx) error {
		lobby, err := tx.LobbyForUpdate(lobbyID)
		if err != nil {
			return err
		}

		member, err := tx.IsMember(lobbyID, username)
		if err != nil {
			return err
		}
		if !member {
			return ErrNotMember
		}

		if err := tx.RemoveParticipant(lobbyID, username); err != nil {
			return err
		}

		if lobby.CurrentPlayers <= 1 {
			return tx.DeleteLobby(lobbyID)
		}
		return tx.AdjustPlayerCount(lobbyID, -1)
	})
	if err != nil {
		return err
	}

	s.notify(lobbyID, redis_models.TableLobbies, username)
	return nil
}

// SetReadyStatus updates the caller's own ready flag.
func (s *Service) SetReadyStatus(lobbyID, username string, ready bool) error {
	found, err := s.Repo.SetReady(lobbyID, username, ready)
	if err != nil {
		return err
	}
	if !found {
		return ErrNotMember
	}

	s.notify(lobbyID, redis_models.TableLobbies, username)
	return nil
}

// UpdateLobbyStatus is host-only and forward-only: waiting -> playing ->
// finished, never backward.
func (s *Service) UpdateLobbyStatus(lobbyID, username, status string) error {
	if models.StatusRank(status) < 0 {
		return ErrBadStatus
	}

	err := s.Repo.Atomically(func(tx Tx) error {
		lobby, err := tx.LobbyForUpdate(lobbyID)
		if err != nil {
			return err
		}
		if lobby.HostUsername != username {
			return ErrNotHost
		}
		if models.StatusRank(status) < models.StatusRank(lobby.Status) {
			return ErrStatusBackward
		}
		return tx.SetStatus(lobbyID, status)
	})
	if err != nil {
		return err
	}

	s.notify(lobbyID, redis_models.TableLobbies, username)
	return nil
}

func (s *Service) notify(lobbyID, table, actor string) {
	if s.Notifier == nil {
		return
	}
	event := state_sync.NewChangeEvent(lobbyID, table, actor)
	if err := s.Notifier.Publish(lobbyID, event); err != nil {
		// Best effort: the poll loop covers a lost event
		log.Printf("[LOBBY-WARN] Publish change event for lobby %s: %v", lobbyID, err)
	}
}
