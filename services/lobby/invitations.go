package lobby

import (
	models "Pairly/models/postgres"
	redis_models "Pairly/models/redis"
)

// InviteFriendToLobby creates a pending invitation. Host-only, and only
// while the lobby is still waiting with a free seat.
func (s *Service) InviteFriendToLobby(lobbyID, host, invitee string) error {
	err := s.Repo.Atomically(func(tx Tx) error {
		lobby, err := tx.LobbyForUpdate(lobbyID)
		if err != nil {
			return err
		}
		if lobby.HostUsername != host {
			return ErrNotHost
		}
		if lobby.Status != models.LobbyStatusWaiting {
			return ErrLobbyNotWaiting
		}
		if lobby.CurrentPlayers >= lobby.MaxPlayers {
			return ErrLobbyFull
		}

		member, err := tx.IsMember(lobbyID, invitee)
		if err != nil {
			return err
		}
		if member {
			return ErrAlreadyMember
		}

		existing, err := tx.Invitation(lobbyID, invitee)
		if err != nil {
			return err
		}
		if existing != nil {
			if existing.Status == models.InvitationPending {
				return ErrDuplicateInvitation
			}
			// A resolved invitation is terminal and never reused; a
			// re-invite replaces it with a fresh pending record
			if err := tx.DeleteInvitation(lobbyID, invitee); err != nil {
				return err
			}
		}

		return tx.CreateInvitation(&models.LobbyInvitation{
			LobbyID:         lobbyID,
			SenderUsername:  host,
			InvitedUsername: invitee,
			Status:          models.InvitationPending,
		})
	})
	if err != nil {
		return err
	}

	s.notify(lobbyID, redis_models.TableInvitations, host)
	return nil
}

// AcceptLobbyInvitation marks the invitation accepted and performs the same
// membership insert as JoinLobby. Fails if the lobby filled or started since
// the invitation was sent.
func (s *Service) AcceptLobbyInvitation(lobbyID, invitee string) error {
	err := s.Repo.Atomically(func(tx Tx) error {
		if _, err := pendingInvitation(tx, lobbyID, invitee); err != nil {
			return err
		}

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

		if err := tx.SetInvitationStatus(lobbyID, invitee, models.InvitationAccepted); err != nil {
			return err
		}

		if err := tx.AddParticipant(&models.LobbyParticipant{LobbyID: lobbyID, Username: invitee}); err != nil {
			return err
		}
		return tx.AdjustPlayerCount(lobbyID, 1)
	})
	if err != nil {
		return err
	}

	s.notify(lobbyID, redis_models.TableInvitations, invitee)
	s.notify(lobbyID, redis_models.TableLobbies, invitee)
	return nil
}

// DeclineLobbyInvitation marks the invitation declined. Terminal.
func (s *Service) DeclineLobbyInvitation(lobbyID, invitee string) error {
	err := s.Repo.Atomically(func(tx Tx) error {
		if _, err := pendingInvitation(tx, lobbyID, invitee); err != nil {
			return err
		}
		return tx.SetInvitationStatus(lobbyID, invitee, models.InvitationDeclined)
	})
	if err != nil {
		return err
	}

	s.notify(lobbyID, redis_models.TableInvitations, invitee)
	return nil
}

// ListPendingInvitations returns the user's inbox of pending invitations,
// newest first.
func (s *Service) ListPendingInvitations(username string) ([]models.LobbyInvitation, error) {
	return s.Repo.PendingInvitationsFor(username)
}

// pendingInvitation loads the invitation and checks the caller really is the
// invitee of a still-pending one.
func pendingInvitation(tx Tx, lobbyID, invitee string) (*models.LobbyInvitation, error) {
	invitation, err := tx.Invitation(lobbyID, invitee)
	if err != nil {
		return nil, err
	}
	if invitation == nil {
		return nil, ErrInvitationNotFound
	}
	if invitation.Status != models.InvitationPending {
		return nil, ErrInvitationNotPending
	}
	return invitation, nil
}
