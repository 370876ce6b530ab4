package lobby

import "errors"

// Precondition errors raised before any write, surfaced verbatim to the UI.
var (
	ErrLobbyNotFound        = errors.New("lobby not found")
	ErrLobbyNotWaiting      = errors.New("lobby is not waiting for players")
	ErrLobbyFull            = errors.New("lobby is full")
	ErrNotHost              = errors.New("only the host can do that")
	ErrNotMember            = errors.New("user is not a member of the lobby")
	ErrAlreadyMember        = errors.New("user is already a member of the lobby")
	ErrDuplicateInvitation  = errors.New("there is already a pending invitation for that user")
	ErrInvitationNotPending = errors.New("invitation is not pending")
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrBadGameType          = errors.New("unknown game type")
	ErrBadStatus            = errors.New("unknown lobby status")
	ErrStatusBackward       = errors.New("lobby status can only move forward")
)
