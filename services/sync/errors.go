package sync

import "errors"

var (
	// ErrNotYourTurn is returned when a mutating action is attempted by a
	// participant that does not own the current turn. Surfaced explicitly
	// instead of silently dropping the action.
	ErrNotYourTurn = errors.New("it is not your turn")
	ErrNotHost     = errors.New("only the host can perform this action")
	ErrLobbyGone   = errors.New("lobby no longer exists")
	ErrNoDocument  = errors.New("no game state document for this lobby")
)
