package redis

import "time"

// Tables a change event can refer to
const (
	TableLobbies     = "game_lobbies"
	TableInvitations = "lobby_invitations"
	TableGameStates  = "game_states"
)

// StateChangeEvent is the payload published on a lobby's notifier channel
// whenever one of its rows changes. Delivery is at-least-once and unordered,
// so consumers must re-read the row instead of trusting the event contents.
type StateChangeEvent struct {
	EventID   string    `json:"event_id"`
	LobbyID   string    `json:"lobby_id"`
	Table     string    `json:"table"`
	Actor     string    `json:"actor"` // username that caused the change
	Timestamp time.Time `json:"timestamp"`
}
