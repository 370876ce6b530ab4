package handlers

import (
	lobby_service "Pairly/services/lobby"
	"Pairly/services/redis"
	socketio_types "Pairly/services/socket_io/types"
	state_sync "Pairly/services/sync"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// Env bundles what each event handler needs: the DB, the Redis wrapper, the
// document store + notifier pair and the lobby service, all shared across
// connections.
type Env struct {
	DB       *gorm.DB
	Redis    *redis.RedisClient
	Store    state_sync.Store
	Notifier state_sync.Notifier
	Lobbies  *lobby_service.Service
	Sio      *socketio_types.SocketServer
}

// stringArg extracts a positional string argument of a socket.io event.
func stringArg(args []interface{}, i int) (string, bool) {
	if i >= len(args) {
		return "", false
	}
	s, ok := args[i].(string)
	return s, ok
}

// boolArg extracts a positional bool argument of a socket.io event.
func boolArg(args []interface{}, i int) (bool, bool) {
	if i >= len(args) {
		return false, false
	}
	b, ok := args[i].(bool)
	return b, ok
}

// emitError reports a failed action back to the acting client only.
func emitError(client *socket.Socket, err error) {
	client.Emit("error", gin.H{"error": err.Error()})
}

// emitView pushes a reconciled view snapshot to the client. Sent after every
// reconcile pass; rendering it is idempotent on the client side.
func emitView(client *socket.Socket, lobbyID string, view state_sync.View) {
	client.Emit("state_changed", gin.H{
		"lobby_id":        lobbyID,
		"lobby_status":    view.LobbyStatus,
		"in_playing_view": view.InPlayingView,
		"current_turn":    view.CurrentTurn,
		"game":            view.Fields,
	})
}
