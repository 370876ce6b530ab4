package handlers

import (
	redis_models "Pairly/models/redis"
	state_sync "Pairly/services/sync"
	"Pairly/utils"
	"errors"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Function to handle the act of joining a lobby room. The user must already
// be a member (joined via the API); the client is put into the socket.io
// room and gets a sync engine that keeps its view converged with the shared
// state document through notifications plus the polling fallback.
func HandleJoinLobby(env *Env, client *socket.Socket, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		lobbyID, ok := stringArg(args, 0)
		if !ok {
			emitError(client, errors.New("missing lobby id"))
			return
		}
		log.Printf("[JOIN] User %s joining lobby room %s, Socket ID: %s", username, lobbyID, client.Id())

		lobby, err := utils.CheckLobbyExists(env.DB, lobbyID)
		if err != nil {
			emitError(client, err)
			return
		}
		if err := utils.UserIsInLobby(env.DB, lobbyID, username, client); err != nil {
			return
		}

		client.Join(socket.Room(lobbyID))

		// One engine per open lobby per user; replaces a previous one from a
		// stale session
		engine := state_sync.NewEngine(lobbyID, username, lobby.HostUsername, env.Store, env.Notifier)
		engine.OnChange(func(view state_sync.View) {
			emitView(client, lobbyID, view)
		})
		if err := engine.Start(); err != nil {
			log.Printf("[JOIN-ERROR] Engine start for %s in lobby %s: %v", username, lobbyID, err)
			emitError(client, errors.New("could not subscribe to lobby updates"))
			return
		}
		env.Sio.SetEngine(username, engine)

		// Presence bookkeeping
		if err := env.Redis.SavePlayerPresence(&redis_models.PlayerPresence{
			Username: username,
			Status:   redis_models.StatusOnline,
			LastPing: time.Now().Unix(),
			SocketID: string(client.Id()),
		}); err != nil {
			log.Printf("[JOIN-WARN] Presence save for %s: %v", username, err)
		}

		log.Printf("[JOIN-SUCCESS] User %s joined lobby room %s", username, lobbyID)
		client.Emit("joined_lobby", gin.H{
			"lobby_id":  lobbyID,
			"host":      lobby.HostUsername,
			"game_type": lobby.GameType,
			"message":   "Welcome to the lobby!",
		})
	}
}

// Exit a lobby voluntarily. Removes membership, tears down the engine and
// leaves the socket room.
func HandleExitLobby(env *Env, client *socket.Socket, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		lobbyID, ok := stringArg(args, 0)
		if !ok {
			emitError(client, errors.New("missing lobby id"))
			return
		}

		if err := env.Lobbies.LeaveLobby(lobbyID, username); err != nil {
			emitError(client, err)
			return
		}

		// Last leaver dissolves the lobby; its document goes with it
		if _, err := utils.CheckLobbyExists(env.DB, lobbyID); err != nil {
			if cerr := env.Store.Clear(lobbyID); cerr != nil {
				log.Printf("[EXIT-WARN] Clearing document for lobby %s: %v", lobbyID, cerr)
			}
		}

		env.Sio.RemoveEngine(username)
		client.Leave(socket.Room(lobbyID))
		client.Emit("exited_lobby", gin.H{"lobby_id": lobbyID})
	}
}

// Toggle the caller's own ready flag.
func HandleSetReady(env *Env, client *socket.Socket, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		lobbyID, ok := stringArg(args, 0)
		if !ok {
			emitError(client, errors.New("missing lobby id"))
			return
		}
		ready, ok := boolArg(args, 1)
		if !ok {
			emitError(client, errors.New("missing ready flag"))
			return
		}

		if err := env.Lobbies.SetReadyStatus(lobbyID, username, ready); err != nil {
			emitError(client, err)
			return
		}
		client.Emit("ready_updated", gin.H{"lobby_id": lobbyID, "ready": ready})
	}
}

// Function to handle socket.io client disconnections. Membership is kept so
// a refreshed client can rejoin and recover mid-game; only the presence info
// and the sync engine are torn down.
func HandleDisconnecting(env *Env, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] User %s disconnecting", username)

		env.Sio.RemoveEngine(username)
		env.Sio.RemoveConnection(username)

		if err := env.Redis.SavePlayerPresence(&redis_models.PlayerPresence{
			Username: username,
			Status:   redis_models.StatusOffline,
			LastPing: time.Now().Unix(),
		}); err != nil {
			log.Printf("[DISCONNECT-WARN] Presence save for %s: %v", username, err)
		}
	}
}
