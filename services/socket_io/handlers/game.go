package handlers

import (
	models "Pairly/models/postgres"
	"Pairly/services/games/guessanswer"
	"Pairly/services/games/twentyq"
	state_sync "Pairly/services/sync"
	"Pairly/utils"
	"encoding/json"
	"errors"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

var errNoGameDocument = errors.New("the game has not been set up yet")

// activeEngine returns the caller's sync engine for the lobby, which exists
// once join_lobby succeeded.
func activeEngine(env *Env, client *socket.Socket, username, lobbyID string) (*state_sync.Engine, bool) {
	engine, ok := env.Sio.GetEngine(username)
	if !ok || engine.LobbyID != lobbyID {
		emitError(client, errors.New("join the lobby room first"))
		return nil, false
	}
	return engine, true
}

// lobbyRoles returns the host and the other participant of a two-player
// lobby.
func lobbyRoles(env *Env, lobbyID string) (host string, guest string, err error) {
	info, err := env.Lobbies.GetLobby(lobbyID)
	if err != nil {
		return "", "", err
	}
	host = info.Lobby.HostUsername
	for _, p := range info.Participants {
		if p.Username != host {
			guest = p.Username
		}
	}
	if guest == "" {
		return "", "", errors.New("waiting for a second player")
	}
	return host, guest, nil
}

func loadGuessAnswer(engine *state_sync.Engine) (*guessanswer.State, error) {
	doc, err := engine.Latest()
	if err != nil {
		if err == state_sync.ErrNoDocument {
			return nil, errNoGameDocument
		}
		return nil, err
	}
	if len(doc.GameData) == 0 || string(doc.GameData) == "null" {
		return nil, errNoGameDocument
	}
	var state guessanswer.State
	if err := json.Unmarshal(doc.GameData, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func loadTwentyQ(engine *state_sync.Engine) (*twentyq.State, error) {
	doc, err := engine.Latest()
	if err != nil {
		if err == state_sync.ErrNoDocument {
			return nil, errNoGameDocument
		}
		return nil, err
	}
	if len(doc.GameData) == 0 || string(doc.GameData) == "null" {
		return nil, errNoGameDocument
	}
	var state twentyq.State
	if err := json.Unmarshal(doc.GameData, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Start game. Host-only; needs a full lobby with everyone ready. Moves the
// lobby to playing and publishes the initial game-state document.
func HandleStartGame(env *Env, client *socket.Socket, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		lobbyID, ok := stringArg(args, 0)
		if !ok {
			emitError(client, errors.New("missing lobby id"))
			return
		}

		lobby, err := utils.CheckLobbyExists(env.DB, lobbyID)
		if err != nil {
			emitError(client, err)
			return
		}

		info, err := env.Lobbies.GetLobby(lobbyID)
		if err != nil {
			emitError(client, err)
			return
		}
		if info.Lobby.CurrentPlayers < info.Lobby.MaxPlayers {
			emitError(client, errors.New("waiting for more players"))
			return
		}
		for _, p := range info.Participants {
			if !p.IsReady {
				emitError(client, errors.New("not everyone is ready"))
				return
			}
		}

		engine, ok := activeEngine(env, client, username, lobbyID)
		if !ok {
			return
		}

		// Host-only: UpdateLobbyStatus enforces it
		if err := env.Lobbies.UpdateLobbyStatus(lobbyID, username, models.LobbyStatusPlaying); err != nil {
			emitError(client, err)
			return
		}

		host, guest, err := lobbyRoles(env, lobbyID)
		if err != nil {
			emitError(client, err)
			return
		}

		var initial interface{}
		switch lobby.GameType {
		case models.GameTypeGuessAnswer:
			initial = guessanswer.NewState(host, guest)
		case models.GameTypeTwentyQuestions:
			initial = twentyq.NewState(host, guest)
		default:
			emitError(client, errors.New("unknown game type"))
			return
		}

		if err := engine.PublishState(nil, initial); err != nil {
			emitError(client, err)
			return
		}

		log.Printf("[GAME] Lobby %s started a %s game", lobbyID, lobby.GameType)
		client.Emit("game_started", gin.H{"lobby_id": lobbyID, "game_type": lobby.GameType})
	}
}

// Category selection, dispatched on the lobby's game type. Host-only in both
// games.
func HandleSelectCategory(env *Env, client *socket.Socket, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		lobbyID, ok := stringArg(args, 0)
		if !ok {
			emitError(client, errors.New("missing lobby id"))
			return
		}
		category, ok := stringArg(args, 1)
		if !ok {
			emitError(client, errors.New("missing category"))
			return
		}

		lobby, err := utils.CheckLobbyExists(env.DB, lobbyID)
		if err != nil {
			emitError(client, err)
			return
		}
		engine, ok := activeEngine(env, client, username, lobbyID)
		if !ok {
			return
		}
		if err := engine.RequireHost(); err != nil {
			emitError(client, err)
			return
		}

		switch lobby.GameType {
		case models.GameTypeGuessAnswer:
			state, err := loadGuessAnswer(engine)
			if err == errNoGameDocument {
				// "Play again" cleared the document; rebuild from the roles
				host, guest, rerr := lobbyRoles(env, lobbyID)
				if rerr != nil {
					emitError(client, rerr)
					return
				}
				state, err = guessanswer.NewState(host, guest), nil
			}
			if err != nil {
				emitError(client, err)
				return
			}
			if err := state.SelectCategory(username, category); err != nil {
				emitError(client, err)
				return
			}
			if err := engine.PublishState(state.Turn(), state); err != nil {
				emitError(client, err)
				return
			}
		case models.GameTypeTwentyQuestions:
			state, err := loadTwentyQ(engine)
			if err != nil {
				emitError(client, err)
				return
			}
			if err := state.SelectCategory(username, category); err != nil {
				emitError(client, err)
				return
			}
			if err := engine.PublishState(state.Turn(), state); err != nil {
				emitError(client, err)
				return
			}
		}

		client.Emit("category_selected", gin.H{"lobby_id": lobbyID, "category": category})
	}
}

// Submit a guess, dispatched on the lobby's game type. In Guess-My-Answer
// the guesser picks the option they believe their partner chose; in Twenty
// Questions the guesser names the secret item outright.
func HandleSubmitGuess(env *Env, client *socket.Socket, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		lobbyID, ok := stringArg(args, 0)
		if !ok {
			emitError(client, errors.New("missing lobby id"))
			return
		}
		guess, ok := stringArg(args, 1)
		if !ok {
			emitError(client, errors.New("missing guess"))
			return
		}

		lobby, err := utils.CheckLobbyExists(env.DB, lobbyID)
		if err != nil {
			emitError(client, err)
			return
		}
		engine, ok := activeEngine(env, client, username, lobbyID)
		if !ok {
			return
		}
		if err := engine.RequireTurn(); err != nil {
			emitError(client, err)
			return
		}

		result := gin.H{"lobby_id": lobbyID}
		switch lobby.GameType {
		case models.GameTypeGuessAnswer:
			state, err := loadGuessAnswer(engine)
			if err != nil {
				emitError(client, err)
				return
			}
			if err := state.SubmitGuess(username, guess); err != nil {
				emitError(client, err)
				return
			}
			if err := engine.PublishState(state.Turn(), state); err != nil {
				emitError(client, err)
				return
			}
			result["correct"] = state.SelectedGuess == state.SelectedAnswer
		case models.GameTypeTwentyQuestions:
			state, err := loadTwentyQ(engine)
			if err != nil {
				emitError(client, err)
				return
			}
			if err := state.SubmitGuess(username, guess); err != nil {
				emitError(client, err)
				return
			}
			if err := engine.PublishState(state.Turn(), state); err != nil {
				emitError(client, err)
				return
			}
			result["correct"] = state.GameStatus == twentyq.StatusFinished && state.Winner == username
		}

		client.Emit("guess_submitted", result)
	}
}

// Play again. Host-only. Guess-My-Answer clears the document entirely (the
// category reselection restarts the whole flow); Twenty Questions resets to
// a fresh categorySelect state.
func HandlePlayAgain(env *Env, client *socket.Socket, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		lobbyID, ok := stringArg(args, 0)
		if !ok {
			emitError(client, errors.New("missing lobby id"))
			return
		}

		lobby, err := utils.CheckLobbyExists(env.DB, lobbyID)
		if err != nil {
			emitError(client, err)
			return
		}
		engine, ok := activeEngine(env, client, username, lobbyID)
		if !ok {
			return
		}
		if err := engine.RequireHost(); err != nil {
			emitError(client, err)
			return
		}

		switch lobby.GameType {
		case models.GameTypeGuessAnswer:
			err = engine.PublishState(nil, nil)
		case models.GameTypeTwentyQuestions:
			host, guest, rerr := lobbyRoles(env, lobbyID)
			if rerr != nil {
				emitError(client, rerr)
				return
			}
			err = engine.PublishState(nil, twentyq.NewState(host, guest))
		}
		if err != nil {
			emitError(client, err)
			return
		}
		client.Emit("game_reset", gin.H{"lobby_id": lobbyID})
	}
}

// Push the caller's current reconciled view on demand (e.g. after a
// client-side refresh).
func HandleGetGameState(env *Env, client *socket.Socket, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		lobbyID, ok := stringArg(args, 0)
		if !ok {
			emitError(client, errors.New("missing lobby id"))
			return
		}
		engine, ok := activeEngine(env, client, username, lobbyID)
		if !ok {
			return
		}
		if err := engine.Reconcile(); err != nil {
			emitError(client, err)
			return
		}
		emitView(client, lobbyID, engine.Snapshot())
	}
}
