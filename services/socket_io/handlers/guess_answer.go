package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Guess-My-Answer: the answerer locks in their own answer to the current
// question.
func HandleSubmitAnswer(env *Env, client *socket.Socket, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		lobbyID, ok := stringArg(args, 0)
		if !ok {
			emitError(client, errors.New("missing lobby id"))
			return
		}
		option, ok := stringArg(args, 1)
		if !ok {
			emitError(client, errors.New("missing answer option"))
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

		state, err := loadGuessAnswer(engine)
		if err != nil {
			emitError(client, err)
			return
		}
		if err := state.SubmitAnswer(username, option); err != nil {
			emitError(client, err)
			return
		}
		if err := engine.PublishState(state.Turn(), state); err != nil {
			emitError(client, err)
			return
		}
		client.Emit("answer_submitted", gin.H{"lobby_id": lobbyID})
	}
}

// Guess-My-Answer: the host moves past a revealed question, on to the next
// question, the second round or the results.
func HandleAdvanceQuestion(env *Env, client *socket.Socket, username string) func(args ...interface{}) {
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
		if err := engine.RequireHost(); err != nil {
			emitError(client, err)
			return
		}

		state, err := loadGuessAnswer(engine)
		if err != nil {
			emitError(client, err)
			return
		}
		if err := state.Advance(username); err != nil {
			emitError(client, err)
			return
		}

		if err := engine.PublishState(state.Turn(), state); err != nil {
			emitError(client, err)
			return
		}
		client.Emit("question_advanced", gin.H{"lobby_id": lobbyID, "phase": state.Phase})
	}
}
