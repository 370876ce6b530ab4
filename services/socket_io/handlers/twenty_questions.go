package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
)

// Twenty Questions: the host (answerer) fixes the secret item. An empty item
// lets the backend pick one at random from the category.
func HandleSelectSecretItem(env *Env, client *socket.Socket, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		lobbyID, ok := stringArg(args, 0)
		if !ok {
			emitError(client, errors.New("missing lobby id"))
			return
		}
		item, _ := stringArg(args, 1)

		engine, ok := activeEngine(env, client, username, lobbyID)
		if !ok {
			return
		}
		if err := engine.RequireHost(); err != nil {
			emitError(client, err)
			return
		}

		state, err := loadTwentyQ(engine)
		if err != nil {
			emitError(client, err)
			return
		}
		if err := state.SelectItem(username, item); err != nil {
			emitError(client, err)
			return
		}
		if err := engine.PublishState(state.Turn(), state); err != nil {
			emitError(client, err)
			return
		}
		client.Emit("secret_item_selected", gin.H{"lobby_id": lobbyID})
	}
}

// Twenty Questions: the guesser spends one of the twenty questions.
func HandleAskQuestion(env *Env, client *socket.Socket, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		lobbyID, ok := stringArg(args, 0)
		if !ok {
			emitError(client, errors.New("missing lobby id"))
			return
		}
		text, ok := stringArg(args, 1)
		if !ok {
			emitError(client, errors.New("missing question text"))
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

		state, err := loadTwentyQ(engine)
		if err != nil {
			emitError(client, err)
			return
		}
		if err := state.AskQuestion(username, text); err != nil {
			emitError(client, err)
			return
		}
		if err := engine.PublishState(state.Turn(), state); err != nil {
			emitError(client, err)
			return
		}
		client.Emit("question_asked", gin.H{
			"lobby_id":       lobbyID,
			"questions_left": state.QuestionsRemaining,
		})
	}
}

// Twenty Questions: the answerer resolves the pending question yes/no.
func HandleAnswerQuestion(env *Env, client *socket.Socket, username string) func(args ...interface{}) {
	return func(args ...interface{}) {
		lobbyID, ok := stringArg(args, 0)
		if !ok {
			emitError(client, errors.New("missing lobby id"))
			return
		}
		answer, ok := stringArg(args, 1)
		if !ok {
			emitError(client, errors.New("missing answer"))
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

		state, err := loadTwentyQ(engine)
		if err != nil {
			emitError(client, err)
			return
		}
		if err := state.AnswerQuestion(username, answer); err != nil {
			emitError(client, err)
			return
		}
		if err := engine.PublishState(state.Turn(), state); err != nil {
			emitError(client, err)
			return
		}
		client.Emit("question_answered", gin.H{"lobby_id": lobbyID, "answer": answer})
	}
}
