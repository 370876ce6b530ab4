package twentyq

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// setupGame returns a playing-phase state with "dog" as the secret item.
func setupGame(t *testing.T) *State {
	t.Helper()
	s := NewState("alice", "bob")
	assert.NoError(t, s.SelectCategory("alice", "animals"))
	assert.NoError(t, s.SelectItem("alice", "dog"))
	return s
}

func TestSetupPhases(t *testing.T) {
	t.Run("Category then item then play", func(t *testing.T) {
		s := NewState("alice", "bob")
		assert.Nil(t, s.Turn())

		assert.NoError(t, s.SelectCategory("alice", "foods"))
		assert.Equal(t, PhaseItemSelect, s.Phase)

		assert.NoError(t, s.SelectItem("alice", "sushi"))
		assert.Equal(t, PhasePlaying, s.Phase)
		assert.Equal(t, StatusAsking, s.GameStatus)
		assert.Equal(t, QuestionBudget, s.QuestionsRemaining)
		assert.Equal(t, "bob", *s.Turn(), "guesser opens the questioning")
	})

	t.Run("Empty item draws a random one from the category", func(t *testing.T) {
		s := NewState("alice", "bob")
		assert.NoError(t, s.SelectCategory("alice", "places"))
		assert.NoError(t, s.SelectItem("alice", ""))
		assert.True(t, ItemInCategory("places", s.SecretItem))
	})

	t.Run("Item must belong to the category", func(t *testing.T) {
		s := NewState("alice", "bob")
		assert.NoError(t, s.SelectCategory("alice", "animals"))
		assert.ErrorIs(t, s.SelectItem("alice", "pizza"), ErrUnknownItem)
	})

	t.Run("Setup is host-only", func(t *testing.T) {
		s := NewState("alice", "bob")
		assert.ErrorIs(t, s.SelectCategory("bob", "animals"), ErrNotHost)
		assert.NoError(t, s.SelectCategory("alice", "animals"))
		assert.ErrorIs(t, s.SelectItem("bob", "dog"), ErrNotHost)
	})

	t.Run("Unknown category is rejected", func(t *testing.T) {
		s := NewState("alice", "bob")
		assert.ErrorIs(t, s.SelectCategory("alice", "planets"), ErrUnknownCategory)
	})
}

func TestQuestionFlow(t *testing.T) {
	s := setupGame(t)

	t.Run("Asking hands the turn to the answerer", func(t *testing.T) {
		assert.NoError(t, s.AskQuestion("bob", "Is it bigger than a cat?"))
		assert.Equal(t, QuestionBudget-1, s.QuestionsRemaining)
		assert.Equal(t, "alice", *s.Turn())
	})

	t.Run("Second question blocked while one is pending", func(t *testing.T) {
		assert.ErrorIs(t, s.AskQuestion("bob", "Does it fly?"), ErrPendingQuestion)
	})

	t.Run("Guessing blocked while a question is pending", func(t *testing.T) {
		assert.ErrorIs(t, s.SubmitGuess("bob", "dog"), ErrPendingQuestion)
	})

	t.Run("Answer must be yes or no", func(t *testing.T) {
		assert.ErrorIs(t, s.AnswerQuestion("alice", "maybe"), ErrBadAnswer)
	})

	t.Run("Answering returns the turn to the guesser", func(t *testing.T) {
		assert.NoError(t, s.AnswerQuestion("alice", AnswerYes))
		assert.Equal(t, "bob", *s.Turn())
		assert.Equal(t, AnswerYes, s.Log[0].Answer)
	})

	t.Run("Nothing left to answer", func(t *testing.T) {
		assert.ErrorIs(t, s.AnswerQuestion("alice", AnswerNo), ErrNothingToAnswer)
	})

	t.Run("Only the guesser asks", func(t *testing.T) {
		assert.ErrorIs(t, s.AskQuestion("alice", "Is it me?"), ErrNotGuesser)
	})

	t.Run("Empty question text is rejected", func(t *testing.T) {
		assert.ErrorIs(t, s.AskQuestion("bob", "   "), ErrEmptyText)
	})
}

func TestGuessMatching(t *testing.T) {
	t.Run("Case-insensitive exact match wins immediately", func(t *testing.T) {
		s := setupGame(t)
		assert.NoError(t, s.SubmitGuess("bob", "Dog"))
		assert.Equal(t, StatusFinished, s.GameStatus)
		assert.Equal(t, PhaseResults, s.Phase)
		assert.Equal(t, "bob", s.Winner)
		assert.Nil(t, s.Turn())
	})

	t.Run("Surrounding whitespace is ignored", func(t *testing.T) {
		s := setupGame(t)
		assert.NoError(t, s.SubmitGuess("bob", "  dog  "))
		assert.Equal(t, "bob", s.Winner)
	})

	t.Run("Near miss is incorrect and spends no question", func(t *testing.T) {
		s := setupGame(t)
		assert.NoError(t, s.SubmitGuess("bob", "dogs"))
		assert.Equal(t, StatusAsking, s.GameStatus)
		assert.Equal(t, QuestionBudget, s.QuestionsRemaining)
		assert.Equal(t, GuessIncorrect, s.Log[0].Answer)
	})

	t.Run("No transitions after the game is over", func(t *testing.T) {
		s := setupGame(t)
		assert.NoError(t, s.SubmitGuess("bob", "dog"))
		assert.ErrorIs(t, s.AskQuestion("bob", "Is it alive?"), ErrWrongPhase)
		assert.ErrorIs(t, s.SubmitGuess("bob", "cat"), ErrWrongPhase)
		assert.ErrorIs(t, s.AnswerQuestion("alice", AnswerYes), ErrWrongPhase)
	})
}

func TestBudgetExhaustion(t *testing.T) {
	s := setupGame(t)

	// Burn through all but the last question
	for i := 0; i < QuestionBudget-1; i++ {
		assert.NoError(t, s.AskQuestion("bob", fmt.Sprintf("Question number %d?", i+1)))
		assert.NoError(t, s.AnswerQuestion("alice", AnswerNo))
	}
	assert.Equal(t, 1, s.QuestionsRemaining)
	assert.Equal(t, StatusAsking, s.GameStatus)

	// The twentieth question ends the game in the answerer's favor
	assert.NoError(t, s.AskQuestion("bob", "Final question?"))
	assert.Equal(t, 0, s.QuestionsRemaining)
	assert.Equal(t, StatusFinished, s.GameStatus)
	assert.Equal(t, "alice", s.Winner)

	// The resolution cannot fire twice
	assert.ErrorIs(t, s.AskQuestion("bob", "One more?"), ErrWrongPhase)
	assert.Len(t, s.Log, QuestionBudget)
}
