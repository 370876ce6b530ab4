package guessanswer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Plays one full question cycle: answer, guess, advance. The guess matches
// the answer when match is true.
func playQuestion(t *testing.T, s *State, match bool) {
	t.Helper()

	options := s.Questions[s.CurrentIndex].Options
	assert.GreaterOrEqual(t, len(options), 2)

	answerer := s.Answerer()
	guesser := s.Guesser()

	assert.NoError(t, s.SubmitAnswer(answerer, options[0]))

	guess := options[1]
	if match {
		guess = options[0]
	}
	assert.NoError(t, s.SubmitGuess(guesser, guess))
	assert.Equal(t, QuestionRevealed, s.QuestionState)

	assert.NoError(t, s.Advance(s.HostUsername))
}

func TestSelectCategory(t *testing.T) {
	t.Run("Valid category starts round 1", func(t *testing.T) {
		s := NewState("alice", "bob")
		err := s.SelectCategory("alice", "romance")
		assert.NoError(t, err)
		assert.Equal(t, PhaseRound1, s.Phase)
		assert.Equal(t, QuestionAnswering, s.QuestionState)
		assert.Len(t, s.Questions, QuestionsPerRound)

		// Draw is without replacement
		seen := make(map[string]bool)
		for _, q := range s.Questions {
			assert.False(t, seen[q.Prompt], "question drawn twice: %s", q.Prompt)
			seen[q.Prompt] = true
		}
	})

	t.Run("Unknown category is rejected", func(t *testing.T) {
		s := NewState("alice", "bob")
		assert.ErrorIs(t, s.SelectCategory("alice", "astrology"), ErrUnknownCategory)
		assert.Equal(t, PhaseCategorySelect, s.Phase)
	})

	t.Run("Guest cannot select the category", func(t *testing.T) {
		s := NewState("alice", "bob")
		assert.ErrorIs(t, s.SelectCategory("bob", "romance"), ErrNotHost)
	})

	t.Run("Cannot reselect mid-game", func(t *testing.T) {
		s := NewState("alice", "bob")
		assert.NoError(t, s.SelectCategory("alice", "romance"))
		assert.ErrorIs(t, s.SelectCategory("alice", "favorites"), ErrWrongPhase)
	})
}

func TestTurnAlternation(t *testing.T) {
	s := NewState("alice", "bob")
	assert.Nil(t, s.Turn(), "nobody's turn before the game starts")

	assert.NoError(t, s.SelectCategory("alice", "daily_life"))

	// Round 1: host answers, guest guesses
	assert.Equal(t, "alice", s.Answerer())
	assert.Equal(t, "bob", s.Guesser())
	assert.Equal(t, "alice", *s.Turn())

	options := s.Questions[0].Options
	assert.NoError(t, s.SubmitAnswer("alice", options[0]))
	assert.Equal(t, "bob", *s.Turn())

	assert.NoError(t, s.SubmitGuess("bob", options[0]))
	assert.Nil(t, s.Turn(), "reveal belongs to nobody")

	assert.NoError(t, s.Advance("alice"))

	// Finish round 1
	for i := 1; i < QuestionsPerRound; i++ {
		playQuestion(t, s, false)
	}

	// Round 2 swaps the roles over the same questions
	assert.Equal(t, PhaseRound2, s.Phase)
	assert.Equal(t, "bob", s.Answerer())
	assert.Equal(t, "alice", s.Guesser())
	assert.Equal(t, "bob", *s.Turn())
	assert.Equal(t, 0, s.CurrentIndex)
}

func TestRoleEnforcement(t *testing.T) {
	s := NewState("alice", "bob")
	assert.NoError(t, s.SelectCategory("alice", "favorites"))
	options := s.Questions[0].Options

	t.Run("Guesser cannot answer", func(t *testing.T) {
		assert.ErrorIs(t, s.SubmitAnswer("bob", options[0]), ErrNotAnswerer)
	})

	t.Run("Cannot guess before the answer is in", func(t *testing.T) {
		assert.ErrorIs(t, s.SubmitGuess("bob", options[0]), ErrWrongPhase)
	})

	t.Run("Answer must be one of the options", func(t *testing.T) {
		assert.ErrorIs(t, s.SubmitAnswer("alice", "something else"), ErrBadOption)
	})

	t.Run("Answerer cannot guess", func(t *testing.T) {
		assert.NoError(t, s.SubmitAnswer("alice", options[0]))
		assert.ErrorIs(t, s.SubmitGuess("alice", options[0]), ErrNotGuesser)
	})

	t.Run("Only the host advances", func(t *testing.T) {
		assert.NoError(t, s.SubmitGuess("bob", options[0]))
		assert.ErrorIs(t, s.Advance("bob"), ErrNotHost)
		assert.NoError(t, s.Advance("alice"))
	})
}

func TestScoringAndWinner(t *testing.T) {
	t.Run("Guest wins on more round 1 matches", func(t *testing.T) {
		s := NewState("alice", "bob")
		assert.NoError(t, s.SelectCategory("alice", "romance"))

		// Round 1: bob guesses, 7 matches
		for i := 0; i < QuestionsPerRound; i++ {
			playQuestion(t, s, i < 7)
		}
		assert.Equal(t, 7, s.Round1Score)
		assert.Equal(t, PhaseRound2, s.Phase)

		// Round 2: alice guesses, 3 matches
		for i := 0; i < QuestionsPerRound; i++ {
			playQuestion(t, s, i < 3)
		}
		assert.Equal(t, PhaseResults, s.Phase)
		assert.Equal(t, 3, s.Round2Score)
		assert.Equal(t, "bob", s.Winner)
	})

	t.Run("Equal scores tie", func(t *testing.T) {
		s := NewState("alice", "bob")
		assert.NoError(t, s.SelectCategory("alice", "favorites"))
		for round := 0; round < 2; round++ {
			for i := 0; i < QuestionsPerRound; i++ {
				playQuestion(t, s, i < 5)
			}
		}
		assert.Equal(t, 5, s.Round1Score)
		assert.Equal(t, 5, s.Round2Score)
		assert.Equal(t, WinnerTie, s.Winner)
	})

	t.Run("Guess matching is exact on the option string", func(t *testing.T) {
		s := NewState("alice", "bob")
		assert.NoError(t, s.SelectCategory("alice", "romance"))

		options := s.Questions[0].Options
		assert.NoError(t, s.SubmitAnswer("alice", options[0]))
		assert.NoError(t, s.SubmitGuess("bob", options[1]))
		assert.Equal(t, 0, s.RoundScore, "different option scores nothing")
	})
}

func TestResultsArePinned(t *testing.T) {
	s := NewState("alice", "bob")
	assert.NoError(t, s.SelectCategory("alice", "daily_life"))
	for round := 0; round < 2; round++ {
		for i := 0; i < QuestionsPerRound; i++ {
			playQuestion(t, s, false)
		}
	}
	assert.Equal(t, PhaseResults, s.Phase)

	// No transition applies in results
	assert.ErrorIs(t, s.SubmitAnswer("alice", "anything"), ErrWrongPhase)
	assert.ErrorIs(t, s.SubmitGuess("bob", "anything"), ErrWrongPhase)
	assert.ErrorIs(t, s.Advance("alice"), ErrWrongPhase)
}
