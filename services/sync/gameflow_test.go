package sync_test

import (
	models "Pairly/models/postgres"
	"Pairly/services/games/guessanswer"
	state_sync "Pairly/services/sync"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loadState reads the caller's freshest document and decodes it, exactly the
// way the socket handlers do before applying a transition.
func loadState(t *testing.T, engine *state_sync.Engine) *guessanswer.State {
	t.Helper()
	doc, err := engine.Latest()
	require.NoError(t, err)
	var s guessanswer.State
	require.NoError(t, json.Unmarshal(doc.GameData, &s))
	return &s
}

func publish(t *testing.T, engine *state_sync.Engine, s *guessanswer.State) {
	t.Helper()
	require.NoError(t, engine.PublishState(s.Turn(), s))
}

// Two clients play a complete Guess-My-Answer game, with every transition
// persisted whole and re-read by the other side before it acts.
func TestFullGuessAnswerGameOverSharedDocument(t *testing.T) {
	store := state_sync.NewMemoryStore()
	store.SetLobbyStatus("WXYZ", models.LobbyStatusPlaying)
	notifier := state_sync.NewLocalNotifier()

	alice := state_sync.NewEngine("WXYZ", "alice", "alice", store, notifier)
	bob := state_sync.NewEngine("WXYZ", "bob", "alice", store, notifier)

	// Host seeds the initial state and picks the category
	initial := guessanswer.NewState("alice", "bob")
	require.NoError(t, alice.PublishState(initial.Turn(), initial))

	s := loadState(t, alice)
	require.NoError(t, alice.RequireHost())
	require.NoError(t, s.SelectCategory("alice", "romance"))
	publish(t, alice, s)

	// Both rounds, each question re-read from the document by whoever acts
	for round := 0; round < 2; round++ {
		for q := 0; q < guessanswer.QuestionsPerRound; q++ {
			answererEngine, guesserEngine := alice, bob
			if round == 1 {
				answererEngine, guesserEngine = bob, alice
			}

			require.NoError(t, answererEngine.RequireTurn())
			s = loadState(t, answererEngine)
			option := s.Questions[s.CurrentIndex].Options[0]
			require.NoError(t, s.SubmitAnswer(answererEngine.Username, option))
			publish(t, answererEngine, s)

			require.NoError(t, guesserEngine.RequireTurn())
			assert.ErrorIs(t, answererEngine.RequireTurn(), state_sync.ErrNotYourTurn)
			s = loadState(t, guesserEngine)
			require.NoError(t, s.SubmitGuess(guesserEngine.Username, option))
			publish(t, guesserEngine, s)

			// Reveal: only the host advances
			assert.ErrorIs(t, bob.RequireHost(), state_sync.ErrNotHost)
			s = loadState(t, alice)
			require.NoError(t, s.Advance("alice"))
			publish(t, alice, s)
		}
	}

	// Every guess matched, so both rounds score full marks and it ties
	final := loadState(t, bob)
	assert.Equal(t, guessanswer.PhaseResults, final.Phase)
	assert.Equal(t, guessanswer.QuestionsPerRound, final.Round1Score)
	assert.Equal(t, guessanswer.QuestionsPerRound, final.Round2Score)
	assert.Equal(t, guessanswer.WinnerTie, final.Winner)

	// Both views converged on the same fields
	require.NoError(t, bob.Reconcile())
	assert.Equal(t, alice.Snapshot().Fields, bob.Snapshot().Fields)

	// Play again clears the board for both
	require.NoError(t, alice.PublishState(nil, nil))
	require.NoError(t, bob.Reconcile())
	assert.Empty(t, bob.Snapshot().Fields)
}
