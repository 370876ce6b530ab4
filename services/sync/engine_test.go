package sync

import (
	models "Pairly/models/postgres"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

// newTestEngine returns an engine over fresh in-process doubles with the
// lobby already in the waiting status.
func newTestEngine(lobbyID, username string) (*Engine, *MemoryStore, *LocalNotifier) {
	store := NewMemoryStore()
	store.SetLobbyStatus(lobbyID, models.LobbyStatusWaiting)
	notifier := NewLocalNotifier()
	return NewEngine(lobbyID, username, "alice", store, notifier), store, notifier
}

func TestStoreClear(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Save(&Document{LobbyID: "ABCD", GameData: []byte(`{"phase":"round1"}`)}))

	doc, err := store.Load("ABCD")
	require.NoError(t, err)
	require.NotNil(t, doc)

	require.NoError(t, store.Clear("ABCD"))
	doc, err = store.Load("ABCD")
	require.NoError(t, err)
	assert.Nil(t, doc, "a cleared lobby has no document at all")
}

func TestReconcileIsIdempotent(t *testing.T) {
	engine, _, _ := newTestEngine("ABCD", "alice")

	require.NoError(t, engine.PublishState(strPtr("alice"), map[string]interface{}{
		"phase": "round1",
		"score": 3,
	}))

	first := engine.Snapshot()
	require.NoError(t, engine.Reconcile())
	require.NoError(t, engine.Reconcile())
	second := engine.Snapshot()

	assert.Equal(t, first, second, "reconcile with no intervening write must change nothing")
}

func TestFieldMerge(t *testing.T) {
	engine, _, _ := newTestEngine("ABCD", "alice")

	require.NoError(t, engine.PublishState(nil, map[string]interface{}{
		"phase":    "round1",
		"category": "romance",
	}))
	require.NoError(t, engine.PublishState(strPtr("bob"), map[string]interface{}{
		"phase":         "round1",
		"category":      "romance",
		"selectedGuess": "Dinner out",
	}))

	view := engine.Snapshot()
	assert.Equal(t, "romance", view.Fields["category"])
	assert.Equal(t, "Dinner out", view.Fields["selectedGuess"])
	require.NotNil(t, view.CurrentTurn)
	assert.Equal(t, "bob", *view.CurrentTurn)
}

func TestFreshEngineConvergesFromLatestDocumentOnly(t *testing.T) {
	// One client steps through several writes
	writer, store, notifier := newTestEngine("ABCD", "alice")
	require.NoError(t, writer.PublishState(strPtr("alice"), map[string]interface{}{
		"phase": "round1", "currentIndex": 0,
	}))
	require.NoError(t, writer.PublishState(strPtr("bob"), map[string]interface{}{
		"phase": "round1", "currentIndex": 0, "selectedAnswer": "A hug",
	}))
	require.NoError(t, writer.PublishState(nil, map[string]interface{}{
		"phase": "round1", "currentIndex": 1, "selectedAnswer": "A hug", "selectedGuess": "A hug",
	}))

	// A second client that saw none of the intermediate states reads once
	reader := NewEngine("ABCD", "bob", "alice", store, notifier)
	require.NoError(t, reader.Reconcile())

	assert.Equal(t, writer.Snapshot().Fields, reader.Snapshot().Fields,
		"the latest document alone must fully describe the game")
}

func TestPlayingViewRecovery(t *testing.T) {
	engine, store, _ := newTestEngine("ABCD", "bob")
	require.NoError(t, engine.Reconcile())
	assert.False(t, engine.Snapshot().InPlayingView)

	// The game started while this client was away
	store.SetLobbyStatus("ABCD", models.LobbyStatusPlaying)
	require.NoError(t, engine.Reconcile())
	assert.True(t, engine.Snapshot().InPlayingView,
		"a refreshed client must be forced into the playing view")
}

func TestPlayAgainClearsFields(t *testing.T) {
	engine, _, _ := newTestEngine("ABCD", "alice")
	require.NoError(t, engine.PublishState(strPtr("alice"), map[string]interface{}{
		"phase": "results", "winner": "bob",
	}))
	assert.NotEmpty(t, engine.Snapshot().Fields)

	require.NoError(t, engine.PublishState(nil, nil))

	view := engine.Snapshot()
	assert.Empty(t, view.Fields, "a null document resets every local field")
	assert.Nil(t, view.CurrentTurn)
}

func TestRequireTurn(t *testing.T) {
	alice, store, notifier := newTestEngine("ABCD", "alice")
	bob := NewEngine("ABCD", "bob", "alice", store, notifier)

	t.Run("No document means no turn", func(t *testing.T) {
		assert.ErrorIs(t, alice.RequireTurn(), ErrNotYourTurn)
	})

	require.NoError(t, alice.PublishState(strPtr("alice"), map[string]interface{}{"phase": "round1"}))

	t.Run("Owner passes", func(t *testing.T) {
		assert.NoError(t, alice.RequireTurn())
	})

	t.Run("Other participant is rejected", func(t *testing.T) {
		assert.ErrorIs(t, bob.RequireTurn(), ErrNotYourTurn)
	})

	t.Run("Stale local turn does not pass", func(t *testing.T) {
		// Bob's write moves the turn; alice's check re-reads before deciding
		require.NoError(t, bob.PublishState(strPtr("bob"), map[string]interface{}{"phase": "round1"}))
		assert.ErrorIs(t, alice.RequireTurn(), ErrNotYourTurn)
		assert.NoError(t, bob.RequireTurn())
	})
}

func TestRequireHost(t *testing.T) {
	alice, store, notifier := newTestEngine("ABCD", "alice")
	bob := NewEngine("ABCD", "bob", "alice", store, notifier)

	assert.NoError(t, alice.RequireHost())
	assert.ErrorIs(t, bob.RequireHost(), ErrNotHost)
}

func TestChangeNotificationPropagates(t *testing.T) {
	alice, store, notifier := newTestEngine("ABCD", "alice")
	bob := NewEngine("ABCD", "bob", "alice", store, notifier)

	var mu sync.Mutex
	var bobViews []View
	bob.OnChange(func(v View) {
		mu.Lock()
		bobViews = append(bobViews, v)
		mu.Unlock()
	})

	require.NoError(t, bob.Start())
	defer bob.Close()
	require.NoError(t, alice.Start())
	defer alice.Close()

	require.NoError(t, alice.PublishState(strPtr("bob"), map[string]interface{}{"phase": "round1"}))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, v := range bobViews {
			if v.CurrentTurn != nil && *v.CurrentTurn == "bob" {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond, "bob's engine must observe alice's write")
}
