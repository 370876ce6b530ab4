package sync

import (
	models "Pairly/models/postgres"
	redis_models "Pairly/models/redis"
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Polling fallback intervals. The poll loop exists solely to cover missed or
// duplicate notifier events; both triggers funnel into the same idempotent
// reconcile, so redundant firing is harmless.
const (
	LobbyPollInterval = 2 * time.Second
	GamePollInterval  = 1 * time.Second
)

// View is the locally reconstructed UI state of one client. It is always a
// cache derived from the last-seen document, never authoritative.
type View struct {
	LobbyStatus   string
	InPlayingView bool
	CurrentTurn   *string
	// Fields holds the merged game_data keys. Keys absent from a payload are
	// left untouched on merge, so partial/legacy payload shapes still apply
	// cleanly (e.g. selectedGuess only appears once guessing has happened).
	Fields map[string]interface{}
}

// Engine keeps one client's view converged with the shared document. One
// instance per open lobby view per user; torn down with Close when the user
// navigates away.
type Engine struct {
	LobbyID      string
	Username     string
	HostUsername string

	store    Store
	notifier Notifier

	mu      sync.Mutex
	view    View
	lastDoc *Document

	onChange func(View)

	kick        chan struct{}
	done        chan struct{}
	closeOnce   sync.Once
	unsubscribe func()
}

func NewEngine(lobbyID, username, hostUsername string, store Store, notifier Notifier) *Engine {
	return &Engine{
		LobbyID:      lobbyID,
		Username:     username,
		HostUsername: hostUsername,
		store:        store,
		notifier:     notifier,
		view:         View{Fields: make(map[string]interface{})},
		kick:         make(chan struct{}, 1),
		done:         make(chan struct{}),
	}
}

// OnChange registers a callback invoked with a snapshot after every
// reconcile pass. Must be set before Start.
func (e *Engine) OnChange(fn func(View)) {
	e.onChange = fn
}

// Start subscribes to the notifier, runs one initial reconcile and launches
// the polling loop.
func (e *Engine) Start() error {
	unsubscribe, err := e.notifier.Subscribe(e.LobbyID, func(_ *redis_models.StateChangeEvent) {
		// The event that fired may already be superseded; just re-read.
		e.trigger()
	})
	if err != nil {
		return err
	}
	e.unsubscribe = unsubscribe

	if err := e.Reconcile(); err != nil {
		log.Printf("[SYNC-ERROR] Initial reconcile for lobby %s: %v", e.LobbyID, err)
	}

	go e.run()
	return nil
}

// Close tears down the subscription and the poll loop. Safe to call twice.
func (e *Engine) Close() {
	e.closeOnce.Do(func() {
		close(e.done)
		if e.unsubscribe != nil {
			e.unsubscribe()
		}
	})
}

// trigger coalesces concurrent reconcile requests: a burst of notifier
// events while one pass is pending collapses into a single follow-up pass.
func (e *Engine) trigger() {
	select {
	case e.kick <- struct{}{}:
	default:
	}
}

func (e *Engine) run() {
	lobbyTicker := time.NewTicker(LobbyPollInterval)
	gameTicker := time.NewTicker(GamePollInterval)
	defer lobbyTicker.Stop()
	defer gameTicker.Stop()

	for {
		select {
		case <-e.done:
			return
		case <-e.kick:
		case <-lobbyTicker.C:
			if e.Snapshot().InPlayingView {
				continue
			}
		case <-gameTicker.C:
			if !e.Snapshot().InPlayingView {
				continue
			}
		}
		if err := e.Reconcile(); err != nil && err != ErrLobbyGone {
			log.Printf("[SYNC-ERROR] Reconcile for lobby %s: %v", e.LobbyID, err)
		}
	}
}

// Reconcile fetches the latest lobby status and document and rebuilds the
// local view from them. Idempotent: a second call with no intervening write
// changes nothing.
func (e *Engine) Reconcile() error {
	status, err := e.store.LobbyStatus(e.LobbyID)
	if err != nil {
		return err
	}
	doc, err := e.store.Load(e.LobbyID)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.view.LobbyStatus = status
	// Recovery path: a client that joined or refreshed after the game
	// started is forced into the playing view before field assignment
	if status != models.LobbyStatusWaiting && !e.view.InPlayingView {
		e.view.InPlayingView = true
	}
	if doc != nil {
		e.lastDoc = doc
		e.view.CurrentTurn = doc.CurrentTurn
		if len(doc.GameData) > 0 && string(doc.GameData) != "null" {
			var fields map[string]interface{}
			if err := json.Unmarshal(doc.GameData, &fields); err != nil {
				e.mu.Unlock()
				return err
			}
			for k, v := range fields {
				e.view.Fields[k] = v
			}
		} else {
			// "Play again" cleared the document: every local field goes
			// back to its initial value
			e.view.Fields = make(map[string]interface{})
		}
	}
	snapshot := e.snapshotLocked()
	e.mu.Unlock()

	if e.onChange != nil {
		e.onChange(snapshot)
	}
	return nil
}

// Snapshot returns a deep copy of the current view.
func (e *Engine) Snapshot() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() View {
	cp := e.view
	cp.Fields = make(map[string]interface{}, len(e.view.Fields))
	for k, v := range e.view.Fields {
		cp.Fields[k] = v
	}
	return cp
}

// Latest reconciles and returns the freshest document, or ErrNoDocument if
// the lobby has none yet.
func (e *Engine) Latest() (*Document, error) {
	if err := e.Reconcile(); err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastDoc == nil {
		return nil, ErrNoDocument
	}
	cp := *e.lastDoc
	cp.GameData = append(json.RawMessage(nil), e.lastDoc.GameData...)
	return &cp, nil
}

// PublishState upserts the complete document (never a partial patch) and
// notifies the other participant. Called synchronously as the last step of
// every state-machine transition, before control returns to the action
// handler. A nil gameData writes a null payload ("play again").
func (e *Engine) PublishState(nextTurn *string, gameData interface{}) error {
	raw := json.RawMessage("null")
	if gameData != nil {
		data, err := json.Marshal(gameData)
		if err != nil {
			return err
		}
		raw = data
	}

	doc := &Document{
		LobbyID:     e.LobbyID,
		GameData:    raw,
		CurrentTurn: nextTurn,
	}
	if err := e.store.Save(doc); err != nil {
		return err
	}

	event := NewChangeEvent(e.LobbyID, redis_models.TableGameStates, e.Username)
	if err := e.notifier.Publish(e.LobbyID, event); err != nil {
		// Best effort: the other side's poll loop covers a lost publish
		log.Printf("[SYNC-WARN] Publish event for lobby %s: %v", e.LobbyID, err)
	}

	// Apply our own write locally before returning to the handler
	return e.Reconcile()
}

// RequireTurn re-reads the latest document and rejects the action unless
// the caller owns the current turn.
func (e *Engine) RequireTurn() error {
	if err := e.Reconcile(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastDoc == nil || e.lastDoc.CurrentTurn == nil || *e.lastDoc.CurrentTurn != e.Username {
		return ErrNotYourTurn
	}
	return nil
}

// RequireHost rejects host-privileged transitions (category selection,
// advancing past reveals, play again) for non-host callers.
func (e *Engine) RequireHost() error {
	if e.Username != e.HostUsername {
		return ErrNotHost
	}
	return nil
}
