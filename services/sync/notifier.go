package sync

import (
	redis_models "Pairly/models/redis"
	redis_service "Pairly/services/redis"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Notifier is the change-notification collaborator: at-least-once,
// best-effort, unordered. An event only means "re-read the lobby's rows";
// another write may already have superseded the one that fired it.
type Notifier interface {
	Publish(lobbyID string, event *redis_models.StateChangeEvent) error
	Subscribe(lobbyID string, handler func(*redis_models.StateChangeEvent)) (func(), error)
}

// NewChangeEvent builds an event for a row change caused by actor.
func NewChangeEvent(lobbyID, table, actor string) *redis_models.StateChangeEvent {
	return &redis_models.StateChangeEvent{
		EventID:   uuid.New().String(),
		LobbyID:   lobbyID,
		Table:     table,
		Actor:     actor,
		Timestamp: time.Now(),
	}
}

// RedisNotifier adapts the Redis pub/sub wrapper to the Notifier interface
type RedisNotifier struct {
	Client *redis_service.RedisClient
}

func NewRedisNotifier(rc *redis_service.RedisClient) *RedisNotifier {
	return &RedisNotifier{Client: rc}
}

func (n *RedisNotifier) Publish(lobbyID string, event *redis_models.StateChangeEvent) error {
	return n.Client.PublishLobbyEvent(lobbyID, event)
}

func (n *RedisNotifier) Subscribe(lobbyID string, handler func(*redis_models.StateChangeEvent)) (func(), error) {
	return n.Client.SubscribeLobbyEvents(lobbyID, handler)
}

// LocalNotifier is an in-process Notifier used by tests. It delivers
// synchronously to every subscriber of the lobby.
type LocalNotifier struct {
	mu       sync.Mutex
	nextID   int
	handlers map[string]map[int]func(*redis_models.StateChangeEvent)
}

func NewLocalNotifier() *LocalNotifier {
	return &LocalNotifier{handlers: make(map[string]map[int]func(*redis_models.StateChangeEvent))}
}

func (n *LocalNotifier) Publish(lobbyID string, event *redis_models.StateChangeEvent) error {
	n.mu.Lock()
	var subs []func(*redis_models.StateChangeEvent)
	for _, h := range n.handlers[lobbyID] {
		subs = append(subs, h)
	}
	n.mu.Unlock()
	for _, h := range subs {
		h(event)
	}
	return nil
}

func (n *LocalNotifier) Subscribe(lobbyID string, handler func(*redis_models.StateChangeEvent)) (func(), error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.handlers[lobbyID] == nil {
		n.handlers[lobbyID] = make(map[int]func(*redis_models.StateChangeEvent))
	}
	id := n.nextID
	n.nextID++
	n.handlers[lobbyID][id] = handler
	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.handlers[lobbyID], id)
	}, nil
}
