package redis

import (
	redis_models "Pairly/models/redis"
	redis_utils "Pairly/services/redis/utils"
	"encoding/json"
	"fmt"
	"log"
)

// PublishLobbyEvent publishes a change event on the lobby's channel. Delivery
// is best-effort: a lobby with no subscribers drops the event, which is fine
// because every consumer also polls.
func (rc *RedisClient) PublishLobbyEvent(lobbyID string, event *redis_models.StateChangeEvent) error {
	channel := redis_utils.FormatLobbyChannel(lobbyID)
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("error marshaling change event: %v", err)
	}
	return rc.client.Publish(rc.ctx, channel, data).Err()
}

// SubscribeLobbyEvents subscribes to the lobby's change channel and invokes
// the handler for every received event. Returns an unsubscribe function that
// tears down the subscription and its receive goroutine.
func (rc *RedisClient) SubscribeLobbyEvents(lobbyID string, handler func(*redis_models.StateChangeEvent)) (func(), error) {
	channel := redis_utils.FormatLobbyChannel(lobbyID)
	pubsub := rc.client.Subscribe(rc.ctx, channel)

	// Force the subscription to be established before returning
	if _, err := pubsub.Receive(rc.ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("error subscribing to lobby channel: %v", err)
	}

	ch := pubsub.Channel()
	go func() {
		for msg := range ch {
			var event redis_models.StateChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				log.Printf("[NOTIFIER-ERROR] Bad event payload on %s: %v", channel, err)
				continue
			}
			handler(&event)
		}
	}()

	unsubscribe := func() {
		if err := pubsub.Close(); err != nil {
			log.Printf("[NOTIFIER-ERROR] Error closing subscription on %s: %v", channel, err)
		}
	}
	return unsubscribe, nil
}
