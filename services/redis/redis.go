package redis

import (
	redis_models "Pairly/models/redis"
	redis_utils "Pairly/services/redis/utils"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient handles Redis operations
type RedisClient struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedisClient creates a new Redis client instance
func NewRedisClient(Addr string, DB int) *RedisClient {
	var client *redis.Client
	if Addr != "localhost:6379" {
		log.Println("Connecting to remote Redis...")
		opt, err := redis.ParseURL(Addr)
		if err != nil {
			panic("Error parsing Redis URL")
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{
			Addr: Addr,
			DB:   DB,
		})
	}
	return &RedisClient{
		client: client,
		ctx:    context.Background(),
	}
}

// SavePlayerPresence stores a player's presence info in Redis
// Key format: "presence:{username}"
// TTL: 1 hour, refreshed on every ping
func (rc *RedisClient) SavePlayerPresence(presence *redis_models.PlayerPresence) error {
	key := redis_utils.FormatPresenceKey(presence.Username)
	data, err := json.Marshal(presence)
	if err != nil {
		return fmt.Errorf("error marshaling presence data: %v", err)
	}
	return rc.client.Set(rc.ctx, key, data, time.Hour).Err()
}

// GetPlayerPresence retrieves a player's presence info from Redis
func (rc *RedisClient) GetPlayerPresence(username string) (*redis_models.PlayerPresence, error) {
	key := redis_utils.FormatPresenceKey(username)
	data, err := rc.client.Get(rc.ctx, key).Bytes()
	if err != nil {
		return nil, fmt.Errorf("error getting presence data: %v", err)
	}

	var presence redis_models.PlayerPresence
	if err := json.Unmarshal(data, &presence); err != nil {
		return nil, fmt.Errorf("error unmarshaling presence data: %v", err)
	}
	return &presence, nil
}

// DeletePlayerPresence removes a player's presence info from Redis
func (rc *RedisClient) DeletePlayerPresence(username string) error {
	key := redis_utils.FormatPresenceKey(username)
	if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting presence data: %v", err)
	}
	return nil
}

// CleanupKeys removes the specified keys from Redis
func (rc *RedisClient) CleanupKeys(keys []string) error {
	for _, key := range keys {
		if err := rc.client.Del(rc.ctx, key).Err(); err != nil {
			return fmt.Errorf("failed to cleanup Redis key %s: %v", key, err)
		}
	}
	return nil
}
