// Package cache is a thin JSON layer over Redis. When Redis is down
// the helpers degrade to no-ops so the app keeps serving from the
// database.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/careerloft/careerloft/config"
	"github.com/redis/go-redis/v9"
)

// RDB is nil when Redis is unreachable. Callers that need the raw
// client (queue driver, health check) must check for nil.
var RDB *redis.Client

var Ctx = context.Background()

// Connect dials Redis and pings it. On failure RDB stays nil and every
// helper becomes a no-op.
func Connect() error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})
	if err := client.Ping(Ctx).Err(); err != nil {
		RDB = nil
		return fmt.Errorf("cache: redis ping: %w", err)
	}
	RDB = client
	return nil
}

// Get unmarshals the cached value for key into dest and reports
// whether it was a hit. Misses and decode errors both read as false.
func Get(key string, dest any) bool {
	if RDB == nil {
		return false
	}
	raw, err := RDB.Get(Ctx, key).Bytes()
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dest) == nil
}

// Set stores value as JSON under key with the given TTL.
func Set(key string, value any, ttl time.Duration) error {
	if RDB == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return RDB.Set(Ctx, key, raw, ttl).Err()
}

// Del drops one or more keys.
func Del(keys ...string) error {
	if RDB == nil {
		return nil
	}
	return RDB.Del(Ctx, keys...).Err()
}
