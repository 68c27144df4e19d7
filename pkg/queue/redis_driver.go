package queue

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	readyKey   = "careerloft:queue:jobs"
	delayedKey = "careerloft:queue:delayed"
)

// RedisDriver keeps ready jobs in a list and delayed jobs in a sorted set
// scored by their due timestamp. Share the *redis.Client with pkg/cache.
type RedisDriver struct {
	rdb *redis.Client
}

func NewRedisDriver(rdb *redis.Client) *RedisDriver {
	d := &RedisDriver{rdb: rdb}
	go d.promoteDue()
	return d
}

func (d *RedisDriver) Push(payload []byte) error {
	if err := d.rdb.LPush(context.Background(), readyKey, payload).Err(); err != nil {
		return fmt.Errorf("queue/redis: push: %w", err)
	}
	return nil
}

// Pop blocks up to five seconds. A nil, nil return means the wait timed
// out with nothing ready.
func (d *RedisDriver) Pop(ctx context.Context) ([]byte, error) {
	res, err := d.rdb.BRPop(ctx, 5*time.Second, readyKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("queue/redis: pop: %w", err)
	}
	if len(res) < 2 {
		return nil, nil
	}
	return []byte(res[1]), nil
}

// PushDelayed parks the payload until its due time. Unlike a timer
// goroutine this survives process restarts.
func (d *RedisDriver) PushDelayed(payload []byte, delay time.Duration) error {
	err := d.rdb.ZAdd(context.Background(), delayedKey, redis.Z{
		Score:  float64(time.Now().Add(delay).Unix()),
		Member: string(payload),
	}).Err()
	if err != nil {
		return fmt.Errorf("queue/redis: push delayed: %w", err)
	}
	return nil
}

// promoteDue moves due delayed jobs onto the ready list once a second.
func (d *RedisDriver) promoteDue() {
	ctx := context.Background()
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		due, err := d.rdb.ZRangeByScore(ctx, delayedKey, &redis.ZRangeBy{
			Min: "-inf",
			Max: strconv.FormatInt(time.Now().Unix(), 10),
		}).Result()
		if err != nil || len(due) == 0 {
			continue
		}
		pipe := d.rdb.Pipeline()
		for _, payload := range due {
			pipe.ZRem(ctx, delayedKey, payload)
			pipe.LPush(ctx, readyKey, []byte(payload))
		}
		pipe.Exec(ctx) //nolint:errcheck
	}
}
