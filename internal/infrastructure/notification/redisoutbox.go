// Package notification holds the Redis-backed outbox that carries queued notifications from
// the API process to the delivery worker.
package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	appnotification "github.com/thriftwise/thriftwise/internal/application/notification"
)

const (
	DefaultQueueKey      = "thriftwise:notifications:queue"
	DefaultProcessingKey = "thriftwise:notifications:processing"
)

// RedisOutbox is a reliable queue over two Redis lists. Dequeue moves an entry atomically
// into the processing list; Ack removes it from there. Entries left in the processing list
// by a crashed worker are moved back by Recover.
type RedisOutbox struct {
	client        *redis.Client
	queueKey      string
	processingKey string
}

var _ appnotification.Outbox = (*RedisOutbox)(nil)

func NewRedisOutbox(client *redis.Client, queueKey, processingKey string) *RedisOutbox {
	if queueKey == "" {
		queueKey = DefaultQueueKey
	}
	if processingKey == "" {
		processingKey = DefaultProcessingKey
	}
	return &RedisOutbox{
		client:        client,
		queueKey:      queueKey,
		processingKey: processingKey,
	}
}

func (o *RedisOutbox) Enqueue(ctx context.Context, msg *appnotification.Message) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	if err := o.client.LPush(ctx, o.queueKey, raw).Err(); err != nil {
		return fmt.Errorf("failed to push notification: %w", err)
	}
	return nil
}

func (o *RedisOutbox) Dequeue(ctx context.Context, timeout time.Duration) (*appnotification.Message, error) {
	raw, err := o.client.BRPopLPush(ctx, o.queueKey, o.processingKey, timeout).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to pop notification: %w", err)
	}

	var msg appnotification.Message
	if err := json.Unmarshal([]byte(raw), &msg); err != nil {
		// Poison entries are dropped so they cannot block the queue.
		_ = o.client.LRem(ctx, o.processingKey, 1, raw).Err()
		return nil, fmt.Errorf("failed to decode notification: %w", err)
	}
	msg.Raw = raw
	return &msg, nil
}

func (o *RedisOutbox) Ack(ctx context.Context, msg *appnotification.Message) error {
	if err := o.client.LRem(ctx, o.processingKey, 1, msg.Raw).Err(); err != nil {
		return fmt.Errorf("failed to ack notification: %w", err)
	}
	return nil
}

// Retry puts msg back at the tail of the queue with its updated attempt count.
func (o *RedisOutbox) Retry(ctx context.Context, msg *appnotification.Message) error {
	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}

	_, err = o.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LRem(ctx, o.processingKey, 1, msg.Raw)
		pipe.LPush(ctx, o.queueKey, raw)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to requeue notification: %w", err)
	}
	return nil
}

// Recover moves everything in the processing list back to the queue. Call it once at worker
// startup, before any Dequeue.
func (o *RedisOutbox) Recover(ctx context.Context) (int, error) {
	moved := 0
	for {
		_, err := o.client.RPopLPush(ctx, o.processingKey, o.queueKey).Result()
		if errors.Is(err, redis.Nil) {
			return moved, nil
		}
		if err != nil {
			return moved, fmt.Errorf("failed to recover notifications: %w", err)
		}
		moved++
	}
}

func (o *RedisOutbox) Len(ctx context.Context) (int64, error) {
	return o.client.LLen(ctx, o.queueKey).Result()
}
