package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Publisher hands events to the message bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// RedisStreamPublisher appends events to a Redis stream consumed by downstream
// services (mailer, audit).
type RedisStreamPublisher struct {
	client redis.Cmdable
	stream string
	maxLen int64
}

// NewRedisStreamPublisher builds a publisher bound to stream. A positive maxLen
// caps the stream approximately.
func NewRedisStreamPublisher(client redis.Cmdable, stream string, maxLen int64) *RedisStreamPublisher {
	return &RedisStreamPublisher{client: client, stream: stream, maxLen: maxLen}
}

// Publish serializes the event and XADDs it.
func (p *RedisStreamPublisher) Publish(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.ID, err)
	}

	args := &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]interface{}{
			"id":   event.ID,
			"type": string(event.Type),
			"body": body,
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}

	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("xadd %s: %w", p.stream, err)
	}
	return nil
}

// Close is a no-op; the Redis client lifecycle is owned by persistence.Redis.
func (p *RedisStreamPublisher) Close() error {
	return nil
}
