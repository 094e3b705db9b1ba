package publisher

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher emits logistics events over Redis pub/sub. Delivery retry
// is the transport's concern, not the saga's: a failed publish surfaces as
// an error and the saga aborts.
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, topic string, payload []byte) error {
	if err := p.client.Publish(ctx, topic, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", topic, err)
	}
	return nil
}
