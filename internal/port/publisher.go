package port

import "context"

type LogisticsPublisher interface {
	Publish(ctx context.Context, topic string, payload []byte) error
}
