package domain

import (
	"context"
	"time"
)

// RateLimiter provides distributed rate limiting for the public API.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

// SignalBus provides pub/sub fan-out of deal alerts to the WebSocket hub
// and any other interested subscriber. It carries no aggregation state:
// every message is a fire-and-forget notification.
type SignalBus interface {
	Publish(ctx context.Context, channel string, payload []byte) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
}
