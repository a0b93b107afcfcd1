package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/cinemahub/catalog-api/internal/api/metrics"
	"github.com/cinemahub/catalog-api/internal/core/domain"
)

const (
	authEventStream = "auth:events"
	streamMaxLen    = 10_000
)

// EventPublisher appends auth events to a capped Redis stream. Consumers of
// the notification side-channel (mailers, audit sinks) read from the stream;
// delivery beyond it is not this service's concern.
type EventPublisher struct {
	client *redis.Client
}

func NewEventPublisher(client *redis.Client) *EventPublisher {
	return &EventPublisher{client: client}
}

// Publish appends one event. The stream is trimmed approximately to
// streamMaxLen so an absent consumer cannot grow it unbounded.
func (p *EventPublisher) Publish(ctx context.Context, event domain.AuthEvent) error {
	err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: authEventStream,
		MaxLen: streamMaxLen,
		Approx: true,
		Values: map[string]interface{}{
			"type":    event.Type,
			"user_id": event.UserID,
			"email":   event.Email,
			"ts":      event.Timestamp.Unix(),
		},
	}).Err()
	if err != nil {
		metrics.AuthEventsPublishedTotal.WithLabelValues(event.Type, "error").Inc()
		return fmt.Errorf("publish auth event: %w", err)
	}

	metrics.AuthEventsPublishedTotal.WithLabelValues(event.Type, "ok").Inc()
	return nil
}
