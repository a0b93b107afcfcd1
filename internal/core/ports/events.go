package ports

import (
	"context"

	"github.com/cinemahub/catalog-api/internal/core/domain"
)

// EventPublisher delivers an auth event to the notification side-channel.
type EventPublisher interface {
	Publish(ctx context.Context, event domain.AuthEvent) error
}

// EventSink accepts auth events for asynchronous delivery. Emit must not
// block the caller; a full queue drops the event rather than stalling the
// auth path.
type EventSink interface {
	Emit(event domain.AuthEvent)
}
