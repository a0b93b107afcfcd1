package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/cinemahub/catalog-api/internal/api/metrics"
	"github.com/cinemahub/catalog-api/internal/core/domain"
	"github.com/cinemahub/catalog-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher fans auth events out to a fixed set of workers using consistent
// hashing on the user id, so events for one account are published in order.
// Emit never blocks the auth path: a full shard drops the event.
type Dispatcher struct {
	workers   []chan domain.AuthEvent
	publisher ports.EventPublisher
	log       zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, publisher ports.EventPublisher, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan domain.AuthEvent, numWorkers),
		publisher: publisher,
		log:       log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AuthEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Emit hands an event to the worker responsible for its user id.
func (d *Dispatcher) Emit(event domain.AuthEvent) {
	select {
	case d.workers[d.shardIndex(event.UserID)] <- event:
	default:
		metrics.AuthEventsPublishedTotal.WithLabelValues(event.Type, "dropped").Inc()
		d.log.Warn().
			Str("event_type", event.Type).
			Str("user_id", event.UserID).
			Msg("event queue full, dropping auth event")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(userID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AuthEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.publisher.Publish(ctx, event); err != nil {
				d.log.Error().Err(err).
					Str("event_type", event.Type).
					Str("user_id", event.UserID).
					Int("worker_id", id).
					Msg("auth event publish failed")
			}
		}
	}
}
