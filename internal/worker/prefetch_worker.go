// Package worker processes prefetch messages: when a trip decides its
// destination, the worker warms the geodata caches so the first
// recommendations request is served hot.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"collie/internal/amqp"
)

// Prefetcher is the slice of the recommender the worker needs.
type Prefetcher interface {
	Prefetch(ctx context.Context, destination string) error
}

// PrefetchWorker handles destination prefetch messages from AMQP.
type PrefetchWorker struct {
	recommender Prefetcher
}

func NewPrefetchWorker(recommender Prefetcher) *PrefetchWorker {
	return &PrefetchWorker{recommender: recommender}
}

// HandlePrefetchMessage processes a single prefetch message. Blank
// destinations are acked and dropped; warm failures are returned so the
// broker requeues the message.
func (w *PrefetchWorker) HandlePrefetchMessage(ctx context.Context, msg *amqp.PrefetchMessage) error {
	destination := strings.TrimSpace(msg.Destination)
	if destination == "" {
		slog.WarnContext(ctx, "Dropping prefetch message with empty destination",
			"trip_id", msg.TripID)
		return nil
	}

	slog.InfoContext(ctx, "Processing prefetch message",
		"trip_id", msg.TripID,
		"destination", destination)

	if err := w.recommender.Prefetch(ctx, destination); err != nil {
		return fmt.Errorf("warm geodata for %q: %w", destination, err)
	}

	return nil
}
