package worker

import (
	"context"
	"errors"
	"testing"

	"collie/internal/amqp"
)

type fakePrefetcher struct {
	calls []string
	err   error
}

func (f *fakePrefetcher) Prefetch(_ context.Context, destination string) error {
	f.calls = append(f.calls, destination)
	return f.err
}

func TestHandlePrefetchMessage(t *testing.T) {
	fake := &fakePrefetcher{}
	w := NewPrefetchWorker(fake)

	msg := amqp.NewPrefetchMessage("abc123de", "Porto")
	if err := w.HandlePrefetchMessage(context.Background(), msg); err != nil {
		t.Fatalf("HandlePrefetchMessage: %v", err)
	}
	if len(fake.calls) != 1 || fake.calls[0] != "Porto" {
		t.Fatalf("prefetch calls = %v, want [Porto]", fake.calls)
	}
}

func TestHandlePrefetchMessageEmptyDestination(t *testing.T) {
	fake := &fakePrefetcher{}
	w := NewPrefetchWorker(fake)

	msg := amqp.NewPrefetchMessage("abc123de", "   ")
	if err := w.HandlePrefetchMessage(context.Background(), msg); err != nil {
		t.Fatalf("empty destination should be dropped, got %v", err)
	}
	if len(fake.calls) != 0 {
		t.Fatal("empty destination must not reach the recommender")
	}
}

func TestHandlePrefetchMessagePropagatesWarmFailure(t *testing.T) {
	fake := &fakePrefetcher{err: errors.New("nominatim unavailable")}
	w := NewPrefetchWorker(fake)

	msg := amqp.NewPrefetchMessage("abc123de", "Lisbon")
	if err := w.HandlePrefetchMessage(context.Background(), msg); err == nil {
		t.Fatal("expected warm failure to propagate for requeue")
	}
}
