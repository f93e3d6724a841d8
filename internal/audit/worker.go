package audit

import (
	"context"
	"log/slog"
)

// Producer forwards events to an external broker. Optional; the worker always
// writes the local store first.
type Producer interface {
	Produce(ctx context.Context, event Event) error
}

// Worker consumes audit events from the publisher's inbox and persists them.
// Sink failures are logged and skipped so the trail degrades instead of
// taking the server down with it.
type Worker struct {
	store    Store
	producer Producer
	inbox    <-chan Event
	logger   *slog.Logger
}

func NewWorker(store Store, producer Producer, inbox <-chan Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, producer: producer, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit store append failed",
					"error", err, "kind", event.Kind)
			}
			if w.producer == nil {
				continue
			}
			if err := w.producer.Produce(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit produce failed",
					"error", err, "kind", event.Kind)
			}
		}
	}
}
