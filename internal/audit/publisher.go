package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Publisher hands events to the worker through a buffered inbox. Emit never
// blocks the request path: when the buffer is full the event is dropped and
// counted against the log rather than stalling a submission.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &Publisher{inbox: make(chan Event, buffer), logger: logger}
}

// Emit queues an event, stamping ID and Timestamp when absent.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	select {
	case p.inbox <- event:
	default:
		p.logger.WarnContext(ctx, "audit inbox full, dropping event",
			"kind", event.Kind,
			"workshop_id", event.WorkshopID,
		)
	}
}

// Events exposes the inbox to the worker.
func (p *Publisher) Events() <-chan Event {
	return p.inbox
}
