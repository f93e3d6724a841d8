package audit

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingProducer struct {
	calls int
}

func (p *failingProducer) Produce(_ context.Context, _ Event) error {
	p.calls++
	return errors.New("broker unavailable")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisherStampsAndQueues(t *testing.T) {
	p := NewPublisher(4, discardLogger())

	p.Emit(context.Background(), Event{Kind: KindAttendanceRecorded, ActorID: "tal-1"})

	select {
	case e := <-p.Events():
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.Timestamp.IsZero())
		assert.Equal(t, KindAttendanceRecorded, e.Kind)
	default:
		t.Fatal("expected a queued event")
	}
}

func TestPublisherDropsWhenFull(t *testing.T) {
	p := NewPublisher(1, discardLogger())

	p.Emit(context.Background(), Event{Kind: KindAttendanceRecorded})
	p.Emit(context.Background(), Event{Kind: KindCertificateIssued})

	require.Len(t, drain(p), 1)
}

func TestWorkerDrainsToStore(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPublisher(8, discardLogger())
	store := NewInMemoryStore()
	worker := NewWorker(store, nil, p.Events(), discardLogger())

	done := make(chan struct{})
	go func() {
		_ = worker.Run(ctx)
		close(done)
	}()

	p.Emit(ctx, Event{Kind: KindAttendanceRecorded, WorkshopID: "ws-1", ActorID: "tal-1"})
	p.Emit(ctx, Event{Kind: KindCertificateIssued, WorkshopID: "ws-1", ActorID: "mit-1"})

	require.Eventually(t, func() bool {
		events, err := store.ListByWorkshop(ctx, "ws-1")
		return err == nil && len(events) == 2
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestWorkerSurvivesProducerFailure(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPublisher(8, discardLogger())
	store := NewInMemoryStore()
	producer := &failingProducer{}
	worker := NewWorker(store, producer, p.Events(), discardLogger())

	go func() { _ = worker.Run(ctx) }()

	p.Emit(ctx, Event{Kind: KindAttendanceRecorded, WorkshopID: "ws-2"})

	// The store write must land even though the broker keeps failing.
	require.Eventually(t, func() bool {
		events, err := store.ListByWorkshop(ctx, "ws-2")
		return err == nil && len(events) == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, producer.calls)
}

func drain(p *Publisher) []Event {
	var out []Event
	for {
		select {
		case e := <-p.Events():
			out = append(out, e)
		default:
			return out
		}
	}
}
