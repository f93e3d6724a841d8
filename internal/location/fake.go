package location

import (
	"context"
	"sync"
	"time"
)

// FakeResult is one scripted response for the fake source.
type FakeResult struct {
	Fix Fix
	Err error
	// Delay holds the response back, letting tests race a slow reading
	// against a superseding request.
	Delay time.Duration
}

// Fake is a scriptable Source for tests. Responses are consumed in FIFO
// order; when the queue is empty it reports Unavailable.
type Fake struct {
	mu    sync.Mutex
	queue []FakeResult
	calls int
}

// NewFake builds a fake source preloaded with the given results.
func NewFake(results ...FakeResult) *Fake {
	return &Fake{queue: results}
}

// Enqueue appends another scripted response.
func (f *Fake) Enqueue(r FakeResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queue = append(f.queue, r)
}

// Calls reports how many readings were requested.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *Fake) Current(ctx context.Context, opts Options) (Fix, error) {
	f.mu.Lock()
	f.calls++
	var next FakeResult
	if len(f.queue) == 0 {
		next = FakeResult{Err: NewCapabilityError(Unavailable, "no scripted fix")}
	} else {
		next = f.queue[0]
		f.queue = f.queue[1:]
	}
	f.mu.Unlock()

	if next.Delay > 0 {
		select {
		case <-time.After(next.Delay):
		case <-ctx.Done():
			return Fix{}, NewCapabilityError(Timeout, "position request aborted")
		}
	}
	if next.Err != nil {
		return Fix{}, next.Err
	}
	fix := next.Fix
	if fix.CapturedAt.IsZero() {
		fix.CapturedAt = time.Now()
	}
	return fix, nil
}
