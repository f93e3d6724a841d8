package qrtoken

import (
	"context"
	"sync"
	"time"
)

// TickerFunc lets tests drive rotation deterministically. It returns the tick
// channel and a stop function.
type TickerFunc func(d time.Duration) (<-chan time.Time, func())

func defaultTicker(d time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(d)
	return t.C, t.Stop
}

// Rotator keeps exactly one live pass for a workshop session, regenerating it
// every TTL while running. A generation failure is reported through OnError
// and does not stop the timer.
type Rotator struct {
	issuer     *Issuer
	workshopID string
	sessionID  string
	ticker     TickerFunc
	onError    func(error)

	mu      sync.Mutex
	current Pass
	live    bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// RotatorOption configures a Rotator.
type RotatorOption func(*Rotator)

// WithTicker overrides the wall-clock ticker.
func WithTicker(t TickerFunc) RotatorOption {
	return func(r *Rotator) { r.ticker = t }
}

// WithOnError installs a hook for pass generation failures.
func WithOnError(f func(error)) RotatorOption {
	return func(r *Rotator) { r.onError = f }
}

// NewRotator builds a rotator for one workshop session.
func NewRotator(issuer *Issuer, workshopID, sessionID string, opts ...RotatorOption) *Rotator {
	r := &Rotator{
		issuer:     issuer,
		workshopID: workshopID,
		sessionID:  sessionID,
		ticker:     defaultTicker,
		onError:    func(error) {},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// Start issues the first pass immediately and rotates on every tick until the
// context is canceled or Stop is called. Calling Start on a running rotator
// is a no-op.
func (r *Rotator) Start(ctx context.Context) {
	r.mu.Lock()
	if r.done != nil {
		r.mu.Unlock()
		return
	}
	ctx, r.cancel = context.WithCancel(ctx)
	r.done = make(chan struct{})
	done := r.done
	r.mu.Unlock()

	r.rotate()

	ticks, stop := r.ticker(r.issuer.TTL())
	go func() {
		defer close(done)
		defer stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticks:
				r.rotate()
			}
		}
	}()
}

// Stop cancels rotation and waits for the loop to exit.
func (r *Rotator) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (r *Rotator) rotate() {
	pass, err := r.issuer.Issue(r.workshopID, r.sessionID)
	if err != nil {
		r.onError(err)
		return
	}
	r.mu.Lock()
	r.current = pass
	r.live = true
	r.mu.Unlock()
}

// Current returns the latest pass, and false when none was issued yet.
func (r *Rotator) Current() (Pass, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current, r.live
}
