package qrtoken

import (
	"context"
	"sync"
)

// Manager lazily starts one Rotator per workshop session the first time its
// pass is requested, and owns their shutdown.
type Manager struct {
	issuer *Issuer
	opts   []RotatorOption

	mu       sync.Mutex
	rotators map[string]*Rotator
}

func NewManager(issuer *Issuer, opts ...RotatorOption) *Manager {
	return &Manager{
		issuer:   issuer,
		opts:     opts,
		rotators: make(map[string]*Rotator),
	}
}

// Current returns the live pass for the session, starting its rotator on
// first use. ctx bounds the rotator's lifetime, so pass the server's base
// context rather than a request context.
func (m *Manager) Current(ctx context.Context, workshopID, sessionID string) (Pass, error) {
	key := workshopID + "/" + sessionID

	m.mu.Lock()
	rot, ok := m.rotators[key]
	if !ok {
		rot = NewRotator(m.issuer, workshopID, sessionID, m.opts...)
		m.rotators[key] = rot
	}
	m.mu.Unlock()

	if !ok {
		rot.Start(ctx)
	}

	pass, live := rot.Current()
	if !live {
		// First Issue failed; surface through the issuer directly so the
		// caller sees the real error.
		return m.issuer.Issue(workshopID, sessionID)
	}
	return pass, nil
}

// StopAll stops every rotator and waits for their loops to exit.
func (m *Manager) StopAll() {
	m.mu.Lock()
	rotators := make([]*Rotator, 0, len(m.rotators))
	for _, r := range m.rotators {
		rotators = append(rotators, r)
	}
	m.mu.Unlock()

	for _, r := range rotators {
		r.Stop()
	}
}
