// Package audit captures the append-only trail of consequential platform
// actions: recorded attendance and issued certificates.
package audit

import (
	"context"
	"time"
)

// Event kinds emitted by the platform.
const (
	KindAttendanceRecorded = "attendance.recorded"
	KindCertificateIssued  = "certificate.issued"
	KindWorkshopCreated    = "workshop.created"
)

// Event is one audit fact. Detail holds kind-specific fields such as the
// measured distance.
type Event struct {
	ID         string         `json:"id"`
	Kind       string         `json:"kind"`
	ActorID    string         `json:"actor_id"`
	WorkshopID string         `json:"workshop_id,omitempty"`
	Detail     map[string]any `json:"detail,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

// Store is the append-only persistence port.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByWorkshop(ctx context.Context, workshopID string) ([]Event, error)
}
