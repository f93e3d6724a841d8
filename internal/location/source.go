// Package location abstracts the host platform's positioning capability so
// the check-in flow can be exercised without a real device.
package location

import (
	"context"
	"time"

	"vokasia/internal/geo"
)

// Options configures one position request.
type Options struct {
	// HighAccuracy prefers GPS over network positioning when the platform
	// offers the choice.
	HighAccuracy bool
	// Timeout aborts the request if no fix arrives within the window.
	Timeout time.Duration
	// MaxCacheAge rejects cached fixes older than this. Zero means a cached
	// fix is never acceptable.
	MaxCacheAge time.Duration
}

// DefaultOptions mirrors the values the attendance flow ships with: fresh,
// high-accuracy fixes with a 10 second budget.
func DefaultOptions() Options {
	return Options{HighAccuracy: true, Timeout: 10 * time.Second, MaxCacheAge: 0}
}

// Fix is one position reading.
type Fix struct {
	Point      geo.Point
	CapturedAt time.Time
}

// Source is the single-operation capability port. One call, one reading, no
// automatic retry; retrying is the caller's decision.
type Source interface {
	Current(ctx context.Context, opts Options) (Fix, error)
}

// FailureKind enumerates the normalized failure taxonomy of the capability.
type FailureKind string

const (
	PermissionDenied FailureKind = "permission_denied"
	Unavailable      FailureKind = "position_unavailable"
	Timeout          FailureKind = "timeout"
	Unsupported      FailureKind = "unsupported"
)

// CapabilityError is a typed positioning failure.
type CapabilityError struct {
	Kind    FailureKind
	Message string
}

func (e *CapabilityError) Error() string {
	return "location: " + string(e.Kind) + ": " + e.Message
}

// NewCapabilityError builds a typed failure with a human-readable message.
func NewCapabilityError(kind FailureKind, message string) *CapabilityError {
	return &CapabilityError{Kind: kind, Message: message}
}
