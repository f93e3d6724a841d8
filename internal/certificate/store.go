package certificate

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no certificate exists for the lookup.
var ErrNotFound = errors.New("certificate not found")

// ErrAlreadyIssued is returned when a certificate for the
// (workshop, talenta) pair already exists.
var ErrAlreadyIssued = errors.New("certificate already issued")

// Store persists certificates.
type Store interface {
	// Create writes the certificate, enforcing one per (workshop, talenta).
	Create(ctx context.Context, c *Certificate) error
	Get(ctx context.Context, workshopID, talentaID string) (*Certificate, error)
	ListByWorkshop(ctx context.Context, workshopID string) ([]*Certificate, error)
}
