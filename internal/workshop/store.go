package workshop

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested workshop does not exist.
var ErrNotFound = errors.New("workshop not found")

// ErrWorkshopFull is returned when a workshop has no remaining capacity.
var ErrWorkshopFull = errors.New("workshop is fully booked")

// ErrAlreadyRegistered is returned when the same talenta registers twice.
var ErrAlreadyRegistered = errors.New("talenta already registered for this workshop")

// Store persists workshops and registrations.
type Store interface {
	Create(ctx context.Context, w *Workshop) error
	Get(ctx context.Context, id string) (*Workshop, error)
	List(ctx context.Context) ([]*Workshop, error)

	// Register enforces capacity and the one-registration-per-talenta rule.
	Register(ctx context.Context, reg *Registration) error
	ListRegistrants(ctx context.Context, workshopID string) ([]*Registration, error)
	IsRegistered(ctx context.Context, workshopID, talentaID string) (bool, error)
}
