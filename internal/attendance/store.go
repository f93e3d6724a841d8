package attendance

import (
	"context"
	"errors"
)

// ErrAlreadyRecorded is returned when a registrant's attendance for a session
// was already written.
var ErrAlreadyRecorded = errors.New("attendance already recorded")

// Store persists attendance records.
type Store interface {
	// Create writes the record, enforcing one record per
	// (workshop, session, talenta).
	Create(ctx context.Context, rec *Record) error
	ListBySession(ctx context.Context, workshopID, sessionID string) ([]*Record, error)
	HasAttended(ctx context.Context, workshopID, talentaID string) (bool, error)
}
