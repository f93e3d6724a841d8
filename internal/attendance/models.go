// Package attendance records verified workshop attendance. The server is the
// authority: every submission re-runs the geofence check against the stored
// workshop location and verifies the rotating pass before anything persists.
package attendance

import (
	"time"

	"vokasia/internal/geo"
)

// Record is one durable attendance fact. Written once; the flow offers no
// amendment or deletion, and the distance is never stored without the
// observation that produced it.
type Record struct {
	ID         string    `json:"id"`
	WorkshopID string    `json:"workshop_id"`
	SessionID  string    `json:"session_id"`
	TalentaID  string    `json:"talenta_id"`
	Point      geo.Point `json:"point"`
	DistanceM  float64   `json:"distance_m"`
	RecordedAt time.Time `json:"recorded_at"`
}

// RosterEntry joins one registrant with their attendance record, if any.
type RosterEntry struct {
	TalentaID    string    `json:"talenta_id"`
	TalentaName  string    `json:"talenta_name,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
	Attendance   *Record   `json:"attendance,omitempty"`
}

// Roster is the instructor-facing view: all registrants plus aggregate
// counts.
type Roster struct {
	WorkshopID  string        `json:"workshop_id"`
	SessionID   string        `json:"session_id"`
	Entries     []RosterEntry `json:"registrants"`
	Attended    int           `json:"attended"`
	NotAttended int           `json:"not_attended"`
}
