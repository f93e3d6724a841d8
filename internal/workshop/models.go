// Package workshop holds the catalog: workshop records with their
// server-authoritative geofence, and talenta enrollment.
package workshop

import (
	"time"

	"vokasia/internal/geo"
)

// Workshop is one scheduled offline workshop. The geofence stored here is the
// only authority for attendance checks; clients never define the radius.
type Workshop struct {
	ID          string    `json:"id"`
	MitraID     string    `json:"mitra_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	VenueName   string    `json:"venue_name"`
	Geofence    geo.Fence `json:"geofence"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	Capacity    int       `json:"capacity"`
	CreatedAt   time.Time `json:"created_at"`
}

// Registration enrolls one talenta in one workshop.
type Registration struct {
	ID           string    `json:"id"`
	WorkshopID   string    `json:"workshop_id"`
	TalentaID    string    `json:"talenta_id"`
	TalentaName  string    `json:"talenta_name,omitempty"`
	RegisteredAt time.Time `json:"registered_at"`
}
