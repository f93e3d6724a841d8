// Package certificate issues completion certificates to talenta who attended
// a workshop.
package certificate

import "time"

// Certificate records a single issuance. SerialNumber is the human-facing
// identifier printed on the document.
type Certificate struct {
	ID           string    `json:"id"`
	WorkshopID   string    `json:"workshop_id"`
	TalentaID    string    `json:"talenta_id"`
	SerialNumber string    `json:"serial_number"`
	IssuedAt     time.Time `json:"issued_at"`
}
