// Package account holds marketplace identities: talenta (trainees) and mitra
// (training partners), plus the access tokens that gate the API.
package account

import "time"

// Account types.
const (
	TypeTalenta = "talenta"
	TypeMitra   = "mitra"
)

// Account is one registered user. PasswordHash is bcrypt and never serialized.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	PasswordHash []byte    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
