package account

import (
	"context"
	"errors"
)

// ErrNotFound is returned when the account does not exist.
var ErrNotFound = errors.New("account not found")

// ErrEmailTaken is returned when the email is already registered.
var ErrEmailTaken = errors.New("email already registered")

// Store persists accounts.
type Store interface {
	Create(ctx context.Context, a *Account) error
	GetByEmail(ctx context.Context, email string) (*Account, error)
	GetByID(ctx context.Context, id string) (*Account, error)
}
