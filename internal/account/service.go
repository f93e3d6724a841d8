package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	dErrors "vokasia/pkg/domain-errors"
)

// Service registers accounts and authenticates logins.
type Service struct {
	store Store
	jwt   *JWTService
	now   func() time.Time
}

func NewService(store Store, jwt *JWTService) (*Service, error) {
	if store == nil {
		return nil, errors.New("account store is required")
	}
	if jwt == nil {
		return nil, errors.New("jwt service is required")
	}
	return &Service{store: store, jwt: jwt, now: time.Now}, nil
}

// Register creates an account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, email, name, password, accountType string) (*Account, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, dErrors.New(dErrors.CodeBadRequest, "a valid email is required")
	}
	if len(password) < 8 {
		return nil, dErrors.New(dErrors.CodeBadRequest, "password must be at least 8 characters")
	}
	if accountType != TypeTalenta && accountType != TypeMitra {
		return nil, dErrors.New(dErrors.CodeBadRequest, "account type must be talenta or mitra")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeInternal, "failed to hash password")
	}

	a := &Account{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         strings.TrimSpace(name),
		Type:         accountType,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.store.Create(ctx, a); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, dErrors.New(dErrors.CodeConflict, "email already registered")
		}
		return nil, dErrors.New(dErrors.CodeInternal, "failed to create account")
	}
	return a, nil
}

// Login verifies credentials and returns a signed access token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, *Account, error) {
	a, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword(a.PasswordHash, []byte(password)); err != nil {
		return "", nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
	}
	token, err := s.jwt.GenerateAccessToken(a)
	if err != nil {
		return "", nil, dErrors.New(dErrors.CodeInternal, "failed to sign access token")
	}
	return token, a, nil
}
