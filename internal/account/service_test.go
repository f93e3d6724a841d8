package account

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	dErrors "vokasia/pkg/domain-errors"
)

type AccountServiceSuite struct {
	suite.Suite

	ctx     context.Context
	store   *InMemoryStore
	service *Service
}

func TestAccountServiceSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceSuite))
}

func (s *AccountServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemoryStore()
	jwtSvc := NewJWTService("test-signing-key", "vokasia", "vokasia-api", time.Hour)
	svc, err := NewService(s.store, jwtSvc)
	s.Require().NoError(err)
	s.service = svc
}

func (s *AccountServiceSuite) TestRegister() {
	s.Run("creates a talenta account", func() {
		a, err := s.service.Register(s.ctx, "Budi@Example.com", "Budi Santoso", "hunter2hunter2", TypeTalenta)
		s.Require().NoError(err)
		s.Equal("budi@example.com", a.Email)
		s.Equal(TypeTalenta, a.Type)
		s.NotEmpty(a.ID)
		s.NotEmpty(a.PasswordHash)
	})

	s.Run("rejects short passwords", func() {
		_, err := s.service.Register(s.ctx, "sari@example.com", "Sari", "short", TypeTalenta)
		s.Equal(dErrors.CodeBadRequest, dErrors.CodeOf(err))
	})

	s.Run("rejects unknown account types", func() {
		_, err := s.service.Register(s.ctx, "sari@example.com", "Sari", "hunter2hunter2", "admin")
		s.Equal(dErrors.CodeBadRequest, dErrors.CodeOf(err))
	})

	s.Run("rejects duplicate emails case-insensitively", func() {
		_, err := s.service.Register(s.ctx, "dina@example.com", "Dina", "hunter2hunter2", TypeMitra)
		s.Require().NoError(err)

		_, err = s.service.Register(s.ctx, "DINA@example.com", "Dina Again", "hunter2hunter2", TypeMitra)
		s.Equal(dErrors.CodeConflict, dErrors.CodeOf(err))
	})
}

func (s *AccountServiceSuite) TestLogin() {
	_, err := s.service.Register(s.ctx, "eko@example.com", "Eko", "correct-horse-battery", TypeTalenta)
	s.Require().NoError(err)

	s.Run("returns a token for valid credentials", func() {
		token, a, err := s.service.Login(s.ctx, "eko@example.com", "correct-horse-battery")
		s.Require().NoError(err)
		s.NotEmpty(token)
		s.Equal("eko@example.com", a.Email)
	})

	s.Run("rejects a wrong password", func() {
		_, _, err := s.service.Login(s.ctx, "eko@example.com", "wrong-password")
		s.Equal(dErrors.CodeUnauthorized, dErrors.CodeOf(err))
	})

	s.Run("rejects an unknown email with the same error", func() {
		_, _, err := s.service.Login(s.ctx, "ghost@example.com", "correct-horse-battery")
		s.Equal(dErrors.CodeUnauthorized, dErrors.CodeOf(err))
	})
}

func (s *AccountServiceSuite) TestTokenRoundTrip() {
	jwtSvc := NewJWTService("round-trip-key", "vokasia", "vokasia-api", time.Hour)
	svc, err := NewService(NewInMemoryStore(), jwtSvc)
	s.Require().NoError(err)

	a, err := svc.Register(s.ctx, "rina@example.com", "Rina", "hunter2hunter2", TypeMitra)
	s.Require().NoError(err)

	token, _, err := svc.Login(s.ctx, "rina@example.com", "hunter2hunter2")
	s.Require().NoError(err)

	claims, err := jwtSvc.ValidateToken(token)
	s.Require().NoError(err)
	s.Equal(a.ID, claims.AccountID)
	s.Equal(TypeMitra, claims.AccountType)
}

func (s *AccountServiceSuite) TestValidateTokenRejectsExpired() {
	jwtSvc := NewJWTService("expired-key", "vokasia", "vokasia-api", -time.Minute)
	a := &Account{ID: "acc-1", Type: TypeTalenta}

	token, err := jwtSvc.GenerateAccessToken(a)
	s.Require().NoError(err)

	_, err = jwtSvc.ValidateToken(token)
	s.Equal(dErrors.CodeUnauthorized, dErrors.CodeOf(err))
}

func (s *AccountServiceSuite) TestValidateTokenRejectsForeignKey() {
	issuer := NewJWTService("key-a", "vokasia", "vokasia-api", time.Hour)
	verifier := NewJWTService("key-b", "vokasia", "vokasia-api", time.Hour)

	token, err := issuer.GenerateAccessToken(&Account{ID: "acc-2", Type: TypeMitra})
	s.Require().NoError(err)

	_, err = verifier.ValidateToken(token)
	s.Equal(dErrors.CodeUnauthorized, dErrors.CodeOf(err))
}
