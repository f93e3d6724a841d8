// Package qrtoken issues and verifies the rotating attendance passes shown on
// the instructor's screen. A pass is an HS256 JWT bound to one workshop
// session; expiry is enforced at verification time, not just on the displayed
// countdown, and consumption is single-use per registrant.
package qrtoken

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "vokasia/pkg/domain-errors"
)

// DefaultTTL is the pass lifetime and the rotation interval.
const DefaultTTL = 120 * time.Second

// PassClaims are the signed claims inside a pass token.
type PassClaims struct {
	WorkshopID string `json:"workshop_id"`
	SessionID  string `json:"session_id"`
	jwt.RegisteredClaims
}

// Pass is one issued pass plus its display metadata.
type Pass struct {
	Token      string    `json:"token"`
	WorkshopID string    `json:"workshop_id"`
	SessionID  string    `json:"session_id"`
	JTI        string    `json:"jti"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Issuer signs and verifies passes.
type Issuer struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

// NewIssuer builds an Issuer. A non-positive ttl falls back to DefaultTTL.
func NewIssuer(signingKey string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Issuer{signingKey: []byte(signingKey), ttl: ttl, now: time.Now}
}

// TTL returns the configured pass lifetime.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue signs a fresh pass for the given workshop session.
func (i *Issuer) Issue(workshopID, sessionID string) (Pass, error) {
	issuedAt := i.now()
	expiresAt := issuedAt.Add(i.ttl)
	jti := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, PassClaims{
		WorkshopID: workshopID,
		SessionID:  sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(i.signingKey)
	if err != nil {
		return Pass{}, err
	}
	return Pass{
		Token:      signed,
		WorkshopID: workshopID,
		SessionID:  sessionID,
		JTI:        jti,
		IssuedAt:   issuedAt,
		ExpiresAt:  expiresAt,
	}, nil
}

// Verify checks signature, expiry, and the workshop/session binding. An
// expired or foreign pass never reaches the attendance store.
func (i *Issuer) Verify(tokenString, workshopID, sessionID string) (*PassClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &PassClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return i.signingKey, nil
	}, jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "attendance pass has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid attendance pass")
	}
	claims, ok := parsed.Claims.(*PassClaims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid attendance pass")
	}
	if claims.WorkshopID != workshopID || claims.SessionID != sessionID {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "attendance pass does not belong to this session")
	}
	return claims, nil
}
