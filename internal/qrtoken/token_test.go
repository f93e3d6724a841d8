package qrtoken

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "vokasia/pkg/domain-errors"
)

func TestIssueAndVerify(t *testing.T) {
	issuer := NewIssuer("test-key", 0)
	require.Equal(t, DefaultTTL, issuer.TTL())

	pass, err := issuer.Issue("ws-1", "main")
	require.NoError(t, err)
	assert.NotEmpty(t, pass.Token)
	assert.NotEmpty(t, pass.JTI)
	assert.Equal(t, pass.IssuedAt.Add(DefaultTTL), pass.ExpiresAt)

	claims, err := issuer.Verify(pass.Token, "ws-1", "main")
	require.NoError(t, err)
	assert.Equal(t, "ws-1", claims.WorkshopID)
	assert.Equal(t, "main", claims.SessionID)
	assert.Equal(t, pass.JTI, claims.ID)
}

func TestVerifyRejectsForeignSession(t *testing.T) {
	issuer := NewIssuer("test-key", time.Minute)
	pass, err := issuer.Issue("ws-1", "main")
	require.NoError(t, err)

	_, err = issuer.Verify(pass.Token, "ws-2", "main")
	assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(err))

	_, err = issuer.Verify(pass.Token, "ws-1", "other")
	assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(err))
}

func TestVerifyRejectsExpiredPass(t *testing.T) {
	issuer := NewIssuer("test-key", 120*time.Second)
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	issuer.now = func() time.Time { return base }

	pass, err := issuer.Issue("ws-1", "main")
	require.NoError(t, err)

	// Still valid just inside the window.
	issuer.now = func() time.Time { return base.Add(119 * time.Second) }
	_, err = issuer.Verify(pass.Token, "ws-1", "main")
	assert.NoError(t, err)

	// Expiry is enforced at scan time, not only on the displayed countdown.
	issuer.now = func() time.Time { return base.Add(121 * time.Second) }
	_, err = issuer.Verify(pass.Token, "ws-1", "main")
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(err))
	assert.Contains(t, err.Error(), "expired")
}

func TestVerifyRejectsTamperedSignature(t *testing.T) {
	pass, err := NewIssuer("key-a", time.Minute).Issue("ws-1", "main")
	require.NoError(t, err)

	_, err = NewIssuer("key-b", time.Minute).Verify(pass.Token, "ws-1", "main")
	assert.Equal(t, dErrors.CodeUnauthorized, dErrors.CodeOf(err))
}

func TestInMemoryConsumerStore(t *testing.T) {
	store := NewInMemoryConsumerStore()
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }
	ctx := context.Background()

	require.NoError(t, store.Consume(ctx, "jti-1", "talenta-1", 2*time.Minute))

	err := store.Consume(ctx, "jti-1", "talenta-1", 2*time.Minute)
	require.Error(t, err)
	assert.Equal(t, dErrors.CodeConflict, dErrors.CodeOf(err))

	// A different registrant may use the same displayed pass.
	assert.NoError(t, store.Consume(ctx, "jti-1", "talenta-2", 2*time.Minute))

	// Entries lapse with the pass TTL.
	store.now = func() time.Time { return base.Add(3 * time.Minute) }
	assert.NoError(t, store.Consume(ctx, "jti-1", "talenta-1", 2*time.Minute))
}
