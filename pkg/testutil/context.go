package testutil

import (
	"context"
	"net/http"

	"vokasia/internal/platform/middleware"
)

// WithAccount adds an authenticated account to the request context,
// simulating what the auth middleware does for a valid bearer token.
func WithAccount(req *http.Request, accountID, accountType string) *http.Request {
	ctx := req.Context()
	ctx = context.WithValue(ctx, middleware.ContextKeyAccountID, accountID)
	ctx = context.WithValue(ctx, middleware.ContextKeyAccountType, accountType)
	return req.WithContext(ctx)
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
