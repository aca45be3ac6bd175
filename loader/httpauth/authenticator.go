// Package httpauth provides authentication strategies for fetching grammar
// documents over HTTP.
package httpauth

import (
	"context"
	"net/http"
)

// Authenticator applies credentials to an outgoing request.
type Authenticator interface {
	// Authenticate modifies the request in place.
	Authenticate(req *http.Request) error

	// AuthenticateWithContext fails early when ctx is already done.
	AuthenticateWithContext(ctx context.Context, req *http.Request) error

	// Name returns a descriptive name of the authentication method.
	Name() string
}

func applyAuthWithContext(
	ctx context.Context,
	req *http.Request,
	authFn func(*http.Request) error,
) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	return authFn(req.WithContext(ctx))
}
