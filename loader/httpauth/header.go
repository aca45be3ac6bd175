package httpauth

import (
	"context"
	"maps"
	"net/http"
)

// HeaderAuth sets arbitrary headers, typically Authorization or an API key.
type HeaderAuth struct {
	Headers map[string]string
}

func NewHeaderAuth(headers map[string]string) *HeaderAuth {
	return &HeaderAuth{Headers: maps.Clone(headers)}
}

// NewBearerAuth sets "Authorization: Bearer <token>".
func NewBearerAuth(token string) *HeaderAuth {
	return NewHeaderAuth(map[string]string{"Authorization": "Bearer " + token})
}

func (h *HeaderAuth) Name() string {
	return "Header"
}

func (h *HeaderAuth) Authenticate(req *http.Request) error {
	for key, value := range h.Headers {
		req.Header.Set(key, value)
	}
	return nil
}

func (h *HeaderAuth) AuthenticateWithContext(ctx context.Context, req *http.Request) error {
	return applyAuthWithContext(ctx, req, h.Authenticate)
}
