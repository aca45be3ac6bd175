package httpauth

import (
	"context"
	"net/http"
)

// BasicAuth sets HTTP Basic credentials. An empty username sends nothing.
type BasicAuth struct {
	Username string
	Password string
}

func NewBasicAuth(username, password string) *BasicAuth {
	return &BasicAuth{Username: username, Password: password}
}

func (b *BasicAuth) Name() string {
	return "Basic"
}

func (b *BasicAuth) Authenticate(req *http.Request) error {
	if b.Username == "" {
		return nil
	}
	req.SetBasicAuth(b.Username, b.Password)
	return nil
}

func (b *BasicAuth) AuthenticateWithContext(ctx context.Context, req *http.Request) error {
	return applyAuthWithContext(ctx, req, b.Authenticate)
}
