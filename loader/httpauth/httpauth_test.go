package httpauth

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequest(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "https://example.com/c.xml", nil)
	require.NoError(t, err)
	return req
}

func TestAuthenticators(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		auth     Authenticator
		wantName string
		verify   func(t *testing.T, req *http.Request)
	}{
		{
			name:     "no auth",
			auth:     NewNoAuth(),
			wantName: "None",
			verify: func(t *testing.T, req *http.Request) {
				t.Helper()
				assert.Empty(t, req.Header)
			},
		},
		{
			name:     "basic",
			auth:     NewBasicAuth("kate", "secret"),
			wantName: "Basic",
			verify: func(t *testing.T, req *http.Request) {
				t.Helper()
				user, pass, ok := req.BasicAuth()
				require.True(t, ok)
				assert.Equal(t, "kate", user)
				assert.Equal(t, "secret", pass)
			},
		},
		{
			name:     "basic without username",
			auth:     NewBasicAuth("", "secret"),
			wantName: "Basic",
			verify: func(t *testing.T, req *http.Request) {
				t.Helper()
				assert.Empty(t, req.Header.Get("Authorization"))
			},
		},
		{
			name:     "headers",
			auth:     NewHeaderAuth(map[string]string{"X-API-Key": "k1", "X-Other": "v"}),
			wantName: "Header",
			verify: func(t *testing.T, req *http.Request) {
				t.Helper()
				assert.Equal(t, "k1", req.Header.Get("X-API-Key"))
				assert.Equal(t, "v", req.Header.Get("X-Other"))
			},
		},
		{
			name:     "nil headers",
			auth:     NewHeaderAuth(nil),
			wantName: "Header",
			verify: func(t *testing.T, req *http.Request) {
				t.Helper()
				assert.Empty(t, req.Header)
			},
		},
		{
			name:     "bearer",
			auth:     NewBearerAuth("tok"),
			wantName: "Header",
			verify: func(t *testing.T, req *http.Request) {
				t.Helper()
				assert.Equal(t, "Bearer tok", req.Header.Get("Authorization"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.wantName, tt.auth.Name())

			req := newRequest(t)
			require.NoError(t, tt.auth.Authenticate(req))
			tt.verify(t, req)

			req = newRequest(t)
			require.NoError(t, tt.auth.AuthenticateWithContext(t.Context(), req))
			tt.verify(t, req)
		})
	}
}

func TestAuthenticateWithCanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	for _, auth := range []Authenticator{
		NewNoAuth(),
		NewBasicAuth("kate", "secret"),
		NewBearerAuth("tok"),
	} {
		req := newRequest(t)
		err := auth.AuthenticateWithContext(ctx, req)
		require.ErrorIs(t, err, context.Canceled, auth.Name())
		assert.Empty(t, req.Header.Get("Authorization"))
	}
}

func TestHeaderAuthCopiesInput(t *testing.T) {
	t.Parallel()

	in := map[string]string{"X-Key": "one"}
	auth := NewHeaderAuth(in)
	in["X-Key"] = "two"

	req := newRequest(t)
	require.NoError(t, auth.Authenticate(req))
	assert.Equal(t, "one", req.Header.Get("X-Key"))
}
