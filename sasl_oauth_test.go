package kpro

import (
	"bytes"
	"testing"
)

func TestBuildClientInitialResponse(t *testing.T) {
	tests := []struct {
		name        string
		token       *AccessToken
		expected    []byte
		expectError bool
	}{
		{
			name: "two extensions",
			token: &AccessToken{
				Token:      "the-token",
				Extensions: map[string]string{"x": "1", "y": "2"},
			},
			expected: []byte("n,,\x01auth=Bearer the-token\x01x=1\x01y=2\x01\x01"),
		},
		{
			name:     "no extensions",
			token:    &AccessToken{Token: "the-token"},
			expected: []byte("n,,\x01auth=Bearer the-token\x01\x01"),
		},
		{
			name: "reserved extension",
			token: &AccessToken{
				Token:      "the-token",
				Extensions: map[string]string{"auth": "auth-value"},
			},
			expected:    []byte(""),
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := buildClientInitialResponse(tt.token)
			if !bytes.Equal(actual, tt.expected) {
				t.Errorf("got %q, want %q", actual, tt.expected)
			}
			if tt.expectError && err == nil {
				t.Error("expected an error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
		})
	}
}

func TestOAuthBearerAuthenticatorRequiresTokenProvider(t *testing.T) {
	a := &OAuthBearerAuthenticator{}
	if err := a.Authenticate(nil, nil, "kpro_default"); err == nil {
		t.Error("expected an error when TokenProvider is nil")
	}
}
