package kpro

import (
	"errors"
	"strings"
	"testing"
)

func TestDiagnoseNilErrorIsEmpty(t *testing.T) {
	if got := diagnose(handshakeTCPConnected, true, true, nil); got != "" {
		t.Fatalf("expected empty hint for nil error, got %q", got)
	}
}

func TestDiagnoseMentionsTheStageThatFailed(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name  string
		state handshakeState
		tlsOn bool
		saslOn bool
		want  string
	}{
		{"dial failure", handshakeInit, false, false, "TCP connection"},
		{"tls failure", handshakeTCPConnected, true, false, "TLS handshake"},
		{"sasl failure without tls", handshakeTCPConnected, false, true, "SASL handshake"},
		{"sasl failure with tls", handshakeTLSUpgraded, true, true, "SASL handshake"},
		{"post-auth failure", handshakeSASLAuthed, true, true, "connection failed before becoming ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := diagnose(tt.state, tt.tlsOn, tt.saslOn, cause)
			if !strings.Contains(got, tt.want) {
				t.Errorf("diagnose(%v) = %q, want it to contain %q", tt.state, got, tt.want)
			}
			if !strings.Contains(got, "boom") {
				t.Errorf("diagnose(%v) = %q, want it to contain the underlying error", tt.state, got)
			}
		})
	}
}
