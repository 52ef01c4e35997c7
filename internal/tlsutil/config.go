// Package tlsutil builds crypto/tls.Config values for broker connections
// from file-based material, the same shape the teacher's cmd-line tools use.
package tlsutil

import "crypto/tls"

// NewConfig builds a tls.Config for a client certificate/key pair. Either
// argument may be empty, in which case no client certificate is presented
// (useful for server-auth-only TLS).
func NewConfig(clientCert, clientKey string) (*tls.Config, error) {
	cfg := tls.Config{
		MinVersion: tls.VersionTLS12,
	}

	if clientCert != "" && clientKey != "" {
		cert, err := tls.LoadX509KeyPair(clientCert, clientKey)
		if err != nil {
			return &cfg, err
		}
		cfg.Certificates = []tls.Certificate{cert}
	}

	return &cfg, nil
}
