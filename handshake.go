package kpro

import "fmt"

type handshakeState int

const (
	handshakeInit handshakeState = iota
	handshakeTCPConnected
	handshakeTLSUpgraded
	handshakeSASLHandshaked
	handshakeSASLAuthed
	handshakeReady
)

func (s handshakeState) String() string {
	switch s {
	case handshakeInit:
		return "init"
	case handshakeTCPConnected:
		return "tcp_connected"
	case handshakeTLSUpgraded:
		return "tls_upgraded"
	case handshakeSASLHandshaked:
		return "sasl_handshaked"
	case handshakeSASLAuthed:
		return "sasl_authed"
	case handshakeReady:
		return "ready"
	default:
		return "unknown"
	}
}

// diagnose maps a handshake failure to a human-readable hint about which
// stage most likely caused it. It is a pure function of the state the
// handshake reached, whether TLS/SASL were configured, and the error that
// stopped progress, so it can be unit tested without a real socket.
func diagnose(state handshakeState, tlsOn, saslOn bool, err error) string {
	if err == nil {
		return ""
	}

	switch state {
	case handshakeInit:
		return fmt.Sprintf("failed to establish a TCP connection: %v", err)
	case handshakeTCPConnected:
		if tlsOn {
			return fmt.Sprintf("TCP connected but the TLS handshake failed: %v", err)
		}
		if saslOn {
			return fmt.Sprintf("TCP connected but the SASL handshake failed: %v", err)
		}
		return fmt.Sprintf("TCP connected but the connection failed before becoming ready: %v", err)
	case handshakeTLSUpgraded:
		if saslOn {
			return fmt.Sprintf("TLS established but the SASL handshake failed: %v", err)
		}
		return fmt.Sprintf("TLS established but the connection failed before becoming ready: %v", err)
	case handshakeSASLHandshaked:
		return fmt.Sprintf("SASL mechanism accepted but authentication failed: %v", err)
	case handshakeSASLAuthed:
		return fmt.Sprintf("authenticated but the connection failed before becoming ready: %v", err)
	default:
		return err.Error()
	}
}
