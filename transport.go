package kpro

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
)

const sockBufBytes = 32 * 1024

// failedToUpgradeToTLSError wraps a TLS handshake failure so callers can
// tell "never got a TCP connection" apart from "connected, but TLS failed".
type failedToUpgradeToTLSError struct {
	err error
}

func (e *failedToUpgradeToTLSError) Error() string {
	return fmt.Sprintf("kpro: failed to upgrade connection to TLS: %v", e.err)
}

func (e *failedToUpgradeToTLSError) Unwrap() error {
	return e.err
}

// dialTransport opens a TCP connection to addr, tunes its socket buffers
// and Nagle setting, and if conf requests it, upgrades to TLS, all under
// conf.Net.DialTimeout.
func dialTransport(ctx context.Context, addr string, conf *Config) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, conf.Net.DialTimeout)
	defer cancel()

	dialer := net.Dialer{Timeout: conf.Net.DialTimeout}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
		_ = tcpConn.SetReadBuffer(sockBufBytes)
		_ = tcpConn.SetWriteBuffer(sockBufBytes)
	}

	if !conf.Net.TLS.Enable {
		return conn, nil
	}

	tlsConf := conf.Net.TLS.Config
	if tlsConf == nil {
		tlsConf = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	tlsConn := tls.Client(conn, tlsConf)
	if err := tlsConn.HandshakeContext(ctx); err != nil {
		if tcpConn, ok := conn.(*net.TCPConn); ok {
			if sockErr := getTCPConnSockError(tcpConn); sockErr != nil {
				err = fmt.Errorf("%w (socket error: %v)", err, sockErr)
			}
		}
		_ = conn.Close()
		return nil, &failedToUpgradeToTLSError{err: err}
	}

	return tlsConn, nil
}
