package kpro

import (
	"context"
	"net"
	"time"
)

// CallbackAuthenticator performs the SASL_AUTHENTICATE leg of the
// handshake over conn once SaslHandshakeRequest has already told the
// broker which mechanism to expect. It runs before the connection actor
// starts, so it talks to conn directly rather than through Broker.Send.
type CallbackAuthenticator interface {
	Authenticate(ctx context.Context, conn net.Conn, clientID string) error
}

// doSASLHandshake announces the configured mechanism via SaslHandshakeRequest
// and, if the broker accepts it, hands off to the configured
// CallbackAuthenticator for the SASL_AUTHENTICATE exchange.
func (b *Broker) doSASLHandshake(ctx context.Context) error {
	handshakeReq := &SaslHandshakeRequest{Mechanism: string(b.conf.Net.SASL.Mechanism), Version: 0}
	raw, err := encodeRequest(b.conf.ClientID, saslHandshakeCorrelationID, handshakeReq)
	if err != nil {
		return err
	}
	body, err := rawRoundTrip(ctx, b.conn, raw)
	if err != nil {
		return err
	}

	handshakeResp := new(SaslHandshakeResponse)
	if err := versionedDecode(body, handshakeResp, 0); err != nil {
		return err
	}
	if handshakeResp.Err != ErrNoError {
		return handshakeResp.Err
	}

	authenticator, err := b.saslAuthenticator()
	if err != nil {
		return err
	}
	return authenticator.Authenticate(ctx, b.conn, b.conf.ClientID)
}

func (b *Broker) saslAuthenticator() (CallbackAuthenticator, error) {
	user, password := b.conf.Net.SASL.User, b.conf.Net.SASL.Password
	if path := b.conf.Net.SASL.CredentialsFilePath; path != "" {
		var err error
		if user, password, err = readCredentialsFile(path); err != nil {
			return nil, err
		}
	}

	switch b.conf.Net.SASL.Mechanism {
	case SASLTypePlaintext:
		return &PlainAuthenticator{User: user, Password: password}, nil
	case SASLTypeSCRAMSHA256:
		return newScramAuthenticator(scramSHA256, user, password)
	case SASLTypeSCRAMSHA512:
		return newScramAuthenticator(scramSHA512, user, password)
	case SASLTypeOAuth:
		return &OAuthBearerAuthenticator{TokenProvider: b.conf.Net.SASL.TokenProvider}, nil
	default:
		return nil, ConfigurationError("unsupported SASL mechanism: " + string(b.conf.Net.SASL.Mechanism))
	}
}

// rawRoundTrip writes raw (a full request frame) to conn and reads back one
// complete response frame, returning its body (correlation id already
// stripped). Used only before the connection actor is running.
func rawRoundTrip(ctx context.Context, conn net.Conn, raw []byte) ([]byte, error) {
	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetDeadline(deadline)
		defer conn.SetDeadline(time.Time{})
	}

	if _, err := conn.Write(raw); err != nil {
		return nil, err
	}

	var acc frameAccumulator
	buf := make([]byte, 4096)
	for {
		n, err := conn.Read(buf)
		if n > 0 {
			frames, ferr := acc.Feed(buf[:n])
			if len(frames) > 0 {
				_, body, err := decodeCorrelationID(frames[0])
				return body, err
			}
			if ferr != nil {
				return nil, ferr
			}
		}
		if err != nil {
			return nil, err
		}
	}
}
