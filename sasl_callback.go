package kpro

import (
	"context"
	"net"

	"github.com/xdg-go/scram"
)

type scramHashKind int

const (
	scramSHA256 scramHashKind = iota
	scramSHA512
)

// ScramAuthenticator implements SASL/SCRAM-SHA-256 and SASL/SCRAM-SHA-512
// via github.com/xdg-go/scram: the client-first/server-first and
// client-final/server-final messages are exchanged as two SaslAuthenticate
// round trips.
type ScramAuthenticator struct {
	user, password string
	hash           scramHashKind
}

func newScramAuthenticator(hash scramHashKind, user, password string) (*ScramAuthenticator, error) {
	if user == "" || password == "" {
		return nil, ConfigurationError("SCRAM requires a non-empty user and password")
	}
	return &ScramAuthenticator{user: user, password: password, hash: hash}, nil
}

func (a *ScramAuthenticator) client() (*scram.Client, error) {
	hashFn := scram.SHA256
	if a.hash == scramSHA512 {
		hashFn = scram.SHA512
	}
	return hashFn.NewClient(a.user, a.password, "")
}

func (a *ScramAuthenticator) Authenticate(ctx context.Context, conn net.Conn, clientID string) error {
	client, err := a.client()
	if err != nil {
		return err
	}
	conv := client.NewConversation()

	step, err := conv.Step("")
	if err != nil {
		return err
	}

	for {
		respBytes, err := a.roundTrip(ctx, conn, clientID, []byte(step))
		if err != nil {
			return err
		}

		step, err = conv.Step(string(respBytes))
		if err != nil {
			return err
		}

		if conv.Done() {
			return nil
		}
	}
}

func (a *ScramAuthenticator) roundTrip(ctx context.Context, conn net.Conn, clientID string, payload []byte) ([]byte, error) {
	req := &SaslAuthenticateRequest{SaslAuthBytes: payload}
	raw, err := encodeRequest(clientID, saslHandshakeCorrelationID, req)
	if err != nil {
		return nil, err
	}

	body, err := rawRoundTrip(ctx, conn, raw)
	if err != nil {
		return nil, err
	}

	resp := new(SaslAuthenticateResponse)
	if err := versionedDecode(body, resp, 0); err != nil {
		return nil, err
	}
	if resp.Err != ErrNoError {
		return nil, resp.Err
	}
	return resp.SaslAuthBytes, nil
}
