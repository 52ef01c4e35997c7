package kpro

import (
	"bufio"
	"context"
	"net"
	"os"
	"strings"
)

// PlainAuthenticator implements SASL/PLAIN: a single SaslAuthenticate
// exchange carrying "\x00user\x00password" and expecting an empty-error
// reply.
type PlainAuthenticator struct {
	User     string
	Password string
}

func (a *PlainAuthenticator) Authenticate(ctx context.Context, conn net.Conn, clientID string) error {
	payload := []byte("\x00" + a.User + "\x00" + a.Password)

	req := &SaslAuthenticateRequest{SaslAuthBytes: payload}
	raw, err := encodeRequest(clientID, saslHandshakeCorrelationID, req)
	if err != nil {
		return err
	}

	body, err := rawRoundTrip(ctx, conn, raw)
	if err != nil {
		return err
	}

	resp := new(SaslAuthenticateResponse)
	if err := versionedDecode(body, resp, 0); err != nil {
		return err
	}
	if resp.Err != ErrNoError {
		if resp.ErrorMessage != nil {
			return Wrap(ErrSASLAuthenticationFailed, resp.Err, ConfigurationError(*resp.ErrorMessage))
		}
		return resp.Err
	}
	return nil
}

// readCredentialsFile parses a two-line "user\npassword\n" credentials
// file, skipping blank lines, as spec.md's credentials file format
// describes.
func readCredentialsFile(path string) (user, password string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return "", "", err
	}
	if len(lines) < 2 {
		return "", "", ConfigurationError("credentials file must contain a username line and a password line")
	}
	return lines[0], lines[1], nil
}
