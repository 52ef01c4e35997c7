package kpro

import (
	"context"
	"fmt"
	"net"
	"sort"
)

// OAuthBearerAuthenticator implements SASL/OAUTHBEARER: a single
// SaslAuthenticate exchange carrying an RFC 7628 client initial response
// built from a TokenProvider-supplied AccessToken.
type OAuthBearerAuthenticator struct {
	TokenProvider TokenProvider
}

func (a *OAuthBearerAuthenticator) Authenticate(ctx context.Context, conn net.Conn, clientID string) error {
	if a.TokenProvider == nil {
		return ConfigurationError("Net.SASL.TokenProvider must be set for SASL/OAUTHBEARER")
	}

	token, err := a.TokenProvider.Token()
	if err != nil {
		return fmt.Errorf("sasl/oauthbearer: failed to retrieve access token: %w", err)
	}

	payload, err := buildClientInitialResponse(token)
	if err != nil {
		return err
	}

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

// buildClientInitialResponse builds the RFC 7628 GS2 header plus
// "auth=Bearer <token>" key and any caller-supplied extensions, each
// separated by \x01 and terminated by a trailing \x01\x01. "auth" is a
// reserved extension key and is rejected.
func buildClientInitialResponse(token *AccessToken) ([]byte, error) {
	if _, reserved := token.Extensions["auth"]; reserved {
		return []byte(""), ConfigurationError(`SASL extension "auth" is reserved`)
	}

	keys := make([]string, 0, len(token.Extensions))
	for k := range token.Extensions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	resp := "n,,\x01auth=Bearer " + token.Token + "\x01"
	for _, k := range keys {
		resp += k + "=" + token.Extensions[k] + "\x01"
	}
	resp += "\x01"

	return []byte(resp), nil
}
