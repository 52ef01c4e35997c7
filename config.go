package kpro

import (
	"crypto/tls"
	"fmt"
	"io"
	"time"

	"github.com/rcrowley/go-metrics"
)

// SASLMechanism names a SASL mechanism this client core can speak.
type SASLMechanism string

const (
	SASLTypePlaintext   SASLMechanism = "PLAIN"
	SASLTypeSCRAMSHA256 SASLMechanism = "SCRAM-SHA-256"
	SASLTypeSCRAMSHA512 SASLMechanism = "SCRAM-SHA-512"
	SASLTypeOAuth       SASLMechanism = "OAUTHBEARER"
)

// AccessToken is returned by a TokenProvider for OAUTHBEARER-style SASL.
// Extensions become additional key=value pairs in the RFC 7628 client
// initial response; "auth" is reserved by the format itself and rejected
// by buildClientInitialResponse if present.
type AccessToken struct {
	Token      string
	Extensions map[string]string
}

// TokenProvider obtains an AccessToken on demand. Consulted once per
// connection, immediately before the SASL_AUTHENTICATE exchange.
type TokenProvider interface {
	Token() (*AccessToken, error)
}

// Config bundles every tunable the broker connection, handshake and
// discovery layers consult, mirroring sarama's nested Net.* convention.
type Config struct {
	// ClientID is sent with every request (response_header has no room for
	// it, it lives in the request header only).
	ClientID string

	Net struct {
		// MaxOpenRequests bounds the pending-request table's size; once it
		// is full, sending blocks until an in-flight request completes.
		MaxOpenRequests int

		DialTimeout     time.Duration
		ReadTimeout     time.Duration
		WriteTimeout    time.Duration
		RequestTimeout  time.Duration

		// NoLink decouples the connection actor's lifetime from any single
		// caller's context: when true, the actor started by Dial runs under
		// context.Background() regardless of what ctx a caller passes (the
		// dial and handshake still use the caller's ctx).
		NoLink bool

		TLS struct {
			Enable bool
			Config *tls.Config
		}

		SASL struct {
			Enable               bool
			Mechanism            SASLMechanism
			Handshake            bool
			User                 string
			Password             string
			CredentialsFilePath  string
			TokenProvider        TokenProvider
		}
	}

	MetricRegistry metrics.Registry

	Debug struct {
		Enable bool
		Writer io.Writer
	}
}

// NewConfig returns a Config with the documented defaults: a 5s connect
// timeout, a 4 minute request timeout, "kpro_default" as the client id, 5
// concurrent in-flight requests, and a fresh go-metrics registry.
func NewConfig() *Config {
	c := &Config{}

	c.ClientID = "kpro_default"

	c.Net.MaxOpenRequests = 5
	c.Net.DialTimeout = 5 * time.Second
	c.Net.ReadTimeout = 30 * time.Second
	c.Net.WriteTimeout = 30 * time.Second
	c.Net.RequestTimeout = 4 * time.Minute
	c.Net.SASL.Handshake = true

	c.MetricRegistry = metrics.NewRegistry()

	return c
}

// Validate checks Config for self-consistency, the way sarama's
// Config.Validate does: one ConfigurationError per bad field, all wrapped
// under ErrConfigValidation, so errors.Is matches that sentinel and
// errors.As finds the first ConfigurationError.
func (c *Config) Validate() error {
	var problems []error

	if c.Net.MaxOpenRequests <= 0 {
		problems = append(problems, ConfigurationError("Net.MaxOpenRequests must be > 0"))
	}
	if c.Net.DialTimeout <= 0 {
		problems = append(problems, ConfigurationError("Net.DialTimeout must be > 0"))
	}
	if c.Net.ReadTimeout <= 0 {
		problems = append(problems, ConfigurationError("Net.ReadTimeout must be > 0"))
	}
	if c.Net.WriteTimeout <= 0 {
		problems = append(problems, ConfigurationError("Net.WriteTimeout must be > 0"))
	}
	if c.Net.RequestTimeout < time.Second {
		problems = append(problems, ConfigurationError("Net.RequestTimeout must be >= 1s"))
	}

	if c.Net.SASL.Enable {
		switch c.Net.SASL.Mechanism {
		case SASLTypePlaintext, SASLTypeSCRAMSHA256, SASLTypeSCRAMSHA512:
			if c.Net.SASL.CredentialsFilePath == "" {
				if c.Net.SASL.User == "" {
					problems = append(problems, ConfigurationError("Net.SASL.User must not be empty when SASL is enabled"))
				}
				if c.Net.SASL.Password == "" {
					problems = append(problems, ConfigurationError("Net.SASL.Password must not be empty when SASL is enabled"))
				}
			}
		case SASLTypeOAuth:
			if c.Net.SASL.TokenProvider == nil {
				problems = append(problems, ConfigurationError(
					"an AccessTokenProvider instance must be provided to Net.SASL.TokenProvider"))
			}
		default:
			problems = append(problems, ConfigurationError(fmt.Sprintf(
				"Net.SASL.Mechanism %q is not supported", c.Net.SASL.Mechanism)))
		}
	}

	if c.Net.TLS.Enable && c.Net.TLS.Config == nil {
		problems = append(problems, ConfigurationError("Net.TLS.Config must be set when Net.TLS.Enable is true"))
	}

	if len(problems) == 0 {
		return nil
	}
	return Wrap(ErrConfigValidation, problems...)
}
