package kpro

import (
	"errors"
	"fmt"
)

// KError is the error type returned by the Kafka protocol for a given
// request/response pair. It is distinct from the Go-level connection
// errors below, which never cross the wire.
type KError int16

// Numeric error codes returned by the Kafka brokers. Only the subset the
// core discovery/handshake pipelines inspect is named; an unrecognised
// code still round-trips fine as a plain KError.
const (
	ErrNoError                  KError = 0
	ErrUnknown                  KError = -1
	ErrOffsetOutOfRange         KError = 1
	ErrInvalidMessage           KError = 2
	ErrUnknownTopicOrPartition  KError = 3
	ErrLeaderNotAvailable       KError = 5
	ErrNotLeaderForPartition    KError = 6
	ErrRequestTimedOut          KError = 7
	ErrBrokerNotAvailable       KError = 8
	ErrReplicaNotAvailable      KError = 9
	ErrMessageSizeTooLarge      KError = 10
	ErrStaleControllerEpoch     KError = 11
	ErrOffsetMetadataTooLarge   KError = 12
	ErrNetworkException         KError = 13
	ErrGroupLoadInProgress      KError = 14
	ErrGroupCoordinatorNotAvail KError = 15
	ErrNotCoordinatorForGroup   KError = 16
	ErrIllegalGeneration        KError = 22
	ErrIllegalSaslState         KError = 34
	ErrUnsupportedSASLMechanism KError = 33
	ErrSASLAuthenticationFailed KError = 58
)

var kerrorText = map[KError]string{
	ErrNoError:                  "kafka server: no error",
	ErrUnknown:                  "kafka server: unexpected error",
	ErrOffsetOutOfRange:         "kafka server: offset out of range",
	ErrInvalidMessage:           "kafka server: message contents failed CRC check",
	ErrUnknownTopicOrPartition:  "kafka server: unknown topic or partition",
	ErrLeaderNotAvailable:       "kafka server: leader not available",
	ErrNotLeaderForPartition:    "kafka server: not leader for this partition",
	ErrRequestTimedOut:          "kafka server: request timed out",
	ErrBrokerNotAvailable:       "kafka server: broker not available",
	ErrReplicaNotAvailable:      "kafka server: replica not available",
	ErrMessageSizeTooLarge:      "kafka server: message is larger than the maximum size the server will accept",
	ErrStaleControllerEpoch:     "kafka server: stale controller epoch",
	ErrOffsetMetadataTooLarge:   "kafka server: offset metadata too large",
	ErrNetworkException:        "kafka server: network exception",
	ErrGroupLoadInProgress:      "kafka server: group is loading",
	ErrGroupCoordinatorNotAvail: "kafka server: group coordinator not available",
	ErrNotCoordinatorForGroup:   "kafka server: not coordinator for this group",
	ErrIllegalGeneration:        "kafka server: generation id is not current",
	ErrIllegalSaslState:         "kafka server: request isn't valid given the current SASL state",
	ErrUnsupportedSASLMechanism: "kafka server: unsupported SASL mechanism",
	ErrSASLAuthenticationFailed: "kafka server: SASL authentication failed",
}

func (e KError) Error() string {
	if text, ok := kerrorText[e]; ok {
		return text
	}
	return fmt.Sprintf("kafka server: error code %d", int16(e))
}

// Client-side sentinel errors. Use errors.Is against these; Wrap attaches
// transport-level detail without losing the sentinel identity.
var (
	ErrOutOfBrokers            = errors.New("kpro: could not reach any of the bootstrap brokers")
	ErrClosedConnection        = errors.New("kpro: broker connection is closed")
	ErrTransportClosed         = errors.New("kpro: transport closed by peer")
	ErrTimeout                 = errors.New("kpro: request timed out waiting for a response")
	ErrRequestTimeout          = errors.New("kpro: oldest in-flight request exceeded the configured request timeout")
	ErrNotSupported            = errors.New("kpro: api not present in the negotiated version map")
	ErrProtocolError           = errors.New("kpro: malformed or ambiguous protocol response")
	ErrInsufficientData        = errors.New("kpro: insufficient data to decode packet, more bytes expected")
	ErrShortBuffer             = errors.New("kpro: buffer too short to encode value")
	ErrEncodingTooLong         = errors.New("kpro: value too long to encode with a 16/32-bit length prefix")
	errInvalidArrayLength      = errors.New("kpro: invalid or implausible array length")
	errInvalidNegativeLength   = errors.New("kpro: invalid negative length prefix")
	errDanglingPushDecoder     = errors.New("kpro: decoder pop without matching push")
	ErrCorrelationIDCollision  = errors.New("kpro: correlation id wrapped onto a still-pending request")
	ErrConfigValidation        = errors.New("kpro: invalid configuration")
	ErrUnsupportedVersion      = errors.New("kpro: request not expressible at the negotiated api version")
	ErrTransactionCoordinatorV0 = errors.New("kpro: find_coordinator version 0 only supports group coordinators")
)

// MaxResponseSize bounds the array/byte-string lengths accepted while
// decoding, guarding against a corrupt length prefix turning into an
// out-of-memory allocation.
const MaxResponseSize int32 = 100 * 1024 * 1024

// ConfigurationError is returned by Config.Validate for a single bad field.
type ConfigurationError string

func (err ConfigurationError) Error() string {
	return string(err)
}

// multiWrapped is a lightweight multi-parent error that matches a sentinel
// (or any wrapped error) via errors.Is/errors.As without pulling in a
// dependency for the common case of "one sentinel plus one real cause".
type multiWrapped struct {
	sentinel error
	wrapped  []error
}

func (w *multiWrapped) Error() string {
	if len(w.wrapped) == 0 {
		return w.sentinel.Error()
	}
	s := w.sentinel.Error() + ":"
	for _, e := range w.wrapped {
		s += " " + e.Error()
	}
	return s
}

func (w *multiWrapped) Is(target error) bool {
	if errors.Is(w.sentinel, target) {
		return true
	}
	for _, e := range w.wrapped {
		if errors.Is(e, target) {
			return true
		}
	}
	return false
}

func (w *multiWrapped) As(target any) bool {
	for _, e := range w.wrapped {
		if errors.As(e, target) {
			return true
		}
	}
	return false
}

func (w *multiWrapped) Unwrap() error {
	switch len(w.wrapped) {
	case 0:
		return nil
	case 1:
		return w.wrapped[0]
	default:
		return errors.Join(w.wrapped...)
	}
}

// Wrap attaches one or more causes to a sentinel error while keeping
// errors.Is(result, sentinel) and errors.Is/As(result, cause) both true.
func Wrap(sentinel error, wrapped ...error) error {
	return &multiWrapped{sentinel: sentinel, wrapped: wrapped}
}

// IsMessageSizeTooLarge reports whether err indicates a message exceeded
// either the broker's or the client's own size limit.
func IsMessageSizeTooLarge(err error) bool {
	if err == nil {
		return false
	}
	var cfgErr messageSizeTooLargeConfigurationError
	return errors.Is(err, ErrMessageSizeTooLarge) || errors.As(err, &cfgErr)
}

// messageSizeTooLargeConfigurationError is the client-side analogue of
// ErrMessageSizeTooLarge: the encoded request would exceed MaxResponseSize
// before it was ever sent, so it is a configuration problem, not a
// protocol error returned by the broker.
type messageSizeTooLargeConfigurationError struct {
	max     int
	encoded int
}

func (e messageSizeTooLargeConfigurationError) Error() string {
	return fmt.Sprintf("kpro: encoded request size %d exceeds the configured maximum of %d", e.encoded, e.max)
}

func newMessageSizeTooLargeConfigurationError(max, encoded int) error {
	return messageSizeTooLargeConfigurationError{max: max, encoded: encoded}
}
