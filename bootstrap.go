package kpro

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// attemptError names the endpoint a bootstrap attempt failed against,
// formatted by bootstrapErrorFormat into the "an ordered list of
// (endpoint, reason) pairs" spec.md asks for.
type attemptError struct {
	endpoint Endpoint
	cause    error
}

func (e *attemptError) Error() string {
	return fmt.Sprintf("%s: %v", e.endpoint, e.cause)
}

func (e *attemptError) Unwrap() error {
	return e.cause
}

func bootstrapErrorFormat(errs []error) string {
	s := fmt.Sprintf("could not reach any of %d bootstrap endpoints:", len(errs))
	for _, err := range errs {
		s += "\n  " + err.Error()
	}
	return s
}

// ConnectAny shuffles endpoints and dials each in turn until one succeeds,
// returning that connection. Every failure is aggregated into the returned
// error when all endpoints are exhausted.
func ConnectAny(ctx context.Context, endpoints []Endpoint, conf *Config) (*Broker, error) {
	if len(endpoints) == 0 {
		return nil, ErrOutOfBrokers
	}

	merr := &multierror.Error{ErrorFormat: bootstrapErrorFormat}

	for _, ep := range shuffleEndpoints(endpoints) {
		conn, err := Dial(ctx, ep, conf, -1)
		if err == nil {
			return conn, nil
		}
		merr = multierror.Append(merr, &attemptError{endpoint: ep, cause: err})
	}

	return nil, Wrap(ErrOutOfBrokers, merr)
}

// WithConnection dials any reachable endpoint in the bootstrap list, runs
// body against it, and always closes the connection afterward.
func WithConnection(ctx context.Context, endpoints []Endpoint, conf *Config, body func(*Broker) error) error {
	conn, err := ConnectAny(ctx, endpoints, conf)
	if err != nil {
		return err
	}
	defer conn.Close()
	return body(conn)
}

// ConnectPartitionLeader resolves topic/partition's leader via an existing
// connection (or, if conn is nil, by bootstrapping against endpoints first)
// and returns a fresh connection dialed directly to that leader.
func ConnectPartitionLeader(ctx context.Context, conn *Broker, endpoints []Endpoint, conf *Config, topic string, partition int32) (*Broker, error) {
	owned := conn == nil
	if owned {
		var err error
		conn, err = ConnectAny(ctx, endpoints, conf)
		if err != nil {
			return nil, err
		}
		defer conn.Close()
	}

	leader, err := DiscoverPartitionLeader(ctx, conn, topic, partition)
	if err != nil {
		return nil, err
	}

	return Dial(ctx, leader, conf, -1)
}

// ConnectCoordinator resolves the group/transaction coordinator for id via
// an existing connection (or, if conn is nil, by bootstrapping against
// endpoints first) and returns a fresh connection dialed directly to it.
func ConnectCoordinator(ctx context.Context, conn *Broker, endpoints []Endpoint, conf *Config, kind CoordinatorType, id string) (*Broker, error) {
	owned := conn == nil
	if owned {
		var err error
		conn, err = ConnectAny(ctx, endpoints, conf)
		if err != nil {
			return nil, err
		}
		defer conn.Close()
	}

	coordinator, err := DiscoverCoordinator(ctx, conn, kind, id)
	if err != nil {
		return nil, err
	}

	return Dial(ctx, coordinator, conf, -1)
}
