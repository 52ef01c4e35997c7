package kpro

import (
	"encoding/binary"
	"errors"
	"io"
	"net"
	"strconv"
	"testing"
	"time"
)

// mockBroker is a mock Kafka broker: a TCP server on a kernel-selected
// localhost port that accepts a single connection and, for each queued
// expectation, reads one request and writes back the matching encoded
// response, with the length prefix and correlation id filled in
// automatically from the request it just read.
type mockBroker struct {
	brokerID     int32
	port         int32
	stopper      chan bool
	expectations chan encoder
	listener     net.Listener
	t            *testing.T
	latency      time.Duration
}

func (b *mockBroker) SetLatency(latency time.Duration) {
	b.latency = latency
}

func (b *mockBroker) BrokerID() int32 {
	return b.brokerID
}

func (b *mockBroker) Endpoint() Endpoint {
	return Endpoint{Host: "127.0.0.1", Port: uint16(b.port)}
}

func (b *mockBroker) Close() {
	if len(b.expectations) > 0 {
		b.t.Errorf("mockbroker/%d: %d queued expectations were never consumed", b.brokerID, len(b.expectations))
	}
	close(b.expectations)
	<-b.stopper
}

func (b *mockBroker) serverLoop() {
	defer close(b.stopper)

	conn, err := b.listener.Accept()
	if err != nil {
		b.serverError(err, nil)
		return
	}

	lenBuf := make([]byte, 4)
	resHeader := make([]byte, 8)
	for expectation := range b.expectations {
		if _, err := io.ReadFull(conn, lenBuf); err != nil {
			b.serverError(err, conn)
			return
		}
		body := make([]byte, binary.BigEndian.Uint32(lenBuf))
		if len(body) < 8 {
			b.serverError(errors.New("request shorter than the fixed envelope"), conn)
			return
		}
		if _, err := io.ReadFull(conn, body); err != nil {
			b.serverError(err, conn)
			return
		}

		if b.latency > 0 {
			time.Sleep(b.latency)
		}

		response, err := encode(expectation)
		if err != nil {
			b.t.Error(err)
			return
		}
		if len(response) == 0 {
			continue
		}

		binary.BigEndian.PutUint32(resHeader, uint32(len(response)+4))
		copy(resHeader[4:], body[4:8]) // correlation id sits right after apiKey+apiVersion
		if _, err := conn.Write(resHeader); err != nil {
			b.serverError(err, conn)
			return
		}
		if _, err := conn.Write(response); err != nil {
			b.serverError(err, conn)
			return
		}
	}

	_ = conn.Close()
	_ = b.listener.Close()
}

func (b *mockBroker) serverError(err error, conn net.Conn) {
	b.t.Error(err)
	if conn != nil {
		_ = conn.Close()
	}
	_ = b.listener.Close()
}

func newMockBroker(t *testing.T, brokerID int32) *mockBroker {
	t.Helper()

	broker := &mockBroker{
		stopper:      make(chan bool),
		t:            t,
		brokerID:     brokerID,
		expectations: make(chan encoder, 16),
	}

	var err error
	broker.listener, err = net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	Logger.Printf("mockbroker/%d listening on %s", brokerID, broker.listener.Addr())

	_, portStr, err := net.SplitHostPort(broker.listener.Addr().String())
	if err != nil {
		t.Fatal(err)
	}
	port, err := strconv.ParseInt(portStr, 10, 32)
	if err != nil {
		t.Fatal(err)
	}
	broker.port = int32(port)

	go withRecover(broker.serverLoop)

	return broker
}

func (b *mockBroker) Returns(e encoder) {
	b.expectations <- e
}
