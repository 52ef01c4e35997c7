package kpro

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/rcrowley/go-metrics"
)

// rawFrame is a complete response body (length prefix already stripped by
// the frame accumulator) handed from the read goroutine to the actor loop.
type rawFrame struct {
	buf []byte
	err error
}

type sendRequest struct {
	req    *Request
	result chan *Response
}

// Broker is a single-consumer connection actor over one TCP (optionally
// TLS) socket: every write is serialized through run(), every response is
// demultiplexed back to its caller by correlation id, and a liveness
// ticker fails the connection if the oldest in-flight request has waited
// longer than Config.Net.RequestTimeout.
type Broker struct {
	conn net.Conn
	conf *Config
	addr string
	id   int32

	apiVersions apiVersionMap

	sendCh     chan *sendRequest
	responses  chan rawFrame
	closing    chan struct{}
	closed     chan struct{}
	closeOnce  sync.Once
	closeErr   error

	incomingByteRate metrics.Meter
	outgoingByteRate metrics.Meter
	requestRate      metrics.Meter
	requestSize      metrics.Histogram
	responseRate     metrics.Meter
	responseSize     metrics.Histogram
	requestLatency   metrics.Histogram
}

// Dial connects to addr, performs the TLS/SASL handshake and API version
// negotiation Config asks for, and starts the connection actor. id is the
// broker id to report via ID(); pass -1 when it is not yet known (e.g. a
// bootstrap connection made before Metadata has been fetched).
func Dial(ctx context.Context, addr Endpoint, conf *Config, id int32) (*Broker, error) {
	if conf == nil {
		conf = NewConfig()
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}

	actorCtx := ctx
	if conf.Net.NoLink {
		actorCtx = context.Background()
	}

	conn, err := dialTransport(ctx, addr.String(), conf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", addr, diagnoseErr(handshakeInit, conf, err))
	}

	b := &Broker{
		conn:      conn,
		conf:      conf,
		addr:      addr.String(),
		id:        id,
		sendCh:    make(chan *sendRequest),
		responses: make(chan rawFrame, efficientBufferSize),
		closing:   make(chan struct{}),
		closed:    make(chan struct{}),
	}
	b.registerMetrics()

	state := handshakeTCPConnected
	if conf.Net.TLS.Enable {
		state = handshakeTLSUpgraded
	}

	if conf.Net.SASL.Enable && conf.Net.SASL.Handshake {
		if err := b.doSASLHandshake(ctx); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("%s: %s", addr, diagnose(state, conf.Net.TLS.Enable, true, err))
		}
		state = handshakeSASLAuthed
	}

	go withRecover(b.readLoop)
	go withRecover(func() { b.run(actorCtx) })

	versions, err := negotiate(b)
	if err != nil {
		_ = b.Close()
		return nil, fmt.Errorf("%s: %s", addr, diagnose(state, conf.Net.TLS.Enable, conf.Net.SASL.Enable, err))
	}
	b.apiVersions = versions

	if conf.Debug.Enable {
		b.debugf("connected to %s (broker id %d)", addr, id)
	}

	return b, nil
}

func diagnoseErr(state handshakeState, conf *Config, err error) error {
	var tlsErr *failedToUpgradeToTLSError
	if errors.As(err, &tlsErr) {
		state = handshakeTCPConnected
	}
	return errors.New(diagnose(state, conf.Net.TLS.Enable, conf.Net.SASL.Enable, err))
}

func (b *Broker) registerMetrics() {
	r := b.conf.MetricRegistry
	if r == nil {
		return
	}
	b.incomingByteRate = metrics.GetOrRegisterMeter("incoming-byte-rate", r)
	b.outgoingByteRate = metrics.GetOrRegisterMeter("outgoing-byte-rate", r)
	b.requestRate = metrics.GetOrRegisterMeter("request-rate", r)
	b.requestSize = getOrRegisterHistogram("request-size", r)
	b.responseRate = metrics.GetOrRegisterMeter("response-rate", r)
	b.responseSize = getOrRegisterHistogram("response-size", r)
	b.requestLatency = getOrRegisterHistogram("request-latency-in-ms", r)

	if b.id >= 0 {
		b.incomingByteRate = getOrRegisterBrokerMeter("incoming-byte-rate", b.id, r)
		b.outgoingByteRate = getOrRegisterBrokerMeter("outgoing-byte-rate", b.id, r)
		b.requestRate = getOrRegisterBrokerMeter("request-rate", b.id, r)
		b.requestSize = getOrRegisterBrokerHistogram("request-size", b.id, r)
		b.responseRate = getOrRegisterBrokerMeter("response-rate", b.id, r)
		b.responseSize = getOrRegisterBrokerHistogram("response-size", b.id, r)
		b.requestLatency = getOrRegisterBrokerHistogram("request-latency-in-ms", b.id, r)
	}
}

func (b *Broker) debugf(format string, args ...any) {
	w := b.conf.Debug.Writer
	if w == nil {
		w = io.Discard
	}
	fmt.Fprintf(w, "kpro: "+format+"\n", args...)
}

func (b *Broker) debugSpew(label string, v any) {
	if !b.conf.Debug.Enable {
		return
	}
	b.debugf("%s: %s", label, spew.Sdump(v))
}

// ID returns the broker id Dial was given, or -1 if it was not known.
func (b *Broker) ID() int32 {
	return b.id
}

// Addr returns the host:port this connection was dialed to.
func (b *Broker) Addr() string {
	return b.addr
}

// readLoop pumps bytes off the socket through a frameAccumulator and
// forwards each completed frame to the actor loop. It exits (and closes
// b.responses) when the socket errors or is closed.
func (b *Broker) readLoop() {
	defer close(b.responses)

	var acc frameAccumulator
	buf := make([]byte, 32*1024)

	for {
		n, err := b.conn.Read(buf)
		if n > 0 {
			if b.incomingByteRate != nil {
				b.incomingByteRate.Mark(int64(n))
			}
			frames, ferr := acc.Feed(buf[:n])
			for _, f := range frames {
				select {
				case b.responses <- rawFrame{buf: f}:
				case <-b.closing:
					return
				}
			}
			if ferr != nil {
				select {
				case b.responses <- rawFrame{err: ferr}:
				case <-b.closing:
				}
				return
			}
		}
		if err != nil {
			select {
			case b.responses <- rawFrame{err: err}:
			case <-b.closing:
			}
			return
		}
	}
}

// run is the single-consumer actor loop: it is the only goroutine that
// ever writes to the socket or touches the pending-request table.
func (b *Broker) run(ctx context.Context) {
	pending := newPendingRequests()
	defer close(b.closed)
	defer b.wakeEveryoneWithErr(pending, ErrClosedConnection)
	defer func() {
		select {
		case <-b.closing:
			b.closeErr = ErrClosedConnection
		default:
		}
	}()

	tickEvery := b.conf.Net.RequestTimeout / 2
	if tickEvery <= 0 || tickEvery > time.Minute {
		tickEvery = time.Minute
	}
	var liveness timer
	if b.conf.Net.RequestTimeout <= 0 {
		liveness = &fakeTimer{}
	} else {
		liveness = &realTimer{t: time.NewTimer(tickEvery), d: tickEvery}
	}

	for {
		sendCh := b.sendCh
		if pending.len() >= b.conf.Net.MaxOpenRequests {
			sendCh = nil
		}

		select {
		case <-b.closing:
			return

		case <-ctx.Done():
			b.closeErr = ctx.Err()
			return

		case sr := <-sendCh:
			if err := b.handleSend(pending, sr); err != nil {
				b.closeErr = err
				return
			}

		case frame, ok := <-b.responses:
			if !ok {
				b.closeErr = ErrTransportClosed
				return
			}
			if frame.err != nil {
				b.closeErr = frame.err
				return
			}
			b.handleFrame(pending, frame.buf)

		case <-liveness.C():
			if age, ok := pending.oldestAge(time.Now()); ok && age > b.conf.Net.RequestTimeout {
				b.closeErr = ErrRequestTimeout
				return
			}
			liveness.Reset()
		}
	}
}

func (b *Broker) handleSend(pending *pendingRequests, sr *sendRequest) error {
	corrID, err := pending.allocate()
	if err != nil {
		sr.result <- &Response{Ref: sr.req.Ref, Err: err}
		return err
	}

	raw, err := encodeRequest(b.conf.ClientID, corrID, sr.req.Body)
	if err != nil {
		sr.result <- &Response{Ref: sr.req.Ref, Err: err}
		return nil
	}

	b.debugSpew("sending request", sr.req.Body)

	if _, err := b.conn.Write(raw); err != nil {
		return err
	}

	if b.outgoingByteRate != nil {
		b.outgoingByteRate.Mark(int64(len(raw)))
	}
	if b.requestRate != nil {
		b.requestRate.Mark(1)
	}
	if b.requestSize != nil {
		b.requestSize.Update(int64(len(raw)))
	}

	if sr.req.NoAck {
		sr.result <- &Response{Ref: sr.req.Ref}
		return nil
	}

	pending.add(corrID, sr.req.Ref, sr.req.Body.version(), sr.req.NewResponse, sr.result, time.Now())
	return nil
}

func (b *Broker) handleFrame(pending *pendingRequests, buf []byte) {
	corrID, body, err := decodeCorrelationID(buf)
	if err != nil {
		return
	}

	entry, ok := pending.take(corrID)
	if !ok {
		return
	}

	if b.responseRate != nil {
		b.responseRate.Mark(1)
	}
	if b.responseSize != nil {
		b.responseSize.Update(int64(len(buf)))
	}

	resp := &Response{Ref: entry.ref}
	respBody := entry.newResponse()
	if err := versionedDecode(body, respBody, entry.version); err != nil {
		resp.Err = err
	} else {
		resp.Body = respBody
		b.debugSpew("received response", respBody)
	}
	entry.waiter <- resp
}

func (b *Broker) wakeEveryoneWithErr(pending *pendingRequests, err error) {
	for _, entry := range pending.drainEntries() {
		entry.waiter <- &Response{Ref: entry.ref, Err: err}
	}
}

// send submits req for transmission and returns the raw response channel;
// it does not wait for a reply. Most callers want SendSync.
func (b *Broker) send(ctx context.Context, req *Request) (chan *Response, error) {
	result := make(chan *Response, 1)
	select {
	case b.sendCh <- &sendRequest{req: req, result: result}:
		return result, nil
	case <-b.closed:
		return nil, b.closeErr
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// SendSync sends req and blocks for its matching response, decoding the
// reply bytes via req.NewResponse at the version req.Body was encoded at.
func (b *Broker) SendSync(ctx context.Context, req *Request) (*Response, error) {
	ch, err := b.send(ctx, req)
	if err != nil {
		return nil, err
	}

	select {
	case resp := <-ch:
		if resp.Err != nil {
			return nil, resp.Err
		}
		return resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-b.closed:
		return nil, b.closeErr
	}
}

// Close stops the connection actor and closes the underlying socket. It is
// safe to call more than once.
func (b *Broker) Close() error {
	b.closeOnce.Do(func() {
		close(b.closing)
		_ = b.conn.Close()
		<-b.closed
	})
	return nil
}

// APIVersions returns the version map negotiated at Dial time.
func (b *Broker) APIVersions() apiVersionMap {
	return b.apiVersions
}

// APIVersionRange reports the negotiated [min, max] version window for
// apiKey, or false if the peer never advertised support for it.
func (b *Broker) APIVersionRange(apiKey int16) (apiVersionRange, bool) {
	r, ok := b.apiVersions[apiKey]
	return r, ok
}
