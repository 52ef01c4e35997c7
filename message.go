package kpro

// Request is one unit of work submitted to a broker connection. Ref is
// opaque to the connection actor; it is handed back unchanged on the
// matching Response so callers can correlate replies without a second map
// of their own. NewResponse constructs the empty ProtocolBody the reply
// bytes get decoded into, at the same version Body was encoded at.
type Request struct {
	Ref         any
	Body        ProtocolBody
	NewResponse func() ProtocolBody

	// NoAck marks a request the broker will not reply to (there is none in
	// this module's API surface today, but the actor honours it uniformly
	// with the teacher's send path rather than special-casing it away).
	NoAck bool
}

// Response pairs a completed request's Ref with its decoded body, or an
// error if the request failed before a body could be decoded.
type Response struct {
	Ref  any
	Body ProtocolBody
	Err  error
}
