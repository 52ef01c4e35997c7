package kpro

// ProtocolBody is satisfied by every Kafka request/response payload this
// module knows how to speak: API versions, metadata, find-coordinator and
// the SASL handshake/authenticate pair.
type ProtocolBody interface {
	encoder
	versionedDecoder
	key() int16
	version() int16
}

// requestHeader is the envelope sarama calls request.go: api key, api
// version, correlation id and client id, ahead of the body bytes.
type requestHeader struct {
	apiKey        int16
	apiVersion    int16
	correlationID int32
	clientID      string
}

func (r *requestHeader) encode(pe packetEncoder) error {
	pe.putInt16(r.apiKey)
	pe.putInt16(r.apiVersion)
	pe.putInt32(r.correlationID)
	return pe.putString(r.clientID)
}

// request wraps a ProtocolBody with its header and the frame-length prefix,
// matching the teacher's request.go envelope shape.
type request struct {
	correlationID int32
	clientID      string
	body          ProtocolBody
}

func (r *request) encode(pe packetEncoder) (err error) {
	pe.push(&lengthField{})

	pe.putInt16(r.body.key())
	pe.putInt16(r.body.version())
	pe.putInt32(r.correlationID)

	err = pe.putString(r.clientID)
	if err != nil {
		return err
	}

	err = r.body.encode(pe)
	if err != nil {
		return err
	}

	return pe.pop()
}

// encodeRequest serializes a full wire frame (length prefix + header + body)
// for the given correlation id and client id.
func encodeRequest(clientID string, corrID int32, body ProtocolBody) ([]byte, error) {
	req := &request{correlationID: corrID, clientID: clientID, body: body}
	return encode(req)
}

// decodeCorrelationID reads the leading correlation id off an accumulated
// response frame (the 4-byte length prefix has already been consumed by the
// frame accumulator) so the pending-request table can route the frame
// before the caller's own decoder runs over the rest of it.
func decodeCorrelationID(buf []byte) (int32, []byte, error) {
	if len(buf) < 4 {
		return 0, nil, ErrInsufficientData
	}
	rd := &realDecoder{raw: buf}
	corrID, err := rd.getInt32()
	if err != nil {
		return 0, nil, err
	}
	return corrID, buf[rd.off:], nil
}
