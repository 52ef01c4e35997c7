package kpro

// APIKeySASLAuth is the API key for the SaslAuthenticate Kafka API.
const APIKeySASLAuth int16 = 36

// SaslAuthenticateRequest carries one leg of a SASL exchange (a SCRAM
// challenge/response, or the PLAIN credential blob) as an opaque byte
// string; the mechanism-specific framing lives entirely inside
// SaslAuthBytes, never in this request's own fields.
type SaslAuthenticateRequest struct {
	Version       int16
	SaslAuthBytes []byte
}

func (r *SaslAuthenticateRequest) encode(pe packetEncoder) error {
	return pe.putBytes(r.SaslAuthBytes)
}

func (r *SaslAuthenticateRequest) decode(pd packetDecoder, version int16) (err error) {
	r.Version = version
	r.SaslAuthBytes, err = pd.getBytes()
	return err
}

func (r *SaslAuthenticateRequest) key() int16 {
	return APIKeySASLAuth
}

func (r *SaslAuthenticateRequest) version() int16 {
	return r.Version
}
