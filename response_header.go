package kpro

import "math"

// responseHeader is the 8-byte prefix (frame length, correlation id) every
// broker response carries ahead of its body.
type responseHeader struct {
	length        int32
	correlationID int32
}

func (r *responseHeader) decode(pd packetDecoder) (err error) {
	r.length, err = pd.getInt32()
	if err != nil {
		return err
	}
	if r.length <= 4 || r.length > 2*math.MaxUint16 {
		return ErrProtocolError
	}

	r.correlationID, err = pd.getInt32()
	return err
}
