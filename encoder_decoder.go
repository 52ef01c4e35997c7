package kpro

// encoder is the interface that wraps the basic Encode method.
// Anything implementing Encoder can be turned into bytes using an Encoder.
type encoder interface {
	encode(pe packetEncoder) error
}

// encode takes an encoder and turns it into bytes, doing a size-only pass
// first so the real pass can allocate an exact-sized buffer.
func encode(e encoder) ([]byte, error) {
	if e == nil {
		return nil, nil
	}

	var prepEnc prepEncoder
	var realEnc realEncoder

	err := e.encode(&prepEnc)
	if err != nil {
		return nil, err
	}

	if prepEnc.length < 0 || prepEnc.length > int(MaxResponseSize) {
		return nil, newMessageSizeTooLargeConfigurationError(int(MaxResponseSize), prepEnc.length)
	}

	realEnc.raw = make([]byte, prepEnc.length)
	err = e.encode(&realEnc)
	if err != nil {
		return nil, err
	}

	return realEnc.raw, nil
}

// decoder is the interface that wraps the basic Decode method.
// Anything implementing Decoder can be extracted from bytes using a Decoder.
type decoder interface {
	decode(pd packetDecoder) error
}

// versionedDecoder is the interface that wraps the basic Decode method that takes
// a version number which is to be decoded.
type versionedDecoder interface {
	decode(pd packetDecoder, version int16) error
}

func decode(buf []byte, in decoder) error {
	if buf == nil {
		return nil
	}

	helper := realDecoder{raw: buf}
	err := in.decode(&helper)
	if err != nil {
		return err
	}

	if helper.off != len(buf) {
		return ErrInsufficientData
	}

	return nil
}

func versionedDecode(buf []byte, in versionedDecoder, version int16) error {
	if buf == nil {
		return nil
	}

	helper := realDecoder{raw: buf}
	err := in.decode(&helper, version)
	if err != nil {
		return err
	}

	if helper.off != len(buf) {
		return ErrInsufficientData
	}

	return nil
}
