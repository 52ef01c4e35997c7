package kpro

// packetDecoder is an interface providing helpers for reading with Kafka's encoding rules.
// Types implementing Decoder only need to worry about calling methods like GetString,
// not about how a string is represented in Kafka.
type packetDecoder interface {
	// Primitives
	getInt8() (int8, error)
	getInt16() (int16, error)
	getInt32() (int32, error)
	getInt64() (int64, error)
	getArrayLength() (int, error)

	// Collections
	getBytes() ([]byte, error)
	getRawBytes(length int) ([]byte, error)
	getString() (string, error)
	getNullableString() (*string, error)
	getStringArray() ([]string, error)
	getInt32Array() ([]int32, error)
	getInt64Array() ([]int64, error)

	// Subsets
	remaining() int
	getSubset(length int) (packetDecoder, error)

	// Stacks, see PushDecoder
	push(pd pushDecoder) error
	pop() error
}

// pushDecoder is the interface for decoders that need to check in the header of the message
// for the length of a byte sequence, such as the frame length field and CRC fields. A
// pushDecoder is registered with the PacketDecoder via the push() method, and later checked
// via pop() once the body of the message has been read.
type pushDecoder interface {
	// saveOffset is given the location of the start of the saved region. It should store
	// this information for use in check.
	saveOffset(in int)

	// reserveLength returns the number of bytes (typically 4) to reserve for the length field.
	reserveLength() int

	// check gets called at the end of decoding. It should verify that the data read out
	// of the body was as expected, and trigger a decoding error if not.
	check(curOffset int, buf []byte) error
}
