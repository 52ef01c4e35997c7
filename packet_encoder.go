package kpro

// packetEncoder is an interface providing helpers for writing with Kafka's encoding rules.
// Types implementing Encoder only need to worry about calling methods like PutString,
// not about how a string is represented in Kafka.
type packetEncoder interface {
	// Primitives
	putInt8(in int8)
	putInt16(in int16)
	putInt32(in int32)
	putInt64(in int64)
	putArrayLength(in int) error

	// Collections
	putBytes(in []byte) error
	putRawBytes(in []byte) error
	putString(in string) error
	putNullableString(in *string) error
	putStringArray(in []string) error
	putInt32Array(in []int32) error
	putInt64Array(in []int64) error

	// Stacks, see PushEncoder
	push(pe pushEncoder)
	pop() error

	offset() int
}

// pushEncoder is the interface for encoders that need to inject their length into the
// header of the message, such as the frame length field and CRC fields. A pushEncoder
// is registered with the PacketEncoder via the push() method, and later retrieved via
// pop() once the body of the message has been written.
type pushEncoder interface {
	// saveOffset is given the location of the start of the saved region. It should store
	// this information for use in run.
	saveOffset(in int)

	// reserveLength returns the number of bytes (typically 4) to reserve for the length field.
	reserveLength() int

	// run provides the length of the buffer after writing, so the pushEncoder can
	// write the length value into the buffer after the body's been written.
	run(curOffset int, buf []byte) error
}
