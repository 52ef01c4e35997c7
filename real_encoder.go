package kpro

import (
	"encoding/binary"
	"math"
)

// realEncoder is the encode pass: raw is pre-sized by a prior prepEncoder
// pass and this pass writes the actual bytes into it.
type realEncoder struct {
	raw   []byte
	off   int
	stack []pushEncoder
}

// primitives

func (re *realEncoder) putInt8(in int8) {
	re.raw[re.off] = byte(in)
	re.off++
}

func (re *realEncoder) putInt16(in int16) {
	binary.BigEndian.PutUint16(re.raw[re.off:], uint16(in))
	re.off += 2
}

func (re *realEncoder) putInt32(in int32) {
	binary.BigEndian.PutUint32(re.raw[re.off:], uint32(in))
	re.off += 4
}

func (re *realEncoder) putInt64(in int64) {
	binary.BigEndian.PutUint64(re.raw[re.off:], uint64(in))
	re.off += 8
}

func (re *realEncoder) putArrayLength(in int) error {
	if in > math.MaxInt32 {
		return ErrEncodingTooLong
	}
	re.putInt32(int32(in))
	return nil
}

// collection

func (re *realEncoder) putRawBytes(in []byte) error {
	copy(re.raw[re.off:], in)
	re.off += len(in)
	return nil
}

func (re *realEncoder) putBytes(in []byte) error {
	if in == nil {
		re.putInt32(-1)
		return nil
	}
	re.putInt32(int32(len(in)))
	return re.putRawBytes(in)
}

func (re *realEncoder) putString(in string) error {
	if len(in) > math.MaxInt16 {
		return ErrEncodingTooLong
	}
	re.putInt16(int16(len(in)))
	copy(re.raw[re.off:], in)
	re.off += len(in)
	return nil
}

func (re *realEncoder) putNullableString(in *string) error {
	if in == nil {
		re.putInt16(-1)
		return nil
	}
	return re.putString(*in)
}

func (re *realEncoder) putStringArray(in []string) error {
	if err := re.putArrayLength(len(in)); err != nil {
		return err
	}
	for _, val := range in {
		if err := re.putString(val); err != nil {
			return err
		}
	}
	return nil
}

func (re *realEncoder) putInt32Array(in []int32) error {
	if err := re.putArrayLength(len(in)); err != nil {
		return err
	}
	for _, val := range in {
		re.putInt32(val)
	}
	return nil
}

func (re *realEncoder) putInt64Array(in []int64) error {
	if err := re.putArrayLength(len(in)); err != nil {
		return err
	}
	for _, val := range in {
		re.putInt64(val)
	}
	return nil
}

func (re *realEncoder) offset() int {
	return re.off
}

// stacks

func (re *realEncoder) push(pe pushEncoder) {
	pe.saveOffset(re.off)
	re.off += pe.reserveLength()
	re.stack = append(re.stack, pe)
}

func (re *realEncoder) pop() error {
	pe := re.stack[len(re.stack)-1]
	re.stack = re.stack[:len(re.stack)-1]
	return pe.run(re.off, re.raw)
}
