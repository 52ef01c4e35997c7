package kpro

import (
	"encoding/binary"
)

// realDecoder reads Kafka's wire encoding out of a fixed byte slice.
type realDecoder struct {
	raw   []byte
	off   int
	stack []pushDecoder
}

// primitives

func (rd *realDecoder) getInt8() (int8, error) {
	if rd.remaining() < 1 {
		return 0, ErrInsufficientData
	}
	tmp := int8(rd.raw[rd.off])
	rd.off++
	return tmp, nil
}

func (rd *realDecoder) getInt16() (int16, error) {
	if rd.remaining() < 2 {
		return 0, ErrInsufficientData
	}
	tmp := int16(binary.BigEndian.Uint16(rd.raw[rd.off:]))
	rd.off += 2
	return tmp, nil
}

func (rd *realDecoder) getInt32() (int32, error) {
	if rd.remaining() < 4 {
		return 0, ErrInsufficientData
	}
	tmp := int32(binary.BigEndian.Uint32(rd.raw[rd.off:]))
	rd.off += 4
	return tmp, nil
}

func (rd *realDecoder) getInt64() (int64, error) {
	if rd.remaining() < 8 {
		return 0, ErrInsufficientData
	}
	tmp := int64(binary.BigEndian.Uint64(rd.raw[rd.off:]))
	rd.off += 8
	return tmp, nil
}

func (rd *realDecoder) getArrayLength() (int, error) {
	if rd.remaining() < 4 {
		return -1, ErrInsufficientData
	}
	tmp := int32(binary.BigEndian.Uint32(rd.raw[rd.off:]))
	rd.off += 4
	if tmp == -1 {
		return -1, nil
	}
	if tmp < -1 {
		return -1, errInvalidNegativeLength
	}
	if tmp > int32(rd.remaining()) {
		return -1, ErrInsufficientData
	}
	if tmp > MaxResponseSize {
		return -1, errInvalidArrayLength
	}
	return int(tmp), nil
}

// collections

func (rd *realDecoder) getBytes() ([]byte, error) {
	tmp, err := rd.getInt32()
	if err != nil {
		return nil, err
	}
	if tmp == -1 {
		return nil, nil
	}
	return rd.getRawBytes(int(tmp))
}

func (rd *realDecoder) getRawBytes(length int) ([]byte, error) {
	if length < 0 {
		return nil, errInvalidNegativeLength
	} else if length > rd.remaining() {
		return nil, ErrInsufficientData
	}
	start := rd.off
	rd.off += length
	return rd.raw[start:rd.off], nil
}

func (rd *realDecoder) getString() (string, error) {
	tmp, err := rd.getInt16()
	if err != nil {
		return "", err
	}
	n := int(tmp)
	switch {
	case n < -1:
		return "", errInvalidNegativeLength
	case n == -1:
		return "", nil
	case n > rd.remaining():
		return "", ErrInsufficientData
	default:
		start := rd.off
		rd.off += n
		return string(rd.raw[start:rd.off]), nil
	}
}

func (rd *realDecoder) getNullableString() (*string, error) {
	tmp, err := rd.getInt16()
	if err != nil {
		return nil, err
	}
	n := int(tmp)
	if n == -1 {
		return nil, nil
	}
	if n < -1 {
		return nil, errInvalidNegativeLength
	}
	if n > rd.remaining() {
		return nil, ErrInsufficientData
	}
	start := rd.off
	rd.off += n
	s := string(rd.raw[start:rd.off])
	return &s, nil
}

func (rd *realDecoder) getStringArray() ([]string, error) {
	n, err := rd.getArrayLength()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	if n < 0 {
		return nil, errInvalidArrayLength
	}
	ret := make([]string, n)
	for i := range ret {
		if ret[i], err = rd.getString(); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func (rd *realDecoder) getInt32Array() ([]int32, error) {
	n, err := rd.getArrayLength()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	if n < 0 {
		return nil, errInvalidArrayLength
	}
	if rd.remaining() < 4*n {
		return nil, ErrInsufficientData
	}
	ret := make([]int32, n)
	for i := range ret {
		ret[i] = int32(binary.BigEndian.Uint32(rd.raw[rd.off:]))
		rd.off += 4
	}
	return ret, nil
}

func (rd *realDecoder) getInt64Array() ([]int64, error) {
	n, err := rd.getArrayLength()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil
	}
	if n < 0 {
		return nil, errInvalidArrayLength
	}
	if rd.remaining() < 8*n {
		return nil, ErrInsufficientData
	}
	ret := make([]int64, n)
	for i := range ret {
		ret[i] = int64(binary.BigEndian.Uint64(rd.raw[rd.off:]))
		rd.off += 8
	}
	return ret, nil
}

func (rd *realDecoder) remaining() int {
	return len(rd.raw) - rd.off
}

func (rd *realDecoder) getSubset(length int) (packetDecoder, error) {
	buf, err := rd.getRawBytes(length)
	if err != nil {
		return nil, err
	}
	return &realDecoder{raw: buf}, nil
}

// stacks

func (rd *realDecoder) push(pd pushDecoder) error {
	pd.saveOffset(rd.off)

	reserve := pd.reserveLength()
	if rd.remaining() < reserve {
		return ErrInsufficientData
	}

	rd.stack = append(rd.stack, pd)
	rd.off += reserve
	return nil
}

func (rd *realDecoder) pop() error {
	pd := rd.stack[len(rd.stack)-1]
	rd.stack = rd.stack[:len(rd.stack)-1]
	return pd.check(rd.off, rd.raw)
}
