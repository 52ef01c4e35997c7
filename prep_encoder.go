package kpro

import "math"

// prepEncoder is the size-counting pass: it never writes bytes, only tracks
// how big the final buffer needs to be so realEncoder can allocate once.
type prepEncoder struct {
	length int
}

func (pe *prepEncoder) putInt8(in int8) {
	pe.length++
}

func (pe *prepEncoder) putInt16(in int16) {
	pe.length += 2
}

func (pe *prepEncoder) putInt32(in int32) {
	pe.length += 4
}

func (pe *prepEncoder) putInt64(in int64) {
	pe.length += 8
}

func (pe *prepEncoder) putArrayLength(in int) error {
	if in > math.MaxInt32 {
		return ErrEncodingTooLong
	}
	pe.length += 4
	return nil
}

func (pe *prepEncoder) putRawBytes(in []byte) error {
	pe.length += len(in)
	return nil
}

func (pe *prepEncoder) putBytes(in []byte) error {
	pe.length += 4
	if in == nil {
		return nil
	}
	return pe.putRawBytes(in)
}

func (pe *prepEncoder) putString(in string) error {
	if len(in) > math.MaxInt16 {
		return ErrEncodingTooLong
	}
	pe.length += 2 + len(in)
	return nil
}

func (pe *prepEncoder) putNullableString(in *string) error {
	if in == nil {
		pe.length += 2
		return nil
	}
	return pe.putString(*in)
}

func (pe *prepEncoder) putStringArray(in []string) error {
	if err := pe.putArrayLength(len(in)); err != nil {
		return err
	}
	for _, val := range in {
		if err := pe.putString(val); err != nil {
			return err
		}
	}
	return nil
}

func (pe *prepEncoder) putInt32Array(in []int32) error {
	if err := pe.putArrayLength(len(in)); err != nil {
		return err
	}
	pe.length += 4 * len(in)
	return nil
}

func (pe *prepEncoder) putInt64Array(in []int64) error {
	if err := pe.putArrayLength(len(in)); err != nil {
		return err
	}
	pe.length += 8 * len(in)
	return nil
}

func (pe *prepEncoder) offset() int {
	return pe.length
}

func (pe *prepEncoder) push(in pushEncoder) {
	in.saveOffset(pe.length)
	pe.length += in.reserveLength()
}

func (pe *prepEncoder) pop() error {
	return nil
}
