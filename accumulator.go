package kpro

import "encoding/binary"

type accumulatorState int

const (
	gatheringHeader accumulatorState = iota
	gatheringBody
)

// frameAccumulator reassembles complete, length-prefixed Kafka frames out of
// an arbitrary stream of reads. It never blocks: Feed can be called with
// whatever a socket read happened to return and will emit zero or more
// complete frames plus retain any partial tail for the next call.
//
// Incoming bytes are copied once as they are buffered (the caller may reuse
// its read buffer), appended in arrival order and only concatenated at flush
// time, so Feed never shifts already-buffered bytes.
type frameAccumulator struct {
	state accumulatorState

	header    [4]byte
	headerLen int

	expected int
	have     int
	chunks   [][]byte
}

// Feed appends data to the accumulator and returns every frame (response
// body, header already stripped) that became complete as a result.
func (a *frameAccumulator) Feed(data []byte) ([][]byte, error) {
	var frames [][]byte

	for len(data) > 0 {
		switch a.state {
		case gatheringHeader:
			n := copy(a.header[a.headerLen:], data)
			a.headerLen += n
			data = data[n:]

			if a.headerLen < 4 {
				continue
			}

			size := int32(binary.BigEndian.Uint32(a.header[:]))
			if size <= 0 || size > MaxResponseSize {
				return frames, ErrProtocolError
			}

			a.expected = int(size)
			a.have = 0
			a.chunks = a.chunks[:0]
			a.headerLen = 0
			a.state = gatheringBody

		case gatheringBody:
			need := a.expected - a.have
			if need > len(data) {
				a.chunks = append(a.chunks, append([]byte(nil), data...))
				a.have += len(data)
				data = nil
				continue
			}

			a.chunks = append(a.chunks, append([]byte(nil), data[:need]...))
			a.have += need
			data = data[need:]

			frames = append(frames, a.flush())
			a.state = gatheringHeader
		}
	}

	return frames, nil
}

func (a *frameAccumulator) flush() []byte {
	if len(a.chunks) == 1 {
		buf := a.chunks[0]
		a.chunks = nil
		return buf
	}

	buf := make([]byte, 0, a.expected)
	for _, c := range a.chunks {
		buf = append(buf, c...)
	}
	a.chunks = nil
	return buf
}
