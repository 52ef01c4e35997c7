package kpro

import (
	"bytes"
	"testing"
)

// testEncodable and testVersionDecodable mirror the teacher's own helpers of
// the same name, adapted to this package's single-argument encode/decode.

func testEncodable(t *testing.T, name string, in encoder, expect []byte) {
	t.Helper()
	packet, err := encode(in)
	if err != nil {
		t.Error(err)
	} else if !bytes.Equal(packet, expect) {
		t.Error("Encoding", name, "failed\ngot ", packet, "\nwant", expect)
	}
}

func testVersionDecodable(t *testing.T, name string, out versionedDecoder, in []byte, version int16) {
	t.Helper()
	if err := versionedDecode(in, out, version); err != nil {
		t.Error("Decoding", name, "version", version, "failed:", err)
	}
}
