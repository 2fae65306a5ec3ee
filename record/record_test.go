package record

import (
	"testing"

	"github.com/nuclearforg/synaTudorMiS/codec"
	"github.com/stretchr/testify/require"
)

func TestRecordEncodeDecodeRoundTrip(t *testing.T) {
	r := Record{Type: ContentHandshake, Version: ProtocolVersion, Fragment: []byte{1, 2, 3, 4}}

	w := codec.NewWriter(0)
	r.Encode(w)

	reader := codec.NewReader(w.Bytes())
	got, err := Decode(reader, ProtocolVersion)
	require.NoError(t, err)
	require.Equal(t, r.Type, got.Type)
	require.Equal(t, r.Version, got.Version)
	require.Equal(t, r.Fragment, got.Fragment)
}

func TestRecordEncodeWritesVersionLittleEndian(t *testing.T) {
	// Quirk Q7: the outbound wire header writes version little-endian.
	// 0x0303 is byte-symmetric, so pick a synthetic non-symmetric version
	// to make the LE write observable in the raw bytes.
	r := Record{Type: ContentHandshake, Version: 0xAABB, Fragment: nil}
	w := codec.NewWriter(0)
	r.Encode(w)

	raw := w.Bytes()
	require.Equal(t, byte(0xBB), raw[1]) // low byte first: little-endian
	require.Equal(t, byte(0xAA), raw[2])
}

func TestDecodeRejectsVersionMismatch(t *testing.T) {
	r := Record{Type: ContentHandshake, Version: ProtocolVersion, Fragment: []byte{1}}
	w := codec.NewWriter(0)
	r.Encode(w)

	reader := codec.NewReader(w.Bytes())
	_, err := Decode(reader, 0x0304)
	require.Error(t, err)
}

func TestDecodeRejectsTruncatedFragment(t *testing.T) {
	w := codec.NewWriter(0)
	w.PutUint8(uint8(ContentHandshake))
	w.PutUint16LE(ProtocolVersion)
	w.PutUint16BE(10) // claims 10 bytes but none follow

	reader := codec.NewReader(w.Bytes())
	_, err := Decode(reader, ProtocolVersion)
	require.Error(t, err)
}
