// Package record implements the TLS record layer (spec C4): the
// {type, version, length, fragment} framing that every handshake, alert,
// change_cipher_spec, and application_data message travels in. This
// dialect never fragments, so one record always carries exactly one
// logical unit — adapted from original_source/tls_session.c's
// tls_session_receive_ciphertext/tls_session_send, which make the same
// assumption.
package record

import (
	"github.com/nuclearforg/synaTudorMiS/alert"
	"github.com/nuclearforg/synaTudorMiS/codec"
)

// ContentType identifies the record payload's kind (TLS 1.2 §6.2.1).
type ContentType uint8

const (
	ContentChangeCipherSpec ContentType = 20
	ContentAlert            ContentType = 21
	ContentHandshake        ContentType = 22
	ContentApplicationData  ContentType = 23
)

// ProtocolVersion is the single wire-visible version this dialect speaks.
const ProtocolVersion uint16 = 0x0303

// MaxFragmentSize bounds a single record's fragment, matching TLS 1.2's
// 2^14-byte plaintext limit plus the AEAD expansion headroom; this
// dialect never needs fragmentation so records are simply rejected past
// this size rather than split.
const MaxFragmentSize = 1<<14 + 2048

// Record is one on-the-wire TLS record.
type Record struct {
	Type    ContentType
	Version uint16
	Fragment []byte
}

// Encode appends this record's 5-byte header and fragment to w. The
// version field is written little-endian here (quirk Q7): the peer
// firmware's sole outbound-record serialization path writes it this way,
// and since ProtocolVersion (0x0303) is byte-symmetric this is invisible
// on the wire but must be preserved structurally for any reader auditing
// against a capture.
func (r Record) Encode(w *codec.Writer) {
	w.PutUint8(uint8(r.Type))
	w.PutUint16LE(r.Version)
	w.PutUint16BE(uint16(len(r.Fragment)))
	w.PutBytes(r.Fragment)
}

// Decode parses one record's header and fragment from r, validating the
// protocol version against expectedVersion (a mismatch is a fatal
// protocol_version alert, spec C4). The version field is read
// big-endian, matching the peer's inbound parsing path — asymmetric with
// Encode's little-endian write, but identical in effect since
// ProtocolVersion is byte-symmetric (quirk Q7).
func Decode(r *codec.Reader, expectedVersion uint16) (Record, error) {
	typ, err := r.GetUint8()
	if err != nil {
		return Record{}, alert.DecodeErrorf("record: truncated header reading type: %v", err)
	}
	version, err := r.GetUint16BE()
	if err != nil {
		return Record{}, alert.DecodeErrorf("record: truncated header reading version: %v", err)
	}
	length, err := r.GetUint16BE()
	if err != nil {
		return Record{}, alert.DecodeErrorf("record: truncated header reading length: %v", err)
	}
	if int(length) > MaxFragmentSize {
		return Record{}, alert.DecodeErrorf("record: fragment length %d exceeds maximum %d", length, MaxFragmentSize)
	}
	fragment, err := r.DupBytes(int(length))
	if err != nil {
		return Record{}, alert.DecodeErrorf("record: truncated fragment, want %d bytes: %v", length, err)
	}
	if version != expectedVersion {
		return Record{}, alert.ProtocolMismatchf("record: version 0x%04x, want 0x%04x", version, expectedVersion)
	}
	return Record{Type: ContentType(typ), Version: version, Fragment: fragment}, nil
}
