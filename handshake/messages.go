package handshake

import (
	"github.com/nuclearforg/synaTudorMiS/alert"
	"github.com/nuclearforg/synaTudorMiS/codec"
)

// MsgType identifies a handshake message inside a Handshake-typed record
// fragment (TLS 1.2 §7.4, SSL3_MT_* in the original).
type MsgType uint8

const (
	MsgClientHello        MsgType = 1
	MsgServerHello        MsgType = 2
	MsgCertificate        MsgType = 11
	MsgCertificateRequest MsgType = 13
	MsgServerHelloDone    MsgType = 14
	MsgCertificateVerify  MsgType = 15
	MsgClientKeyExchange  MsgType = 16
	MsgFinished           MsgType = 20
)

// CertTypeECDSASign is the only CertificateRequest certificate_type this
// dialect's server is permitted to ask for (spec §3 cert_request_type,
// §4.7 CertificateRequest parsing).
const CertTypeECDSASign uint8 = 64

// SessionIDSize is the fixed length of the zeroed session_id this client
// always sends (spec §4.7 ClientHello emission, §6 wire-visible constants).
const SessionIDSize = 7

// Extension payloads this dialect hard-codes (spec §6 wire-visible
// constants): supported_groups advertising only secp256r1, and
// ec_point_formats advertising only the uncompressed form.
const (
	extSupportedGroups  uint16 = 0x000A
	extECPointFormats   uint16 = 0x000B
	curveSecp256r1      uint16 = 0x0017
	ecPointUncompressed uint8  = 0x00
)

// EncodeMessageHeader appends the 4-byte handshake message header
// (msg_type, length u24 BE) followed by body to w. This is the framing
// that gets coalesced into one Handshake-typed record fragment (spec
// §4.9) — distinct from the outer TLS record header (record.Record),
// which wraps the whole coalesced fragment once, not each message.
func EncodeMessageHeader(w *codec.Writer, msgType MsgType, body []byte) {
	w.PutUint8(uint8(msgType))
	w.PutUint24BE(uint32(len(body)))
	w.PutBytes(body)
}

// DecodeMessage parses one handshake message (header + body) from r,
// returning its type and a copy of its body. Callers loop this over a
// Handshake-typed record fragment until Remaining() == 0, since a single
// record may coalesce more than one handshake message (spec §4.9).
func DecodeMessage(r *codec.Reader) (MsgType, []byte, error) {
	msgType, err := r.GetUint8()
	if err != nil {
		return 0, nil, alert.DecodeErrorf("handshake: truncated message header: %v", err)
	}
	length, err := r.GetUint24BE()
	if err != nil {
		return 0, nil, alert.DecodeErrorf("handshake: truncated message length: %v", err)
	}
	body, err := r.DupBytes(int(length))
	if err != nil {
		return 0, nil, alert.DecodeErrorf("handshake: truncated message body, want %d bytes: %v", length, err)
	}
	return MsgType(msgType), body, nil
}

// BuildClientHello constructs the ClientHello body (spec §4.7): version,
// client_random, a 7-byte zeroed session_id, the single offered cipher
// suite, the collapsed one-byte compression_methods field (quirk Q1: no
// standard length+list, just a single zero byte), and the two hard-coded
// extensions with no overall wrapping length (quirk Q1).
func BuildClientHello(version uint16, clientRandom [32]byte, cipherSuite uint16) []byte {
	w := codec.NewWriter(0)
	w.PutUint16BE(version)
	w.PutBytes(clientRandom[:])
	w.PutUint8(SessionIDSize)
	w.Fill(0, SessionIDSize)
	w.PutUint16BE(2) // cipher_suites_len
	w.PutUint16BE(cipherSuite)
	w.PutUint8(0) // collapsed compression_methods (quirk Q1)

	w.PutUint16BE(extSupportedGroups)
	w.PutUint16BE(4) // extension_data length
	w.PutUint16BE(2) // NamedCurveList length
	w.PutUint16BE(curveSecp256r1)

	w.PutUint16BE(extECPointFormats)
	w.PutUint16BE(2) // extension_data length
	w.PutUint8(1)    // ECPointFormatList length
	w.PutUint8(ecPointUncompressed)

	return w.Detach()
}

// ServerHello is the parsed content of a ServerHello message.
type ServerHello struct {
	Version           uint16
	Random            [32]byte
	SessionID         []byte
	CipherSuite       uint16
	CompressionMethod uint8
}

// ParseServerHello parses a ServerHello body (spec §4.7). Any extension
// bytes following compression_method are consumed implicitly by virtue
// of body's own length bound and are otherwise ignored, matching the
// original (which never parses ServerHello extensions).
func ParseServerHello(body []byte) (ServerHello, error) {
	r := codec.NewReader(body)
	var sh ServerHello

	version, err := r.GetUint16BE()
	if err != nil {
		return sh, alert.DecodeErrorf("handshake: ServerHello: %v", err)
	}
	random, err := r.GetBytes(32)
	if err != nil {
		return sh, alert.DecodeErrorf("handshake: ServerHello: %v", err)
	}
	sessionIDLen, err := r.GetUint8()
	if err != nil {
		return sh, alert.DecodeErrorf("handshake: ServerHello: %v", err)
	}
	sessionID, err := r.DupBytes(int(sessionIDLen))
	if err != nil {
		return sh, alert.DecodeErrorf("handshake: ServerHello: %v", err)
	}
	cipherSuite, err := r.GetUint16BE()
	if err != nil {
		return sh, alert.DecodeErrorf("handshake: ServerHello: %v", err)
	}
	compression, err := r.GetUint8()
	if err != nil {
		return sh, alert.DecodeErrorf("handshake: ServerHello: %v", err)
	}

	sh.Version = version
	copy(sh.Random[:], random)
	sh.SessionID = sessionID
	sh.CipherSuite = cipherSuite
	sh.CompressionMethod = compression
	return sh, nil
}

// ParseCertificateRequest parses a CertificateRequest body (spec §4.7):
// a single certificate type, preceded by a certs_num byte that must be
// 1, followed by 2 trailing bytes that are read and discarded (quirk
// Q3).
func ParseCertificateRequest(body []byte) (certType uint8, err error) {
	r := codec.NewReader(body)

	certsNum, err := r.GetUint8()
	if err != nil {
		return 0, alert.DecodeErrorf("handshake: CertificateRequest: %v", err)
	}
	if certsNum != 1 {
		return 0, alert.ProtocolMismatchf("handshake: CertificateRequest: certs_num %d, want 1", certsNum)
	}
	certType, err = r.GetUint8()
	if err != nil {
		return 0, alert.DecodeErrorf("handshake: CertificateRequest: %v", err)
	}
	if err := r.Skip(2); err != nil { // quirk Q3: trailing garbage bytes
		return 0, alert.DecodeErrorf("handshake: CertificateRequest: %v", err)
	}
	return certType, nil
}

// BuildCertificate constructs the Certificate message body (spec §4.7
// step 1): outer length (u24 BE) = len(clientCertRaw), inner length
// (u24 BE) = len(clientCertRaw), 2 padding bytes (quirk Q2), then the
// raw certificate bytes. This dialect has no device-wide fixed
// CERTIFICATE_SIZE constant in this core; the length is whatever
// PairingData's ClientCertRaw actually is.
func BuildCertificate(clientCertRaw []byte) []byte {
	w := codec.NewWriter(0)
	w.PutUint24BE(uint32(len(clientCertRaw)))
	w.PutUint24BE(uint32(len(clientCertRaw)))
	w.Fill(0, 2) // quirk Q2: garbage padding
	w.PutBytes(clientCertRaw)
	return w.Detach()
}

// BuildClientKeyExchange returns the ClientKeyExchange body: the raw
// SEC1-uncompressed ephemeral P-256 public key, with no length prefix
// (spec §4.7 step 2 — the peer expects the fixed-width P-256 encoding).
func BuildClientKeyExchange(ephemeralPublicKey []byte) []byte {
	out := make([]byte, len(ephemeralPublicKey))
	copy(out, ephemeralPublicKey)
	return out
}

// BuildCertificateVerify returns the CertificateVerify body: the raw
// ECDSA signature bytes with no SignatureAndHashAlgorithm prefix (quirk
// Q4, spec §4.7 step 3).
func BuildCertificateVerify(signature []byte) []byte {
	out := make([]byte, len(signature))
	copy(out, signature)
	return out
}

// ChangeCipherSpecBody is the single-byte ChangeCipherSpec record
// fragment (spec §4.7 step 5); it is not a handshake message and carries
// no msg_type/length header.
func ChangeCipherSpecBody() []byte { return []byte{0x01} }

// ParseChangeCipherSpecBody validates an inbound ChangeCipherSpec
// fragment.
func ParseChangeCipherSpecBody(body []byte) error {
	if len(body) != 1 || body[0] != 0x01 {
		return alert.DecodeErrorf("handshake: malformed ChangeCipherSpec body %x", body)
	}
	return nil
}

// VerifyDataSize is the wire length of a Finished message's verify_data.
const VerifyDataSize = 12

// BuildFinishedBody returns a Finished message body carrying verifyData
// verbatim (spec §4.7 step 6).
func BuildFinishedBody(verifyData []byte) []byte {
	out := make([]byte, len(verifyData))
	copy(out, verifyData)
	return out
}

// ParseFinishedBody validates and extracts the verify_data from a
// received Finished message body.
func ParseFinishedBody(body []byte) ([]byte, error) {
	if len(body) != VerifyDataSize {
		return nil, alert.DecodeErrorf("handshake: Finished body length %d, want %d", len(body), VerifyDataSize)
	}
	out := make([]byte, VerifyDataSize)
	copy(out, body)
	return out, nil
}

// ParseAlert parses an Alert record fragment's 2-byte level/description.
func ParseAlert(body []byte) (level, description uint8, err error) {
	if len(body) != 2 {
		return 0, 0, alert.DecodeErrorf("handshake: alert body length %d, want 2", len(body))
	}
	return body[0], body[1], nil
}
