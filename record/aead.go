package record

import (
	"crypto/rand"
	"crypto/subtle"

	"github.com/nuclearforg/synaTudorMiS/alert"
	"github.com/nuclearforg/synaTudorMiS/codec"
	synacrypto "github.com/nuclearforg/synaTudorMiS/crypto"
	"github.com/nuclearforg/synaTudorMiS/internal/metrics"
)

// Protector performs the C5 AEAD protection step: sealing a plaintext
// fragment into a ciphertext record fragment on write, and the reverse
// on read, for one DirectionState at a time. When the direction's suite
// is CipherNullNull the "protection" is the identity — the fragment
// passes through unchanged, matching the original's NULL_NULL branch in
// tls_session_encrypt/tls_session_decrypt.
type Protector struct{}

// Seal produces the ciphertext fragment for an outbound record of the
// given content type and plaintext, advancing dir's sequence number.
// version is the record's wire version field (always ProtocolVersion in
// this dialect, passed through explicitly for AAD construction symmetry
// with Open).
func (Protector) Seal(dir *DirectionState, typ ContentType, version uint16, plaintext []byte) ([]byte, error) {
	if dir.Suite == CipherNullNull {
		out := make([]byte, len(plaintext))
		copy(out, plaintext)
		return out, nil
	}

	var explicitNonce [synacrypto.ExplicitNonceSize]byte
	if _, err := rand.Read(explicitNonce[:]); err != nil {
		return nil, alert.CryptoFailuref("record: failed to draw explicit nonce: %v", err)
	}
	nonce := synacrypto.BuildNonce(dir.Keys.FixedIV, explicitNonce)

	aead, err := synacrypto.NewAES256GCM(dir.Keys.Key[:])
	if err != nil {
		return nil, alert.CryptoFailuref("record: %v", err)
	}

	aad := buildAAD(dir.SeqNum, typ, version, len(plaintext))
	sealed := aead.Seal(nil, nonce[:], plaintext, aad)

	out := codec.NewWriter(synacrypto.ExplicitNonceSize + len(sealed))
	out.PutBytes(explicitNonce[:])
	out.PutBytes(sealed)

	dir.SeqNum++
	metrics.RecordsSealed.Inc()
	return out.Detach(), nil
}

// Open reverses Seal: given the ciphertext fragment (explicit_nonce ||
// cipher || tag) of an inbound record, returns the plaintext, advancing
// dir's sequence number. A tag mismatch is a fatal bad_record_mac
// (spec §4.5).
func (Protector) Open(dir *DirectionState, typ ContentType, version uint16, ciphertext []byte) ([]byte, error) {
	if dir.Suite == CipherNullNull {
		out := make([]byte, len(ciphertext))
		copy(out, ciphertext)
		return out, nil
	}

	const overhead = synacrypto.ExplicitNonceSize + synacrypto.GCMTagSize
	if len(ciphertext) < overhead {
		return nil, alert.DecodeErrorf("record: AEAD fragment too short: %d bytes", len(ciphertext))
	}

	r := codec.NewReader(ciphertext)
	var explicitNonce [synacrypto.ExplicitNonceSize]byte
	raw, err := r.GetBytes(synacrypto.ExplicitNonceSize)
	if err != nil {
		return nil, alert.DecodeErrorf("record: %v", err)
	}
	copy(explicitNonce[:], raw)
	sealed := r.Rest()

	nonce := synacrypto.BuildNonce(dir.Keys.FixedIV, explicitNonce)

	aead, err := synacrypto.NewAES256GCM(dir.Keys.Key[:])
	if err != nil {
		return nil, alert.CryptoFailuref("record: %v", err)
	}

	plaintextLen := len(sealed) - synacrypto.GCMTagSize
	aad := buildAAD(dir.SeqNum, typ, version, plaintextLen)

	plaintext, err := aead.Open(nil, nonce[:], sealed, aad)
	if err != nil {
		metrics.AEADFailures.Inc()
		return nil, alert.DecryptErrorf("record: AEAD authentication failed: %v", err)
	}

	dir.SeqNum++
	metrics.RecordsOpened.Inc()
	return plaintext, nil
}

// buildAAD constructs seq_num(u64 BE) || type(u8) || version(u16 BE) ||
// plaintext_len(u16 BE), the additional authenticated data for both
// directions (spec §4.5 step 3). Unlike the outer record header's
// little-endian version quirk (Q7), the AAD's version field is
// big-endian, matching the original's tls_session_encrypt/decrypt AAD
// construction exactly.
func buildAAD(seqNum uint64, typ ContentType, version uint16, plaintextLen int) []byte {
	w := codec.NewWriter(13)
	w.PutUint64BE(seqNum)
	w.PutUint8(uint8(typ))
	w.PutUint16BE(version)
	w.PutUint16BE(uint16(plaintextLen))
	return w.Detach()
}

// ConstantTimeEqual compares two byte slices without leaking timing
// information about where they first differ, used for verify_data
// comparison (spec §9 open question on constant-time compare).
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}
