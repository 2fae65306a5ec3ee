// Package transcript accumulates the raw handshake-message bytes used to
// compute the Finished message's verify_data. It mirrors the original's
// handshake_buffer: every handshake message (type + length + body) is
// appended as it is sent or received, except Finished itself, which is
// excluded from the running buffer (quirk: Finished's own verify_data
// cannot depend on Finished's own bytes). The digest taken over this
// buffer is always SHA-256, independent of the cipher suite's PRF hash
// (quirk Q6, see prf package doc).
package transcript

import "crypto/sha256"

// Transcript is an append-only log of handshake message bytes.
type Transcript struct {
	buf []byte
}

// New returns an empty Transcript.
func New() *Transcript { return &Transcript{} }

// Append adds the wire bytes of one handshake message (type+length+body)
// to the running transcript. Callers must not call this for Finished
// messages.
func (t *Transcript) Append(messageBytes []byte) {
	t.buf = append(t.buf, messageBytes...)
}

// Sum returns the SHA-256 digest of everything appended so far, without
// resetting or otherwise mutating the transcript (non-destructive,
// unlike the original's reset-and-rebuild implementation, since Go gives
// us no reason to destroy the buffer just to read it).
func (t *Transcript) Sum() []byte {
	sum := sha256.Sum256(t.buf)
	return sum[:]
}

// Len returns the number of bytes accumulated so far.
func (t *Transcript) Len() int { return len(t.buf) }

// Bytes returns the raw accumulated message bytes, for callers that need
// to hash the transcript themselves (CertificateVerify signs the raw
// transcript with its own internal SHA-256, not this package's Sum — see
// ECDSAP256KeyPair.Sign). The returned slice aliases the transcript's
// internal buffer; callers must not retain or mutate it.
func (t *Transcript) Bytes() []byte { return t.buf }
