// Package prf implements the TLS 1.2 pseudorandom function (RFC 5246 §5):
// P_hash built from repeated HMAC applications, and the PRF that feeds a
// label/seed pair through P_hash to produce an arbitrary-length output.
// This core always keys P_hash with HMAC-SHA384 (the suite's PRF hash),
// except for the Finished message transcript digest itself, which is
// taken with SHA-256 — a deliberate mismatch the peer firmware expects
// (quirk Q6), not a bug in this package.
//
// No ecosystem TLS-PRF library exists in the corpus (the pack's TLS-like
// code is all full crypto/tls-compatible stacks or unrelated protocols),
// so this is a direct, narrow implementation of the ~20-line RFC
// algorithm over the standard library's crypto/hmac — the corpus gives
// no library to wire here, per DESIGN.md's stdlib-justification rule.
package prf

import (
	"crypto/hmac"
	"crypto/sha512"
	"hash"
)

// PHash384 implements P_hash(secret, seed) keyed with HMAC-SHA384,
// producing exactly outLen bytes (RFC 5246 §5).
func PHash384(secret, seed []byte, outLen int) []byte {
	return pHash(func() hash.Hash { return sha512.New384() }, secret, seed, outLen)
}

func pHash(newHash func() hash.Hash, secret, seed []byte, outLen int) []byte {
	out := make([]byte, 0, outLen)

	a := hmacSum(newHash, secret, seed) // A(1) = HMAC_hash(secret, seed)
	for len(out) < outLen {
		out = append(out, hmacSum(newHash, secret, append(append([]byte{}, a...), seed...))...)
		a = hmacSum(newHash, secret, a) // A(i) = HMAC_hash(secret, A(i-1))
	}
	return out[:outLen]
}

func hmacSum(newHash func() hash.Hash, key, data []byte) []byte {
	mac := hmac.New(newHash, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// MasterSecret derives the 48-byte master_secret from the ECDH premaster
// secret and the client/server random concatenation, per RFC 5246 §8.1:
// PRF(pre_master_secret, "master secret", client_random + server_random).
func MasterSecret(premaster, clientRandom, serverRandom []byte) []byte {
	seed := append(append([]byte{}, clientRandom...), serverRandom...)
	return PHash384(premaster, append([]byte("master secret"), seed...), 48)
}

// KeyBlock derives keyBlockLen bytes of key material from master_secret.
// The peer firmware builds a single client_random||server_random buffer
// once and reuses it unmodified for both the master_secret and key_block
// PRF calls, rather than reversing the order for key_block as RFC 5246
// §6.3 specifies — this dialect matches that device behavior so the
// derived keys agree with the peer, not the RFC text.
func KeyBlock(masterSecret, clientRandom, serverRandom []byte, keyBlockLen int) []byte {
	seed := append(append([]byte{}, clientRandom...), serverRandom...)
	return PHash384(masterSecret, append([]byte("key expansion"), seed...), keyBlockLen)
}

// VerifyDataSize is the length of a Finished message's verify_data field.
const VerifyDataSize = 12

// VerifyData derives a Finished message's verify_data from master_secret
// and a transcript digest (SHA-256 of the handshake so far, per quirk
// Q6 — not the suite's SHA-384). label must be "client finished" or
// "server finished".
func VerifyData(masterSecret []byte, label string, transcriptDigest []byte) []byte {
	return PHash384(masterSecret, append([]byte(label), transcriptDigest...), VerifyDataSize)
}
