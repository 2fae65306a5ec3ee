package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// GCMTagSize is the AES-GCM authentication tag length in bytes (spec C4).
const GCMTagSize = 16

// ExplicitNonceSize is the length of the per-record explicit nonce
// prefix sent on the wire alongside each AEAD-protected record.
const ExplicitNonceSize = 8

// FixedIVSize is the length of the implicit "salt" derived from the key
// block and concatenated (per RFC 5288) with the explicit nonce to form
// the full 12-byte GCM nonce.
const FixedIVSize = 4

// NewAES256GCM constructs an AEAD over a 32-byte AES-256 key.
func NewAES256GCM(key []byte) (cipher.AEAD, error) {
	if len(key) != 32 {
		return nil, fmt.Errorf("crypto: AES-256-GCM requires a 32-byte key, got %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crypto: failed to construct AES cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("crypto: failed to construct GCM: %w", err)
	}
	return aead, nil
}

// BuildNonce concatenates the 4-byte fixed IV with the 8-byte explicit
// per-record nonce to form the 12-byte nonce GCM requires.
func BuildNonce(fixedIV [FixedIVSize]byte, explicitNonce [ExplicitNonceSize]byte) [FixedIVSize + ExplicitNonceSize]byte {
	var nonce [FixedIVSize + ExplicitNonceSize]byte
	copy(nonce[:FixedIVSize], fixedIV[:])
	copy(nonce[FixedIVSize:], explicitNonce[:])
	return nonce
}
