// Package crypto declares the key-pair contract shared by the session
// core's two asymmetric primitives (ephemeral ECDH key agreement and the
// long-term ECDSA signing/verification identity). Unlike the teacher's
// crypto package, this module never stores, exports, imports, or rotates
// keys — PairingData supplies the long-term identity out of band, and
// ephemeral keys live only for the duration of one handshake — so the
// exporter/importer/storage/rotation surface of the teacher's KeyManager
// has no counterpart here.
package crypto

import (
	"crypto"
	"errors"
)

// KeyType identifies which asymmetric algorithm a KeyPair implements.
type KeyType string

const (
	KeyTypeECDHP256   KeyType = "ECDH-P256"
	KeyTypeECDSAP256  KeyType = "ECDSA-P256"
)

// KeyPair is the contract satisfied by both the ephemeral ECDH key pair
// (C2) and the long-term ECDSA identity key pair supplied via PairingData.
type KeyPair interface {
	PublicKey() crypto.PublicKey
	PrivateKey() crypto.PrivateKey
	Type() KeyType
}

// Signer is implemented by KeyPairs capable of producing a signature,
// i.e. the long-term ECDSA identity key, never the ephemeral ECDH key.
// Sign takes the message itself and hashes it internally
// (ECDSAP256KeyPair.Sign applies SHA-256), not a precomputed digest.
type Signer interface {
	KeyPair
	Sign(message []byte) ([]byte, error)
}

// Verifier is implemented by KeyPairs capable of verifying a signature
// against a peer's public key bytes.
type Verifier interface {
	Verify(digest, signature []byte) error
}

var (
	// ErrSignNotSupported reports that a key-agreement-only (ECDH) key
	// cannot sign. ECDHP256KeyPair has no Sign method, and no code in
	// this module currently returns this error.
	ErrSignNotSupported = errors.New("crypto: key agreement keys do not support signing")
	// ErrVerifyNotSupported mirrors ErrSignNotSupported for Verify; it is
	// likewise not returned anywhere in this module.
	ErrVerifyNotSupported = errors.New("crypto: key agreement keys do not support verification")
	// ErrInvalidSignature is returned when Verify rejects a signature.
	ErrInvalidSignature = errors.New("crypto: invalid signature")
)
