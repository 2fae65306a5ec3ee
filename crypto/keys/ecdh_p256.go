// Package keys holds the two concrete KeyPair implementations the session
// core needs: an ephemeral ECDH P-256 key pair (this file) and the
// long-term ECDSA P-256 identity key pair (ecdsa_p256.go). Both are
// adapted from the teacher's crypto/keys/x25519.go and rs256.go, narrowed
// to the single curve the device dialect uses (NIST P-256, not X25519)
// and stripped of the exporter/HPKE/Ed25519-bridge helpers that package
// also carries, since this core never imports or exports key material in
// those formats.
package keys

import (
	"crypto"
	"crypto/ecdh"
	"crypto/rand"
	"fmt"

	synacrypto "github.com/nuclearforg/synaTudorMiS/crypto"
)

// ECDHP256KeyPair holds an ephemeral P-256 ECDH key pair, used once per
// handshake for the client key exchange (C2).
type ECDHP256KeyPair struct {
	privateKey *ecdh.PrivateKey
	publicKey  *ecdh.PublicKey
}

// GenerateECDHP256KeyPair generates a fresh ephemeral P-256 key pair.
func GenerateECDHP256KeyPair() (*ECDHP256KeyPair, error) {
	priv, err := ecdh.P256().GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ephemeral ECDH key: %w", err)
	}
	return &ECDHP256KeyPair{privateKey: priv, publicKey: priv.PublicKey()}, nil
}

// PublicKey returns the public key.
func (kp *ECDHP256KeyPair) PublicKey() crypto.PublicKey { return kp.publicKey }

// PrivateKey returns the private key.
func (kp *ECDHP256KeyPair) PrivateKey() crypto.PrivateKey { return kp.privateKey }

// Type returns the key type.
func (kp *ECDHP256KeyPair) Type() synacrypto.KeyType { return synacrypto.KeyTypeECDHP256 }

// PublicKeyBytes returns the uncompressed SEC1 public key point, the form
// placed on the wire in ClientKeyExchange.
func (kp *ECDHP256KeyPair) PublicKeyBytes() []byte { return kp.publicKey.Bytes() }

// Zero releases the key material once the handshake no longer needs it
// (spec §9 scoped resource release). crypto/ecdh.PrivateKey does not
// expose its scalar for in-place zeroing, so this does not overwrite the
// scalar; it drops the references for the GC to reclaim. The session
// calls Zero at the end of its client response burst and does not retain
// the KeyPair afterwards.
func (kp *ECDHP256KeyPair) Zero() {
	kp.privateKey = nil
	kp.publicKey = nil
}

// DeriveSharedSecret computes the raw ECDH shared secret (the X
// coordinate of the shared point) with a peer's uncompressed public key
// bytes. Unlike the teacher's X25519 helper, the TLS 1.2 PRF pre-master
// secret for this cipher suite is the raw shared X coordinate, not a
// hash of it — hashing happens later in the PRF's HMAC construction
// (spec §4.3), not here.
func (kp *ECDHP256KeyPair) DeriveSharedSecret(peerPubBytes []byte) ([]byte, error) {
	peerPub, err := ecdh.P256().NewPublicKey(peerPubBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse peer ECDH public key: %w", err)
	}
	shared, err := kp.privateKey.ECDH(peerPub)
	if err != nil {
		return nil, fmt.Errorf("failed to compute ECDH shared secret: %w", err)
	}
	return shared, nil
}
