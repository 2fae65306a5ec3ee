package keys

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"fmt"

	synacrypto "github.com/nuclearforg/synaTudorMiS/crypto"
)

// ECDSAP256KeyPair implements the KeyPair/Signer/Verifier contract for
// the long-term identity key used in CertificateVerify (C2), adapted
// from the teacher's RSA/RS256 key pair (sign/verify with a fixed hash)
// but over P-256/ECDSA since that is the algorithm the device's
// certificates carry.
type ECDSAP256KeyPair struct {
	privateKey *ecdsa.PrivateKey
	publicKey  *ecdsa.PublicKey
}

// GenerateECDSAP256KeyPair generates a fresh P-256 identity key pair.
// In normal operation the long-term key comes from PairingData, not
// fresh generation; this exists for tests and loopback fixtures.
func GenerateECDSAP256KeyPair() (*ECDSAP256KeyPair, error) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	return &ECDSAP256KeyPair{privateKey: priv, publicKey: &priv.PublicKey}, nil
}

// NewECDSAP256KeyPairFromPrivate wraps a PairingData-supplied private key.
func NewECDSAP256KeyPairFromPrivate(priv *ecdsa.PrivateKey) *ECDSAP256KeyPair {
	return &ECDSAP256KeyPair{privateKey: priv, publicKey: &priv.PublicKey}
}

// ParseECDSAP256PublicKeyFromCertificate extracts the ECDSA P-256 public
// key carried in a DER-encoded X.509 certificate, the peer's long-term
// identity as presented in the handshake's Certificate message.
func ParseECDSAP256PublicKeyFromCertificate(der []byte) (*ecdsa.PublicKey, error) {
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, fmt.Errorf("failed to parse peer certificate: %w", err)
	}
	pub, ok := cert.PublicKey.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("peer certificate does not carry an ECDSA public key (got %T)", cert.PublicKey)
	}
	return pub, nil
}

// PublicKey returns the public key.
func (kp *ECDSAP256KeyPair) PublicKey() crypto.PublicKey { return kp.publicKey }

// PrivateKey returns the private key.
func (kp *ECDSAP256KeyPair) PrivateKey() crypto.PrivateKey { return kp.privateKey }

// Type returns the key type.
func (kp *ECDSAP256KeyPair) Type() synacrypto.KeyType { return synacrypto.KeyTypeECDSAP256 }

// Sign signs a SHA-256 digest of message with ECDSA over P-256,
// producing an ASN.1 DER signature, the encoding CertificateVerify uses
// on the wire.
func (kp *ECDSAP256KeyPair) Sign(message []byte) ([]byte, error) {
	digest := sha256.Sum256(message)
	return ecdsa.SignASN1(rand.Reader, kp.privateKey, digest[:])
}

// Verify verifies an ASN.1 DER ECDSA signature over the SHA-256 digest
// of message against a peer public key.
func Verify(pub *ecdsa.PublicKey, message, signature []byte) error {
	digest := sha256.Sum256(message)
	if !ecdsa.VerifyASN1(pub, digest[:], signature) {
		return synacrypto.ErrInvalidSignature
	}
	return nil
}
