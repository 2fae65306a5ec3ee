// Package pairing defines the long-term credential contract a Session
// borrows for the duration of a handshake (spec §3 PairingData, §6
// PairingData provider). Acquiring these credentials — the out-of-band
// device pairing exchange that issues a client certificate and discovers
// the peer's — is explicitly out of scope for the session core (spec §1,
// §9 open questions: the original's host-certificate construction and
// handshake-private-key generation are FIXME-stubbed, so this package
// only models the result of that exchange, not the exchange itself).
package pairing

import (
	"crypto/ecdsa"

	"github.com/nuclearforg/synaTudorMiS/alert"
	"github.com/nuclearforg/synaTudorMiS/crypto/keys"
)

// Data is the long-term, device-bound credential set a Session reads but
// never mutates (spec §3: "a borrowed reference to long-term keys and
// certificates"). Its lifetime must exceed the Session's (spec §5).
//
// CertificateSize is not a core-wide constant: this dialect's peer
// expects a device-specific fixed certificate length that the pairing
// exchange itself determines, so the Certificate message's outer/inner
// length fields (quirk Q2) are derived from len(ClientCertRaw) rather
// than hard-coded here.
type Data struct {
	// ClientCertRaw is this device's own certificate, exactly as it must
	// appear on the wire in the Certificate message body.
	ClientCertRaw []byte
	// ClientPrivateKey signs CertificateVerify (spec §4.7 step 3): the
	// client's own long-term ECDSA P-256 key, not the peer's.
	ClientPrivateKey *keys.ECDSAP256KeyPair
	// RemoteCertRaw is the peer's certificate as received during pairing,
	// kept for diagnostics/logging; the session core only ever consumes
	// RemotePublicKey for the ECDH premaster computation.
	RemoteCertRaw []byte
	// RemotePublicKey is the peer's long-term P-256 public key, used as
	// the static half of the ECDH(ephemeral, static) premaster secret
	// (spec §4.7 step 4). The session core performs no certificate-chain
	// validation of its own — see DESIGN.md's Open Questions entry.
	RemotePublicKey *ecdsa.PublicKey
}

// Validate checks that Data is complete enough to drive a handshake,
// returning a CryptoFailure error describing the first missing field.
// It does not validate certificate signatures or chains — that trust
// decision belongs to whatever out-of-band component produced Data.
func (d *Data) Validate() error {
	if len(d.ClientCertRaw) == 0 {
		return alert.CryptoFailuref("pairing: ClientCertRaw is empty")
	}
	if d.ClientPrivateKey == nil {
		return alert.CryptoFailuref("pairing: ClientPrivateKey is nil")
	}
	if d.RemotePublicKey == nil {
		return alert.CryptoFailuref("pairing: RemotePublicKey is nil")
	}
	return nil
}

// ParseRemoteCertificate extracts the peer's ECDSA P-256 public key from
// a raw X.509 certificate, for callers that only have RemoteCertRaw and
// need to populate RemotePublicKey. The session core never calls this
// itself — it trusts whatever RemotePublicKey is already set by the time
// Data reaches it (see DESIGN.md's Open Questions entry on peer key
// trust); this is offered as a convenience for pairing-exchange callers
// whose peer "certificate" is in fact a standard X.509 DER blob.
func ParseRemoteCertificate(der []byte) (*ecdsa.PublicKey, error) {
	return keys.ParseECDSAP256PublicKeyFromCertificate(der)
}
