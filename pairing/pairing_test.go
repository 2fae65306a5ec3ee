package pairing

import (
	"crypto/ecdsa"
	"testing"

	"github.com/nuclearforg/synaTudorMiS/crypto/keys"
	"github.com/stretchr/testify/require"
)

func validData(t *testing.T) Data {
	t.Helper()
	kp, err := keys.GenerateECDSAP256KeyPair()
	require.NoError(t, err)
	peer, err := keys.GenerateECDSAP256KeyPair()
	require.NoError(t, err)

	return Data{
		ClientCertRaw:    []byte{0x01, 0x02, 0x03},
		ClientPrivateKey: kp,
		RemoteCertRaw:    []byte{0x04, 0x05},
		RemotePublicKey:  peer.PublicKey().(*ecdsa.PublicKey),
	}
}

func TestValidateAcceptsCompleteData(t *testing.T) {
	data := validData(t)
	require.NoError(t, data.Validate())
}

func TestValidateRejectsEmptyClientCert(t *testing.T) {
	data := validData(t)
	data.ClientCertRaw = nil
	require.Error(t, data.Validate())
}

func TestValidateRejectsMissingPrivateKey(t *testing.T) {
	data := validData(t)
	data.ClientPrivateKey = nil
	require.Error(t, data.Validate())
}

func TestValidateRejectsMissingRemotePublicKey(t *testing.T) {
	data := validData(t)
	data.RemotePublicKey = nil
	require.Error(t, data.Validate())
}
