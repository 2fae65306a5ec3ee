package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestECDHP256SharedSecretAgrees(t *testing.T) {
	a, err := GenerateECDHP256KeyPair()
	require.NoError(t, err)
	b, err := GenerateECDHP256KeyPair()
	require.NoError(t, err)

	secretA, err := a.DeriveSharedSecret(b.PublicKeyBytes())
	require.NoError(t, err)
	secretB, err := b.DeriveSharedSecret(a.PublicKeyBytes())
	require.NoError(t, err)

	require.Equal(t, secretA, secretB)
	require.Len(t, secretA, 32)
}

func TestECDHP256RejectsInvalidPeerKey(t *testing.T) {
	a, err := GenerateECDHP256KeyPair()
	require.NoError(t, err)

	_, err = a.DeriveSharedSecret([]byte{0x01, 0x02, 0x03})
	require.Error(t, err)
}

func TestECDSAP256SignVerifyRoundTrip(t *testing.T) {
	kp, err := GenerateECDSAP256KeyPair()
	require.NoError(t, err)

	transcript := []byte("handshake transcript hash")
	sig, err := kp.Sign(transcript)
	require.NoError(t, err)

	err = Verify(kp.publicKey, transcript, sig)
	require.NoError(t, err)
}

func TestECDSAP256VerifyRejectsTamperedTranscript(t *testing.T) {
	kp, err := GenerateECDSAP256KeyPair()
	require.NoError(t, err)

	sig, err := kp.Sign([]byte("original"))
	require.NoError(t, err)

	err = Verify(kp.publicKey, []byte("tampered"), sig)
	require.Error(t, err)
}
