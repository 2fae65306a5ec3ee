package prf

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPHash384DeterministicAndLengthExact(t *testing.T) {
	secret := []byte("test secret")
	seed := []byte("test seed")

	out := PHash384(secret, seed, 100)
	require.Len(t, out, 100)

	again := PHash384(secret, seed, 100)
	require.Equal(t, out, again)
}

func TestPHash384DiffersOnInputChange(t *testing.T) {
	a := PHash384([]byte("secret-a"), []byte("seed"), 32)
	b := PHash384([]byte("secret-b"), []byte("seed"), 32)
	require.NotEqual(t, a, b)
}

func TestMasterSecretIs48Bytes(t *testing.T) {
	premaster := make([]byte, 32)
	clientRandom := make([]byte, 32)
	serverRandom := make([]byte, 32)
	ms := MasterSecret(premaster, clientRandom, serverRandom)
	require.Len(t, ms, 48)
}

func TestKeyBlockUsesSameRandomOrderAsMasterSecret(t *testing.T) {
	// This dialect's peer reuses one client_random||server_random buffer
	// for both PRF calls, so KeyBlock must diverge from a seed order that
	// reverses it, and swapping the randoms must change the output.
	clientRandom := []byte("CCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCC")
	serverRandom := []byte("SSSSSSSSSSSSSSSSSSSSSSSSSSSSSSSS")
	masterSecret := make([]byte, 48)

	kb := KeyBlock(masterSecret, clientRandom, serverRandom, 72)
	require.Len(t, kb, 72)

	seed := append(append([]byte{}, clientRandom...), serverRandom...)
	want := PHash384(masterSecret, append([]byte("key expansion"), seed...), 72)
	require.Equal(t, want, kb)

	swapped := KeyBlock(masterSecret, serverRandom, clientRandom, 72)
	require.NotEqual(t, kb, swapped)
}

func TestVerifyDataIs12Bytes(t *testing.T) {
	masterSecret := make([]byte, 48)
	digest := make([]byte, 32)
	vd := VerifyData(masterSecret, "client finished", digest)
	require.Len(t, vd, VerifyDataSize)

	serverVd := VerifyData(masterSecret, "server finished", digest)
	require.NotEqual(t, vd, serverVd)
}

// These expected values are known-answer vectors: independently computed
// with Python's hmac/hashlib (not this package, and not Go) implementing
// the same RFC 5246 §5 P_hash(HMAC-SHA384, secret, seed) construction —
// A(1) = HMAC(secret, seed), A(i) = HMAC(secret, A(i-1)), output chunks
// HMAC(secret, A(i)||seed) — over fixed inputs, guarding against the test
// suite only ever checking PHash384 against itself.
func TestPHash384MatchesIndependentVector(t *testing.T) {
	secret := []byte("test secret")
	seed := []byte("test seed")

	want, err := hex.DecodeString("60ffc5e15fb355334ca9c7d21f91aacdb000b9320e9393ed3988803b6e0569bb")
	require.NoError(t, err)

	got := PHash384(secret, seed, 32)
	require.Equal(t, want, got)
}

func TestMasterSecretKeyBlockAndVerifyDataMatchIndependentVector(t *testing.T) {
	premaster := make([]byte, 32)
	for i := range premaster {
		premaster[i] = byte(i)
	}
	clientRandom := make([]byte, 32)
	for i := range clientRandom {
		clientRandom[i] = 0xAA
	}
	serverRandom := make([]byte, 32)
	for i := range serverRandom {
		serverRandom[i] = 0xBB
	}

	wantMasterSecret, err := hex.DecodeString("7b52d1824a081e983bdeca6000fb9611451f2418a090b54c4e752b429d3f1fd4e92d25858d89ad5f809b5d21d9b8a4c5")
	require.NoError(t, err)
	masterSecret := MasterSecret(premaster, clientRandom, serverRandom)
	require.Equal(t, wantMasterSecret, masterSecret)

	wantKeyBlock, err := hex.DecodeString("143164578bcb6690f03051969ec5e36e40e38fd7c440b959f2a7500725667dd3a8557401853d3183bc69cc0ce9d0aed29e0fda4421ce778bc766deb389646c6a26990ce784a044d5")
	require.NoError(t, err)
	keyBlock := KeyBlock(masterSecret, clientRandom, serverRandom, 72)
	require.Equal(t, wantKeyBlock, keyBlock)

	digest, err := hex.DecodeString("485bce9419837a5959e4696fe374c5977551c8bd5bd44eb5b26cc6554c91969f")
	require.NoError(t, err)
	wantVerifyData, err := hex.DecodeString("416453e42860aedd78cf06cd")
	require.NoError(t, err)
	verifyData := VerifyData(masterSecret, "client finished", digest)
	require.Equal(t, wantVerifyData, verifyData)
}
