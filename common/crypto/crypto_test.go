package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	prt "github.com/lokichain/loki-node/protocol"
)

func TestHasherKnownVectors(t *testing.T) {
	sha := SHA256Hasher{}.Hash([]byte("abc"))
	require.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", hex.EncodeToString(sha[:]))

	keccak := Keccak256Hasher{}.Hash(nil)
	require.Equal(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", hex.EncodeToString(keccak[:]))
}

func TestHasherVerify(t *testing.T) {
	for _, name := range []string{HasherSHA256, HasherKeccak256} {
		h, err := NewHasher(name)
		require.NoError(t, err)

		data := []byte("payload")
		hash := h.Hash(data)
		require.True(t, h.Verify(data, hash))
		require.False(t, h.Verify([]byte("payload2"), hash))
	}

	_, err := NewHasher("md5")
	require.Error(t, err)
}

func TestEd25519SignVerify(t *testing.T) {
	sk, vk, err := GenerateKeyPair()
	require.NoError(t, err)

	signer := Ed25519Signer{}
	data := []byte("hello")
	sig := signer.Sign(data, sk)

	require.True(t, signer.Verify(data, sig, vk))
	require.False(t, signer.Verify([]byte("hellO"), sig, vk))

	_, otherVK, err := GenerateKeyPair()
	require.NoError(t, err)
	require.False(t, signer.Verify(data, sig, otherVK))

	sig[0] ^= 0xff
	require.False(t, signer.Verify(data, sig, vk))
}

func TestKeyFromSeedDeterministic(t *testing.T) {
	seed := bytes.Repeat([]byte{0x42}, 64)
	sk1, vk1, err := KeyFromSeed(seed)
	require.NoError(t, err)
	sk2, vk2, err := KeyFromSeed(seed)
	require.NoError(t, err)

	require.Equal(t, sk1, sk2)
	require.Equal(t, vk1, vk2)
	require.Equal(t, vk1, VerifyKeyOf(sk1))

	_, _, err = KeyFromSeed([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestGenerateKeyPairShortReader(t *testing.T) {
	_, _, err := generateKeyPair(bytes.NewReader([]byte{1, 2}))
	require.Error(t, err)

	sk, vk, err := generateKeyPair(bytes.NewReader(bytes.Repeat([]byte{7}, 32)))
	require.NoError(t, err)
	require.Equal(t, prt.SignKey(bytes.Repeat([]byte{7}, 32)), sk)
	require.NotEqual(t, prt.VerifyKey{}, vk)
}
