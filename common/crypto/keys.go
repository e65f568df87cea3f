package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"io"

	prt "github.com/lokichain/loki-node/protocol"
)

// GenerateKeyPair 새 Ed25519 키쌍 생성. SignKey는 32바이트 seed.
func GenerateKeyPair() (prt.SignKey, prt.VerifyKey, error) {
	return generateKeyPair(rand.Reader)
}

func generateKeyPair(r io.Reader) (prt.SignKey, prt.VerifyKey, error) {
	var sk prt.SignKey
	if _, err := io.ReadFull(r, sk[:]); err != nil {
		return prt.SignKey{}, prt.VerifyKey{}, fmt.Errorf("failed to read key seed: %w", err)
	}
	return sk, VerifyKeyOf(sk), nil
}

// KeyFromSeed seed의 앞 32바이트로 키쌍 생성 (BIP-39 seed 등)
func KeyFromSeed(seed []byte) (prt.SignKey, prt.VerifyKey, error) {
	if len(seed) < ed25519.SeedSize {
		return prt.SignKey{}, prt.VerifyKey{}, fmt.Errorf("seed too short: %d bytes (need %d)", len(seed), ed25519.SeedSize)
	}
	var sk prt.SignKey
	copy(sk[:], seed[:ed25519.SeedSize])
	return sk, VerifyKeyOf(sk), nil
}

func VerifyKeyOf(sk prt.SignKey) prt.VerifyKey {
	priv := ed25519.NewKeyFromSeed(sk[:])
	var vk prt.VerifyKey
	copy(vk[:], priv.Public().(ed25519.PublicKey))
	return vk
}
