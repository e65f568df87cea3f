package crypto

import (
	"crypto/ed25519"

	prt "github.com/lokichain/loki-node/protocol"
)

// Ed25519Signer SignKey를 Ed25519 seed로 취급하는 서명기
type Ed25519Signer struct{}

func (Ed25519Signer) Sign(data []byte, key prt.SignKey) prt.Signature {
	priv := ed25519.NewKeyFromSeed(key[:])
	var sig prt.Signature
	copy(sig[:], ed25519.Sign(priv, data))
	return sig
}

func (Ed25519Signer) Verify(data []byte, sig prt.Signature, key prt.VerifyKey) bool {
	return ed25519.Verify(ed25519.PublicKey(key[:]), data, sig[:])
}
