package crypto

import (
	"crypto/sha256"
	"fmt"

	"github.com/lokichain/loki-node/core"
	prt "github.com/lokichain/loki-node/protocol"
	"golang.org/x/crypto/sha3"
)

const (
	HasherSHA256    = "sha256"
	HasherKeccak256 = "keccak256"
)

type SHA256Hasher struct{}

func (SHA256Hasher) Hash(data []byte) prt.Hash {
	return sha256.Sum256(data)
}

func (h SHA256Hasher) Verify(data []byte, hash prt.Hash) bool {
	return h.Hash(data) == hash
}

// Keccak256Hasher legacy Keccak-256 (이더리움 방식, NIST SHA3 아님)
type Keccak256Hasher struct{}

func (Keccak256Hasher) Hash(data []byte) prt.Hash {
	var out prt.Hash
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	h.Sum(out[:0])
	return out
}

func (h Keccak256Hasher) Verify(data []byte, hash prt.Hash) bool {
	return h.Hash(data) == hash
}

// NewHasher 설정 이름으로 해셔 선택
func NewHasher(name string) (core.Hasher, error) {
	switch name {
	case "", HasherSHA256:
		return SHA256Hasher{}, nil
	case HasherKeccak256:
		return Keccak256Hasher{}, nil
	default:
		return nil, fmt.Errorf("unknown hasher: %s", name)
	}
}
