package core

import (
	"context"

	prt "github.com/lokichain/loki-node/protocol"
)

type Hasher interface {
	Hash(data []byte) prt.Hash
	Verify(data []byte, hash prt.Hash) bool
}

// Signer owns all key handling. Nothing else in core touches a SignKey.
type Signer interface {
	Sign(data []byte, key prt.SignKey) prt.Signature
	Verify(data []byte, sig prt.Signature, key prt.VerifyKey) bool
}

// AppRouter knows which (app, operation) pairs can receive transaction payloads.
type AppRouter interface {
	IsExist(app, operation string) bool
}

// AccountStore returns (nil, nil) when the address has no account.
type AccountStore interface {
	Get(ctx context.Context, address prt.Address) (*Account, error)
}

// AccountWriter is implemented by stores that accept genesis balances.
type AccountWriter interface {
	AccountStore
	Put(ctx context.Context, account *Account) error
}

// TxStore holds confirmed transactions. It returns (nil, nil) on a miss.
type TxStore interface {
	Get(ctx context.Context, hash prt.Hash) (*Transaction, error)
}

// PendingPool is the shared holding area for not yet confirmed transactions.
type PendingPool interface {
	Add(entry TransactionWithState)
	// AddIfAbsent inserts entry unless its hash is already resident and
	// reports whether it did, as one atomic step.
	AddIfAbsent(entry TransactionWithState) bool
	Get(hash prt.Hash) (TransactionWithState, bool)
	Release(limit int) []TransactionWithState
	Count() int
}
