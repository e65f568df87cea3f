// Package coretest provides in-memory collaborators for exercising core use cases.
package coretest

import (
	"context"
	"crypto/sha256"
	"sync"
	"sync/atomic"

	"github.com/lokichain/loki-node/core"
	prt "github.com/lokichain/loki-node/protocol"
)

// MockHasher hashes with SHA-256 and counts calls.
type MockHasher struct {
	calls atomic.Int64
}

func (h *MockHasher) Hash(data []byte) prt.Hash {
	h.calls.Add(1)
	return sha256.Sum256(data)
}

func (h *MockHasher) Verify(data []byte, hash prt.Hash) bool {
	return h.Hash(data) == hash
}

func (h *MockHasher) Calls() int64 {
	return h.calls.Load()
}

// MockSigner builds signatures as data[:32] || key. Verification only
// succeeds when the SignKey bytes equal the VerifyKey bytes.
type MockSigner struct{}

func (MockSigner) Sign(data []byte, key prt.SignKey) prt.Signature {
	var sig prt.Signature
	n := len(data)
	if n > 32 {
		n = 32
	}
	copy(sig[:n], data[:n])
	copy(sig[32:], key[:])
	return sig
}

func (s MockSigner) Verify(data []byte, sig prt.Signature, key prt.VerifyKey) bool {
	return s.Sign(data, prt.SignKey(key)) == sig
}

// MockAppRouter accepts the configured pairs; the zero value accepts bank/transfer.
type MockAppRouter struct {
	Routes map[string][]string
}

func (r MockAppRouter) IsExist(app, operation string) bool {
	routes := r.Routes
	if routes == nil {
		routes = map[string][]string{"bank": {"transfer"}}
	}
	for _, op := range routes[app] {
		if op == operation {
			return true
		}
	}
	return false
}

// MockAccountStore keeps accounts in a map. Err, when set, is returned by Get.
type MockAccountStore struct {
	mu       sync.RWMutex
	accounts map[prt.Address]core.Account
	gets     atomic.Int64

	Err error
}

func NewMockAccountStore() *MockAccountStore {
	return &MockAccountStore{accounts: make(map[prt.Address]core.Account)}
}

func (s *MockAccountStore) Get(_ context.Context, address prt.Address) (*core.Account, error) {
	s.gets.Add(1)
	if s.Err != nil {
		return nil, s.Err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.accounts[address]
	if !ok {
		return nil, nil
	}
	return &acc, nil
}

func (s *MockAccountStore) Put(_ context.Context, account *core.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[account.Address] = *account
	return nil
}

// Gets reports how many times Get was called.
func (s *MockAccountStore) Gets() int64 {
	return s.gets.Load()
}

type MockTxStore struct {
	mu  sync.RWMutex
	txs map[prt.Hash]core.Transaction
}

func NewMockTxStore() *MockTxStore {
	return &MockTxStore{txs: make(map[prt.Hash]core.Transaction)}
}

func (s *MockTxStore) Get(_ context.Context, hash prt.Hash) (*core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.txs[hash]
	if !ok {
		return nil, nil
	}
	return &tx, nil
}

func (s *MockTxStore) Put(tx core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs[tx.Hash] = tx
}

// SignRequest hashes body and signs the hash, the way a client would.
func SignRequest(hasher core.Hasher, signer core.Signer, key prt.SignKey, body core.TxBody) (core.CreateTransactionRequest, error) {
	data, err := body.CanonicalBytes()
	if err != nil {
		return core.CreateTransactionRequest{}, err
	}
	hash := hasher.Hash(data)
	return core.CreateTransactionRequest{
		Body:      body,
		Hash:      hash,
		Signature: signer.Sign(hash[:], key),
	}, nil
}
