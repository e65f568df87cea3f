package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/golang/groupcache/lru"
	"github.com/lokichain/loki-node/common/utils"
	"github.com/lokichain/loki-node/core"
	prt "github.com/lokichain/loki-node/protocol"
	"github.com/syndtr/goleveldb/leveldb"
)

// TxStore 확정된 트랜잭션 저장소. 확정 트랜잭션은 바뀌지 않으므로 LRU에 캐싱한다.
type TxStore struct {
	db *leveldb.DB

	mu    sync.Mutex // lru.Cache는 동시 접근에 안전하지 않음
	cache *lru.Cache
}

func NewTxStore(db *leveldb.DB, cacheSize int) *TxStore {
	return &TxStore{
		db:    db,
		cache: lru.New(cacheSize),
	}
}

func (s *TxStore) Get(_ context.Context, hash prt.Hash) (*core.Transaction, error) {
	if tx, ok := s.cached(hash); ok {
		return &tx, nil
	}

	data, err := getValue(s.db, utils.GetTxHashKey(hash))
	if err != nil || data == nil {
		return nil, err
	}

	var tx core.Transaction
	if err := utils.DeserializeData(data, &tx); err != nil {
		return nil, fmt.Errorf("failed to decode tx %s: %w", hash, err)
	}
	s.remember(tx)
	return &tx, nil
}

// Put 확정 트랜잭션 기록
func (s *TxStore) Put(_ context.Context, tx core.Transaction) error {
	data, err := utils.SerializeData(tx)
	if err != nil {
		return fmt.Errorf("failed to encode tx: %w", err)
	}
	if err := s.db.Put(utils.GetTxHashKey(tx.Hash), data, nil); err != nil {
		return fmt.Errorf("failed to write tx: %w", err)
	}
	s.remember(tx)
	return nil
}

func (s *TxStore) cached(hash prt.Hash) (core.Transaction, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.cache.Get(hash)
	if !ok {
		return core.Transaction{}, false
	}
	return clonePayload(v.(core.Transaction)), true
}

func (s *TxStore) remember(tx core.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Add(tx.Hash, clonePayload(tx))
}

// 캐시 항목과 호출자가 Payload 배열을 공유하지 않도록 복사
func clonePayload(tx core.Transaction) core.Transaction {
	if tx.Data.Payload != nil {
		tx.Data.Payload = append(json.RawMessage(nil), tx.Data.Payload...)
	}
	return tx
}

// CacheLen 테스트/상태 조회용
func (s *TxStore) CacheLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}
