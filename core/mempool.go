package core

import (
	"container/list"
	"sync"

	prt "github.com/lokichain/loki-node/protocol"
)

// Mempool 해시별 TransactionWithState 저장소
//
// 모든 연산은 하나의 mutex 아래에서 실행된다. release 된 항목은 다시 조회되지 않는다.
type Mempool struct {
	transactions map[prt.Hash]*list.Element // value: *TransactionWithState
	order        *list.List                 // 삽입 순서 (FIFO)
	mu           sync.Mutex
}

func NewMempool() *Mempool {
	return &Mempool{
		transactions: make(map[prt.Hash]*list.Element),
		order:        list.New(),
	}
}

// Add 트랜잭션 추가. 같은 해시가 있으면 순서를 유지한 채 덮어쓴다.
func (p *Mempool) Add(entry TransactionWithState) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.put(entry)
}

// AddIfAbsent 없을 때만 추가 (중복 검사와 삽입을 한 번에)
func (p *Mempool) AddIfAbsent(entry TransactionWithState) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.transactions[entry.Transaction.Hash]; exists {
		return false
	}
	p.put(entry)
	return true
}

func (p *Mempool) put(entry TransactionWithState) {
	e := entry
	if el, exists := p.transactions[entry.Transaction.Hash]; exists {
		el.Value = &e
		return
	}
	p.transactions[entry.Transaction.Hash] = p.order.PushBack(&e)
}

func (p *Mempool) Get(hash prt.Hash) (TransactionWithState, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	el, exists := p.transactions[hash]
	if !exists {
		return TransactionWithState{}, false
	}
	return *el.Value.(*TransactionWithState), true
}

// Release 블록 조립용으로 최대 limit개를 꺼내며 멤풀에서 제거
func (p *Mempool) Release(limit int) []TransactionWithState {
	p.mu.Lock()
	defer p.mu.Unlock()

	if limit <= 0 {
		return nil
	}
	if limit > len(p.transactions) {
		limit = len(p.transactions)
	}

	released := make([]TransactionWithState, 0, limit)
	for len(released) < limit {
		front := p.order.Front()
		entry := p.order.Remove(front).(*TransactionWithState)
		delete(p.transactions, entry.Transaction.Hash)
		released = append(released, *entry)
	}
	return released
}

// Count mempool의 트랜잭션 개수 반환
func (p *Mempool) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.transactions)
}

// SetState 상주 중인 트랜잭션의 상태 갱신
func (p *Mempool) SetState(hash prt.Hash, state TxState) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	el, exists := p.transactions[hash]
	if !exists {
		return false
	}
	el.Value.(*TransactionWithState).State = state
	return true
}

// Entries 삽입 순서대로의 스냅샷
func (p *Mempool) Entries() []TransactionWithState {
	p.mu.Lock()
	defer p.mu.Unlock()

	entries := make([]TransactionWithState, 0, len(p.transactions))
	for el := p.order.Front(); el != nil; el = el.Next() {
		entries = append(entries, *el.Value.(*TransactionWithState))
	}
	return entries
}

// Clear Mempool 초기화
func (p *Mempool) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.transactions = make(map[prt.Hash]*list.Element)
	p.order.Init()
}
