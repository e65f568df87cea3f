package core

import (
	"context"

	prt "github.com/lokichain/loki-node/protocol"
)

// GetAccount 주소로 계정 조회
type GetAccount struct {
	accounts AccountStore
}

func NewGetAccount(accounts AccountStore) *GetAccount {
	return &GetAccount{accounts: accounts}
}

func (q *GetAccount) Execute(ctx context.Context, address prt.Address) (*Account, error) {
	account, err := q.accounts.Get(ctx, address)
	if err != nil {
		return nil, wrapOther("failed to get account", err)
	}
	if account == nil {
		return nil, &NotFoundError{Msg: "account not found"}
	}
	return account, nil
}

// GetTransactionByHash 확정된 트랜잭션 조회
type GetTransactionByHash struct {
	txs TxStore
}

func NewGetTransactionByHash(txs TxStore) *GetTransactionByHash {
	return &GetTransactionByHash{txs: txs}
}

func (q *GetTransactionByHash) Execute(ctx context.Context, hash prt.Hash) (*Transaction, error) {
	tx, err := q.txs.Get(ctx, hash)
	if err != nil {
		return nil, wrapOther("failed to get transaction", err)
	}
	if tx == nil {
		return nil, &NotFoundError{Msg: "transaction not found"}
	}
	return tx, nil
}
