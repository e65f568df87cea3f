package storage

import (
	"context"
	"fmt"

	"github.com/lokichain/loki-node/common/utils"
	"github.com/lokichain/loki-node/core"
	prt "github.com/lokichain/loki-node/protocol"
	"github.com/syndtr/goleveldb/leveldb"
)

// AccountStore 계정 저장소 ("acc:" + bech32 주소 -> JSON)
type AccountStore struct {
	db *leveldb.DB
}

func NewAccountStore(db *leveldb.DB) *AccountStore {
	return &AccountStore{db: db}
}

func (s *AccountStore) Get(_ context.Context, address prt.Address) (*core.Account, error) {
	data, err := getValue(s.db, utils.GetAccountKey(address))
	if err != nil || data == nil {
		return nil, err
	}

	var acc core.Account
	if err := utils.DeserializeData(data, &acc); err != nil {
		return nil, fmt.Errorf("failed to decode account %s: %w", address, err)
	}
	return &acc, nil
}

func (s *AccountStore) Put(_ context.Context, account *core.Account) error {
	data, err := utils.SerializeData(account)
	if err != nil {
		return fmt.Errorf("failed to encode account: %w", err)
	}
	if err := s.db.Put(utils.GetAccountKey(account.Address), data, nil); err != nil {
		return fmt.Errorf("failed to write account: %w", err)
	}
	return nil
}
