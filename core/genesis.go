package core

import (
	"context"
	"fmt"

	"github.com/lokichain/loki-node/common/logger"
	prt "github.com/lokichain/loki-node/protocol"
)

// GenesisAlloc 제네시스 잔액 한 건
type GenesisAlloc struct {
	Address prt.Address
	Balance Token
}

// ParseGenesis 설정의 주소/잔액 목록을 변환
func ParseGenesis(addresses []string, balances []uint64, denom string) ([]GenesisAlloc, error) {
	if len(addresses) != len(balances) {
		return nil, fmt.Errorf("system address and balance count mismatch")
	}

	allocs := make([]GenesisAlloc, 0, len(addresses))
	for i, s := range addresses {
		addr, err := prt.ParseAddress(s)
		if err != nil {
			return nil, fmt.Errorf("genesis[%d]: %w", i, err)
		}
		allocs = append(allocs, GenesisAlloc{Address: addr, Balance: NewToken(balances[i], denom)})
	}
	return allocs, nil
}

// SeedGenesis 계정이 없을 때만 초기 잔액을 기록. 기존 계정은 덮어쓰지 않는다.
func SeedGenesis(ctx context.Context, store AccountWriter, allocs []GenesisAlloc) (int, error) {
	seeded := 0
	for _, alloc := range allocs {
		existing, err := store.Get(ctx, alloc.Address)
		if err != nil {
			return seeded, fmt.Errorf("failed to read genesis account: %w", err)
		}
		if existing != nil {
			continue
		}

		if err := store.Put(ctx, NewAccount(alloc.Address, alloc.Balance)); err != nil {
			return seeded, fmt.Errorf("failed to write genesis account: %w", err)
		}
		seeded++
		logger.Info("genesis account seeded: ", alloc.Address, " balance: ", alloc.Balance)
	}
	return seeded, nil
}
