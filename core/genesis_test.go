package core_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lokichain/loki-node/core"
	"github.com/lokichain/loki-node/core/coretest"
	prt "github.com/lokichain/loki-node/protocol"
)

func TestParseGenesis(t *testing.T) {
	a := prt.NewAddress("loki", prt.VerifyKey{0x01})
	b := prt.NewAddress("loki", prt.VerifyKey{0x02})

	allocs, err := core.ParseGenesis([]string{a.String(), b.String()}, []uint64{100, 200}, "LOKI")
	require.NoError(t, err)
	require.Equal(t, []core.GenesisAlloc{
		{Address: a, Balance: core.NewToken(100, "LOKI")},
		{Address: b, Balance: core.NewToken(200, "LOKI")},
	}, allocs)

	_, err = core.ParseGenesis([]string{a.String()}, []uint64{1, 2}, "LOKI")
	require.Error(t, err)

	_, err = core.ParseGenesis([]string{"not-an-address"}, []uint64{1}, "LOKI")
	require.Error(t, err)
}

func TestSeedGenesisKeepsExisting(t *testing.T) {
	ctx := context.Background()
	store := coretest.NewMockAccountStore()

	a := prt.NewAddress("loki", prt.VerifyKey{0x01})
	b := prt.NewAddress("loki", prt.VerifyKey{0x02})

	existing := core.NewAccount(a, core.NewToken(7, "LOKI"))
	existing.Nonce = 3
	require.NoError(t, store.Put(ctx, existing))

	seeded, err := core.SeedGenesis(ctx, store, []core.GenesisAlloc{
		{Address: a, Balance: core.NewToken(100, "LOKI")},
		{Address: b, Balance: core.NewToken(200, "LOKI")},
	})
	require.NoError(t, err)
	require.Equal(t, 1, seeded)

	got, err := store.Get(ctx, a)
	require.NoError(t, err)
	require.Equal(t, existing, got)

	got, err = store.Get(ctx, b)
	require.NoError(t, err)
	require.Equal(t, uint64(0), got.Nonce)
	require.Equal(t, core.NewToken(200, "LOKI"), got.Balance)
}
