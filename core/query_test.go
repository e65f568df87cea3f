package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lokichain/loki-node/core"
	"github.com/lokichain/loki-node/core/coretest"
	prt "github.com/lokichain/loki-node/protocol"
)

func TestGetAccount(t *testing.T) {
	ctx := context.Background()
	store := coretest.NewMockAccountStore()
	addr := prt.NewAddress("loki", prt.VerifyKey{0x07})
	require.NoError(t, store.Put(ctx, core.NewAccount(addr, core.NewToken(5, "LOKI"))))

	query := core.NewGetAccount(store)

	acc, err := query.Execute(ctx, addr)
	require.NoError(t, err)
	require.Equal(t, addr, acc.Address)
	require.Equal(t, core.NewToken(5, "LOKI"), acc.Balance)

	_, err = query.Execute(ctx, prt.NewAddress("loki", prt.VerifyKey{0x08}))
	require.True(t, core.IsNotFound(err))
	require.EqualError(t, err, "not found: account not found")

	store.Err = errors.New("closed")
	_, err = query.Execute(ctx, addr)
	var other *core.OtherError
	require.ErrorAs(t, err, &other)
}

func TestGetTransactionByHash(t *testing.T) {
	ctx := context.Background()
	store := coretest.NewMockTxStore()
	tx := core.Transaction{Hash: prt.Hash{0x01}, Amount: core.NewToken(3, "LOKI"), Gas: 1}
	store.Put(tx)

	query := core.NewGetTransactionByHash(store)

	got, err := query.Execute(ctx, tx.Hash)
	require.NoError(t, err)
	require.Equal(t, tx, *got)

	_, err = query.Execute(ctx, prt.Hash{0x02})
	require.True(t, core.IsNotFound(err))
	require.EqualError(t, err, "not found: transaction not found")
}
