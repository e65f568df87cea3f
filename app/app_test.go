package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
	lvlstorage "github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/lokichain/loki-node/common/crypto"
	conf "github.com/lokichain/loki-node/config"
	"github.com/lokichain/loki-node/core"
	prt "github.com/lokichain/loki-node/protocol"
	"github.com/lokichain/loki-node/wallet"
)

const testMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func testConfig(t *testing.T) (*conf.Config, *wallet.WalletManager) {
	t.Helper()

	walletDir := t.TempDir()
	wm := wallet.NewWalletManager(walletDir, "lokichain")
	_, err := wm.RestoreWallet(testMnemonic)
	require.NoError(t, err)
	require.NoError(t, wm.SaveWallet())
	acc, err := wm.GetCurrentAccount()
	require.NoError(t, err)

	cfg := &conf.Config{
		Wallet:  conf.Wallet{Path: walletDir},
		Network: conf.Network{Tag: "lokichain", Denom: "LOKI"},
		Crypto:  conf.Crypto{Hasher: crypto.HasherKeccak256},
		Mempool: conf.Mempool{ReleaseLimit: 2},
		Cache:   conf.Cache{TxCacheSize: 16},
		Genesis: conf.Genesis{
			Addresses: []string{acc.Address.String()},
			Balances:  []uint64{1000},
		},
		Apps: []conf.App{{Name: "bank", Operations: []string{"transfer"}}},
	}
	return cfg, wm
}

func newMemDB(t *testing.T) *leveldb.DB {
	t.Helper()
	db, err := leveldb.Open(lvlstorage.NewMemStorage(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAppAdmitsAndReleases(t *testing.T) {
	cfg, wm := testConfig(t)
	app, err := NewWithDB(cfg, newMemDB(t))
	require.NoError(t, err)
	defer app.Terminate()

	require.NotNil(t, app.Wallet)

	acc, err := wm.GetCurrentAccount()
	require.NoError(t, err)
	stored, err := app.Accounts.Get(context.Background(), acc.Address)
	require.NoError(t, err)
	require.Equal(t, core.NewToken(1000, "LOKI"), stored.Balance)

	hasher, err := crypto.NewHasher(cfg.Crypto.Hasher)
	require.NoError(t, err)
	for nonce := uint64(1); nonce <= 3; nonce++ {
		req, err := wm.SignRequest(core.TxBody{
			Data:   core.AppData{App: "bank", Operation: "transfer", Payload: json.RawMessage(`{}`)},
			Amount: core.NewToken(10, "LOKI"),
			Gas:    1,
			Nonce:  nonce,
		}, hasher, crypto.Ed25519Signer{})
		require.NoError(t, err)

		_, err = app.CreateTx.Execute(context.Background(), req)
		require.NoError(t, err)
	}
	require.Equal(t, 3, app.Mempool.Count())

	released := app.ReleasePending()
	require.Len(t, released, 2)
	require.Equal(t, 1, app.Mempool.Count())
}

func TestAppSettleTx(t *testing.T) {
	cfg, wm := testConfig(t)
	app, err := NewWithDB(cfg, newMemDB(t))
	require.NoError(t, err)

	hasher, err := crypto.NewHasher(cfg.Crypto.Hasher)
	require.NoError(t, err)
	var hashes []prt.Hash
	for nonce := uint64(1); nonce <= 2; nonce++ {
		req, err := wm.SignRequest(core.TxBody{
			Data:   core.AppData{App: "bank", Operation: "transfer", Payload: json.RawMessage(`{}`)},
			Amount: core.NewToken(10, "LOKI"),
			Gas:    1,
			Nonce:  nonce,
		}, hasher, crypto.Ed25519Signer{})
		require.NoError(t, err)
		res, err := app.CreateTx.Execute(context.Background(), req)
		require.NoError(t, err)
		hashes = append(hashes, res.Hash)
	}
	ctx := context.Background()

	require.NoError(t, app.SettleTx(ctx, hashes[0], core.Confirmed))
	require.NoError(t, app.SettleTx(ctx, hashes[1], core.Reverted))
	require.Error(t, app.SettleTx(ctx, hashes[1], core.PendingConfirmation))

	confirmed, _ := app.Mempool.Get(hashes[0])
	require.Equal(t, core.Confirmed, confirmed.State)
	reverted, _ := app.Mempool.Get(hashes[1])
	require.Equal(t, core.Reverted, reverted.State)

	// 확정된 것만 저장소에 남는다
	stored, err := app.Txs.Get(ctx, hashes[0])
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, confirmed.Transaction.Hash, stored.Hash)
	missing, err := app.Txs.Get(ctx, hashes[1])
	require.NoError(t, err)
	require.Nil(t, missing)

	err = app.SettleTx(ctx, prt.Hash{0xee}, core.Confirmed)
	require.True(t, core.IsNotFound(err))

	// 종료 시 멤풀은 비워진다
	app.Terminate()
	require.Zero(t, app.Mempool.Count())
}

func TestAppGenesisNetworkMismatch(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg.Network.Tag = "testnet"
	cfg.Wallet.Path = t.TempDir()

	_, err := NewWithDB(cfg, newMemDB(t))
	require.Error(t, err)
}

func TestAppUnknownHasher(t *testing.T) {
	cfg, _ := testConfig(t)
	cfg.Crypto.Hasher = "md5"

	_, err := NewWithDB(cfg, newMemDB(t))
	require.Error(t, err)
}

func TestNewFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[Common]
Level = "prod"
ServiceName = "loki-node"

[LogInfo]
Path = "` + filepath.Join(dir, "logs", "loki-node") + `"

[DB]
Path = "` + filepath.Join(dir, "db") + `"

[Wallet]
Path = "` + filepath.Join(dir, "wallet") + `"

[Server]
RestPort = 0

[[Apps]]
Name = "bank"
Operations = ["transfer"]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	app, err := New(path)
	require.NoError(t, err)
	require.Nil(t, app.Wallet)
	require.Equal(t, "lokichain", app.Conf.Network.Tag)

	app.Terminate()
	app.Terminate()
	app.Wait()
}
