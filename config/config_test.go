package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	return p
}

func TestNewConfig(t *testing.T) {
	t.Setenv("HOME", "/home/loki")
	p := writeConfig(t, `
[Common]
ServiceName = "loki-node"

[LogInfo]
Path = "~/logs/node"

[DB]
Path = "/tmp/db/"

[Server]
RestPort = 9000

[[Apps]]
Name = "bank"
Operations = ["transfer"]

[[Apps]]
Name = "dex"
Operations = ["swap", "add_liquidity"]
`)

	cfg, err := NewConfig(p)
	require.NoError(t, err)
	require.Equal(t, "/home/loki/logs/node", cfg.LogInfo.Path)
	require.Equal(t, 9000, cfg.Server.RestPort)
	require.Equal(t, "lokichain", cfg.Network.Tag)
	require.Equal(t, "LOKI", cfg.Network.Denom)
	require.Equal(t, "sha256", cfg.Crypto.Hasher)
	require.Equal(t, 100, cfg.Mempool.ReleaseLimit)
	require.Equal(t, "prod", cfg.Common.Level)

	routes := cfg.Routes()
	require.Equal(t, []string{"transfer"}, routes["bank"])
	require.Equal(t, []string{"swap", "add_liquidity"}, routes["dex"])
}

func TestNewConfigGenesisMismatch(t *testing.T) {
	p := writeConfig(t, `
[Genesis]
Addresses = ["a", "b"]
Balances = [1]
`)
	_, err := NewConfig(p)
	require.Error(t, err)
}

func TestNewConfigRejectsNetworkTag(t *testing.T) {
	for _, tag := range []string{"LOKI", "Lokichain", "loki chain"} {
		p := writeConfig(t, `
[Network]
Tag = "`+tag+`"
`)
		_, err := NewConfig(p)
		require.Error(t, err, tag)
	}
}

func TestNewConfigMissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
}

func TestDefault(t *testing.T) {
	t.Setenv("HOME", "/home/loki")
	cfg := Default()
	require.Equal(t, "/home/loki/.loki-node/wallets", cfg.Wallet.Path)
	require.Equal(t, 8000, cfg.Server.RestPort)
	require.Equal(t, "lokichain", cfg.Network.Tag)
	require.Empty(t, cfg.Routes())
}
