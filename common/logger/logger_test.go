package logger

import (
	"path/filepath"
	"testing"

	conf "github.com/lokichain/loki-node/config"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHelpersJoinArguments(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	Info("admitted ", 3, " txs")
	Debug("pool size: ", 7)

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "admitted 3 txs", entries[0].ContextMap()["Info"])
	require.Equal(t, "pool size: 7", entries[1].ContextMap()["Debug"])
}

func TestCritWritesBeforeExit(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core, zap.WithFatalHook(zapcore.WriteThenPanic)))
	defer SetLogger(nil)

	require.Panics(t, func() { Crit("Failed to start services: ", "port in use") })
	entries := logs.All()
	require.Len(t, entries, 1)
	require.Equal(t, zapcore.FatalLevel, entries[0].Level)
	require.Equal(t, "Failed to start services: port in use", entries[0].ContextMap()["Crit"])
}

func TestInitLogger(t *testing.T) {
	cfg := &conf.Config{}
	cfg.Common.Level = "prod"
	cfg.Common.ServiceName = "loki-node"
	cfg.LogInfo.Path = filepath.Join(t.TempDir(), "logs", "node")
	cfg.LogInfo.MaxAgeHour = 1
	cfg.LogInfo.RotateHour = 1

	require.NoError(t, InitLogger(cfg))
	defer SetLogger(nil)
	require.NotNil(t, L())
	Info("hello")
}
