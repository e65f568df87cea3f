package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/lokichain/loki-node/api"
	"github.com/lokichain/loki-node/api/rest"
	"github.com/lokichain/loki-node/common/crypto"
	"github.com/lokichain/loki-node/common/logger"
	conf "github.com/lokichain/loki-node/config"
	"github.com/lokichain/loki-node/core"
	prt "github.com/lokichain/loki-node/protocol"
	"github.com/lokichain/loki-node/storage"
	"github.com/lokichain/loki-node/wallet"
	"github.com/syndtr/goleveldb/leveldb"
)

type App struct {
	stop          chan struct{}
	terminateOnce sync.Once

	Conf     conf.Config
	DB       *leveldb.DB // Mutex within db should not be copied
	Accounts *storage.AccountStore
	Txs      *storage.TxStore
	Mempool  *core.Mempool
	CreateTx *core.CreateTransaction
	Wallet   *wallet.WalletManager // 지갑 파일이 없으면 nil

	wsHub      *api.WSHub
	restServer *rest.Server
}

// New 설정 파일을 읽고 로거를 초기화한 뒤 노드를 구성
func New(configPath string) (*App, error) {
	cfg, err := conf.NewConfig(configPath)
	if err != nil {
		fmt.Println("Failed to initialized application: ", err)
		return nil, err
	}

	if err := logger.InitLogger(cfg); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		return nil, err
	}

	db, err := storage.InitDB(cfg)
	if err != nil {
		logger.Error("Failed to load db: ", err)
		return nil, err
	}

	app, err := NewWithDB(cfg, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return app, nil
}

// NewWithDB 열린 DB로 노드 구성 요소를 연결
func NewWithDB(cfg *conf.Config, db *leveldb.DB) (*App, error) {
	accounts := storage.NewAccountStore(db)
	txs := storage.NewTxStore(db, cfg.Cache.TxCacheSize)

	if err := seedGenesis(cfg, accounts); err != nil {
		logger.Error("Failed to seed genesis accounts: ", err)
		return nil, err
	}

	hasher, err := crypto.NewHasher(cfg.Crypto.Hasher)
	if err != nil {
		return nil, err
	}
	signer := crypto.Ed25519Signer{}
	router := core.NewStaticRouter(cfg.Routes())
	pool := core.NewMempool()

	createTx := core.NewCreateTransaction(hasher, signer, router, accounts, pool)

	wsHub := api.NewWSHub()
	wsHub.SetMempoolStatusProvider(pool.Count)
	createTx.SetAdmitHook(wsHub.BroadcastNewTransaction)

	walletMgr, err := wallet.InitWallet(cfg)
	if err != nil {
		logger.Error("Failed to load wallet: ", err)
		return nil, err
	}
	if walletMgr != nil {
		acc, _ := walletMgr.GetCurrentAccount()
		logger.Info("wallet imported: ", acc.Address)
	} else {
		logger.Info("no node wallet at ", cfg.Wallet.Path, ", wallet API disabled")
	}

	app := &App{
		stop:     make(chan struct{}),
		Conf:     *cfg,
		DB:       db,
		Accounts: accounts,
		Txs:      txs,
		Mempool:  pool,
		CreateTx: createTx,
		Wallet:   walletMgr,
		wsHub:    wsHub,
	}

	app.restServer = rest.NewServer(cfg.Server.RestPort, &rest.Services{
		CreateTx:   createTx,
		GetAccount: core.NewGetAccount(accounts),
		GetTx:      core.NewGetTransactionByHash(txs),
		Pool:       pool,
		Hasher:     hasher,
		HasherName: cfg.Crypto.Hasher,
		Signer:     signer,
		Network:    cfg.Network,
		Wallet:     walletMgr,
		WSHub:      wsHub,
		Lifecycle:  app,
	})

	return app, nil
}

func seedGenesis(cfg *conf.Config, accounts *storage.AccountStore) error {
	allocs, err := core.ParseGenesis(cfg.Genesis.Addresses, cfg.Genesis.Balances, cfg.Network.Denom)
	if err != nil {
		return err
	}
	for _, alloc := range allocs {
		if alloc.Address.Network != cfg.Network.Tag {
			return fmt.Errorf("genesis address %s is not on network %s", alloc.Address, cfg.Network.Tag)
		}
	}

	seeded, err := core.SeedGenesis(context.Background(), accounts, allocs)
	if err != nil {
		return err
	}
	if seeded > 0 {
		logger.Info("genesis accounts seeded: ", seeded)
	}
	return nil
}

// ReleasePending 블록 조립기용으로 설정된 개수만큼 멤풀에서 꺼낸다
func (p *App) ReleasePending() []core.TransactionWithState {
	return p.Mempool.Release(p.Conf.Mempool.ReleaseLimit)
}

// SettleTx 멤풀에 있는 트랜잭션의 처리 결과를 기록한다.
// Confirmed는 확정 저장소에 먼저 쓰고, 항목은 Release 될 때까지 멤풀에 남는다.
func (p *App) SettleTx(ctx context.Context, hash prt.Hash, state core.TxState) error {
	if state == core.PendingConfirmation {
		return fmt.Errorf("cannot settle tx as %s", state)
	}

	entry, ok := p.Mempool.Get(hash)
	if !ok {
		return &core.NotFoundError{Msg: "transaction not pending"}
	}

	if state == core.Confirmed {
		if err := p.Txs.Put(ctx, entry.Transaction); err != nil {
			logger.Error("Failed to store confirmed tx: ", err)
			return err
		}
	}

	// 그 사이 Release 된 경우
	if !p.Mempool.SetState(hash, state) {
		return &core.NotFoundError{Msg: "transaction not pending"}
	}
	logger.Debug("tx settled: ", hash, " state: ", state)
	return nil
}

// StartAll 모든 서비스 시작 (WebSocket hub, REST)
func (p *App) StartAll() error {
	go p.wsHub.Run()

	if err := p.restServer.Start(); err != nil {
		return fmt.Errorf("failed to start REST API server: %w", err)
	}

	logger.Info("All services started successfully")
	return nil
}

// Cleanup 애플리케이션 정리
func (p *App) Cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if p.restServer != nil {
		if err := p.restServer.Stop(ctx); err != nil {
			logger.Error("Error stopping REST API server: ", err)
		}
	}

	if p.wsHub != nil {
		p.wsHub.Stop()
	}

	// 멤풀은 메모리에만 있으므로 종료 시 버려진다
	if p.Mempool != nil {
		if n := p.Mempool.Count(); n > 0 {
			logger.Warn("dropping pending transactions on shutdown: ", n)
		}
		p.Mempool.Clear()
	}

	if p.DB != nil {
		if err := p.DB.Close(); err != nil {
			logger.Error("Error closing DB connection: ", err)
		}
	}

	logger.Info("All resources cleaned up")
	logger.Sync()
}

func (p *App) Wait() {
	<-p.stop
}

func (p *App) Terminate() {
	p.terminateOnce.Do(func() {
		p.Cleanup() // 자원 정리 후 종료
		close(p.stop)
	})
}

func (p *App) SigHandler() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM) // OS 시그널을 채널로 전달
	go func() {
		sig := <-sigCh
		logger.Info("Arrived terminate signal: ", sig)
		p.Terminate()
	}()
}
