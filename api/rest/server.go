package rest

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/lokichain/loki-node/api"
	"github.com/lokichain/loki-node/common/logger"
	"github.com/lokichain/loki-node/config"
	"github.com/lokichain/loki-node/core"
	prt "github.com/lokichain/loki-node/protocol"
	"github.com/lokichain/loki-node/wallet"
)

// Lifecycle 블록 조립기가 멤풀 항목을 넘겨받고 결과를 보고하는 경로
type Lifecycle interface {
	ReleasePending() []core.TransactionWithState
	SettleTx(ctx context.Context, hash prt.Hash, state core.TxState) error
}

// Services 핸들러가 사용하는 use case와 상태
type Services struct {
	CreateTx   *core.CreateTransaction
	GetAccount *core.GetAccount
	GetTx      *core.GetTransactionByHash
	Pool       *core.Mempool

	Hasher     core.Hasher
	HasherName string
	Signer     core.Signer

	Network config.Network
	Wallet  *wallet.WalletManager // nil이면 지갑 API 비활성
	WSHub   *api.WSHub

	Lifecycle Lifecycle // nil이면 release/settle API 비활성

	walletMu sync.Mutex // WalletManager는 동시 접근에 안전하지 않음
}

// Server REST API 서버 구조체
type Server struct {
	port       int
	httpServer *http.Server
	svc        *Services
}

func NewServer(port int, svc *Services) *Server {
	return &Server{
		port: port,
		svc:  svc,
	}
}

// Handler 라우터 (테스트용)
func (s *Server) Handler() http.Handler {
	return setupRouter(s.svc)
}

// Start API 서버 시작
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	logger.Info("REST API Server starting on port ", s.port)
	if s.svc.WSHub != nil {
		logger.Info("WebSocket available at ws://localhost:", s.port, "/ws")
	}
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("REST API Server error: ", err)
		}
	}()

	return nil
}

// Stop API 서버 종료
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	logger.Info("Shutting down REST API Server...")
	return s.httpServer.Shutdown(ctx)
}
