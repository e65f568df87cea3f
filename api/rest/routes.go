package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lokichain/loki-node/api"
)

func setupRouter(svc *Services) http.Handler {
	r := mux.NewRouter()
	// base64 해시에 '/'가 들어갈 수 있어 경로 정리를 끈다
	r.SkipClean(true)

	// Middleware setup
	r.Use(LoggingMiddleware)
	r.Use(RecoveryMiddleware)

	r.HandleFunc("/", HomeHandler).Methods("GET")

	if svc.WSHub != nil {
		r.HandleFunc("/ws", api.HandleWebSocket(svc.WSHub))
	}

	apiRouter := r.PathPrefix("/api/v1").Subrouter()

	apiRouter.HandleFunc("/status", GetStatus(svc)).Methods("GET")

	// Transaction related API
	apiRouter.HandleFunc("/tx", SubmitTx(svc)).Methods("POST")               // 클라이언트 서명
	apiRouter.HandleFunc("/tx/send", SendTxWithWallet(svc)).Methods("POST")  // 노드 지갑 서명
	apiRouter.HandleFunc("/tx/{hash:.+}/state", SettleTx(svc)).Methods("POST") // 블록 조립기 결과 보고
	apiRouter.HandleFunc("/tx/{hash:.+}", GetTx(svc)).Methods("GET")

	apiRouter.HandleFunc("/account/{address}", GetAccount(svc)).Methods("GET")

	apiRouter.HandleFunc("/mempool", GetMempoolList(svc)).Methods("GET")
	apiRouter.HandleFunc("/mempool/release", ReleaseMempool(svc)).Methods("POST")

	apiRouter.HandleFunc("/wallet/accounts", GetWalletAccounts(svc)).Methods("GET")

	apiRouter.HandleFunc("/ws/status", GetWSStatus(svc)).Methods("GET")

	return r
}
