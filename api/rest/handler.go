package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/lokichain/loki-node/common/logger"
	"github.com/lokichain/loki-node/common/utils"
	"github.com/lokichain/loki-node/core"
	prt "github.com/lokichain/loki-node/protocol"
)

const maxBodyBytes = 1 << 20

// get home response
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	info := map[string]string{
		"name":    "loki-node API",
		"version": "1.0.0",
	}
	sendResp(w, http.StatusOK, info, nil)
}

// get node status response
func GetStatus(svc *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := StatusResp{
			Network:     svc.Network.Tag,
			Denom:       svc.Network.Denom,
			Hasher:      svc.HasherName,
			MempoolSize: svc.Pool.Count(),
		}
		if svc.WSHub != nil {
			resp.WSClients = svc.WSHub.GetClientCount()
		}
		sendResp(w, http.StatusOK, resp, nil)
	}
}

// SubmitTx 클라이언트가 서명한 트랜잭션 제출
func SubmitTx(svc *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req core.CreateTransactionRequest
		if err := decodeBody(w, r, &req); err != nil {
			sendResp(w, http.StatusBadRequest, nil, err)
			return
		}

		res, err := svc.CreateTx.Execute(r.Context(), req)
		if err != nil {
			sendErr(w, err)
			return
		}
		sendResp(w, http.StatusOK, SubmitTxResp{Hash: utils.HashToString(res.Hash)}, nil)
	}
}

// SendTxWithWallet 노드 지갑 계정으로 서명해서 제출
func SendTxWithWallet(svc *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc.Wallet == nil {
			sendResp(w, http.StatusServiceUnavailable, nil, fmt.Errorf("node wallet not loaded"))
			return
		}

		var req SendTxReq
		if err := decodeBody(w, r, &req); err != nil {
			sendResp(w, http.StatusBadRequest, nil, err)
			return
		}
		if req.Denom == "" {
			req.Denom = svc.Network.Denom
		}

		svc.walletMu.Lock()
		if err := svc.Wallet.SwitchAccount(req.AccountIndex); err != nil {
			svc.walletMu.Unlock()
			sendResp(w, http.StatusBadRequest, nil, err)
			return
		}
		signed, err := svc.Wallet.SignRequest(core.TxBody{
			Data: core.AppData{
				App:       req.App,
				Operation: req.Operation,
				Payload:   req.Payload,
			},
			Amount: core.NewToken(req.Amount, req.Denom),
			Gas:    req.Gas,
			Nonce:  req.Nonce,
		}, svc.Hasher, svc.Signer)
		svc.walletMu.Unlock()
		if err != nil {
			sendResp(w, http.StatusBadRequest, nil, err)
			return
		}

		res, err := svc.CreateTx.Execute(r.Context(), signed)
		if err != nil {
			sendErr(w, err)
			return
		}
		sendResp(w, http.StatusOK, SubmitTxResp{Hash: utils.HashToString(res.Hash)}, nil)
	}
}

// GetTx 멤풀에 있으면 상태와 함께, 없으면 확정 저장소에서 조회
func GetTx(svc *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		hash, err := parseHashParam(mux.Vars(r)["hash"])
		if err != nil {
			sendResp(w, http.StatusBadRequest, nil, err)
			return
		}

		if entry, ok := svc.Pool.Get(hash); ok {
			sendResp(w, http.StatusOK, entry, nil)
			return
		}

		tx, err := svc.GetTx.Execute(r.Context(), hash)
		if err != nil {
			sendErr(w, err)
			return
		}
		sendResp(w, http.StatusOK, core.TransactionWithState{Transaction: *tx, State: core.Confirmed}, nil)
	}
}

func GetAccount(svc *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		address, err := utils.StringToAddress(mux.Vars(r)["address"])
		if err != nil {
			sendResp(w, http.StatusBadRequest, nil, err)
			return
		}

		account, err := svc.GetAccount.Execute(r.Context(), address)
		if err != nil {
			sendErr(w, err)
			return
		}
		sendResp(w, http.StatusOK, account, nil)
	}
}

func GetMempoolList(svc *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries := svc.Pool.Entries()
		sendResp(w, http.StatusOK, MempoolResp{Count: len(entries), Transactions: entries}, nil)
	}
}

// ReleaseMempool 설정된 개수만큼 FIFO 순서로 꺼내 반환
func ReleaseMempool(svc *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc.Lifecycle == nil {
			sendResp(w, http.StatusServiceUnavailable, nil, fmt.Errorf("lifecycle API disabled"))
			return
		}
		released := svc.Lifecycle.ReleasePending()
		sendResp(w, http.StatusOK, MempoolResp{Count: len(released), Transactions: released}, nil)
	}
}

// SettleTx 멤풀 트랜잭션의 확정/취소 결과 기록
func SettleTx(svc *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc.Lifecycle == nil {
			sendResp(w, http.StatusServiceUnavailable, nil, fmt.Errorf("lifecycle API disabled"))
			return
		}
		hash, err := parseHashParam(mux.Vars(r)["hash"])
		if err != nil {
			sendResp(w, http.StatusBadRequest, nil, err)
			return
		}
		var req SettleTxReq
		if err := decodeBody(w, r, &req); err != nil {
			sendResp(w, http.StatusBadRequest, nil, err)
			return
		}
		if req.State == core.PendingConfirmation {
			sendResp(w, http.StatusBadRequest, nil, fmt.Errorf("state must be confirmed or reverted"))
			return
		}

		if err := svc.Lifecycle.SettleTx(r.Context(), hash, req.State); err != nil {
			sendErr(w, err)
			return
		}
		entry, _ := svc.Pool.Get(hash)
		sendResp(w, http.StatusOK, entry, nil)
	}
}

func GetWalletAccounts(svc *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc.Wallet == nil || svc.Wallet.Wallet == nil {
			sendResp(w, http.StatusServiceUnavailable, nil, fmt.Errorf("node wallet not loaded"))
			return
		}

		svc.walletMu.Lock()
		accounts := make([]WalletAccountResp, 0, len(svc.Wallet.Wallet.Accounts))
		for _, acc := range svc.Wallet.Wallet.Accounts {
			accounts = append(accounts, WalletAccountResp{
				Index:   acc.Index,
				Address: utils.AddressToString(acc.Address),
				Path:    acc.Path,
			})
		}
		svc.walletMu.Unlock()

		sendResp(w, http.StatusOK, accounts, nil)
	}
}

func GetWSStatus(svc *Services) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc.WSHub == nil {
			sendResp(w, http.StatusInternalServerError, nil, fmt.Errorf("WebSocket hub not initialized"))
			return
		}

		status := map[string]interface{}{
			"connected_clients": svc.WSHub.GetClientCount(),
			"endpoint":          "/ws",
		}
		sendResp(w, http.StatusOK, status, nil)
	}
}

// parseHashParam URL 경로에서는 URL-safe base64도 허용
func parseHashParam(s string) (prt.Hash, error) {
	s = strings.NewReplacer("-", "+", "_", "/").Replace(s)
	return utils.StringToHash(s)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// sendErr core 오류 종류를 HTTP 상태로 변환
func sendErr(w http.ResponseWriter, err error) {
	if ide, ok := core.AsInvalidData(err); ok {
		sendResp(w, http.StatusBadRequest, InvalidDataResp{Fields: ide.Fields}, err)
		return
	}
	if core.IsNotFound(err) {
		sendResp(w, http.StatusNotFound, nil, err)
		return
	}

	logger.Error("API internal error: ", err)
	sendResp(w, http.StatusInternalServerError, nil, err)
}

// send response
func sendResp(w http.ResponseWriter, statusCode int, data interface{}, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := RestResp{
		Success: err == nil,
		Data:    data,
	}

	if err != nil {
		response.Error = err.Error()
	}

	json.NewEncoder(w).Encode(response)
}
