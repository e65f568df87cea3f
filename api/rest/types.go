package rest

import (
	"encoding/json"

	"github.com/lokichain/loki-node/core"
)

// General response structure
type RestResp struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// InvalidDataResp 검증 실패 필드 목록
type InvalidDataResp struct {
	Fields map[string]string `json:"fields"`
}

type SubmitTxResp struct {
	Hash string `json:"hash"`
}

type StatusResp struct {
	Network     string `json:"network"`
	Denom       string `json:"denom"`
	Hasher      string `json:"hasher"`
	MempoolSize int    `json:"mempoolSize"`
	WSClients   int    `json:"wsClients"`
}

type MempoolResp struct {
	Count        int                         `json:"count"`
	Transactions []core.TransactionWithState `json:"transactions"`
}

// SendTxReq 노드 지갑으로 서명해서 제출
type SendTxReq struct {
	AccountIndex int             `json:"accountIndex"`
	App          string          `json:"app"`
	Operation    string          `json:"operation"`
	Payload      json.RawMessage `json:"payload"`
	Amount       uint64          `json:"amount"`
	Denom        string          `json:"denom"` // 비어 있으면 체인 기본 단위
	Gas          uint64          `json:"gas"`
	Nonce        uint64          `json:"nonce"`
}

type WalletAccountResp struct {
	Index   int    `json:"index"`
	Address string `json:"address"`
	Path    string `json:"path"`
}

// SettleTxReq 처리 결과 보고 ("confirmed" 또는 "reverted")
type SettleTxReq struct {
	State core.TxState `json:"state"`
}
