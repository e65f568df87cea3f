package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	prt "github.com/lokichain/loki-node/protocol"
)

// AppData 트랜잭션 payload가 향하는 앱과 operation
//
// ex: {"app":"bank","operation":"transfer","payload":{"receiver":"lokichain1..."}}
type AppData struct {
	App       string          `json:"app"`
	Operation string          `json:"operation"`
	Payload   json.RawMessage `json:"payload"`
}

// TxBody 해시 대상이 되는 요청 본문
type TxBody struct {
	Sender prt.Address `json:"sender"`
	Data   AppData     `json:"data"`
	Amount Token       `json:"amount"`
	Gas    uint64      `json:"gas"`
	Nonce  uint64      `json:"nonce"`
}

// CanonicalBytes returns the byte form the transaction hash commits to:
// JSON in declared field order with a compacted payload.
func (b TxBody) CanonicalBytes() ([]byte, error) {
	body := b
	if len(b.Data.Payload) > 0 {
		var buf bytes.Buffer
		if err := json.Compact(&buf, b.Data.Payload); err != nil {
			return nil, fmt.Errorf("invalid payload: %w", err)
		}
		body.Data.Payload = buf.Bytes()
	}
	return json.Marshal(body)
}

// TxState 트랜잭션 생명주기
type TxState uint8

const (
	PendingConfirmation TxState = iota
	Confirmed
	Reverted
)

var txStateNames = map[TxState]string{
	PendingConfirmation: "pending_confirmation",
	Confirmed:           "confirmed",
	Reverted:            "reverted",
}

func (s TxState) String() string {
	if name, ok := txStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("TxState(%d)", uint8(s))
}

func (s TxState) MarshalText() ([]byte, error) {
	name, ok := txStateNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown tx state: %d", uint8(s))
	}
	return []byte(name), nil
}

func (s *TxState) UnmarshalText(text []byte) error {
	for state, name := range txStateNames {
		if name == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown tx state: %q", string(text))
}

// Transaction 서명된 트랜잭션. 생성 후 수정하지 않는다.
type Transaction struct {
	Hash      prt.Hash      `json:"hash"`      // 서명을 제외한 본문 해시
	Sender    prt.Address   `json:"sender"`    // 발신자
	Data      AppData       `json:"data"`      // 대상 앱 메시지
	Amount    Token         `json:"amount"`    // 전송 금액
	Timestamp int64         `json:"timestamp"` // 생성 시간 (unix)
	Gas       uint64        `json:"gas"`       // 수수료 한도
	Nonce     uint64        `json:"nonce"`     // 발신자 트랜잭션 번호
	Signature prt.Signature `json:"signature"` // 해시에 대한 서명
}

// NewTransaction builds a transaction from an already validated request.
func NewTransaction(req CreateTransactionRequest, now time.Time) Transaction {
	return Transaction{
		Hash:      req.Hash,
		Sender:    req.Body.Sender,
		Data:      req.Body.Data,
		Amount:    req.Body.Amount,
		Timestamp: now.Unix(),
		Gas:       req.Body.Gas,
		Nonce:     req.Body.Nonce,
		Signature: req.Signature,
	}
}

// Body returns the hashed part of the transaction.
func (tx Transaction) Body() TxBody {
	return TxBody{
		Sender: tx.Sender,
		Data:   tx.Data,
		Amount: tx.Amount,
		Gas:    tx.Gas,
		Nonce:  tx.Nonce,
	}
}

// TransactionWithState 멤풀에 저장되는 단위
type TransactionWithState struct {
	Transaction Transaction `json:"transaction"`
	State       TxState     `json:"state"`
}

func NewPending(tx Transaction) TransactionWithState {
	return TransactionWithState{Transaction: tx, State: PendingConfirmation}
}
