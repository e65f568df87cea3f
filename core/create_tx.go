package core

import (
	"context"
	"time"

	"github.com/lokichain/loki-node/common/logger"
	"github.com/lokichain/loki-node/common/utils"
	prt "github.com/lokichain/loki-node/protocol"
)

// CreateTransactionRequest 클라이언트가 서명해서 보내는 요청
type CreateTransactionRequest struct {
	Body      TxBody        `json:"body"`
	Hash      prt.Hash      `json:"hash"`
	Signature prt.Signature `json:"signature"`
}

type CreateTransactionResult struct {
	Hash prt.Hash `json:"hash"`
}

// AdmitHook is called after a transaction enters the pending pool.
type AdmitHook func(entry TransactionWithState)

// CreateTransaction 트랜잭션 승인 파이프라인
//
// 상태가 없으므로 여러 고루틴에서 동시에 Execute 해도 된다.
// 모든 검사를 통과한 경우에만 멤풀에 정확히 한 건을 추가한다.
type CreateTransaction struct {
	hasher   Hasher
	signer   Signer
	router   AppRouter
	accounts AccountStore
	pool     PendingPool

	onAdmitted AdmitHook
	now        func() time.Time
}

func NewCreateTransaction(hasher Hasher, signer Signer, router AppRouter, accounts AccountStore, pool PendingPool) *CreateTransaction {
	return &CreateTransaction{
		hasher:   hasher,
		signer:   signer,
		router:   router,
		accounts: accounts,
		pool:     pool,
		now:      time.Now,
	}
}

// SetAdmitHook 승인 알림 콜백 설정 (WebSocket 등)
func (p *CreateTransaction) SetAdmitHook(hook AdmitHook) {
	p.onAdmitted = hook
}

func (p *CreateTransaction) Execute(ctx context.Context, req CreateTransactionRequest) (*CreateTransactionResult, error) {
	body := req.Body

	// 1. 해시 무결성
	if err := ValidateTxHash(p.hasher, body, req.Hash); err != nil {
		return nil, p.reject(req, err)
	}

	// 2. 서명 검증
	if err := ValidateTxSignature(p.signer, body.Sender, req.Hash, req.Signature); err != nil {
		return nil, p.reject(req, err)
	}

	// 3. 라우팅
	if err := ValidateRoute(p.router, body.Data); err != nil {
		return nil, p.reject(req, err)
	}

	// 4. 멤풀 중복
	if err := ValidateNotPending(p.pool, req.Hash); err != nil {
		return nil, p.reject(req, err)
	}

	// 5. 수수료
	if err := ValidateGas(body.Gas); err != nil {
		return nil, p.reject(req, err)
	}

	// 6. 금액
	if err := ValidateAmount(body.Amount); err != nil {
		return nil, p.reject(req, err)
	}

	// 7. 잔액 (스냅샷 읽기)
	account, err := p.accounts.Get(ctx, body.Sender)
	if err != nil {
		logger.Error("[CreateTx] failed to read sender account: ", err)
		return nil, wrapOther("failed to get sender account", err)
	}
	if err := ValidateAffordability(account, body.Amount); err != nil {
		return nil, p.reject(req, err)
	}

	// 8. 생성 및 삽입. 동시에 같은 트랜잭션이 들어온 경우 한 쪽만 성공한다.
	entry := NewPending(NewTransaction(req, p.now()))
	if !p.pool.AddIfAbsent(entry) {
		return nil, p.reject(req, NewInvalidData(FieldHash, ReasonTxAlreadyExist))
	}

	logger.Debug("[CreateTx] admitted tx: ", utils.ShortHash(req.Hash), " sender: ", body.Sender, " amount: ", body.Amount)

	if p.onAdmitted != nil {
		p.onAdmitted(entry)
	}

	return &CreateTransactionResult{Hash: req.Hash}, nil
}

func (p *CreateTransaction) reject(req CreateTransactionRequest, err error) error {
	logger.Debug("[CreateTx] rejected tx: ", utils.ShortHash(req.Hash), " reason: ", err)
	return err
}
