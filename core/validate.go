package core

import (
	prt "github.com/lokichain/loki-node/protocol"
)

// 검증 실패 시 보고하는 필드 경로
const (
	FieldHash      = "hash"
	FieldSignature = "signature"
	FieldData      = "body.data"
	FieldPayload   = "body.data.payload"
	FieldGas       = "body.gas"
	FieldAmount    = "body.amount"
	FieldSender    = "body.sender"
)

const (
	ReasonHashInvalid       = "hash is not valid"
	ReasonSignatureInvalid  = "signature is not valid"
	ReasonRouteNotExist     = "app or operation does not exist"
	ReasonPayloadInvalid    = "payload is not valid json"
	ReasonTxAlreadyExist    = "tx is already exist"
	ReasonGasZero           = "gas must be greater than zero"
	ReasonAmountZero        = "amount must be greater than zero"
	ReasonNoFunds           = "no funds"
	ReasonDenomMismatch     = "denom mismatch"
	ReasonInsufficientFunds = "insufficient funds"
)

// ValidateTxHash 본문을 다시 해싱해 요청의 해시와 비교
func ValidateTxHash(hasher Hasher, body TxBody, claimed prt.Hash) error {
	data, err := body.CanonicalBytes()
	if err != nil {
		return NewInvalidData(FieldPayload, ReasonPayloadInvalid)
	}
	if !hasher.Verify(data, claimed) {
		return NewInvalidData(FieldHash, ReasonHashInvalid)
	}
	return nil
}

// ValidateTxSignature 해시 원본 바이트에 대한 발신자 서명 검증
func ValidateTxSignature(signer Signer, sender prt.Address, hash prt.Hash, sig prt.Signature) error {
	if !signer.Verify(hash[:], sig, sender.VerifyKey) {
		return NewInvalidData(FieldSignature, ReasonSignatureInvalid)
	}
	return nil
}

// ValidateRoute 대상 앱/operation 존재 여부
func ValidateRoute(router AppRouter, data AppData) error {
	if !router.IsExist(data.App, data.Operation) {
		return NewInvalidData(FieldData, ReasonRouteNotExist)
	}
	return nil
}

// ValidateNotPending 멤풀 중복 검사. 상태와 관계없이 상주 중이면 거부.
func ValidateNotPending(pool PendingPool, hash prt.Hash) error {
	if _, exists := pool.Get(hash); exists {
		return NewInvalidData(FieldHash, ReasonTxAlreadyExist)
	}
	return nil
}

func ValidateGas(gas uint64) error {
	if gas == 0 {
		return NewInvalidData(FieldGas, ReasonGasZero)
	}
	return nil
}

func ValidateAmount(amount Token) error {
	if amount.IsZero() {
		return NewInvalidData(FieldAmount, ReasonAmountZero)
	}
	return nil
}

// ValidateAffordability 저장된 잔액이 요청 금액 이상인지 확인 (차감하지 않음)
func ValidateAffordability(account *Account, amount Token) error {
	if account == nil {
		return NewInvalidData(FieldSender, ReasonNoFunds)
	}

	c, err := account.Balance.Compare(amount)
	if err != nil {
		return NewInvalidData(FieldAmount, ReasonDenomMismatch)
	}
	if c < 0 {
		return NewInvalidData(FieldSender, ReasonInsufficientFunds)
	}
	return nil
}
