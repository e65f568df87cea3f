package wallet

import (
	"fmt"

	"github.com/lokichain/loki-node/core"
)

// SignRequest 현재 계정으로 본문에 서명해 승인 요청을 만든다.
// body.Sender는 현재 계정 주소로 덮어쓴다.
func (wm *WalletManager) SignRequest(body core.TxBody, hasher core.Hasher, signer core.Signer) (core.CreateTransactionRequest, error) {
	acc, err := wm.GetCurrentAccount()
	if err != nil {
		return core.CreateTransactionRequest{}, err
	}
	body.Sender = acc.Address

	data, err := body.CanonicalBytes()
	if err != nil {
		return core.CreateTransactionRequest{}, fmt.Errorf("failed to serialize tx body: %w", err)
	}
	hash := hasher.Hash(data)

	return core.CreateTransactionRequest{
		Body:      body,
		Hash:      hash,
		Signature: signer.Sign(hash[:], acc.SignKey),
	}, nil
}
