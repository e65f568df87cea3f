package core

import (
	prt "github.com/lokichain/loki-node/protocol"
)

// Account 주소별 잔액과 마지막 nonce. 계정 저장소만 수정한다.
type Account struct {
	Address prt.Address `json:"address"` // 계정 주소
	Nonce   uint64      `json:"nonce"`   // 마지막으로 사용한 nonce
	Balance Token       `json:"balance"` // 잔액
}

func NewAccount(address prt.Address, balance Token) *Account {
	return &Account{
		Address: address,
		Nonce:   0,
		Balance: balance,
	}
}
