package wallet

import (
	prt "github.com/lokichain/loki-node/protocol"
)

// MnemonicWallet 니모닉 기반 지갑. 계정 키는 니모닉에서 다시 유도할 수 있다.
//
// 계정 키는 Ed25519 KeyFromSeed(sha256(seed || path))로 만든다.
// SLIP-10/BIP-32 유도가 아니므로 같은 니모닉이라도 다른 BIP-44 지갑에서는
// 같은 키가 나오지 않는다.
type MnemonicWallet struct {
	Mnemonic     string     // 12/24 words
	Seed         []byte     // BIP-39 seed (64 bytes)
	Accounts     []*Account // 유도된 계정
	CurrentIndex int        // 현재 사용 중인 계정 인덱스
}

// Account 유도된 계정. Path는 BIP-44 표기를 빌린 유도 입력 문자열이다.
type Account struct {
	Index     int
	Address   prt.Address
	SignKey   prt.SignKey
	VerifyKey prt.VerifyKey
	Path      string // m/44'/7337'/0'/0/{index}, sha256 입력에만 쓰임
}

// walletFile 디스크 저장 형식. 키는 저장하지 않고 로드 시 다시 유도한다.
type walletFile struct {
	Mnemonic     string `json:"mnemonic"`
	Network      string `json:"network"`
	AccountCount int    `json:"account_count"`
	CurrentIndex int    `json:"current_index"`
}

// 경로 문자열 구성 요소
const (
	BIP44Purpose  = 44
	BIP44CoinType = 7337
	BIP44Account  = 0
	BIP44Change   = 0 // External

	walletFileName = "wallet.json"
	mnemonicBits   = 128 // 12 words
)
