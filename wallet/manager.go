package wallet

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lokichain/loki-node/common/crypto"
	"github.com/lokichain/loki-node/config"
	prt "github.com/lokichain/loki-node/protocol"
	"github.com/tyler-smith/go-bip39"
)

var ErrNoWallet = errors.New("wallet not loaded")

type WalletManager struct {
	walletDir string
	network   string
	Wallet    *MnemonicWallet
}

func NewWalletManager(walletDir, network string) *WalletManager {
	return &WalletManager{
		walletDir: walletDir,
		network:   network,
	}
}

// CreateWallet 새 니모닉과 첫 번째 계정 생성
func (wm *WalletManager) CreateWallet() (*MnemonicWallet, error) {
	entropy, err := bip39.NewEntropy(mnemonicBits)
	if err != nil {
		return nil, fmt.Errorf("failed to generate entropy: %w", err)
	}
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return nil, fmt.Errorf("failed to generate mnemonic: %w", err)
	}
	return wm.RestoreWallet(mnemonic)
}

// RestoreWallet 니모닉으로 지갑 복구 (첫 번째 계정까지)
func (wm *WalletManager) RestoreWallet(mnemonic string) (*MnemonicWallet, error) {
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, fmt.Errorf("invalid mnemonic")
	}

	w := &MnemonicWallet{
		Mnemonic: mnemonic,
		Seed:     bip39.NewSeed(mnemonic, ""),
	}
	if _, err := wm.deriveAccount(w); err != nil {
		return nil, err
	}

	wm.Wallet = w
	return w, nil
}

// AddAccount 다음 인덱스 계정 유도
func (wm *WalletManager) AddAccount() (*Account, error) {
	if wm.Wallet == nil {
		return nil, ErrNoWallet
	}
	return wm.deriveAccount(wm.Wallet)
}

func (wm *WalletManager) deriveAccount(w *MnemonicWallet) (*Account, error) {
	index := len(w.Accounts)
	path := fmt.Sprintf("m/%d'/%d'/%d'/%d/%d", BIP44Purpose, BIP44CoinType, BIP44Account, BIP44Change, index)

	// 키 = KeyFromSeed(sha256(seed || path)). 계층적 유도(SLIP-10)가 아님
	h := sha256.New()
	h.Write(w.Seed)
	h.Write([]byte(path))
	sk, vk, err := crypto.KeyFromSeed(h.Sum(nil))
	if err != nil {
		return nil, fmt.Errorf("failed to derive account key: %w", err)
	}

	acc := &Account{
		Index:     index,
		Address:   prt.NewAddress(wm.network, vk),
		SignKey:   sk,
		VerifyKey: vk,
		Path:      path,
	}
	w.Accounts = append(w.Accounts, acc)
	return acc, nil
}

// SwitchAccount 현재 계정 변경
func (wm *WalletManager) SwitchAccount(index int) error {
	if wm.Wallet == nil {
		return ErrNoWallet
	}
	if index < 0 || index >= len(wm.Wallet.Accounts) {
		return fmt.Errorf("account index out of range: %d", index)
	}
	wm.Wallet.CurrentIndex = index
	return nil
}

func (wm *WalletManager) GetCurrentAccount() (*Account, error) {
	if wm.Wallet == nil || len(wm.Wallet.Accounts) == 0 {
		return nil, ErrNoWallet
	}
	return wm.Wallet.Accounts[wm.Wallet.CurrentIndex], nil
}

func (wm *WalletManager) GetMnemonic() (string, error) {
	if wm.Wallet == nil {
		return "", ErrNoWallet
	}
	return wm.Wallet.Mnemonic, nil
}

func (wm *WalletManager) walletPath() string {
	return filepath.Join(wm.walletDir, walletFileName)
}

// SaveWallet 지갑 파일 저장 (0600)
func (wm *WalletManager) SaveWallet() error {
	if wm.Wallet == nil {
		return ErrNoWallet
	}
	if err := os.MkdirAll(wm.walletDir, 0o700); err != nil {
		return fmt.Errorf("failed to create wallet dir: %w", err)
	}

	data, err := json.MarshalIndent(walletFile{
		Mnemonic:     wm.Wallet.Mnemonic,
		Network:      wm.network,
		AccountCount: len(wm.Wallet.Accounts),
		CurrentIndex: wm.Wallet.CurrentIndex,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode wallet: %w", err)
	}

	if err := os.WriteFile(wm.walletPath(), data, 0o600); err != nil {
		return fmt.Errorf("failed to write wallet file: %w", err)
	}
	return nil
}

// LoadWalletFile 저장된 니모닉에서 계정들을 다시 유도
func (wm *WalletManager) LoadWalletFile() error {
	data, err := os.ReadFile(wm.walletPath())
	if err != nil {
		return fmt.Errorf("failed to read wallet file: %w", err)
	}

	var file walletFile
	if err := json.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to decode wallet file: %w", err)
	}
	if file.Network != "" && file.Network != wm.network {
		return fmt.Errorf("wallet network mismatch: %s (node: %s)", file.Network, wm.network)
	}

	w, err := wm.RestoreWallet(file.Mnemonic)
	if err != nil {
		return err
	}
	for len(w.Accounts) < file.AccountCount {
		if _, err := wm.deriveAccount(w); err != nil {
			return err
		}
	}
	return wm.SwitchAccount(file.CurrentIndex)
}

func (wm *WalletManager) GetAccounts() ([]*Account, error) {
	if wm.Wallet == nil {
		return nil, ErrNoWallet
	}
	return wm.Wallet.Accounts, nil
}

// InitWallet 노드 지갑 로드. 지갑 파일이 없으면 nil을 반환한다.
func InitWallet(cfg *config.Config) (*WalletManager, error) {
	wm := NewWalletManager(cfg.Wallet.Path, cfg.Network.Tag)
	if _, err := os.Stat(wm.walletPath()); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err := wm.LoadWalletFile(); err != nil {
		return nil, err
	}
	return wm, nil
}
