package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/lokichain/loki-node/common/crypto"
	"github.com/lokichain/loki-node/core"
	"github.com/spf13/cobra"
)

type txSignFlags struct {
	account   int
	app       string
	operation string
	payload   string
	amount    uint64
	denom     string
	gas       uint64
	nonce     uint64
}

func txCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Transaction commands",
	}
	cmd.PersistentFlags().StringVarP(&walletDir, "wallet-dir", "w", "", "Wallet directory path (default: config Wallet.Path)")
	cmd.AddCommand(txSignCmd())
	return cmd
}

// txSignCmd POST /api/v1/tx 로 보낼 서명된 요청을 출력
func txSignCmd() *cobra.Command {
	var f txSignFlags

	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a transaction with the wallet and print the request JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			wm, cfg := newWalletManager()
			if err := wm.LoadWalletFile(); err != nil {
				return fmt.Errorf("failed to load wallet: %w", err)
			}
			if err := wm.SwitchAccount(f.account); err != nil {
				return err
			}

			hasher, err := crypto.NewHasher(cfg.Crypto.Hasher)
			if err != nil {
				return err
			}
			if f.denom == "" {
				f.denom = cfg.Network.Denom
			}

			req, err := wm.SignRequest(core.TxBody{
				Data: core.AppData{
					App:       f.app,
					Operation: f.operation,
					Payload:   json.RawMessage(f.payload),
				},
				Amount: core.NewToken(f.amount, f.denom),
				Gas:    f.gas,
				Nonce:  f.nonce,
			}, hasher, crypto.Ed25519Signer{})
			if err != nil {
				return err
			}
			return writeJSON(os.Stdout, req)
		},
	}

	cmd.Flags().IntVar(&f.account, "account", 0, "Wallet account index")
	cmd.Flags().StringVar(&f.app, "app", "bank", "Target app")
	cmd.Flags().StringVar(&f.operation, "op", "transfer", "Target operation")
	cmd.Flags().StringVar(&f.payload, "payload", "{}", "Operation payload (JSON)")
	cmd.Flags().Uint64Var(&f.amount, "amount", 0, "Amount to send")
	cmd.Flags().StringVar(&f.denom, "denom", "", "Token denom (default: config Network.Denom)")
	cmd.Flags().Uint64Var(&f.gas, "gas", 1, "Gas limit")
	cmd.Flags().Uint64Var(&f.nonce, "nonce", 0, "Sender nonce")
	return cmd
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
