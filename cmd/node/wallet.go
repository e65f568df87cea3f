package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lokichain/loki-node/config"
	"github.com/lokichain/loki-node/wallet"
	"github.com/spf13/cobra"
)

var walletDir string

// loadCLIConfig 설정 파일이 없으면 기본값으로 동작
func loadCLIConfig() *config.Config {
	cfg, err := config.NewConfig(configFile)
	if err != nil {
		cfg = config.Default()
	}
	return cfg
}

func newWalletManager() (*wallet.WalletManager, *config.Config) {
	cfg := loadCLIConfig()
	dir := walletDir
	if dir == "" {
		dir = cfg.Wallet.Path
	}
	return wallet.NewWalletManager(dir, cfg.Network.Tag), cfg
}

func walletFilePath(cfg *config.Config) string {
	dir := walletDir
	if dir == "" {
		dir = cfg.Wallet.Path
	}
	return filepath.Join(dir, "wallet.json")
}

func walletCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wallet",
		Short: "Wallet management commands",
		Long:  `Commands for managing the mnemonic wallet and its accounts.`,
	}

	cmd.PersistentFlags().StringVarP(&walletDir, "wallet-dir", "w", "", "Wallet directory path (default: config Wallet.Path)")

	cmd.AddCommand(walletCreateCmd())
	cmd.AddCommand(walletRestoreCmd())
	cmd.AddCommand(walletListCmd())
	cmd.AddCommand(walletAddAccountCmd())
	cmd.AddCommand(walletShowMnemonicCmd())
	return cmd
}

func printAccount(acc *wallet.Account) {
	fmt.Printf("Address: %s\n", acc.Address)
	fmt.Printf("VerifyKey: %s\n", acc.VerifyKey)
	fmt.Printf("Path: %s\n", acc.Path)
}

func walletCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create a new wallet with mnemonic",
		RunE: func(cmd *cobra.Command, args []string) error {
			wm, cfg := newWalletManager()

			walletFile := walletFilePath(cfg)
			if _, err := os.Stat(walletFile); err == nil {
				return fmt.Errorf("wallet already exists at %s", walletFile)
			}

			w, err := wm.CreateWallet()
			if err != nil {
				return fmt.Errorf("failed to create wallet: %w", err)
			}
			if err := wm.SaveWallet(); err != nil {
				return fmt.Errorf("failed to save wallet: %w", err)
			}

			fmt.Println("=== New Wallet Created ===")
			fmt.Println("")
			fmt.Println("IMPORTANT: Write down your mnemonic phrase and keep it safe!")
			fmt.Println("If you lose it, you will lose access to your wallet forever.")
			fmt.Println("")
			fmt.Printf("Mnemonic: %s\n", w.Mnemonic)
			fmt.Println("")
			fmt.Println("=== First Account ===")
			printAccount(w.Accounts[0])
			fmt.Println("")
			fmt.Printf("Wallet saved to: %s\n", walletFile)
			return nil
		},
	}
}

func walletRestoreCmd() *cobra.Command {
	var mnemonic string

	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore wallet from mnemonic",
		RunE: func(cmd *cobra.Command, args []string) error {
			if mnemonic == "" {
				return fmt.Errorf("please provide a mnemonic phrase with --mnemonic flag")
			}

			wm, cfg := newWalletManager()
			walletFile := walletFilePath(cfg)
			if _, err := os.Stat(walletFile); err == nil {
				return fmt.Errorf("wallet already exists at %s, delete it first to restore", walletFile)
			}

			w, err := wm.RestoreWallet(mnemonic)
			if err != nil {
				return fmt.Errorf("failed to restore wallet: %w", err)
			}
			if err := wm.SaveWallet(); err != nil {
				return fmt.Errorf("failed to save wallet: %w", err)
			}

			fmt.Println("=== Wallet Restored ===")
			fmt.Println("")
			printAccount(w.Accounts[0])
			fmt.Println("")
			fmt.Printf("Wallet saved to: %s\n", walletFile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&mnemonic, "mnemonic", "m", "", "Mnemonic phrase to restore")
	return cmd
}

func walletListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"show"},
		Short:   "List all accounts in the wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			wm, _ := newWalletManager()
			if err := wm.LoadWalletFile(); err != nil {
				return fmt.Errorf("failed to load wallet (use 'wallet create' first): %w", err)
			}

			accounts, err := wm.GetAccounts()
			if err != nil {
				return err
			}

			fmt.Println("=== Wallet Accounts ===")
			fmt.Println("")
			for i, acc := range accounts {
				current := ""
				if i == wm.Wallet.CurrentIndex {
					current = " (current)"
				}
				fmt.Printf("[%d]%s\n", i, current)
				printAccount(acc)
				fmt.Println("")
			}
			return nil
		},
	}
}

func walletAddAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add-account",
		Short: "Add a new account to the wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			wm, _ := newWalletManager()
			if err := wm.LoadWalletFile(); err != nil {
				return fmt.Errorf("failed to load wallet (use 'wallet create' first): %w", err)
			}

			acc, err := wm.AddAccount()
			if err != nil {
				return fmt.Errorf("failed to add account: %w", err)
			}
			if err := wm.SaveWallet(); err != nil {
				return fmt.Errorf("failed to save wallet: %w", err)
			}

			fmt.Println("=== New Account Added ===")
			fmt.Println("")
			fmt.Printf("Index: %d\n", acc.Index)
			printAccount(acc)
			return nil
		},
	}
}

func walletShowMnemonicCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show-mnemonic",
		Short: "Show the wallet's mnemonic phrase",
		RunE: func(cmd *cobra.Command, args []string) error {
			wm, _ := newWalletManager()
			if err := wm.LoadWalletFile(); err != nil {
				return fmt.Errorf("failed to load wallet: %w", err)
			}

			mnemonic, err := wm.GetMnemonic()
			if err != nil {
				return err
			}

			fmt.Println("=== Wallet Mnemonic ===")
			fmt.Println("")
			fmt.Println("WARNING: Never share your mnemonic with anyone!")
			fmt.Println("")
			fmt.Printf("Mnemonic: %s\n", mnemonic)
			return nil
		},
	}
}
