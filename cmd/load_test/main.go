package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lokichain/loki-node/common/crypto"
	"github.com/lokichain/loki-node/core"
	"github.com/lokichain/loki-node/wallet"
	"github.com/spf13/cobra"
)

type options struct {
	baseURL     string
	walletPath  string
	network     string
	hasher      string
	accounts    int
	txPerSender int
	amount      uint64
	denom       string
	gas         uint64
	startNonce  uint64
	concurrency int
	verbose     bool
}

type Stats struct {
	TotalTx   int64
	SuccessTx int64
	Rejected  int64
	FailedTx  int64
	StartTime time.Time
	EndTime   time.Time
}

func main() {
	var o options

	rootCmd := &cobra.Command{
		Use:   "loki-load-test",
		Short: "Submit signed transactions to a node concurrently",
		Long: `Loki Load Test - 지갑 계정들로 서명한 트랜잭션을 동시에 제출합니다.

계정은 제네시스 잔액이 있어야 승인됩니다. 노드는 잔액을 차감하지 않으므로
같은 계정으로 여러 건을 보내도 nonce만 다르면 각각 승인됩니다.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o)
		},
	}

	f := rootCmd.Flags()
	f.StringVar(&o.baseURL, "url", "http://localhost:8000/api/v1", "Base API URL")
	f.StringVar(&o.walletPath, "wallet", "./resource/wallet", "Wallet directory")
	f.StringVar(&o.network, "network", "lokichain", "Network tag (address prefix)")
	f.StringVar(&o.hasher, "hasher", crypto.HasherSHA256, "Hash algorithm the node uses")
	f.IntVar(&o.accounts, "accounts", 5, "Number of sender accounts")
	f.IntVar(&o.txPerSender, "txs", 20, "Transactions per sender")
	f.Uint64Var(&o.amount, "amount", 1, "Amount per transaction")
	f.StringVar(&o.denom, "denom", "LOKI", "Token denomination")
	f.Uint64Var(&o.gas, "gas", 1, "Gas per transaction")
	f.Uint64Var(&o.startNonce, "nonce", uint64(time.Now().Unix()), "First nonce (keeps reruns distinct)")
	f.IntVar(&o.concurrency, "concurrency", 8, "Number of concurrent workers")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "Verbose output")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}

func run(o options) error {
	fmt.Println("╔══════════════════════════════════════════════╗")
	fmt.Println("║         Loki Load Test Tool                  ║")
	fmt.Println("╚══════════════════════════════════════════════╝")
	fmt.Printf("\nConfiguration:\n")
	fmt.Printf("  Accounts:    %d\n", o.accounts)
	fmt.Printf("  Tx/Sender:   %d\n", o.txPerSender)
	fmt.Printf("  Amount:      %d %s (gas %d)\n", o.amount, o.denom, o.gas)
	fmt.Printf("  Concurrency: %d\n", o.concurrency)
	fmt.Printf("  API URL:     %s\n\n", o.baseURL)

	// 1. 지갑 로드 및 계정 유도
	fmt.Println("[1/3] Loading wallet...")
	wm := wallet.NewWalletManager(o.walletPath, o.network)
	if err := wm.LoadWalletFile(); err != nil {
		return fmt.Errorf("failed to load wallet at %s: %w", o.walletPath, err)
	}
	for {
		accounts, err := wm.GetAccounts()
		if err != nil {
			return err
		}
		if len(accounts) >= o.accounts {
			break
		}
		if _, err := wm.AddAccount(); err != nil {
			return err
		}
	}
	fmt.Printf("  ✓ %d accounts ready\n", o.accounts)

	// 2. 서명은 미리 순차적으로 (현재 계정 전환이 필요)
	fmt.Println("\n[2/3] Signing transactions...")
	hasher, err := crypto.NewHasher(o.hasher)
	if err != nil {
		return err
	}
	reqs, err := signAll(wm, hasher, o)
	if err != nil {
		return err
	}
	fmt.Printf("  ✓ Signed %d transactions\n", len(reqs))

	// 3. 동시 제출
	fmt.Printf("\n[3/3] Submitting with %d workers...\n", o.concurrency)
	stats := submitAll(o, reqs)

	printResults(stats)
	return nil
}

func signAll(wm *wallet.WalletManager, hasher core.Hasher, o options) ([]core.CreateTransactionRequest, error) {
	reqs := make([]core.CreateTransactionRequest, 0, o.accounts*o.txPerSender)
	for i := 0; i < o.accounts; i++ {
		if err := wm.SwitchAccount(i); err != nil {
			return nil, err
		}
		for n := 0; n < o.txPerSender; n++ {
			req, err := wm.SignRequest(core.TxBody{
				Data: core.AppData{
					App:       "bank",
					Operation: "transfer",
					Payload:   json.RawMessage(`{}`),
				},
				Amount: core.NewToken(o.amount, o.denom),
				Gas:    o.gas,
				Nonce:  o.startNonce + uint64(n),
			}, hasher, crypto.Ed25519Signer{})
			if err != nil {
				return nil, fmt.Errorf("failed to sign tx for account %d: %w", i, err)
			}
			reqs = append(reqs, req)
		}
	}
	return reqs, nil
}

func submitAll(o options, reqs []core.CreateTransactionRequest) *Stats {
	stats := &Stats{StartTime: time.Now()}
	client := &http.Client{Timeout: 10 * time.Second}

	jobs := make(chan core.CreateTransactionRequest, len(reqs))
	var wg sync.WaitGroup

	for i := 0; i < o.concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for req := range jobs {
				status, err := submit(client, o.baseURL, req)
				atomic.AddInt64(&stats.TotalTx, 1)
				switch {
				case err != nil:
					atomic.AddInt64(&stats.FailedTx, 1)
					if o.verbose {
						fmt.Printf("  [Worker %d] ✗ %v\n", workerID, err)
					}
				case status == http.StatusOK:
					atomic.AddInt64(&stats.SuccessTx, 1)
				case status == http.StatusBadRequest:
					atomic.AddInt64(&stats.Rejected, 1)
					if o.verbose {
						fmt.Printf("  [Worker %d] rejected nonce %d\n", workerID, req.Body.Nonce)
					}
				default:
					atomic.AddInt64(&stats.FailedTx, 1)
				}
			}
		}(i)
	}

	for _, req := range reqs {
		jobs <- req
	}
	close(jobs)

	wg.Wait()
	stats.EndTime = time.Now()
	return stats
}

func submit(client *http.Client, baseURL string, req core.CreateTransactionRequest) (int, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return 0, err
	}
	resp, err := client.Post(baseURL+"/tx", "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	return resp.StatusCode, nil
}

func printResults(stats *Stats) {
	fmt.Println("\n╔══════════════════════════════════════════════╗")
	fmt.Println("║              Load Test Results               ║")
	fmt.Println("╚══════════════════════════════════════════════╝")

	duration := stats.EndTime.Sub(stats.StartTime)
	fmt.Printf("\n  Total Transactions:   %d\n", stats.TotalTx)
	fmt.Printf("  Admitted:             %d\n", stats.SuccessTx)
	fmt.Printf("  Rejected:             %d\n", stats.Rejected)
	fmt.Printf("  Failed:               %d\n", stats.FailedTx)
	fmt.Printf("  Duration:             %v\n", duration.Round(time.Millisecond))
	if duration > 0 {
		fmt.Printf("  TPS (Transactions/s): %.2f\n", float64(stats.SuccessTx)/duration.Seconds())
	}
	if stats.TotalTx > 0 {
		fmt.Printf("  Success Rate:         %.1f%%\n", float64(stats.SuccessTx)/float64(stats.TotalTx)*100)
	}
	fmt.Println()
}
