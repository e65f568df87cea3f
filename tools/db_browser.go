package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/lokichain/loki-node/common/utils"
	prt "github.com/lokichain/loki-node/protocol"
	"github.com/lokichain/loki-node/storage"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const maxEntries = 50

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run tools/db_browser.go <db_path> [command]")
		fmt.Println("Commands:")
		fmt.Println("  accounts          - List all accounts")
		fmt.Println("  txs               - List all stored transactions")
		fmt.Println("  account <address> - Show specific account")
		fmt.Println("  tx <hash>         - Show specific transaction")
		fmt.Println("  all               - Show all data")
		return
	}

	dbPath := os.Args[1]
	command := "accounts"
	if len(os.Args) > 2 {
		command = os.Args[2]
	}

	db, err := leveldb.OpenFile(dbPath, &opt.Options{ReadOnly: true})
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Printf("Database opened: %s\n\n", dbPath)

	switch command {
	case "accounts":
		listPrefix(db, "ACCOUNTS", prt.PrefixAccount)
	case "txs":
		listPrefix(db, "TRANSACTIONS", prt.PrefixTxs)
	case "account":
		if len(os.Args) < 4 {
			fmt.Println("Usage: go run tools/db_browser.go <db_path> account <address>")
			return
		}
		showAccount(db, os.Args[3])
	case "tx":
		if len(os.Args) < 4 {
			fmt.Println("Usage: go run tools/db_browser.go <db_path> tx <hash>")
			return
		}
		showTransaction(db, os.Args[3])
	case "all":
		showAllData(db)
	default:
		fmt.Printf("Unknown command: %s\n", command)
	}
}

func listPrefix(db *leveldb.DB, title, prefix string) {
	fmt.Printf("=== %s ===\n", title)

	iter := db.NewIterator(util.BytesPrefix([]byte(prefix)), nil)
	defer iter.Release()

	count := 0
	for iter.Next() {
		fmt.Printf("%s (%d bytes)\n", string(iter.Key()[len(prefix):]), len(iter.Value()))
		count++
	}
	if err := iter.Error(); err != nil {
		fmt.Printf("Iteration failed: %v\n", err)
	}
	fmt.Printf("Total: %d\n\n", count)
}

func showAccount(db *leveldb.DB, addrStr string) {
	fmt.Printf("=== ACCOUNT %s ===\n", addrStr)

	addr, err := utils.StringToAddress(addrStr)
	if err != nil {
		fmt.Printf("Invalid address: %v\n", err)
		return
	}

	acc, err := storage.NewAccountStore(db).Get(context.Background(), addr)
	if err != nil {
		fmt.Printf("Read failed: %v\n", err)
		return
	}
	if acc == nil {
		fmt.Println("Account not found")
		return
	}
	printJSON(acc)
}

func showTransaction(db *leveldb.DB, hashStr string) {
	fmt.Printf("=== TRANSACTION %s ===\n", hashStr)

	hash, err := utils.StringToHash(hashStr)
	if err != nil {
		fmt.Printf("Invalid transaction hash: %v\n", err)
		return
	}

	tx, err := storage.NewTxStore(db, 0).Get(context.Background(), hash)
	if err != nil {
		fmt.Printf("Read failed: %v\n", err)
		return
	}
	if tx == nil {
		fmt.Println("Transaction not found")
		return
	}
	printJSON(tx)
}

func showAllData(db *leveldb.DB) {
	fmt.Println("=== ALL DATABASE DATA ===")

	iter := db.NewIterator(nil, nil)
	defer iter.Release()

	count := 0
	for iter.Next() {
		value := iter.Value()

		fmt.Printf("[%d] Key: %s\n", count, string(iter.Key()))
		fmt.Printf("     Value Size: %d bytes\n", len(value))
		if len(value) <= 200 {
			fmt.Printf("     Value: %s\n", string(value))
		}
		fmt.Println()

		count++
		if count >= maxEntries {
			fmt.Printf("... (showing first %d entries)\n", maxEntries)
			break
		}
	}

	fmt.Printf("Total entries: %d\n", count)
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Encode failed: %v\n", err)
		return
	}
	fmt.Println(string(out))
}
