package utils

import (
	prt "github.com/lokichain/loki-node/protocol"
)

// "acc:"
func GetAccountKey(address prt.Address) []byte {
	return []byte(prt.PrefixAccount + AddressToString(address))
}

// "tx:"
func GetTxHashKey(txHash prt.Hash) []byte {
	txHashStr := HashToString(txHash)
	txKey := []byte(prt.PrefixTxs + txHashStr)
	return txKey
}
