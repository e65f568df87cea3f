package protocol

const (
	// Account related prefixes
	PrefixAccount = "acc:" // acc:Address = Account data

	// Transaction related prefixes
	PrefixTxs = "tx:" // tx:TxHash = Confirmed transaction data
)
