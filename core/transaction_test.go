package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	prt "github.com/lokichain/loki-node/protocol"
)

func TestCanonicalBytesCompactsPayload(t *testing.T) {
	sender := prt.NewAddress("loki", prt.VerifyKey{0x01})
	spaced := TxBody{
		Sender: sender,
		Data:   AppData{App: "bank", Operation: "transfer", Payload: json.RawMessage("{ \"to\" :  1 }")},
		Amount: NewToken(1, "LOKI"),
		Gas:    2,
		Nonce:  3,
	}
	compact := spaced
	compact.Data.Payload = json.RawMessage(`{"to":1}`)

	a, err := spaced.CanonicalBytes()
	require.NoError(t, err)
	b, err := compact.CanonicalBytes()
	require.NoError(t, err)
	require.Equal(t, a, b)

	want := `{"sender":"` + sender.String() + `","data":{"app":"bank","operation":"transfer","payload":{"to":1}},` +
		`"amount":{"amount":1,"denom":"LOKI"},"gas":2,"nonce":3}`
	require.JSONEq(t, want, string(a))
	require.Equal(t, want, string(a))
}

func TestCanonicalBytesEmptyPayload(t *testing.T) {
	body := TxBody{Data: AppData{App: "bank", Operation: "transfer"}}
	data, err := body.CanonicalBytes()
	require.NoError(t, err)
	require.Contains(t, string(data), `"payload":null`)
}

func TestNewTransaction(t *testing.T) {
	req := CreateTransactionRequest{
		Body: TxBody{
			Sender: prt.NewAddress("loki", prt.VerifyKey{0x01}),
			Data:   AppData{App: "bank", Operation: "transfer"},
			Amount: NewToken(10, "LOKI"),
			Gas:    1,
			Nonce:  9,
		},
		Hash:      prt.Hash{0xaa},
		Signature: prt.Signature{0xbb},
	}
	now := time.Unix(1700000000, 0)

	tx := NewTransaction(req, now)
	require.Equal(t, req.Hash, tx.Hash)
	require.Equal(t, req.Signature, tx.Signature)
	require.Equal(t, int64(1700000000), tx.Timestamp)
	require.Equal(t, req.Body, tx.Body())

	entry := NewPending(tx)
	require.Equal(t, PendingConfirmation, entry.State)
}

func TestTxStateText(t *testing.T) {
	data, err := json.Marshal(TransactionWithState{State: Reverted})
	require.NoError(t, err)
	require.Contains(t, string(data), `"state":"reverted"`)

	var s TxState
	require.NoError(t, s.UnmarshalText([]byte("confirmed")))
	require.Equal(t, Confirmed, s)
	require.Error(t, s.UnmarshalText([]byte("lost")))
	require.Equal(t, "pending_confirmation", PendingConfirmation.String())
}
