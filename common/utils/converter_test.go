package utils

import (
	"testing"

	prt "github.com/lokichain/loki-node/protocol"
	"github.com/stretchr/testify/require"
)

func TestHashStringRoundTrip(t *testing.T) {
	hash := prt.Hash{0x1, 0x2, 0x3}
	decoded, err := StringToHash(HashToString(hash))
	require.NoError(t, err)
	require.Equal(t, hash, decoded)
	require.Len(t, ShortHash(hash), 12)

	_, err = StringToHash("zz")
	require.Error(t, err)
}

func TestSerializeData(t *testing.T) {
	type sample struct {
		Name  string
		Value uint64
	}
	in := sample{Name: "loki", Value: 7}

	data, err := SerializeData(in)
	require.NoError(t, err)

	var out sample
	require.NoError(t, DeserializeData(data, &out))
	require.Equal(t, in, out)

	require.Error(t, DeserializeData([]byte("{"), &out))
}

func TestKeysArePrefixed(t *testing.T) {
	addr := prt.NewAddress("lokichain", prt.VerifyKey{1})
	require.Equal(t, "acc:"+addr.String(), string(GetAccountKey(addr)))
	require.Equal(t, "tx:"+prt.Hash{}.String(), string(GetTxHashKey(prt.Hash{})))
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/loki")
	require.Equal(t, "/home/loki/.loki/db", ExpandHome("~/.loki/db"))
	require.Equal(t, "/var/db", ExpandHome("/var/db"))
}
