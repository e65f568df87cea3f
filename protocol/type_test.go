package protocol

import (
	"crypto/rand"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func randomHash(t *testing.T) Hash {
	var h Hash
	_, err := rand.Read(h[:])
	require.NoError(t, err)
	return h
}

func TestHashRoundTrip(t *testing.T) {
	h := randomHash(t)

	data, err := json.Marshal(h)
	require.NoError(t, err)
	require.False(t, strings.Contains(string(data), "="), "hash must be unpadded")

	var decoded Hash
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, h, decoded)
	require.NotEqual(t, randomHash(t), decoded)
}

func TestSignatureRoundTrip(t *testing.T) {
	var sig Signature
	_, err := rand.Read(sig[:])
	require.NoError(t, err)

	text, err := sig.MarshalText()
	require.NoError(t, err)

	var decoded Signature
	require.NoError(t, decoded.UnmarshalText(text))
	require.Equal(t, sig, decoded)
}

func TestDecodeRejectsBadInput(t *testing.T) {
	var h Hash
	require.Error(t, h.UnmarshalText([]byte("not base64!!")))

	// valid base64, wrong length
	short := b64.EncodeToString([]byte{1, 2, 3})
	require.Error(t, h.UnmarshalText([]byte(short)))

	var sig Signature
	require.Error(t, json.Unmarshal([]byte(`"`+b64.EncodeToString(make([]byte, 32))+`"`), &sig))

	var vk VerifyKey
	require.Error(t, vk.UnmarshalText([]byte("")))
}

func TestSignKeyNotPrinted(t *testing.T) {
	var sk SignKey
	sk[0] = 0xAB
	require.NotContains(t, sk.String(), sk.Encode())

	var decoded SignKey
	require.NoError(t, decoded.Decode(sk.Encode()))
	require.Equal(t, sk, decoded)
}

func TestAddressRoundTrip(t *testing.T) {
	var vk VerifyKey
	_, err := rand.Read(vk[:])
	require.NoError(t, err)
	addr := NewAddress("lokichain", vk)

	s, err := addr.Encode()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(s, "lokichain1"))

	parsed, err := ParseAddress(s)
	require.NoError(t, err)
	require.Equal(t, addr, parsed)

	data, err := json.Marshal(addr)
	require.NoError(t, err)
	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, addr, decoded)
}

func TestAddressEquality(t *testing.T) {
	vk := VerifyKey{1}
	a := NewAddress("lokichain", vk)
	b := NewAddress("lokichain", vk)
	c := NewAddress("testnet", vk)

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)

	set := map[Address]int{a: 1}
	_, ok := set[b]
	require.True(t, ok)
	_, ok = set[c]
	require.False(t, ok)
}

func TestParseAddressRejectsGarbage(t *testing.T) {
	_, err := ParseAddress("lokichain1qqqq")
	require.Error(t, err)

	s, err := NewAddress("lokichain", VerifyKey{7}).Encode()
	require.NoError(t, err)
	// flip the last checksum character
	last := s[len(s)-1]
	repl := byte('q')
	if last == 'q' {
		repl = 'p'
	}
	_, err = ParseAddress(s[:len(s)-1] + string(repl))
	require.Error(t, err)
}

func TestZeroAddressText(t *testing.T) {
	var zero Address
	require.True(t, zero.IsZero())

	data, err := json.Marshal(struct {
		Sender Address `json:"sender"`
	}{})
	require.NoError(t, err)
	require.JSONEq(t, `{"sender":""}`, string(data))

	var back Address
	require.NoError(t, back.UnmarshalText(nil))
	require.Equal(t, zero, back)
	require.False(t, NewAddress("lokichain", VerifyKey{1}).IsZero())
}

func TestAddressEncodeRejectsUnstableNetwork(t *testing.T) {
	vk := VerifyKey{1, 2, 3}

	// 대문자 hrp는 디코딩 시 소문자가 되어 원래 값과 달라진다
	_, err := NewAddress("LOKI", vk).Encode()
	require.Error(t, err)
	_, err = NewAddress("", vk).Encode()
	require.Error(t, err)
	_, err = json.Marshal(NewAddress("", vk))
	require.Error(t, err)

	require.Error(t, ValidateNetwork(strings.Repeat("a", maxNetworkLen+1)))
	require.Error(t, ValidateNetwork("loki chain"))
	require.NoError(t, ValidateNetwork(strings.Repeat("a", maxNetworkLen)))
}

func TestAddressRoundTripLongestNetwork(t *testing.T) {
	addr := NewAddress(strings.Repeat("z", maxNetworkLen), VerifyKey{0xff})

	s, err := addr.Encode()
	require.NoError(t, err)
	parsed, err := ParseAddress(s)
	require.NoError(t, err)
	require.Equal(t, addr, parsed)
}
