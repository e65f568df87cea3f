package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenEquality(t *testing.T) {
	token1 := NewToken(100, "LOKI")
	token2 := NewToken(100, "LOKI")
	token3 := NewToken(200, "LOKI")
	token4 := NewToken(100, "USDT")

	require.Equal(t, token1, token2)
	require.NotEqual(t, token1, token3)
	require.NotEqual(t, token1, token4)
}

func TestTokenCompare(t *testing.T) {
	small := NewToken(100, "LOKI")
	big := NewToken(200, "LOKI")

	c, err := small.Compare(big)
	require.NoError(t, err)
	require.Equal(t, -1, c)

	c, err = big.Compare(small)
	require.NoError(t, err)
	require.Equal(t, 1, c)

	c, err = small.Compare(NewToken(100, "LOKI"))
	require.NoError(t, err)
	require.Equal(t, 0, c)
}

func TestTokenCompareDenomMismatch(t *testing.T) {
	_, err := NewToken(100, "LOKI").Compare(NewToken(100, "USDT"))
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrDenomMismatch))

	require.Panics(t, func() {
		NewToken(100, "LOKI").MustCompare(NewToken(200, "USDT"))
	})
}

func TestTokenIsZero(t *testing.T) {
	require.True(t, NewToken(0, "LOKI").IsZero())
	require.False(t, NewToken(1, "LOKI").IsZero())
	require.Equal(t, "10LOKI", NewToken(10, "LOKI").String())
}
