package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStaticRouter(t *testing.T) {
	router := NewStaticRouter(map[string][]string{
		"bank":  {"transfer", "burn"},
		"names": {"register"},
	})

	require.True(t, router.IsExist("bank", "transfer"))
	require.True(t, router.IsExist("bank", "burn"))
	require.True(t, router.IsExist("names", "register"))
	require.False(t, router.IsExist("bank", "register"))
	require.False(t, router.IsExist("dex", "swap"))
	require.False(t, router.IsExist("", ""))
}

func TestValidateAffordability(t *testing.T) {
	acc := &Account{Balance: NewToken(50, "LOKI")}

	require.NoError(t, ValidateAffordability(acc, NewToken(50, "LOKI")))

	err := ValidateAffordability(nil, NewToken(1, "LOKI"))
	require.Equal(t, map[string]string{FieldSender: ReasonNoFunds}, err.(*InvalidDataError).Fields)

	err = ValidateAffordability(acc, NewToken(1, "USDT"))
	require.Equal(t, map[string]string{FieldAmount: ReasonDenomMismatch}, err.(*InvalidDataError).Fields)

	err = ValidateAffordability(acc, NewToken(51, "LOKI"))
	require.Equal(t, map[string]string{FieldSender: ReasonInsufficientFunds}, err.(*InvalidDataError).Fields)
}
