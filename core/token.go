package core

import (
	"errors"
	"fmt"
)

// ErrDenomMismatch is returned when two tokens of different denominations are compared.
var ErrDenomMismatch = errors.New("cannot compare tokens with different denominations")

// Token 금액과 단위
type Token struct {
	Amount uint64 `json:"amount"`
	Denom  string `json:"denom"`
}

func NewToken(amount uint64, denom string) Token {
	return Token{Amount: amount, Denom: denom}
}

func (t Token) IsZero() bool {
	return t.Amount == 0
}

func (t Token) SameDenom(other Token) bool {
	return t.Denom == other.Denom
}

// Compare returns -1, 0 or 1 ordering by amount. Tokens of different
// denominations have no order and yield ErrDenomMismatch.
func (t Token) Compare(other Token) (int, error) {
	if !t.SameDenom(other) {
		return 0, fmt.Errorf("%w: %s vs %s", ErrDenomMismatch, t.Denom, other.Denom)
	}
	switch {
	case t.Amount < other.Amount:
		return -1, nil
	case t.Amount > other.Amount:
		return 1, nil
	default:
		return 0, nil
	}
}

// MustCompare is Compare that panics on a denomination mismatch.
func (t Token) MustCompare(other Token) int {
	c, err := t.Compare(other)
	if err != nil {
		panic(err)
	}
	return c
}

func (t Token) String() string {
	return fmt.Sprintf("%d%s", t.Amount, t.Denom)
}
