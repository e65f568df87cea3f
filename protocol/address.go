package protocol

import (
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/bech32"
)

// Address identifies an account: a network tag plus the owner's verify key.
// It is comparable and safe to use as a map key.
type Address struct {
	Network   string
	VerifyKey VerifyKey
}

func NewAddress(network string, vk VerifyKey) Address {
	return Address{Network: network, VerifyKey: vk}
}

// bech32 문자열 최대 90자 = hrp + 구분자 1 + 키 52 + 체크섬 6
const maxNetworkLen = 90 - 1 - 52 - 6

// ValidateNetwork checks that tag can be used as the human readable part of an
// address and survives a decode unchanged: non-empty, lowercase, printable ASCII.
func ValidateNetwork(tag string) error {
	if tag == "" {
		return errors.New("network tag must not be empty")
	}
	if len(tag) > maxNetworkLen {
		return fmt.Errorf("network tag %q is longer than %d characters", tag, maxNetworkLen)
	}
	if tag != strings.ToLower(tag) {
		return fmt.Errorf("network tag %q must be lowercase", tag)
	}
	for _, c := range tag {
		if c < 33 || c > 126 {
			return fmt.Errorf("network tag %q contains invalid character %q", tag, c)
		}
	}
	return nil
}

// Encode returns the bech32m form, using the network tag as the human readable part.
func (a Address) Encode() (string, error) {
	if err := ValidateNetwork(a.Network); err != nil {
		return "", fmt.Errorf("failed to encode address: %w", err)
	}
	conv, err := bech32.ConvertBits(a.VerifyKey[:], 8, 5, true)
	if err != nil {
		return "", fmt.Errorf("failed to convert address bits: %w", err)
	}
	s, err := bech32.EncodeM(a.Network, conv)
	if err != nil {
		return "", fmt.Errorf("failed to encode address: %w", err)
	}
	return s, nil
}

func (a Address) String() string {
	s, err := a.Encode()
	if err != nil {
		return fmt.Sprintf("%s:<invalid>", a.Network)
	}
	return s
}

// ParseAddress decodes a bech32m address string.
func ParseAddress(s string) (Address, error) {
	hrp, data, version, err := bech32.DecodeGeneric(s)
	if err != nil {
		return Address{}, fmt.Errorf("invalid address %q: %w", s, err)
	}
	if version != bech32.VersionM {
		return Address{}, fmt.Errorf("invalid address %q: not bech32m", s)
	}
	raw, err := bech32.ConvertBits(data, 5, 8, false)
	if err != nil {
		return Address{}, fmt.Errorf("invalid address %q: %w", s, err)
	}
	if len(raw) != KeyLen {
		return Address{}, fmt.Errorf("invalid address length: %d (need %d bytes)", len(raw), KeyLen)
	}

	var addr Address
	addr.Network = hrp
	copy(addr.VerifyKey[:], raw)
	return addr, nil
}

// IsZero reports whether the address is unset.
func (a Address) IsZero() bool {
	return a == Address{}
}

// MarshalText encodes an unset address as an empty string.
func (a Address) MarshalText() ([]byte, error) {
	if a.IsZero() {
		return []byte{}, nil
	}
	s, err := a.Encode()
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*a = Address{}
		return nil
	}
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
