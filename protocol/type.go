package protocol

import (
	"encoding/base64"
	"fmt"
)

const (
	HashLen      = 32
	SignatureLen = 64
	KeyLen       = 32
)

type Hash [HashLen]byte
type Signature [SignatureLen]byte

// SignKey is private key material. It must only ever be handed to a signer.
type SignKey [KeyLen]byte
type VerifyKey [KeyLen]byte

var b64 = base64.RawStdEncoding

// decodeFixed decodes unpadded base64 into dst, requiring an exact length match.
func decodeFixed(kind string, dst []byte, text []byte) error {
	buf := make([]byte, b64.DecodedLen(len(text)))
	n, err := b64.Decode(buf, text)
	if err != nil {
		return fmt.Errorf("invalid %s encoding: %w", kind, err)
	}
	if n != len(dst) {
		return fmt.Errorf("invalid %s length: %d (need %d bytes)", kind, n, len(dst))
	}
	copy(dst, buf[:n])
	return nil
}

func (h Hash) String() string { return b64.EncodeToString(h[:]) }

func (h Hash) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

func (h *Hash) UnmarshalText(text []byte) error {
	return decodeFixed("hash", h[:], text)
}

func (s Signature) String() string { return b64.EncodeToString(s[:]) }

func (s Signature) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Signature) UnmarshalText(text []byte) error {
	return decodeFixed("signature", s[:], text)
}

func (k VerifyKey) String() string { return b64.EncodeToString(k[:]) }

func (k VerifyKey) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *VerifyKey) UnmarshalText(text []byte) error {
	return decodeFixed("verify key", k[:], text)
}

// String never prints the key material.
func (k SignKey) String() string { return "SignKey(***)" }

// Encode returns the unpadded base64 form. Only wallet export paths should call it.
func (k SignKey) Encode() string { return b64.EncodeToString(k[:]) }

func (k *SignKey) Decode(s string) error {
	return decodeFixed("sign key", k[:], []byte(s))
}
