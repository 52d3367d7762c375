package types

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
)

// AddressSize is the size of an account address in bytes.
const AddressSize = 20

// Address is a 160-bit account identifier.
// The zero address is reserved and never owns shares or funds.
type Address [AddressSize]byte

// ZeroAddress is the reserved all-zero address.
var ZeroAddress Address

// ParseAddress decodes a 0x-prefixed 40-character hex string.
func ParseAddress(s string) (Address, error) {
	var a Address
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return a, fmt.Errorf("address %q missing 0x prefix", s)
	}
	raw, err := hex.DecodeString(s[2:])
	if err != nil {
		return a, fmt.Errorf("address %q is not valid hex: %w", s, err)
	}
	if len(raw) != AddressSize {
		return a, fmt.Errorf("address %q has %d bytes, want %d", s, len(raw), AddressSize)
	}
	copy(a[:], raw)
	return a, nil
}

// AddressFromBytes creates an address from a byte slice.
// Returns the zero address if the slice is not exactly 20 bytes.
func AddressFromBytes(b []byte) Address {
	var a Address
	if len(b) == AddressSize {
		copy(a[:], b)
	}
	return a
}

func (a Address) Bytes() []byte {
	out := make([]byte, AddressSize)
	copy(out, a[:])
	return out
}

func (a Address) IsZero() bool {
	return a == ZeroAddress
}

func (a Address) String() string {
	return "0x" + hex.EncodeToString(a[:])
}

// Compare orders addresses lexicographically.
func (a Address) Compare(other Address) int {
	return bytes.Compare(a[:], other[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
