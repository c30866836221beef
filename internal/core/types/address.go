package types

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// Address is a 256-bit on-ledger identity: accounts, mints and derived
// entry addresses all share this shape.
type Address [32]byte

// AddressLen is the size of an Address in bytes.
const AddressLen = 32

// ErrBadAddress is returned when parsing an address fails.
var ErrBadAddress = errors.New("invalid address")

// ZeroAddress is the all-zero address, used as the "unset" value.
var ZeroAddress Address

// ParseAddress decodes a 64-character hex string into an Address.
func ParseAddress(s string) (Address, error) {
	var a Address
	if len(s) != AddressLen*2 {
		return a, fmt.Errorf("%w: want %d hex chars, got %d", ErrBadAddress, AddressLen*2, len(s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return a, fmt.Errorf("%w: %v", ErrBadAddress, err)
	}
	copy(a[:], raw)
	return a, nil
}

// MustParseAddress is like ParseAddress but panics on error.
// Intended for constants and tests.
func MustParseAddress(s string) Address {
	a, err := ParseAddress(s)
	if err != nil {
		panic(err)
	}
	return a
}

// AddressFromBytes copies b into an Address. b must be exactly 32 bytes.
func AddressFromBytes(b []byte) (Address, error) {
	var a Address
	if len(b) != AddressLen {
		return a, fmt.Errorf("%w: want %d bytes, got %d", ErrBadAddress, AddressLen, len(b))
	}
	copy(a[:], b)
	return a, nil
}

// String returns the lowercase hex encoding of the address.
func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

// IsZero reports whether the address is the all-zero value.
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// MarshalText implements encoding.TextMarshaler (hex form).
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := ParseAddress(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
