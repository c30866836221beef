// Package pda derives deterministic program addresses for ledger entries.
//
// Every persistent record lives at an address computed from a set of seed
// byte-strings plus the program's own identity. Derived addresses are
// guaranteed to be off-curve: they can never correspond to a signing key,
// so only the program itself can act as their authority.
package pda

import (
	"encoding/binary"
	"errors"

	"filippo.io/edwards25519"

	"github.com/slopestore/slopestored/internal/core/types"
	"github.com/slopestore/slopestored/internal/crypto"
)

// Seed suffixes distinguishing the entry families sharing a mint.
const (
	SeedRecord  = "nft_record_account"
	SeedCustody = "nft_account"
	SeedSold    = "sold_record"
)

// derivedMarker is appended to every derivation input so that derived
// addresses cannot collide with hashes computed for other purposes.
const derivedMarker = "slopestore_derived_address"

// DefaultProgramID is the built-in program identity used when no override
// is configured.
var DefaultProgramID = types.MustParseAddress(
	"980007a5df9a7b3617926056a87a01e9607daba9950ce937595ba4957667b538")

// ErrBumpExhausted is returned when no bump in [0,255] yields an
// off-curve address for the given seeds.
var ErrBumpExhausted = errors.New("pda: no valid bump for seeds")

// ErrOnCurve is returned when a caller-supplied bump produces an address
// that decodes as a valid curve point and is therefore signable.
var ErrOnCurve = errors.New("pda: derived address is on curve")

// EntryType identifies the kind of ledger entry a keylet points at.
type EntryType uint8

const (
	TypeAccountRoot EntryType = iota + 1
	TypeStore
	TypeRecord
	TypeCustody
	TypeSold
	TypeToken
)

// Keylet addresses a ledger entry: an entry type plus a 256-bit key.
type Keylet struct {
	Type EntryType
	Key  types.Address
}

// candidate hashes the seeds, bump, program id and marker into an address.
func candidate(program types.Address, bump uint8, seeds ...[]byte) types.Address {
	inputs := make([][]byte, 0, len(seeds)+3)
	inputs = append(inputs, seeds...)
	inputs = append(inputs, []byte{bump}, program[:], []byte(derivedMarker))
	return types.Address(crypto.Sha512Half(inputs...))
}

// offCurve reports whether the address does not decode as an edwards25519
// point. Off-curve addresses have no corresponding private key.
func offCurve(a types.Address) bool {
	_, err := new(edwards25519.Point).SetBytes(a[:])
	return err != nil
}

// Derive computes the canonical derived address for the seeds, retrying
// bump values from 255 down to 0 until the result is off-curve.
func Derive(program types.Address, seeds ...[]byte) (types.Address, uint8, error) {
	for bump := 255; bump >= 0; bump-- {
		addr := candidate(program, uint8(bump), seeds...)
		if offCurve(addr) {
			return addr, uint8(bump), nil
		}
	}
	return types.ZeroAddress, 0, ErrBumpExhausted
}

// DeriveWithBump recomputes the address for a caller-supplied bump.
// It fails with ErrOnCurve when the candidate is signable.
func DeriveWithBump(program types.Address, bump uint8, seeds ...[]byte) (types.Address, error) {
	addr := candidate(program, bump, seeds...)
	if !offCurve(addr) {
		return types.ZeroAddress, ErrOnCurve
	}
	return addr, nil
}

// Account returns the keylet for a native account root. Account roots are
// keyed by the identity itself, not by derivation.
func Account(addr types.Address) Keylet {
	return Keylet{Type: TypeAccountRoot, Key: addr}
}

// Store returns the canonical keylet and bump for a named store.
func Store(program types.Address, name string) (Keylet, uint8, error) {
	addr, bump, err := Derive(program, []byte(name))
	if err != nil {
		return Keylet{}, 0, err
	}
	return Keylet{Type: TypeStore, Key: addr}, bump, nil
}

// Record returns the canonical keylet and bump for a mint's escrow record.
func Record(program, mint types.Address) (Keylet, uint8, error) {
	addr, bump, err := Derive(program, mint[:], []byte(SeedRecord))
	if err != nil {
		return Keylet{}, 0, err
	}
	return Keylet{Type: TypeRecord, Key: addr}, bump, nil
}

// Custody returns the canonical keylet and bump for a mint's custody
// token account.
func Custody(program, mint types.Address) (Keylet, uint8, error) {
	addr, bump, err := Derive(program, mint[:], []byte(SeedCustody))
	if err != nil {
		return Keylet{}, 0, err
	}
	return Keylet{Type: TypeCustody, Key: addr}, bump, nil
}

// Holding returns the keylet of an identity's token account for a mint.
// Holdings are keyed by a plain namespace hash: they belong to the owner,
// not the program, so no bump search is involved.
func Holding(owner, mint types.Address) Keylet {
	key := crypto.Sha512Half([]byte{'t'}, owner[:], mint[:])
	return Keylet{Type: TypeToken, Key: types.Address(key)}
}

// Sold returns the canonical keylet for the sold record at the given sale
// index. The index is encoded as 4 little-endian bytes.
func Sold(program, mint types.Address, index uint32) (Keylet, uint8, error) {
	indexBytes := make([]byte, 4)
	binary.LittleEndian.PutUint32(indexBytes, index)
	addr, bump, err := Derive(program, mint[:], []byte(SeedSold), indexBytes)
	if err != nil {
		return Keylet{}, 0, err
	}
	return Keylet{Type: TypeSold, Key: addr}, bump, nil
}
