package state

import (
	"github.com/slopestore/slopestored/internal/core/pda"
	"github.com/slopestore/slopestored/internal/core/types"
)

// View provides read/write access to ledger state.
//
// Read returns (nil, nil) when the entry does not exist; Insert fails on
// an existing entry and Update on a missing one. ForEach visits committed
// entries in unspecified order and stops when fn returns false.
type View interface {
	Read(k pda.Keylet) ([]byte, error)
	Exists(k pda.Keylet) (bool, error)
	Insert(k pda.Keylet, data []byte) error
	Update(k pda.Keylet, data []byte) error
	Erase(k pda.Keylet) error
	ForEach(fn func(key types.Address, data []byte) bool) error
}

// Typed accessors shared by the engine, the custody adapter and the test
// environment. Readers return (nil, nil) when the entry is absent.

// ReadAccountRoot reads the native account for an identity.
func ReadAccountRoot(v View, addr types.Address) (*AccountRoot, error) {
	data, err := v.Read(pda.Account(addr))
	if err != nil || data == nil {
		return nil, err
	}
	var acct AccountRoot
	if err := Decode(KindAccountRoot, data, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// PutAccountRoot inserts or updates a native account.
func PutAccountRoot(v View, acct *AccountRoot) error {
	data, err := Encode(KindAccountRoot, acct)
	if err != nil {
		return err
	}
	k := pda.Account(acct.Account)
	exists, err := v.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return v.Update(k, data)
	}
	return v.Insert(k, data)
}

// ReadStore reads a store registry entry.
func ReadStore(v View, k pda.Keylet) (*Store, error) {
	data, err := v.Read(k)
	if err != nil || data == nil {
		return nil, err
	}
	var store Store
	if err := Decode(KindStore, data, &store); err != nil {
		return nil, err
	}
	return &store, nil
}

// InsertStore creates a new store entry; fails if one already exists.
func InsertStore(v View, k pda.Keylet, store *Store) error {
	data, err := Encode(KindStore, store)
	if err != nil {
		return err
	}
	return v.Insert(k, data)
}

// UpdateStore rewrites an existing store entry.
func UpdateStore(v View, k pda.Keylet, store *Store) error {
	data, err := Encode(KindStore, store)
	if err != nil {
		return err
	}
	return v.Update(k, data)
}

// ReadRecord reads an escrow record entry.
func ReadRecord(v View, k pda.Keylet) (*Record, error) {
	data, err := v.Read(k)
	if err != nil || data == nil {
		return nil, err
	}
	var record Record
	if err := Decode(KindRecord, data, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// InsertRecord creates a new record entry; fails if one already exists.
func InsertRecord(v View, k pda.Keylet, record *Record) error {
	data, err := Encode(KindRecord, record)
	if err != nil {
		return err
	}
	return v.Insert(k, data)
}

// UpdateRecord rewrites an existing record entry.
func UpdateRecord(v View, k pda.Keylet, record *Record) error {
	data, err := Encode(KindRecord, record)
	if err != nil {
		return err
	}
	return v.Update(k, data)
}

// ReadToken reads a token account entry.
func ReadToken(v View, k pda.Keylet) (*TokenAccount, error) {
	data, err := v.Read(k)
	if err != nil || data == nil {
		return nil, err
	}
	var tok TokenAccount
	if err := Decode(KindToken, data, &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}

// InsertToken creates a new token account entry.
func InsertToken(v View, k pda.Keylet, tok *TokenAccount) error {
	data, err := Encode(KindToken, tok)
	if err != nil {
		return err
	}
	return v.Insert(k, data)
}

// UpdateToken rewrites an existing token account entry.
func UpdateToken(v View, k pda.Keylet, tok *TokenAccount) error {
	data, err := Encode(KindToken, tok)
	if err != nil {
		return err
	}
	return v.Update(k, data)
}

// ReadSold reads a sold record entry.
func ReadSold(v View, k pda.Keylet) (*Sold, error) {
	data, err := v.Read(k)
	if err != nil || data == nil {
		return nil, err
	}
	var sold Sold
	if err := Decode(KindSold, data, &sold); err != nil {
		return nil, err
	}
	return &sold, nil
}

// InsertSold appends a sold record; fails if the index is already taken.
// Sold entries are never updated or erased.
func InsertSold(v View, k pda.Keylet, sold *Sold) error {
	data, err := Encode(KindSold, sold)
	if err != nil {
		return err
	}
	return v.Insert(k, data)
}
