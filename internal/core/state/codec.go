package state

import (
	"errors"
	"fmt"

	"github.com/ugorji/go/codec"
)

// Entries are serialized as a single kind byte followed by the CBOR
// encoding of the entry struct. The kind byte makes decoding a mistyped
// entry an explicit error instead of a silent field mismatch.

var cborHandle = func() *codec.CborHandle {
	h := new(codec.CborHandle)
	h.Canonical = true
	return h
}()

// ErrWrongKind is returned when an entry decodes with an unexpected kind tag.
var ErrWrongKind = errors.New("state: wrong entry kind")

// ErrEmptyEntry is returned when decoding zero-length data.
var ErrEmptyEntry = errors.New("state: empty entry")

// Encode serializes an entry with its kind tag.
func Encode(kind Kind, v any) ([]byte, error) {
	body := make([]byte, 0, 64)
	enc := codec.NewEncoderBytes(&body, cborHandle)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("state: encode %s: %w", kind, err)
	}
	out := make([]byte, 0, len(body)+1)
	out = append(out, byte(kind))
	out = append(out, body...)
	return out, nil
}

// Decode deserializes an entry, checking the kind tag.
func Decode(kind Kind, data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmptyEntry
	}
	if Kind(data[0]) != kind {
		return fmt.Errorf("%w: want %s, got %s", ErrWrongKind, kind, Kind(data[0]))
	}
	dec := codec.NewDecoderBytes(data[1:], cborHandle)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("state: decode %s: %w", kind, err)
	}
	return nil
}

// KindOf returns the kind tag of serialized entry data.
func KindOf(data []byte) (Kind, error) {
	if len(data) == 0 {
		return 0, ErrEmptyEntry
	}
	return Kind(data[0]), nil
}
