// Package msgpack provides MessagePack encoding/decoding for serialized predicates.
// Used by the filter package binary codec.
package msgpack

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Encode serializes a Go value into MessagePack format.
// Struct fields are keyed by their json tag, options included, so the
// binary and JSON forms share one schema.
func Encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode MessagePack: %w", err)
	}

	return buf.Bytes(), nil
}

// Decode deserializes MessagePack data produced by Encode into v.
// The v parameter should be a pointer to the target structure.
// Untyped literals come back as int64/uint64/float64 instead of the
// narrowest type that fits, which keeps value decoding predictable.
func Decode(data []byte, v interface{}) error {
	if len(data) == 0 {
		return fmt.Errorf("empty MessagePack data")
	}

	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	dec.UseLooseInterfaceDecoding(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("failed to decode MessagePack: %w", err)
	}

	return nil
}
