// Package compress provides ZStandard framing for serialized predicates.
// Used by the binary predicate codec when compression is requested.
package compress

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// magic prefixes every compressed payload so Decompress can tell framed
// predicates from plain MessagePack.
var magic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// ErrNotCompressed indicates the payload does not carry a zstd frame header.
var ErrNotCompressed = errors.New("payload is not zstd compressed")

var (
	encoderOnce sync.Once
	encoder     *zstd.Encoder
	encoderErr  error

	decoderOnce sync.Once
	decoder     *zstd.Decoder
	decoderErr  error
)

// sharedEncoder returns a process-wide encoder.
// EncodeAll is goroutine-safe, so one instance serves all callers.
func sharedEncoder() (*zstd.Encoder, error) {
	encoderOnce.Do(func() {
		encoder, encoderErr = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if encoderErr != nil {
			encoderErr = fmt.Errorf("failed to create zstd encoder: %w", encoderErr)
		}
	})
	return encoder, encoderErr
}

func sharedDecoder() (*zstd.Decoder, error) {
	decoderOnce.Do(func() {
		decoder, decoderErr = zstd.NewReader(nil)
		if decoderErr != nil {
			decoderErr = fmt.Errorf("failed to create zstd decoder: %w", decoderErr)
		}
	})
	return decoder, decoderErr
}

// Compress compresses data using ZStandard.
// Empty input yields empty output.
func Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	enc, err := sharedEncoder()
	if err != nil {
		return nil, err
	}

	// Serialized predicates are small; most of the size is field names.
	dst := make([]byte, 0, len(data)/2)
	return enc.EncodeAll(data, dst), nil
}

// IsCompressed reports whether data starts with a zstd frame header.
func IsCompressed(data []byte) bool {
	if len(data) < len(magic) {
		return false
	}
	for i, b := range magic {
		if data[i] != b {
			return false
		}
	}
	return true
}

// Decompress decompresses ZStandard data.
// Returns ErrNotCompressed if data has no zstd frame header.
func Decompress(compressed []byte) ([]byte, error) {
	if len(compressed) == 0 {
		return []byte{}, nil
	}
	if !IsCompressed(compressed) {
		return nil, ErrNotCompressed
	}

	dec, err := sharedDecoder()
	if err != nil {
		return nil, err
	}

	decompressed, err := dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}

	return decompressed, nil
}
