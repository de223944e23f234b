package filter

import (
	"fmt"

	"github.com/hugr-lab/autofilter-go/internal/compress"
	"github.com/hugr-lab/autofilter-go/internal/msgpack"
)

// CodecOption configures MarshalBinary.
type CodecOption func(*codecOptions)

type codecOptions struct {
	compress bool
}

// WithCompression frames the MessagePack payload with ZStandard.
func WithCompression() CodecOption {
	return func(o *codecOptions) { o.compress = true }
}

// MarshalBinary encodes a predicate to MessagePack.
// The payload uses the same field names as the JSON form.
func MarshalBinary(expr Expression, opts ...CodecOption) ([]byte, error) {
	var o codecOptions
	for _, opt := range opts {
		opt(&o)
	}

	raw, err := toRawNode(expr)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}

	data, err := msgpack.Encode(raw)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	if !o.compress {
		return data, nil
	}

	compressed, err := compress.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	return compressed, nil
}

// UnmarshalBinary decodes a predicate produced by MarshalBinary.
// Compressed payloads are detected by their frame header.
func UnmarshalBinary(data []byte) (Expression, error) {
	if compress.IsCompressed(data) {
		decompressed, err := compress.Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("filter: %w", err)
		}
		data = decompressed
	}

	var raw rawNode
	if err := msgpack.Decode(data, &raw); err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}

	expr, err := parseNode(&raw)
	if err != nil {
		return nil, fmt.Errorf("filter: %w", err)
	}
	return expr, nil
}
