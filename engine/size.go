package engine

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/klauspost/compress/s2"

	"github.com/krisalay/tagcache/types"
)

// Sizer estimates the in-memory footprint of a value. Estimates must be
// deterministic and cheap; they are not byte-exact.
type Sizer interface {
	Size(value any) (int64, error)
}

/*
JSONSizer measures a value by the length of its JSON encoding.

- types.Sizer values report their own size
- []byte and string are measured directly
- everything else is encoded with go-json

With Compress set, the encoded bytes are s2-compressed and the compressed
length is used instead. This mirrors what a compressed store would hold;
the cache itself still keeps the original value.

A negative self-reported size, or a panic while sizing, is returned as an
error.
*/
type JSONSizer struct {
	Compress bool
}

func (s JSONSizer) Size(value any) (n int64, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("size value: %v", r)
		}
	}()

	var raw []byte

	switch v := value.(type) {
	case types.Sizer:
		n = v.CacheSize()
		if n < 0 {
			return 0, fmt.Errorf("size value: negative size %d", n)
		}
		return n, nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return 0, fmt.Errorf("encode value: %w", err)
		}
		raw = b
	}

	if s.Compress && len(raw) > 0 {
		return int64(len(s2.Encode(nil, raw))), nil
	}
	return int64(len(raw)), nil
}
