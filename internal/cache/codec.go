package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// Cached values are msgpack-encoded using the msgpack struct tags of the
// model types.

func encode(v any) ([]byte, error) {
	return msgpack.Marshal(v)
}

func decode(data []byte, v any) error {
	return msgpack.Unmarshal(data, v)
}

// ResultKey derives the cache key for an analysis of kind over parts. Parts
// are hashed so arbitrary text never ends up in a key.
func ResultKey(kind string, parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return "analysis:" + kind + ":" + hex.EncodeToString(sum[:])
}
