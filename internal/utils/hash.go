package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"io"
	"sync"
)

// Hasher provides keyed HMAC-SHA256 hashing backed by a pool of reusable
// hash instances. Each Hasher owns its own pool, so hashers built with
// different keys never share state.
type Hasher struct {
	pool sync.Pool
}

// NewHasher returns a Hasher whose pooled HMAC instances are keyed with key.
//
// Purpose:
//   - Avoid repeated allocations of new hash.Hash instances
//   - Keep the key out of package-level state
//
// Example usage:
//
//	h := utils.NewHasher("my-secret-key")
//	sum := h.Sum([]byte("1000000000"), []byte("GET"), []byte("/path"))
func NewHasher(key string) *Hasher {
	k := []byte(key)
	return &Hasher{
		pool: sync.Pool{
			New: func() any {
				return hmac.New(sha256.New, k)
			},
		},
	}
}

// Sum computes the HMAC-SHA256 digest over the concatenation of parts,
// without allocating the concatenated slice.
func (h *Hasher) Sum(parts ...[]byte) []byte {
	mac := h.get()
	defer h.put(mac)

	for _, p := range parts {
		mac.Write(p)
	}
	return mac.Sum(nil)
}

// SumReader computes the HMAC-SHA256 digest over prefix followed by
// everything read from r. r is consumed up to EOF.
func (h *Hasher) SumReader(prefix []byte, r io.Reader) ([]byte, error) {
	mac := h.get()
	defer h.put(mac)

	mac.Write(prefix)
	if r != nil {
		if _, err := io.Copy(mac, r); err != nil {
			return nil, err
		}
	}
	return mac.Sum(nil), nil
}

func (h *Hasher) get() hash.Hash {
	mac := h.pool.Get().(hash.Hash)
	mac.Reset()
	return mac
}

func (h *Hasher) put(mac hash.Hash) {
	mac.Reset()
	h.pool.Put(mac)
}

// HashString computes an HMAC-SHA256 signature over the given string
// using the provided hash key and returns the result as a hex-encoded string.
//
// Unlike Hasher, this function creates a new HMAC instance on each call.
// Suitable for one-off hashing, e.g. verifying a signature in tests.
func HashString(data string, hashKey string) string {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write([]byte(data))
	return hex.EncodeToString(hasher.Sum(nil))
}
