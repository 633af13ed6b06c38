package oer

import (
	"crypto/sha256"
	"hash"
)

// Hasher feeds the OER encoding of values into a running SHA-256 context
// instead of buffering them, so a hash payload never needs to be fully
// materialized in memory.
type Hasher struct {
	h hash.Hash
}

// NewHasher returns a Hasher with a fresh SHA-256 context.
func NewHasher() *Hasher { return &Hasher{h: sha256.New()} }

// WriteVarUInt writes v as a length-prefixed, minimum-length, big-endian
// unsigned integer into the running digest.
func (h *Hasher) WriteVarUInt(v uint64) {
	content := minimalBytes(v)
	h.h.Write(lengthPrefixBytes(len(content)))
	h.h.Write(content)
}

// WriteVarOctetString writes buf, length-prefixed, into the running digest.
func (h *Hasher) WriteVarOctetString(buf []byte) {
	h.h.Write(lengthPrefixBytes(len(buf)))
	h.h.Write(buf)
}

// WriteOctetString writes buf verbatim into the running digest.
func (h *Hasher) WriteOctetString(buf []byte) { h.h.Write(buf) }

// WriteUint16 writes v as a fixed 16-bit big-endian field.
func (h *Hasher) WriteUint16(v uint16) { h.h.Write([]byte{byte(v >> 8), byte(v)}) }

// Digest returns the SHA-256 digest of everything written so far.
func (h *Hasher) Digest() [32]byte {
	var out [32]byte
	copy(out[:], h.h.Sum(nil))
	return out
}
