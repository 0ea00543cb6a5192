// SPDX-License-Identifier: MIT
// Source: hand-implemented per spec section 4.G (xxHash32, exact algorithm
// required — not delegated to github.com/cespare/xxhash/v2, which computes
// the 64-bit variant). Exposed as a streaming hash.Hash32, the shape grounded
// on cespare/xxhash/v2 (required directly by minio-minio) and on
// github.com/pierrec/xxHash/xxHash32 as used in
// other_examples/andybalholm-pack__frame.go.

package lz4

import (
	"encoding/binary"
	"hash"
)

const (
	prime32_1 uint32 = 2654435761
	prime32_2 uint32 = 2246822519
	prime32_3 uint32 = 3266489917
	prime32_4 uint32 = 668265263
	prime32_5 uint32 = 374761393
)

// xxHash32 is a streaming implementation of 32-bit xxHash, used for the
// frame descriptor checksum, optional per-block checksums, and the optional
// whole-content checksum.
type xxHash32 struct {
	seed    uint32
	v1      uint32
	v2      uint32
	v3      uint32
	v4      uint32
	total   uint64
	mem     [16]byte
	memSize int
}

// NewXXHash32 returns a new streaming xxHash32 hasher seeded with seed.
// The frame protocol always uses seed 0.
func NewXXHash32(seed uint32) hash.Hash32 {
	h := &xxHash32{seed: seed}
	h.Reset()
	return h
}

func (h *xxHash32) Reset() {
	h.v1 = h.seed + prime32_1 + prime32_2
	h.v2 = h.seed + prime32_2
	h.v3 = h.seed
	h.v4 = h.seed - prime32_1
	h.total = 0
	h.memSize = 0
}

func (h *xxHash32) Size() int      { return 4 }
func (h *xxHash32) BlockSize() int { return 16 }

func round(acc, input uint32) uint32 {
	acc += input * prime32_2
	acc = rotl32(acc, 13)
	acc *= prime32_1
	return acc
}

func rotl32(x uint32, r uint) uint32 {
	return (x << r) | (x >> (32 - r))
}

func le32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }

func (h *xxHash32) Write(p []byte) (int, error) {
	n := len(p)
	h.total += uint64(n)

	if h.memSize+len(p) < 16 {
		copy(h.mem[h.memSize:], p)
		h.memSize += len(p)
		return n, nil
	}

	if h.memSize > 0 {
		fill := 16 - h.memSize
		copy(h.mem[h.memSize:], p[:fill])
		h.v1 = round(h.v1, le32(h.mem[0:]))
		h.v2 = round(h.v2, le32(h.mem[4:]))
		h.v3 = round(h.v3, le32(h.mem[8:]))
		h.v4 = round(h.v4, le32(h.mem[12:]))
		p = p[fill:]
		h.memSize = 0
	}

	for len(p) >= 16 {
		h.v1 = round(h.v1, le32(p[0:]))
		h.v2 = round(h.v2, le32(p[4:]))
		h.v3 = round(h.v3, le32(p[8:]))
		h.v4 = round(h.v4, le32(p[12:]))
		p = p[16:]
	}

	if len(p) > 0 {
		copy(h.mem[:], p)
		h.memSize = len(p)
	}

	return n, nil
}

func (h *xxHash32) Sum32() uint32 {
	var acc uint32
	if h.total >= 16 {
		acc = rotl32(h.v1, 1) + rotl32(h.v2, 7) + rotl32(h.v3, 12) + rotl32(h.v4, 18)
	} else {
		acc = h.seed + prime32_5
	}
	acc += uint32(h.total)

	p := 0
	for p+4 <= h.memSize {
		acc += le32(h.mem[p:]) * prime32_3
		acc = rotl32(acc, 17) * prime32_4
		p += 4
	}
	for p < h.memSize {
		acc += uint32(h.mem[p]) * prime32_5
		acc = rotl32(acc, 11) * prime32_1
		p++
	}

	acc ^= acc >> 15
	acc *= prime32_2
	acc ^= acc >> 13
	acc *= prime32_3
	acc ^= acc >> 16
	return acc
}

func (h *xxHash32) Sum(b []byte) []byte {
	s := h.Sum32()
	return append(b, byte(s>>24), byte(s>>16), byte(s>>8), byte(s))
}

// checksum32 is a one-shot convenience wrapper over xxHash32 for callers
// that don't need streaming (block checksums, the frame header checksum).
func checksum32(seed uint32, data []byte) uint32 {
	h := NewXXHash32(seed)
	h.Write(data) //nolint:errcheck // xxHash32.Write never fails
	return h.Sum32()
}
