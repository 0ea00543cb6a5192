// SPDX-License-Identifier: MIT
// Source: github.com/woozymasta/lzo (fixed-shape dict pattern), grounded on
// github.com/chmduquesne/rollinghash (required by syncthing-syncthing) for the
// dedicated "read window, fold into state" hash type shape.

package lz4

import "encoding/binary"

// matchHash reads a little-endian 4-byte window starting at data[pos] and
// folds it into a table index. The shift (32 minus the table's index width)
// is stored per table when it is built, so every index falls within that
// table's length.
type matchHash struct {
	shift uint
}

func newMatchHash(tableBits uint) matchHash {
	return matchHash{shift: 32 - tableBits}
}

// next folds the 4 bytes at data[pos:pos+4] into a table index.
func (h matchHash) next(data []byte, pos int) uint32 {
	v := binary.LittleEndian.Uint32(data[pos:])
	return (v * hashBytes) >> h.shift
}

// matchTable is implemented by both hash table shapes so encodeBlock can run
// unmodified over either the per-call small table or the frame encoder's
// pooled large table.
type matchTable interface {
	reset()
	get(data []byte, pos int) int
	put(data []byte, pos int) int
	// seed records the 4-byte window at dict[i:] under the virtual negative
	// position i-len(dict), so a later put/get against cur can find it.
	seed(dict []byte, i int)
}

// hashTableSmall is a fixed 4096-entry table used by the single-shot block
// encoder (CompressBlock). Entries are positions relative to the start of
// the input being encoded; 0 is reserved to mean "empty" by storing
// position+1, mirroring the teacher's dict[]int32 "0 means empty" slot
// convention in compress_1x_fast.go.
type hashTableSmall struct {
	hash  matchHash
	table [hashTableLen]int32
}

func newHashTableSmall() *hashTableSmall {
	return &hashTableSmall{hash: newMatchHash(hashLog4)}
}

func (t *hashTableSmall) reset() {
	for i := range t.table {
		t.table[i] = 0
	}
}

// get returns the previously stored position for data[pos:pos+4], or -1 if
// none was ever stored there.
func (t *hashTableSmall) get(data []byte, pos int) int {
	idx := t.hash.next(data, pos)
	return int(t.table[idx]) - 1
}

// put stores pos for the 4-byte prefix at data[pos:pos+4] and returns the
// previous occupant (or -1).
func (t *hashTableSmall) put(data []byte, pos int) int {
	idx := t.hash.next(data, pos)
	prev := int(t.table[idx]) - 1
	t.table[idx] = int32(pos + 1)
	return prev
}

func (t *hashTableSmall) seed(dict []byte, i int) {
	idx := t.hash.next(dict, i)
	t.table[idx] = int32(i-len(dict)) + 1
}

// hashTableLarge is a heap-allocated table used by the frame encoder, sized
// larger than the block table to reduce collisions across many blocks and
// to avoid repeated stack allocation of a [hashTableLen]int32 array per
// block. It is recycled with sync.Pool the same way the teacher recycles
// slidingWindowDict in hashtable_pool.go.
const hashLogLarge = 16 // 65536 entries

type hashTableLarge struct {
	hash  matchHash
	table [1 << hashLogLarge]int32
}

func newHashTableLarge() *hashTableLarge {
	return &hashTableLarge{hash: newMatchHash(hashLogLarge)}
}

func (t *hashTableLarge) reset() {
	for i := range t.table {
		t.table[i] = 0
	}
}

func (t *hashTableLarge) get(data []byte, pos int) int {
	idx := t.hash.next(data, pos)
	return int(t.table[idx]) - 1
}

func (t *hashTableLarge) put(data []byte, pos int) int {
	idx := t.hash.next(data, pos)
	prev := int(t.table[idx]) - 1
	t.table[idx] = int32(pos + 1)
	return prev
}

func (t *hashTableLarge) seed(dict []byte, i int) {
	idx := t.hash.next(dict, i)
	t.table[idx] = int32(i-len(dict)) + 1
}
