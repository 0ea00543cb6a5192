// SPDX-License-Identifier: MIT
// Source: github.com/woozymasta/lzo sliding_window_pool.go (sync.Pool recycling
// pattern for a large match-finder table, adapted from LZO's chained dictionary
// to LZ4's flat large hash table).

package lz4

import "sync"

// hashTableLargePool recycles hashTableLarge instances across frame blocks so
// the frame encoder does not allocate and zero a 256KiB table per block.
var hashTableLargePool = sync.Pool{
	New: func() any {
		return newHashTableLarge()
	},
}

// acquireHashTableLarge acquires a zeroed large hash table from the pool.
func acquireHashTableLarge() *hashTableLarge {
	t := hashTableLargePool.Get().(*hashTableLarge)
	t.reset()
	return t
}

// releaseHashTableLarge returns a large hash table to the pool.
func releaseHashTableLarge(t *hashTableLarge) {
	if t == nil {
		return
	}
	hashTableLargePool.Put(t)
}
