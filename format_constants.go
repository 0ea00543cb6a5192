// SPDX-License-Identifier: MIT
// Source: github.com/woozymasta/lzo (teacher idiom, adapted for LZ4)

package lz4

// LZ4 block format constants: token layout, end-of-block restrictions, and
// hash table shapes.

// Token layout: one byte, high nibble literal length, low nibble biased match length.
const (
	minMatch  = 4  // MINMATCH: minimum match length in bytes
	endOffset = 5  // LAST_LITERALS: bytes at the end of a block guaranteed literal
	mfLimit   = 12 // MFLIMIT: a match may not start within this many bytes of the block's end
	mlBits    = 4  // bits used for the match-length nibble
	mlMask    = (1 << mlBits) - 1
	runBits   = 4 // bits used for the literal-length nibble
	runMask   = (1 << runBits) - 1
)

// lsicBase is the byte value that continues an LSIC run; a byte below it ends the run.
const lsicBase = 255

// skipTrigger controls how aggressively the fast parser accelerates over
// incompressible regions: after `misses` consecutive failed probes, the
// cursor advances by max(1, misses>>skipTrigger).
const skipTrigger = 6

// hashLog4 picks the index width for the block-level hash table.
const (
	hashLog4     = 12 // 4096-entry table (block-level default)
	hashTableLen = 1 << hashLog4

	minCompressibleLen = minMatch + endOffset + 4
)

// hashBytes is the 32-bit prime multiplier used by the hash function below.
const hashBytes = 2654435761

// compressionOverheadPerByte and compressionOverheadConst make up the
// get_maximum_output_size / CompressBlockBound formula: n + n/255 + 16.
const (
	compressionOverheadPerByte = 255
	compressionOverheadConst   = 16
)

// CompressBlockBound returns the maximum possible size of the LZ4-compressed
// form of an input of length n. It is always safe to allocate a destination
// of this size before calling CompressInto.
func CompressBlockBound(n int) int {
	if n <= 0 {
		return compressionOverheadConst
	}
	return n + n/compressionOverheadPerByte + compressionOverheadConst
}
