// SPDX-License-Identifier: MIT
// Source: github.com/woozymasta/lzo options.go (flat options struct with a
// Default constructor), adapted into the frame format's FrameInfo builder
// (spec section 6).

package lz4

// BlockSizeCode selects one of the four LZ4 frame block-maximum-size codes.
type BlockSizeCode byte

// Block size codes from spec section 3 (frame descriptor field). BlockAuto
// is not a wire value; it tells the frame encoder to pick one at the first
// write per spec section 4.E.
const (
	BlockAuto    BlockSizeCode = 0
	Block64KB    BlockSizeCode = 4
	Block256KB   BlockSizeCode = 5
	Block1MB     BlockSizeCode = 6
	Block4MB     BlockSizeCode = 7
)

// blockSizeBytes maps a wire block-size code to its byte size.
func (c BlockSizeCode) blockSizeBytes() int {
	switch c {
	case Block64KB:
		return 64 << 10
	case Block256KB:
		return 256 << 10
	case Block1MB:
		return 1 << 20
	case Block4MB:
		return 4 << 20
	default:
		return 0
	}
}

// BlockMode selects whether successive blocks may reference each other's
// uncompressed bytes.
type BlockMode int

const (
	// BlockIndependent clears the hash table between blocks; no block may
	// reference another block's bytes.
	BlockIndependent BlockMode = iota
	// BlockLinked carries the previous up-to-64KiB of uncompressed bytes
	// into the next block's encode/decode as an extended dictionary.
	BlockLinked
)

// FrameInfo configures a frame encoder; a frame decoder takes none and
// reports the descriptor it parsed through FrameReader.Info. Fields mirror
// the frame descriptor in spec section 3/6 plus stream-level choices (legacy
// mode) that live outside the descriptor.
type FrameInfo struct {
	BlockSizeCode      BlockSizeCode
	BlockMode          BlockMode
	BlockChecksum      bool
	ContentChecksum    bool
	ContentSize        uint64 // meaningful only when HasContentSize is set
	HasContentSize     bool
	DictID             uint32
	HasDictID          bool
	Legacy             bool
}

// NewFrameInfo returns a FrameInfo with the frame format's common defaults:
// auto block size, independent blocks, no checksums.
func NewFrameInfo() FrameInfo {
	return FrameInfo{
		BlockSizeCode: BlockAuto,
		BlockMode:     BlockIndependent,
	}
}

// WithBlockSize returns a copy of fi with an explicit block size code.
func (fi FrameInfo) WithBlockSize(c BlockSizeCode) FrameInfo {
	fi.BlockSizeCode = c
	return fi
}

// WithBlockMode returns a copy of fi with the given block dependence mode.
func (fi FrameInfo) WithBlockMode(m BlockMode) FrameInfo {
	fi.BlockMode = m
	return fi
}

// WithBlockChecksum returns a copy of fi with per-block xxHash32 enabled or disabled.
func (fi FrameInfo) WithBlockChecksum(on bool) FrameInfo {
	fi.BlockChecksum = on
	return fi
}

// WithContentChecksum returns a copy of fi with the whole-content xxHash32 enabled or disabled.
func (fi FrameInfo) WithContentChecksum(on bool) FrameInfo {
	fi.ContentChecksum = on
	return fi
}

// WithContentSize returns a copy of fi with the optional content-size field set.
func (fi FrameInfo) WithContentSize(n uint64) FrameInfo {
	fi.ContentSize = n
	fi.HasContentSize = true
	return fi
}

// WithDictID returns a copy of fi with the optional dictionary-id field set.
func (fi FrameInfo) WithDictID(id uint32) FrameInfo {
	fi.DictID = id
	fi.HasDictID = true
	return fi
}

// WithLegacy returns a copy of fi that writes/expects the legacy frame format.
func (fi FrameInfo) WithLegacy(on bool) FrameInfo {
	fi.Legacy = on
	return fi
}
