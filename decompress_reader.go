// SPDX-License-Identifier: MIT
// Source: github.com/woozymasta/lzo decompress_reader.go (ReadAll-then-decode
// wrapper), adapted for the prepend-size block helpers (component D).

package lz4

import (
	"encoding/binary"
	"io"
)

// maxPrependedSize is the implementation-defined ceiling on a length read by
// UncompressSizePrepended, guarding against a corrupted or adversarial
// 4-byte length header driving an unbounded allocation.
const maxPrependedSize = 1 << 30

// CompressBlockPrependSize compresses src and prepends a 4-byte little-endian
// uncompressed length, so the result is self-describing for
// UncompressSizePrepended.
func CompressBlockPrependSize(src []byte) ([]byte, error) {
	body, err := CompressBlock(src)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 4+len(body))
	binary.LittleEndian.PutUint32(out, uint32(len(src)))
	copy(out[4:], body)
	return out, nil
}

// UncompressSizePrepended reads the 4-byte little-endian length written by
// CompressBlockPrependSize, allocates exactly that many bytes, and decodes
// the remainder into it. It fails with ErrCorrupt if the length is absent,
// exceeds maxPrependedSize, or the decoder does not produce that many bytes.
func UncompressSizePrepended(buf []byte) ([]byte, error) {
	if len(buf) < 4 {
		return nil, corrupt("missing prepended size")
	}
	size := binary.LittleEndian.Uint32(buf)
	if size > maxPrependedSize {
		return nil, corrupt("prepended size exceeds limit")
	}
	return UncompressBlockToSize(buf[4:], int(size))
}

// UncompressBlockFromReader reads all of r, then calls UncompressBlockToSize.
// It performs no incremental decoding of its own.
func UncompressBlockFromReader(r io.Reader, size int) ([]byte, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, ioErr(err)
	}
	return UncompressBlockToSize(src, size)
}
