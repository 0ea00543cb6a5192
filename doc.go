// SPDX-License-Identifier: MIT
// Source: github.com/woozymasta/lzo doc.go

/*
Package lz4 implements the LZ4 lossless compression algorithm in its two
wire-compatible shapes: the Block Format (a single self-contained
compressed payload) and the Frame Format (a streamable container of
blocks with framing, optional checksums, and block chaining).

High-compression ("HC") matching, random access into frames, and
multi-threaded block processing within one stream are not implemented.

# Block format

	out, err := lz4.CompressBlock(data)
	back, err := lz4.UncompressBlockToSize(out, len(data))

To reuse caller-managed buffers:

	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressInto(data, dst)
	back := make([]byte, len(data)) // must be exactly the uncompressed length
	n, err = lz4.UncompressBlock(dst[:n], back)

Self-describing blocks carry their own uncompressed length:

	out, err := lz4.CompressBlockPrependSize(data)
	back, err := lz4.UncompressSizePrepended(out)

# Frame format

	var buf bytes.Buffer
	w := lz4.NewFrameWriter(&buf, lz4.NewFrameInfo().WithContentChecksum(true))
	w.Write(data)
	w.Close()

	r := lz4.NewFrameReader(&buf)
	io.ReadAll(r)
*/
package lz4
