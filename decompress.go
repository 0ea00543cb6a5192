// SPDX-License-Identifier: MIT
// Source: github.com/woozymasta/lzo decompress.go (explicit-position decode
// loop with small io-helper functions), adapted from LZO1X's multi-state
// opcode machine to LZ4's simpler token/LSIC/offset sequence format.

package lz4

// UncompressBlock decompresses an LZ4 block from src into dst and returns the
// number of bytes written. dst must already be sized to the expected
// uncompressed length; it fails with ErrCorrupt if src decodes to a
// different number of bytes than len(dst), and with ErrOutputTooSmall if a
// sequence would overflow dst before that.
func UncompressBlock(src, dst []byte) (int, error) {
	return UncompressBlockWithDict(src, dst, nil)
}

// UncompressBlockWithDict is UncompressBlock with an immutable dictionary
// window that a match offset may reach back into when it exceeds the bytes
// already written to dst.
func UncompressBlockWithDict(src, dst, dict []byte) (int, error) {
	out := newBoundedSink(dst)
	if err := decodeBlock(src, out, dict); err != nil {
		return 0, err
	}
	if out.len() != len(dst) {
		return 0, corrupt("decoded size does not match destination length")
	}
	return out.len(), nil
}

// UncompressBlockToSize decompresses src expecting exactly size bytes of
// output, allocating the destination itself.
func UncompressBlockToSize(src []byte, size int) ([]byte, error) {
	if size < 0 {
		return nil, corrupt("negative expected size")
	}
	dst := make([]byte, size)
	n, err := UncompressBlock(src, dst)
	if err != nil {
		return nil, err
	}
	return dst[:n], nil
}

// decodeBlock drives the block decode state machine described in spec
// section 4.C: read a token, copy literals, and (unless input is exhausted)
// read an offset and copy a match, repeating until input is exhausted.
func decodeBlock(src []byte, out *sink, dict []byte) error {
	if len(dict) > 0 {
		out.withDict(dict)
	}

	pos := 0
	for pos < len(src) {
		token := src[pos]
		pos++

		litLen := int(token >> mlBits)
		if litLen == runMask {
			n, err := readLSIC(src, &pos, 0)
			if err != nil {
				return err
			}
			litLen += n
		}

		if pos+litLen > len(src) {
			return corrupt("literal run extends past input end")
		}
		if err := out.copyLiteral(src[pos : pos+litLen]); err != nil {
			return err
		}
		pos += litLen

		// A block's final sequence is literals-only: once input is
		// exhausted after the literal copy, decoding is complete.
		if pos == len(src) {
			return nil
		}

		if pos+2 > len(src) {
			return corrupt("truncated match offset")
		}
		offset := int(src[pos]) | int(src[pos+1])<<8
		pos += 2
		if offset == 0 {
			return corrupt("zero match offset")
		}

		matchLen := int(token & mlMask)
		if matchLen == mlMask {
			n, err := readLSIC(src, &pos, 0)
			if err != nil {
				return err
			}
			matchLen += n
		}
		matchLen += minMatch

		if err := out.copyMatch(offset, matchLen); err != nil {
			return err
		}
	}
	return corrupt("block ended without a final literal-only sequence")
}
