// SPDX-License-Identifier: MIT
// Source: github.com/woozymasta/lzo readZeroExtendedChunks/appendFastMultiple
// (length-extension helpers), adapted to LZ4's LSIC ("linear small integer
// code") instead of LZO's zero-run extension.

package lz4

// writeLSIC appends the LSIC extension for a length that did not fit in a
// 4-bit nibble: n/255 bytes of 255 followed by one byte of n%255.
func writeLSIC(s *sink, n int) error {
	for n >= lsicBase {
		if err := s.putByte(lsicBase); err != nil {
			return err
		}
		n -= lsicBase
	}
	return s.putByte(byte(n))
}

// readLSIC reads an LSIC-encoded length extension starting at src[*pos],
// adding to base, and advances *pos past the bytes it consumed. It fails if
// the stream runs out of input before a terminating byte < 255 appears.
func readLSIC(src []byte, pos *int, base int) (int, error) {
	n := base
	for {
		if *pos >= len(src) {
			return 0, corrupt("truncated LSIC length")
		}
		b := src[*pos]
		*pos++
		n += int(b)
		if b != lsicBase {
			return n, nil
		}
	}
}
