// SPDX-License-Identifier: MIT
// Source: github.com/woozymasta/lzo compress_1x_fast.go (single-probe hash
// table parse, literal/match emission, lazy skip-ahead over incompressible
// regions), adapted from LZO1X-1's opcode set to LZ4's token+LSIC format, and
// from original_source/src/block/compress_with_dict.rs for dictionary seeding.

package lz4

import "encoding/binary"

// CompressBlock compresses src as a single LZ4 block and returns the
// compressed bytes. The destination is an owned buffer that grows as needed
// (component H's growable sink mode) rather than a pre-sized one, since
// incompressible input can exceed len(src) by up to CompressBlockBound's
// overhead.
func CompressBlock(src []byte) ([]byte, error) {
	out := newGrowableSink(len(src))
	table := newHashTableSmall()
	if err := encodeBlock(src, nil, table, out); err != nil {
		return nil, err
	}
	return out.bytes(), nil
}

// CompressInto compresses src into dst and returns the number of bytes
// written. It fails with ErrOutputTooSmall if dst cannot hold the result;
// callers should size dst with CompressBlockBound.
func CompressInto(src, dst []byte) (int, error) {
	return CompressIntoWithDict(src, dst, nil)
}

// CompressIntoWithDict compresses src into dst, allowing matches to reach
// back into dict (the immediately preceding up-to-64KiB window). A dict
// shorter than minMatch is silently ignored for match finding, per
// original_source/src/block/dict.rs.
func CompressIntoWithDict(src, dst, dict []byte) (int, error) {
	if len(dict) < minMatch {
		dict = nil
	}
	out := newBoundedSink(dst)
	table := newHashTableSmall()
	if err := encodeBlock(src, dict, table, out); err != nil {
		return 0, err
	}
	return out.len(), nil
}

// byteAt returns the byte at virtual position pos, where pos < 0 addresses
// the trailing `dict` window (pos == -1 is dict's last byte) and pos >= 0
// addresses cur.
func byteAt(dict, cur []byte, pos int) byte {
	if pos < 0 {
		return dict[len(dict)+pos]
	}
	return cur[pos]
}

// readU32At reads a little-endian 4-byte window starting at virtual position
// pos, transparently spanning the dict/cur boundary.
func readU32At(dict, cur []byte, pos int) uint32 {
	if pos >= 0 && pos+4 <= len(cur) {
		return binary.LittleEndian.Uint32(cur[pos:])
	}
	if pos < 0 && pos+4 <= 0 {
		return binary.LittleEndian.Uint32(dict[len(dict)+pos:])
	}
	var b [4]byte
	for i := range b {
		b[i] = byteAt(dict, cur, pos+i)
	}
	return binary.LittleEndian.Uint32(b[:])
}

func match4(dict, cur []byte, a, b int) bool {
	return readU32At(dict, cur, a) == readU32At(dict, cur, b)
}

// encodeBlock implements the LZ4 block parse described in spec section 4.B:
// hash-probe the next 4-byte prefix, extend any hit forward and backward,
// emit (literal run, offset, match length) sequences, and finish with an
// unconditional literal tail.
func encodeBlock(input, dict []byte, table matchTable, out *sink) error {
	table.reset()
	seedDict(dict, table)

	n := len(input)
	if n < minCompressibleLen {
		return emitLastLiterals(out, input)
	}

	anchor := 0
	cursor := 1
	misses := 0
	// searchLimit bounds where a match may START: the format requires the
	// last match to start at least mfLimit bytes before the block's end.
	// forwardLimit bounds where a match's body may END: extension must stop
	// before the unconditional endOffset-byte literal tail.
	searchLimit := n - mfLimit
	forwardLimit := n - endOffset

	for cursor <= searchLimit {
		prev := table.get(input, cursor)
		table.put(input, cursor)

		// prev == -1 is the table's empty-slot sentinel (see hashTableSmall.get);
		// any other value, including negative ones from seedDict, is a real
		// candidate position that may reach into the dictionary window.
		valid := prev != -1 && cursor-prev <= 0xffff && match4(dict, input, prev, cursor)
		if !valid {
			misses++
			step := misses >> skipTrigger
			if step < 1 {
				step = 1
			}
			cursor += step
			continue
		}

		matchStart := cursor
		prevStart := prev

		// Extend forward, stopping before the unconditional literal tail.
		matchEnd := matchStart
		for matchEnd < forwardLimit && byteAt(dict, input, prevStart+(matchEnd-matchStart)) == input[matchEnd] {
			matchEnd++
		}

		// Extend backward into the still-uncommitted literal run.
		for matchStart > anchor && prevStart > -len(dict) &&
			byteAt(dict, input, prevStart-1) == input[matchStart-1] {
			matchStart--
			prevStart--
		}

		if err := emitSequence(out, input[anchor:matchStart], matchStart-prevStart, matchEnd-matchStart); err != nil {
			return err
		}

		anchor = matchEnd
		cursor = anchor
		misses = 0
	}

	return emitLastLiterals(out, input[anchor:])
}

// seedDict inserts every 4-byte window of dict (addressed as negative
// virtual positions ending at -minMatch) into table, so the first bytes of
// input can match back into the dictionary window immediately. A dict
// shorter than minMatch is a no-op, matching the "silently ignored" rule.
func seedDict(dict []byte, table matchTable) {
	if len(dict) < minMatch {
		return
	}
	for i := 0; i+minMatch <= len(dict); i++ {
		table.seed(dict, i)
	}
}

// emitSequence writes one (literal run, offset, match length) sequence:
// token, LSIC extensions, literal bytes, 2-byte LE offset, LSIC match
// extension.
func emitSequence(out *sink, literal []byte, offset, matchLen int) error {
	litLen := len(literal)
	bodyLen := matchLen - minMatch

	runNibble := litLen
	if runNibble > runMask {
		runNibble = runMask
	}
	mlNibble := bodyLen
	if mlNibble > mlMask {
		mlNibble = mlMask
	}
	token := byte(runNibble<<mlBits) | byte(mlNibble)
	if err := out.putByte(token); err != nil {
		return err
	}
	if litLen >= runMask {
		if err := writeLSIC(out, litLen-runMask); err != nil {
			return err
		}
	}
	if err := out.copyLiteral(literal); err != nil {
		return err
	}
	if err := out.putUint16LE(uint16(offset)); err != nil {
		return err
	}
	if bodyLen >= mlMask {
		if err := writeLSIC(out, bodyLen-mlMask); err != nil {
			return err
		}
	}
	return nil
}

// emitLastLiterals writes the final, offset-less literal-only sequence that
// terminates every LZ4 block.
func emitLastLiterals(out *sink, tail []byte) error {
	n := len(tail)
	nibble := n
	if nibble > runMask {
		nibble = runMask
	}
	token := byte(nibble << mlBits)
	if err := out.putByte(token); err != nil {
		return err
	}
	if n >= runMask {
		if err := writeLSIC(out, n-runMask); err != nil {
			return err
		}
	}
	return out.copyLiteral(tail)
}
