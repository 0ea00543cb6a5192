// SPDX-License-Identifier: MIT
// Source: github.com/woozymasta/lzo copy.go (overlap-aware copy primitive),
// generalized into a single sink type per original_source/src/sink.rs
// (the Rust crate's Sink abstraction unifying a bounded slice and a growable
// Vec behind one set of primitives).

package lz4

// sink is a bounded-or-growable write target shared by the block encoder and
// decoder. A sink backed by a caller-supplied slice never grows past its
// initial capacity and reports ErrOutputTooSmall on overflow; a sink backed
// by a nil/owned slice grows by doubling, the same "owned buffer" mode the
// teacher's DecompressOptions path gets for free by allocating dst up front
// and this encoder needs explicitly since compressed size isn't known ahead
// of time.
type sink struct {
	buf    []byte
	pos    int
	bound  bool // true: buf has fixed capacity and must not grow
	dict   []byte
}

// newBoundedSink wraps a caller-owned destination slice. Writes beyond
// len(dst) fail with ErrOutputTooSmall. The slice's capacity is clipped to
// len(dst) so reserve can check the bound against cap(s.buf).
func newBoundedSink(dst []byte) *sink {
	return &sink{buf: dst[:len(dst):len(dst)], bound: true}
}

// newGrowableSink starts from an optional initial capacity hint and grows as
// needed, doubling like append's own growth strategy.
func newGrowableSink(sizeHint int) *sink {
	return &sink{buf: make([]byte, 0, sizeHint), bound: false}
}

// withDict attaches an immutable extended-dictionary window used by
// copyMatch when offset reaches before the sink's own output.
func (s *sink) withDict(dict []byte) *sink {
	s.dict = dict
	return s
}

func (s *sink) len() int { return s.pos }

func (s *sink) bytes() []byte { return s.buf[:s.pos] }

// reserve ensures capacity for n more bytes at the current position, growing
// an unbounded sink or failing a bounded one. Both modes check capacity, not
// length: every write re-slices s.buf up to the position it just wrote, so
// length only tracks the written prefix. A bounded sink's capacity equals the
// caller's len(dst) (see newBoundedSink), so it never writes past it.
func (s *sink) reserve(n int) error {
	need := s.pos + n
	if s.bound {
		if need > cap(s.buf) {
			return ErrOutputTooSmall
		}
		return nil
	}
	if need <= cap(s.buf) {
		return nil
	}
	grown := make([]byte, s.pos, growCap(cap(s.buf), need))
	copy(grown, s.buf[:s.pos])
	s.buf = grown
	return nil
}

func growCap(cur, need int) int {
	c := cur
	if c == 0 {
		c = 64
	}
	for c < need {
		c *= 2
	}
	return c
}

// putByte appends a single byte.
func (s *sink) putByte(b byte) error {
	if err := s.reserve(1); err != nil {
		return err
	}
	s.buf = s.buf[:s.pos+1]
	s.buf[s.pos] = b
	s.pos++
	return nil
}

// copyLiteral copies src verbatim into the sink.
func (s *sink) copyLiteral(src []byte) error {
	if len(src) == 0 {
		return nil
	}
	if err := s.reserve(len(src)); err != nil {
		return err
	}
	s.buf = s.buf[:s.pos+len(src)]
	copy(s.buf[s.pos:], src)
	s.pos += len(src)
	return nil
}

// putUint16LE appends a little-endian uint16, used for the block match offset.
func (s *sink) putUint16LE(v uint16) error {
	if err := s.reserve(2); err != nil {
		return err
	}
	s.buf = s.buf[:s.pos+2]
	s.buf[s.pos] = byte(v)
	s.buf[s.pos+1] = byte(v >> 8)
	s.pos += 2
	return nil
}

// copyMatch copies length bytes from offset bytes behind the current
// position into the current position. This is intentionally NOT a memcpy:
// when offset < length the source and destination regions overlap, and each
// destination byte must become visible to later source reads within the
// same call (a run-length fill, e.g. offset=1 replicates one byte length
// times). When the match reaches behind the sink's own output into the
// attached dictionary window, the dictionary-side prefix is copied first.
func (s *sink) copyMatch(offset, length int) error {
	if offset <= 0 {
		return corrupt("zero or negative match offset")
	}
	if err := s.reserve(length); err != nil {
		return err
	}

	avail := s.pos
	if offset > avail+len(s.dict) {
		return corrupt("match offset exceeds available history")
	}

	remaining := length
	// Part of the match may reach into the dictionary window that precedes
	// the sink's own output (frame block-dependence mode).
	if offset > avail {
		dictStart := len(s.dict) - (offset - avail)
		if dictStart < 0 {
			return corrupt("match offset exceeds dictionary window")
		}
		n := offset - avail
		if n > remaining {
			n = remaining
		}
		if err := s.copyLiteral(s.dict[dictStart : dictStart+n]); err != nil {
			return err
		}
		remaining -= n
		if remaining == 0 {
			return nil
		}
		// offset is unchanged: after consuming exactly offset-avail bytes
		// from the dictionary tail, s.pos has advanced to equal offset, so
		// the remaining source position (s.pos - offset) is 0 — the start
		// of the sink's own output, picking up right where the dictionary
		// window left off.
	}

	s.buf = s.buf[:s.pos+remaining]
	srcPos := s.pos - offset
	if offset >= remaining {
		// Non-overlapping: a single copy suffices.
		copy(s.buf[s.pos:s.pos+remaining], s.buf[srcPos:srcPos+remaining])
		s.pos += remaining
		return nil
	}

	// Overlapping run fill: advance one `offset`-sized stride at a time so
	// each destination byte is written before it is read again as a source
	// byte further along the run.
	for remaining > 0 {
		n := offset
		if n > remaining {
			n = remaining
		}
		copy(s.buf[s.pos:s.pos+n], s.buf[srcPos:srcPos+n])
		s.pos += n
		srcPos += n
		remaining -= n
	}
	return nil
}
