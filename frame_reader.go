// SPDX-License-Identifier: MIT
// Source: spec section 4.F, grounded on other_examples/andybalholm-pack__frame.go
// for the io.Reader-over-block-buffer shape and on the teacher's decompress.go
// for driving a block decode into a fixed-capacity sink.

package lz4

import (
	"encoding/binary"
	"hash"
	"io"
)

// FrameReader implements io.Reader over an LZ4 frame (modern or legacy),
// decoding one block at a time and verifying whichever checksums the frame's
// descriptor advertises, per spec section 4.F.
type FrameReader struct {
	r    io.Reader
	info FrameInfo

	legacy      bool
	started     bool
	finished    bool
	dict        []byte
	content     hash.Hash32
	pending     []byte // decoded bytes not yet returned to the caller
	pendingOff  int
	err         error
}

// NewFrameReader returns a FrameReader that decodes r as an LZ4 frame. The
// frame's own descriptor determines block size, block mode, and which
// checksums are present; info is not required up front.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: r}
}

// Info returns the frame descriptor parsed from the stream. It is only valid
// after the first successful Read (or after Read returns a non-io.EOF error
// past the header).
func (fr *FrameReader) Info() FrameInfo { return fr.info }

func (fr *FrameReader) Read(p []byte) (int, error) {
	if fr.err != nil {
		return 0, fr.err
	}
	if !fr.started {
		if err := fr.readHeader(); err != nil {
			fr.err = err
			return 0, err
		}
		fr.started = true
	}

	for fr.pendingOff >= len(fr.pending) {
		if fr.finished {
			return 0, io.EOF
		}
		if err := fr.readBlock(); err != nil {
			fr.err = err
			return 0, err
		}
	}

	n := copy(p, fr.pending[fr.pendingOff:])
	fr.pendingOff += n
	return n, nil
}

func (fr *FrameReader) readHeader() error {
	var magicBuf [4]byte
	if _, err := io.ReadFull(fr.r, magicBuf[:]); err != nil {
		return ioErr(err)
	}
	magic := binary.LittleEndian.Uint32(magicBuf[:])

	switch magic {
	case legacyMagic:
		fr.legacy = true
		fr.info = NewFrameInfo().WithLegacy(true)
		return nil
	case frameMagic:
	default:
		return ErrUnknownMagic
	}

	// Read FLG+BD, then in one read the optional fields that FLG announces
	// (content size, dictionary id) plus the header checksum byte.
	head := make([]byte, 2)
	if _, err := io.ReadFull(fr.r, head); err != nil {
		return ioErr(err)
	}
	flg := head[0]
	want := 1 // header checksum byte
	if flg&(1<<3) != 0 {
		want += 8
	}
	if flg&(1<<0) != 0 {
		want += 4
	}
	rest := make([]byte, want)
	if _, err := io.ReadFull(fr.r, rest); err != nil {
		return ioErr(err)
	}

	info, _, err := decodeDescriptor(append(head, rest...))
	if err != nil {
		return err
	}
	fr.info = info
	if info.ContentChecksum {
		fr.content = NewXXHash32(0)
	}
	return nil
}

// readBlock reads one block header plus payload (and optional checksum),
// decodes it, and appends the result to fr.pending. A zero-length block-size
// word (modern format) or a short read (legacy format) marks end of stream.
func (fr *FrameReader) readBlock() error {
	if fr.legacy {
		return fr.readLegacyBlock()
	}

	var szb [4]byte
	if _, err := io.ReadFull(fr.r, szb[:]); err != nil {
		return ioErr(err)
	}
	word := binary.LittleEndian.Uint32(szb[:])
	if word == 0 {
		return fr.finish()
	}

	raw := word&0x80000000 != 0
	size := int(word &^ 0x80000000)
	maxBlock := fr.info.BlockSizeCode.blockSizeBytes()
	if size > maxBlock {
		return ErrBlockSizeExceedsMax
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(fr.r, payload); err != nil {
		if err == io.ErrUnexpectedEOF || err == io.EOF {
			return corrupt("truncated block payload")
		}
		return ioErr(err)
	}
	if fr.info.BlockChecksum {
		var cb [4]byte
		if _, err := io.ReadFull(fr.r, cb[:]); err != nil {
			return ioErr(err)
		}
		if binary.LittleEndian.Uint32(cb[:]) != checksum32(0, payload) {
			return ErrBlockChecksumMismatch
		}
	}

	var decoded []byte
	if raw {
		decoded = payload
	} else {
		out := newBoundedSink(make([]byte, maxBlock))
		if fr.info.BlockMode == BlockLinked {
			out.withDict(fr.dict)
		}
		if err := decodeBlock(payload, out, fr.dict); err != nil {
			if err == ErrOutputTooSmall {
				return ErrBlockSizeExceedsMax
			}
			return err
		}
		decoded = out.bytes()
	}

	if fr.content != nil {
		fr.content.Write(decoded) //nolint:errcheck // hash.Hash32.Write never fails
	}
	if fr.info.BlockMode == BlockLinked {
		fr.dict = slideDictWindow(fr.dict, decoded)
	}

	fr.pending = decoded
	fr.pendingOff = 0
	return nil
}

// readLegacyBlock reads one legacy-format block: a 4-byte LE compressed size
// followed by that many compressed bytes. Legacy frames have no end marker;
// EOF on the size word (or a size word of 0) ends the stream.
func (fr *FrameReader) readLegacyBlock() error {
	var szb [4]byte
	n, err := io.ReadFull(fr.r, szb[:])
	if err == io.EOF || (err == io.ErrUnexpectedEOF && n == 0) {
		return fr.finish()
	}
	if err != nil {
		return ioErr(err)
	}
	size := binary.LittleEndian.Uint32(szb[:])
	if size == 0 {
		return fr.finish()
	}
	if size > legacyBlockSize*2 {
		return ErrBlockSizeExceedsMax
	}

	payload := make([]byte, size)
	if _, err := io.ReadFull(fr.r, payload); err != nil {
		return ioErr(err)
	}

	out := newBoundedSink(make([]byte, legacyBlockSize))
	if err := decodeBlock(payload, out, nil); err != nil {
		if err == ErrOutputTooSmall {
			return ErrBlockSizeExceedsMax
		}
		return err
	}
	fr.pending = out.bytes()
	fr.pendingOff = 0
	return nil
}

func (fr *FrameReader) finish() error {
	fr.finished = true
	fr.pending = nil
	fr.pendingOff = 0
	if fr.legacy || fr.content == nil {
		return io.EOF
	}
	var cb [4]byte
	if _, err := io.ReadFull(fr.r, cb[:]); err != nil {
		return ioErr(err)
	}
	if binary.LittleEndian.Uint32(cb[:]) != fr.content.Sum32() {
		return ErrContentChecksumMismatch
	}
	return io.EOF
}
