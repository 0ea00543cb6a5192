// SPDX-License-Identifier: MIT
// Source: spec section 4.E, grounded on github.com/klauspost/readahead
// (required by minio-minio) for the "accumulate into a fixed block buffer,
// flush as a whole unit" streaming shape, and on the teacher's sync.Pool
// table recycling in hashtable_pool.go for the per-block hash table.

package lz4

import (
	"encoding/binary"
	"errors"
	"hash"
	"io"
)

type frameWriterState int

const (
	frameFresh frameWriterState = iota
	frameWriting
	frameFinished
)

const dictWindowSize = 64 << 10

// ErrFrameClosed is returned by Write when called on a FrameWriter that has
// already been closed. Close on a closed FrameWriter returns nil.
var ErrFrameClosed = errors.New("lz4: write to closed frame")

// FrameWriter implements the frame encoder described in spec section 4.E: on
// first write it emits magic + descriptor, then buffers uncompressed bytes
// into block-sized chunks, compressing and emitting each as it fills, and
// writes the end mark (and optional content checksum) on Close.
type FrameWriter struct {
	w    io.Writer
	info FrameInfo

	state     frameWriterState
	blockSize int
	buf       []byte // pending uncompressed bytes, len <= blockSize
	dict      []byte // up to 64KiB of the previous block's tail (BlockLinked only)
	table     *hashTableLarge
	content   hash.Hash32
	err       error
}

// NewFrameWriter returns a FrameWriter that writes an LZ4 frame to w
// according to info. info.Legacy selects the legacy frame format, which
// ignores all other FrameInfo fields (no descriptor, no checksums).
func NewFrameWriter(w io.Writer, info FrameInfo) *FrameWriter {
	fw := &FrameWriter{w: w, info: info}
	if info.ContentChecksum {
		fw.content = NewXXHash32(0)
	}
	return fw
}

func (fw *FrameWriter) Write(p []byte) (int, error) {
	if fw.err != nil {
		return 0, fw.err
	}
	if fw.state == frameFinished {
		return 0, ErrFrameClosed
	}

	if fw.state == frameFresh {
		if err := fw.writeHeader(len(p)); err != nil {
			fw.err = err
			return 0, err
		}
		fw.state = frameWriting
	}

	n := len(p)
	for len(p) > 0 {
		room := fw.blockSize - len(fw.buf)
		take := len(p)
		if take > room {
			take = room
		}
		fw.buf = append(fw.buf, p[:take]...)
		if fw.content != nil {
			fw.content.Write(p[:take]) //nolint:errcheck // hash.Hash32.Write never fails
		}
		p = p[take:]

		if len(fw.buf) == fw.blockSize {
			if err := fw.flushBlock(false); err != nil {
				fw.err = err
				return n - len(p), err
			}
		}
	}
	return n, nil
}

// Flush forces any buffered-but-not-yet-block-sized bytes out as a short
// block immediately, without ending the frame. Subsequent writes start a
// fresh block. Useful for latency-sensitive producers that would rather
// emit a small block than wait for blockSize bytes to accumulate.
func (fw *FrameWriter) Flush() error {
	if fw.err != nil {
		return fw.err
	}
	if fw.state != frameWriting {
		return nil
	}
	if err := fw.flushBlock(false); err != nil {
		fw.err = err
		return err
	}
	return nil
}

// writeHeader picks the wire block size (per spec 4.E's auto-detect
// heuristic) and emits magic + descriptor.
func (fw *FrameWriter) writeHeader(firstWriteLen int) error {
	if fw.info.Legacy {
		fw.blockSize = legacyBlockSize
		fw.buf = make([]byte, 0, fw.blockSize)
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], legacyMagic)
		_, err := fw.w.Write(b[:])
		return ioErr(err)
	}

	code := fw.info.BlockSizeCode
	if code == BlockAuto {
		if firstWriteLen >= 1<<20 {
			code = Block1MB
		} else {
			code = Block64KB
		}
		fw.info.BlockSizeCode = code
	}
	fw.blockSize = code.blockSizeBytes()
	fw.buf = make([]byte, 0, fw.blockSize)
	// Every frame block goes through the large pooled table, not just linked
	// ones: block sizes run up to 4MB, well past the block-level 4096-entry
	// table's sweet spot.
	fw.table = acquireHashTableLarge()

	hdr := encodeDescriptor(fw.info)
	_, err := fw.w.Write(hdr)
	return ioErr(err)
}

// flushBlock compresses fw.buf, writes it as one block, and resets fw.buf for
// the next block. In the modern format a block that does not shrink is
// written raw with the size word's top bit set; the legacy format always
// writes the compressed output. isFinal is not read.
func (fw *FrameWriter) flushBlock(isFinal bool) error {
	if len(fw.buf) == 0 {
		return nil
	}
	block := fw.buf

	if fw.info.Legacy {
		compressed, err := CompressBlock(block)
		if err != nil {
			return err
		}
		var szb [4]byte
		binary.LittleEndian.PutUint32(szb[:], uint32(len(compressed)))
		if _, err := fw.w.Write(szb[:]); err != nil {
			return ioErr(err)
		}
		if _, err := fw.w.Write(compressed); err != nil {
			return ioErr(err)
		}
		fw.buf = fw.buf[:0]
		return nil
	}

	dst := make([]byte, CompressBlockBound(len(block)))
	var n int
	var err error
	if fw.table != nil {
		out := newBoundedSink(dst)
		err = encodeBlock(block, fw.dict, fw.table, out) // encodeBlock resets the table itself
		n = out.len()
	} else {
		n, err = CompressInto(block, dst)
	}
	if err != nil {
		return err
	}

	var payload []byte
	var sizeWord uint32
	if n < len(block) {
		payload = dst[:n]
		sizeWord = uint32(n)
	} else {
		payload = block
		sizeWord = uint32(len(block)) | 0x80000000
	}

	var szb [4]byte
	binary.LittleEndian.PutUint32(szb[:], sizeWord)
	if _, err := fw.w.Write(szb[:]); err != nil {
		return ioErr(err)
	}
	if _, err := fw.w.Write(payload); err != nil {
		return ioErr(err)
	}
	if fw.info.BlockChecksum {
		var cb [4]byte
		binary.LittleEndian.PutUint32(cb[:], checksum32(0, payload))
		if _, err := fw.w.Write(cb[:]); err != nil {
			return ioErr(err)
		}
	}

	if fw.info.BlockMode == BlockLinked {
		fw.dict = slideDictWindow(fw.dict, block)
	}
	fw.buf = fw.buf[:0]
	return nil
}

// slideDictWindow appends next to the existing dictionary window and trims
// it back to the most recent dictWindowSize bytes.
func slideDictWindow(dict, next []byte) []byte {
	merged := append(append([]byte{}, dict...), next...)
	if len(merged) > dictWindowSize {
		merged = merged[len(merged)-dictWindowSize:]
	}
	return merged
}

// Close flushes any pending partial block, writes the end mark, and (if
// enabled) the final content checksum. Calling it again after it succeeded
// returns nil and writes nothing; per spec, frame output is always complete
// even for zero bytes written.
func (fw *FrameWriter) Close() error {
	if fw.err != nil {
		return fw.err
	}
	if fw.state == frameFinished {
		return nil
	}
	if fw.state == frameFresh {
		if err := fw.writeHeader(0); err != nil {
			fw.err = err
			return err
		}
		fw.state = frameWriting
	}

	if err := fw.flushBlock(true); err != nil {
		fw.err = err
		return err
	}

	if fw.table != nil {
		releaseHashTableLarge(fw.table)
		fw.table = nil
	}

	if !fw.info.Legacy {
		var end [4]byte
		if _, err := fw.w.Write(end[:]); err != nil {
			fw.err = ioErr(err)
			return fw.err
		}
		if fw.content != nil {
			var cb [4]byte
			binary.LittleEndian.PutUint32(cb[:], fw.content.Sum32())
			if _, err := fw.w.Write(cb[:]); err != nil {
				fw.err = ioErr(err)
				return fw.err
			}
		}
	}

	fw.state = frameFinished
	return nil
}
