// SPDX-License-Identifier: MIT
// Source: spec section 3/6 (frame descriptor layout), grounded on
// other_examples/andybalholm-pack__frame.go for the magic + FLG/BD byte
// writing idiom and on github.com/pierrec/lz4/v4 (required by
// syncthing-syncthing) for the field names (FrameInfo, BlockSizeCode).

package lz4

import "encoding/binary"

const (
	frameMagic  uint32 = 0x184D2204
	legacyMagic uint32 = 0x184C2102

	legacyBlockSize = 8 << 20 // fixed 8MiB uncompressed blocks
)

const flgVersion = 0x01 // version bits value (01), shifted into FLG bits 7-6

// encodeDescriptor writes the FLG/BD byte pair, optional content size,
// optional dictionary id, and the header checksum byte, per spec section 6.
func encodeDescriptor(info FrameInfo) []byte {
	flg := byte(flgVersion << 6)
	if info.BlockMode == BlockIndependent {
		flg |= 1 << 5
	}
	if info.BlockChecksum {
		flg |= 1 << 4
	}
	if info.HasContentSize {
		flg |= 1 << 3
	}
	if info.ContentChecksum {
		flg |= 1 << 2
	}
	if info.HasDictID {
		flg |= 1 << 0
	}

	bd := byte(info.BlockSizeCode) << 4

	body := []byte{flg, bd}
	if info.HasContentSize {
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], info.ContentSize)
		body = append(body, b[:]...)
	}
	if info.HasDictID {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], info.DictID)
		body = append(body, b[:]...)
	}

	hc := byte(checksum32(0, body) >> 8)

	out := make([]byte, 4+len(body)+1)
	binary.LittleEndian.PutUint32(out, frameMagic)
	copy(out[4:], body)
	out[len(out)-1] = hc
	return out
}

// decodeDescriptor parses FLG, BD, and any optional fields from body (which
// must start right after the magic) and validates the header checksum byte
// that immediately follows them. It returns the parsed FrameInfo and the
// number of bytes consumed, including the checksum byte.
func decodeDescriptor(body []byte) (FrameInfo, int, error) {
	if len(body) < 3 {
		return FrameInfo{}, 0, corrupt("truncated frame descriptor")
	}
	flg := body[0]
	bd := body[1]

	version := flg >> 6
	if version != flgVersion {
		return FrameInfo{}, 0, ErrUnsupportedFrameVersion
	}
	if flg&(1<<1) != 0 {
		return FrameInfo{}, 0, corrupt("reserved FLG bit set")
	}
	if bd&0x8f != 0 {
		return FrameInfo{}, 0, corrupt("reserved BD bits set")
	}

	info := NewFrameInfo()
	if flg&(1<<5) != 0 {
		info.BlockMode = BlockIndependent
	} else {
		info.BlockMode = BlockLinked
	}
	info.BlockChecksum = flg&(1<<4) != 0
	info.HasContentSize = flg&(1<<3) != 0
	info.ContentChecksum = flg&(1<<2) != 0
	info.HasDictID = flg&(1<<0) != 0
	info.BlockSizeCode = BlockSizeCode(bd >> 4)
	if info.BlockSizeCode < Block64KB || info.BlockSizeCode > Block4MB {
		return FrameInfo{}, 0, corrupt("invalid block-max-size code")
	}

	pos := 2
	if info.HasContentSize {
		if pos+8 > len(body) {
			return FrameInfo{}, 0, corrupt("truncated content size")
		}
		info.ContentSize = binary.LittleEndian.Uint64(body[pos:])
		pos += 8
	}
	if info.HasDictID {
		if pos+4 > len(body) {
			return FrameInfo{}, 0, corrupt("truncated dictionary id")
		}
		info.DictID = binary.LittleEndian.Uint32(body[pos:])
		pos += 4
	}
	if pos >= len(body) {
		return FrameInfo{}, 0, corrupt("missing header checksum byte")
	}

	wantHC := byte(checksum32(0, body[:pos]) >> 8)
	gotHC := body[pos]
	if wantHC != gotHC {
		return FrameInfo{}, 0, ErrHeaderChecksumMismatch
	}
	pos++

	return info, pos, nil
}
