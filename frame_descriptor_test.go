package lz4

import (
	"bytes"
	"testing"
)

func TestDescriptor_RoundTrip(t *testing.T) {
	// encodeDescriptor writes BlockSizeCode verbatim; BlockAuto only gets
	// resolved to a concrete code by FrameWriter, so every case here picks
	// one explicitly.
	cases := []FrameInfo{
		NewFrameInfo().WithBlockSize(Block64KB),
		NewFrameInfo().WithBlockSize(Block64KB).WithBlockChecksum(true),
		NewFrameInfo().WithBlockSize(Block64KB).WithContentChecksum(true),
		NewFrameInfo().WithBlockSize(Block64KB).WithBlockMode(BlockLinked),
		NewFrameInfo().WithBlockSize(Block4MB),
		NewFrameInfo().WithBlockSize(Block64KB).WithContentSize(123456789),
		NewFrameInfo().WithBlockSize(Block64KB).WithDictID(42),
		NewFrameInfo().WithBlockChecksum(true).WithContentChecksum(true).WithContentSize(9000).WithDictID(7).WithBlockMode(BlockLinked).WithBlockSize(Block256KB),
	}

	for i, info := range cases {
		encoded := encodeDescriptor(info)
		if !bytes.Equal(encoded[:4], []byte{0x04, 0x22, 0x4D, 0x18}) {
			t.Fatalf("case %d: wrong magic bytes: % x", i, encoded[:4])
		}

		decoded, n, err := decodeDescriptor(encoded[4:])
		if err != nil {
			t.Fatalf("case %d: decodeDescriptor failed: %v", i, err)
		}
		if n != len(encoded)-4 {
			t.Fatalf("case %d: consumed %d bytes, want %d", i, n, len(encoded)-4)
		}

		if decoded.BlockMode != info.BlockMode {
			t.Errorf("case %d: BlockMode = %v, want %v", i, decoded.BlockMode, info.BlockMode)
		}
		if decoded.BlockChecksum != info.BlockChecksum {
			t.Errorf("case %d: BlockChecksum = %v, want %v", i, decoded.BlockChecksum, info.BlockChecksum)
		}
		if decoded.ContentChecksum != info.ContentChecksum {
			t.Errorf("case %d: ContentChecksum = %v, want %v", i, decoded.ContentChecksum, info.ContentChecksum)
		}
		if decoded.HasContentSize != info.HasContentSize || decoded.ContentSize != info.ContentSize {
			t.Errorf("case %d: ContentSize = (%v,%d), want (%v,%d)", i, decoded.HasContentSize, decoded.ContentSize, info.HasContentSize, info.ContentSize)
		}
		if decoded.HasDictID != info.HasDictID || decoded.DictID != info.DictID {
			t.Errorf("case %d: DictID = (%v,%d), want (%v,%d)", i, decoded.HasDictID, decoded.DictID, info.HasDictID, info.DictID)
		}
		if decoded.BlockSizeCode != info.BlockSizeCode {
			t.Errorf("case %d: BlockSizeCode = %v, want %v", i, decoded.BlockSizeCode, info.BlockSizeCode)
		}
	}
}

func TestDescriptor_HeaderChecksumMismatch(t *testing.T) {
	encoded := encodeDescriptor(NewFrameInfo().WithBlockSize(Block64KB))
	corrupt := append([]byte(nil), encoded...)
	corrupt[len(corrupt)-1] ^= 0xff

	_, _, err := decodeDescriptor(corrupt[4:])
	if err != ErrHeaderChecksumMismatch {
		t.Fatalf("expected ErrHeaderChecksumMismatch, got %v", err)
	}
}

func TestDescriptor_UnsupportedVersion(t *testing.T) {
	encoded := encodeDescriptor(NewFrameInfo().WithBlockSize(Block64KB))
	body := append([]byte(nil), encoded[4:]...)
	body[0] = body[0]&^0xc0 | (0x02 << 6) // version bits = 10, not the supported 01

	_, _, err := decodeDescriptor(body)
	if err != ErrUnsupportedFrameVersion {
		t.Fatalf("expected ErrUnsupportedFrameVersion, got %v", err)
	}
}

func TestDescriptor_TruncatedBody(t *testing.T) {
	_, _, err := decodeDescriptor([]byte{0x40})
	if err == nil {
		t.Fatal("expected an error for a truncated descriptor body")
	}
}
