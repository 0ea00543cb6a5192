// SPDX-License-Identifier: MIT
// Source: github.com/woozymasta/lzo (teacher idiom, adapted for LZ4)

package lz4

import (
	"errors"
	"fmt"
)

// Sentinel errors for block and frame compression/decompression.
var (
	// ErrOutputTooSmall is returned when a bounded sink cannot hold the result.
	ErrOutputTooSmall = errors.New("lz4: output buffer too small")
	// ErrCorrupt is returned when compressed data fails to parse or violates an invariant.
	ErrCorrupt = errors.New("lz4: corrupt input")
	// ErrUnsupportedFrameVersion is returned for an FLG version other than 01.
	ErrUnsupportedFrameVersion = errors.New("lz4: unsupported frame version")
	// ErrHeaderChecksumMismatch is returned when the frame descriptor checksum byte doesn't match.
	ErrHeaderChecksumMismatch = errors.New("lz4: frame header checksum mismatch")
	// ErrBlockChecksumMismatch is returned when a per-block checksum doesn't match.
	ErrBlockChecksumMismatch = errors.New("lz4: block checksum mismatch")
	// ErrContentChecksumMismatch is returned when the final content checksum doesn't match.
	ErrContentChecksumMismatch = errors.New("lz4: content checksum mismatch")
	// ErrUnknownMagic is returned when the leading 4 bytes match neither frame magic.
	ErrUnknownMagic = errors.New("lz4: unknown frame magic")
	// ErrBlockSizeExceedsMax is returned when a decoded or raw block exceeds the configured maximum.
	ErrBlockSizeExceedsMax = errors.New("lz4: block size exceeds configured maximum")
	// ErrSizeMismatch is returned when a decoder-reported size disagrees with a caller-supplied expectation.
	ErrSizeMismatch = errors.New("lz4: decompressed size mismatch")
)

// CorruptError annotates ErrCorrupt with a discriminating kind, so callers can
// branch with errors.Is(err, lz4.ErrCorrupt) while still inspecting Kind for
// diagnostics.
type CorruptError struct {
	Kind string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("lz4: corrupt input: %s", e.Kind)
}

func (e *CorruptError) Unwrap() error {
	return ErrCorrupt
}

func corrupt(kind string) error {
	return &CorruptError{Kind: kind}
}

// IoError wraps an I/O failure encountered while streaming a frame, preserving
// the original error for errors.Is/errors.As.
type IoError struct {
	Err error
}

func (e *IoError) Error() string {
	return fmt.Sprintf("lz4: i/o error: %v", e.Err)
}

func (e *IoError) Unwrap() error {
	return e.Err
}

func ioErr(err error) error {
	if err == nil {
		return nil
	}
	return &IoError{Err: err}
}
