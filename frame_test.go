package lz4

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	ID     int      `json:"id"`
	Name   string   `json:"name"`
	Tags   []string `json:"tags"`
	Active bool     `json:"active"`
}

func jsonBlob(t *testing.T, n int) []byte {
	t.Helper()
	samples := make([]sample, n)
	for i := range samples {
		samples[i] = sample{
			ID:     i,
			Name:   "widget-factory-unit",
			Tags:   []string{"alpha", "beta", "gamma"},
			Active: i%3 == 0,
		}
	}
	b, err := json.Marshal(samples)
	require.NoError(t, err)
	return b
}

func encodeFrame(t *testing.T, data []byte, info FrameInfo) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := NewFrameWriter(&buf, info)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestFrame_RoundTrip_DefaultOptions(t *testing.T) {
	data := []byte("Hello people, what's up?")
	frame := encodeFrame(t, data, NewFrameInfo())

	r := NewFrameReader(bytes.NewReader(frame))
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestFrame_RoundTrip_EmptyInput(t *testing.T) {
	frame := encodeFrame(t, nil, NewFrameInfo())

	r := NewFrameReader(bytes.NewReader(frame))
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestFrame_RoundTrip_WithChecksumsLargeJSON(t *testing.T) {
	data := jsonBlob(t, 4000) // ~350KB of structured JSON
	info := NewFrameInfo().
		WithBlockChecksum(true).
		WithContentChecksum(true).
		WithContentSize(uint64(len(data)))
	frame := encodeFrame(t, data, info)

	r := NewFrameReader(bytes.NewReader(frame))
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, data, out)
	require.Equal(t, info.ContentSize, r.Info().ContentSize)
}

func TestFrame_ContentChecksum_DetectsBitFlip(t *testing.T) {
	data := jsonBlob(t, 4000)
	frame := encodeFrame(t, data, NewFrameInfo().WithContentChecksum(true))

	// Flip a bit in the middle of the frame, which lands inside the third
	// 64KiB block's compressed payload.
	corrupt := append([]byte(nil), frame...)
	corrupt[len(corrupt)/2] ^= 0x01

	r := NewFrameReader(bytes.NewReader(corrupt))
	_, err := io.ReadAll(r)
	require.ErrorIs(t, err, ErrContentChecksumMismatch)
}

func TestFrame_BlockChecksum_DetectsCorruption(t *testing.T) {
	data := bytes.Repeat([]byte("checksum me please "), 5000)
	frame := encodeFrame(t, data, NewFrameInfo().WithBlockChecksum(true).WithBlockSize(Block64KB))

	corrupt := append([]byte(nil), frame...)
	// Header is magic(4) + FLG(1) + BD(1) + HC(1) = 7 bytes, then a 4-byte
	// block size word, so the first block's payload starts at offset 11.
	corrupt[13] ^= 0xff

	r := NewFrameReader(bytes.NewReader(corrupt))
	_, err := io.ReadAll(r)
	require.ErrorIs(t, err, ErrBlockChecksumMismatch)
}

func TestFrame_BlockDependence_LinkedAndIndependentBothRoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 3000)

	independent := encodeFrame(t, data, NewFrameInfo().WithBlockMode(BlockIndependent).WithBlockSize(Block64KB))
	linked := encodeFrame(t, data, NewFrameInfo().WithBlockMode(BlockLinked).WithBlockSize(Block64KB))

	outIndep, err := io.ReadAll(NewFrameReader(bytes.NewReader(independent)))
	require.NoError(t, err)
	outLinked, err := io.ReadAll(NewFrameReader(bytes.NewReader(linked)))
	require.NoError(t, err)

	require.Equal(t, data, outIndep)
	require.Equal(t, data, outLinked)
}

func TestFrame_MultipleBlocks_SmallBlockSize(t *testing.T) {
	data := bytes.Repeat([]byte{0x42}, 300*1024) // spans several 64KiB blocks
	frame := encodeFrame(t, data, NewFrameInfo().WithBlockSize(Block64KB))

	out, err := io.ReadAll(NewFrameReader(bytes.NewReader(frame)))
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestFrame_UnknownMagic(t *testing.T) {
	garbage := []byte{0xde, 0xad, 0xbe, 0xef, 0, 0, 0, 0}
	_, err := io.ReadAll(NewFrameReader(bytes.NewReader(garbage)))
	require.ErrorIs(t, err, ErrUnknownMagic)
}

func TestFrame_TruncatedStreamIsCorrupt(t *testing.T) {
	data := bytes.Repeat([]byte("truncate me"), 2000)
	frame := encodeFrame(t, data, NewFrameInfo().WithContentChecksum(true))

	truncated := frame[:len(frame)-10]
	_, err := io.ReadAll(NewFrameReader(bytes.NewReader(truncated)))
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestFrame_Legacy_RoundTrip(t *testing.T) {
	data := bytes.Repeat([]byte("legacy format payload "), 10000)
	frame := encodeFrame(t, data, NewFrameInfo().WithLegacy(true))

	out, err := io.ReadAll(NewFrameReader(bytes.NewReader(frame)))
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestFrame_Flush_EmitsShortBlock(t *testing.T) {
	var buf bytes.Buffer
	w := NewFrameWriter(&buf, NewFrameInfo().WithBlockSize(Block64KB))

	_, err := w.Write([]byte("short burst"))
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	// A second write after Flush starts a fresh block; the frame should
	// still decode to the concatenation of everything written.
	_, err = w.Write([]byte(" and more"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	out, err := io.ReadAll(NewFrameReader(&buf))
	require.NoError(t, err)
	require.Equal(t, []byte("short burst and more"), out)
}

func TestFrame_WriteAfterClose(t *testing.T) {
	var buf bytes.Buffer
	w := NewFrameWriter(&buf, NewFrameInfo())
	require.NoError(t, w.Close())

	_, err := w.Write([]byte("too late"))
	require.ErrorIs(t, err, ErrFrameClosed)
}

func BenchmarkFrameRoundTrip(b *testing.B) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 20000)
	info := NewFrameInfo().WithContentChecksum(true)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var buf bytes.Buffer
		w := NewFrameWriter(&buf, info)
		if _, err := w.Write(data); err != nil {
			b.Fatal(err)
		}
		if err := w.Close(); err != nil {
			b.Fatal(err)
		}
		if _, err := io.ReadAll(NewFrameReader(&buf)); err != nil {
			b.Fatal(err)
		}
	}
}
