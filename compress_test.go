package lz4

import (
	"bytes"
	"fmt"
	"testing"
)

func testInputSet() []struct {
	name string
	data []byte
} {
	return []struct {
		name string
		data []byte
	}{
		{name: "nil", data: nil},
		{name: "empty", data: []byte{}},
		{name: "single-byte", data: []byte{0xAB}},
		{name: "short-text", data: []byte("Hello people, what's up?")},
		{name: "repeated-pattern", data: bytes.Repeat([]byte("abc123"), 2000)},
		{name: "long-run", data: bytes.Repeat([]byte{0xFF}, 100000)},
		{name: "byte-cycle", data: bytes.Repeat([]byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, 1200)},
		{name: "at-minmatch-boundary", data: []byte("abcdabcd")},
		{name: "just-below-minmatch", data: []byte("abcdab")},
	}
}

func TestCompressDecompress_RoundTrip(t *testing.T) {
	for _, in := range testInputSet() {
		t.Run(in.name, func(t *testing.T) {
			cmp, err := CompressBlock(in.data)
			if err != nil {
				t.Fatalf("CompressBlock failed: %v", err)
			}

			out, err := UncompressBlockToSize(cmp, len(in.data))
			if err != nil {
				t.Fatalf("UncompressBlockToSize failed: %v", err)
			}
			if !bytes.Equal(out, in.data) {
				t.Fatalf("round-trip mismatch: got=%x want=%x", out, in.data)
			}
		})
	}
}

func TestCompressBlockBound(t *testing.T) {
	for _, n := range []int{0, 1, 254, 255, 256, 1 << 20} {
		bound := CompressBlockBound(n)
		data := bytes.Repeat([]byte{0xAA, 0xBB}, n/2+1)[:n]
		cmp, err := CompressBlock(data)
		if err != nil {
			t.Fatalf("CompressBlock(n=%d) failed: %v", n, err)
		}
		if len(cmp) > bound {
			t.Fatalf("CompressBlockBound(%d)=%d is unsafe: got %d compressed bytes", n, bound, len(cmp))
		}
	}
}

func TestCompressInto_OutputTooSmall(t *testing.T) {
	data := bytes.Repeat([]byte("incompressible-ish but not quite "), 50)
	dst := make([]byte, 4)
	_, err := CompressInto(data, dst)
	if err != ErrOutputTooSmall {
		t.Fatalf("expected ErrOutputTooSmall, got %v", err)
	}
}

func TestCompressIntoWithDict_FindsMatchAcrossBoundary(t *testing.T) {
	dict := []byte("the quick brown fox jumps over the lazy dog")
	src := []byte("the quick brown fox jumps over the lazy dog again and again")

	dst := make([]byte, CompressBlockBound(len(src)))
	n, err := CompressIntoWithDict(src, dst, dict)
	if err != nil {
		t.Fatalf("CompressIntoWithDict failed: %v", err)
	}

	out := make([]byte, len(src))
	un, err := UncompressBlockWithDict(dst[:n], out, dict)
	if err != nil {
		t.Fatalf("UncompressBlockWithDict failed: %v", err)
	}
	if !bytes.Equal(out[:un], src) {
		t.Fatalf("dict round-trip mismatch: got=%q want=%q", out[:un], src)
	}

	plain, err := CompressBlock(src)
	if err != nil {
		t.Fatalf("CompressBlock failed: %v", err)
	}
	if n >= len(plain) {
		t.Fatalf("dict compression (%d bytes) did not beat dict-less compression (%d bytes)", n, len(plain))
	}
}

func TestCompressBlock_Deterministic(t *testing.T) {
	data := bytes.Repeat([]byte("deterministic output please"), 300)
	a, err := CompressBlock(data)
	if err != nil {
		t.Fatalf("CompressBlock failed: %v", err)
	}
	b, err := CompressBlock(data)
	if err != nil {
		t.Fatalf("CompressBlock failed: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatal("CompressBlock is not deterministic across calls with identical input")
	}
}

func BenchmarkCompressBlock(b *testing.B) {
	data := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog "), 2000)
	dst := make([]byte, CompressBlockBound(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := CompressInto(data, dst); err != nil {
			b.Fatal(err)
		}
	}
}

func FuzzCompressDecompressRoundTrip(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("hello world"))
	f.Add(bytes.Repeat([]byte{0x00}, 1024))
	f.Add(bytes.Repeat([]byte("abc"), 500))

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) > 1<<20 {
			data = data[:1<<20]
		}

		cmp, err := CompressBlock(data)
		if err != nil {
			t.Fatalf("CompressBlock failed: %v", err)
		}

		out, err := UncompressBlockToSize(cmp, len(data))
		if err != nil {
			t.Fatalf("UncompressBlockToSize failed: %v", err)
		}

		if !bytes.Equal(out, data) {
			t.Fatalf("round-trip mismatch: got=%d want=%d bytes", len(out), len(data))
		}
	})
}

func ExampleCompressBlock() {
	data := []byte("Hello people, what's up?")
	cmp, err := CompressBlock(data)
	if err != nil {
		panic(err)
	}
	out, err := UncompressBlockToSize(cmp, len(data))
	if err != nil {
		panic(err)
	}
	fmt.Println(string(out))
	// Output: Hello people, what's up?
}
