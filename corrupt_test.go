// Corruption tests.
//
// A container cut short at any byte must fail cleanly: an error wrapping one
// of the format sentinels, and a document back in its cleared state with the
// default group present. Nothing half-loaded may survive.
package cktext

import (
	"errors"
	"testing"
)

func sampleDoc(t *testing.T) *Document {
	t.Helper()
	d := newTestDoc(t)
	d.Properties().Set("title", String("sample"))
	d.Properties().Set("ratio", Float(1.5))
	d.Default().Set("hello", "你好")
	d.Default().Set("bye", "")
	g, _ := d.Insert("menu", withPriority(150))
	g.Properties().Set("beta", Bool(true))
	g.Set("File", "文件")
	g.Set("Edit", "编辑")
	return d
}

// TestTruncatedAtEveryOffset loads every proper prefix of a valid container.
func TestTruncatedAtEveryOffset(t *testing.T) {
	data := encodeDoc(t, sampleDoc(t), false)

	for n := range len(data) {
		d := newTestDoc(t)
		d.Default().Set("stale", "x")
		d.Insert("stale", nil)

		err := d.Load(data[:n])
		if err == nil {
			t.Fatalf("prefix %d/%d loaded without error", n, len(data))
		}
		if !errors.Is(err, ErrBadMagic) && !errors.Is(err, ErrCorruptRecord) {
			t.Errorf("prefix %d: unexpected error %v", n, err)
		}
		if d.Len() != 1 || !d.Empty() || !d.Properties().Empty() {
			t.Errorf("prefix %d: document not cleared", n)
		}
		if d.Group("") == nil {
			t.Fatalf("prefix %d: default group missing", n)
		}
	}
}

// TestTruncatedCompressed cuts a compressed container. The frame is either
// rejected by the decoder or inflates to a short payload; both must fail.
func TestTruncatedCompressed(t *testing.T) {
	data := encodeDoc(t, sampleDoc(t), true)

	for n := HeaderSize; n < len(data); n++ {
		d := newTestDoc(t)
		if err := d.Load(data[:n]); err == nil {
			t.Fatalf("compressed prefix %d/%d loaded without error", n, len(data))
		}
		if !d.Empty() {
			t.Errorf("compressed prefix %d: document not cleared", n)
		}
	}
}

// TestFlippedCompressionFlag sets the flag on an uncompressed payload.
func TestFlippedCompressionFlag(t *testing.T) {
	data := encodeDoc(t, sampleDoc(t), false)
	data[3] = 1

	d := newTestDoc(t)
	if err := d.Load(data); !errors.Is(err, ErrDecompress) {
		t.Errorf("Load = %v, want ErrDecompress", err)
	}
}
