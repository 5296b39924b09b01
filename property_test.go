// Property table tests.
//
// A property table is only as good as its write-time validation: the codec
// writes a name length and a string length into single bytes, so anything
// that slipped past Set would either be truncated on disk or silently dropped
// by the writer. These tests pin the exact boundaries and verify that a
// rejected Set leaves the table byte-for-byte unchanged.
package cktext

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

// TestPropertyNameBounds verifies the 1-64 byte name window. The values
// 0, 65 and 10000 come straight from the format limits; 1 and 64 are the
// inclusive edges that must still be accepted.
func TestPropertyNameBounds(t *testing.T) {
	tests := []struct {
		size int
		want error
	}{
		{0, ErrInvalidName},
		{1, nil},
		{64, nil},
		{65, ErrInvalidName},
		{10000, ErrInvalidName},
	}

	for _, tt := range tests {
		var p Properties
		name := strings.Repeat("n", tt.size)
		err := p.Set(name, Int(1))
		if !errors.Is(err, tt.want) {
			t.Errorf("Set(name len %d) = %v, want %v", tt.size, err, tt.want)
		}
		if tt.want != nil && p.Len() != 0 {
			t.Errorf("rejected name len %d still inserted", tt.size)
		}
	}
}

// TestPropertyStringBounds verifies the 1-255 byte window for String values.
func TestPropertyStringBounds(t *testing.T) {
	tests := []struct {
		size int
		want error
	}{
		{0, ErrInvalidValue},
		{1, nil},
		{255, nil},
		{256, ErrInvalidValue},
	}

	for _, tt := range tests {
		var p Properties
		err := p.Set("s", String(strings.Repeat("v", tt.size)))
		if !errors.Is(err, tt.want) {
			t.Errorf("Set(string len %d) = %v, want %v", tt.size, err, tt.want)
		}
	}
}

// TestPropertyRejectKeepsOldValue verifies that a rejected overwrite does
// not disturb the value already stored under the same name.
func TestPropertyRejectKeepsOldValue(t *testing.T) {
	var p Properties
	p.Set("hello", String("你好"))

	if err := p.Set("hello", String("")); err == nil {
		t.Fatal("empty string accepted")
	}
	if got := p.Get("hello"); got != String("你好") {
		t.Errorf("Get = %v, want 你好", got)
	}
}

// TestPropertyNilValue verifies that an untyped value is refused and never
// stored.
func TestPropertyNilValue(t *testing.T) {
	var p Properties
	if err := p.Set("x", nil); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Set(nil) = %v, want ErrInvalidValue", err)
	}
	if !p.Empty() {
		t.Error("nil value stored")
	}
}

// TestPropertyGetMissing verifies the nil sentinel for absent names.
func TestPropertyGetMissing(t *testing.T) {
	var p Properties
	if v := p.Get("missing"); v != nil {
		t.Errorf("Get(missing) = %v, want nil", v)
	}
	if _, ok := p.Lookup("missing"); ok {
		t.Error("Lookup(missing) reported present")
	}
	if KindOf(p.Get("missing")) != KindNone {
		t.Error("missing value has a kind")
	}
}

// TestPropertyOverwrite verifies that Set replaces, including across kinds.
func TestPropertyOverwrite(t *testing.T) {
	var p Properties
	p.Set("k", Int(1))
	p.Set("k", Float(2.5))

	if p.Len() != 1 {
		t.Errorf("Len = %d, want 1", p.Len())
	}
	if got := p.Get("k"); got != Float(2.5) {
		t.Errorf("Get = %v, want 2.5", got)
	}
}

// TestPropertyIterationOrder verifies that All yields names in sorted
// order regardless of insertion order. The codec relies on this to produce
// identical bytes for identical content.
func TestPropertyIterationOrder(t *testing.T) {
	var p Properties
	for _, name := range []string{"zeta", "alpha", "mid"} {
		p.Set(name, Bool(true))
	}

	var names []string
	for name := range p.All() {
		names = append(names, name)
	}
	if !slices.Equal(names, []string{"alpha", "mid", "zeta"}) {
		t.Errorf("order = %v", names)
	}
}

// TestPropertyIterationBreak verifies early termination of All.
func TestPropertyIterationBreak(t *testing.T) {
	var p Properties
	p.Set("a", Int(1))
	p.Set("b", Int(2))

	n := 0
	for range p.All() {
		n++
		break
	}
	if n != 1 {
		t.Errorf("yielded %d after break, want 1", n)
	}
}

// TestPropertyRemoveClear covers the plain map operations.
func TestPropertyRemoveClear(t *testing.T) {
	var p Properties
	p.Set("a", Int(1))
	p.Set("b", Int(2))

	p.Remove("a")
	p.Remove("never")
	if p.Len() != 1 || p.Get("a") != nil {
		t.Errorf("after Remove: len %d, a=%v", p.Len(), p.Get("a"))
	}

	p.Clear()
	if !p.Empty() {
		t.Error("Clear left entries")
	}
}

// TestPropertyClone verifies that a clone is independent of its source.
func TestPropertyClone(t *testing.T) {
	p := NewProperties()
	p.Set("a", Int(1))

	c := p.Clone()
	c.Set("a", Int(2))
	c.Set("b", Int(3))

	if p.Get("a") != Int(1) || p.Len() != 1 {
		t.Error("clone shares storage with source")
	}
}

// TestPriorityOf verifies priority derivation: only Int counts, negatives
// clamp to zero, absence gives the default.
func TestPriorityOf(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want uint32
	}{
		{"absent", nil, DefaultPriority},
		{"int", Int(200), 200},
		{"zero", Int(0), 0},
		{"negative", Int(-5), 0},
		{"float ignored", Float(7), DefaultPriority},
		{"string ignored", String("9"), DefaultPriority},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Properties
			if tt.v != nil {
				p.Set(PriorityProperty, tt.v)
			}
			if got := priorityOf(&p); got != tt.want {
				t.Errorf("priorityOf = %d, want %d", got, tt.want)
			}
		})
	}
}
