package cktext

import "testing"

func TestKindOf(t *testing.T) {
	tests := []struct {
		v    Value
		want Kind
	}{
		{nil, KindNone},
		{Bool(true), KindBool},
		{Int(-1), KindInt},
		{Float(3.14), KindFloat},
		{String("x"), KindString},
	}

	for _, tt := range tests {
		if got := KindOf(tt.v); got != tt.want {
			t.Errorf("KindOf(%#v) = %v, want %v", tt.v, got, tt.want)
		}
		if Valid(tt.v) != (tt.want != KindNone) {
			t.Errorf("Valid(%#v) = %v", tt.v, Valid(tt.v))
		}
	}
}

// TestKindWireTags pins the kind values to the on-disk type tags.
func TestKindWireTags(t *testing.T) {
	if KindBool != 1 || KindInt != 2 || KindFloat != 3 || KindString != 4 {
		t.Errorf("kind tags changed: %d %d %d %d", KindBool, KindInt, KindFloat, KindString)
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{nil, "<none>"},
		{Bool(false), "false"},
		{Int(42), "42"},
		{Float(3.14), "3.14"},
		{String("再见"), `"再见"`},
	}

	for _, tt := range tests {
		if got := Format(tt.v); got != tt.want {
			t.Errorf("Format(%#v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}
