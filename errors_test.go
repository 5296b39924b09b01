package cktext

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrors(t *testing.T) {
	// Verify all errors are defined and distinct
	errs := []error{
		ErrNotFound,
		ErrExists,
		ErrInvalidName,
		ErrInvalidValue,
		ErrInvalidSource,
		ErrInvalidTranslation,
		ErrBadMagic,
		ErrCorruptRecord,
		ErrCompress,
		ErrDecompress,
	}

	seen := make(map[string]int)
	for i, err := range errs {
		if err == nil {
			t.Fatalf("error at index %d is nil", i)
		}
		msg := err.Error()
		if prev, ok := seen[msg]; ok {
			t.Errorf("error at index %d has same message as index %d: %q", i, prev, msg)
		}
		seen[msg] = i
	}
}

func TestErrorsWrapped(t *testing.T) {
	// Errors returned by the codec wrap a sentinel with context
	wrapped := fmt.Errorf("group %q: %w", "menu", fmt.Errorf("%w: truncated", ErrCorruptRecord))
	if !errors.Is(wrapped, ErrCorruptRecord) {
		t.Error("errors.Is failed through two levels of wrapping")
	}
	if errors.Is(wrapped, ErrBadMagic) {
		t.Error("wrapped error matched the wrong sentinel")
	}
}
