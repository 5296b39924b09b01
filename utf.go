// Code point conversion for the wide lookup variants.
//
// Each call returns a slice owned by the caller; nothing is shared between
// calls.
package cktext

import (
	"unicode/utf16"
	"unicode/utf8"
)

// U8To32 decodes UTF-8 text to code points. Sequences are decoded by their
// lead byte and continuation masks without further validation. A multi-byte
// lead with too few bytes left ends the scan; a stray continuation byte or
// an invalid lead decodes to U+FFFD.
func U8To32(s string) []rune {
	out := make([]rune, 0, len(s))
	for i := 0; i < len(s); {
		c := s[i]
		switch {
		case c < 0x80:
			out = append(out, rune(c))
			i++
		case c < 0xC0 || c >= 0xF8:
			out = append(out, utf8.RuneError)
			i++
		case c < 0xE0:
			if i+2 > len(s) {
				return out
			}
			out = append(out, rune(c&0x1F)<<6|rune(s[i+1]&0x3F))
			i += 2
		case c < 0xF0:
			if i+3 > len(s) {
				return out
			}
			out = append(out, rune(c&0x0F)<<12|rune(s[i+1]&0x3F)<<6|rune(s[i+2]&0x3F))
			i += 3
		default:
			if i+4 > len(s) {
				return out
			}
			out = append(out, rune(c&0x07)<<18|rune(s[i+1]&0x3F)<<12|rune(s[i+2]&0x3F)<<6|rune(s[i+3]&0x3F))
			i += 4
		}
	}
	return out
}

// U16To32 decodes UTF-16 code units to code points. Surrogate pairs are
// combined; lone or out-of-order surrogates are dropped.
func U16To32(s []uint16) []rune {
	out := make([]rune, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := rune(s[i])
		if !utf16.IsSurrogate(c) {
			out = append(out, c)
			continue
		}
		if c <= 0xDBFF && i+1 < len(s) {
			if r := utf16.DecodeRune(c, rune(s[i+1])); r != utf8.RuneError {
				out = append(out, r)
				i++
			}
		}
	}
	return out
}
