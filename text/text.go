// Package text provides xutf8.Text implementations for common in-memory
// string representations.
//
// UTF16 holds 16-bit code units and reports width 2 for code points that
// need a surrogate pair. Runes holds one code point per element and always
// reports width 1.
package text

import (
	"unicode/utf16"

	"github.com/wippyai/xutf8"
	"github.com/wippyai/xutf8/codec"
)

const (
	surr1    = 0xD800
	surr2    = 0xDC00
	surr3    = 0xE000
	surrSelf = 0x10000
)

var (
	_ xutf8.Text = UTF16(nil)
	_ xutf8.Text = Runes(nil)
)

// UTF16 is text stored as UTF-16 code units.
type UTF16 []uint16

// FromString converts a Go string to UTF-16 code units.
func FromString(s string) UTF16 {
	return UTF16(utf16.Encode([]rune(s)))
}

func (u UTF16) Len() int { return len(u) }

// CodePointAt returns the code point starting at pos. A high surrogate
// followed by a low surrogate yields the combined value; any other unit,
// including an unpaired surrogate, is returned as is.
func (u UTF16) CodePointAt(pos int) int64 {
	c := rune(u[pos])
	if c >= surr1 && c < surr2 && pos+1 < len(u) {
		if d := rune(u[pos+1]); d >= surr2 && d < surr3 {
			return int64(utf16.DecodeRune(c, d))
		}
	}
	return int64(c)
}

func (u UTF16) WidthOf(cp int64) int {
	if cp >= surrSelf {
		return 2
	}
	return 1
}

// Runes is text stored one code point per element.
type Runes []rune

func (r Runes) Len() int                  { return len(r) }
func (r Runes) CodePointAt(pos int) int64 { return int64(r[pos]) }
func (r Runes) WidthOf(int64) int         { return 1 }

// ByteLength returns the encoded size of s.
func ByteLength(s string) int {
	// Every UTF-16 code point is within range, so CalcString cannot fail.
	n, _ := codec.CalcString(FromString(s))
	return n
}
