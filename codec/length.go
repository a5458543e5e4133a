package codec

import (
	"github.com/wippyai/xutf8"
	"github.com/wippyai/xutf8/errors"
)

// MaxCodePoint is the largest value the 6-byte form can carry.
const MaxCodePoint = 0x7FFFFFFF

// MaxCharLen is the longest encoded sequence.
const MaxCharLen = 6

// limits[i] is the first code point that no longer fits in i+1 bytes.
var limits = [MaxCharLen]int64{0x80, 0x800, 0x10000, 0x200000, 0x4000000, 0x80000000}

// CalcChar returns the number of bytes EncodeChar would write for cp.
func CalcChar(cp int64) (int, error) {
	return charLen(cp, errors.PhaseMeasure)
}

func charLen(cp int64, phase errors.Phase) (int, error) {
	if cp >= 0 {
		for i, limit := range limits {
			if cp < limit {
				return i + 1, nil
			}
		}
	}
	debugf("illegal code point %d in %s", cp, phase)
	return 0, errors.IllegalCodePoint(phase, cp)
}

// CalcString returns the number of bytes needed to encode every code point
// of text. Positions advance by text.WidthOf, so surrogate pairs in UTF-16
// text count once.
func CalcString(text xutf8.Text) (int, error) {
	if text == nil {
		return 0, errors.NilPointer(errors.PhaseMeasure, "text")
	}
	total := 0
	for pos, end := 0, text.Len(); pos < end; {
		cp := text.CodePointAt(pos)
		n, err := CalcChar(cp)
		if err != nil {
			return 0, err
		}
		total += n
		w := text.WidthOf(cp)
		if w < 1 {
			w = 1
		}
		pos += w
	}
	return total, nil
}
