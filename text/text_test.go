package text

import (
	"testing"

	"github.com/wippyai/xutf8/codec"
	"github.com/wippyai/xutf8/errors"
)

func TestFromString(t *testing.T) {
	u := FromString("a\U0001F600")
	want := UTF16{'a', 0xD83D, 0xDE00}
	if len(u) != len(want) {
		t.Fatalf("len = %d, want %d", len(u), len(want))
	}
	for i := range want {
		if u[i] != want[i] {
			t.Errorf("unit %d = 0x%04x, want 0x%04x", i, u[i], want[i])
		}
	}
}

func TestUTF16_CodePointAt(t *testing.T) {
	tests := []struct {
		name  string
		units UTF16
		pos   int
		cp    int64
		width int
	}{
		{"ascii", UTF16{'A'}, 0, 'A', 1},
		{"bmp max", UTF16{0xFFFF}, 0, 0xFFFF, 1},
		{"pair", UTF16{0xD83D, 0xDE00}, 0, 0x1F600, 2},
		{"low half of pair", UTF16{0xD83D, 0xDE00}, 1, 0xDE00, 1},
		{"unpaired high at end", UTF16{'x', 0xD83D}, 1, 0xD83D, 1},
		{"high followed by ascii", UTF16{0xD83D, 'x'}, 0, 0xD83D, 1},
		{"max pair", UTF16{0xDBFF, 0xDFFF}, 0, 0x10FFFF, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cp := tt.units.CodePointAt(tt.pos)
			if cp != tt.cp {
				t.Errorf("CodePointAt(%d) = 0x%x, want 0x%x", tt.pos, cp, tt.cp)
			}
			if w := tt.units.WidthOf(cp); w != tt.width {
				t.Errorf("WidthOf(0x%x) = %d, want %d", cp, w, tt.width)
			}
		})
	}
}

func TestCalcString_Representations(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want int
	}{
		{"empty", "", 0},
		{"AB", "AB", 2},
		{"emoji", "\U0001F600", 4},
		{"mixed", "héllo €", 1 + 2 + 1 + 1 + 1 + 1 + 3},
		{"kanji", "漢字", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := codec.CalcString(FromString(tt.s))
			if err != nil {
				t.Fatalf("CalcString(UTF16): %v", err)
			}
			if got != tt.want {
				t.Errorf("CalcString(UTF16 %q) = %d, want %d", tt.s, got, tt.want)
			}

			got, err = codec.CalcString(Runes(tt.s))
			if err != nil {
				t.Fatalf("CalcString(Runes): %v", err)
			}
			if got != tt.want {
				t.Errorf("CalcString(Runes %q) = %d, want %d", tt.s, got, tt.want)
			}

			if got := ByteLength(tt.s); got != tt.want {
				t.Errorf("ByteLength(%q) = %d, want %d", tt.s, got, tt.want)
			}
			if tt.want != len(tt.s) {
				t.Errorf("standard UTF-8 length of %q is %d, sizes disagree with %d", tt.s, len(tt.s), tt.want)
			}
		})
	}
}

func TestRunes_ExtendedRange(t *testing.T) {
	got, err := codec.CalcString(Runes{0x7FFFFFFF, 'a'})
	if err != nil {
		t.Fatalf("CalcString: %v", err)
	}
	if got != 7 {
		t.Errorf("CalcString = %d, want 7", got)
	}
}

func TestRunes_Negative(t *testing.T) {
	_, err := codec.CalcString(Runes{-1})
	if !errors.IsKind(err, errors.KindIllegalCodePoint) {
		t.Errorf("err = %v, want illegal_code_point", err)
	}
}
