package xutf8

// Buffer is a bounds-checked byte accessor. Reads and writes outside
// [0, Size()) fail.
type Buffer interface {
	ReadU8(offset uint32) (uint8, error)
	WriteU8(offset uint32, value uint8) error
	Size() uint32
}

// Text is host-native text iterated by code point.
// Len and positions are counted in in-memory units.
type Text interface {
	Len() int
	CodePointAt(pos int) int64
	// WidthOf returns the number of in-memory units cp occupies (1 or 2).
	WidthOf(cp int64) int
}
