package buffer

import (
	"encoding/binary"
	"strings"

	"go.uber.org/zap"

	"github.com/wippyai/xutf8"
	"github.com/wippyai/xutf8/codec"
	"github.com/wippyai/xutf8/errors"
	"github.com/wippyai/xutf8/text"
)

// maxCapacity bounds growth so every offset fits in uint32.
const maxCapacity = 1<<32 - 1

// Options configures a ByteBuffer.
type Options struct {
	// Capacity is the initial size of the backing store in bytes.
	Capacity int
	// GrowthFactor multiplies the capacity when a write needs more room.
	// Values below 2 are treated as 2.
	GrowthFactor int
	// LittleEndian selects the byte order for multi-byte integers.
	LittleEndian bool
}

// DefaultOptions returns default buffer configuration: 16 bytes, doubling,
// big endian.
func DefaultOptions() Options {
	return Options{
		Capacity:     16,
		GrowthFactor: 2,
	}
}

var (
	_ xutf8.Buffer = (*ByteBuffer)(nil)
	_ xutf8.Buffer = window{}
)

// ByteBuffer is a growable buffer with a cursor.
//
// Relative operations (WriteUTF8Char, ReadUTF8Char, WriteUint16, ...) start at
// Offset and advance it. Writes raise Limit to the end of the written data;
// reads stop at Limit. ReadU8/WriteU8 are absolute and bounded by Capacity.
// Not safe for concurrent use.
type ByteBuffer struct {
	data         []byte
	order        binary.ByteOrder
	offset       uint32
	limit        uint32
	growthFactor int
	littleEndian bool
}

// NewByteBuffer creates an empty buffer.
func NewByteBuffer(opts Options) *ByteBuffer {
	if opts.Capacity < 0 {
		opts.Capacity = 0
	}
	if opts.GrowthFactor < 2 {
		opts.GrowthFactor = 2
	}
	bb := &ByteBuffer{
		data:         make([]byte, opts.Capacity),
		growthFactor: opts.GrowthFactor,
	}
	return bb.Order(opts.LittleEndian)
}

// WrapByteBuffer creates a buffer whose readable region is b.
func WrapByteBuffer(b []byte, opts Options) *ByteBuffer {
	bb := NewByteBuffer(Options{GrowthFactor: opts.GrowthFactor, LittleEndian: opts.LittleEndian})
	bb.data = b
	bb.limit = uint32(len(b))
	return bb
}

// Order sets the byte order for multi-byte integers.
func (bb *ByteBuffer) Order(littleEndian bool) *ByteBuffer {
	bb.littleEndian = littleEndian
	if littleEndian {
		bb.order = binary.LittleEndian
	} else {
		bb.order = binary.BigEndian
	}
	return bb
}

// LE switches to little endian byte order.
func (bb *ByteBuffer) LE() *ByteBuffer { return bb.Order(true) }

// BE switches to big endian byte order.
func (bb *ByteBuffer) BE() *ByteBuffer { return bb.Order(false) }

// LittleEndian reports the current byte order.
func (bb *ByteBuffer) LittleEndian() bool { return bb.littleEndian }

func (bb *ByteBuffer) Offset() uint32    { return bb.offset }
func (bb *ByteBuffer) Limit() uint32     { return bb.limit }
func (bb *ByteBuffer) Capacity() int     { return len(bb.data) }
func (bb *ByteBuffer) Remaining() uint32 { return bb.limit - bb.offset }

// SetOffset moves the cursor. The offset may not pass Limit.
func (bb *ByteBuffer) SetOffset(offset uint32) error {
	if offset > bb.limit {
		return errors.OutOfBounds(errors.PhaseBuffer, offset, int(bb.limit))
	}
	bb.offset = offset
	return nil
}

// Flip makes the written data readable from the start.
func (bb *ByteBuffer) Flip() *ByteBuffer {
	bb.limit = bb.offset
	bb.offset = 0
	return bb
}

// Reset discards all data.
func (bb *ByteBuffer) Reset() *ByteBuffer {
	bb.offset = 0
	bb.limit = 0
	return bb
}

// Bytes returns the unread region [Offset, Limit) without copying.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.data[bb.offset:bb.limit]
}

// ReadU8 reads the byte at an absolute offset.
func (bb *ByteBuffer) ReadU8(offset uint32) (uint8, error) {
	if uint64(offset) >= uint64(len(bb.data)) {
		return 0, errors.OutOfBounds(errors.PhaseBuffer, offset, len(bb.data))
	}
	return bb.data[offset], nil
}

// WriteU8 writes the byte at an absolute offset. It does not grow the buffer.
func (bb *ByteBuffer) WriteU8(offset uint32, value uint8) error {
	if uint64(offset) >= uint64(len(bb.data)) {
		return errors.OutOfBounds(errors.PhaseBuffer, offset, len(bb.data))
	}
	bb.data[offset] = value
	return nil
}

// Size returns the capacity.
func (bb *ByteBuffer) Size() uint32 {
	return uint32(len(bb.data))
}

// EnsureCapacity grows the backing store to hold at least n bytes.
func (bb *ByteBuffer) EnsureCapacity(n uint64) error {
	if n <= uint64(len(bb.data)) {
		return nil
	}
	if n > maxCapacity {
		return errors.New(errors.PhaseBuffer, errors.KindOutOfBounds).
			Value(n).
			Detail("capacity %d exceeds %d", n, uint64(maxCapacity)).
			Build()
	}
	grown := uint64(len(bb.data)) * uint64(bb.growthFactor)
	if grown < n {
		grown = n
	}
	if grown > maxCapacity {
		grown = maxCapacity
	}
	Logger().Debug("grow byte buffer",
		zap.Int("from", len(bb.data)),
		zap.Uint64("to", grown),
	)
	data := make([]byte, grown)
	copy(data, bb.data)
	bb.data = data
	return nil
}

func (bb *ByteBuffer) reserve(n int) error {
	return bb.EnsureCapacity(uint64(bb.offset) + uint64(n))
}

func (bb *ByteBuffer) advance(n int) {
	bb.offset += uint32(n)
	if bb.offset > bb.limit {
		bb.limit = bb.offset
	}
}

// WriteUint16 writes v at Offset in the configured byte order.
func (bb *ByteBuffer) WriteUint16(v uint16) error {
	if err := bb.reserve(2); err != nil {
		return err
	}
	bb.order.PutUint16(bb.data[bb.offset:], v)
	bb.advance(2)
	return nil
}

// ReadUint16 reads a value at Offset in the configured byte order.
func (bb *ByteBuffer) ReadUint16() (uint16, error) {
	if bb.Remaining() < 2 {
		return 0, errors.OutOfRange(errors.PhaseBuffer, bb.offset, 2, bb.limit)
	}
	v := bb.order.Uint16(bb.data[bb.offset:])
	bb.offset += 2
	return v, nil
}

// WriteUTF8Char encodes cp at Offset, growing as needed, and returns the
// number of bytes written.
func (bb *ByteBuffer) WriteUTF8Char(cp int64) (int, error) {
	n, err := codec.CalcChar(cp)
	if err != nil {
		return 0, err
	}
	if err := bb.reserve(n); err != nil {
		return 0, err
	}
	if _, err := codec.EncodeChar(cp, bb, bb.offset); err != nil {
		return 0, err
	}
	bb.advance(n)
	return n, nil
}

// WriteUTF8String encodes every code point of s and returns the number of
// bytes written. Invalid UTF-8 in s is written as U+FFFD.
func (bb *ByteBuffer) WriteUTF8String(s string) (int, error) {
	total, err := codec.CalcString(text.FromString(s))
	if err != nil {
		return 0, err
	}
	if err := bb.reserve(total); err != nil {
		return 0, err
	}
	for _, r := range s {
		n, err := codec.EncodeChar(int64(r), bb, bb.offset)
		if err != nil {
			return 0, err
		}
		bb.advance(n)
	}
	return total, nil
}

// ReadUTF8Char decodes one code point at Offset and advances past it.
func (bb *ByteBuffer) ReadUTF8Char() (int64, error) {
	cp, n, err := codec.DecodeChar(window{bb}, bb.offset)
	if err != nil {
		return 0, err
	}
	bb.offset += uint32(n)
	return cp, nil
}

// ReadCodePoints decodes chars code points. On error the cursor is left
// where it was.
func (bb *ByteBuffer) ReadCodePoints(chars int) ([]int64, error) {
	start := bb.offset
	cps := make([]int64, 0, chars)
	for i := 0; i < chars; i++ {
		cp, err := bb.ReadUTF8Char()
		if err != nil {
			bb.offset = start
			return nil, err
		}
		cps = append(cps, cp)
	}
	return cps, nil
}

// ReadUTF8String decodes chars code points into a Go string. Code points a
// Go string cannot hold (surrogates, values above U+10FFFF) become U+FFFD.
func (bb *ByteBuffer) ReadUTF8String(chars int) (string, error) {
	cps, err := bb.ReadCodePoints(chars)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for _, cp := range cps {
		b.WriteRune(rune(cp))
	}
	return b.String(), nil
}

// CalculateUTF8Bytes returns the encoded size of s without writing it.
func (bb *ByteBuffer) CalculateUTF8Bytes(s string) int {
	return text.ByteLength(s)
}

// window exposes [0, Limit) of a ByteBuffer so decoding stops at the end of
// written data rather than at capacity.
type window struct {
	bb *ByteBuffer
}

func (w window) ReadU8(offset uint32) (uint8, error) {
	if offset >= w.bb.limit {
		return 0, errors.OutOfBounds(errors.PhaseBuffer, offset, int(w.bb.limit))
	}
	return w.bb.data[offset], nil
}

func (w window) WriteU8(offset uint32, value uint8) error {
	if offset >= w.bb.limit {
		return errors.OutOfBounds(errors.PhaseBuffer, offset, int(w.bb.limit))
	}
	w.bb.data[offset] = value
	return nil
}

func (w window) Size() uint32 { return w.bb.limit }
