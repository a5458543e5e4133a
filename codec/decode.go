package codec

import (
	"github.com/wippyai/xutf8"
	"github.com/wippyai/xutf8/errors"
)

// classify returns the sequence length a lead byte declares and the mask for
// the payload bits it carries. A zero length marks an illegal lead byte.
func classify(b byte) (int, byte) {
	switch {
	case b&0x80 == 0x00:
		return 1, 0x7F
	case b&0xE0 == 0xC0:
		return 2, 0x1F
	case b&0xF0 == 0xE0:
		return 3, 0x0F
	case b&0xF8 == 0xF0:
		return 4, 0x07
	case b&0xFC == 0xF8:
		return 5, 0x03
	case b&0xFE == 0xFC:
		return 6, 0x01
	}
	return 0, 0
}

// DecodeChar reads one character starting at offset and returns its code
// point and the number of bytes consumed.
func DecodeChar(buf xutf8.Buffer, offset uint32) (int64, int, error) {
	if buf == nil {
		return 0, 0, errors.NilPointer(errors.PhaseDecode, "buffer")
	}
	size := buf.Size()
	if uint64(offset)+1 > uint64(size) {
		return 0, 0, errors.OutOfRange(errors.PhaseDecode, offset, 1, size)
	}

	lead, err := buf.ReadU8(offset)
	if err != nil {
		return 0, 0, readFailed(offset, err)
	}
	n, mask := classify(lead)
	if n == 0 {
		debugf("illegal lead byte 0x%02x at offset %d", lead, offset)
		return 0, 0, errors.InvalidLeadByte(offset, lead)
	}

	cp := int64(lead & mask)
	if n == 1 {
		return cp, 1, nil
	}

	// offset+1 <= size here, so next fits in uint32.
	next := offset + 1
	if uint64(next)+uint64(n-1) > uint64(size) {
		debugf("truncated %d-byte sequence at offset %d (size %d)", n, offset, size)
		return 0, 0, errors.OutOfRange(errors.PhaseDecode, next, n-1, size)
	}
	for i := uint32(0); i < uint32(n-1); i++ {
		b, err := buf.ReadU8(next + i)
		if err != nil {
			return 0, 0, readFailed(next+i, err)
		}
		cp = cp<<6 | int64(b&0x3F)
	}
	return cp, n, nil
}

func readFailed(offset uint32, cause error) error {
	return errors.New(errors.PhaseDecode, errors.KindOutOfRange).
		Offset(offset).
		Needed(1).
		Cause(cause).
		Detail("buffer read failed").
		Build()
}
