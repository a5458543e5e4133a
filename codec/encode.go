package codec

import (
	"github.com/wippyai/xutf8"
	"github.com/wippyai/xutf8/errors"
)

// leadMarks[n-1] holds the high-bit pattern of an n-byte lead byte.
var leadMarks = [MaxCharLen]byte{0x00, 0xC0, 0xE0, 0xF0, 0xF8, 0xFC}

// EncodeChar writes cp starting at offset and returns the number of bytes
// written. Only [offset, offset+n) is modified, and nothing is written when
// an error is returned.
func EncodeChar(cp int64, buf xutf8.Buffer, offset uint32) (int, error) {
	n, err := charLen(cp, errors.PhaseEncode)
	if err != nil {
		return 0, err
	}
	if buf == nil {
		return 0, errors.NilPointer(errors.PhaseEncode, "buffer")
	}
	if size := buf.Size(); uint64(offset)+uint64(n) > uint64(size) {
		debugf("no room for %d bytes at offset %d (size %d)", n, offset, size)
		return 0, errors.OutOfRange(errors.PhaseEncode, offset, n, size)
	}

	shift := 6 * uint(n-1)
	if err := buf.WriteU8(offset, leadMarks[n-1]|byte(cp>>shift)); err != nil {
		return 0, writeFailed(offset, err)
	}
	for i := uint32(1); i < uint32(n); i++ {
		shift -= 6
		if err := buf.WriteU8(offset+i, 0x80|byte(cp>>shift)&0x3F); err != nil {
			return 0, writeFailed(offset+i, err)
		}
	}
	return n, nil
}

func writeFailed(offset uint32, cause error) error {
	return errors.New(errors.PhaseEncode, errors.KindOutOfRange).
		Offset(offset).
		Needed(1).
		Cause(cause).
		Detail("buffer write failed").
		Build()
}
