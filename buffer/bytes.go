package buffer

import (
	"github.com/wippyai/xutf8"
	"github.com/wippyai/xutf8/errors"
)

var _ xutf8.Buffer = (*Bytes)(nil)

// Bytes is a fixed-size buffer over a byte slice.
type Bytes struct {
	data []byte
}

// New allocates a zeroed buffer of size bytes.
func New(size int) *Bytes {
	return &Bytes{data: make([]byte, size)}
}

// Wrap uses b as the backing store without copying.
func Wrap(b []byte) *Bytes {
	return &Bytes{data: b}
}

// ReadU8 reads one byte.
func (b *Bytes) ReadU8(offset uint32) (uint8, error) {
	if uint64(offset) >= uint64(len(b.data)) {
		return 0, errors.OutOfBounds(errors.PhaseBuffer, offset, len(b.data))
	}
	return b.data[offset], nil
}

// WriteU8 writes one byte.
func (b *Bytes) WriteU8(offset uint32, value uint8) error {
	if uint64(offset) >= uint64(len(b.data)) {
		return errors.OutOfBounds(errors.PhaseBuffer, offset, len(b.data))
	}
	b.data[offset] = value
	return nil
}

// Size returns the buffer length.
func (b *Bytes) Size() uint32 {
	return uint32(len(b.data))
}

// Bytes returns the backing slice.
func (b *Bytes) Bytes() []byte {
	return b.data
}
