package buffer

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/xutf8"
	"github.com/wippyai/xutf8/errors"
)

// PageSize is the WebAssembly page size in bytes.
const PageSize = 65536

// maxMemory is the 32-bit linear memory limit: 65536 pages.
const maxMemory = uint64(65536) * PageSize

var _ xutf8.Buffer = (*Wasm)(nil)

// WrapMemory wraps a wazero api.Memory to implement xutf8.Buffer.
// A nil memory yields a nil Buffer.
func WrapMemory(mem api.Memory) xutf8.Buffer {
	if mem == nil {
		return nil
	}
	return &Wasm{Mem: mem}
}

// Wasm adapts wazero api.Memory to the xutf8.Buffer interface.
type Wasm struct {
	Mem api.Memory
}

// ReadU8 reads an unsigned 8-bit value.
func (m *Wasm) ReadU8(offset uint32) (uint8, error) {
	if m == nil || m.Mem == nil {
		return 0, errors.NilPointer(errors.PhaseBuffer, "memory")
	}
	v, ok := m.Mem.ReadByte(offset)
	if !ok {
		return 0, errors.OutOfBounds(errors.PhaseBuffer, offset, int(m.Mem.Size()))
	}
	return v, nil
}

// WriteU8 writes an unsigned 8-bit value.
func (m *Wasm) WriteU8(offset uint32, value uint8) error {
	if m == nil || m.Mem == nil {
		return errors.NilPointer(errors.PhaseBuffer, "memory")
	}
	if !m.Mem.WriteByte(offset, value) {
		return errors.OutOfBounds(errors.PhaseBuffer, offset, int(m.Mem.Size()))
	}
	return nil
}

// Size returns the current memory size in bytes, 0 for a nil memory.
func (m *Wasm) Size() uint32 {
	if m == nil || m.Mem == nil {
		return 0
	}
	return m.Mem.Size()
}

// Read returns a view of [offset, offset+length).
func (m *Wasm) Read(offset, length uint32) ([]byte, error) {
	if m == nil || m.Mem == nil {
		return nil, errors.NilPointer(errors.PhaseBuffer, "memory")
	}
	data, ok := m.Mem.Read(offset, length)
	if !ok {
		return nil, errors.New(errors.PhaseBuffer, errors.KindOutOfBounds).
			Offset(offset).
			Detail("memory read out of bounds: offset=%d, length=%d", offset, length).
			Build()
	}
	return data, nil
}

// EnsureSize grows the memory by whole pages until it holds at least n bytes.
func (m *Wasm) EnsureSize(n uint64) error {
	if m == nil || m.Mem == nil {
		return errors.NilPointer(errors.PhaseBuffer, "memory")
	}
	size := uint64(m.Mem.Size())
	if n <= size {
		return nil
	}
	if n > maxMemory {
		return errors.New(errors.PhaseBuffer, errors.KindOutOfBounds).
			Value(n).
			Detail("size %d exceeds %d", n, maxMemory).
			Build()
	}
	delta := uint32((n - size + PageSize - 1) / PageSize)
	if _, ok := m.Mem.Grow(delta); !ok {
		return errors.New(errors.PhaseBuffer, errors.KindOutOfBounds).
			Value(n).
			Detail("cannot grow memory by %d page(s) to hold %d bytes", delta, n).
			Build()
	}
	Logger().Debug("grow wasm memory",
		zap.Uint64("from", size),
		zap.Uint32("to", m.Mem.Size()),
	)
	return nil
}

// WasmMemory is a linear memory owned by a memory-only module instance.
type WasmMemory struct {
	*Wasm
	module   api.Module
	compiled wazero.CompiledModule
}

// NewWasmMemory instantiates a module that exports a memory of the given
// number of pages and returns it as a buffer. Close releases the instance.
func NewWasmMemory(ctx context.Context, rt wazero.Runtime, pages uint32) (*WasmMemory, error) {
	compiled, err := rt.CompileModule(ctx, memoryModule(pages))
	if err != nil {
		return nil, fmt.Errorf("compile memory module: %w", err)
	}
	mod, err := rt.InstantiateModule(ctx, compiled, wazero.NewModuleConfig().WithName(""))
	if err != nil {
		_ = compiled.Close(ctx)
		return nil, fmt.Errorf("instantiate memory module: %w", err)
	}
	mem := mod.ExportedMemory("memory")
	if mem == nil {
		_ = mod.Close(ctx)
		_ = compiled.Close(ctx)
		return nil, errors.NotFound(errors.PhaseBuffer, "exported memory", "memory")
	}
	return &WasmMemory{Wasm: &Wasm{Mem: mem}, module: mod, compiled: compiled}, nil
}

// Close closes the owning module instance and its compiled module.
func (m *WasmMemory) Close(ctx context.Context) error {
	err := m.module.Close(ctx)
	if cerr := m.compiled.Close(ctx); err == nil {
		err = cerr
	}
	return err
}

// memoryModule encodes a module with one memory of min pages exported as "memory".
func memoryModule(pages uint32) []byte {
	limits := appendLEB128u([]byte{0x01, 0x00}, pages) // 1 memory, flags: no max
	bin := []byte{
		0x00, 0x61, 0x73, 0x6d, // magic
		0x01, 0x00, 0x00, 0x00, // version
		0x05, // memory section
	}
	bin = appendLEB128u(bin, uint32(len(limits)))
	bin = append(bin, limits...)
	return append(bin,
		0x07, 0x0a, 0x01, // export section: 10 bytes, 1 export
		0x06, 'm', 'e', 'm', 'o', 'r', 'y',
		0x02, 0x00, // kind: memory, index 0
	)
}

func appendLEB128u(dst []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		dst = append(dst, b)
		if v == 0 {
			return dst
		}
	}
}
