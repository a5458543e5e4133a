package buffer

import (
	"bytes"
	"context"
	"testing"

	"github.com/tetratelabs/wazero"

	"github.com/wippyai/xutf8/codec"
	"github.com/wippyai/xutf8/errors"
)

// memoryWASM is a minimal WASM module with 1 page of memory exported as "memory"
var memoryWASM = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version
	0x05, 0x03, 0x01, 0x00, 0x01, // memory section: 1 page, no max
	0x07, 0x0a, 0x01, // export section: 10 bytes, 1 export
	0x06, 0x6d, 0x65, 0x6d, 0x6f, 0x72, 0x79, // name: "memory" (6 bytes + string)
	0x02, 0x00, // kind: memory, index 0
}

func newWasmMemory(t *testing.T, pages uint32) *WasmMemory {
	t.Helper()
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { rt.Close(ctx) })

	mem, err := NewWasmMemory(ctx, rt, pages)
	if err != nil {
		t.Fatalf("NewWasmMemory: %v", err)
	}
	t.Cleanup(func() { mem.Close(ctx) })
	return mem
}

func TestMemoryModule(t *testing.T) {
	if got := memoryModule(1); !bytes.Equal(got, memoryWASM) {
		t.Errorf("memoryModule(1) = % x, want % x", got, memoryWASM)
	}
	// 200 pages needs a two-byte LEB128 minimum.
	got := memoryModule(200)
	if got[9] != 0x04 || got[12] != 0xC8 || got[13] != 0x01 {
		t.Errorf("memoryModule(200) memory section = % x", got[8:14])
	}
}

func TestWrapMemory_Nil(t *testing.T) {
	mem := WrapMemory(nil)
	if mem != nil {
		t.Fatal("expected nil for nil memory")
	}
	if _, _, err := codec.DecodeChar(mem, 0); !errors.IsKind(err, errors.KindNilPointer) {
		t.Errorf("DecodeChar: err = %v, want nil_pointer", err)
	}
	if _, err := codec.EncodeChar('A', mem, 0); !errors.IsKind(err, errors.KindNilPointer) {
		t.Errorf("EncodeChar: err = %v, want nil_pointer", err)
	}
}

func TestWasm_ZeroValue(t *testing.T) {
	var mem *Wasm
	if mem.Size() != 0 {
		t.Errorf("Size = %d, want 0", mem.Size())
	}
	if _, err := mem.ReadU8(0); !errors.IsKind(err, errors.KindNilPointer) {
		t.Errorf("ReadU8: err = %v, want nil_pointer", err)
	}
	if err := (&Wasm{}).WriteU8(0, 1); !errors.IsKind(err, errors.KindNilPointer) {
		t.Errorf("WriteU8: err = %v, want nil_pointer", err)
	}
	if err := mem.EnsureSize(1); !errors.IsKind(err, errors.KindNilPointer) {
		t.Errorf("EnsureSize: err = %v, want nil_pointer", err)
	}
	// A typed nil still reaches the codec as a non-nil Buffer.
	if _, _, err := codec.DecodeChar(mem, 0); !errors.IsKind(err, errors.KindOutOfRange) {
		t.Errorf("DecodeChar: err = %v, want out_of_range", err)
	}
}

func TestWasm_Size(t *testing.T) {
	mem := newWasmMemory(t, 1)
	if mem.Size() != PageSize {
		t.Errorf("Size = %d, want %d", mem.Size(), PageSize)
	}
}

func TestWasm_RoundTrip(t *testing.T) {
	mem := newWasmMemory(t, 1)
	cps := []int64{0, 0x7F, 0x80, 0x7FF, 0x800, 0xFFFF, 0x10000, 0x1FFFFF, 0x200000, 0x3FFFFFF, 0x4000000, 0x7FFFFFFF}

	offset := uint32(100)
	for _, cp := range cps {
		n, err := codec.EncodeChar(cp, mem, offset)
		if err != nil {
			t.Fatalf("EncodeChar(0x%x): %v", cp, err)
		}
		got, m, err := codec.DecodeChar(mem, offset)
		if err != nil {
			t.Fatalf("DecodeChar(0x%x): %v", cp, err)
		}
		if got != cp || m != n {
			t.Errorf("round trip 0x%x = (0x%x, %d), want (0x%x, %d)", cp, got, m, cp, n)
		}
		offset += uint32(n)
	}

	data, err := mem.Read(100, 4)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !bytes.Equal(data, []byte{0x00, 0x7F, 0xC2, 0x80}) {
		t.Errorf("memory = % x, want 00 7f c2 80", data)
	}
}

func TestWasm_OutOfBounds(t *testing.T) {
	mem := newWasmMemory(t, 1)

	if _, err := mem.ReadU8(PageSize); !errors.IsKind(err, errors.KindOutOfBounds) {
		t.Errorf("ReadU8 past end: err = %v, want out_of_bounds", err)
	}
	if err := mem.WriteU8(PageSize, 1); !errors.IsKind(err, errors.KindOutOfBounds) {
		t.Errorf("WriteU8 past end: err = %v, want out_of_bounds", err)
	}
	if _, err := mem.Read(PageSize-1, 2); !errors.IsKind(err, errors.KindOutOfBounds) {
		t.Errorf("Read past end: err = %v, want out_of_bounds", err)
	}

	// A 3-byte sequence starting at the last byte fails before any write.
	if _, err := codec.EncodeChar(0x20AC, mem, PageSize-1); !errors.IsKind(err, errors.KindOutOfRange) {
		t.Errorf("EncodeChar at end: err = %v, want out_of_range", err)
	}
	if v, _ := mem.ReadU8(PageSize - 1); v != 0 {
		t.Errorf("last byte = 0x%x, want untouched 0", v)
	}

	if err := mem.WriteU8(PageSize-1, 0xE2); err != nil {
		t.Fatalf("WriteU8: %v", err)
	}
	if _, _, err := codec.DecodeChar(mem, PageSize-1); !errors.IsKind(err, errors.KindOutOfRange) {
		t.Errorf("DecodeChar truncated: err = %v, want out_of_range", err)
	}
}

func TestWasm_EnsureSize(t *testing.T) {
	mem := newWasmMemory(t, 0)
	if mem.Size() != 0 {
		t.Fatalf("Size = %d, want 0", mem.Size())
	}
	if err := mem.EnsureSize(PageSize + 1); err != nil {
		t.Fatalf("EnsureSize: %v", err)
	}
	if mem.Size() != 2*PageSize {
		t.Errorf("Size = %d, want %d", mem.Size(), 2*PageSize)
	}
	if err := mem.EnsureSize(10); err != nil {
		t.Errorf("EnsureSize below size: %v", err)
	}
}

func TestWasm_EnsureSize_TooLarge(t *testing.T) {
	mem := newWasmMemory(t, 1)
	for _, n := range []uint64{maxMemory + 1, 1<<48 + 1} {
		err := mem.EnsureSize(n)
		if !errors.IsKind(err, errors.KindOutOfBounds) {
			t.Errorf("EnsureSize(%d): err = %v, want out_of_bounds", n, err)
		}
	}
	if mem.Size() != PageSize {
		t.Errorf("Size = %d, want unchanged %d", mem.Size(), PageSize)
	}
}
