// Package buffer provides byte containers that implement xutf8.Buffer.
//
// Three containers are available:
//
//	Bytes       - fixed-size slice, the simplest bounds-checked backing
//	ByteBuffer  - growable buffer with a read/write cursor, a limit and a
//	              configurable byte order for multi-byte integers
//	Wasm        - WebAssembly linear memory from wazero
//
// The codec borrows a container for the duration of one call and never moves
// its cursor; cursor bookkeeping and growth belong to the container.
//
// Byte order only affects multi-byte integers such as WriteUint16. UTF-8
// output is identical in both orders:
//
//	bb := buffer.NewByteBuffer(buffer.DefaultOptions()).LE()
//	bb.WriteUTF8String("héllo")
//	bb.Flip()
//	s, err := bb.ReadUTF8String(5)
//
// Wasm adapts an existing memory:
//
//	mem := buffer.WrapMemory(instance.Memory())
//	n, err := codec.EncodeChar(0x1F600, mem, ptr)
package buffer
