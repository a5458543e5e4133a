// Package xutf8 provides an extended UTF-8 codec for code points up to
// 0x7FFFFFFF.
//
// The encoding follows the original UTF-8 design (RFC 2279) rather than the
// restricted RFC 3629 form: sequences are 1 to 6 bytes long and values above
// the Unicode ceiling of 0x10FFFF round-trip unchanged.
//
// # Architecture Overview
//
//	xutf8/         Root package with the Buffer and Text interfaces
//	├── codec/     Decode, encode and size single characters and strings
//	├── buffer/    Buffer implementations (slice, cursor ByteBuffer, wazero memory)
//	├── text/      Text implementations (UTF-16 units, runes)
//	├── errors/    Structured error types
//	└── cmd/xutf8  Command line encoder/decoder and interactive inspector
//
// # Byte Grammar
//
//	Range                    Bytes  Lead byte
//	─────────────────────────────────────────
//	[0, 0x80)                1      0xxxxxxx
//	[0x80, 0x800)            2      110xxxxx
//	[0x800, 0x10000)         3      1110xxxx
//	[0x10000, 0x200000)      4      11110xxx
//	[0x200000, 0x4000000)    5      111110xx
//	[0x4000000, 0x80000000)  6      1111110x
//
// Every continuation byte has the form 10xxxxxx and carries six bits, most
// significant chunk first. Lead bytes 0xFE and 0xFF are never valid.
//
// # Quick Start
//
//	buf := buffer.New(16)
//	n, err := codec.EncodeChar(0x1F600, buf, 0)
//	if err != nil {
//	    return err
//	}
//	cp, size, err := codec.DecodeChar(buf, 0) // 0x1F600, 4
//
// Sizing a string before writing it:
//
//	n, err := codec.CalcString(text.FromString("héllo"))
//
// # Thread Safety
//
// The codec holds no state. Concurrent reads of one Buffer are safe; writes
// must be serialized by the caller.
package xutf8
