package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/xutf8"
	"github.com/wippyai/xutf8/buffer"
	"github.com/wippyai/xutf8/codec"
	"github.com/wippyai/xutf8/errors"
)

const (
	backendBytes = "bytes"
	backendWasm  = "wasm"
)

// session allocates buffers from the selected backend.
type session struct {
	ctx     context.Context
	rt      wazero.Runtime
	backend string
}

func newSession(ctx context.Context, backend string) (*session, error) {
	s := &session{ctx: ctx, backend: backend}
	switch backend {
	case backendBytes:
	case backendWasm:
		s.rt = wazero.NewRuntime(ctx)
	default:
		return nil, errors.InvalidInput(errors.PhaseParse, fmt.Sprintf("unknown backend %q", backend))
	}
	return s, nil
}

func (s *session) Close() error {
	if s.rt == nil {
		return nil
	}
	if err := s.rt.Close(s.ctx); err != nil {
		return fmt.Errorf("close runtime: %w", err)
	}
	return nil
}

// alloc returns a buffer of at least size bytes and a release func.
func (s *session) alloc(size int) (xutf8.Buffer, func(), error) {
	if s.rt == nil {
		return buffer.New(size), func() {}, nil
	}
	mem, err := buffer.NewWasmMemory(s.ctx, s.rt, 0)
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		if err := mem.Close(s.ctx); err != nil {
			buffer.Logger().Warn("close wasm memory", zap.Error(err))
		}
	}
	if err := mem.EnsureSize(uint64(size)); err != nil {
		release()
		return nil, nil, err
	}
	return mem, release, nil
}

// charRow is one character of a dump.
type charRow struct {
	bytes  []byte
	cp     int64
	offset uint32
}

func (s *session) encode(cps []int64) ([]charRow, error) {
	total := 0
	for _, cp := range cps {
		n, err := codec.CalcChar(cp)
		if err != nil {
			return nil, err
		}
		total += n
	}
	buf, release, err := s.alloc(total)
	if err != nil {
		return nil, err
	}
	defer release()

	rows := make([]charRow, 0, len(cps))
	var offset uint32
	for _, cp := range cps {
		n, err := codec.EncodeChar(cp, buf, offset)
		if err != nil {
			return rows, err
		}
		b, err := readBytes(buf, offset, n)
		if err != nil {
			return rows, err
		}
		rows = append(rows, charRow{offset: offset, cp: cp, bytes: b})
		offset += uint32(n)
	}
	return rows, nil
}

// decode returns the characters decoded before the first error, if any.
func (s *session) decode(data []byte) ([]charRow, error) {
	buf, release, err := s.alloc(len(data))
	if err != nil {
		return nil, err
	}
	defer release()
	for i, b := range data {
		if err := buf.WriteU8(uint32(i), b); err != nil {
			return nil, err
		}
	}

	var rows []charRow
	// Wasm memory rounds up to whole pages; stop at the input length.
	end := uint32(len(data))
	for offset := uint32(0); offset < end; {
		cp, n, err := codec.DecodeChar(window{buf, end}, offset)
		if err != nil {
			return rows, err
		}
		rows = append(rows, charRow{offset: offset, cp: cp, bytes: data[offset : offset+uint32(n)]})
		offset += uint32(n)
	}
	return rows, nil
}

// window limits a buffer to its first end bytes.
type window struct {
	xutf8.Buffer
	end uint32
}

func (w window) Size() uint32 { return w.end }

func readBytes(buf xutf8.Buffer, offset uint32, n int) ([]byte, error) {
	out := make([]byte, n)
	for i := range out {
		b, err := buf.ReadU8(offset + uint32(i))
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

func runesOf(s string) []int64 {
	cps := make([]int64, 0, len(s))
	for _, r := range s {
		cps = append(cps, int64(r))
	}
	return cps
}

// parseHex accepts hex digits with optional whitespace between bytes.
func parseHex(s string) ([]byte, error) {
	compact := strings.Join(strings.Fields(s), "")
	compact = strings.TrimPrefix(strings.TrimPrefix(compact, "0x"), "0X")
	data, err := hex.DecodeString(compact)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseParse, errors.KindInvalidInput, err, "parse hex bytes")
	}
	return data, nil
}

// parseCodePoint parses a hex code point with an optional sign and U+ or 0x prefix.
func parseCodePoint(s string) (int64, error) {
	v := strings.TrimSpace(s)
	neg := strings.HasPrefix(v, "-")
	v = strings.TrimPrefix(v, "-")
	for _, p := range []string{"U+", "u+", "0x", "0X"} {
		if strings.HasPrefix(v, p) {
			v = v[len(p):]
			break
		}
	}
	cp, err := strconv.ParseInt(v, 16, 64)
	if err != nil {
		return 0, errors.Wrap(errors.PhaseParse, errors.KindInvalidInput, err, fmt.Sprintf("parse code point %q", s))
	}
	if neg {
		cp = -cp
	}
	return cp, nil
}

func formatCodePoint(cp int64) string {
	if cp > 0x10FFFF {
		return fmt.Sprintf("0x%08X", cp)
	}
	return fmt.Sprintf("U+%04X", cp)
}

func printRows(w io.Writer, rows []charRow) {
	total := 0
	for _, r := range rows {
		fmt.Fprintf(w, "%6d  %-10s  %d  % X\n", r.offset, formatCodePoint(r.cp), len(r.bytes), r.bytes)
		total += len(r.bytes)
	}
	if len(rows) > 0 {
		fmt.Fprintf(w, "%d char(s), %d byte(s)\n", len(rows), total)
	}
}
