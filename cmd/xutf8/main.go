package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/xutf8/buffer"
	"github.com/wippyai/xutf8/codec"
	"github.com/wippyai/xutf8/text"
)

func main() {
	var (
		encodeStr   = flag.String("encode", "", "Text to encode")
		decodeStr   = flag.String("decode", "", "Hex bytes to decode (spaces allowed)")
		cpStr       = flag.String("cp", "", "Single code point to encode, in hex (U+1F600, 0x7FFFFFFF)")
		calcStr     = flag.String("calc", "", "Text to size without encoding")
		backendName = flag.String("backend", backendBytes, "Buffer backend: bytes or wasm")
		verbose     = flag.Bool("v", false, "Debug logging")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *verbose {
		log, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer log.Sync() //nolint:errcheck
		codec.SetLogger(log.Named("codec"))
		codec.SetDebug(true)
		buffer.SetLogger(log.Named("buffer"))
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*backendName); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *encodeStr == "" && *decodeStr == "" && *cpStr == "" && *calcStr == "" {
		fmt.Fprintln(os.Stderr, "Usage: xutf8 -encode <text> [-backend bytes|wasm]")
		fmt.Fprintln(os.Stderr, "       xutf8 -decode <hex>")
		fmt.Fprintln(os.Stderr, "       xutf8 -cp <hex code point>")
		fmt.Fprintln(os.Stderr, "       xutf8 -calc <text>")
		fmt.Fprintln(os.Stderr, "       xutf8 -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(os.Stdout, *backendName, *encodeStr, *decodeStr, *cpStr, *calcStr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(w io.Writer, backendName, encodeStr, decodeStr, cpStr, calcStr string) (err error) {
	ctx := context.Background()

	s, err := newSession(ctx, backendName)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.Close(); err == nil {
			err = cerr
		}
	}()

	if calcStr != "" {
		n, err := codec.CalcString(text.FromString(calcStr))
		if err != nil {
			return fmt.Errorf("calc: %w", err)
		}
		fmt.Fprintf(w, "%d bytes\n", n)
	}

	if encodeStr != "" {
		rows, err := s.encode(runesOf(encodeStr))
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		printRows(w, rows)
	}

	if cpStr != "" {
		cp, err := parseCodePoint(cpStr)
		if err != nil {
			return err
		}
		rows, err := s.encode([]int64{cp})
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		printRows(w, rows)
	}

	if decodeStr != "" {
		data, err := parseHex(decodeStr)
		if err != nil {
			return err
		}
		rows, err := s.decode(data)
		printRows(w, rows)
		if err != nil {
			return fmt.Errorf("decode: %w", err)
		}
	}

	return nil
}
