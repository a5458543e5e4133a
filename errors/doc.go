// Package errors provides structured error types for the xutf8 codec.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type carries the buffer offset, the number of bytes still needed,
// the offending value and an optional cause.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindOutOfRange).
//		Offset(12).
//		Needed(3).
//		Detail("truncated sequence").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.InvalidLeadByte(12, 0xFE)
//	err := errors.IllegalCodePoint(errors.PhaseEncode, -1)
//
// All errors implement the standard error interface and support errors.Is/As.
// IsKind matches on Kind alone, regardless of phase.
package errors
