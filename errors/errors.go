package errors

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseDecode  Phase = "decode"  // bytes to code point
	PhaseEncode  Phase = "encode"  // code point to bytes
	PhaseMeasure Phase = "measure" // length calculation
	PhaseBuffer  Phase = "buffer"  // buffer container access
	PhaseParse   Phase = "parse"   // command line input
)

// Kind categorizes the error
type Kind string

const (
	KindOutOfRange       Kind = "out_of_range"
	KindInvalidLeadByte  Kind = "invalid_lead_byte"
	KindIllegalCodePoint Kind = "illegal_code_point"
	KindOutOfBounds      Kind = "out_of_bounds"
	KindInvalidInput     Kind = "invalid_input"
	KindNilPointer       Kind = "nil_pointer"
	KindNotFound         Kind = "not_found"
)

// Error is the structured error type used throughout the module
type Error struct {
	Value     any
	Cause     error
	Phase     Phase
	Kind      Kind
	Detail    string
	Offset    uint32
	Needed    int
	HasOffset bool
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.HasOffset {
		b.WriteString(" at offset ")
		b.WriteString(strconv.FormatUint(uint64(e.Offset), 10))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// KindOf returns the Kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err's chain holds an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Offset sets the buffer offset the error refers to
func (b *Builder) Offset(offset uint32) *Builder {
	b.err.Offset = offset
	b.err.HasOffset = true
	return b
}

// Needed sets the number of bytes still required
func (b *Builder) Needed(n int) *Builder {
	b.err.Needed = n
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// OutOfRange reports that fewer than needed bytes remain at offset.
func OutOfRange(phase Phase, offset uint32, needed int, size uint32) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindOutOfRange,
		Offset:    offset,
		HasOffset: true,
		Needed:    needed,
		Detail:    fmt.Sprintf("need %d more byte(s), buffer size %d", needed, size),
		Value:     size,
	}
}

// InvalidLeadByte reports a byte that starts no valid sequence.
func InvalidLeadByte(offset uint32, b byte) *Error {
	return &Error{
		Phase:     PhaseDecode,
		Kind:      KindInvalidLeadByte,
		Offset:    offset,
		HasOffset: true,
		Detail:    fmt.Sprintf("illegal lead byte 0x%02x", b),
		Value:     b,
	}
}

// IllegalCodePoint reports a code point outside [0, 0x7FFFFFFF].
func IllegalCodePoint(phase Phase, cp int64) *Error {
	var detail string
	if cp < 0 {
		detail = fmt.Sprintf("illegal code point -0x%x", uint64(-cp))
	} else {
		detail = fmt.Sprintf("illegal code point 0x%x", cp)
	}
	return &Error{
		Phase:  phase,
		Kind:   KindIllegalCodePoint,
		Detail: detail,
		Value:  cp,
	}
}

// OutOfBounds creates an out of bounds error for a single buffer access
func OutOfBounds(phase Phase, offset uint32, length int) *Error {
	return &Error{
		Phase:     phase,
		Kind:      KindOutOfBounds,
		Offset:    offset,
		HasOffset: true,
		Detail:    fmt.Sprintf("index %d out of bounds (length %d)", offset, length),
		Value:     offset,
	}
}

// NilPointer creates a nil pointer error
func NilPointer(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNilPointer,
		Detail: fmt.Sprintf("nil %s", what),
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
