package internal

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is.
var (
	ErrParameterUnderrun     = errors.New(ErrMsgParamUnderrun)
	ErrParameterTypeMismatch = errors.New(ErrMsgParamTypeMismatch)
	ErrParameterKindMismatch = errors.New(ErrMsgParamKindMismatch)
	ErrInvalidBackReference  = errors.New(ErrMsgParamBackReference)
	ErrMalformedEncoded      = errors.New("malformed encoded string")
)

// ParamErrorKind distinguishes parameter failures.
type ParamErrorKind uint8

const (
	ParamErrUnderrun ParamErrorKind = iota
	ParamErrTypeMismatch
	ParamErrKindMismatch
	ParamErrBackReference
)

// ParamError is raised when reading a parameter fails.
type ParamError struct {
	Kind     ParamErrorKind
	Offset   int
	Length   int
	Expected rune
	Actual   rune
}

// Error implements the error interface
func (e *ParamError) Error() string {
	switch e.Kind {
	case ParamErrTypeMismatch:
		return fmt.Sprintf("%s at offset %d: tagged %#x, read as %#x", ErrMsgParamTypeMismatch, e.Offset, e.Expected, e.Actual)
	case ParamErrKindMismatch:
		return fmt.Sprintf("%s at offset %d", ErrMsgParamKindMismatch, e.Offset)
	case ParamErrBackReference:
		return fmt.Sprintf("%s: offset %d, length %d", ErrMsgParamBackReference, e.Offset, e.Length)
	default:
		return fmt.Sprintf("%s: offset %d, length %d", ErrMsgParamUnderrun, e.Offset, e.Length)
	}
}

// Unwrap returns the sentinel for the failure kind.
func (e *ParamError) Unwrap() error {
	switch e.Kind {
	case ParamErrTypeMismatch:
		return ErrParameterTypeMismatch
	case ParamErrKindMismatch:
		return ErrParameterKindMismatch
	case ParamErrBackReference:
		return ErrInvalidBackReference
	default:
		return ErrParameterUnderrun
	}
}

// CodecError reports a malformed encoded string.
type CodecError struct {
	Message string
	Record  int // record index, -1 for the identifier
	Cause   error
}

// Error implements the error interface
func (e *CodecError) Error() string {
	msg := e.Message
	if e.Record >= 0 {
		msg = fmt.Sprintf("%s (record %d)", msg, e.Record)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Is reports every codec error as ErrMalformedEncoded.
func (e *CodecError) Is(target error) bool {
	return target == ErrMalformedEncoded
}

// Unwrap returns the underlying cause
func (e *CodecError) Unwrap() error {
	return e.Cause
}

// CompileError reports a template that cannot be compiled.
type CompileError struct {
	Message  string
	Position Position
	Detail   string
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s %q at %s", e.Message, e.Detail, e.Position)
	}
	return fmt.Sprintf("%s at %s", e.Message, e.Position)
}

// NewCompileError creates a compile error
func NewCompileError(msg string, pos Position, detail string) *CompileError {
	return &CompileError{Message: msg, Position: pos, Detail: detail}
}

// Position is a location in template source text.
type Position struct {
	Offset int // Byte offset from start
	Line   int // 1-indexed line number
	Column int // 1-indexed column number
}

// String returns a human-readable position string
func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}
