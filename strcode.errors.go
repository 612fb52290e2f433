package strcode

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/itsatony/go-cuserr"

	"github.com/itsatony/go-strcode/internal"
)

// Sentinel errors re-exported from the interpreter core for errors.Is.
var (
	ErrParameterUnderrun     = internal.ErrParameterUnderrun
	ErrParameterTypeMismatch = internal.ErrParameterTypeMismatch
	ErrParameterKindMismatch = internal.ErrParameterKindMismatch
	ErrInvalidBackReference  = internal.ErrInvalidBackReference
	ErrMalformedEncoded      = internal.ErrMalformedEncoded
)

// Lookup failures, matched with errors.Is or IsNotFound.
var (
	ErrUnknownKey   = errors.New(ErrMsgUnknownKey)
	ErrPackNotFound = errors.New(ErrMsgStorageNotFound)
)

// wrapCoreError converts an error from the interpreter core into a
// CustomError carrying its position metadata. The original error stays
// reachable through errors.Is and errors.As.
func wrapCoreError(err error, msg string) error {
	if err == nil {
		return nil
	}

	var pe *internal.ParamError
	if errors.As(err, &pe) {
		cerr := cuserr.WrapStdError(err, ErrCodeParam, ErrMsgParamFailure).
			WithMetadata(MetaKeyOffset, strconv.Itoa(pe.Offset)).
			WithMetadata(MetaKeyLength, strconv.Itoa(pe.Length))
		if pe.Expected != 0 {
			cerr = cerr.WithMetadata(MetaKeyTag, fmt.Sprintf("%#x", pe.Expected))
		}
		return cerr
	}

	var ce *internal.CodecError
	if errors.As(err, &ce) {
		return cuserr.WrapStdError(err, ErrCodeCodec, msg).
			WithMetadata(MetaKeyRecord, strconv.Itoa(ce.Record)).
			WithMetadata(MetaKeyReason, ce.Message)
	}

	var cpe *internal.CompileError
	if errors.As(err, &cpe) {
		return NewCompileError(err, "")
	}

	return cuserr.WrapStdError(err, ErrCodeCodec, msg)
}

// NewCompileError wraps a template compile failure. key names the pack
// string the template belongs to, if any.
func NewCompileError(err error, key string) error {
	cerr := cuserr.WrapStdError(err, ErrCodePack, ErrMsgCompileFailed)
	var cpe *internal.CompileError
	if errors.As(err, &cpe) {
		cerr = cerr.
			WithMetadata(MetaKeyLine, strconv.Itoa(cpe.Position.Line)).
			WithMetadata(MetaKeyColumn, strconv.Itoa(cpe.Position.Column)).
			WithMetadata(MetaKeyReason, cpe.Message)
	}
	if key != "" {
		cerr = cerr.WithMetadata(MetaKeyKey, key)
	}
	return cerr
}

// NewPackError creates a language pack validation error.
func NewPackError(msg, reason string) error {
	cerr := cuserr.NewValidationError(ErrCodePack, msg)
	if reason != "" {
		cerr = cerr.WithMetadata(MetaKeyReason, reason)
	}
	return cerr
}

// NewUnknownKeyError creates an error for a key the pack does not define.
func NewUnknownKeyError(key string) error {
	return cuserr.WrapStdError(ErrUnknownKey, ErrCodePack, ErrMsgUnknownKey).
		WithMetadata(MetaKeyKey, key)
}

// NewPackNotFoundError creates an error for a pack missing from storage.
func NewPackNotFoundError(isocode string) error {
	return cuserr.WrapStdError(ErrPackNotFound, ErrCodeStorage, ErrMsgStorageNotFound).
		WithMetadata(MetaKeyIsoCode, isocode)
}

// StorageError wraps a failure of a PackStorage backend.
type StorageError struct {
	Message string
	Driver  string
	IsoCode string
	Cause   error
}

// Error implements the error interface
func (e *StorageError) Error() string {
	msg := e.Message
	if e.Driver != "" {
		msg = e.Driver + ": " + msg
	}
	if e.IsoCode != "" {
		msg = fmt.Sprintf("%s (isocode %q)", msg, e.IsoCode)
	}
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause
func (e *StorageError) Unwrap() error {
	return e.Cause
}

// NewStorageError creates a storage error
func NewStorageError(msg, driver, isocode string, cause error) *StorageError {
	return &StorageError{Message: msg, Driver: driver, IsoCode: isocode, Cause: cause}
}

// IsNotFound reports whether err means a key or pack does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUnknownKey) || errors.Is(err, ErrPackNotFound)
}

func wrapPackError(err error, msg string) *cuserr.CustomError {
	return cuserr.WrapStdError(err, ErrCodePack, msg)
}
