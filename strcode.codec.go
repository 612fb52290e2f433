package strcode

import (
	"strconv"

	"github.com/itsatony/go-cuserr"

	"github.com/itsatony/go-strcode/internal"
)

// EncodedString is a string identifier and its parameters flattened into
// one storable string.
type EncodedString string

// Encode serializes id and params.
func Encode(id StringID, params ...Parameter) (EncodedString, error) {
	s, err := internal.EncodeString(id, params)
	if err != nil {
		return "", wrapCoreError(err, ErrMsgEncodeFailed)
	}
	return EncodedString(s), nil
}

// MustEncode is Encode for parameters known to be encodable. It panics on
// error.
func MustEncode(id StringID, params ...Parameter) EncodedString {
	enc, err := Encode(id, params...)
	if err != nil {
		panic(err)
	}
	return enc
}

// Decode parses an encoded string strictly.
func Decode(enc EncodedString) (StringID, []Parameter, error) {
	id, params, err := internal.DecodeString(string(enc))
	if err != nil {
		return 0, nil, wrapCoreError(err, ErrMsgDecodeFailed)
	}
	return id, params, nil
}

// ReplaceParam returns a copy of e with the parameter at index replaced.
// Script-marked strings cannot be edited.
func (e EncodedString) ReplaceParam(index int, value Parameter) (EncodedString, error) {
	out := internal.ReplaceParameter(string(e), index, value)
	if out == "" {
		return "", cuserr.NewValidationError(ErrCodeCodec, ErrMsgReplaceFailed).
			WithMetadata(MetaKeyOffset, strconv.Itoa(index))
	}
	return EncodedString(out), nil
}

// IsEncoded reports whether e starts with an encoded-string marker.
func (e EncodedString) IsEncoded() bool {
	return internal.IsEncoded(string(e))
}

// Parameter wraps e as a text parameter, for passing an encoded string
// to a RAW_STRING format code.
func (e EncodedString) Parameter() Parameter {
	return internal.StringParam(string(e))
}
