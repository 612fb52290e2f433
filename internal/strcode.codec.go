package internal

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	markerInternal = string(SCCEncodedInternal)
	markerScript   = string(SCCEncoded)
	recordSep      = string(SCCRecordSeparator)
)

// containsReserved reports whether s holds a codepoint that would break
// the framing of an encoded string.
func containsReserved(s string) bool {
	return strings.ContainsRune(s, SCCRecordSeparator) ||
		strings.ContainsRune(s, SCCEncoded) ||
		strings.ContainsRune(s, SCCEncodedInternal)
}

// EncodeString serializes id and params. Text parameters must not contain
// the marker or separator codepoints.
func EncodeString(id StringID, params []Parameter) (string, error) {
	var b strings.Builder
	b.WriteString(markerInternal)
	b.WriteString(strconv.FormatUint(uint64(id), 16))
	for i, p := range params {
		b.WriteString(recordSep)
		switch p.Kind {
		case ParamNum:
			b.WriteRune(SCCEncodedNumeric)
			b.WriteString(strconv.FormatUint(p.Num, 16))
		case ParamString:
			if containsReserved(p.Str) {
				return "", &CodecError{Message: ErrMsgCodecReservedText, Record: i}
			}
			b.WriteRune(SCCEncodedString)
			b.WriteString(p.Str)
		}
	}
	return b.String(), nil
}

// DecodeString parses an encoded string. Both the internal marker and the
// script marker are accepted; a script-marked identifier lands in
// TableScript. Any structural deviation is an error.
func DecodeString(text string) (StringID, []Parameter, error) {
	var script bool
	switch {
	case strings.HasPrefix(text, markerInternal):
		text = text[len(markerInternal):]
	case strings.HasPrefix(text, markerScript):
		text = text[len(markerScript):]
		script = true
	default:
		return 0, nil, &CodecError{Message: ErrMsgCodecMissingMarker, Record: -1}
	}
	return decodeBody(text, script, true)
}

// decodeBody parses what follows the marker. In lenient mode unknown
// record tags and malformed payloads become empty parameters instead of
// errors; the identifier must always parse.
func decodeBody(body string, script, strict bool) (StringID, []Parameter, error) {
	head, rest, hasRecords := strings.Cut(body, recordSep)
	raw, err := strconv.ParseUint(head, 16, 32)
	if err != nil {
		return 0, nil, &CodecError{Message: ErrMsgCodecBadIdentifier, Record: -1, Cause: err}
	}
	id := StringID(raw)
	if script {
		if raw >= TableSize {
			return 0, nil, &CodecError{Message: ErrMsgCodecIdentifierRange, Record: -1}
		}
		id = MakeStringID(TableScript, uint16(raw))
	}
	if !hasRecords {
		return id, nil, nil
	}

	records := strings.Split(rest, recordSep)
	params := make([]Parameter, 0, len(records))
	for i, record := range records {
		p, err := decodeRecord(record, i)
		if err != nil {
			if strict {
				return 0, nil, err
			}
			var ce *CodecError
			if errors.As(err, &ce) && ce.Message == ErrMsgCodecIdentifierRange {
				return 0, nil, err
			}
			p = Parameter{}
		}
		params = append(params, p)
	}
	return id, params, nil
}

func decodeRecord(record string, index int) (Parameter, error) {
	if record == "" {
		return Parameter{}, nil
	}
	tag, size := utf8.DecodeRuneInString(record)
	payload := record[size:]
	switch tag {
	case SCCEncodedNumeric:
		v, err := strconv.ParseUint(payload, 16, 64)
		if err != nil {
			return Parameter{}, &CodecError{Message: ErrMsgCodecBadNumeric, Record: index, Cause: err}
		}
		return UintParam(v), nil
	case SCCEncodedString:
		if strings.ContainsRune(payload, SCCEncoded) || strings.ContainsRune(payload, SCCEncodedInternal) {
			return Parameter{}, &CodecError{Message: ErrMsgCodecNestedMarker, Record: index}
		}
		return StringParam(payload), nil
	case SCCEncoded:
		v, err := strconv.ParseUint(payload, 16, 64)
		if err != nil {
			return Parameter{}, &CodecError{Message: ErrMsgCodecBadNumeric, Record: index, Cause: err}
		}
		if v >= TableSize {
			return Parameter{}, &CodecError{Message: ErrMsgCodecIdentifierRange, Record: index}
		}
		return UintParam(uint64(MakeStringID(TableScript, uint16(v)))), nil
	}
	return Parameter{}, &CodecError{Message: ErrMsgCodecUnknownTag, Record: index}
}

// ReplaceParameter decodes text, replaces the parameter at index and
// re-encodes. It returns an empty string when text does not decode, the
// index is out of range or the new value cannot be encoded.
func ReplaceParameter(text string, index int, value Parameter) string {
	if !strings.HasPrefix(text, markerInternal) {
		return ""
	}
	id, params, err := DecodeString(text)
	if err != nil || index < 0 || index >= len(params) {
		return ""
	}
	params[index] = value
	out, err := EncodeString(id, params)
	if err != nil {
		return ""
	}
	return out
}

// IsEncoded reports whether text starts with an encoded-string marker.
func IsEncoded(text string) bool {
	return strings.HasPrefix(text, markerInternal) || strings.HasPrefix(text, markerScript)
}
