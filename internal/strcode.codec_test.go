package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeString(t *testing.T) {
	tests := []struct {
		name     string
		id       StringID
		params   []Parameter
		expected string
	}{
		{
			name:     "identifier only",
			id:       MakeStringID(TableDefault, 0x2a),
			expected: markerInternal + "1002a",
		},
		{
			name:   "numeric and text",
			id:     MakeStringID(TableDefault, 0x2a),
			params: []Parameter{IntParam(255), StringParam("abc")},
			expected: markerInternal + "1002a" +
				recordSep + string(SCCEncodedNumeric) + "ff" +
				recordSep + string(SCCEncodedString) + "abc",
		},
		{
			name:     "empty parameter is an empty record",
			id:       1,
			params:   []Parameter{{}},
			expected: markerInternal + "1" + recordSep,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeString(tt.id, tt.params)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestEncodeString_ReservedText(t *testing.T) {
	_, err := EncodeString(1, []Parameter{IntParam(1), StringParam("a" + recordSep + "b")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformedEncoded))

	var ce *CodecError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, 1, ce.Record)
	assert.Equal(t, ErrMsgCodecReservedText, ce.Message)
}

func TestDecodeString_RoundTrip(t *testing.T) {
	params := []Parameter{IntParam(-3), StringParam("Zürich"), {}, UintParam(0)}
	text, err := EncodeString(MakeStringID(TableDefault, 7), params)
	require.NoError(t, err)

	id, decoded, err := DecodeString(text)
	require.NoError(t, err)
	assert.Equal(t, MakeStringID(TableDefault, 7), id)
	require.Len(t, decoded, 4)
	assert.Equal(t, ParamNum, decoded[0].Kind)
	assert.Equal(t, uint64(IntParam(-3).Num), decoded[0].Num)
	assert.Equal(t, "Zürich", decoded[1].Str)
	assert.Equal(t, ParamEmpty, decoded[2].Kind)
	assert.Equal(t, uint64(0), decoded[3].Num)
}

func TestDecodeString_ScriptMarker(t *testing.T) {
	t.Run("identifier lands in the script table", func(t *testing.T) {
		id, params, err := DecodeString(markerScript + "5")
		require.NoError(t, err)
		assert.Equal(t, MakeStringID(TableScript, 5), id)
		assert.Empty(t, params)
	})

	t.Run("identifier beyond one table", func(t *testing.T) {
		_, _, err := DecodeString(markerScript + "10000")
		var ce *CodecError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, ErrMsgCodecIdentifierRange, ce.Message)
		assert.Equal(t, -1, ce.Record)
	})

	t.Run("nested script identifier record", func(t *testing.T) {
		_, params, err := DecodeString(markerScript + "1" + recordSep + string(SCCEncoded) + "3")
		require.NoError(t, err)
		require.Len(t, params, 1)
		assert.Equal(t, uint64(MakeStringID(TableScript, 3)), params[0].Num)
	})
}

func TestDecodeString_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"missing marker", "12", ErrMsgCodecMissingMarker},
		{"empty", "", ErrMsgCodecMissingMarker},
		{"bad identifier", markerInternal + "xyz", ErrMsgCodecBadIdentifier},
		{"bad numeric", markerInternal + "1" + recordSep + string(SCCEncodedNumeric) + "zz", ErrMsgCodecBadNumeric},
		{"unknown tag", markerInternal + "1" + recordSep + "q", ErrMsgCodecUnknownTag},
		{"nested marker in text", markerInternal + "1" + recordSep + string(SCCEncodedString) + markerInternal, ErrMsgCodecNestedMarker},
		{"nested identifier out of range", markerInternal + "1" + recordSep + string(SCCEncoded) + "10000", ErrMsgCodecIdentifierRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeString(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedEncoded))
			var ce *CodecError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.message, ce.Message)
		})
	}
}

func TestDecodeBody_Lenient(t *testing.T) {
	body := "1" + recordSep + "q" + recordSep + string(SCCEncodedNumeric) + "2"
	id, params, err := decodeBody(body, false, false)
	require.NoError(t, err)
	assert.Equal(t, StringID(1), id)
	require.Len(t, params, 2)
	assert.Equal(t, ParamEmpty, params[0].Kind)
	assert.Equal(t, uint64(2), params[1].Num)

	_, _, err = decodeBody("1"+recordSep+string(SCCEncoded)+"10000", false, false)
	assert.Error(t, err)
}

func TestReplaceParameter(t *testing.T) {
	text, err := EncodeString(9, []Parameter{IntParam(1), StringParam("a")})
	require.NoError(t, err)

	t.Run("replaces in place", func(t *testing.T) {
		out := ReplaceParameter(text, 1, StringParam("b"))
		id, params, err := DecodeString(out)
		require.NoError(t, err)
		assert.Equal(t, StringID(9), id)
		assert.Equal(t, "b", params[1].Str)
		assert.Equal(t, uint64(1), params[0].Num)
	})

	t.Run("index out of range", func(t *testing.T) {
		assert.Empty(t, ReplaceParameter(text, 2, IntParam(0)))
		assert.Empty(t, ReplaceParameter(text, -1, IntParam(0)))
	})

	t.Run("script marker is refused", func(t *testing.T) {
		assert.Empty(t, ReplaceParameter(markerScript+"1"+recordSep, 0, IntParam(0)))
	})

	t.Run("reserved replacement", func(t *testing.T) {
		assert.Empty(t, ReplaceParameter(text, 1, StringParam(markerScript)))
	})
}

func TestIsEncoded(t *testing.T) {
	assert.True(t, IsEncoded(markerInternal+"1"))
	assert.True(t, IsEncoded(markerScript+"1"))
	assert.False(t, IsEncoded("plain"))
}
