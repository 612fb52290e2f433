package internal

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testCompileContext() CompileContext {
	return CompileContext{
		PluralForm: 0,
		Genders:    []string{"m", "f"},
		Cases:      []string{"nom", "gen"},
		Resolve: func(key string) (StringID, bool) {
			if key == "STR_TOWN" {
				return MakeStringID(TableDefault, 5), true
			}
			return 0, false
		},
	}
}

func code(r rune) string { return string(r) }

func TestCompiler_Compile(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{"plain text", "Hello", "Hello"},
		{"escaped brace", "{{x}", "{x}"},
		{"value command", "Cost: {CURRENCY_LONG}", "Cost: " + code(SCCCurrencyLong)},
		{"literal colour", "{RED}!", code(SCCRed) + "!"},
		{"non-breaking space", "1{NBSP}B", "1" + NBSP + "B"},
		{"argument index", "{1:NUM}", code(SCCArgIndex) + "\x01" + code(SCCNum)},
		{"case selection", "{STRING.gen}", code(SCCSetCase) + "\x02" + code(SCCString)},
		{
			name:     "plural refers to previous parameter",
			source:   "{COMMA} {P car cars}",
			expected: code(SCCComma) + " " + code(SCCPluralList) + "\x00\x00\x02\x03\x04carcars",
		},
		{
			name:     "plural with explicit offset",
			source:   "{P 2 a bb}",
			expected: code(SCCPluralList) + "\x00\x02\x02\x01\x02abb",
		},
		{
			name:     "gender list refers to next parameter",
			source:   "{COMMA}{G he she}",
			expected: code(SCCComma) + code(SCCGenderList) + "\x01\x02\x02\x03heshe",
		},
		{"gender marker", "{G=f}", code(SCCGenderIndex) + "\x01"},
		{"inline string by key", "{STRINL STR_TOWN}", code(SCCStringInline) + "\x05\x00\x01\x00"},
		{"inline string by hex", "{STRINL 0x2a}", code(SCCStringInline) + "\x2a\x00\x00\x00"},
		{
			name:     "argument index moves the plural default",
			source:   "{2:COMMA}{P a b}",
			expected: code(SCCArgIndex) + "\x02" + code(SCCComma) + code(SCCPluralList) + "\x00\x02\x02\x01\x01ab",
		},
		{
			name:     "plural after decimal refers to the value",
			source:   "{DECIMAL}{P a b}",
			expected: code(SCCDecimal) + code(SCCPluralList) + "\x00\x00\x02\x01\x01ab",
		},
		{
			name:     "multi parameter string advances by its size",
			source:   "{STRING2}{P a b}",
			expected: code(SCCString2) + code(SCCPluralList) + "\x00\x02\x02\x01\x01ab",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewCompiler(testCompileContext(), zap.NewNop()).Compile(tt.source)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCompiler_PluralRuleIsEmbedded(t *testing.T) {
	ctx := testCompileContext()
	ctx.PluralForm = 6
	got, err := NewCompiler(ctx, nil).Compile("{NUM}{P a b c}")
	require.NoError(t, err)
	assert.Equal(t, code(SCCNum)+code(SCCPluralList)+"\x06\x00\x03\x01\x01\x01abc", got)
}

func TestCompiler_Errors(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		message string
	}{
		{"unknown command", "{NOPE}", ErrMsgCompileUnknownCommand},
		{"plural without previous parameter", "{P a b}", ErrMsgCompileBadOffset},
		{"plural without words", "{NUM}{P}", ErrMsgCompileMissingWord},
		{"unknown gender", "{G=n}", ErrMsgCompileUnknownGender},
		{"unknown case", "{STRING.dat}", ErrMsgCompileUnknownCase},
		{"unknown inline string", "{STRINL STR_NOPE}", ErrMsgCompileUnknownString},
		{"inline without key", "{STRINL}", ErrMsgCompileMissingWord},
		{"reserved literal", "a" + code(SCCComma), ErrMsgCompileReservedText},
		{"choice too long", "{NUM}{P a " + strings.Repeat("x", 256) + "}", ErrMsgCompileChoiceTooLong},
		{"offset too large", "{NUM}{P 300 a b}", ErrMsgCompileBadOffset},
		{"lexer failure", "{NUM", ErrMsgCompileUnclosedCommand},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCompiler(testCompileContext(), nil).Compile(tt.source)
			require.Error(t, err)
			var ce *CompileError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.message, ce.Message)
		})
	}
}

func TestCompiler_CompileCases(t *testing.T) {
	c := NewCompiler(testCompileContext(), nil)

	t.Run("without variants", func(t *testing.T) {
		got, err := c.CompileCases("plain", nil)
		require.NoError(t, err)
		assert.Equal(t, "plain", got)
	})

	t.Run("builds a case table", func(t *testing.T) {
		got, err := c.CompileCases("x", map[string]string{"gen": "yy"})
		require.NoError(t, err)
		assert.Equal(t, code(SCCSwitchCase)+"\x01\x02\x02\x00yy\x01\x00x", got)
	})

	t.Run("unknown case", func(t *testing.T) {
		_, err := c.CompileCases("x", map[string]string{"dat": "y"})
		var ce *CompileError
		require.True(t, errors.As(err, &ce))
		assert.Equal(t, ErrMsgCompileUnknownCase, ce.Message)
	})

	t.Run("case text must compile", func(t *testing.T) {
		_, err := c.CompileCases("x", map[string]string{"gen": "{NOPE}"})
		assert.Error(t, err)
	})
}

func TestCommandNames(t *testing.T) {
	names := CommandNames()
	assert.Contains(t, names, "COMMA")
	assert.Contains(t, names, "STRINL")
	assert.True(t, len(names) > 50)
	for i := 1; i < len(names); i++ {
		assert.Less(t, names[i-1], names[i])
	}
}
