package internal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLexer_Tokenize_PlainText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Token
	}{
		{
			name:  "empty string",
			input: "",
			expected: []Token{
				{Type: TokenEOF, ArgIndex: -1, Position: Position{Offset: 0, Line: 1, Column: 1}},
			},
		},
		{
			name:  "simple text",
			input: "Hello, world!",
			expected: []Token{
				{Type: TokenText, Value: "Hello, world!", ArgIndex: -1, Position: Position{Offset: 0, Line: 1, Column: 1}},
				{Type: TokenEOF, ArgIndex: -1, Position: Position{Offset: 13, Line: 1, Column: 14}},
			},
		},
		{
			name:  "escaped brace",
			input: "a{{b",
			expected: []Token{
				{Type: TokenText, Value: "a", ArgIndex: -1, Position: Position{Offset: 0, Line: 1, Column: 1}},
				{Type: TokenText, Value: "{", ArgIndex: -1, Position: Position{Offset: 1, Line: 1, Column: 2}},
				{Type: TokenText, Value: "b", ArgIndex: -1, Position: Position{Offset: 3, Line: 1, Column: 4}},
				{Type: TokenEOF, ArgIndex: -1, Position: Position{Offset: 4, Line: 1, Column: 5}},
			},
		},
		{
			name:  "multiline text",
			input: "one\ntwo",
			expected: []Token{
				{Type: TokenText, Value: "one\ntwo", ArgIndex: -1, Position: Position{Offset: 0, Line: 1, Column: 1}},
				{Type: TokenEOF, ArgIndex: -1, Position: Position{Offset: 7, Line: 2, Column: 4}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := NewLexer(tt.input, zap.NewNop()).Tokenize()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tokens)
		})
	}
}

func TestLexer_Tokenize_Commands(t *testing.T) {
	t.Run("full command syntax", func(t *testing.T) {
		tokens, err := NewLexer(`a{1:P.gen=f w "q x"}b`, nil).Tokenize()
		require.NoError(t, err)
		require.Len(t, tokens, 4)

		cmd := tokens[1]
		assert.Equal(t, TokenCommand, cmd.Type)
		assert.Equal(t, "P", cmd.Value)
		assert.Equal(t, 1, cmd.ArgIndex)
		assert.Equal(t, "gen", cmd.Case)
		assert.Equal(t, "f", cmd.Assign)
		assert.Equal(t, []string{"w", "q x"}, cmd.Words)
		assert.Equal(t, Position{Offset: 1, Line: 1, Column: 2}, cmd.Position)

		assert.Equal(t, "b", tokens[2].Value)
		assert.Equal(t, Position{Offset: 20, Line: 1, Column: 21}, tokens[2].Position)
	})

	t.Run("bare command", func(t *testing.T) {
		tokens, err := NewLexer("{COMMA}", nil).Tokenize()
		require.NoError(t, err)
		require.Len(t, tokens, 2)
		assert.Equal(t, "COMMA", tokens[0].Value)
		assert.Equal(t, -1, tokens[0].ArgIndex)
		assert.Empty(t, tokens[0].Words)
	})

	t.Run("escaped quote in word", func(t *testing.T) {
		tokens, err := NewLexer(`{P "a\"b" "c\\d"}`, nil).Tokenize()
		require.NoError(t, err)
		assert.Equal(t, []string{`a"b`, `c\d`}, tokens[0].Words)
	})

	t.Run("empty quoted word", func(t *testing.T) {
		tokens, err := NewLexer(`{P "" s}`, nil).Tokenize()
		require.NoError(t, err)
		assert.Equal(t, []string{"", "s"}, tokens[0].Words)
	})
}

func TestLexer_Tokenize_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		message string
	}{
		{"unclosed", "{COMMA", ErrMsgCompileUnclosedCommand},
		{"empty", "{}", ErrMsgCompileEmptyCommand},
		{"bad argument index", "{12x}", ErrMsgCompileBadArgIndex},
		{"argument index too large", "{256:NUM}", ErrMsgCompileBadArgIndex},
		{"not an identifier", "{-}", ErrMsgCompileUnknownCommand},
		{"unterminated quote", `{P "abc}`, ErrMsgCompileUnterminated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLexer(tt.input, nil).Tokenize()
			require.Error(t, err)
			var ce *CompileError
			require.True(t, errors.As(err, &ce))
			assert.Equal(t, tt.message, ce.Message)
		})
	}
}

func TestTokenType_String(t *testing.T) {
	assert.Equal(t, "TEXT", TokenText.String())
	assert.Equal(t, "COMMAND", TokenCommand.String())
	assert.Equal(t, "EOF", TokenEOF.String())
}
