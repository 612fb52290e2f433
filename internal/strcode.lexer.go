package internal

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Source syntax characters
const (
	CharOpenBrace   = '{'
	CharCloseBrace  = '}'
	CharColon       = ':'
	CharDot         = '.'
	CharEquals      = '='
	CharDoubleQuote = '"'
	CharBackslash   = '\\'
	CharSpace       = ' '
	CharTab         = '\t'
	CharNewline     = '\n'
	CharCarriageRet = '\r'
)

// TokenType identifies a lexical token
type TokenType int

const (
	TokenText TokenType = iota
	TokenCommand
	TokenEOF
)

// String returns the token type name
func (t TokenType) String() string {
	switch t {
	case TokenText:
		return "TEXT"
	case TokenCommand:
		return "COMMAND"
	default:
		return "EOF"
	}
}

// Token is one piece of template source: literal text or a command in
// braces. A command is written {[n:]NAME[.case][=value] [word ...]}.
type Token struct {
	Type     TokenType
	Value    string   // text, or the command name
	ArgIndex int      // explicit argument index, -1 when absent
	Case     string   // case name after the dot
	Assign   string   // value after '=', as in {G=f}
	Words    []string // space separated words
	Position Position
}

// String returns a debug representation
func (t Token) String() string {
	if t.Type == TokenCommand {
		return fmt.Sprintf("Token{%s %s %v @ %s}", t.Type, t.Value, t.Words, t.Position)
	}
	return fmt.Sprintf("Token{%s: %q @ %s}", t.Type, t.Value, t.Position)
}

// Lexer tokenizes template source
type Lexer struct {
	source string
	pos    int // Current byte position
	line   int // Current line (1-indexed)
	column int // Current column (1-indexed)
	logger *zap.Logger
}

// NewLexer creates a new lexer
func NewLexer(source string, logger *zap.Logger) *Lexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgLexerCreated, zap.Int(LogFieldSource, len(source)))
	return &Lexer{
		source: source,
		line:   1,
		column: 1,
		logger: logger,
	}
}

// Tokenize processes the source and returns a token stream
func (l *Lexer) Tokenize() ([]Token, error) {
	l.logger.Debug(LogMsgTokenizerStart)
	var tokens []Token

	for !l.isAtEnd() {
		// {{ is an escaped brace
		if l.matchStr("{{") {
			pos := l.currentPosition()
			l.advanceN(2)
			tokens = append(tokens, Token{Type: TokenText, Value: "{", ArgIndex: -1, Position: pos})
			continue
		}

		if l.peek() == CharOpenBrace {
			tok, err := l.scanCommand()
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, tok)
			continue
		}

		tokens = append(tokens, l.scanText())
	}

	tokens = append(tokens, Token{Type: TokenEOF, ArgIndex: -1, Position: l.currentPosition()})
	l.logger.Debug(LogMsgTokenizerComplete, zap.Int(LogFieldTokens, len(tokens)))
	return tokens, nil
}

// scanText scans literal text up to the next brace
func (l *Lexer) scanText() Token {
	startPos := l.currentPosition()
	start := l.pos
	for !l.isAtEnd() && l.peek() != CharOpenBrace {
		l.advance()
	}
	return Token{Type: TokenText, Value: l.source[start:l.pos], ArgIndex: -1, Position: startPos}
}

// scanCommand scans {[n:]NAME[.case][=value] words...}
func (l *Lexer) scanCommand() (Token, error) {
	startPos := l.currentPosition()
	l.advance() // consume {

	tok := Token{Type: TokenCommand, ArgIndex: -1, Position: startPos}

	// Optional argument index
	if isDigit(l.peek()) {
		start := l.pos
		for isDigit(l.peek()) {
			l.advance()
		}
		if l.peek() != CharColon {
			return Token{}, NewCompileError(ErrMsgCompileBadArgIndex, startPos, l.source[start:l.pos])
		}
		n, err := strconv.Atoi(l.source[start:l.pos])
		if err != nil || n > 255 {
			return Token{}, NewCompileError(ErrMsgCompileBadArgIndex, startPos, l.source[start:l.pos])
		}
		tok.ArgIndex = n
		l.advance() // consume :
	}

	tok.Value = l.scanIdent()
	if tok.Value == "" {
		if l.peek() == CharCloseBrace {
			return Token{}, NewCompileError(ErrMsgCompileEmptyCommand, startPos, "")
		}
		return Token{}, NewCompileError(ErrMsgCompileUnknownCommand, startPos, string(l.peek()))
	}

	if l.peek() == CharDot {
		l.advance()
		tok.Case = l.scanIdent()
	}
	if l.peek() == CharEquals {
		l.advance()
		tok.Assign = l.scanIdent()
	}

	for {
		l.skipWhitespace()
		if l.isAtEnd() {
			return Token{}, NewCompileError(ErrMsgCompileUnclosedCommand, startPos, tok.Value)
		}
		if l.peek() == CharCloseBrace {
			l.advance()
			return tok, nil
		}
		word, err := l.scanWord()
		if err != nil {
			return Token{}, err
		}
		tok.Words = append(tok.Words, word)
	}
}

// scanIdent scans letters, digits and underscores
func (l *Lexer) scanIdent() string {
	start := l.pos
	for !l.isAtEnd() {
		ch := l.peek()
		if isLetter(ch) || isDigit(ch) || ch == '_' {
			l.advance()
		} else {
			break
		}
	}
	return l.source[start:l.pos]
}

// scanWord scans a bare word or a double-quoted word
func (l *Lexer) scanWord() (string, error) {
	startPos := l.currentPosition()
	if l.peek() != CharDoubleQuote {
		start := l.pos
		for !l.isAtEnd() {
			ch := l.peek()
			if ch == CharCloseBrace || ch == CharSpace || ch == CharTab || ch == CharNewline || ch == CharCarriageRet {
				break
			}
			l.advance()
		}
		return l.source[start:l.pos], nil
	}

	l.advance() // consume opening quote
	var sb strings.Builder
	for !l.isAtEnd() {
		ch := l.peek()
		if ch == CharDoubleQuote {
			l.advance()
			return sb.String(), nil
		}
		// Handle escape sequences within words
		if ch == CharBackslash && l.pos+1 < len(l.source) {
			next := l.source[l.pos+1]
			if next == CharDoubleQuote || next == CharBackslash {
				l.advance()
				sb.WriteByte(l.advance())
				continue
			}
		}
		sb.WriteByte(l.advance())
	}
	return "", NewCompileError(ErrMsgCompileUnterminated, startPos, "")
}

// Helper methods

// currentPosition returns the current position
func (l *Lexer) currentPosition() Position {
	return Position{
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

// isAtEnd returns true if we've reached the end of source
func (l *Lexer) isAtEnd() bool {
	return l.pos >= len(l.source)
}

// peek returns the current character without advancing
func (l *Lexer) peek() byte {
	if l.isAtEnd() {
		return 0
	}
	return l.source[l.pos]
}

// advance consumes and returns the current character
func (l *Lexer) advance() byte {
	if l.isAtEnd() {
		return 0
	}
	ch := l.source[l.pos]
	l.pos++
	if ch == CharNewline {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

// advanceN advances by n characters
func (l *Lexer) advanceN(n int) {
	for i := 0; i < n && !l.isAtEnd(); i++ {
		l.advance()
	}
}

// matchStr returns true if the remaining source starts with s
func (l *Lexer) matchStr(s string) bool {
	return strings.HasPrefix(l.source[l.pos:], s)
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for !l.isAtEnd() {
		ch := l.peek()
		if ch == CharSpace || ch == CharTab || ch == CharNewline || ch == CharCarriageRet {
			l.advance()
		} else {
			break
		}
	}
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}
