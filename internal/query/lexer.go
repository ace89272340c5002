package query

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer tokenizes query strings
type Lexer struct {
	input string
	pos   int // byte offset of the character after ch
	ch    rune
}

// NewLexer creates a new lexer
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// readChar reads the next character
func (l *Lexer) readChar() {
	if l.pos >= len(l.input) {
		l.ch = 0
		l.pos = len(l.input) + 1
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	l.ch = r
	l.pos += size
}

// peekChar looks at the next character without advancing
func (l *Lexer) peekChar() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

// skipWhitespace skips whitespace characters
func (l *Lexer) skipWhitespace() {
	for unicode.IsSpace(l.ch) {
		l.readChar()
	}
}

// readString reads a single-quoted literal. There are no escapes: the
// literal ends at the next quote. ok is false when the quote is never closed.
func (l *Lexer) readString() (string, bool) {
	var result strings.Builder
	l.readChar() // skip opening quote

	for l.ch != '\'' {
		if l.ch == 0 && l.pos > len(l.input) {
			return result.String(), false
		}
		result.WriteRune(l.ch)
		l.readChar()
	}

	l.readChar() // skip closing quote
	return result.String(), true
}

// readIdentifier reads an identifier or keyword
func (l *Lexer) readIdentifier() string {
	var result strings.Builder
	for isIdentChar(l.ch) {
		result.WriteRune(l.ch)
		l.readChar()
	}
	return result.String()
}

func isIdentChar(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_'
}

// NextToken returns the next token
func (l *Lexer) NextToken() Token {
	l.skipWhitespace()

	var tok Token

	switch l.ch {
	case 0:
		if l.pos > len(l.input) {
			return Token{Type: TokenEOF, Value: ""}
		}
		tok = Token{Type: TokenError, Value: string(l.ch)}
		l.readChar()
	case '=':
		tok = Token{Type: TokenEqual, Value: "="}
		l.readChar()
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: TokenNotEqual, Value: "!="}
			l.readChar()
		} else {
			tok = Token{Type: TokenError, Value: "!"}
			l.readChar()
		}
	case '<':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: TokenLessEqual, Value: "<="}
			l.readChar()
		} else {
			tok = Token{Type: TokenLess, Value: "<"}
			l.readChar()
		}
	case '>':
		if l.peekChar() == '=' {
			l.readChar()
			tok = Token{Type: TokenGreaterEqual, Value: ">="}
			l.readChar()
		} else {
			tok = Token{Type: TokenGreater, Value: ">"}
			l.readChar()
		}
	case '\'':
		value, ok := l.readString()
		if !ok {
			tok = Token{Type: TokenError, Value: "'" + value}
		} else {
			tok = Token{Type: TokenString, Value: value}
		}
	default:
		if isIdentChar(l.ch) {
			value := l.readIdentifier()
			tok = Token{Type: identifierType(value), Value: value}
		} else {
			tok = Token{Type: TokenError, Value: string(l.ch)}
			l.readChar()
		}
	}

	return tok
}

// identifierType determines if an identifier is a keyword. Keywords are
// matched case-insensitively.
func identifierType(ident string) TokenType {
	switch strings.ToUpper(ident) {
	case "NOT":
		return TokenNot
	case "AND":
		return TokenAnd
	case "OR":
		return TokenOr
	}
	return TokenIdent
}

// Tokenize returns all tokens from the input
func Tokenize(input string) []Token {
	lexer := NewLexer(input)
	var tokens []Token

	for {
		tok := lexer.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF || tok.Type == TokenError {
			break
		}
	}

	return tokens
}
