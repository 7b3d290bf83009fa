package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/quill-lang/quill/token"
)

// Error describes a lexing failure. The only failure mode is an unexpected
// character; it aborts tokenization of the whole input.
type Error struct {
	Ch     rune
	Line   int
	Column int
}

func (e *Error) Error() string {
	return fmt.Sprintf("unexpected character %q at line %d, column %d", e.Ch, e.Line, e.Column)
}

// Lexer holds the state for tokenizing Quill source.
type Lexer struct {
	input        []byte
	position     int  // current position in input (points to current rune)
	readPosition int  // current reading position in input (after current rune)
	ch           rune // current rune under examination
	line         int
	column       int
}

// New creates and returns a new Lexer.
func New(input []byte) *Lexer {
	l := &Lexer{input: input, line: 1, column: 0}
	l.readRune()
	return l
}

// Tokenize scans src left to right and returns the full token sequence,
// terminated by an EOF sentinel. The first unrecognized character aborts
// the scan with an *Error.
func Tokenize(src []byte) ([]token.Token, error) {
	l := New(src)
	var tokens []token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			ch, _ := utf8.DecodeRuneInString(tok.Literal)
			return nil, &Error{Ch: ch, Line: tok.Line, Column: tok.Column}
		}
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens, nil
		}
	}
}

// NextToken returns the next token from the input. Unrecognized characters
// come back as ILLEGAL tokens; Tokenize converts those into an error.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespace()

	tok := token.Token{Line: l.line, Column: l.column}

	switch l.ch {
	case '(':
		tok.Type = token.LPAREN
		tok.Literal = string(l.ch)
	case ')':
		tok.Type = token.RPAREN
		tok.Literal = string(l.ch)
	case '{':
		tok.Type = token.LBRACE
		tok.Literal = string(l.ch)
	case '}':
		tok.Type = token.RBRACE
		tok.Literal = string(l.ch)
	case '[':
		tok.Type = token.LBRACK
		tok.Literal = string(l.ch)
	case ']':
		tok.Type = token.RBRACK
		tok.Literal = string(l.ch)
	case ':':
		tok.Type = token.COLON
		tok.Literal = string(l.ch)
	case ';':
		tok.Type = token.SEMICOLON
		tok.Literal = string(l.ch)
	case ',':
		tok.Type = token.COMMA
		tok.Literal = string(l.ch)
	case '=':
		tok.Type = token.ASSIGN
		tok.Literal = string(l.ch)
	case '.':
		tok.Type = token.DOT
		tok.Literal = string(l.ch)
	case '+', '-', '*', '%':
		tok.Type = token.OPERATOR
		tok.Literal = string(l.ch)
	case '/':
		// Context-sensitive: division operator, line comment, or block comment.
		switch l.peekRune() {
		case '/':
			tok.Type = token.COMMENT
			tok.Literal = l.readLineComment()
			return tok
		case '*':
			tok.Type = token.COMMENT
			tok.Literal = l.readBlockComment()
			return tok
		default:
			tok.Type = token.OPERATOR
			tok.Literal = string(l.ch)
		}
	case 0:
		tok.Type = token.EOF
		tok.Literal = ""
		return tok
	default:
		if isDigit(l.ch) {
			tok.Type = token.NUMBER
			tok.Literal = l.readNumber()
			return tok
		}
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(tok.Literal)
			return tok
		}
		tok.Type = token.ILLEGAL
		tok.Literal = string(l.ch)
	}

	l.readRune()
	return tok
}

// readRune gives us the next rune and advances our position in the input.
func (l *Lexer) readRune() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	if l.readPosition >= len(l.input) {
		l.ch = 0 // signifies EOF
		l.position = l.readPosition
		l.readPosition++
		l.column++
		return
	}

	r, size := utf8.DecodeRune(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
	l.column++
}

// peekRune looks at the next rune without advancing the position.
func (l *Lexer) peekRune() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.input[l.readPosition:])
	return r
}

func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r' {
		l.readRune()
	}
}

// readLineComment captures everything after "//" up to, but excluding, the
// terminating newline.
func (l *Lexer) readLineComment() string {
	l.readRune() // consume first '/'
	l.readRune() // consume second '/'
	position := l.position
	for l.ch != '\n' && l.ch != 0 {
		l.readRune()
	}
	return string(l.input[position:l.position])
}

// readBlockComment captures everything between "/*" and the first "*/".
// Block comments do not nest. An unterminated block comment consumes the
// rest of the input without error.
func (l *Lexer) readBlockComment() string {
	l.readRune() // consume '/'
	l.readRune() // consume '*'
	position := l.position
	for l.ch != 0 {
		if l.ch == '*' && l.peekRune() == '/' {
			text := string(l.input[position:l.position])
			l.readRune() // consume '*'
			l.readRune() // consume '/'
			return text
		}
		l.readRune()
	}
	return string(l.input[position:l.position])
}

func (l *Lexer) readNumber() string {
	position := l.position
	for isDigit(l.ch) {
		l.readRune()
	}
	return string(l.input[position:l.position])
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.ch) || l.ch == '_' {
		l.readRune()
	}
	return string(l.input[position:l.position])
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return unicode.IsDigit(ch)
}
