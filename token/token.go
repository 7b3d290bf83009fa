package token

// Type is the type of a token.
type Type string

// Token represents a lexical token. Tokens are immutable once produced by
// the lexer.
type Token struct {
	Type    Type
	Literal string
	Line    int
	Column  int
}

const (
	// Special tokens
	ILLEGAL Type = "ILLEGAL" // An unknown or invalid token
	EOF     Type = "EOF"     // End of input sentinel

	// Literals
	IDENT  Type = "IDENT"  // x, foo, bar
	NUMBER Type = "NUMBER" // 12345

	// Operators
	OPERATOR Type = "OPERATOR" // + - * / %
	ASSIGN   Type = "="

	// Delimiters
	LBRACE    Type = "{"
	RBRACE    Type = "}"
	LBRACK    Type = "["
	RBRACK    Type = "]"
	LPAREN    Type = "("
	RPAREN    Type = ")"
	COLON     Type = ":"
	SEMICOLON Type = ";"
	COMMA     Type = ","
	DOT       Type = "."

	// Keywords
	LET   Type = "LET"
	CONST Type = "CONST"
	FN    Type = "FN"

	// Reserved keywords; the parser rejects them today.
	STRUCT Type = "STRUCT"
	ENUM   Type = "ENUM"
	RETURN Type = "RETURN"
	IF     Type = "IF"
	ELSE   Type = "ELSE"

	// Comments
	COMMENT Type = "COMMENT" // // line or /* block */
)

var keywords = map[string]Type{
	"let":    LET,
	"const":  CONST,
	"fn":     FN,
	"struct": STRUCT,
	"enum":   ENUM,
	"return": RETURN,
	"if":     IF,
	"else":   ELSE,
}

// LookupIdent checks the keywords table for an identifier.
// If the identifier is a keyword, it returns the keyword's token type.
// Otherwise, it returns IDENT.
func LookupIdent(ident string) Type {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}
