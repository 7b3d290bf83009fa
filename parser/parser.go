// Package parser turns a token sequence into an abstract syntax tree via
// recursive descent. Precedence, lowest to highest: assignment, object
// literal, additive, multiplicative, call, member, primary. The first error
// aborts the whole parse; no recovery or resynchronization is attempted.
package parser

import (
	"fmt"
	"strconv"

	"github.com/quill-lang/quill/ast"
	"github.com/quill-lang/quill/lexer"
	"github.com/quill-lang/quill/token"
)

// ErrorKind discriminates parse failures so callers can branch without
// string matching.
type ErrorKind int

const (
	// ErrExpectedToken marks an expected-vs-actual token mismatch.
	ErrExpectedToken ErrorKind = iota
	// ErrUnexpectedEOF marks a construct cut short by end of input.
	ErrUnexpectedEOF
	// ErrUnsupportedToken marks a token with no parse rule in expression position.
	ErrUnsupportedToken
	// ErrDotPropertyNotIdentifier marks a '.' access whose right-hand side is
	// not a bare identifier.
	ErrDotPropertyNotIdentifier
	// ErrConstRequiresValue marks a const declaration without an initializer.
	ErrConstRequiresValue
	// ErrParameterNotIdentifier marks a function parameter that is not a bare
	// identifier.
	ErrParameterNotIdentifier
	// ErrBadNumericLiteral marks a numeric literal that does not fit an int64.
	ErrBadNumericLiteral
)

// Error is the single tagged error type of the parser layer.
type Error struct {
	Kind     ErrorKind
	Expected token.Type
	Got      token.Type
	Literal  string
	Context  string
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrExpectedToken:
		return fmt.Sprintf("expected %s but got %s: %s", e.Expected, e.Got, e.Context)
	case ErrUnexpectedEOF:
		return "unexpected end of input"
	case ErrUnsupportedToken:
		return fmt.Sprintf("unsupported token %s (%q)", e.Got, e.Literal)
	case ErrDotPropertyNotIdentifier:
		return "dot operator requires an identifier on its right-hand side"
	case ErrConstRequiresValue:
		return "a value is required for const declarations"
	case ErrParameterNotIdentifier:
		return fmt.Sprintf("function parameter must be an identifier, got %q", e.Literal)
	case ErrBadNumericLiteral:
		return fmt.Sprintf("could not parse %q as integer", e.Literal)
	default:
		return "parse error"
	}
}

// Parser holds the state of the parser. It consumes a token sequence
// produced by the lexer, terminated by an EOF sentinel.
type Parser struct {
	tokens []token.Token
	pos    int
}

// New creates a new Parser over tokens.
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse tokenizes src and parses it into a Program.
func Parse(src []byte) (*ast.Program, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, err
	}
	return New(tokens).ParseProgram()
}

// ParseProgram parses the token sequence into a Program. The first error
// aborts the whole call.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	program := &ast.Program{Body: []ast.Statement{}}

	for !p.peekIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		program.Body = append(program.Body, stmt)
	}

	return program, nil
}

func (p *Parser) peek() token.Token {
	if p.pos >= len(p.tokens) {
		return token.Token{Type: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekIs(t token.Type) bool {
	return p.peek().Type == t
}

func (p *Parser) eat() token.Token {
	tok := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return tok
}

// expect consumes the next token and fails unless it has the wanted type.
func (p *Parser) expect(t token.Type, context string) (token.Token, error) {
	tok := p.eat()
	if tok.Type == token.EOF && t != token.EOF {
		return tok, &Error{Kind: ErrUnexpectedEOF, Expected: t, Context: context}
	}
	if tok.Type != t {
		return tok, &Error{Kind: ErrExpectedToken, Expected: t, Got: tok.Type, Literal: tok.Literal, Context: context}
	}
	return tok, nil
}

func (p *Parser) parseStatement() (ast.Statement, error) {
	var (
		stmt ast.Statement
		err  error
	)

	switch p.peek().Type {
	case token.COMMENT:
		tok := p.eat()
		return &ast.Comment{Token: tok, Text: tok.Literal}, nil
	case token.LET, token.CONST:
		stmt, err = p.parseVarDeclaration()
	case token.FN:
		stmt, err = p.parseFnDeclaration()
	default:
		stmt, err = p.parseExpressionStatement()
	}
	if err != nil {
		return nil, err
	}

	if err := p.terminateStatement(stmt); err != nil {
		return nil, err
	}
	return stmt, nil
}

// terminateStatement enforces the semicolon rule: every statement is followed
// by ';' except comments, function declarations, and the final statement of a
// block or of the input.
func (p *Parser) terminateStatement(stmt ast.Statement) error {
	if _, ok := stmt.(*ast.FnDeclaration); ok {
		if p.peekIs(token.SEMICOLON) {
			p.eat()
		}
		return nil
	}

	switch p.peek().Type {
	case token.SEMICOLON:
		p.eat()
		return nil
	case token.RBRACE, token.EOF:
		return nil
	default:
		return &Error{
			Kind:     ErrExpectedToken,
			Expected: token.SEMICOLON,
			Got:      p.peek().Type,
			Literal:  p.peek().Literal,
			Context:  "expected semicolon after statement",
		}
	}
}

func (p *Parser) parseExpressionStatement() (ast.Statement, error) {
	tok := p.peek()
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.ExpressionStatement{Token: tok, Expression: expr}, nil
}

func (p *Parser) parseVarDeclaration() (ast.Statement, error) {
	keyword := p.eat() // 'let' or 'const'
	constant := keyword.Type == token.CONST

	ident, err := p.expect(token.IDENT, "expected identifier name after let or const keyword")
	if err != nil {
		return nil, err
	}

	// No initializer: the terminator rule consumes the semicolon.
	switch p.peek().Type {
	case token.SEMICOLON, token.RBRACE, token.EOF:
		if constant {
			return nil, &Error{Kind: ErrConstRequiresValue, Literal: ident.Literal}
		}
		return &ast.VarDeclaration{Token: keyword, Constant: false, Identifier: ident.Literal}, nil
	}

	if _, err := p.expect(token.ASSIGN, "expected equals token after identifier"); err != nil {
		return nil, err
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}

	return &ast.VarDeclaration{
		Token:      keyword,
		Constant:   constant,
		Identifier: ident.Literal,
		Value:      value,
	}, nil
}

func (p *Parser) parseFnDeclaration() (ast.Statement, error) {
	keyword := p.eat() // 'fn'

	name, err := p.expect(token.IDENT, "expected function name following fn keyword")
	if err != nil {
		return nil, err
	}

	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	parameters := make([]string, 0, len(args))
	for _, arg := range args {
		ident, ok := arg.(*ast.Identifier)
		if !ok {
			return nil, &Error{Kind: ErrParameterNotIdentifier, Literal: arg.String()}
		}
		parameters = append(parameters, ident.Value)
	}

	if _, err := p.expect(token.LBRACE, "expected function body following declaration"); err != nil {
		return nil, err
	}

	body := []ast.Statement{}
	for !p.peekIs(token.RBRACE) && !p.peekIs(token.EOF) {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		body = append(body, stmt)
	}

	if _, err := p.expect(token.RBRACE, "expected closing brace after function body"); err != nil {
		return nil, err
	}

	return &ast.FnDeclaration{
		Token:      keyword,
		Name:       name.Literal,
		Parameters: parameters,
		Body:       body,
	}, nil
}

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignment()
}

// parseAssignment handles `assignee = value`, right-associative.
func (p *Parser) parseAssignment() (ast.Expression, error) {
	left, err := p.parseObjectExpression()
	if err != nil {
		return nil, err
	}

	if p.peekIs(token.ASSIGN) {
		tok := p.eat()
		value, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return &ast.AssignmentExpression{Token: tok, Assignee: left, Value: value}, nil
	}

	return left, nil
}

// parseObjectExpression parses `{ foo: bar, baz, }` object literals, or
// descends to the additive level.
func (p *Parser) parseObjectExpression() (ast.Expression, error) {
	if !p.peekIs(token.LBRACE) {
		return p.parseAdditive()
	}

	brace := p.eat()
	properties := []*ast.Property{}

	for !p.peekIs(token.RBRACE) && !p.peekIs(token.EOF) {
		key, err := p.expect(token.IDENT, "object literal identifier expected")
		if err != nil {
			return nil, err
		}

		// Shorthand: { key, } or { key }
		if p.peekIs(token.COMMA) {
			p.eat()
			properties = append(properties, &ast.Property{Key: key.Literal})
			continue
		}
		if p.peekIs(token.RBRACE) {
			properties = append(properties, &ast.Property{Key: key.Literal})
			continue
		}

		if _, err := p.expect(token.COLON, "missing colon after identifier in object literal"); err != nil {
			return nil, err
		}

		value, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		properties = append(properties, &ast.Property{Key: key.Literal, Value: value})

		if !p.peekIs(token.RBRACE) {
			if _, err := p.expect(token.COMMA, "expected comma or closing brace after property"); err != nil {
				return nil, err
			}
		}
	}

	if _, err := p.expect(token.RBRACE, "object literal is missing a closing brace"); err != nil {
		return nil, err
	}

	return &ast.ObjectLiteral{Token: brace, Properties: properties}, nil
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}

	for p.peekIs(token.OPERATOR) && (p.peek().Literal == "+" || p.peek().Literal == "-") {
		op := p.eat()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: op, Left: left, Right: right, Operator: op.Literal}
	}

	return left, nil
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parseCallMember()
	if err != nil {
		return nil, err
	}

	for p.peekIs(token.OPERATOR) &&
		(p.peek().Literal == "*" || p.peek().Literal == "/" || p.peek().Literal == "%") {
		op := p.eat()
		right, err := p.parseCallMember()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryExpression{Token: op, Left: left, Right: right, Operator: op.Literal}
	}

	return left, nil
}

func (p *Parser) parseCallMember() (ast.Expression, error) {
	member, err := p.parseMember()
	if err != nil {
		return nil, err
	}

	if p.peekIs(token.LPAREN) {
		return p.parseCall(member)
	}

	return member, nil
}

// parseCall wraps caller in a CallExpression, chaining for f()().
func (p *Parser) parseCall(caller ast.Expression) (ast.Expression, error) {
	paren := p.peek()
	args, err := p.parseArgs()
	if err != nil {
		return nil, err
	}

	var expr ast.Expression = &ast.CallExpression{Token: paren, Caller: caller, Args: args}

	if p.peekIs(token.LPAREN) {
		return p.parseCall(expr)
	}

	return expr, nil
}

// parseArgs parses a parenthesized, comma-separated argument list.
func (p *Parser) parseArgs() ([]ast.Expression, error) {
	if _, err := p.expect(token.LPAREN, "expected open parenthesis"); err != nil {
		return nil, err
	}

	args := []ast.Expression{}
	if !p.peekIs(token.RPAREN) {
		for {
			arg, err := p.parseAssignment()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)

			if !p.peekIs(token.COMMA) {
				break
			}
			p.eat()
		}
	}

	if _, err := p.expect(token.RPAREN, "missing closing parenthesis in argument list"); err != nil {
		return nil, err
	}

	return args, nil
}

// parseMember parses a primary expression extended by any number of '.' and
// '[...]' accesses.
func (p *Parser) parseMember() (ast.Expression, error) {
	object, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}

	for p.peekIs(token.DOT) || p.peekIs(token.LBRACK) {
		operator := p.eat()

		if operator.Type == token.DOT {
			property, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}
			if _, ok := property.(*ast.Identifier); !ok {
				return nil, &Error{Kind: ErrDotPropertyNotIdentifier, Literal: property.String()}
			}
			object = &ast.MemberExpression{Token: operator, Object: object, Property: property}
			continue
		}

		property, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RBRACK, "missing closing bracket in computed member expression"); err != nil {
			return nil, err
		}
		object = &ast.MemberExpression{Token: operator, Object: object, Property: property, Computed: true}
	}

	return object, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.eat()

	switch tok.Type {
	case token.IDENT:
		return &ast.Identifier{Token: tok, Value: tok.Literal}, nil
	case token.NUMBER:
		value, err := strconv.ParseInt(tok.Literal, 10, 64)
		if err != nil {
			return nil, &Error{Kind: ErrBadNumericLiteral, Literal: tok.Literal}
		}
		return &ast.NumericLiteral{Token: tok, Value: value}, nil
	case token.LPAREN:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN, "no right paren inside expression"); err != nil {
			return nil, err
		}
		return expr, nil
	case token.EOF:
		return nil, &Error{Kind: ErrUnexpectedEOF}
	default:
		return nil, &Error{Kind: ErrUnsupportedToken, Got: tok.Type, Literal: tok.Literal}
	}
}
