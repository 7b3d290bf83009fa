package ast_test

import (
	"testing"

	"github.com/quill-lang/quill/ast"
	"github.com/quill-lang/quill/token"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	program := &ast.Program{
		Body: []ast.Statement{
			&ast.VarDeclaration{
				Token:      token.Token{Type: token.LET, Literal: "let"},
				Constant:   false,
				Identifier: "x",
				Value: &ast.BinaryExpression{
					Token: token.Token{Type: token.OPERATOR, Literal: "+"},
					Left: &ast.NumericLiteral{
						Token: token.Token{Type: token.NUMBER, Literal: "5"},
						Value: 5,
					},
					Right: &ast.Identifier{
						Token: token.Token{Type: token.IDENT, Literal: "y"},
						Value: "y",
					},
					Operator: "+",
				},
			},
		},
	}

	require.Equal(t, "let x = (5 + y);", program.String())
	require.Equal(t, "let", program.TokenLiteral())
}

func TestObjectLiteralString(t *testing.T) {
	obj := &ast.ObjectLiteral{
		Token: token.Token{Type: token.LBRACE, Literal: "{"},
		Properties: []*ast.Property{
			{Key: "x", Value: &ast.NumericLiteral{Value: 100, Token: token.Token{Literal: "100"}}},
			{Key: "y"},
		},
	}

	require.Equal(t, "{ x: 100, y }", obj.String())
}

func TestMemberAndCallString(t *testing.T) {
	member := &ast.MemberExpression{
		Token:    token.Token{Type: token.DOT, Literal: "."},
		Object:   &ast.Identifier{Value: "obj"},
		Property: &ast.Identifier{Value: "field"},
	}
	require.Equal(t, "obj.field", member.String())

	computed := &ast.MemberExpression{
		Token:    token.Token{Type: token.LBRACK, Literal: "["},
		Object:   &ast.Identifier{Value: "obj"},
		Property: &ast.NumericLiteral{Value: 0, Token: token.Token{Literal: "0"}},
		Computed: true,
	}
	require.Equal(t, "obj[0]", computed.String())

	call := &ast.CallExpression{
		Token:  token.Token{Type: token.LPAREN, Literal: "("},
		Caller: &ast.Identifier{Value: "print"},
		Args: []ast.Expression{
			&ast.Identifier{Value: "x"},
			&ast.NumericLiteral{Value: 2, Token: token.Token{Literal: "2"}},
		},
	}
	require.Equal(t, "print(x, 2)", call.String())
}

func TestFnDeclarationString(t *testing.T) {
	fn := &ast.FnDeclaration{
		Token:      token.Token{Type: token.FN, Literal: "fn"},
		Name:       "add",
		Parameters: []string{"x", "y"},
		Body: []ast.Statement{
			&ast.ExpressionStatement{
				Token: token.Token{Type: token.IDENT, Literal: "x"},
				Expression: &ast.BinaryExpression{
					Token:    token.Token{Type: token.OPERATOR, Literal: "+"},
					Left:     &ast.Identifier{Value: "x"},
					Right:    &ast.Identifier{Value: "y"},
					Operator: "+",
				},
			},
		},
	}

	require.Equal(t, "fn add(x, y) { (x + y); }", fn.String())
}
