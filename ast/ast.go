package ast

import (
	"bytes"
	"strconv"
	"strings"

	"github.com/quill-lang/quill/token"
)

// Node is the base interface for all AST nodes. Every sub-node is exclusively
// owned by its parent; the AST is a tree with no sharing and no cycles.
type Node interface {
	// TokenLiteral returns the literal value of the token associated with the node.
	TokenLiteral() string
	// String returns a source-like string representation of the node.
	String() string
}

// Statement is a node that represents a statement.
type Statement interface {
	Node
	statementNode()
}

// Expression is a node that represents an expression.
type Expression interface {
	Node
	expressionNode()
}

// Program is the root node of a parsed Quill program.
type Program struct {
	Body []Statement
}

// TokenLiteral returns the literal value of the token associated with the node.
func (p *Program) TokenLiteral() string {
	if len(p.Body) > 0 {
		return p.Body[0].TokenLiteral()
	}
	return ""
}

// String returns a source-like string representation of the node, one
// statement per line.
func (p *Program) String() string {
	stmts := make([]string, 0, len(p.Body))
	for _, s := range p.Body {
		stmts = append(stmts, s.String())
	}
	return strings.Join(stmts, "\n")
}

// ExpressionStatement represents a statement that consists of a single expression.
type ExpressionStatement struct {
	Token      token.Token // the first token of the expression
	Expression Expression
}

func (es *ExpressionStatement) statementNode()       {}
func (es *ExpressionStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExpressionStatement) String() string {
	if es.Expression != nil {
		return es.Expression.String() + ";"
	}
	return ""
}

// Comment represents a source comment kept as a statement.
type Comment struct {
	Token token.Token // the token.COMMENT token
	Text  string
}

func (c *Comment) statementNode()       {}
func (c *Comment) TokenLiteral() string { return c.Token.Literal }
func (c *Comment) String() string       { return "//" + c.Text }

// VarDeclaration represents a `let` or `const` declaration. A nil Value
// means the variable was declared without an initializer.
type VarDeclaration struct {
	Token      token.Token // the token.LET or token.CONST token
	Constant   bool
	Identifier string
	Value      Expression
}

func (vd *VarDeclaration) statementNode()       {}
func (vd *VarDeclaration) TokenLiteral() string { return vd.Token.Literal }
func (vd *VarDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString(vd.Token.Literal)
	out.WriteString(" ")
	out.WriteString(vd.Identifier)
	if vd.Value != nil {
		out.WriteString(" = ")
		out.WriteString(vd.Value.String())
	}
	out.WriteString(";")
	return out.String()
}

// FnDeclaration represents a named function declaration.
type FnDeclaration struct {
	Token      token.Token // the token.FN token
	Name       string
	Parameters []string
	Body       []Statement
	IsConst    bool
}

func (fd *FnDeclaration) statementNode()       {}
func (fd *FnDeclaration) TokenLiteral() string { return fd.Token.Literal }
func (fd *FnDeclaration) String() string {
	var out bytes.Buffer
	out.WriteString("fn ")
	out.WriteString(fd.Name)
	out.WriteString("(")
	out.WriteString(strings.Join(fd.Parameters, ", "))
	out.WriteString(") { ")
	for _, s := range fd.Body {
		out.WriteString(s.String())
		out.WriteString(" ")
	}
	out.WriteString("}")
	return out.String()
}

// Identifier represents an identifier.
type Identifier struct {
	Token token.Token // the token.IDENT token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) String() string       { return i.Value }

// NumericLiteral represents an integer literal. The literal text is parsed
// to an int64 once, at parse time.
type NumericLiteral struct {
	Token token.Token
	Value int64
}

func (nl *NumericLiteral) expressionNode()      {}
func (nl *NumericLiteral) TokenLiteral() string { return nl.Token.Literal }
func (nl *NumericLiteral) String() string       { return strconv.FormatInt(nl.Value, 10) }

// Property is a single entry of an object literal. A nil Value marks a
// shorthand property, resolved later by identifier lookup.
type Property struct {
	Key   string
	Value Expression
}

func (p *Property) String() string {
	if p.Value == nil {
		return p.Key
	}
	return p.Key + ": " + p.Value.String()
}

// ObjectLiteral represents an object literal.
type ObjectLiteral struct {
	Token      token.Token // the '{' token
	Properties []*Property
}

func (ol *ObjectLiteral) expressionNode()      {}
func (ol *ObjectLiteral) TokenLiteral() string { return ol.Token.Literal }
func (ol *ObjectLiteral) String() string {
	var out bytes.Buffer
	props := []string{}
	for _, p := range ol.Properties {
		props = append(props, p.String())
	}
	out.WriteString("{ ")
	out.WriteString(strings.Join(props, ", "))
	out.WriteString(" }")
	return out.String()
}

// AssignmentExpression represents `assignee = value`. Assignment is
// right-associative.
type AssignmentExpression struct {
	Token    token.Token // the '=' token
	Assignee Expression
	Value    Expression
}

func (ae *AssignmentExpression) expressionNode()      {}
func (ae *AssignmentExpression) TokenLiteral() string { return ae.Token.Literal }
func (ae *AssignmentExpression) String() string {
	return ae.Assignee.String() + " = " + ae.Value.String()
}

// MemberExpression represents `object.property` or `object[property]`.
// The parser builds these nodes; no evaluation rule consumes them yet.
type MemberExpression struct {
	Token    token.Token // the '.' or '[' token
	Object   Expression
	Property Expression
	Computed bool
}

func (me *MemberExpression) expressionNode()      {}
func (me *MemberExpression) TokenLiteral() string { return me.Token.Literal }
func (me *MemberExpression) String() string {
	if me.Computed {
		return me.Object.String() + "[" + me.Property.String() + "]"
	}
	return me.Object.String() + "." + me.Property.String()
}

// CallExpression represents `caller(args...)`.
type CallExpression struct {
	Token  token.Token // the '(' token
	Caller Expression
	Args   []Expression
}

func (ce *CallExpression) expressionNode()      {}
func (ce *CallExpression) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpression) String() string {
	var out bytes.Buffer
	args := []string{}
	for _, a := range ce.Args {
		args = append(args, a.String())
	}
	out.WriteString(ce.Caller.String())
	out.WriteString("(")
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")
	return out.String()
}

// BinaryExpression represents `left operator right`.
type BinaryExpression struct {
	Token    token.Token // the operator token
	Left     Expression
	Right    Expression
	Operator string
}

func (be *BinaryExpression) expressionNode()      {}
func (be *BinaryExpression) TokenLiteral() string { return be.Token.Literal }
func (be *BinaryExpression) String() string {
	return "(" + be.Left.String() + " " + be.Operator + " " + be.Right.String() + ")"
}
