// Package ast defines the dymex abstract syntax tree: a two-variant
// closed sum type rather than one struct per operator. The parser
// builds it, the flattener walks it, and dispatch on the embedded
// operator token happens downstream in flatten and eval, not here.
package ast

import (
	"fmt"
	"strings"

	"dymex/token"
)

// Kind discriminates the two Branch variants.
type Kind int

const (
	AtomKind Kind = iota
	ExpressionKind
)

// Branch is a node of the AST: either a leaf Atom (number, constant, or
// variable reference) or an Expression (an operator token plus its
// ordered, non-empty operands/arguments).
type Branch struct {
	Kind     Kind
	Token    token.TokenContext
	Children []Branch
}

// Atom builds a leaf node from a literal, constant, or identifier token.
func Atom(tc token.TokenContext) Branch {
	return Branch{Kind: AtomKind, Token: tc}
}

// Expression builds an operator node. children must be non-empty; the
// parser is responsible for enforcing each operator's exact arity rule
// (unary: 1, binary: 2, function call: 1..MaxArity, index: 2, field: 2
// with the second child a Var atom, slice: 2).
func Expression(tc token.TokenContext, children []Branch) Branch {
	if len(children) == 0 {
		panic("ast: Expression requires at least one child")
	}
	return Branch{Kind: ExpressionKind, Token: tc, Children: children}
}

// IsAtom reports whether b is a leaf node.
func (b Branch) IsAtom() bool { return b.Kind == AtomKind }

// IsExpression reports whether b is an operator node.
func (b Branch) IsExpression() bool { return b.Kind == ExpressionKind }

// RPN renders b in reverse-Polish form, operands then operator, the way
// the original dymex's own test suite asserts parser output.
func (b Branch) RPN() string {
	var sb strings.Builder
	b.writeRPN(&sb)
	return sb.String()
}

func (b Branch) writeRPN(sb *strings.Builder) {
	if b.IsAtom() {
		sb.WriteString(b.Token.Token.String())
		return
	}
	for i, child := range b.Children {
		if i > 0 {
			sb.WriteByte(' ')
		}
		child.writeRPN(sb)
	}
	sb.WriteByte(' ')
	sb.WriteString(b.Token.Token.String())
}

func (b Branch) String() string {
	if b.IsAtom() {
		return fmt.Sprintf("Atom(%s)", b.Token.Token.String())
	}
	parts := make([]string, len(b.Children))
	for i, c := range b.Children {
		parts[i] = c.String()
	}
	return fmt.Sprintf("Expression(%s, [%s])", b.Token.Token.String(), strings.Join(parts, ", "))
}
