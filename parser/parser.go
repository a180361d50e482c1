// Package parser builds a single ast.Branch from a token.TokenStream
// using Pratt precedence climbing, grounded on the binding-power tables
// and pre-pass validation rules of the dymex language.
package parser

import (
	"fmt"

	"dymex/ast"
	"dymex/token"
)

// ErrorKind enumerates the parsing error variants from spec.md §7.
type ErrorKind int

const (
	UnexpectedToken ErrorKind = iota
	UnexpectedLP
	MissingRP
	MissingArgument
	TooManyArguments
	InvalidOperation
	NotImplemented
)

// Error is a parsing error: offset plus whatever contextual detail the
// variant carries.
type Error struct {
	Kind    ErrorKind
	Offset  int
	Count   int
	Hint    string
	What    string
}

func (e *Error) Error() string {
	switch e.Kind {
	case UnexpectedToken:
		return fmt.Sprintf("parser: unexpected token at offset %d", e.Offset)
	case UnexpectedLP:
		return fmt.Sprintf("parser: unexpected '(' at offset %d", e.Offset)
	case MissingRP:
		return fmt.Sprintf("parser: missing %d closing ')'", e.Count)
	case MissingArgument:
		return fmt.Sprintf("parser: missing argument at offset %d", e.Offset)
	case TooManyArguments:
		return fmt.Sprintf("parser: too many arguments at offset %d", e.Offset)
	case InvalidOperation:
		return fmt.Sprintf("parser: invalid operation at offset %d: %s", e.Offset, e.Hint)
	case NotImplemented:
		return fmt.Sprintf("parser: not implemented: %s", e.What)
	default:
		return fmt.Sprintf("parser: error at offset %d", e.Offset)
	}
}

// bindingPower carries the left/right binding powers of an infix or
// postfix position. A zero left bp means "not infix/postfix".
type bindingPower struct {
	left, right int
	has         bool
}

var infixBP = map[token.Kind]bindingPower{
	token.Assign:  {2, 1, true},
	token.Colon:   {6, 5, true},
	token.Plus:    {10, 11, true},
	token.Minus:   {10, 11, true},
	token.Star:    {12, 13, true},
	token.Slash:   {12, 13, true},
	token.Pow:     {14, 15, true},
	token.Dot:     {14, 13, true},
}

// prefixRightBP is the right binding power of the two prefix operators.
const prefixRightBP = 9

// postfixLeftBP is the left binding power of the postfix '[' position.
const postfixLeftBP = 11

var disallowedTokens = map[token.Kind]string{
	token.PlusEq:    "compound assignment '+=' is not supported",
	token.MinusEq:   "compound assignment '-=' is not supported",
	token.StarEq:    "compound assignment '*=' is not supported",
	token.SlashEq:   "compound assignment '/=' is not supported",
	token.And:       "logical operator 'and' is not evaluated",
	token.Or:        "logical operator 'or' is not evaluated",
	token.Greater:   "relational operator '>' is not evaluated",
	token.Less:      "relational operator '<' is not evaluated",
	token.Equal:     "relational operator '==' is not evaluated",
	token.NotEqual:  "relational operator '!=' is not evaluated",
	token.LessEq:    "relational operator '<=' is not evaluated",
	token.GreaterEq: "relational operator '>=' is not evaluated",
}

// Parse runs the pre-pass validations and then the Pratt loop over ts,
// returning the single root Branch of the expression.
func Parse(ts *token.TokenStream) (ast.Branch, error) {
	if err := checkParens(ts); err != nil {
		return ast.Branch{}, err
	}
	if err := checkDisallowed(ts); err != nil {
		return ast.Branch{}, err
	}
	return pratt(ts, 0)
}

func checkParens(ts *token.TokenStream) error {
	depth := 0
	for _, tc := range ts.Tokens {
		switch tc.Token.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth < 0 {
				return &Error{Kind: UnexpectedLP, Offset: tc.At}
			}
		}
	}
	if depth != 0 {
		return &Error{Kind: MissingRP, Count: depth}
	}
	return nil
}

func checkDisallowed(ts *token.TokenStream) error {
	for _, tc := range ts.Tokens {
		if hint, ok := disallowedTokens[tc.Token.Kind]; ok {
			return &Error{Kind: InvalidOperation, Offset: tc.At, Hint: hint}
		}
	}
	return nil
}

// pratt parses one Branch, then extends it through the infix/postfix
// loop while the upcoming operator's left binding power is >= minBP.
func pratt(ts *token.TokenStream, minBP int) (ast.Branch, error) {
	lhs, err := parsePrefix(ts)
	if err != nil {
		return ast.Branch{}, err
	}

	for {
		next := ts.Peek()
		switch next.Token.Kind {
		case token.EOF:
			return lhs, nil
		case token.Number, token.Const, token.Var:
			// an atom where an operator was expected
			return ast.Branch{}, &Error{Kind: UnexpectedToken, Offset: next.At}
		}

		if next.Token.Kind == token.LBracket {
			if postfixLeftBP < minBP {
				return lhs, nil
			}
			ts.Next()
			inner, err := pratt(ts, 0)
			if err != nil {
				return ast.Branch{}, err
			}
			closeBracket := ts.Next()
			if closeBracket.Token.Kind != token.RBracket {
				return ast.Branch{}, &Error{Kind: UnexpectedToken, Offset: closeBracket.At}
			}
			lhs = ast.Expression(next, []ast.Branch{lhs, inner})
			continue
		}

		bp, ok := infixBP[next.Token.Kind]
		if !ok || !bp.has {
			return lhs, nil
		}
		if bp.left < minBP {
			return lhs, nil
		}
		ts.Next()

		if next.Token.Kind == token.Dot {
			fieldTok := ts.Next()
			if fieldTok.Token.Kind != token.Var {
				return ast.Branch{}, &Error{Kind: UnexpectedToken, Offset: fieldTok.At}
			}
			lhs = ast.Expression(next, []ast.Branch{lhs, ast.Atom(fieldTok)})
			continue
		}

		rhs, err := pratt(ts, bp.right)
		if err != nil {
			return ast.Branch{}, err
		}
		lhs = ast.Expression(next, []ast.Branch{lhs, rhs})
	}
}

func parsePrefix(ts *token.TokenStream) (ast.Branch, error) {
	tc := ts.Next()

	switch tc.Token.Kind {
	case token.Number, token.Const, token.Var:
		return ast.Atom(tc), nil

	case token.LParen:
		inner, err := pratt(ts, 0)
		if err != nil {
			return ast.Branch{}, err
		}
		closeParen := ts.Next()
		if closeParen.Token.Kind != token.RParen {
			return ast.Branch{}, &Error{Kind: UnexpectedToken, Offset: closeParen.At}
		}
		return inner, nil

	case token.Func:
		return parseCall(ts, tc)

	case token.Plus, token.Minus:
		operand, err := pratt(ts, prefixRightBP)
		if err != nil {
			return ast.Branch{}, err
		}
		return ast.Expression(tc, []ast.Branch{operand}), nil

	case token.EOF:
		return ast.Branch{}, &Error{Kind: UnexpectedToken, Offset: tc.At}

	default:
		return ast.Branch{}, &Error{Kind: UnexpectedToken, Offset: tc.At}
	}
}

func parseCall(ts *token.TokenStream, fn token.TokenContext) (ast.Branch, error) {
	lparen := ts.Next()
	if lparen.Token.Kind != token.LParen {
		return ast.Branch{}, &Error{Kind: UnexpectedToken, Offset: lparen.At}
	}

	var args []ast.Branch
	for {
		if ts.Peek().Token.Kind == token.RParen {
			return ast.Branch{}, &Error{Kind: MissingArgument, Offset: ts.Peek().At}
		}
		arg, err := pratt(ts, 0)
		if err != nil {
			return ast.Branch{}, err
		}
		args = append(args, arg)

		maxArity := fn.Token.Func.MaxArity()
		if len(args) > maxArity {
			return ast.Branch{}, &Error{Kind: TooManyArguments, Offset: fn.At}
		}

		switch ts.Peek().Token.Kind {
		case token.Comma:
			ts.Next()
			continue
		case token.RParen:
			ts.Next()
			return ast.Expression(fn, args), nil
		default:
			return ast.Branch{}, &Error{Kind: UnexpectedToken, Offset: ts.Peek().At}
		}
	}
}
