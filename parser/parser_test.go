package parser

import (
	"testing"

	"dymex/ast"
	"dymex/lexer"
)

func mustParse(t *testing.T, src string, inputs []string) ast.Branch {
	t.Helper()
	ts, err := lexer.Lex(src, inputs)
	if err != nil {
		t.Fatalf("Lex(%q) error: %v", src, err)
	}
	branch, err := Parse(ts)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", src, err)
	}
	return branch
}

func TestPrecedenceMulBindsTighterThanAdd(t *testing.T) {
	branch := mustParse(t, "a+b*c", []string{"a", "b", "c"})
	if got := branch.RPN(); got != "a b c * +" {
		t.Fatalf("RPN = %q, want %q", got, "a b c * +")
	}
}

func TestPowIsLeftAssociative(t *testing.T) {
	branch := mustParse(t, "2**3**2", nil)
	// Pow's right binding power (15) exceeds its left (14), which by the
	// table's own rule gives left-associativity: (2**3)**2 -> RPN "2 3 ** 2 **"
	if got := branch.RPN(); got != "2 3 ** 2 **" {
		t.Fatalf("RPN = %q, want %q", got, "2 3 ** 2 **")
	}
}

func TestDotIsLeftAssociativeAndBindsTighterThanMul(t *testing.T) {
	branch := mustParse(t, "a.b*2", []string{"a"})
	if got := branch.RPN(); got != "a b . 2 *" {
		t.Fatalf("RPN = %q, want %q", got, "a b . 2 *")
	}
	chain := mustParse(t, "a.b.c", []string{"a"})
	if got := chain.RPN(); got != "a b . c ." {
		t.Fatalf("RPN = %q, want %q", got, "a b . c .")
	}
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	branch := mustParse(t, "(a+b)*c", []string{"a", "b", "c"})
	if got := branch.RPN(); got != "a b + c *" {
		t.Fatalf("RPN = %q, want %q", got, "a b + c *")
	}
}

func TestPrefixMinusBindsLooserThanMul(t *testing.T) {
	// prefix '-' recurses at right bp 9, below '*''s left bp 12, so the
	// operand absorbs the product: -(a*b) -> RPN "a b * -"
	branch := mustParse(t, "- a * b", []string{"a", "b"})
	if got := branch.RPN(); got != "a b * -" {
		t.Fatalf("RPN = %q, want %q", got, "a b * -")
	}
}

func TestFunctionCallArity(t *testing.T) {
	branch := mustParse(t, "sin(x)", []string{"x"})
	if !branch.IsExpression() || len(branch.Children) != 1 {
		t.Fatalf("got %v, want a single-child function call", branch)
	}
}

func TestFunctionCallTooManyArguments(t *testing.T) {
	ts, err := lexer.Lex("sin(1,2)", nil)
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	_, err = Parse(ts)
	if err == nil {
		t.Fatal("expected TooManyArguments error")
	}
	if pe, ok := err.(*Error); !ok || pe.Kind != TooManyArguments {
		t.Fatalf("got %v, want TooManyArguments", err)
	}
}

func TestVariadicFunctionAcceptsManyArgs(t *testing.T) {
	branch := mustParse(t, "min(1,2,3,4)", nil)
	if len(branch.Children) != 4 {
		t.Fatalf("got %d children, want 4", len(branch.Children))
	}
}

func TestUnbalancedParensMissingRP(t *testing.T) {
	ts, err := lexer.Lex("(1+2", nil)
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	_, err = Parse(ts)
	if err == nil {
		t.Fatal("expected MissingRP error")
	}
	if pe, ok := err.(*Error); !ok || pe.Kind != MissingRP {
		t.Fatalf("got %v, want MissingRP", err)
	}
}

func TestUnbalancedParensUnexpectedLP(t *testing.T) {
	ts, err := lexer.Lex("1+2)", nil)
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	_, err = Parse(ts)
	if err == nil {
		t.Fatal("expected UnexpectedLP error")
	}
	if pe, ok := err.(*Error); !ok || pe.Kind != UnexpectedLP {
		t.Fatalf("got %v, want UnexpectedLP", err)
	}
}

func TestCompoundAssignmentRejected(t *testing.T) {
	ts, err := lexer.Lex("a += 1", []string{"a"})
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	_, err = Parse(ts)
	if err == nil {
		t.Fatal("expected InvalidOperation error")
	}
	if pe, ok := err.(*Error); !ok || pe.Kind != InvalidOperation {
		t.Fatalf("got %v, want InvalidOperation", err)
	}
}

func TestIndexingParsesAsExpression(t *testing.T) {
	branch := mustParse(t, "v[0]", []string{"v"})
	if !branch.IsExpression() || len(branch.Children) != 2 {
		t.Fatalf("got %v, want a 2-child index expression", branch)
	}
}

func TestSliceParsesAsColonExpression(t *testing.T) {
	branch := mustParse(t, "v[1:3]", []string{"v"})
	if !branch.IsExpression() {
		t.Fatal("expected an index expression")
	}
	inner := branch.Children[1]
	if !inner.IsExpression() || inner.Token.Token.Kind.String() != ":" {
		t.Fatalf("got %v, want a ':' slice expression inside the index", inner)
	}
}

func TestEmptyExpressionIsParseError(t *testing.T) {
	ts, err := lexer.Lex("", nil)
	if err != nil {
		t.Fatalf("Lex error: %v", err)
	}
	_, err = Parse(ts)
	if err == nil {
		t.Fatal("expected a parse error for an empty expression")
	}
}
