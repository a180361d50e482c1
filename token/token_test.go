package token

import "testing"

func TestLookupConstantResolvesNameAndRejectsUnknown(t *testing.T) {
	if c, ok := LookupConstant("pi"); !ok || c != Pi {
		t.Fatalf("LookupConstant(pi) = %v, %v, want Pi, true", c, ok)
	}
	if _, ok := LookupConstant("not-a-constant"); ok {
		t.Fatal("expected LookupConstant to reject an unknown name")
	}
}

func TestLookupFuncAcceptsMeanAsAvgAlias(t *testing.T) {
	f, ok := LookupFunc("mean")
	if !ok || f != FuncAvg {
		t.Fatalf("LookupFunc(mean) = %v, %v, want FuncAvg, true", f, ok)
	}
}

func TestFuncVariadicAndArity(t *testing.T) {
	if !FuncMin.Variadic() || FuncMin.MaxArity() != MaxVariadicArgs {
		t.Fatalf("FuncMin: variadic=%v arity=%d, want true, %d", FuncMin.Variadic(), FuncMin.MaxArity(), MaxVariadicArgs)
	}
	if FuncSin.Variadic() || FuncSin.MaxArity() != 1 {
		t.Fatalf("FuncSin: variadic=%v arity=%d, want false, 1", FuncSin.Variadic(), FuncSin.MaxArity())
	}
}

func TestReservedNamesCoverFuncsAndConstants(t *testing.T) {
	for _, name := range []string{"sin", "min", "pi", "sqrt2"} {
		if !ReservedNames[name] {
			t.Errorf("ReservedNames[%q] = false, want true", name)
		}
	}
	if ReservedNames["totally_not_reserved"] {
		t.Error("expected an ordinary identifier to not be reserved")
	}
}

func TestTokenStreamNextReturnsEOFSentinelOnceExhausted(t *testing.T) {
	tokens := []TokenContext{Dummy(Token{Kind: Number, Number: 1})}
	ts := New("1", nil, tokens)
	if ts.Next().Token.Kind != Number {
		t.Fatal("expected the single Number token first")
	}
	if ts.Next().Token.Kind != EOF {
		t.Fatal("expected an EOF sentinel once the stream is exhausted")
	}
	if ts.Peek().Token.Kind != EOF {
		t.Fatal("expected Peek to also report EOF once exhausted")
	}
}

func TestTokenStringRendersLikeSource(t *testing.T) {
	cases := []struct {
		tok  Token
		want string
	}{
		{Token{Kind: Number, Number: 2.5}, "2.5"},
		{Token{Kind: Const, Constant: Pi}, "pi"},
		{Token{Kind: Var, Name: "x"}, "x"},
		{Token{Kind: Func, Func: FuncSum}, "sum"},
		{Token{Kind: Plus}, "+"},
	}
	for _, tc := range cases {
		if got := tc.tok.String(); got != tc.want {
			t.Errorf("String() = %q, want %q", got, tc.want)
		}
	}
}
