package value

import "math"

// scalarFn is the underlying float operation a binary dispatcher
// broadcasts elementwise.
type scalarFn func(a, b float64) float64

// Add, Sub, Mul, Div, PowOp implement the binary arithmetic
// category-dispatch table from spec.md §4.4: Number x Number is plain
// scalar math, Array x Number broadcasts on the left, Number x Array
// broadcasts on the right (which, for non-commutative ops, is exactly
// the "inverse" the spec describes: calling the same scalar function
// with the operands in source order already produces the reversed
// application), and Array x Array requires matching shapes.

func Add(lhs, rhs Value) (Value, error) {
	return binary("+", func(a, b float64) float64 { return a + b }, lhs, rhs)
}

func Sub(lhs, rhs Value) (Value, error) {
	return binary("-", func(a, b float64) float64 { return a - b }, lhs, rhs)
}

func Mul(lhs, rhs Value) (Value, error) {
	return binary("*", func(a, b float64) float64 { return a * b }, lhs, rhs)
}

func Div(lhs, rhs Value) (Value, error) {
	return binary("/", func(a, b float64) float64 { return a / b }, lhs, rhs)
}

func PowOp(lhs, rhs Value) (Value, error) {
	return binary("**", math.Pow, lhs, rhs)
}

func binary(op string, fn scalarFn, lhs, rhs Value) (Value, error) {
	switch l := lhs.(type) {
	case Number:
		switch r := rhs.(type) {
		case Number:
			return Number(fn(float64(l), float64(r))), nil
		case Array:
			out := make(Array, len(r))
			for i, x := range r {
				out[i] = fn(float64(l), x)
			}
			return out, nil
		default:
			return nil, binaryError(op, lhs, rhs)
		}
	case Array:
		switch r := rhs.(type) {
		case Number:
			out := make(Array, len(l))
			for i, x := range l {
				out[i] = fn(x, float64(r))
			}
			return out, nil
		case Array:
			if !ShapeMatches(l, r) {
				return nil, binaryError(op, lhs, rhs)
			}
			out := make(Array, len(l))
			for i := range l {
				out[i] = fn(l[i], r[i])
			}
			return out, nil
		default:
			return nil, binaryError(op, lhs, rhs)
		}
	default:
		return nil, binaryError(op, lhs, rhs)
	}
}

func binaryError(op string, lhs, rhs Value) error {
	return &OpError{Kind: InvalidBinaryOperation, Op: op, LHS: lhs.Category(), RHS: rhs.Category()}
}

// Neg and Identity implement unary arithmetic (prefix - and +).
func Neg(v Value) (Value, error) {
	return unary("-", func(x float64) float64 { return -x }, v)
}

func Identity(v Value) (Value, error) {
	return unary("+", func(x float64) float64 { return x }, v)
}

// elementwiseFuncs maps single-argument function names to their math
// implementation, per spec.md §4.4's single-arg function row.
var elementwiseFuncs = map[string]func(float64) float64{
	"abs":   math.Abs,
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"cotan": func(x float64) float64 { return 1 / math.Tan(x) },
	"exp":   math.Exp,
	"log":   math.Log,
	"log2":  math.Log2,
	"log10": math.Log10,
	"sqrt":  math.Sqrt,
}

// ApplyElementwise dispatches a single-argument built-in function by
// name across v, elementwise for Array and directly for Number.
func ApplyElementwise(name string, v Value) (Value, error) {
	fn, ok := elementwiseFuncs[name]
	if !ok {
		return nil, &OpError{Kind: Unknown, Details: "unknown function " + name}
	}
	return unary(name, fn, v)
}

func unary(op string, fn func(float64) float64, v Value) (Value, error) {
	switch x := v.(type) {
	case Number:
		return Number(fn(float64(x))), nil
	case Array:
		out := make(Array, len(x))
		for i, e := range x {
			out[i] = fn(e)
		}
		return out, nil
	default:
		return nil, &OpError{Kind: InvalidUnaryOperation, Op: op, Type: v.Category()}
	}
}

// Reducible is implemented by every concrete Value category so the
// single-argument reduction path ("1 argument -> delegate to the
// Value's own min/max/avg/std/sum/range") can dispatch uniformly.
type Reducible interface {
	Min() (Value, error)
	Max() (Value, error)
	Sum() (Value, error)
	Avg() (Value, error)
	Range() (Value, error)
	Std() (Value, error)
}

// Reduce implements the variadic-function dispatch rules: zero
// arguments is always an error, one argument delegates to the value's
// own reduction, and two-or-more arguments form a scalar dataset that
// is reduced directly (or is rejected if any argument isn't a Number).
func Reduce(name string, args []Value) (Value, error) {
	switch len(args) {
	case 0:
		return nil, &OpError{Kind: InvalidArguments, Function: name, Details: "needs at least one argument"}
	case 1:
		r, ok := args[0].(Reducible)
		if !ok {
			return nil, &OpError{Kind: InvalidUnaryOperation, Op: name, Type: args[0].Category()}
		}
		return dispatchReduction(name, r)
	default:
		nums := make([]float64, len(args))
		for i, a := range args {
			n, ok := a.(Number)
			if !ok {
				return nil, &OpError{
					Kind:     InvalidArguments,
					Function: name,
					Details:  "accepts a single array or multiple scalar values",
				}
			}
			nums[i] = float64(n)
		}
		return reduceDataset(name, nums)
	}
}

func dispatchReduction(name string, r Reducible) (Value, error) {
	switch name {
	case "min":
		return r.Min()
	case "max":
		return r.Max()
	case "sum":
		return r.Sum()
	case "avg":
		return r.Avg()
	case "range":
		return r.Range()
	case "std":
		return r.Std()
	default:
		return nil, &OpError{Kind: Unknown, Details: "unknown reduction " + name}
	}
}

// reduceDataset applies the >=2-scalar-argument formulas from
// spec.md §4.4 directly, population-form std (not sample).
func reduceDataset(name string, xs []float64) (Value, error) {
	n := float64(len(xs))
	switch name {
	case "min":
		m := math.Inf(1)
		for _, x := range xs {
			m = math.Min(m, x)
		}
		return Number(m), nil
	case "max":
		m := math.Inf(-1)
		for _, x := range xs {
			m = math.Max(m, x)
		}
		return Number(m), nil
	case "sum":
		var s float64
		for _, x := range xs {
			s += x
		}
		return Number(s), nil
	case "avg":
		var s float64
		for _, x := range xs {
			s += x
		}
		return Number(s / n), nil
	case "range":
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, x := range xs {
			lo = math.Min(lo, x)
			hi = math.Max(hi, x)
		}
		return Number(hi - lo), nil
	case "std":
		var sum float64
		for _, x := range xs {
			sum += x
		}
		avg := sum / n
		var sumSq float64
		for _, x := range xs {
			d := x - avg
			sumSq += d * d
		}
		return Number(math.Sqrt(sumSq / n)), nil
	default:
		return nil, &OpError{Kind: Unknown, Details: "unknown reduction " + name}
	}
}

// Fielded is implemented by every concrete Value category for the
// field-access operator (v.name).
type Fielded interface {
	GetField(name string) (Value, error)
}

// Indexed is implemented by every concrete Value category for the
// index ([i]) and slice ([i:j]) operators.
type Indexed interface {
	Index(i int) (Value, error)
	Slice(start, end int) (Value, error)
}

// GetField looks up a named field on v.
func GetField(v Value, name string) (Value, error) {
	f, ok := v.(Fielded)
	if !ok {
		return nil, &OpError{Kind: InvalidField, Type: v.Category(), Field: name}
	}
	return f.GetField(name)
}

// IndexAt picks element i of v.
func IndexAt(v Value, i int) (Value, error) {
	idx, ok := v.(Indexed)
	if !ok {
		return nil, &OpError{Kind: InvalidArguments, Function: "index", Details: "value is not indexable"}
	}
	return idx.Index(i)
}

// SliceRange returns the [start, end) subrange of v.
func SliceRange(v Value, start, end int) (Value, error) {
	idx, ok := v.(Indexed)
	if !ok {
		return nil, &OpError{Kind: InvalidArguments, Function: "slice", Details: "value is not sliceable"}
	}
	return idx.Slice(start, end)
}
