// Package eval implements the dymex Evaluator: Program.Compile lexes,
// parses, and flattens an expression once; Program.Evaluate walks the
// flattened ops table in descending id order, dispatching each
// operator over the runtime Value categories from package value.
package eval

import (
	"fmt"
	"sort"

	"dymex/ast"
	"dymex/flatten"
	"dymex/lexer"
	"dymex/parser"
	"dymex/token"
	"dymex/value"
)

// ErrorKind enumerates the evaluation-stage error variants this
// package adds on top of the category-mismatch errors value.OpError
// already reports (which this package wraps with an offset).
type ErrorKind int

const (
	// Wrapped wraps a value.OpError (or any error from the value
	// package) with the offset of the op node that produced it.
	Wrapped ErrorKind = iota
	// MissingInput reports an input name the Program's aliases table
	// requires that the caller's inputs map did not supply. Not part of
	// spec.md's literal §7 taxonomy (Evaluate's map-based interface
	// needs it in practice).
	MissingInput
	// NotImplemented reports an op kind that parses but is not
	// evaluated: the plain '=' assignment. Compound assignment, logical
	// and relational operators never get this far; the parser already
	// rejects them with InvalidOperation.
	NotImplemented
)

// Error is the evaluation-stage error: an offset plus either a wrapped
// value.OpError or one of this package's own variants.
type Error struct {
	Kind    ErrorKind
	Offset  int
	Name    string
	What    string
	Cause   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case MissingInput:
		return fmt.Sprintf("eval: missing input %q", e.Name)
	case NotImplemented:
		return fmt.Sprintf("eval: not implemented at offset %d: %s", e.Offset, e.What)
	default:
		return fmt.Sprintf("eval: error at offset %d: %s", e.Offset, e.Cause)
	}
}

func (e *Error) Unwrap() error { return e.Cause }

func wrap(offset int, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: Wrapped, Offset: offset, Cause: err}
}

// Program is a compiled expression: the flattened op/value tables plus
// enough of the front-end result (source text, parsed AST) to support
// the supplemented RPN/AST/diagram features.
type Program struct {
	flat   *flatten.Program
	root   ast.Branch
	source string
	inputs []string
	order  []uint16 // op ids, descending
}

// Compile lexes, parses, and flattens expression against the given
// recognized input names, caching the result for repeated Evaluate
// calls.
func Compile(expression string, inputs []string) (*Program, error) {
	ts, err := lexer.Lex(expression, inputs)
	if err != nil {
		return nil, err
	}
	root, err := parser.Parse(ts)
	if err != nil {
		return nil, err
	}
	flat, err := flatten.Flatten(root)
	if err != nil {
		return nil, err
	}

	order := make([]uint16, 0, len(flat.Ops))
	for id := range flat.Ops {
		order = append(order, id)
	}
	sort.Slice(order, func(i, j int) bool { return order[i] > order[j] })

	return &Program{flat: flat, root: root, source: expression, inputs: inputs, order: order}, nil
}

// Flat exposes the flattened Program for diagram/AST tooling.
func (p *Program) Flat() *flatten.Program { return p.flat }

// Source returns the original expression text, for diagnostic
// rendering.
func (p *Program) Source() string { return p.source }

// Inputs returns the recognized input names this Program was compiled
// against.
func (p *Program) Inputs() []string { return p.inputs }

// RPN renders the compiled expression's parsed form in reverse-Polish
// notation.
func (p *Program) RPN() string { return p.root.RPN() }

// Evaluate binds inputs at their aliased ids and runs the dispatch
// loop, returning the root's value.
func (p *Program) Evaluate(inputs map[string]value.Value) (value.Value, error) {
	values := make(map[uint16]value.Value, len(p.flat.Values)+len(p.flat.Aliases))
	for id, v := range p.flat.Values {
		values[id] = v
	}
	for name, id := range p.flat.Aliases {
		v, ok := inputs[name]
		if !ok {
			return nil, &Error{Kind: MissingInput, Name: name}
		}
		values[id] = v
	}

	for _, id := range p.order {
		op := p.flat.Ops[id]
		result, err := dispatch(op, values, p.flat.FieldNames)
		if err != nil {
			if evalErr, ok := err.(*Error); ok {
				return nil, evalErr
			}
			return nil, wrap(op.Token.At, err)
		}
		values[id] = result
	}

	root, ok := values[p.flat.RootID]
	if !ok {
		return nil, &Error{Kind: Wrapped, Offset: 0, Cause: fmt.Errorf("root value never computed")}
	}
	return root, nil
}

// childValue looks up a child node's computed value, erroring instead
// of handing back a nil Value: every dispatcher below immediately calls
// a method on what it gets back (Category(), a type assertion, ...),
// and a nil interface there panics rather than failing cleanly.
func childValue(id uint16, values map[uint16]value.Value) (value.Value, error) {
	v, ok := values[id]
	if !ok {
		return nil, &value.OpError{Kind: value.Unknown, Details: fmt.Sprintf("node %d has no computed value", id)}
	}
	return v, nil
}

func dispatch(op flatten.Op, values map[uint16]value.Value, fieldNames map[uint16]string) (value.Value, error) {
	children := op.Children

	switch op.Token.Token.Kind {
	case token.Plus:
		if len(children) == 1 {
			a, err := childValue(children[0], values)
			if err != nil {
				return nil, err
			}
			return value.Identity(a)
		}
		a, b, err := childPair(children, values)
		if err != nil {
			return nil, err
		}
		return value.Add(a, b)
	case token.Minus:
		if len(children) == 1 {
			a, err := childValue(children[0], values)
			if err != nil {
				return nil, err
			}
			return value.Neg(a)
		}
		a, b, err := childPair(children, values)
		if err != nil {
			return nil, err
		}
		return value.Sub(a, b)
	case token.Star:
		a, b, err := childPair(children, values)
		if err != nil {
			return nil, err
		}
		return value.Mul(a, b)
	case token.Slash:
		a, b, err := childPair(children, values)
		if err != nil {
			return nil, err
		}
		return value.Div(a, b)
	case token.Pow:
		a, b, err := childPair(children, values)
		if err != nil {
			return nil, err
		}
		return value.PowOp(a, b)

	case token.Func:
		return dispatchFunc(op, values)

	case token.Dot:
		left, err := childValue(children[0], values)
		if err != nil {
			return nil, err
		}
		name, ok := fieldNames[children[1]]
		if !ok {
			return nil, &value.OpError{Kind: value.InvalidField, Type: left.Category(), Field: "?"}
		}
		return value.GetField(left, name)

	case token.LBracket:
		return dispatchIndex(op, values)

	case token.Colon:
		left, err := childValue(children[0], values)
		if err != nil {
			return nil, err
		}
		right, err := childValue(children[1], values)
		if err != nil {
			return nil, err
		}
		start, err := intArg(left)
		if err != nil {
			return nil, err
		}
		end, err := intArg(right)
		if err != nil {
			return nil, err
		}
		return sliceMarker{start: start, end: end}, nil

	default:
		return nil, &Error{
			Kind:   NotImplemented,
			Offset: op.Token.At,
			What:   "operator " + op.Token.Token.Kind.String() + " is not evaluated",
		}
	}
}

// childPair looks up the two operands of a binary op.
func childPair(children []uint16, values map[uint16]value.Value) (value.Value, value.Value, error) {
	a, err := childValue(children[0], values)
	if err != nil {
		return nil, nil, err
	}
	b, err := childValue(children[1], values)
	if err != nil {
		return nil, nil, err
	}
	return a, b, nil
}

func dispatchFunc(op flatten.Op, values map[uint16]value.Value) (value.Value, error) {
	fn := op.Token.Token.Func
	name := fn.String()
	if fn.Variadic() {
		args := make([]value.Value, len(op.Children))
		for i, id := range op.Children {
			v, err := childValue(id, values)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return value.Reduce(name, args)
	}
	arg, err := childValue(op.Children[0], values)
	if err != nil {
		return nil, err
	}
	return value.ApplyElementwise(name, arg)
}

func dispatchIndex(op flatten.Op, values map[uint16]value.Value) (value.Value, error) {
	left, right, err := childPair(op.Children, values)
	if err != nil {
		return nil, err
	}
	if sm, ok := right.(sliceMarker); ok {
		return value.SliceRange(left, sm.start, sm.end)
	}
	idx, err := intArg(right)
	if err != nil {
		return nil, err
	}
	return value.IndexAt(left, idx)
}

func intArg(v value.Value) (int, error) {
	n, ok := v.(value.Number)
	if !ok {
		return 0, &value.OpError{Kind: value.InvalidArguments, Function: "index", Details: "expected a Number"}
	}
	return int(n), nil
}

// sliceMarker is the Value the ':' operator produces: consumed only by
// an enclosing '[...]' index op, never by arithmetic. Implementing it
// as a CategoryUnique value keeps the three-category model closed --
// deny-arithmetic is exactly what Unique already means.
type sliceMarker struct{ start, end int }

func (s sliceMarker) Category() value.Category { return value.CategoryUnique }
func (s sliceMarker) Shape() [value.MaxDim]int { return [value.MaxDim]int{} }
func (s sliceMarker) GetField(name string) (value.Value, error) {
	return nil, &value.OpError{Kind: value.InvalidField, Type: value.CategoryUnique, Field: name}
}
func (s sliceMarker) Index(i int) (value.Value, error) {
	return nil, &value.OpError{Kind: value.InvalidArguments, Function: "index", Details: "cannot index a slice bound"}
}
func (s sliceMarker) Slice(start, end int) (value.Value, error) {
	return nil, &value.OpError{Kind: value.InvalidArguments, Function: "slice", Details: "cannot slice a slice bound"}
}
