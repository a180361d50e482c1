// Package flatten converts an ast.Branch into a flatten.Program: two
// tables keyed by monotonically allocated 16-bit node ids, built in a
// single traversal that allocates every child id before descending
// into it, so "child id > parent id" holds without a separate
// topological sort.
package flatten

import (
	"fmt"
	"math"

	"dymex/ast"
	"dymex/token"
	"dymex/value"
)

// Op is one non-leaf Program entry: the operator token plus the
// ordered ids of its children.
type Op struct {
	Token    token.TokenContext
	Children []uint16
}

// Program is the flattened form of an AST: values holds literals and
// constants (filled with intermediate results during evaluation), ops
// holds one entry per operator node, and aliases records the id each
// input name was assigned so the Evaluator can inject it before
// running the dispatch loop.
type Program struct {
	Values  map[uint16]value.Value
	Ops     map[uint16]Op
	Aliases map[string]uint16
	// FieldNames holds the textual name of a '.' operator's second
	// child: that child is a Var atom syntactically, but it names a
	// field rather than an input, so it is never entered into Aliases
	// or Values.
	FieldNames map[uint16]string
	RootID     uint16
}

// Error reports that an expression produced more nodes than a 16-bit
// id space can address, per spec.md §9.
type Error struct {
	NodeCount int
}

func (e *Error) Error() string {
	return fmt.Sprintf("flatten: expression has too many nodes (%d, max %d)", e.NodeCount, math.MaxUint16)
}

// Flatten turns root into a Program with a single traversal.
func Flatten(root ast.Branch) (*Program, error) {
	prog := &Program{
		Values:     make(map[uint16]value.Value),
		Ops:        make(map[uint16]Op),
		Aliases:    make(map[string]uint16),
		FieldNames: make(map[uint16]string),
	}
	var counter uint16
	prog.RootID = 0
	if err := assign(root, 0, &counter, prog); err != nil {
		return nil, err
	}
	return prog, nil
}

// assign populates prog for the subtree rooted at node, which has
// already been given id.
func assign(node ast.Branch, id uint16, counter *uint16, prog *Program) error {
	if node.IsAtom() {
		populateAtom(node, id, prog)
		return nil
	}

	childIDs := make([]uint16, len(node.Children))
	toVisit := make([]ast.Branch, 0, len(node.Children))
	toVisitIDs := make([]uint16, 0, len(node.Children))

	isFieldAccess := node.Token.Token.Kind == token.Dot

	for i, child := range node.Children {
		if isFieldAccess && i == 1 {
			// The field-name child is syntactically a Var atom but names
			// a field, not an input: give it a fresh id, record its name
			// in FieldNames, and never visit it as an ordinary atom (no
			// Aliases/Values entry).
			if *counter == math.MaxUint16 {
				return &Error{NodeCount: int(*counter) + 1}
			}
			*counter++
			childIDs[i] = *counter
			prog.FieldNames[*counter] = child.Token.Token.Name
			continue
		}
		if existing, shared := sharedAlias(child, prog); shared {
			childIDs[i] = existing
			continue
		}
		if *counter == math.MaxUint16 {
			return &Error{NodeCount: int(*counter) + 1}
		}
		*counter++
		childIDs[i] = *counter
		// Record a Var child's alias the moment its id is allocated, not
		// when it is later descended into: two occurrences of the same
		// input name can both be allocated (as siblings, or in either
		// order across a node's children) before either is visited, so
		// waiting for populateAtom to run would leave the second
		// occurrence with its own unshared id.
		if child.IsAtom() && child.Token.Token.Kind == token.Var {
			if _, ok := prog.Aliases[child.Token.Token.Name]; !ok {
				prog.Aliases[child.Token.Token.Name] = *counter
			}
		}
		toVisit = append(toVisit, child)
		toVisitIDs = append(toVisitIDs, *counter)
	}

	prog.Ops[id] = Op{Token: node.Token, Children: childIDs}

	for i, child := range toVisit {
		if err := assign(child, toVisitIDs[i], counter, prog); err != nil {
			return err
		}
	}
	return nil
}

// sharedAlias reports whether child is a Var atom whose name already
// has an allocated id, in which case that id must be reused rather
// than allocating a fresh one.
func sharedAlias(child ast.Branch, prog *Program) (uint16, bool) {
	if !child.IsAtom() || child.Token.Token.Kind != token.Var {
		return 0, false
	}
	id, ok := prog.Aliases[child.Token.Token.Name]
	return id, ok
}

func populateAtom(node ast.Branch, id uint16, prog *Program) {
	tok := node.Token.Token
	switch tok.Kind {
	case token.Number:
		prog.Values[id] = value.Number(tok.Number)
	case token.Const:
		prog.Values[id] = value.Number(tok.Constant.Value())
	case token.Var:
		if _, ok := prog.Aliases[tok.Name]; !ok {
			prog.Aliases[tok.Name] = id
		}
	}
}
