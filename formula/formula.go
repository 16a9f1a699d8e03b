package formula

import (
	"github.com/jys1670/spreadsheet/position"
	"github.com/jys1670/spreadsheet/value"
)

// CellSource resolves the current value of a referenced position. It is
// implemented by the sheet; formulas never hold a reference to the sheet
// itself, so a cleared sheet or a cell removed mid-evaluation cannot leave
// a formula holding a stale pointer.
type CellSource interface {
	ValueAt(pos position.Position) value.Value
}

// Formula is a parsed arithmetic expression: the evaluation tree plus the
// ordered, duplicate-free list of cells it references.
type Formula struct {
	root    expr
	refs    []position.Position
	canon   string
}

// Parse parses the text following the leading '=' of a formula cell. It
// returns a *SyntaxError (never wrapped) if the text is not well-formed,
// including when a syntactically valid A1 reference names a position
// outside the addressable grid.
func Parse(src string) (*Formula, error) {
	root, refs, err := parseFormula(src)
	if err != nil {
		return nil, err
	}
	f := &Formula{root: root, refs: refs}
	f.canon = root.format(precLowest)
	return f, nil
}

// Evaluate walks the expression tree against src, resolving references via
// src.ValueAt.
func (f *Formula) Evaluate(src CellSource) value.Value {
	return f.root.eval(evalAdapter{src})
}

// Expression returns the canonical re-serialization of the formula: no
// superfluous whitespace, parentheses only where precedence/associativity
// requires them, numbers in shortest round-trip form.
func (f *Formula) Expression() string { return f.canon }

// ReferencedCells returns the positions referenced by the formula, in
// order of first appearance in the source text, without duplicates.
func (f *Formula) ReferencedCells() []position.Position {
	out := make([]position.Position, len(f.refs))
	copy(out, f.refs)
	return out
}

// evalAdapter lets a formula.CellSource satisfy the unexported evalContext
// interface without exposing eval's node-level plumbing.
type evalAdapter struct{ src CellSource }

func (a evalAdapter) ValueAt(pos position.Position) value.Value { return a.src.ValueAt(pos) }
