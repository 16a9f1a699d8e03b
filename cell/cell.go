// Package cell implements the spreadsheet's polymorphic cell value: a tagged
// variant of empty / plain text / formula, with a memoized formula result.
//
// A Cell holds no reference back to the sheet or the dependency graph that
// owns it (see the design note on back-pointers): evaluation takes the
// sheet as an explicit parameter, and the two-phase Classify/Commit split
// lets the sheet run cycle detection against a formula's references before
// the cell's content is ever changed.
package cell

import (
	"strings"

	"github.com/jys1670/spreadsheet/formula"
	"github.com/jys1670/spreadsheet/position"
	"github.com/jys1670/spreadsheet/value"
)

// Kind identifies which of the three cell variants is stored.
type Kind int

const (
	Empty Kind = iota
	Text
	Formula
)

// FormulaMarker is the leading character that introduces a formula.
const FormulaMarker = '='

// Pending is a classified, not-yet-committed cell body. Classify text first
// to discover its referenced positions (so the caller can run cycle
// detection), then Commit it to make the change observable.
type Pending struct {
	kind    Kind
	text    string
	formula *formula.Formula
}

// References returns the positions a pending formula reads; empty for the
// other two kinds.
func (p Pending) References() []position.Position {
	if p.kind != Formula {
		return nil
	}
	return p.formula.ReferencedCells()
}

// Classify determines the variant text should become, per the spreadsheet's
// encoding rules. It returns a *formula.SyntaxError, unwrapped, if text
// begins with '=' (and has more than one character) but does not parse.
func Classify(text string) (Pending, error) {
	if text == "" {
		return Pending{kind: Empty}, nil
	}
	if text[0] == FormulaMarker && len(text) >= 2 {
		f, err := formula.Parse(text[1:])
		if err != nil {
			return Pending{}, err
		}
		return Pending{kind: Formula, formula: f}, nil
	}
	return Pending{kind: Text, text: text}, nil
}

// Cell is the value stored in the sheet's cell table.
type Cell struct {
	kind    Kind
	text    string
	formula *formula.Formula
	cache   *value.Value
}

// New returns an Empty cell.
func New() *Cell { return &Cell{kind: Empty} }

// Commit replaces c's variant with p and drops any memoized formula value.
func (c *Cell) Commit(p Pending) {
	c.kind = p.kind
	c.text = p.text
	c.formula = p.formula
	c.cache = nil
}

// GetText returns the cell's stored text: verbatim for Empty/Text, or
// "=" followed by the canonical re-serialization of the formula for
// Formula cells.
func (c *Cell) GetText() string {
	switch c.kind {
	case Formula:
		return string(FormulaMarker) + c.formula.Expression()
	case Text:
		return c.text
	default:
		return ""
	}
}

// GetValue returns the cell's value, evaluating and memoizing a formula
// cell's result on first read. src resolves references for the evaluator.
func (c *Cell) GetValue(src formula.CellSource) value.Value {
	switch c.kind {
	case Formula:
		if c.cache == nil {
			v := c.formula.Evaluate(src)
			c.cache = &v
		}
		return *c.cache
	case Text:
		if strings.HasPrefix(c.text, "'") {
			return value.Text(c.text[1:])
		}
		return value.Text(c.text)
	default:
		return value.Text("")
	}
}

// GetReferencedCells returns the positions a formula cell reads; empty for
// Empty and Text cells.
func (c *Cell) GetReferencedCells() []position.Position {
	if c.kind != Formula {
		return nil
	}
	return c.formula.ReferencedCells()
}

// PurgeCache drops a formula cell's memoized value; a no-op otherwise. The
// dependency graph calls this on every cell in a changed cell's transitive
// dependants closure.
func (c *Cell) PurgeCache() {
	if c.kind == Formula {
		c.cache = nil
	}
}

// IsEmpty reports whether the cell's text is empty, which is what the
// sheet's printable bounding box is computed over.
func (c *Cell) IsEmpty() bool { return c.GetText() == "" }

// Kind reports which variant c currently holds.
func (c *Cell) Kind() Kind { return c.kind }
