// Package sheet assembles position, value, formula, cell and graph into the
// spreadsheet's public facade: a cell table plus the dependency graph that
// keeps it consistent.
//
// Sheet performs no internal locking (see the concurrency note in the
// design doc): a single caller must serialize its own calls. Nothing here
// holds a lock across a call into formula evaluation or graph traversal.
package sheet

import (
	"io"
	"math"
	"strconv"

	"github.com/jys1670/spreadsheet/cell"
	"github.com/jys1670/spreadsheet/formula"
	"github.com/jys1670/spreadsheet/graph"
	"github.com/jys1670/spreadsheet/position"
	"github.com/jys1670/spreadsheet/value"
)

// Sheet is the spreadsheet's cell table and its dependency graph.
type Sheet struct {
	table map[position.Position]*cell.Cell
	graph *graph.Graph
	size  position.Size
}

// New returns an empty Sheet.
func New() *Sheet {
	return &Sheet{
		table: make(map[position.Position]*cell.Cell),
		graph: graph.New(),
	}
}

// SetCell classifies and commits text at pos. A formula whose references
// would close a cycle is rejected with *CircularDependencyError and the
// cell is left exactly as it was; a formula that does not parse is
// rejected with the underlying *formula.SyntaxError. An invalid pos yields
// *InvalidPositionError. Setting a cell to its current text is a no-op.
func (s *Sheet) SetCell(pos position.Position, text string) error {
	if !pos.Valid() {
		return &InvalidPositionError{Pos: pos.String()}
	}
	if existing, ok := s.table[pos]; ok && existing.GetText() == text {
		return nil
	}

	pending, err := cell.Classify(text)
	if err != nil {
		return err
	}

	if !s.graph.UpdateCell(pos, pending.References(), s.purge) {
		return &CircularDependencyError{Pos: pos.String()}
	}

	target, ok := s.table[pos]
	if !ok {
		target = cell.New()
		s.table[pos] = target
	}
	target.Commit(pending)

	for _, ref := range pending.References() {
		if _, ok := s.table[ref]; !ok {
			s.table[ref] = cell.New()
		}
	}

	if !target.IsEmpty() {
		s.extend(pos)
	}
	return nil
}

// ClearCell removes pos's content, shrinking the printable bounding box if
// pos was one of its extremal cells. Clearing an absent cell is a no-op; a
// present cell, even an empty one, is removed from the table. An invalid pos
// yields *InvalidPositionError.
func (s *Sheet) ClearCell(pos position.Position) error {
	if !pos.Valid() {
		return &InvalidPositionError{Pos: pos.String()}
	}
	if _, ok := s.table[pos]; !ok {
		return nil
	}

	s.graph.UpdateCell(pos, nil, s.purge)
	delete(s.table, pos)
	s.recomputeSize()
	return nil
}

// GetCell returns the cell stored at pos, or nil if none was ever set or
// materialized there. An invalid pos yields *InvalidPositionError.
func (s *Sheet) GetCell(pos position.Position) (*cell.Cell, error) {
	if !pos.Valid() {
		return nil, &InvalidPositionError{Pos: pos.String()}
	}
	return s.table[pos], nil
}

// GetPrintableSize returns the minimal bounding box covering every cell
// whose text is non-empty.
func (s *Sheet) GetPrintableSize() position.Size { return s.size }

// ValueAt implements formula.CellSource: it resolves a reference during
// formula evaluation, applying the reference-resolution rule of an absent
// or Empty cell reading as zero, a Text cell parsing as a finite decimal
// number or else yielding a Value error, and a Formula cell propagating
// its own value or error untouched.
func (s *Sheet) ValueAt(pos position.Position) value.Value {
	if !pos.Valid() {
		return value.Err(value.Ref)
	}
	c, ok := s.table[pos]
	if !ok || c.Kind() == cell.Empty {
		return value.Number(0)
	}

	v := c.GetValue(s)
	if c.Kind() == cell.Formula {
		return v
	}

	f, err := strconv.ParseFloat(v.String(), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return value.Err(value.ValueErr)
	}
	return value.Number(f)
}

// PrintValues writes the sheet's printable rectangle, one row per line and
// cells tab-separated, rendering each cell's evaluated value.
func (s *Sheet) PrintValues(w io.Writer) error {
	return s.printRows(w, func(c *cell.Cell) string {
		if c == nil {
			return ""
		}
		return c.GetValue(s).String()
	})
}

// PrintTexts writes the sheet's printable rectangle like PrintValues, but
// rendering each cell's stored text instead of its evaluated value.
func (s *Sheet) PrintTexts(w io.Writer) error {
	return s.printRows(w, func(c *cell.Cell) string {
		if c == nil {
			return ""
		}
		return c.GetText()
	})
}

func (s *Sheet) printRows(w io.Writer, render func(*cell.Cell) string) error {
	for row := 0; row < s.size.Rows; row++ {
		for col := 0; col < s.size.Cols; col++ {
			if col > 0 {
				if _, err := io.WriteString(w, "\t"); err != nil {
					return err
				}
			}
			c := s.table[position.Position{Row: row, Col: col}]
			if _, err := io.WriteString(w, render(c)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func (s *Sheet) purge(pos position.Position) {
	if c, ok := s.table[pos]; ok {
		c.PurgeCache()
	}
}

func (s *Sheet) extend(pos position.Position) {
	if pos.Row+1 > s.size.Rows {
		s.size.Rows = pos.Row + 1
	}
	if pos.Col+1 > s.size.Cols {
		s.size.Cols = pos.Col + 1
	}
}

// recomputeSize rescans the whole table. Only ClearCell needs this: SetCell
// never shrinks the box (it only ever extends), matching the engine's
// original behavior.
func (s *Sheet) recomputeSize() {
	var size position.Size
	for pos, c := range s.table {
		if c.IsEmpty() {
			continue
		}
		if pos.Row+1 > size.Rows {
			size.Rows = pos.Row + 1
		}
		if pos.Col+1 > size.Cols {
			size.Cols = pos.Col + 1
		}
	}
	s.size = size
}

var _ formula.CellSource = (*Sheet)(nil)
