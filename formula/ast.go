package formula

import (
	"math"
	"strconv"

	"github.com/jys1670/spreadsheet/position"
	"github.com/jys1670/spreadsheet/value"
)

// precedence levels used both for parsing and for canonical re-serialization.
const (
	precLowest = iota
	precSum
	precProduct
	precUnary
)

// evalContext is the narrow view of the sheet a formula needs: the value
// currently stored at a position. It is satisfied by *sheet.Sheet; keeping
// it as a local interface (rather than storing a sheet back-reference on
// each node) avoids an import cycle between formula and sheet and keeps
// node construction free of lifetime concerns.
type evalContext interface {
	ValueAt(pos position.Position) value.Value
}

// expr is one node of a parsed formula's expression tree.
type expr interface {
	eval(ctx evalContext) value.Value
	format(minPrec int) string
}

// numberExpr is a numeric literal.
type numberExpr struct{ v float64 }

func (n numberExpr) eval(evalContext) value.Value { return value.Number(n.v) }
func (n numberExpr) format(int) string            { return strconv.FormatFloat(n.v, 'g', -1, 64) }

// refExpr is a cell reference, already validated at parse time.
type refExpr struct{ pos position.Position }

func (r refExpr) eval(ctx evalContext) value.Value {
	if !r.pos.Valid() {
		return value.Err(value.Ref)
	}
	return ctx.ValueAt(r.pos)
}

func (r refExpr) format(int) string { return r.pos.String() }

// unaryExpr is a prefix +/- applied to a sub-expression.
type unaryExpr struct {
	op string
	x  expr
}

func (u unaryExpr) eval(ctx evalContext) value.Value {
	v := u.x.eval(ctx)
	if v.IsError() {
		return v
	}
	if !v.IsNumber() {
		return value.Err(value.ValueErr)
	}
	n := v.Number()
	if u.op == "-" {
		n = -n
	}
	return value.Number(n)
}

func (u unaryExpr) format(minPrec int) string {
	s := u.op + u.x.format(precUnary)
	if precUnary < minPrec {
		return "(" + s + ")"
	}
	return s
}

// binaryExpr is a left-associative binary arithmetic operator.
type binaryExpr struct {
	op   string
	prec int
	x, y expr
}

func (b binaryExpr) eval(ctx evalContext) value.Value {
	x := b.x.eval(ctx)
	if x.IsError() {
		return x
	}
	y := b.y.eval(ctx)
	if y.IsError() {
		return y
	}
	if !x.IsNumber() || !y.IsNumber() {
		return value.Err(value.ValueErr)
	}
	a, c := x.Number(), y.Number()

	if b.op == "/" && c == 0 {
		return value.Err(value.Div0)
	}

	var r float64
	switch b.op {
	case "+":
		r = a + c
	case "-":
		r = a - c
	case "*":
		r = a * c
	case "/":
		r = a / c
	}
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return value.Err(value.Div0)
	}
	return value.Number(r)
}

func (b binaryExpr) format(minPrec int) string {
	s := b.x.format(b.prec) + b.op + b.y.format(b.prec+1)
	if b.prec < minPrec {
		return "(" + s + ")"
	}
	return s
}
