package formula

import (
	"strconv"

	"github.com/jys1670/spreadsheet/position"
)

// parser is a Pratt (precedence-climbing) parser over the arithmetic
// expression grammar: numeric literals, cell references, the four binary
// operators, unary +/-, and parentheses.
type parser struct {
	l    *lexer
	cur  token
	peek token
	err  *SyntaxError

	refs []position.Position
	seen map[position.Position]bool
}

var precedences = map[tokenType]int{
	tokPlus:  precSum,
	tokMinus: precSum,
	tokStar:  precProduct,
	tokSlash: precProduct,
}

func newParser(src string) *parser {
	p := &parser{l: newLexer(src), seen: make(map[position.Position]bool)}
	p.advance()
	p.advance()
	return p
}

func (p *parser) advance() {
	p.cur = p.peek
	p.peek = p.l.next()
}

func (p *parser) fail(offset int, format string, args ...any) {
	if p.err == nil {
		p.err = syntaxErrorf(offset, format, args...)
	}
}

// parseFormula parses src (the text after the leading '=') and returns the
// root expression and the deduplicated, first-appearance-ordered list of
// referenced positions.
func parseFormula(src string) (expr, []position.Position, error) {
	p := newParser(src)

	if p.cur.typ == tokEOF {
		return nil, nil, syntaxErrorf(0, "empty formula")
	}

	e := p.parseExpression(precLowest)
	if p.err == nil && p.cur.typ != tokEOF {
		p.fail(p.cur.offset, "unexpected trailing input %q", p.cur.literal)
	}
	if p.err != nil {
		return nil, nil, p.err
	}
	return e, p.refs, nil
}

func (p *parser) parseExpression(prec int) expr {
	left := p.parsePrefix()
	if p.err != nil {
		return left
	}

	for p.err == nil && p.cur.typ != tokEOF && prec < p.peekPrecForCur() {
		op := p.cur
		p.advance()
		right := p.parseExpression(precedences[op.typ])
		if p.err != nil {
			return left
		}
		left = binaryExpr{op: op.literal, prec: precedences[op.typ], x: left, y: right}
	}
	return left
}

// peekPrecForCur returns the precedence of the current (not yet consumed)
// infix operator token, so parseExpression's loop condition reads as
// "while the operator sitting at cur binds tighter than prec".
func (p *parser) peekPrecForCur() int {
	if pr, ok := precedences[p.cur.typ]; ok {
		return pr
	}
	return precLowest
}

func (p *parser) parsePrefix() expr {
	switch p.cur.typ {
	case tokNumber:
		tok := p.cur
		p.advance()
		f, err := strconv.ParseFloat(tok.literal, 64)
		if err != nil {
			p.fail(tok.offset, "invalid number %q", tok.literal)
			return nil
		}
		return numberExpr{v: f}

	case tokRef:
		tok := p.cur
		p.advance()
		pos := position.FromString(tok.literal)
		if !pos.Valid() {
			p.fail(tok.offset, "cell reference %q is out of range", tok.literal)
			return nil
		}
		if !p.seen[pos] {
			p.seen[pos] = true
			p.refs = append(p.refs, pos)
		}
		return refExpr{pos: pos}

	case tokPlus, tokMinus:
		tok := p.cur
		p.advance()
		operand := p.parseExpression(precUnary)
		if p.err != nil {
			return nil
		}
		return unaryExpr{op: tok.literal, x: operand}

	case tokLParen:
		p.advance()
		inner := p.parseExpression(precLowest)
		if p.err != nil {
			return nil
		}
		if p.cur.typ != tokRParen {
			p.fail(p.cur.offset, "expected ')', got %q", p.cur.literal)
			return nil
		}
		p.advance()
		return inner

	case tokIllegal:
		p.fail(p.cur.offset, "unexpected character %q", p.cur.literal)
		return nil

	case tokEOF:
		p.fail(p.cur.offset, "unexpected end of formula")
		return nil

	default:
		p.fail(p.cur.offset, "unexpected token %q", p.cur.literal)
		return nil
	}
}
