package cell

import (
	"testing"

	"github.com/jys1670/spreadsheet/position"
	"github.com/jys1670/spreadsheet/value"
)

type stubSource map[string]value.Value

func (s stubSource) ValueAt(pos position.Position) value.Value {
	v, ok := s[pos.String()]
	if !ok {
		return value.Number(0)
	}
	return v
}

func commit(t *testing.T, c *Cell, text string) {
	t.Helper()
	p, err := Classify(text)
	if err != nil {
		t.Fatalf("Classify(%q) error: %v", text, err)
	}
	c.Commit(p)
}

func TestEmptyCell(t *testing.T) {
	c := New()
	if got := c.GetText(); got != "" {
		t.Errorf("GetText() = %q, want \"\"", got)
	}
	if got := c.GetValue(nil).String(); got != "" {
		t.Errorf("GetValue() = %q, want \"\"", got)
	}
}

func TestSingleEqualsIsText(t *testing.T) {
	c := New()
	commit(t, c, "=")
	if got := c.GetText(); got != "=" {
		t.Errorf("GetText() = %q, want \"=\"", got)
	}
}

func TestEscapedLeadingApostrophe(t *testing.T) {
	c := New()
	commit(t, c, "'=escaped")
	if got := c.GetText(); got != "'=escaped" {
		t.Errorf("GetText() = %q, want \"'=escaped\"", got)
	}
	if got := c.GetValue(nil).String(); got != "=escaped" {
		t.Errorf("GetValue() = %q, want \"=escaped\"", got)
	}
}

func TestFormulaCachesValue(t *testing.T) {
	c := New()
	commit(t, c, "=1+2")
	src := stubSource{}
	v1 := c.GetValue(src)
	v2 := c.GetValue(src)
	if v1.Number() != 3 || v2.Number() != 3 {
		t.Errorf("expected cached 3, got %v then %v", v1.Any(), v2.Any())
	}
}

func TestPurgeCacheForcesReEvaluation(t *testing.T) {
	c := New()
	commit(t, c, "=A1+1")
	src := stubSource{"A1": value.Number(1)}
	if v := c.GetValue(src); v.Number() != 2 {
		t.Fatalf("got %v, want 2", v.Any())
	}
	src["A1"] = value.Number(10)
	if v := c.GetValue(src); v.Number() != 2 {
		t.Fatalf("cache should still read stale 2, got %v", v.Any())
	}
	c.PurgeCache()
	if v := c.GetValue(src); v.Number() != 11 {
		t.Fatalf("after purge, got %v, want 11", v.Any())
	}
}

func TestClassifyRejectsBadFormula(t *testing.T) {
	if _, err := Classify("=1+"); err == nil {
		t.Fatal("expected a syntax error")
	}
}
