package value

import "testing"

func TestStringForms(t *testing.T) {
	if got := Number(6.2).String(); got != "6.2" {
		t.Errorf("Number(6.2).String() = %q, want 6.2", got)
	}
	if got := Number(3).String(); got != "3" {
		t.Errorf("Number(3).String() = %q, want 3", got)
	}
	if got := Text("meow").String(); got != "meow" {
		t.Errorf("Text.String() = %q, want meow", got)
	}
	if got := Err(Div0).String(); got != "#DIV/0!" {
		t.Errorf("Err(Div0).String() = %q, want #DIV/0!", got)
	}
	if got := Err(Ref).String(); got != "#REF!" {
		t.Errorf("Err(Ref).String() = %q, want #REF!", got)
	}
	if got := Err(ValueErr).String(); got != "#VALUE!" {
		t.Errorf("Err(ValueErr).String() = %q, want #VALUE!", got)
	}
}

func TestAny(t *testing.T) {
	if _, ok := Number(1).Any().(float64); !ok {
		t.Error("Number.Any() should be float64")
	}
	if _, ok := Text("x").Any().(string); !ok {
		t.Error("Text.Any() should be string")
	}
	if _, ok := Err(Ref).Any().(FormulaError); !ok {
		t.Error("Err.Any() should be FormulaError")
	}
}
