package formula

import "testing"

func TestExpressionCanonicalization(t *testing.T) {
	cases := map[string]string{
		"1+2*3-4/5":   "1+2*3-4/5",
		"  1 + 2 ":    "1+2",
		"(1+2)*3":     "(1+2)*3",
		"1+2*3":       "1+2*3",
		"(1+2)+3":     "1+2+3",
		"1-(2-3)":     "1-(2-3)",
		"1-2-3":       "1-2-3",
		"-A1":         "-A1",
		"-(A1+B1)":    "-(A1+B1)",
		"2*(3+4)":     "2*(3+4)",
		"2*3+4":       "2*3+4",
	}
	for src, want := range cases {
		f, err := Parse(src)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", src, err)
		}
		if got := f.Expression(); got != want {
			t.Errorf("Parse(%q).Expression() = %q, want %q", src, got, want)
		}
	}
}

func TestParseSyntaxErrors(t *testing.T) {
	bad := []string{
		"", "1+", "(1+2", "1+2)", "1 2", "A1B2", "R2D2",
		"ZZZZ1", // letter run too long for a cell reference
		"XFE16384",
		"1/*2",
	}
	for _, src := range bad {
		if _, err := Parse(src); err == nil {
			t.Errorf("Parse(%q) should fail", src)
		}
	}
}

func TestReferencedCellsOrderAndDedup(t *testing.T) {
	f, err := Parse("B1+A1+B1+C1")
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	refs := f.ReferencedCells()
	got := make([]string, len(refs))
	for i, p := range refs {
		got[i] = p.String()
	}
	want := []string{"B1", "A1", "C1"}
	if len(got) != len(want) {
		t.Fatalf("refs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("refs[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
