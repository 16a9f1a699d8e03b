package position

import "testing"

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		pos Position
		str string
	}{
		{Position{0, 0}, "A1"},
		{Position{0, 1}, "B1"},
		{Position{0, 25}, "Z1"},
		{Position{0, 26}, "AA1"},
		{Position{0, 27}, "AB1"},
		{Position{0, 51}, "AZ1"},
		{Position{0, 52}, "BA1"},
		{Position{0, 701}, "ZZ1"},
		{Position{0, 702}, "AAA1"},
		{Position{136, 2}, "C137"},
		{Position{MaxRows - 1, MaxCols - 1}, "XFD16384"},
	}
	for _, c := range cases {
		if got := c.pos.String(); got != c.str {
			t.Errorf("Position{%d,%d}.String() = %q, want %q", c.pos.Row, c.pos.Col, got, c.str)
		}
		if got := FromString(c.str); got != c.pos {
			t.Errorf("FromString(%q) = %+v, want %+v", c.str, got, c.pos)
		}
	}
}

func TestToStringInvalid(t *testing.T) {
	for _, p := range []Position{NONE, {-10, 0}, {1, -3}} {
		if got := p.String(); got != "" {
			t.Errorf("%+v.String() = %q, want \"\"", p, got)
		}
	}
}

func TestFromStringInvalid(t *testing.T) {
	bad := []string{
		"", "A", "1", "e2", "A0", "A-1", "A+1",
		"R2D2", "C3PO",
		"XFD16385", "XFE16384",
		"A1234567890123456789",
		"ABCDEFGHIJKLMNOPQRS8",
	}
	for _, s := range bad {
		if FromString(s).Valid() {
			t.Errorf("FromString(%q) should be invalid", s)
		}
	}
}

func TestOrdering(t *testing.T) {
	if !(Position{0, 0}).Less(Position{0, 1}) {
		t.Error("A1 should sort before B1")
	}
	if !(Position{0, 5}).Less(Position{1, 0}) {
		t.Error("row takes precedence over column")
	}
	if (Position{1, 0}).Less(Position{0, 5}) {
		t.Error("row 1 should not sort before row 0")
	}
}

func TestMapKey(t *testing.T) {
	m := map[Position]int{}
	m[Position{1, 1}] = 42
	if v := m[Position{1, 1}]; v != 42 {
		t.Errorf("Position as map key: got %d, want 42", v)
	}
}
