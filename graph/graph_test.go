package graph

import (
	"testing"

	"github.com/jys1670/spreadsheet/position"
)

func p(s string) position.Position { return position.FromString(s) }

func TestAcceptsAcyclicUpdate(t *testing.T) {
	g := New()
	var purged []position.Position
	ok := g.UpdateCell(p("B1"), []position.Position{p("A1")}, func(x position.Position) { purged = append(purged, x) })
	if !ok {
		t.Fatal("expected acceptance")
	}
	if len(purged) != 1 || purged[0] != p("B1") {
		t.Errorf("purged = %v, want [B1]", purged)
	}
}

func TestRejectsSelfLoop(t *testing.T) {
	g := New()
	ok := g.UpdateCell(p("A1"), []position.Position{p("A1")}, func(position.Position) {})
	if ok {
		t.Fatal("self-loop should be rejected")
	}
}

func TestRejectsCycle(t *testing.T) {
	g := New()
	if !g.UpdateCell(p("A1"), []position.Position{p("B1")}, func(position.Position) {}) {
		t.Fatal("A1 -> B1 should be accepted")
	}
	if g.UpdateCell(p("B1"), []position.Position{p("A1")}, func(position.Position) {}) {
		t.Fatal("B1 -> A1 should be rejected: it closes a cycle with A1 -> B1")
	}
}

func TestRollbackOnRejection(t *testing.T) {
	g := New()
	g.UpdateCell(p("A1"), []position.Position{p("B1")}, func(position.Position) {})
	g.UpdateCell(p("B1"), []position.Position{p("A1")}, func(position.Position) {})

	// B1's references must be unchanged (still empty) after the rejected update.
	purgedAgain := false
	g.UpdateCell(p("C1"), []position.Position{p("B1")}, func(position.Position) { purgedAgain = true })
	if !purgedAgain {
		t.Fatal("expected C1 update to succeed; B1 must still have no references")
	}
}

func TestInvalidationReachesTransitiveDependants(t *testing.T) {
	g := New()
	g.UpdateCell(p("B1"), []position.Position{p("C1")}, func(position.Position) {})
	g.UpdateCell(p("A1"), []position.Position{p("B1")}, func(position.Position) {})

	var purged []position.Position
	g.UpdateCell(p("C1"), nil, func(x position.Position) { purged = append(purged, x) })

	want := map[position.Position]bool{p("C1"): true, p("B1"): true, p("A1"): true}
	if len(purged) != len(want) {
		t.Fatalf("purged = %v, want set %v", purged, want)
	}
	for _, x := range purged {
		if !want[x] {
			t.Errorf("unexpected purge of %v", x)
		}
	}
}

func TestClearingReferencesCannotFail(t *testing.T) {
	g := New()
	g.UpdateCell(p("A1"), []position.Position{p("B1")}, func(position.Position) {})
	if !g.UpdateCell(p("A1"), nil, func(position.Position) {}) {
		t.Fatal("dropping all references should never be rejected")
	}

	// A1 no longer depends on B1: updating B1 must not purge A1.
	var purged []position.Position
	g.UpdateCell(p("B1"), nil, func(x position.Position) { purged = append(purged, x) })
	if len(purged) != 1 || purged[0] != p("B1") {
		t.Errorf("purged = %v, want only [B1] since A1 no longer references B1", purged)
	}
}
