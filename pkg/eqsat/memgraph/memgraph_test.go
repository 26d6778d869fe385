package memgraph

import (
	"testing"

	"github.com/gitrdm/eqsat/pkg/eqsat"
)

func TestAddHashConsesIdenticalNodes(t *testing.T) {
	g := New()
	x := g.AddLeaf("x")
	y := g.AddLeaf("y")

	id1 := g.AddTerm("+", x, y)
	id2 := g.AddTerm("+", x, y)
	if id1 != id2 {
		t.Fatalf("expected identical e-nodes to hash-cons to the same id, got %d and %d", id1, id2)
	}
	if g.TotalSize() != 3 {
		t.Errorf("expected 3 distinct e-nodes (x, y, +(x,y)), got %d", g.TotalSize())
	}
}

func TestAddDistinguishesDifferentChildren(t *testing.T) {
	g := New()
	x := g.AddLeaf("x")
	y := g.AddLeaf("y")
	z := g.AddLeaf("z")

	plusXY := g.AddTerm("+", x, y)
	plusXZ := g.AddTerm("+", x, z)
	if plusXY == plusXZ {
		t.Fatal("expected different children to produce different e-classes")
	}
}

func TestUnionMergesClasses(t *testing.T) {
	g := New()
	x := g.AddLeaf("x")
	y := g.AddLeaf("y")

	leader := g.Union(x, y)
	if leader != x && leader != y {
		t.Fatalf("expected leader to be one of the merged ids, got %d", leader)
	}

	classes := g.Class(x)
	if len(classes) != 2 {
		t.Errorf("expected the merged class to contain both e-nodes, got %d", len(classes))
	}
}

func TestUnionIsIdempotent(t *testing.T) {
	g := New()
	x := g.AddLeaf("x")
	y := g.AddLeaf("y")

	first := g.Union(x, y)
	second := g.Union(x, y)
	if first != second {
		t.Errorf("expected repeated unions of the same pair to return the same leader, got %d then %d", first, second)
	}
}

func TestRebuildPropagatesCongruence(t *testing.T) {
	// classic congruence closure: if a == b, then f(a) == f(b) after
	// Rebuild re-canonicalizes and re-merges.
	g := New()
	a := g.AddLeaf("a")
	b := g.AddLeaf("b")
	fa := g.AddTerm("f", a)
	fb := g.AddTerm("f", b)

	if g.find(fa) == g.find(fb) {
		t.Fatal("f(a) and f(b) should not start out merged")
	}

	g.Union(a, b)
	g.Rebuild()

	if g.find(fa) != g.find(fb) {
		t.Error("expected Rebuild to merge f(a) and f(b) once a == b")
	}
}

func TestClassesReturnsOneEntryPerRoot(t *testing.T) {
	g := New()
	x := g.AddLeaf("x")
	y := g.AddLeaf("y")
	g.Union(x, y)
	g.Rebuild()

	classes := g.Classes()
	roots := make(map[eqsat.Id]struct{})
	for _, c := range classes {
		roots[c.ID] = struct{}{}
	}
	if len(roots) != len(classes) {
		t.Error("expected Classes to report one entry per distinct root")
	}
}

func TestTotalSizeCountsDistinctENodes(t *testing.T) {
	g := New()
	x := g.AddLeaf("x")
	y := g.AddLeaf("y")
	g.AddTerm("+", x, y)
	g.AddTerm("+", x, y) // duplicate, should not grow size

	if got := g.TotalSize(); got != 3 {
		t.Errorf("expected 3 distinct e-nodes, got %d", got)
	}
}
