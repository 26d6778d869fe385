package eqsat_test

import (
	"testing"

	"github.com/gitrdm/eqsat/pkg/eqsat"
	"github.com/gitrdm/eqsat/pkg/eqsat/memgraph"
)

func TestRewriteMatchesLenAndIsEmpty(t *testing.T) {
	g := memgraph.New()
	g.AddLeaf("x")

	p := eqsat.Node("y")
	r, err := eqsat.NewRewrite("noop", p, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	matches := r.Search(g)
	if !matches.IsEmpty() || matches.Len() != 0 {
		t.Fatalf("expected no matches for an absent operator, got len=%d", matches.Len())
	}
}

func TestRewriteMatchesApplyWithLimitZeroMappingsPanics(t *testing.T) {
	g := memgraph.New()
	g.AddLeaf("x")

	p := eqsat.Node("y")
	r, err := eqsat.NewRewrite("noop", p, p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	matches := r.Search(g)

	defer func() {
		if recover() == nil {
			t.Fatal("expected ApplyWithLimit to panic on zero mappings")
		}
	}()
	matches.ApplyWithLimit(g, ^uint64(0))
}

func TestApplyWithLimitSizeLimitStopsImmediately(t *testing.T) {
	// scenario S5: ApplyWithLimit's size check is the strict "before >
	// sizeLimit" of pattern.rs (DESIGN.md's Open Question decision #1), so
	// the boundary that stops the call on the very first iteration is
	// sizeLimit == pre-apply size - 1, not sizeLimit == pre-apply size:
	// at sizeLimit == pre-apply size the check is false (equal is not
	// greater) and the first binding still applies.
	g := memgraph.New()
	x := g.AddLeaf("x")
	y := g.AddLeaf("y")
	g.AddTerm("+", x, y)
	g.Rebuild()

	lhs := eqsat.Node("+", eqsat.Leaf(eqsat.Wild("?a")), eqsat.Leaf(eqsat.Wild("?b")))
	rhs := eqsat.Node("*", eqsat.Leaf(eqsat.Wild("?a")), eqsat.Leaf(eqsat.Wild("?b")))
	r, err := eqsat.NewRewrite("plus_to_mul", lhs, rhs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	matches := r.Search(g)
	before := g.TotalSize()

	applications := matches.ApplyWithLimit(g, before-1)
	if len(applications) != 0 {
		t.Fatalf("expected no applications once the pre-apply size exceeds the limit on the first check, got %d", len(applications))
	}
}

func TestApplyWithLimitNoOpApplyDoesNotGrowGraph(t *testing.T) {
	// invariant 4: idempotence of no-op apply.
	g := memgraph.New()
	x := g.AddLeaf("x")
	plusXX := g.AddTerm("+", x, x)
	g.Rebuild()

	// identity rewrite: +(?a, ?a) -> +(?a, ?a); RHS is already fully
	// present for every matched binding, so ApplyWithLimit must not grow
	// the e-graph.
	lhs := eqsat.Node("+", eqsat.Leaf(eqsat.Wild("?a")), eqsat.Leaf(eqsat.Wild("?a")))
	r, err := eqsat.NewRewrite("plus_self_identity", lhs, lhs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	matches := r.Search(g)
	before := g.TotalSize()
	applications := matches.ApplyWithLimit(g, ^uint64(0))
	after := g.TotalSize()

	if len(applications) != 0 {
		t.Errorf("expected no reported applications for a pure no-op, got %d", len(applications))
	}
	if before != after {
		t.Errorf("expected size to stay %d, got %d", before, after)
	}
	_ = plusXX
}

func TestRewriteMatchesDeprecatedApplyWrappers(t *testing.T) {
	g := memgraph.New()
	x := g.AddLeaf("x")
	y := g.AddLeaf("y")
	g.AddTerm("+", x, y)
	g.Rebuild()

	lhs := eqsat.Node("+", eqsat.Leaf(eqsat.Wild("?a")), eqsat.Leaf(eqsat.Wild("?b")))
	rhs := eqsat.Node("+", eqsat.Leaf(eqsat.Wild("?b")), eqsat.Leaf(eqsat.Wild("?a")))
	r, err := eqsat.NewRewrite("commute_plus", lhs, rhs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	matches := r.Search(g)
	applications := matches.Apply(rhs, g)
	if len(applications) != 1 {
		t.Fatalf("expected one unconditional application, got %d", len(applications))
	}
}
