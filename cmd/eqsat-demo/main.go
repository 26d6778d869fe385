// Command eqsat-demo runs the six reference scenarios S1-S6 against the
// in-memory test e-graph and prints a pass/fail line per scenario. It
// exists as a runnable smoke test a reviewer can eyeball without writing
// Go, mirroring the teacher repo's examples/*/main.go convention.
package main

import (
	"fmt"
	"os"

	"github.com/gitrdm/eqsat/pkg/eqsat"
	"github.com/gitrdm/eqsat/pkg/eqsat/memgraph"
)

type scenario struct {
	name string
	run  func() error
}

func main() {
	scenarios := []scenario{
		{"S1 commutativity (2 matches)", scenarioCommutativity},
		{"S2 conditional rewrite not yet true", scenarioConditionalNotYetTrue},
		{"S3 conditional rewrite made true", scenarioConditionalMadeTrue},
		{"S4 non-linear pattern +(?a,?a)", scenarioNonLinear},
		{"S5 size limit stops immediately", scenarioSizeLimit},
		{"S6 unbound rewrite is rejected", scenarioUnboundRejected},
	}

	failed := 0
	for _, s := range scenarios {
		if err := s.run(); err != nil {
			fmt.Printf("❌ %s: %v\n", s.name, err)
			failed++
			continue
		}
		fmt.Printf("✅ %s\n", s.name)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func scenarioCommutativity() error {
	g := memgraph.New()
	x, y, z, w := g.AddLeaf("x"), g.AddLeaf("y"), g.AddLeaf("z"), g.AddLeaf("w")
	p1 := g.AddTerm("+", x, y)
	p2 := g.AddTerm("+", z, w)
	g.Union(p1, p2)
	g.Rebuild()

	lhs := eqsat.Node("+", eqsat.Leaf(eqsat.Wild("?a")), eqsat.Leaf(eqsat.Wild("?b")))
	rhs := eqsat.Node("+", eqsat.Leaf(eqsat.Wild("?b")), eqsat.Leaf(eqsat.Wild("?a")))
	r, err := eqsat.NewRewrite("commute_plus", lhs, rhs)
	if err != nil {
		return err
	}

	matches := r.Search(g)
	if matches.Len() != 2 {
		return fmt.Errorf("expected 2 bindings, got %d", matches.Len())
	}
	applications := matches.ApplyWithLimit(g, ^uint64(0))
	if len(applications) != 2 {
		return fmt.Errorf("expected 2 applications, got %d", len(applications))
	}
	return nil
}

func mulToShiftRewrite() (*eqsat.Rewrite, error) {
	lhs := eqsat.Node("*", eqsat.Leaf(eqsat.Wild("?a")), eqsat.Leaf(eqsat.Wild("?b")))
	rhs := eqsat.Node(">>", eqsat.Leaf(eqsat.Wild("?a")), eqsat.Node("log2", eqsat.Leaf(eqsat.Wild("?b"))))
	cond := eqsat.Condition{
		LHS: eqsat.Node("is-power2", eqsat.Leaf(eqsat.Wild("?b"))),
		RHS: eqsat.Node("TRUE"),
	}
	return eqsat.NewRewrite("mul_to_shift", lhs, rhs, cond)
}

func scenarioConditionalNotYetTrue() error {
	g := memgraph.New()
	x, two := g.AddLeaf("x"), g.AddLeaf("2")
	g.AddTerm("*", x, two)
	g.AddLeaf("TRUE")
	g.Rebuild()

	r, err := mulToShiftRewrite()
	if err != nil {
		return err
	}
	if apps := r.Run(g); len(apps) != 0 {
		return fmt.Errorf("expected 0 applications, got %d", len(apps))
	}
	return nil
}

func scenarioConditionalMadeTrue() error {
	g := memgraph.New()
	x, two := g.AddLeaf("x"), g.AddLeaf("2")
	g.AddTerm("*", x, two)
	truth := g.AddLeaf("TRUE")
	g.Rebuild()

	r, err := mulToShiftRewrite()
	if err != nil {
		return err
	}
	if apps := r.Run(g); len(apps) != 0 {
		return fmt.Errorf("expected 0 applications before the equality is added, got %d", len(apps))
	}

	isPow2Two := g.AddTerm("is-power2", two)
	g.Union(isPow2Two, truth)
	g.Rebuild()

	apps := r.Run(g)
	if len(apps) != 1 {
		return fmt.Errorf("expected 1 application, got %d", len(apps))
	}
	return nil
}

func scenarioNonLinear() error {
	g := memgraph.New()
	x, y := g.AddLeaf("x"), g.AddLeaf("y")
	plus := g.AddTerm("+", x, y)

	p := eqsat.Node("+", eqsat.Leaf(eqsat.Wild("?a")), eqsat.Leaf(eqsat.Wild("?a")))
	if _, ok := p.SearchEClass(g, plus); ok {
		return fmt.Errorf("expected no match before union(x, y)")
	}

	g.Union(x, y)
	g.Rebuild()
	if _, ok := p.SearchEClass(g, plus); !ok {
		return fmt.Errorf("expected a match after union(x, y)")
	}
	return nil
}

func scenarioSizeLimit() error {
	g := memgraph.New()
	x, y := g.AddLeaf("x"), g.AddLeaf("y")
	g.AddTerm("+", x, y)
	g.Rebuild()

	lhs := eqsat.Node("+", eqsat.Leaf(eqsat.Wild("?a")), eqsat.Leaf(eqsat.Wild("?b")))
	rhs := eqsat.Node("*", eqsat.Leaf(eqsat.Wild("?a")), eqsat.Leaf(eqsat.Wild("?b")))
	r, err := eqsat.NewRewrite("plus_to_mul", lhs, rhs)
	if err != nil {
		return err
	}

	matches := r.Search(g)
	// the check is strict "before > sizeLimit", so the limit one below the
	// pre-apply size is what actually stops the first iteration.
	applications := matches.ApplyWithLimit(g, g.TotalSize()-1)
	if len(applications) != 0 {
		return fmt.Errorf("expected 0 applications at the size limit, got %d", len(applications))
	}
	return nil
}

func scenarioUnboundRejected() error {
	lhs := eqsat.Node("+", eqsat.Leaf(eqsat.Wild("?a")), eqsat.Leaf(eqsat.Wild("?b")))
	rhs := eqsat.Node("+", eqsat.Leaf(eqsat.Wild("?a")), eqsat.Leaf(eqsat.Wild("?c")))
	if _, err := eqsat.NewRewrite("bad", lhs, rhs); err == nil {
		return fmt.Errorf("expected NewRewrite to reject an unbound rhs wildcard")
	}
	return nil
}
