package memgraph

import "github.com/gitrdm/eqsat/pkg/eqsat"

// AddLeaf is a convenience for the common case of interning a nullary
// e-node (a variable or constant symbol).
func (g *Graph) AddLeaf(op eqsat.Op) eqsat.Id {
	id, _ := g.Add(eqsat.ENode{Op: op})
	return id
}

// AddTerm is a convenience for interning an operator applied to already
// -interned children.
func (g *Graph) AddTerm(op eqsat.Op, children ...eqsat.Id) eqsat.Id {
	id, _ := g.Add(eqsat.ENode{Op: op, Children: children})
	return id
}
