// Package memgraph provides a minimal, concrete eqsat.EGraph: a
// hash-consed e-node table over a union-find of e-class ids. It exists
// because the pattern matcher and rewrite driver in pkg/eqsat explicitly
// treat the real e-graph as an external collaborator (SPEC_FULL.md §1)
// and so carry none of their own — but the test suite, property tests,
// and demo programs in this repository still need one concrete e-graph
// to run the S1-S6 scenarios against. This is that e-graph: a test/demo
// collaborator, not a production congruence-closure design. A real
// deployment would likely want incremental congruence maintenance rather
// than this package's "rebuild everything" batch Rebuild.
package memgraph

import (
	"sort"
	"sync"

	"github.com/gitrdm/eqsat/pkg/eqsat"
)

// key is the hash-cons lookup key: an operator plus its *canonical*
// child ids. Two e-nodes that currently canonicalize to the same key are
// the same e-node as far as Add is concerned.
type key struct {
	op       eqsat.Op
	children string // canonical children ids joined, see canonKey
}

// Graph is a union-find over e-class ids, each carrying a set of
// hash-consed e-nodes, guarded by a single mutex in the teacher's
// guard-the-whole-struct style (pkg/minikanren's Substitution does the
// same for a comparably small map).
type Graph struct {
	mu sync.Mutex

	parent map[eqsat.Id]eqsat.Id
	rank   map[eqsat.Id]int
	nodes  map[eqsat.Id][]eqsat.ENode
	hashes map[key]eqsat.Id

	nextID eqsat.Id
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		parent: make(map[eqsat.Id]eqsat.Id),
		rank:   make(map[eqsat.Id]int),
		nodes:  make(map[eqsat.Id][]eqsat.ENode),
		hashes: make(map[key]eqsat.Id),
	}
}

// Classes implements eqsat.EGraph.
func (g *Graph) Classes() []eqsat.EClass {
	g.mu.Lock()
	defer g.mu.Unlock()

	roots := make(map[eqsat.Id][]eqsat.ENode)
	for id := range g.parent {
		root := g.find(id)
		roots[root] = append(roots[root], g.nodes[id]...)
	}

	out := make([]eqsat.EClass, 0, len(roots))
	for id, nodes := range roots {
		out = append(out, eqsat.EClass{ID: id, Nodes: dedupeNodes(nodes)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Class implements eqsat.EGraph.
func (g *Graph) Class(id eqsat.Id) []eqsat.ENode {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.parent[id]; !ok {
		return nil
	}
	root := g.find(id)
	var out []eqsat.ENode
	for memberID, members := range g.nodes {
		if g.find(memberID) == root {
			out = append(out, members...)
		}
	}
	return dedupeNodes(out)
}

// Add implements eqsat.EGraph: hash-cons n under its *current* canonical
// children, creating a fresh singleton e-class if it has never been seen.
func (g *Graph) Add(n eqsat.ENode) (eqsat.Id, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.addLocked(n)
}

func (g *Graph) addLocked(n eqsat.ENode) (eqsat.Id, bool) {
	canon := g.canonicalizeLocked(n)
	k := key{op: canon.Op, children: canonKey(canon.Children)}
	if id, ok := g.hashes[k]; ok {
		return g.find(id), true
	}

	id := g.nextID
	g.nextID++
	g.parent[id] = id
	g.rank[id] = 0
	g.nodes[id] = []eqsat.ENode{canon}
	g.hashes[k] = id
	return id, false
}

// Union implements eqsat.EGraph with union-by-rank and path compression.
func (g *Graph) Union(a, b eqsat.Id) eqsat.Id {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.unionLocked(a, b)
}

func (g *Graph) unionLocked(a, b eqsat.Id) eqsat.Id {
	ra, rb := g.find(a), g.find(b)
	if ra == rb {
		return ra
	}
	if g.rank[ra] < g.rank[rb] {
		ra, rb = rb, ra
	}
	g.parent[rb] = ra
	if g.rank[ra] == g.rank[rb] {
		g.rank[ra]++
	}
	return ra
}

// find is the union-find Find step with path compression. Callers must
// hold g.mu.
func (g *Graph) find(id eqsat.Id) eqsat.Id {
	root := id
	for g.parent[root] != root {
		root = g.parent[root]
	}
	for g.parent[id] != root {
		id, g.parent[id] = g.parent[id], root
	}
	return root
}

// TotalSize implements eqsat.EGraph as the number of e-nodes Add has
// interned. E-nodes that a later Rebuild finds congruent (e.g. f(a) and
// f(b) once a == b) are still counted separately.
func (g *Graph) TotalSize() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	var n uint64
	for _, ns := range g.nodes {
		n += uint64(len(ns))
	}
	return n
}

// canonicalizeLocked rewrites every child of n to its current find()
// representative. Callers must hold g.mu.
func (g *Graph) canonicalizeLocked(n eqsat.ENode) eqsat.ENode {
	children := make([]eqsat.Id, len(n.Children))
	for i, c := range n.Children {
		children[i] = g.find(c)
	}
	return eqsat.ENode{Op: n.Op, Children: children}
}

// Rebuild restores the hash-cons invariant after a batch of Unions:
// every e-node's children are re-canonicalized, and any e-nodes that
// became equal as a result are re-merged (repeated until no further
// merges happen). This is the "congruence rebuild" spec.md treats as an
// outer-driver responsibility; RuleSet's doc comments point callers at
// this method between rounds.
func (g *Graph) Rebuild() {
	g.mu.Lock()
	defer g.mu.Unlock()

	for {
		merged := false
		newHashes := make(map[key]eqsat.Id, len(g.hashes))
		for id, members := range g.nodes {
			root := g.find(id)
			for i, n := range members {
				canon := g.canonicalizeLocked(n)
				members[i] = canon
				k := key{op: canon.Op, children: canonKey(canon.Children)}
				if existing, ok := newHashes[k]; ok {
					if g.find(existing) != g.find(root) {
						g.unionLocked(existing, root)
						merged = true
					}
				} else {
					newHashes[k] = root
				}
			}
		}
		g.hashes = newHashes
		if !merged {
			return
		}
	}
}

func dedupeNodes(nodes []eqsat.ENode) []eqsat.ENode {
	out := make([]eqsat.ENode, 0, len(nodes))
	for _, n := range nodes {
		dup := false
		for _, seen := range out {
			if seen.Equal(n) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, n)
		}
	}
	return out
}

func canonKey(ids []eqsat.Id) string {
	b := make([]byte, 0, len(ids)*9)
	for _, id := range ids {
		for id > 0 {
			b = append(b, byte(id&0x7f)|0x80)
			id >>= 7
		}
		b = append(b, 0)
	}
	return string(b)
}
