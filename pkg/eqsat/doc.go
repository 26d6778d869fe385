// Package eqsat implements the pattern search and conditional rewrite
// engine of an equality-saturation system built on an e-graph.
//
// Given a Pattern containing operator symbols and named Wildcards, the
// engine finds every e-class in which the pattern is realizable (Search),
// produces the set of variable bindings witnessing each match (WildMap),
// optionally checks equality side-conditions (Condition), and applies the
// right-hand side by constructing the substituted term in the e-graph and
// unioning it with the matched e-class (RewriteMatches.ApplyWithLimit).
//
// The package does not implement an e-graph itself — see the EGraph
// interface for the minimum surface this engine consumes, and the
// sibling pkg/eqsat/memgraph package for a minimal concrete
// implementation suitable for tests and demos. This mirrors the
// boundary the design document draws: union-find, hash-consing, and
// congruence rebuild are a collaborator's responsibility, not the
// matcher's.
package eqsat
