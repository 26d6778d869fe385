package eqsat

import (
	"github.com/gitrdm/eqsat/internal/telemetry"
)

// RewriteMatches is the materialized result of searching a Rewrite's
// LHS: a borrowed reference to the Rewrite plus the PatternMatch slice
// Search produced. It is valid only until the next e-graph mutation that
// would change e-class identities — the engine never caches matches
// across a rebuild (design §3).
type RewriteMatches struct {
	Rewrite *Rewrite
	matches []PatternMatch
}

// Len returns the total number of bindings across all matched e-classes.
func (m *RewriteMatches) Len() int {
	n := 0
	for _, pm := range m.matches {
		n += len(pm.Mappings)
	}
	return n
}

// IsEmpty reports whether every matched e-class has zero bindings, i.e.
// whether there is nothing to apply.
func (m *RewriteMatches) IsEmpty() bool {
	return m.Len() == 0
}

// ApplyWithLimit evaluates m's rewrite conditionally and applies it,
// under a soft cumulative ceiling on e-graph size (design §4.7).
//
// For each per-class match, for each binding in insertion order:
//  1. if eg.TotalSize() exceeds sizeLimit, application stops entirely
//     for this call (the ceiling is a soft, cumulative stop, not a
//     per-rewrite quota or a per-application bound — see DESIGN.md's
//     Open Question decision on this);
//  2. every condition is evaluated and AND-folded; a false condition
//     skips the binding;
//  3. otherwise RHS is substituted, producing a new e-class id;
//  4. the matched e-class and the new one are unconditionally unioned —
//     unconditionally because the two sides may not yet be known equal
//     even when both already exist;
//  5. if the substitution actually added anything new (wasThere was
//     false), the union's leader id is appended to the result; if
//     nothing was added, ApplyWithLimit asserts the e-graph did not grow,
//     per the no-op-apply invariant (design §4.4/§8 property 4).
func (m *RewriteMatches) ApplyWithLimit(eg EGraph, sizeLimit uint64) []Id {
	if m.Len() == 0 {
		panic(InvariantViolation("ApplyWithLimit: RewriteMatches has zero mappings"))
	}

	name := m.Rewrite.Name
	telemetry.Default().SampleEGraphSize(eg.TotalSize())

	var applications []Id
outer:
	for _, pm := range m.matches {
		for _, mapping := range pm.Mappings {
			before := eg.TotalSize()
			if before > sizeLimit {
				telemetry.Default().RecordSizeLimitStop(name)
				break outer
			}

			if !m.conditionsHold(eg, mapping) {
				continue
			}

			root := applyRec(m.Rewrite.RHS, eg, mapping)
			leader := eg.Union(pm.EClass, root.id)

			if !root.wasThere {
				applications = append(applications, leader)
				telemetry.Default().RecordApplication(name)
				continue
			}

			after := eg.TotalSize()
			if after != before {
				panic(InvariantViolation("ApplyWithLimit: no-op application changed e-graph size"))
			}
		}
	}
	return applications
}

func (m *RewriteMatches) conditionsHold(eg EGraph, mapping *WildMap) bool {
	for _, c := range m.Rewrite.Conditions {
		if !c.Check(eg, mapping) {
			return false
		}
	}
	return true
}

// Apply is a deprecated unconditional-apply convenience wrapper,
// recovered from the original egg::pattern source this design was
// distilled from (PatternMatches::apply). It applies pattern with no
// size limit and no conditions.
//
// Deprecated: use the Rewrite API (Rewrite.Run or
// Rewrite.Search().ApplyWithLimit) instead.
func (m *RewriteMatches) Apply(pattern Pattern, eg EGraph) []Id {
	return m.applyUnconditional(pattern, eg, ^uint64(0))
}

// ApplyWithLimitUnconditional is a deprecated convenience wrapper,
// recovered from the original source's PatternMatches::apply_with_limit.
// It applies pattern under sizeLimit but ignores m.Rewrite.Conditions.
//
// Deprecated: use the Rewrite API (RewriteMatches.ApplyWithLimit)
// instead.
func (m *RewriteMatches) ApplyWithLimitUnconditional(pattern Pattern, eg EGraph, sizeLimit uint64) []Id {
	return m.applyUnconditional(pattern, eg, sizeLimit)
}

func (m *RewriteMatches) applyUnconditional(pattern Pattern, eg EGraph, sizeLimit uint64) []Id {
	if m.Len() == 0 {
		panic(InvariantViolation("applyUnconditional: RewriteMatches has zero mappings"))
	}
	var applications []Id
outer:
	for _, pm := range m.matches {
		for _, mapping := range pm.Mappings {
			before := eg.TotalSize()
			if before > sizeLimit {
				break outer
			}
			root := applyRec(pattern, eg, mapping)
			leader := eg.Union(pm.EClass, root.id)
			if !root.wasThere {
				applications = append(applications, leader)
			}
		}
	}
	return applications
}
