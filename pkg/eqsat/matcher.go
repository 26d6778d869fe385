package eqsat

import (
	"context"
	"log"

	"github.com/gitrdm/eqsat/internal/telemetry"
)

// Verbose gates the matcher's diagnostic logging. It defaults to false
// so library consumers get silence unless they opt in; set it to true to
// see pattern/e-node arity mismatches logged as they're filtered (design
// §4.3: "logged for diagnosis but never fatal").
var Verbose = false

func logf(format string, args ...interface{}) {
	if Verbose {
		log.Printf("[match] "+format, args...)
	}
}

// PatternMatch is the per-e-class result of matching a Pattern: the
// e-class that matched, and every binding that witnesses the match.
// Mappings is always non-empty for a PatternMatch returned by Search.
type PatternMatch struct {
	EClass   Id
	Mappings []*WildMap
}

// Search finds every e-class in eg where p is realizable, returning one
// PatternMatch per matching e-class (design §4.3's search). The result
// ordering reflects eg's own e-class iteration order followed by the
// product-enumeration order used internally; it is not a stable total
// order across e-graph implementations, so tests should canonicalize
// bindings (e.g. with WildMap.Equal) rather than compare positions.
func (p Pattern) Search(eg EGraph) []PatternMatch {
	return p.SearchContext(context.Background(), eg)
}

// SearchContext is Search with an explicit context, used by RuleSet to
// thread cancellation and tracing through a batch of concurrent
// searches. p itself stays single-threaded; ctx is not consulted inside
// the recursive matcher, only around the top-level scan of e-classes, so
// cancellation takes effect between e-classes rather than mid-pattern.
//
// SearchContext itself reports no metrics: Pattern has no owning
// Rewrite name to label them with, and labeling by pattern text (an
// unbounded, per-call-site string) would make MatchesFound an unbounded-
// cardinality metric. Rewrite.Search and RuleSet.SearchAll record
// MatchesFound themselves, keyed by Rewrite.Name, after calling this.
func (p Pattern) SearchContext(ctx context.Context, eg EGraph) []PatternMatch {
	ctx, span := telemetry.StartSpan(ctx, "eqsat.Pattern.Search")
	defer span.End()

	classes := eg.Classes()
	out := make([]PatternMatch, 0, len(classes))
	for _, c := range classes {
		select {
		case <-ctx.Done():
			return out
		default:
		}
		if m, ok := p.SearchEClass(eg, c.ID); ok {
			out = append(out, m)
		}
	}
	return out
}

// SearchEClass matches p against a single e-class, returning its
// PatternMatch and true if at least one binding was found.
func (p Pattern) SearchEClass(eg EGraph, eclass Id) (PatternMatch, bool) {
	mappings := p.searchPat(eg, eclass)
	if len(mappings) == 0 {
		return PatternMatch{}, false
	}
	return PatternMatch{EClass: eclass, Mappings: mappings}, true
}

// searchPat is the recursive matcher core (design §4.3). It returns
// every WildMap witnessing p against eclass.
func (p Pattern) searchPat(eg EGraph, eclass Id) []*WildMap {
	if p.isWild {
		m := &WildMap{}
		if _, had := m.Insert(p.wildcard, eclass); had {
			panic(InvariantViolation("searchPat: fresh WildMap already had a binding"))
		}
		return []*WildMap{m}
	}

	if len(p.children) == 0 {
		for _, n := range eg.Class(eclass) {
			if len(n.Children) == 0 && n.Op == p.op {
				return []*WildMap{{}}
			}
		}
		return nil
	}

	var results []*WildMap
	for _, n := range eg.Class(eclass) {
		if n.Op != p.op {
			continue
		}
		if len(n.Children) != len(p.children) {
			logf("arity mismatch: op=%s pattern=%d node=%d", p.op, len(p.children), len(n.Children))
			continue
		}

		perChild := make([][]*WildMap, len(p.children))
		for i, childPat := range p.children {
			perChild[i] = childPat.searchPat(eg, n.Children[i])
		}

		results = append(results, cartesianMerge(perChild)...)
	}
	return results
}

// cartesianMerge enumerates the Cartesian product of per-child binding
// sets and merges each tuple into a single consistent WildMap, dropping
// any tuple whose bindings conflict (design §4.3 step 2).
func cartesianMerge(perChild [][]*WildMap) []*WildMap {
	combined := []*WildMap{{}}
	for _, choices := range perChild {
		if len(choices) == 0 {
			return nil
		}
		next := make([]*WildMap, 0, len(combined)*len(choices))
		for _, base := range combined {
			for _, choice := range choices {
				if merged, ok := base.merge(choice); ok {
					next = append(next, merged)
				}
			}
		}
		combined = next
		if len(combined) == 0 {
			return nil
		}
	}
	return combined
}
