package eqsat

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/gitrdm/eqsat/internal/telemetry"
)

// Rewrite is a named, optionally conditional rule lhs -> rhs (design
// §3/§4.6). Rewrites are immutable once constructed and safe to share
// across goroutines and across many Search/Run calls.
type Rewrite struct {
	Name       string
	LHS        Pattern
	RHS        Pattern
	Conditions []Condition

	// id correlates a single Rewrite's Search/Run calls in logs and
	// traces, especially useful once several Rewrites run concurrently
	// under a RuleSet. It plays no part in Rewrite equality or matching.
	id uuid.UUID
}

// NewRewrite validates and constructs a Rewrite. It rejects an unbound
// rewrite at construction time — a wildcard appearing in rhs or in any
// condition that is not bound by lhs — rather than letting the violation
// surface later as a panic deep inside Substituter (design §3: "a caller
// error, not a runtime failure of apply").
func NewRewrite(name string, lhs, rhs Pattern, conditions ...Condition) (*Rewrite, error) {
	r := &Rewrite{Name: name, LHS: lhs, RHS: rhs, Conditions: conditions, id: uuid.New()}
	if !r.IsBound() {
		return nil, fmt.Errorf("eqsat.NewRewrite %s: rhs or a condition references a wildcard not bound by lhs (lhs=%s rhs=%s)", name, lhs.ToSExp(), rhs.ToSExp())
	}
	return r, nil
}

// IsBound reports whether every wildcard appearing in RHS and in each
// Condition's LHS/RHS is bound by LHS's own wildcards. It is a pure
// predicate over any Rewrite value, including one built directly as a
// struct literal (useful for deliberately constructing an unbound
// rewrite in a test, e.g. scenario S6).
func (r *Rewrite) IsBound() bool {
	bound := make(map[Wildcard]struct{})
	for _, w := range r.LHS.Wildcards() {
		bound[w] = struct{}{}
	}
	if !r.RHS.IsBound(bound) {
		return false
	}
	for _, c := range r.Conditions {
		if !c.isBound(bound) {
			return false
		}
	}
	return true
}

// Flip returns a new Rewrite with LHS and RHS swapped and Name suffixed
// "-flipped". Flip is only meaningful for unconditional rewrites — a
// condition checked against the original direction's bindings may not
// make sense read backwards — so it returns an error rather than a
// flipped Rewrite when Conditions is non-empty (design §4.6/§7: a caller
// contract violation, surfaced here as an error rather than a panic
// because Flip is a normal, shallow entry point).
func (r *Rewrite) Flip() (*Rewrite, error) {
	if len(r.Conditions) != 0 {
		return nil, fmt.Errorf("eqsat.Rewrite.Flip %s: flip is undefined for conditional rewrites", r.Name)
	}
	return &Rewrite{
		Name: r.Name + "-flipped",
		LHS:  r.RHS,
		RHS:  r.LHS,
		id:   uuid.New(),
	}, nil
}

// Search finds every matching e-class and binding for r.LHS, returning
// the borrowed-result RewriteMatches that ApplyWithLimit consumes.
func (r *Rewrite) Search(eg EGraph) *RewriteMatches {
	matches := r.LHS.Search(eg)
	recordMatchesFound(r.Name, matches)
	if Verbose {
		log.Printf("[match] rewrite %s (%s): found %d e-class matches", r.Name, r.id, len(matches))
	}
	return &RewriteMatches{Rewrite: r, matches: matches}
}

// recordMatchesFound reports the MatchesFound metric labeled by rewrite
// name (a small, stable label set — one value per configured Rewrite),
// rather than by pattern text as Pattern.SearchContext itself would have
// to, since Pattern has no owning Rewrite to name the label with.
func recordMatchesFound(rewriteName string, matches []PatternMatch) {
	total := 0
	for _, m := range matches {
		total += len(m.Mappings)
	}
	telemetry.Default().RecordSearch(rewriteName, total)
}

// Run searches then applies with no size limit, returning the ids of
// e-classes that changed. It is intended for scripted tests and simple
// drivers; production drivers should call Search and ApplyWithLimit
// separately (optionally via RuleSet) so a rebuild can be amortized
// across many rewrites between the two phases (design §4.6).
func (r *Rewrite) Run(eg EGraph) []Id {
	start := time.Now()
	matches := r.Search(eg)
	ids := matches.ApplyWithLimit(eg, ^uint64(0))
	if Verbose {
		log.Printf("[apply] rewrite %s (%s): applied %d times in %s", r.Name, r.id, len(ids), time.Since(start))
	}
	return ids
}
