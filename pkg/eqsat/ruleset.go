package eqsat

import (
	"context"
	"log"

	"github.com/gitrdm/eqsat/internal/parallel"
	"github.com/gitrdm/eqsat/internal/telemetry"
)

// RuleSet is a named collection of Rewrites driven together: search
// across all of them concurrently (safe, since Search only reads the
// e-graph — design §5), then apply sequentially, rebuilding at an
// explicit barrier between rounds via a caller-supplied closure (see
// RunOnce/Saturate's rebuild parameter). This is the "layer above this
// engine" the design's concurrency section invites implementers to build
// for shared-memory parallelism, "typically by partitioning rewrites and
// joining via explicit rebuild barriers".
type RuleSet struct {
	Rewrites []*Rewrite
	pool     *parallel.WorkerPool
}

// NewRuleSet constructs a RuleSet over the given rewrites, sized to run
// at most len(rewrites) searches concurrently (there is never a reason
// to ask for more workers than independent rewrites to search).
func NewRuleSet(rewrites ...*Rewrite) *RuleSet {
	return &RuleSet{
		Rewrites: rewrites,
		pool:     parallel.NewWorkerPool(len(rewrites)),
	}
}

// SearchAll runs Rewrite.Search for every rewrite in rs concurrently and
// joins the results into a map keyed by rewrite name. It never mutates
// eg. If ctx is cancelled mid-flight, SearchAll returns whatever searches
// had already completed.
func (rs *RuleSet) SearchAll(ctx context.Context, eg EGraph) map[string]*RewriteMatches {
	ctx, span := telemetry.StartSpan(ctx, "eqsat.RuleSet.SearchAll")
	defer span.End()

	jobs := make([]parallel.Job, len(rs.Rewrites))
	for i, r := range rs.Rewrites {
		r := r
		jobs[i] = func() parallel.JobResult {
			matches := r.LHS.SearchContext(ctx, eg)
			recordMatchesFound(r.Name, matches)
			return parallel.JobResult{
				Name:  r.Name,
				Value: &RewriteMatches{Rewrite: r, matches: matches},
			}
		}
	}

	results := rs.pool.Run(ctx, jobs)
	out := make(map[string]*RewriteMatches, len(results))
	for _, r := range results {
		if r.Err != nil {
			log.Printf("[ruleset] search for %s failed: %v", r.Name, r.Err)
			continue
		}
		out[r.Name] = r.Value.(*RewriteMatches)
	}
	return out
}

// ApplyAll applies every non-empty RewriteMatches in results under
// sizeLimit, sequentially — ApplyWithLimit requires exclusive access to
// eg, so unlike SearchAll this never fans out across goroutines. Callers
// driving SearchAll and ApplyAll directly (rather than through
// RunOnce/Saturate) are responsible for calling their concrete EGraph's
// own Rebuild between the two, and again before the next round's
// SearchAll — the EGraph interface has no Rebuild method (design §6), so
// this package cannot call it for you at this level.
func (rs *RuleSet) ApplyAll(eg EGraph, results map[string]*RewriteMatches, sizeLimit uint64) map[string][]Id {
	fired := make(map[string][]Id, len(results))
	for _, r := range rs.Rewrites {
		matches, ok := results[r.Name]
		if !ok || matches.IsEmpty() {
			continue
		}
		ids := matches.ApplyWithLimit(eg, sizeLimit)
		if len(ids) > 0 {
			fired[r.Name] = ids
		}
	}
	return fired
}

// RunOnce performs one search-then-apply round across every rewrite in
// rs, returning which rewrites fired (added something new) and whether
// anything changed at all — the fixed-point signal an outer saturation
// loop uses to decide whether to keep going.
//
// rebuild is called once, after ApplyAll and before RunOnce returns, so
// the e-graph's hash-cons invariant is restored before the caller's next
// round of searches. It is the seam SearchAll/ApplyAll's doc comments
// point callers at: since the EGraph interface has no Rebuild method
// (design §6), RuleSet cannot call one on eg itself, so RunOnce accepts
// the caller's concrete Rebuild as a closure instead (e.g.
// `rs.RunOnce(g, limit, g.Rebuild)` for a `*memgraph.Graph`). Pass a
// no-op func() if the ruleset's rewrites never introduce congruences
// that need closing (no shared subterms across differently-shaped
// rewrites).
func (rs *RuleSet) RunOnce(eg EGraph, sizeLimit uint64, rebuild func()) (fired map[string][]Id, changed bool) {
	results := rs.SearchAll(context.Background(), eg)
	fired = rs.ApplyAll(eg, results, sizeLimit)
	rebuild()
	return fired, len(fired) > 0
}

// Saturate runs RunOnce up to maxRounds times, stopping as soon as a
// round fires nothing (a fixed point) or the round cap is reached. It
// returns one fired-map per round actually run. This is the production
// driver spec.md §4.6 alludes to ("production drivers should separate
// search and apply... to amortize rebuild") made concrete: search and
// apply are still separate calls per round (RunOnce), but Saturate owns
// the round loop so callers don't have to reimplement the fixed-point
// check themselves.
//
// rebuild is forwarded to every RunOnce call, so congruence is closed
// between every round Saturate runs internally — unlike looping RunOnce
// by hand, there is no seam for a caller to intervene mid-loop, only the
// choice of what rebuild does.
func (rs *RuleSet) Saturate(eg EGraph, sizeLimit uint64, maxRounds int, rebuild func()) []map[string][]Id {
	rounds := make([]map[string][]Id, 0, maxRounds)
	for i := 0; i < maxRounds; i++ {
		fired, changed := rs.RunOnce(eg, sizeLimit, rebuild)
		rounds = append(rounds, fired)
		if !changed {
			break
		}
	}
	return rounds
}
