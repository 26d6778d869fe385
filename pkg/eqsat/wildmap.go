package eqsat

// wildBinding is a single (wildcard, e-class) pair inside a WildMap.
type wildBinding struct {
	name Wildcard
	id   Id
}

// WildMap is an ordered association of wildcard name to e-class id, with
// first-wins insertion: binding a name that is already present leaves
// the map unchanged and returns the existing value. Bindings are small
// in practice (patterns rarely carry more than a handful of distinct
// wildcards), so a flat slice of pairs outperforms a hashed map and
// keeps iteration order deterministic — which is what makes equality
// checks and merges in the matcher (matcher.go) reproducible across
// runs. The zero value is a valid, empty WildMap.
type WildMap struct {
	entries []wildBinding
}

// Insert binds w to id if w is not already bound. It reports the
// previously-bound id and true if w was already present (in which case
// the map is left unchanged), or the zero Id and false otherwise.
func (m *WildMap) Insert(w Wildcard, id Id) (old Id, had bool) {
	for _, e := range m.entries {
		if e.name == w {
			return e.id, true
		}
	}
	m.entries = append(m.entries, wildBinding{name: w, id: id})
	return 0, false
}

// Get returns the e-class bound to w, if any.
func (m *WildMap) Get(w Wildcard) (Id, bool) {
	for _, e := range m.entries {
		if e.name == w {
			return e.id, true
		}
	}
	return 0, false
}

// Len returns the number of distinct wildcards bound in m.
func (m *WildMap) Len() int {
	return len(m.entries)
}

// Clone returns an independent copy of m; mutating the clone never
// affects m.
func (m *WildMap) Clone() *WildMap {
	clone := &WildMap{entries: make([]wildBinding, len(m.entries))}
	copy(clone.entries, m.entries)
	return clone
}

// Entries returns a read-only snapshot of m's bindings in insertion
// order, for debugging and property tests that need to canonicalize a
// WildMap before comparing it to another.
func (m *WildMap) Entries() []struct {
	Name Wildcard
	ID   Id
} {
	out := make([]struct {
		Name Wildcard
		ID   Id
	}, len(m.entries))
	for i, e := range m.entries {
		out[i] = struct {
			Name Wildcard
			ID   Id
		}{Name: e.name, ID: e.id}
	}
	return out
}

// Equal reports whether m and other bind exactly the same set of
// wildcards to exactly the same ids, ignoring insertion order. Two
// WildMaps produced by independent Search calls over differently
// ordered e-classes can still be semantically identical; Equal is the
// canonicalized comparison tests should use instead of relying on a
// specific total order (design §4.3).
func (m *WildMap) Equal(other *WildMap) bool {
	if m.Len() != other.Len() {
		return false
	}
	for _, e := range m.entries {
		id, ok := other.Get(e.name)
		if !ok || id != e.id {
			return false
		}
	}
	return true
}

// merge folds other's bindings into a clone of m, returning the merged
// map and true on success, or nil and false the first time a shared
// wildcard would be bound to two different ids (an inconsistent
// multi-binding, design §4.3 step 2).
func (m *WildMap) merge(other *WildMap) (*WildMap, bool) {
	combined := m.Clone()
	for _, e := range other.entries {
		if old, had := combined.Insert(e.name, e.id); had && old != e.id {
			return nil, false
		}
	}
	return combined, true
}
