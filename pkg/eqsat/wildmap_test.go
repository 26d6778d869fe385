package eqsat

import "testing"

func TestWildMap(t *testing.T) {
	t.Run("insert on empty map returns no prior value", func(t *testing.T) {
		var m WildMap
		old, had := m.Insert(Wild("?a"), 1)
		if had {
			t.Errorf("expected no prior value, got %d", old)
		}
		if m.Len() != 1 {
			t.Errorf("expected len 1, got %d", m.Len())
		}
	})

	t.Run("insert is first-wins", func(t *testing.T) {
		var m WildMap
		m.Insert(Wild("?a"), 1)
		old, had := m.Insert(Wild("?a"), 2)
		if !had || old != 1 {
			t.Errorf("expected first-wins to report old=1, got old=%d had=%v", old, had)
		}
		got, ok := m.Get(Wild("?a"))
		if !ok || got != 1 {
			t.Errorf("expected ?a still bound to 1, got %d ok=%v", got, ok)
		}
	})

	t.Run("get on unbound wildcard", func(t *testing.T) {
		var m WildMap
		if _, ok := m.Get(Wild("?z")); ok {
			t.Error("expected unbound wildcard to report ok=false")
		}
	})

	t.Run("clone is independent", func(t *testing.T) {
		var m WildMap
		m.Insert(Wild("?a"), 1)
		clone := m.Clone()
		clone.Insert(Wild("?b"), 2)

		if m.Len() != 1 {
			t.Errorf("expected original map untouched, got len %d", m.Len())
		}
		if clone.Len() != 2 {
			t.Errorf("expected clone to have 2 entries, got %d", clone.Len())
		}
	})

	t.Run("equal ignores insertion order", func(t *testing.T) {
		var a, b WildMap
		a.Insert(Wild("?a"), 1)
		a.Insert(Wild("?b"), 2)
		b.Insert(Wild("?b"), 2)
		b.Insert(Wild("?a"), 1)

		if !a.Equal(&b) {
			t.Error("expected maps with the same bindings in different order to be equal")
		}
	})

	t.Run("equal detects differing bindings", func(t *testing.T) {
		var a, b WildMap
		a.Insert(Wild("?a"), 1)
		b.Insert(Wild("?a"), 2)

		if a.Equal(&b) {
			t.Error("expected maps with differing bindings to be unequal")
		}
	})

	t.Run("merge detects inconsistency", func(t *testing.T) {
		var a, b WildMap
		a.Insert(Wild("?a"), 1)
		b.Insert(Wild("?a"), 2)

		if _, ok := a.merge(&b); ok {
			t.Error("expected merge of conflicting bindings to fail")
		}
	})

	t.Run("merge combines disjoint bindings", func(t *testing.T) {
		var a, b WildMap
		a.Insert(Wild("?a"), 1)
		b.Insert(Wild("?b"), 2)

		merged, ok := a.merge(&b)
		if !ok {
			t.Fatal("expected merge to succeed")
		}
		if merged.Len() != 2 {
			t.Errorf("expected 2 entries after merge, got %d", merged.Len())
		}
	})
}
