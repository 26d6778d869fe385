package eqsat

import (
	"fmt"
	"strings"
)

// wildcardMarker is the lexical marker that distinguishes a wildcard
// name from an operator symbol, per the design's wildcard-name parsing
// surface: "textual form begins with a distinguishing character
// (conventionally '?')".
const wildcardMarker = '?'

// Wildcard is an interned, value-comparable name for a pattern hole.
// Two Wildcards with the same underlying string denote the same
// variable within a single Pattern; Wildcards are otherwise opaque to
// callers and should be constructed through ParseWildcard or Wild.
type Wildcard string

// ParseWildcard validates that s belongs to the wildcard lexical class
// (starts with the marker character and has at least one further rune)
// and returns it as a Wildcard. Callers assembling Patterns
// programmatically from trusted literals may prefer the panicking Wild
// helper instead.
func ParseWildcard(s string) (Wildcard, error) {
	if len(s) < 2 || rune(s[0]) != wildcardMarker {
		return "", fmt.Errorf("eqsat: %q is not a valid wildcard name (must start with %q and have a name)", s, wildcardMarker)
	}
	if strings.ContainsAny(s[1:], " \t\n()") {
		return "", fmt.Errorf("eqsat: %q is not a valid wildcard name (name contains whitespace or parens)", s)
	}
	return Wildcard(s), nil
}

// Wild is ParseWildcard for trusted, compile-time-literal names; it
// panics on a malformed name instead of returning an error, for the
// common case of building Patterns from Go source rather than parsed
// text.
func Wild(s string) Wildcard {
	w, err := ParseWildcard(s)
	if err != nil {
		panic(err)
	}
	return w
}

// String returns the wildcard's textual form, including its marker.
func (w Wildcard) String() string {
	return string(w)
}
