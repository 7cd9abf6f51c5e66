// Package tokenize builds the initial match tree for a filename: path parts
// split on path separators, the extension as its own trailing part, and
// bracketed sub-groups split out as explicit groups.
package tokenize

import (
	"strings"

	"github.com/kasuboski/guessr/pkg/matchtree"
)

var brackets = map[rune]rune{
	'[': ']',
	'(': ')',
	'{': '}',
}

// Build tokenizes name into a fresh match tree. No extraction has happened
// yet; every explicit group starts as a single unclaimed leaf.
func Build(name string) *matchtree.Tree {
	normalized := strings.ReplaceAll(name, "\\", "/")

	var parts []string
	for _, part := range strings.Split(normalized, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		parts = []string{""}
	}

	// the extension becomes its own trailing path part
	last := parts[len(parts)-1]
	if dot := strings.LastIndex(last, "."); dot > 0 && dot < len(last)-1 {
		parts[len(parts)-1] = last[:dot]
		parts = append(parts, last[dot+1:])
	}

	grouped := make([][]string, len(parts))
	for i, part := range parts {
		grouped[i] = splitExplicitGroups(part)
	}

	return matchtree.New(name, grouped)
}

// splitExplicitGroups splits a path part at bracket boundaries. Brackets stay
// attached to the group they open so the groups concatenate back to the part.
func splitExplicitGroups(part string) []string {
	var groups []string
	var current strings.Builder
	var closing rune

	flush := func() {
		if current.Len() > 0 {
			groups = append(groups, current.String())
			current.Reset()
		}
	}

	for _, r := range part {
		switch {
		case closing != 0:
			current.WriteRune(r)
			if r == closing {
				closing = 0
				flush()
			}
		case brackets[r] != 0:
			flush()
			current.WriteRune(r)
			closing = brackets[r]
		default:
			current.WriteRune(r)
		}
	}
	flush()

	if len(groups) == 0 {
		groups = []string{""}
	}
	return groups
}
