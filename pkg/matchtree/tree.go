// Package matchtree holds a filename as a mutable hierarchy of partially
// matched text spans. Path parts split on separators form the first level,
// bracketed groups within a part the second, and leaf text groups the third.
// Extraction passes claim leaf spans; claimed text is replaced by a filler
// sentinel of identical length so offsets into the original string stay valid
// for the whole pipeline run.
package matchtree

import (
	"fmt"
	"iter"

	"github.com/kasuboski/guessr/pkg/guess"
	"github.com/kasuboski/guessr/pkg/textutils"
)

// Position addresses a leaf group: path part, explicit group, leaf group.
type Position struct {
	Path     int
	Explicit int
	Group    int
}

// Span is a half-open character offset pair into a leaf's original text.
type Span struct {
	Start int
	End   int
}

// Leaf is one text group. Remaining always has the same length as Original;
// consumed characters are filler. A leaf holds no guess until a pass claims
// it, and is immutable once claimed.
type Leaf struct {
	original  string
	remaining string
	guess     *guess.Guess
}

// Original returns the leaf's original substring.
func (l Leaf) Original() string { return l.original }

// Remaining returns the unconsumed text, filler standing in for claimed spans.
func (l Leaf) Remaining() string { return l.remaining }

// Guess returns the claim on this leaf, if any.
func (l Leaf) Guess() (guess.Guess, bool) {
	if l.guess == nil {
		return guess.Guess{}, false
	}
	return *l.guess, true
}

// Claimed reports whether a pass already owns this leaf.
func (l Leaf) Claimed() bool { return l.guess != nil }

// Tree is the match tree for a single filename. A tree belongs to exactly one
// pipeline run; it is not safe for concurrent use.
type Tree struct {
	name   string
	parts  [][][]Leaf
	result guess.Guess
}

// New builds a tree from tokenized input: parts[pidx][eidx] is the text of
// one explicit group, which starts out as a single unclaimed leaf.
func New(name string, parts [][]string) *Tree {
	t := &Tree{name: name, parts: make([][][]Leaf, len(parts))}
	for pidx, part := range parts {
		t.parts[pidx] = make([][]Leaf, len(part))
		for eidx, group := range part {
			t.parts[pidx][eidx] = []Leaf{{original: group, remaining: group}}
		}
	}
	return t
}

// Name returns the string the tree was built from.
func (t *Tree) Name() string { return t.name }

// PathParts returns the number of path parts.
func (t *Tree) PathParts() int { return len(t.parts) }

// ExplicitGroups returns the number of explicit groups in a path part.
func (t *Tree) ExplicitGroups(pidx int) int {
	if pidx < 0 || pidx >= len(t.parts) {
		return 0
	}
	return len(t.parts[pidx])
}

// LeafGroups returns the current number of leaf groups in an explicit group.
// Claims that partition a leaf grow this count.
func (t *Tree) LeafGroups(pidx, eidx int) int {
	if pidx < 0 || pidx >= len(t.parts) {
		return 0
	}
	if eidx < 0 || eidx >= len(t.parts[pidx]) {
		return 0
	}
	return len(t.parts[pidx][eidx])
}

// All iterates every leaf in canonical order: path-part major, explicit-group
// next, leaf minor. The sequence is restartable and reflects the live tree.
func (t *Tree) All() iter.Seq2[Position, Leaf] {
	return func(yield func(Position, Leaf) bool) {
		for pidx, part := range t.parts {
			for eidx, group := range part {
				for gidx, leaf := range group {
					if !yield(Position{pidx, eidx, gidx}, leaf) {
						return
					}
				}
			}
		}
	}
}

// Leaf returns the leaf at pos.
func (t *Tree) Leaf(pos Position) (Leaf, error) {
	if pos.Path < 0 || pos.Path >= len(t.parts) {
		return Leaf{}, fmt.Errorf("no path part %d", pos.Path)
	}
	part := t.parts[pos.Path]
	if pos.Explicit < 0 || pos.Explicit >= len(part) {
		return Leaf{}, fmt.Errorf("no explicit group %d in path part %d", pos.Explicit, pos.Path)
	}
	group := part[pos.Explicit]
	if pos.Group < 0 || pos.Group >= len(group) {
		return Leaf{}, fmt.Errorf("no leaf group %d at (%d, %d)", pos.Group, pos.Path, pos.Explicit)
	}
	return group[pos.Group], nil
}

// FindProperty returns the positions of every leaf whose guess contains the
// property. No match is an empty slice.
func (t *Tree) FindProperty(prop string) []Position {
	var found []Position
	for pos, leaf := range t.All() {
		if g, ok := leaf.Guess(); ok && g.Contains(prop) {
			found = append(found, pos)
		}
	}
	return found
}

// Leftover is an unclaimed leaf whose cleaned text is a plausible token.
type Leftover struct {
	Cleaned string
	Pos     Position
}

// Leftovers returns the unclaimed leaves whose cleaned remaining text passes
// valid, in canonical order. A nil valid keeps strings longer than 3 runes.
func (t *Tree) Leftovers(valid func(string) bool) []Leftover {
	if valid == nil {
		valid = func(s string) bool { return len(s) > 3 }
	}
	var leftover []Leftover
	for pos, leaf := range t.All() {
		if leaf.Claimed() {
			continue
		}
		cleaned := textutils.CleanString(leaf.Remaining())
		if valid(cleaned) {
			leftover = append(leftover, Leftover{Cleaned: cleaned, Pos: pos})
		}
	}
	return leftover
}

// Result returns the cumulative guess aggregated across all claims.
func (t *Tree) Result() guess.Guess { return t.result }

// Commit claims the whole leaf at pos: the guess built from props is attached,
// the remaining text becomes filler of identical length and the aggregate
// result absorbs the new properties. Committing to a claimed leaf is an error.
func (t *Tree) Commit(pos Position, props map[string]any, confidence float64) (guess.Guess, error) {
	leaf, err := t.Leaf(pos)
	if err != nil {
		return guess.Guess{}, err
	}
	if leaf.Claimed() {
		return guess.Guess{}, fmt.Errorf("leaf at (%d, %d, %d) already claimed", pos.Path, pos.Explicit, pos.Group)
	}

	g := guess.New(props, confidence)
	t.parts[pos.Path][pos.Explicit][pos.Group] = Leaf{
		original:  leaf.original,
		remaining: textutils.FillerString(len(leaf.original)),
		guess:     &g,
	}
	t.result = t.result.Merge(g)
	return g, nil
}

// ClaimSpan claims span within the leaf at pos. When the span is a strict
// sub-span the leaf is partitioned into the unclaimed text before, the
// claimed span and the unclaimed text after, so later passes and positional
// rules still see the residue as separate leaf groups. Leaf indices after pos
// within the same explicit group shift accordingly.
func (t *Tree) ClaimSpan(pos Position, span Span, props map[string]any, confidence float64) (guess.Guess, error) {
	leaf, err := t.Leaf(pos)
	if err != nil {
		return guess.Guess{}, err
	}
	if leaf.Claimed() {
		return guess.Guess{}, fmt.Errorf("leaf at (%d, %d, %d) already claimed", pos.Path, pos.Explicit, pos.Group)
	}
	if span.Start < 0 {
		span.Start = 0
	}
	if span.End > len(leaf.original) {
		span.End = len(leaf.original)
	}
	if span.Start >= span.End {
		return guess.Guess{}, fmt.Errorf("empty span (%d, %d)", span.Start, span.End)
	}

	g := guess.New(props, confidence)
	claimed := Leaf{
		original:  leaf.original[span.Start:span.End],
		remaining: textutils.FillerString(span.End - span.Start),
		guess:     &g,
	}

	split := make([]Leaf, 0, 3)
	if span.Start > 0 {
		split = append(split, Leaf{
			original:  leaf.original[:span.Start],
			remaining: leaf.remaining[:span.Start],
		})
	}
	split = append(split, claimed)
	if span.End < len(leaf.original) {
		split = append(split, Leaf{
			original:  leaf.original[span.End:],
			remaining: leaf.remaining[span.End:],
		})
	}

	group := t.parts[pos.Path][pos.Explicit]
	replaced := make([]Leaf, 0, len(group)+len(split)-1)
	replaced = append(replaced, group[:pos.Group]...)
	replaced = append(replaced, split...)
	replaced = append(replaced, group[pos.Group+1:]...)
	t.parts[pos.Path][pos.Explicit] = replaced

	t.result = t.result.Merge(g)
	return g, nil
}
