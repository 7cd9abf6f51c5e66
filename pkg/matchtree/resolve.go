package matchtree

// Positional heuristics. When no pass directly identifies a leftover leaf,
// its structural position relative to an anchor that was identified often
// does. Every rule below fires only on an exact candidate count; anything
// else leaves the leaves unguessed, which is not an error.

func before(a, b Position) bool {
	if a.Explicit != b.Explicit {
		return a.Explicit < b.Explicit
	}
	return a.Group < b.Group
}

// ResolveFromEpisodePosition disambiguates leftover leaves around an already
// committed episode-number leaf. Rules are applied in a fixed order, each one
// against the residue the previous rules left:
//
//  1. a single leftover before the anchor in its path part is the series (0.7)
//  2. a single leftover after the anchor in its explicit group is the title (0.5)
//  3. with no title found anywhere, nothing before the anchor and exactly two
//     leftovers after it in the path part, they are series and title (0.4 each)
//  4. a single leftover in the previous path part is the series (0.7)
func ResolveFromEpisodePosition(t *Tree, anchor Position) error {
	leftover := t.Leftovers(nil)

	samePartBefore := func(l Leftover) bool {
		return l.Pos.Path == anchor.Path && before(l.Pos, anchor)
	}
	samePartAfter := func(l Leftover) bool {
		return l.Pos.Path == anchor.Path && before(anchor, l.Pos)
	}
	sameGroupAfter := func(l Leftover) bool {
		return samePartAfter(l) && l.Pos.Explicit == anchor.Explicit
	}
	previousPart := func(l Leftover) bool {
		return l.Pos.Path == anchor.Path-1
	}

	commit := func(l Leftover, prop string, confidence float64) error {
		if _, err := t.Commit(l.Pos, map[string]any{prop: l.Cleaned}, confidence); err != nil {
			return err
		}
		leftover = remove(leftover, l.Pos)
		return nil
	}

	// a single unmatched group before the episode number is most likely the
	// series name
	if c := filter(leftover, samePartBefore); len(c) == 1 {
		if err := commit(c[0], "series", 0.7); err != nil {
			return err
		}
	}

	// a single group after it in the same explicit group is most likely the
	// episode title
	if c := filter(leftover, sameGroupAfter); len(c) == 1 {
		if err := commit(c[0], "title", 0.5); err != nil {
			return err
		}
	}

	// episode number leads the path part and exactly two groups follow:
	// series then title
	hasTitle := len(t.FindProperty("title")) > 0
	if c := filter(leftover, samePartAfter); !hasTitle &&
		len(filter(leftover, samePartBefore)) == 0 && len(c) == 2 {
		if err := commit(c[0], "series", 0.4); err != nil {
			return err
		}
		if err := commit(c[1], "title", 0.4); err != nil {
			return err
		}
	}

	// a single remaining group in the enclosing directory is most likely the
	// series name
	if c := filter(leftover, previousPart); len(c) == 1 {
		if err := commit(c[0], "series", 0.7); err != nil {
			return err
		}
	}

	return nil
}

// ResolveMovieTitle assigns a title when no episode anchor exists: the sole
// leftover in the basename path part (0.6), or failing that the sole leftover
// in the enclosing directory (0.4).
func ResolveMovieTitle(t *Tree) error {
	basename := len(t.parts) - 2
	if basename < 0 {
		basename = 0
	}

	leftover := t.Leftovers(nil)

	inPart := func(pidx int) []Leftover {
		return filter(leftover, func(l Leftover) bool { return l.Pos.Path == pidx })
	}

	if c := inPart(basename); len(c) == 1 {
		_, err := t.Commit(c[0].Pos, map[string]any{"title": c[0].Cleaned}, 0.6)
		return err
	}
	if basename > 0 {
		if c := inPart(basename - 1); len(c) == 1 {
			_, err := t.Commit(c[0].Pos, map[string]any{"title": c[0].Cleaned}, 0.4)
			return err
		}
	}
	return nil
}

func filter(leftover []Leftover, keep func(Leftover) bool) []Leftover {
	var kept []Leftover
	for _, l := range leftover {
		if keep(l) {
			kept = append(kept, l)
		}
	}
	return kept
}

func remove(leftover []Leftover, pos Position) []Leftover {
	var kept []Leftover
	for _, l := range leftover {
		if l.Pos != pos {
			kept = append(kept, l)
		}
	}
	return kept
}
