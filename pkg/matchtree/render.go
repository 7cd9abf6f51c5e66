package matchtree

import (
	"strings"

	"github.com/kasuboski/guessr/pkg/guess"
)

// property -> single-letter tag for the render's meaning line
var meaningTags = []struct {
	prop string
	tag  byte
}{
	{"episodeNumber", 'E'},
	{"season", 'S'},
	{"extension", 'e'},
	{"format", 'f'},
	{"language", 'l'},
	{"videoCodec", 'v'},
	{"website", 'w'},
	{"container", 'c'},
	{"series", 'T'},
	{"title", 't'},
}

func meaning(g guess.Guess, claimed bool) byte {
	if !claimed {
		return ' '
	}
	for _, m := range meaningTags {
		if g.Contains(m.prop) {
			return m.tag
		}
	}
	return 'x'
}

// hexDigit renders small indices as a single character: 0-9 then A, B, C...
func hexDigit(i int) byte {
	if i < 10 {
		return byte('0' + i)
	}
	return byte('A' + i - 10)
}

// Render returns a five-line diagnostic visualization of the tree. Per
// character column the lines carry the path index, explicit group index, leaf
// group index, remaining text and a meaning tag. Path part boundaries render
// as '/' between all but the last two parts and '.' before the final part.
// Every line has the same length; the output is for debugging and tests only.
func (t *Tree) Render() string {
	var lines [5]strings.Builder

	addColumns := func(pidx, eidx, gidx byte, text string, tag byte) {
		for i := 0; i < len(text); i++ {
			lines[0].WriteByte(pidx)
			lines[1].WriteByte(eidx)
			lines[2].WriteByte(gidx)
			lines[3].WriteByte(text[i])
			lines[4].WriteByte(tag)
		}
	}

	for pidx, part := range t.parts {
		for eidx, group := range part {
			for gidx, leaf := range group {
				g, claimed := leaf.Guess()
				addColumns(hexDigit(pidx), hexDigit(eidx), hexDigit(gidx), leaf.Remaining(), meaning(g, claimed))
			}
		}

		switch {
		case pidx < len(t.parts)-2:
			addColumns(' ', ' ', ' ', "/", ' ')
		case pidx == len(t.parts)-2:
			addColumns(' ', ' ', ' ', ".", ' ')
		}
	}

	rendered := make([]string, len(lines))
	for i := range lines {
		rendered[i] = lines[i].String()
	}
	return strings.Join(rendered, "\n")
}
