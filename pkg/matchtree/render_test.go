package matchtree

import (
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_columnsAligned(t *testing.T) {
	trees := []*Tree{
		New("simple", [][]string{{"Deadwood.1x05.Title"}, {"mkv"}}),
		New("nested", [][]string{{"Some.Series"}, {"Season 1"}, {"episode.one"}, {"avi"}}),
		New("grouped", [][]string{{"0106 - ", "[Some.Series]", " The.Title"}, {"mkv"}}),
	}

	_, err := trees[0].ClaimSpan(Position{0, 0, 0}, Span{9, 13}, map[string]any{"season": 1, "episodeNumber": 5}, 0.8)
	require.NoError(t, err)

	for _, tree := range trees {
		lines := strings.Split(tree.Render(), "\n")
		require.Len(t, lines, 5)
		for _, l := range lines[1:] {
			assert.Len(t, l, len(lines[0]), "all render lines must have equal length")
		}
	}
}

func TestRender_separators(t *testing.T) {
	tree := New("a/b/c.ext", [][]string{{"a"}, {"b"}, {"c"}, {"ext"}})
	lines := strings.Split(tree.Render(), "\n")

	// '/' between all but the last two parts, '.' before the final part
	assert.Equal(t, "a/b/c.ext", lines[3])
	assert.Equal(t, "0 1 2 333", lines[0])
}

func TestRender_meaningTags(t *testing.T) {
	tree := New("Deadwood.1x05.Trial.mkv", [][]string{{"Deadwood.1x05.Trial"}, {"mkv"}})
	_, err := tree.ClaimSpan(Position{0, 0, 0}, Span{9, 13}, map[string]any{"season": 1, "episodeNumber": 5}, 0.8)
	require.NoError(t, err)
	_, err = tree.Commit(Position{0, 0, 0}, map[string]any{"series": "Deadwood"}, 0.7)
	require.NoError(t, err)
	_, err = tree.Commit(Position{1, 0, 0}, map[string]any{"unmapped": true}, 1.0)
	require.NoError(t, err)

	lines := strings.Split(tree.Render(), "\n")
	meaningLine := lines[4]

	assert.Contains(t, meaningLine, "TTTTTTTTT") // series covers "Deadwood."
	assert.Contains(t, meaningLine, "EEEE")      // episodeNumber covers "1x05"
	assert.Contains(t, meaningLine, "xxx")       // unrecognized property tag
}

func TestRender_snapshot(t *testing.T) {
	tree := New("Some.Series/Some.Series.1x05.The.Title.mkv", [][]string{
		{"Some.Series"},
		{"Some.Series.1x05.The.Title"},
		{"mkv"},
	})
	_, err := tree.ClaimSpan(Position{1, 0, 0}, Span{12, 16}, map[string]any{"season": 1, "episodeNumber": 5}, 0.8)
	require.NoError(t, err)
	require.NoError(t, ResolveFromEpisodePosition(tree, Position{1, 0, 1}))

	snaps.MatchSnapshot(t, tree.Render())
}
