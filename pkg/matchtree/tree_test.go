package matchtree

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAll_canonicalOrder(t *testing.T) {
	tree := New("x", [][]string{{"aa", "bb"}, {"cc"}})

	var positions []Position
	var texts []string
	for pos, leaf := range tree.All() {
		positions = append(positions, pos)
		texts = append(texts, leaf.Original())
	}

	assert.Equal(t, []Position{{0, 0, 0}, {0, 1, 0}, {1, 0, 0}}, positions)
	assert.Equal(t, []string{"aa", "bb", "cc"}, texts)
}

func TestAll_restartable(t *testing.T) {
	tree := New("x", [][]string{{"aa", "bb"}})

	first := 0
	for range tree.All() {
		first++
		break
	}
	second := 0
	for range tree.All() {
		second++
	}

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestCommit(t *testing.T) {
	tree := New("x", [][]string{{"Deadwood", "1x05"}})

	g, err := tree.Commit(Position{0, 1, 0}, map[string]any{"season": 1, "episodeNumber": 5}, 0.8)
	require.NoError(t, err)
	assert.True(t, g.Contains("episodeNumber"))

	leaf, err := tree.Leaf(Position{0, 1, 0})
	require.NoError(t, err)
	assert.True(t, leaf.Claimed())
	assert.Equal(t, "1x05", leaf.Original())
	assert.Equal(t, "____", leaf.Remaining())
	assert.Len(t, leaf.Remaining(), len(leaf.Original()))

	// aggregate picked the properties up
	assert.True(t, tree.Result().Contains("season"))
	assert.Equal(t, 0.8, tree.Result().Confidence("episodeNumber"))

	// claimed leaves are immutable
	_, err = tree.Commit(Position{0, 1, 0}, map[string]any{"title": "nope"}, 1.0)
	assert.Error(t, err)
}

func TestCommit_badPosition(t *testing.T) {
	tree := New("x", [][]string{{"aa"}})
	_, err := tree.Commit(Position{2, 0, 0}, map[string]any{"title": "t"}, 1.0)
	assert.Error(t, err)
}

func TestClaimSpan_partitions(t *testing.T) {
	tree := New("x", [][]string{{"Deadwood.1x05.Title"}})

	_, err := tree.ClaimSpan(Position{0, 0, 0}, Span{9, 13}, map[string]any{"season": 1, "episodeNumber": 5}, 0.8)
	require.NoError(t, err)

	var leaves []Leaf
	for _, leaf := range tree.All() {
		leaves = append(leaves, leaf)
	}
	require.Len(t, leaves, 3)

	assert.Equal(t, "Deadwood.", leaves[0].Original())
	assert.False(t, leaves[0].Claimed())

	assert.Equal(t, "1x05", leaves[1].Original())
	assert.Equal(t, "____", leaves[1].Remaining())
	assert.True(t, leaves[1].Claimed())

	assert.Equal(t, ".Title", leaves[2].Original())
	assert.Equal(t, ".Title", leaves[2].Remaining())
	assert.False(t, leaves[2].Claimed())

	// concatenation still reproduces the original text
	var full strings.Builder
	for _, l := range leaves {
		full.WriteString(l.Original())
	}
	assert.Equal(t, "Deadwood.1x05.Title", full.String())
}

func TestClaimSpan_wholeLeaf(t *testing.T) {
	tree := New("x", [][]string{{"1x05"}})

	_, err := tree.ClaimSpan(Position{0, 0, 0}, Span{0, 4}, map[string]any{"episodeNumber": 5}, 0.8)
	require.NoError(t, err)

	var count int
	for _, leaf := range tree.All() {
		count++
		assert.True(t, leaf.Claimed())
	}
	assert.Equal(t, 1, count)
}

func TestClaimSpan_clampsAndRejectsEmpty(t *testing.T) {
	tree := New("x", [][]string{{"abc"}})

	_, err := tree.ClaimSpan(Position{0, 0, 0}, Span{2, 2}, map[string]any{"title": "t"}, 1.0)
	assert.Error(t, err)

	_, err = tree.ClaimSpan(Position{0, 0, 0}, Span{-2, 99}, map[string]any{"title": "abc"}, 1.0)
	require.NoError(t, err)
	leaf, err := tree.Leaf(Position{0, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, "___", leaf.Remaining())
}

func TestFindProperty(t *testing.T) {
	tree := New("x", [][]string{{"Deadwood", "1x05", "Title"}})
	_, err := tree.Commit(Position{0, 1, 0}, map[string]any{"episodeNumber": 5}, 0.8)
	require.NoError(t, err)

	assert.Equal(t, []Position{{0, 1, 0}}, tree.FindProperty("episodeNumber"))
	assert.Empty(t, tree.FindProperty("title"))
}

func TestLeftovers(t *testing.T) {
	tree := New("x", [][]string{{"Deadwood.", "1x05", ".ab."}})
	_, err := tree.Commit(Position{0, 1, 0}, map[string]any{"episodeNumber": 5}, 0.8)
	require.NoError(t, err)

	leftover := tree.Leftovers(nil)
	// ".ab." cleans to "ab" which fails the default length check
	require.Len(t, leftover, 1)
	assert.Equal(t, "Deadwood", leftover[0].Cleaned)
	assert.Equal(t, Position{0, 0, 0}, leftover[0].Pos)

	all := tree.Leftovers(func(s string) bool { return s != "" })
	assert.Len(t, all, 2)
}
