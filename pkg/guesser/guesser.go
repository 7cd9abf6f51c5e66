// Package guesser runs confidence-weighted extraction passes over a
// filename's match tree and resolves what is left by position.
package guesser

import (
	"context"

	"github.com/kasuboski/guessr/pkg/guess"
	"github.com/kasuboski/guessr/pkg/logger"
	"github.com/kasuboski/guessr/pkg/matchtree"
	"github.com/kasuboski/guessr/pkg/tokenize"
)

// MatchFunc inspects one unclaimed leaf and proposes a claim. A pass that
// produces a property already present in the tree's aggregate result must
// report no match; first pass wins per property across the whole run.
type MatchFunc func(t *matchtree.Tree, pos matchtree.Position, remaining string) (props map[string]any, confidence float64, span matchtree.Span, ok bool)

// Pass is one independent extraction algorithm. The driver scales its
// intrinsic confidence by Weight before committing.
type Pass struct {
	Name   string
	Weight float64
	Match  MatchFunc
}

// Guesser applies a fixed pass catalog followed by positional resolution.
// It holds no per-run state and is safe for concurrent use; every Guess call
// owns its tree.
type Guesser struct {
	passes []Pass
}

// New returns a guesser with the default pass catalog.
func New() *Guesser {
	return NewWithPasses(DefaultPasses()...)
}

// NewWithPasses returns a guesser running exactly the given passes, in order.
func NewWithPasses(passes ...Pass) *Guesser {
	return &Guesser{passes: passes}
}

// Guess extracts metadata from the filename. It returns the flattened best
// guess per property and the mutated tree for diagnostics.
func (g *Guesser) Guess(ctx context.Context, name string) (guess.Guess, *matchtree.Tree, error) {
	log := logger.FromCtx(ctx)

	tree := tokenize.Build(name)

	for _, pass := range g.passes {
		g.runPass(ctx, tree, pass)
	}

	if anchors := tree.FindProperty("episodeNumber"); len(anchors) > 0 {
		if err := matchtree.ResolveFromEpisodePosition(tree, anchors[0]); err != nil {
			return guess.Guess{}, nil, err
		}
	} else if err := matchtree.ResolveMovieTitle(tree); err != nil {
		return guess.Guess{}, nil, err
	}

	log.Debugw("guessed", "name", name, "result", tree.Result().String())
	return tree.Result(), tree, nil
}

// runPass walks the live tree with index-based traversal so leaves created by
// a split are still visited, and claimed leaves are skipped.
func (g *Guesser) runPass(ctx context.Context, tree *matchtree.Tree, pass Pass) {
	log := logger.FromCtx(ctx)

	for pidx := 0; pidx < tree.PathParts(); pidx++ {
		for eidx := 0; eidx < tree.ExplicitGroups(pidx); eidx++ {
			for gidx := 0; gidx < tree.LeafGroups(pidx, eidx); gidx++ {
				pos := matchtree.Position{Path: pidx, Explicit: eidx, Group: gidx}
				leaf, err := tree.Leaf(pos)
				if err != nil || leaf.Claimed() {
					continue
				}

				props, confidence, span, ok := pass.Match(tree, pos, leaf.Remaining())
				if !ok {
					continue
				}

				if _, err := tree.ClaimSpan(pos, span, props, confidence*pass.Weight); err != nil {
					log.Debugw("claim rejected", "pass", pass.Name, "err", err)
					continue
				}
				log.Debugw("claimed", "pass", pass.Name, "pos", pos, "props", props)
			}
		}
	}
}
