package generate

import (
	"cmp"
	"math/rand/v2"

	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/matzehuels/synthgraph/pkg/degree"
	"github.com/matzehuels/synthgraph/pkg/errors"
	"github.com/matzehuels/synthgraph/pkg/model"
)

type distributionGenerator struct{}

// Distribution returns the configuration-model generator. It is
// deterministic; the rng argument may be nil.
func Distribution() Generator { return validating{distributionGenerator{}} }

func (distributionGenerator) Model() model.Model { return model.ModelDistribution }

// slot is a node with its remaining degree.
type slot struct {
	degree int
	index  int
}

// bySlot orders slots by remaining degree descending, then node index
// ascending. The index order is the tie-break between equal degrees.
func bySlot(a, b any) int {
	x, y := a.(slot), b.(slot)
	if c := cmp.Compare(y.degree, x.degree); c != 0 {
		return c
	}
	return cmp.Compare(x.index, y.index)
}

// build realizes the degree sequence with the Havel–Hakimi
// construction: the node with the largest remaining degree d is connected
// to the next d nodes in slot order, their remaining degrees are
// decremented and the process repeats until every degree is zero. Node i
// of the result has degree sequence[i] exactly.
func (g distributionGenerator) build(cfg model.Config, _ *rand.Rand) (EdgeList, error) {
	c, err := configAs[model.DistributionConfig](g.Model(), cfg)
	if err != nil {
		return nil, err
	}
	return havelHakimi(c.Sequence())
}

// havelHakimi builds the edges of seq. A sequence that is not graphical
// ends with an INTERNAL_CONSISTENCY error once a node runs out of
// partners.
func havelHakimi(seq degree.Sequence) (EdgeList, error) {
	tree := redblacktree.NewWith(bySlot)
	for i := 0; i < seq.Len(); i++ {
		if d := seq.At(i); d > 0 {
			tree.Put(slot{degree: d, index: i}, nil)
		}
	}

	edges := make(EdgeList, 0, capHint(seq.Sum()/2))
	targets := make([]slot, 0, seq.Max())
	for !tree.Empty() {
		head := tree.Left().Key.(slot)
		tree.Remove(head)

		targets = targets[:0]
		it := tree.Iterator()
		for len(targets) < head.degree && it.Next() {
			targets = append(targets, it.Key().(slot))
		}
		if len(targets) < head.degree {
			return nil, errors.New(errors.ErrCodeInternalConsistency,
				"distribution: node %d needs %d more neighbours but only %d remain", head.index, head.degree, len(targets))
		}

		for _, t := range targets {
			tree.Remove(t)
			edges = append(edges, Edge{From: head.index, To: t.index})
			if t.degree > 1 {
				tree.Put(slot{degree: t.degree - 1, index: t.index}, nil)
			}
		}
	}
	return edges, nil
}
