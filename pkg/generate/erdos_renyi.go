package generate

import (
	"math/rand/v2"

	"github.com/matzehuels/synthgraph/pkg/model"
)

type erdosRenyiGenerator struct{}

// ErdosRenyi returns the G(n, m) generator: m distinct unordered pairs
// drawn uniformly without replacement.
func ErdosRenyi() Generator { return validating{erdosRenyiGenerator{}} }

func (erdosRenyiGenerator) Model() model.Model { return model.ModelErdosRenyi }

// build samples pairs by rejection while m is at most half of all
// pairs. Denser graphs sample the excluded pairs instead and emit the
// complement in lexicographic order, so the expected number of draws stays
// linear in the output.
func (g erdosRenyiGenerator) build(cfg model.Config, rng *rand.Rand) (EdgeList, error) {
	c, err := configAs[model.ErdosRenyiConfig](g.Model(), cfg)
	if err != nil {
		return nil, err
	}
	n, m := c.Nodes, c.Edges
	total := model.MaxSimpleEdges(n).Int64()

	if m <= total/2 {
		edges := make(EdgeList, 0, capHint(m))
		seen := make(map[uint64]struct{}, capHint(m))
		for int64(len(edges)) < m {
			e, ok := samplePair(rng, n)
			if !ok {
				continue
			}
			if _, dup := seen[e.key()]; dup {
				continue
			}
			seen[e.key()] = struct{}{}
			edges = append(edges, e)
		}
		return edges, nil
	}

	excluded := make(map[uint64]struct{}, capHint(total-m))
	for int64(len(excluded)) < total-m {
		if e, ok := samplePair(rng, n); ok {
			excluded[e.key()] = struct{}{}
		}
	}
	edges := make(EdgeList, 0, capHint(m))
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if _, skip := excluded[pairKey(i, j)]; !skip {
				edges = append(edges, Edge{From: i, To: j})
			}
		}
	}
	return edges, nil
}

// samplePair draws a uniform unordered pair of distinct nodes. It reports
// false when the draw landed on a self-loop.
func samplePair(rng *rand.Rand, n int) (Edge, bool) {
	a, b := rng.IntN(n), rng.IntN(n)
	if a == b {
		return Edge{}, false
	}
	return Edge{From: a, To: b}.Normalized(), true
}
