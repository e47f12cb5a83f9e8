package generate

import (
	"math/rand/v2"

	"github.com/matzehuels/synthgraph/pkg/model"
)

type completeGenerator struct{}

// Complete returns the generator of the complete graph. It uses no
// randomness; the rng argument may be nil.
func Complete() Generator { return validating{completeGenerator{}} }

func (completeGenerator) Model() model.Model { return model.ModelComplete }

// build emits every pair (i, j) with i < j in lexicographic order.
func (g completeGenerator) build(cfg model.Config, _ *rand.Rand) (EdgeList, error) {
	c, err := configAs[model.NumberOfNodesConfig](g.Model(), cfg)
	if err != nil {
		return nil, err
	}
	n := c.Nodes
	edges := make(EdgeList, 0, capHint(model.MaxSimpleEdges(n).Int64()))
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, Edge{From: i, To: j})
		}
	}
	return edges, nil
}
