package generate

import (
	"math/rand/v2"

	"github.com/matzehuels/synthgraph/pkg/model"
)

type barabasiAlbertGenerator struct{}

// BarabasiAlbert returns the preferential attachment generator.
func BarabasiAlbert() Generator { return validating{barabasiAlbertGenerator{}} }

func (barabasiAlbertGenerator) Model() model.Model { return model.ModelBarabasiAlbert }

// build starts from a complete seed graph on the first m nodes and then
// attaches every further node to m distinct earlier nodes. Targets are
// drawn from a list holding each node once per incident edge, which makes
// the choice proportional to degree; while that list is empty the choice
// is uniform. The result has m(m-1)/2 + (n-m)m edges.
func (g barabasiAlbertGenerator) build(cfg model.Config, rng *rand.Rand) (EdgeList, error) {
	c, err := configAs[model.BarabasiAlbertConfig](g.Model(), cfg)
	if err != nil {
		return nil, err
	}
	n, m := c.Nodes, c.EdgesPerNewNode
	want := int64(m)*int64(m-1)/2 + int64(n-m)*int64(m)

	edges := make(EdgeList, 0, capHint(want))
	endpoints := make([]int, 0, capHint(2*want))
	for i := 0; i < m; i++ {
		for j := i + 1; j < m; j++ {
			edges = append(edges, Edge{From: i, To: j})
			endpoints = append(endpoints, i, j)
		}
	}

	targets := make([]int, 0, m)
	chosen := make(map[int]struct{}, m)
	for v := m; v < n; v++ {
		targets = targets[:0]
		clear(chosen)
		for len(targets) < m {
			var t int
			if len(endpoints) == 0 {
				t = rng.IntN(v)
			} else {
				t = endpoints[rng.IntN(len(endpoints))]
			}
			if _, dup := chosen[t]; dup {
				continue
			}
			chosen[t] = struct{}{}
			targets = append(targets, t)
		}
		for _, t := range targets {
			edges = append(edges, Edge{From: t, To: v})
			endpoints = append(endpoints, t, v)
		}
	}
	return edges, nil
}
