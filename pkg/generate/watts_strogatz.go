package generate

import (
	"math/rand/v2"

	"github.com/matzehuels/synthgraph/pkg/model"
)

// rewireDraws is the number of random target draws before falling back to
// a scan for a free target.
const rewireDraws = 32

type wattsStrogatzGenerator struct{}

// WattsStrogatz returns the small-world generator.
func WattsStrogatz() Generator { return validating{wattsStrogatzGenerator{}} }

func (wattsStrogatzGenerator) Model() model.Model { return model.ModelWattsStrogatz }

// build creates a ring lattice where node i links to i+1..i+k (mod n),
// k = meanDegree/2, and then walks the lattice lap by lap: for j = 1..k and
// i = 0..n-1 the edge (i, i+j) is replaced with probability beta by (i, w)
// for a uniform node w that is neither i nor already adjacent to i. When no
// such w exists the edge is kept. The edge count is always n*k.
func (g wattsStrogatzGenerator) build(cfg model.Config, rng *rand.Rand) (EdgeList, error) {
	c, err := configAs[model.WattsStrogatzConfig](g.Model(), cfg)
	if err != nil {
		return nil, err
	}
	n, k, beta := c.Nodes, c.HalfDegree(), c.Beta

	edges := make(EdgeList, 0, capHint(int64(n)*int64(k)))
	present := make(map[uint64]struct{}, capHint(int64(n)*int64(k)))
	degree := make([]int, n)
	for j := 1; j <= k; j++ {
		for i := 0; i < n; i++ {
			e := Edge{From: i, To: (i + j) % n}
			edges = append(edges, e)
			present[e.key()] = struct{}{}
			degree[e.From]++
			degree[e.To]++
		}
	}

	// Lap-major storage means edges[idx] is exactly the canonical
	// traversal order.
	for idx, e := range edges {
		if beta == 0 || rng.Float64() >= beta {
			continue
		}
		w, ok := rewireTarget(rng, n, e.From, degree, present)
		if !ok {
			continue
		}
		delete(present, e.key())
		degree[e.To]--
		r := Edge{From: e.From, To: w}
		present[r.key()] = struct{}{}
		degree[w]++
		edges[idx] = r
	}
	return edges, nil
}

// rewireTarget picks a uniform node that is neither i nor adjacent to i.
func rewireTarget(rng *rand.Rand, n, i int, degree []int, present map[uint64]struct{}) (int, bool) {
	if degree[i] >= n-1 {
		return 0, false
	}
	free := func(w int) bool {
		if w == i {
			return false
		}
		_, adjacent := present[pairKey(i, w)]
		return !adjacent
	}
	for range rewireDraws {
		if w := rng.IntN(n); free(w) {
			return w, true
		}
	}
	// Dense neighbourhood: collect the free nodes and choose among them.
	candidates := make([]int, 0, n-1-degree[i])
	for w := 0; w < n; w++ {
		if free(w) {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[rng.IntN(len(candidates))], true
}
