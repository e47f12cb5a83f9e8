package graph

import "slices"

// Stats summarizes the degree distribution of a graph.
type Stats struct {
	Nodes      int     `json:"nodes"`
	Edges      int     `json:"edges"`
	MinDegree  int     `json:"min_degree"`
	MaxDegree  int     `json:"max_degree"`
	MeanDegree float64 `json:"mean_degree"`
	// Density is edges divided by the number of possible pairs.
	Density float64 `json:"density"`
	// Histogram[d] is the number of nodes with degree d.
	Histogram []int `json:"histogram"`
}

// Degrees returns the degree of every node, keyed by node id. Edges that
// reference unknown nodes are ignored.
func Degrees(g Graph) map[string]int {
	deg := make(map[string]int, len(g.Nodes))
	for _, n := range g.Nodes {
		deg[n.ID] = 0
	}
	for _, e := range g.Edges {
		if _, ok := deg[e.From]; ok {
			deg[e.From]++
		}
		if _, ok := deg[e.To]; ok {
			deg[e.To]++
		}
	}
	return deg
}

// ComputeStats returns the degree statistics of g.
func ComputeStats(g Graph) Stats {
	s := Stats{Nodes: len(g.Nodes), Edges: len(g.Edges)}
	if s.Nodes == 0 {
		return s
	}

	deg := Degrees(g)
	values := make([]int, 0, len(deg))
	total := 0
	for _, d := range deg {
		values = append(values, d)
		total += d
	}
	s.MinDegree = slices.Min(values)
	s.MaxDegree = slices.Max(values)
	s.MeanDegree = float64(total) / float64(s.Nodes)
	if s.Nodes > 1 {
		s.Density = float64(s.Edges) / (float64(s.Nodes) * float64(s.Nodes-1) / 2)
	}
	s.Histogram = make([]int, s.MaxDegree+1)
	for _, d := range values {
		s.Histogram[d]++
	}
	return s
}
