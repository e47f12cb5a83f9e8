package model

import "math"

// minMeanDegree is the smallest meanDegree accepted before the parity check.
const minMeanDegree = 3

// WattsStrogatzConfig configures a small-world graph: a ring lattice where
// every node has MeanDegree neighbours, each edge rewired with probability
// Beta.
type WattsStrogatzConfig struct {
	NumberOfNodesConfig
	MeanDegree int     `json:"mean_degree"`
	Beta       float64 `json:"beta"`
}

// WattsStrogatz returns the configuration of a Watts–Strogatz graph.
func WattsStrogatz(n, meanDegree int, beta float64) WattsStrogatzConfig {
	return WattsStrogatzConfig{
		NumberOfNodesConfig: NumberOfNodesConfig{Nodes: n},
		MeanDegree:          meanDegree,
		Beta:                beta,
	}
}

// Model returns ModelWattsStrogatz.
func (c WattsStrogatzConfig) Model() Model { return ModelWattsStrogatz }

// IsValid reports whether Validate returns nil.
func (c WattsStrogatzConfig) IsValid() bool { return c.Validate() == nil }

// Validate checks the node count, that MeanDegree is even, at least 3 and
// at most Nodes-1, and that Beta lies in [0, 1].
func (c WattsStrogatzConfig) Validate() error {
	if err := c.validateFor(ModelWattsStrogatz); err != nil {
		return err
	}
	if c.MeanDegree%2 != 0 {
		return invalid(ModelWattsStrogatz, "meanDegree must be even, got %d", c.MeanDegree)
	}
	if c.MeanDegree < minMeanDegree {
		return invalid(ModelWattsStrogatz, "meanDegree must be >= %d, got %d", minMeanDegree, c.MeanDegree)
	}
	if c.MeanDegree > c.Nodes-1 {
		return invalid(ModelWattsStrogatz, "meanDegree must be <= numberOfNodes-1 (%d), got %d", c.Nodes-1, c.MeanDegree)
	}
	if math.IsNaN(c.Beta) || c.Beta < 0 || c.Beta > 1 {
		return invalid(ModelWattsStrogatz, "beta must be in [0,1], got %v", c.Beta)
	}
	return nil
}

// HalfDegree returns the number of lattice neighbours on each side.
func (c WattsStrogatzConfig) HalfDegree() int { return c.MeanDegree / 2 }
