package model

import "math/big"

// ErdosRenyiConfig configures the G(n, m) model: Edges distinct unordered
// pairs drawn uniformly from the Nodes(Nodes-1)/2 possible pairs.
type ErdosRenyiConfig struct {
	Nodes int   `json:"number_of_nodes"`
	Edges int64 `json:"number_of_edges"`
}

// ErdosRenyi returns the configuration of G(n, m).
func ErdosRenyi(n int, m int64) ErdosRenyiConfig {
	return ErdosRenyiConfig{Nodes: n, Edges: m}
}

// Model returns ModelErdosRenyi.
func (c ErdosRenyiConfig) Model() Model { return ModelErdosRenyi }

// NumberOfNodes returns the node count.
func (c ErdosRenyiConfig) NumberOfNodes() int { return c.Nodes }

// IsValid reports whether Validate returns nil.
func (c ErdosRenyiConfig) IsValid() bool { return c.Validate() == nil }

// Validate checks the node count and that 0 < Edges <= Nodes(Nodes-1)/2.
func (c ErdosRenyiConfig) Validate() error {
	if err := (NumberOfNodesConfig{Nodes: c.Nodes}).validateFor(ModelErdosRenyi); err != nil {
		return err
	}
	if c.Edges <= 0 {
		return invalid(ModelErdosRenyi, "numberOfEdges must be > 0, got %d", c.Edges)
	}
	limit := MaxSimpleEdges(c.Nodes)
	if big.NewInt(c.Edges).Cmp(limit) > 0 {
		return invalid(ModelErdosRenyi, "numberOfEdges must be <= %s for %d nodes, got %d", limit, c.Nodes, c.Edges)
	}
	return nil
}

// MaxSimpleEdges returns n(n-1)/2, the edge count of the complete simple
// graph on n nodes, without overflow.
func MaxSimpleEdges(n int) *big.Int {
	if n < 2 {
		return big.NewInt(0)
	}
	bn := big.NewInt(int64(n))
	limit := new(big.Int).Mul(bn, new(big.Int).Sub(bn, big.NewInt(1)))
	return limit.Rsh(limit, 1)
}
