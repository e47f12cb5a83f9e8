package model

// NumberOfNodesConfig configures a model parameterized by node count only.
// On its own it drives the complete graph; it is also embedded by the
// Barabási–Albert and Watts–Strogatz configurations.
type NumberOfNodesConfig struct {
	Nodes int `json:"number_of_nodes"`
}

// Complete returns the configuration of the complete graph on n nodes.
func Complete(n int) NumberOfNodesConfig {
	return NumberOfNodesConfig{Nodes: n}
}

// Model returns ModelComplete.
func (c NumberOfNodesConfig) Model() Model { return ModelComplete }

// NumberOfNodes returns the node count.
func (c NumberOfNodesConfig) NumberOfNodes() int { return c.Nodes }

// IsValid reports whether 2 <= Nodes <= MaxNodes.
func (c NumberOfNodesConfig) IsValid() bool { return c.Validate() == nil }

// Validate checks the node count bounds.
func (c NumberOfNodesConfig) Validate() error { return c.validateFor(ModelComplete) }

func (c NumberOfNodesConfig) validateFor(m Model) error {
	if c.Nodes < minNodes {
		return invalid(m, "numberOfNodes must be >= %d, got %d", minNodes, c.Nodes)
	}
	if c.Nodes > MaxNodes {
		return invalid(m, "numberOfNodes must be <= %d, got %d", MaxNodes, c.Nodes)
	}
	return nil
}
