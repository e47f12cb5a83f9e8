package model

// BarabasiAlbertConfig configures preferential attachment: every node added
// after the seed attaches to EdgesPerNewNode distinct existing nodes.
type BarabasiAlbertConfig struct {
	NumberOfNodesConfig
	EdgesPerNewNode int `json:"edges_per_new_node"`
}

// BarabasiAlbert returns the configuration of a Barabási–Albert graph.
func BarabasiAlbert(n, edgesPerNewNode int) BarabasiAlbertConfig {
	return BarabasiAlbertConfig{
		NumberOfNodesConfig: NumberOfNodesConfig{Nodes: n},
		EdgesPerNewNode:     edgesPerNewNode,
	}
}

// Model returns ModelBarabasiAlbert.
func (c BarabasiAlbertConfig) Model() Model { return ModelBarabasiAlbert }

// IsValid reports whether Validate returns nil.
func (c BarabasiAlbertConfig) IsValid() bool { return c.Validate() == nil }

// Validate checks the node count, EdgesPerNewNode >= 1 and
// EdgesPerNewNode+1 <= Nodes.
func (c BarabasiAlbertConfig) Validate() error {
	if err := c.validateFor(ModelBarabasiAlbert); err != nil {
		return err
	}
	if c.EdgesPerNewNode < 1 {
		return invalid(ModelBarabasiAlbert, "edgesPerNewNode must be >= 1, got %d", c.EdgesPerNewNode)
	}
	// Nodes >= 2 here, so Nodes-1 cannot overflow.
	if c.EdgesPerNewNode > c.Nodes-1 {
		return invalid(ModelBarabasiAlbert, "edgesPerNewNode+1 must be <= numberOfNodes (%d), got edgesPerNewNode=%d",
			c.Nodes, c.EdgesPerNewNode)
	}
	return nil
}
