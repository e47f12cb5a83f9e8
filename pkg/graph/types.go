package graph

import "fmt"

// Graph is a materialized undirected graph.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// Node is a created node.
type Node struct {
	ID    string `json:"id" bson:"id"`
	Label string `json:"label,omitempty" bson:"label,omitempty"`
}

// Edge is an undirected relationship. From and To follow the emission
// order of the generator and carry no direction.
type Edge struct {
	From string `json:"from" bson:"from"`
	To   string `json:"to" bson:"to"`
	Type string `json:"type,omitempty" bson:"type,omitempty"`
}

// NodeCount returns the number of nodes.
func (g Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges.
func (g Graph) EdgeCount() int { return len(g.Edges) }

// Validate checks that node ids are unique and non-empty and that every
// edge references known nodes.
func (g Graph) Validate() error {
	ids := make(map[string]struct{}, len(g.Nodes))
	for i, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node %d: empty id", i)
		}
		if _, dup := ids[n.ID]; dup {
			return fmt.Errorf("node %d: duplicate id %q", i, n.ID)
		}
		ids[n.ID] = struct{}{}
	}
	for i, e := range g.Edges {
		if _, ok := ids[e.From]; !ok {
			return fmt.Errorf("edge %d: unknown node %q", i, e.From)
		}
		if _, ok := ids[e.To]; !ok {
			return fmt.Errorf("edge %d: unknown node %q", i, e.To)
		}
	}
	return nil
}
