package sink

import (
	"context"
	"slices"
	"strconv"
	"sync"

	"github.com/matzehuels/synthgraph/pkg/errors"
	"github.com/matzehuels/synthgraph/pkg/graph"
)

// Memory is an in-memory sink. Node ids are the decimal creation index.
// It is safe for concurrent use.
type Memory struct {
	mu      sync.Mutex
	nodes   []graph.Node
	edges   []graph.Edge
	commits int
	closed  bool
}

// NewMemory returns an empty in-memory sink.
func NewMemory() *Memory {
	return &Memory{}
}

// CreateNode appends a node.
func (m *Memory) CreateNode(_ context.Context, label string) (NodeID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return "", errors.New(errors.ErrCodeSinkFailure, "memory sink is closed")
	}
	id := strconv.Itoa(len(m.nodes))
	m.nodes = append(m.nodes, graph.Node{ID: id, Label: label})
	return NodeID(id), nil
}

// CreateRelationship appends a relationship between two known nodes.
func (m *Memory) CreateRelationship(_ context.Context, from, to NodeID, relType string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return errors.New(errors.ErrCodeSinkFailure, "memory sink is closed")
	}
	for _, id := range []NodeID{from, to} {
		if !m.known(id) {
			return errors.New(errors.ErrCodeSinkFailure, "relationship references unknown node %q", id)
		}
	}
	m.edges = append(m.edges, graph.Edge{From: string(from), To: string(to), Type: relType})
	return nil
}

func (m *Memory) known(id NodeID) bool {
	i, err := strconv.Atoi(string(id))
	return err == nil && i >= 0 && i < len(m.nodes) && strconv.Itoa(i) == string(id)
}

// Commit counts the batch boundary.
func (m *Memory) Commit(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commits++
	return nil
}

// Close marks the sink closed. The collected graph stays readable.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Commits returns the number of Commit calls.
func (m *Memory) Commits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commits
}

// Graph returns a copy of the collected graph.
func (m *Memory) Graph() graph.Graph {
	m.mu.Lock()
	defer m.mu.Unlock()
	return graph.Graph{
		Nodes: slices.Clone(m.nodes),
		Edges: slices.Clone(m.edges),
	}
}

var _ Sink = (*Memory)(nil)
