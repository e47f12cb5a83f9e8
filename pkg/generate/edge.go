package generate

import (
	"github.com/matzehuels/synthgraph/pkg/errors"
)

// Edge is an undirected relationship between two node indices.
type Edge struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Normalized returns the edge with From <= To.
func (e Edge) Normalized() Edge {
	if e.From > e.To {
		return Edge{From: e.To, To: e.From}
	}
	return e
}

// key packs the unordered pair into a single map key.
func (e Edge) key() uint64 { return pairKey(e.From, e.To) }

func pairKey(a, b int) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(a)<<32 | uint64(uint32(b))
}

// EdgeList is an ordered list of edges. The order is the emission order
// of the generator and is reproducible for a fixed seed.
type EdgeList []Edge

// Check verifies that every endpoint lies in [0, n), that no edge is a
// self-loop and that no unordered pair repeats. Violations are
// INTERNAL_CONSISTENCY errors.
func (l EdgeList) Check(n int) error {
	seen := make(map[uint64]struct{}, len(l))
	for i, e := range l {
		if e.From < 0 || e.From >= n || e.To < 0 || e.To >= n {
			return errors.New(errors.ErrCodeInternalConsistency,
				"edge %d (%d, %d) references a node outside [0, %d)", i, e.From, e.To, n)
		}
		if e.From == e.To {
			return errors.New(errors.ErrCodeInternalConsistency, "edge %d is a self-loop on node %d", i, e.From)
		}
		k := e.key()
		if _, dup := seen[k]; dup {
			return errors.New(errors.ErrCodeInternalConsistency, "edge %d (%d, %d) is a duplicate", i, e.From, e.To)
		}
		seen[k] = struct{}{}
	}
	return nil
}

// Degrees returns the degree of every node in [0, n). Out-of-range
// endpoints are ignored.
func (l EdgeList) Degrees(n int) []int {
	deg := make([]int, n)
	for _, e := range l {
		if e.From >= 0 && e.From < n {
			deg[e.From]++
		}
		if e.To >= 0 && e.To < n {
			deg[e.To]++
		}
	}
	return deg
}

// maxPrealloc bounds up-front slice allocation for very large graphs.
const maxPrealloc = 1 << 22

func capHint(n int64) int {
	if n < 0 {
		return 0
	}
	return int(min(n, maxPrealloc))
}
