package degree

import (
	"cmp"
	"slices"
)

// Sequence is an immutable list of per-node target degrees.
// The zero value is the empty sequence.
type Sequence struct {
	degrees []int
}

// New returns a Sequence holding a copy of degrees.
func New(degrees ...int) Sequence {
	return Sequence{degrees: slices.Clone(degrees)}
}

// Len returns the number of nodes in the sequence.
func (s Sequence) Len() int { return len(s.degrees) }

// At returns the target degree of node i.
func (s Sequence) At(i int) int { return s.degrees[i] }

// Degrees returns a copy of the underlying degrees.
func (s Sequence) Degrees() []int { return slices.Clone(s.degrees) }

// Sum returns the total of all degrees, twice the edge count of any
// realizing graph.
func (s Sequence) Sum() int64 { return sum(s.degrees) }

// Max returns the largest degree, or 0 for the empty sequence.
func (s Sequence) Max() int {
	if len(s.degrees) == 0 {
		return 0
	}
	return slices.Max(s.degrees)
}

// Mutable returns a fresh working copy of the sequence.
func (s Sequence) Mutable() *Mutable {
	return &Mutable{degrees: slices.Clone(s.degrees)}
}

// Mutable is a working copy of a degree sequence that supports in-place
// updates. It is owned by a single validity check or generation run and
// must not be shared.
type Mutable struct {
	degrees []int
}

// NewMutable returns a Mutable holding a copy of degrees.
func NewMutable(degrees ...int) *Mutable {
	return &Mutable{degrees: slices.Clone(degrees)}
}

// Len returns the number of entries.
func (m *Mutable) Len() int { return len(m.degrees) }

// At returns entry i.
func (m *Mutable) At(i int) int { return m.degrees[i] }

// Set overwrites entry i with v.
func (m *Mutable) Set(i, v int) { m.degrees[i] = v }

// Decrease decrements entry i by one, consuming one degree unit.
func (m *Mutable) Decrease(i int) { m.degrees[i]-- }

// Sort orders the entries with cmp, which follows the slices.SortFunc
// convention.
func (m *Mutable) Sort(cmp func(a, b int) int) { slices.SortFunc(m.degrees, cmp) }

// SortDescending orders the entries from largest to smallest, the
// precondition of both graphicality tests.
func (m *Mutable) SortDescending() { m.Sort(descending) }

// Sum returns the total of all entries.
func (m *Mutable) Sum() int64 { return sum(m.degrees) }

// Freeze returns an immutable snapshot of the current entries.
func (m *Mutable) Freeze() Sequence { return New(m.degrees...) }

func descending(a, b int) int { return cmp.Compare(b, a) }

func sum(ds []int) int64 {
	var total int64
	for _, d := range ds {
		total += int64(d)
	}
	return total
}
