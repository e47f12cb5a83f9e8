package degree

import (
	"github.com/matzehuels/synthgraph/pkg/errors"
)

// IsGraphical reports whether s is realizable by a simple undirected graph.
// It is the Erdős–Gallai test.
func IsGraphical(s Sequence) bool { return ErdosGallai(s) }

// ErdosGallai reports whether s passes the Erdős–Gallai test.
//
// On a descending copy d[0..L-1] the test rejects negative entries and an
// odd sum, then checks for every k in 1..L that
//
//	Σ_{i<k} d[i] ≤ k(k-1) + Σ_{j≥k} min(k, d[j])
//
// The check is O(L²) and runs once per configuration.
func ErdosGallai(s Sequence) bool { return Check(s) == nil }

// Check runs the Erdős–Gallai test and returns an INVALID_CONFIG error that
// names the first violated constraint, or nil if s is graphical.
func Check(s Sequence) error {
	for i, d := range s.degrees {
		if d < 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "degree sequence: negative degree %d at index %d", d, i)
		}
	}
	if total := s.Sum(); total%2 != 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "degree sequence: sum %d is odd", total)
	}

	w := s.Mutable()
	w.SortDescending()
	d := w.degrees
	n := len(d)

	var lhs int64
	for k := 1; k <= n; k++ {
		lhs += int64(d[k-1])
		rhs := int64(k) * int64(k-1)
		for j := k; j < n; j++ {
			rhs += int64(min(k, d[j]))
		}
		if lhs > rhs {
			return errors.New(errors.ErrCodeInvalidConfig,
				"degree sequence: Erdős–Gallai inequality fails at k=%d (%d > %d)", k, lhs, rhs)
		}
	}
	return nil
}

// HavelHakimi reports whether s is graphical using the Havel–Hakimi
// reduction: repeatedly remove the largest remaining degree d0 and subtract
// one from the next d0 largest entries, failing when a decrement target is
// missing or an entry would go negative.
func HavelHakimi(s Sequence) bool {
	w := s.Mutable()
	for i := 0; i < w.Len(); i++ {
		if w.At(i) < 0 {
			return false
		}
	}

	for {
		w.SortDescending()
		if w.Len() == 0 || w.At(0) == 0 {
			return true
		}
		d0 := w.At(0)
		w.Set(0, 0)
		if d0 > w.Len()-1 {
			return false
		}
		for i := 1; i <= d0; i++ {
			if w.At(i) == 0 {
				return false
			}
			w.Decrease(i)
		}
	}
}
