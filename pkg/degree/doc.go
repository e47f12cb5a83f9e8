// Package degree provides degree sequences and graphicality tests.
//
// # Overview
//
// A degree sequence lists, for every node index 0..N-1, the number of
// edges that node must carry in a generated graph. A sequence is graphical
// when some simple undirected graph (no self-loops, no parallel edges)
// realizes it exactly.
//
// The package offers two representations:
//
//   - [Sequence]: the immutable, caller-facing value. It is copied on
//     construction and never changes afterwards.
//   - [Mutable]: a private working copy used by the tests in this package
//     and by the configuration-model generator. It supports [Mutable.Set],
//     [Mutable.Decrease] and [Mutable.Sort].
//
// # Graphicality
//
// [ErdosGallai] checks the Erdős–Gallai inequalities on a descending copy
// of the sequence. [HavelHakimi] runs the constructive greedy reduction and
// reports whether it reaches the all-zero sequence. Both return the same
// verdict for every input; [Check] additionally reports which constraint
// failed.
//
//	s := degree.New(2, 2, 2, 2)
//	degree.ErdosGallai(s) // true: the 4-cycle
//	degree.HavelHakimi(s) // true
//
// The empty sequence is graphical: the graph with no nodes realizes it.
//
// Neither test mutates its argument.
package degree
