// Package generate turns a validated model configuration into an edge list.
//
// Generators emit edges as pairs of 0-based node indices; they know nothing
// about node identities or sinks. The driver in package pipeline maps
// indices to created nodes.
//
// # Generators
//
// There is exactly one [Generator] per [model.Model]; the interface is
// sealed. A [Registry] maps model tags to generators and is constructed
// explicitly, so independent runs never share mutable state:
//
//	reg := generate.DefaultRegistry()
//	edges, err := reg.Generate(model.ErdosRenyi(10, 20), generate.NewRand(42))
//
// Every edge list satisfies [EdgeList.Check]: endpoints are in range, there
// are no self-loops and no unordered pair appears twice.
//
// # Randomness
//
// Randomized generators draw exclusively from the *rand.Rand passed in. Two
// runs with the same configuration and seed produce identical edge lists.
// Use [NewRand] to create one source per run.
package generate
