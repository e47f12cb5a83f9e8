// Package pkg is the root of synthgraph's library packages.
//
// synthgraph generates synthetic undirected graphs from classic random
// graph models and writes them into a storage sink in batches.
//
// # Architecture
//
//	[model]      parse model names, validate parameters
//	     ↓
//	[generate]   produce a deterministic edge list from a seed
//	     ↓
//	[pipeline]   create nodes, then relationships, committing per batch
//	     ↓
//	[sink]       memory, SQLite, Redis, MongoDB or Badger
//
// # Quick Start
//
//	r := pipeline.NewRunner(nil, nil, nil)
//	res, err := r.Execute(ctx, pipeline.Options{
//	    Model: "erdos-renyi",
//	    Nodes: 1000,
//	    Edges: 5000,
//	}, sink.NewMemory())
//
// # Main Packages
//
// [degree] - Degree sequence checks (Erdős–Gallai, Havel–Hakimi).
//
// [model] - Model catalog, name parsing and per-model configuration rules.
//
// [generate] - Edge generators for complete, Erdős–Rényi G(n,m),
// Barabási–Albert, Watts–Strogatz and degree-distribution graphs.
//
// [pipeline] - The batched driver, edge-list caching and rendering.
//
// [sink] - Storage backends receiving nodes and relationships.
//
// [config] - Config files and multi-run plans (TOML or YAML).
//
// [graph] - JSON node-link serialization and degree statistics.
//
// [render/nodelink] - Graphviz DOT and SVG output.
//
// [cache] - File, Redis and null caches for generated edge lists.
//
// [observability] - Hooks and OpenTelemetry tracing for runs.
//
// [errors] - Error codes shared by the CLI and the HTTP server.
//
// [degree]: https://pkg.go.dev/github.com/matzehuels/synthgraph/pkg/degree
// [model]: https://pkg.go.dev/github.com/matzehuels/synthgraph/pkg/model
// [generate]: https://pkg.go.dev/github.com/matzehuels/synthgraph/pkg/generate
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/synthgraph/pkg/pipeline
// [sink]: https://pkg.go.dev/github.com/matzehuels/synthgraph/pkg/sink
// [config]: https://pkg.go.dev/github.com/matzehuels/synthgraph/pkg/config
// [graph]: https://pkg.go.dev/github.com/matzehuels/synthgraph/pkg/graph
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/synthgraph/pkg/render/nodelink
// [cache]: https://pkg.go.dev/github.com/matzehuels/synthgraph/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/synthgraph/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/synthgraph/pkg/errors
package pkg
