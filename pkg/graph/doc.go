// Package graph provides the serialization format of a materialized graph.
//
// A [Graph] is what a sink holds after a generation run: the created nodes,
// identified by the ids the sink assigned, and the undirected relationships
// between them. The in-memory sink exposes its contents as a Graph; the CLI
// writes it as JSON or hands it to the node-link renderer.
//
// # JSON format
//
//	{
//	  "nodes": [{"id": "0", "label": "Person"}, {"id": "1", "label": "Person"}],
//	  "edges": [{"from": "0", "to": "1", "type": "FRIEND_OF"}]
//	}
//
// Nodes appear in creation order and edges in emission order, so the
// output of a seeded run is byte-for-byte reproducible.
//
// # Statistics
//
// [ComputeStats] summarizes the degree distribution of a graph; the CLI
// prints it after every run.
package graph
