// Package sink materializes generated graphs in external stores.
//
// A [Sink] is the node/relationship factory the generation driver writes
// to. The driver creates every node first, then every relationship, and
// calls [Sink.Commit] at each batch boundary; a sink treats everything
// between two commits as one unit of work.
//
// # Adapters
//
//   - [Memory]: keeps the graph in memory; node ids are "0".."n-1"
//   - [SQLite]: nodes and relationships tables, one transaction per batch
//   - [Redis]: node hashes and relationship lists, one MULTI/EXEC per batch
//   - [Mongo]: nodes and relationships collections, one InsertMany per batch
//   - [Badger]: one write batch per commit, optionally in memory
//
// The persistent adapters assign random UUIDs as node ids. All failures
// are returned as SINK_FAILURE errors; sinks never retry.
//
// # Usage
//
//	s, err := sink.Open(ctx, sink.Options{Kind: sink.KindSQLite, Path: "graph.db"})
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//	result, err := runner.Execute(ctx, opts, s)
package sink
