package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"

	"github.com/matzehuels/synthgraph/pkg/cache"
	"github.com/matzehuels/synthgraph/pkg/errors"
	"github.com/matzehuels/synthgraph/pkg/generate"
	"github.com/matzehuels/synthgraph/pkg/graph"
	"github.com/matzehuels/synthgraph/pkg/model"
	"github.com/matzehuels/synthgraph/pkg/observability"
	"github.com/matzehuels/synthgraph/pkg/sink"
)

// Runner executes generation runs with caching support.
// Both the CLI and the HTTP API use a Runner; they differ only in the
// cache backend and the sink they pass in.
type Runner struct {
	Registry *generate.Registry
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger

	// EdgesTTL is the expiry of cached edge lists. Zero means cache.TTLEdges.
	EdgesTTL time.Duration

	flight singleflight.Group
}

// NewRunner creates a runner with the given cache, keyer and logger.
// A nil cache disables caching, a nil keyer uses the default keyer and a
// nil logger discards output.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{
		Registry: generate.DefaultRegistry(),
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
	}
}

// Close releases the runner's cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) edgesTTL() time.Duration {
	if r.EdgesTTL > 0 {
		return r.EdgesTTL
	}
	return cache.TTLEdges
}

// applyLogger lets per-run options override the runner's logger.
func (r *Runner) applyLogger(opts *Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// =============================================================================
// Generate Stage
// =============================================================================

// Generate validates opts and returns the edge list of the configured model.
func (r *Runner) Generate(ctx context.Context, opts Options) (generate.EdgeList, error) {
	edges, _, err := r.GenerateWithCacheInfo(ctx, opts)
	return edges, err
}

// GenerateWithCacheInfo is like Generate but also reports whether the edge
// list was served from the cache. Cache failures are logged and never fail
// the run.
func (r *Runner) GenerateWithCacheInfo(ctx context.Context, opts Options) (generate.EdgeList, bool, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	logger := r.applyLogger(&opts)
	cfg := opts.Config()
	key := r.Keyer.EdgesKey(opts.Model, opts.EdgesKeyOpts())

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			logger.Warn("cache lookup failed", "error", err)
		}
		if hit {
			var edges generate.EdgeList
			if err := json.Unmarshal(data, &edges); err == nil && edges.Check(cfg.NumberOfNodes()) == nil {
				observability.Cache().OnCacheHit(ctx, "edges")
				logger.Debug("edge list cache hit", "model", opts.Model, "edges", len(edges))
				return edges, true, nil
			}
			logger.Warn("discarding corrupt cache entry", "key", key)
		}
		observability.Cache().OnCacheMiss(ctx, "edges")
	}

	v, err, shared := r.flight.Do(key, func() (any, error) {
		return r.generate(ctx, opts, cfg, key, logger)
	})
	if err != nil {
		return nil, false, err
	}
	edges := v.(generate.EdgeList)
	if shared {
		edges = slices.Clone(edges)
	}
	return edges, false, nil
}

// generate runs the generator and stores the edge list. Concurrent misses
// for the same key share one call.
func (r *Runner) generate(ctx context.Context, opts Options, cfg model.Config, key string, logger *log.Logger) (generate.EdgeList, error) {
	hooks := observability.Generation()
	hooks.OnGenerateStart(ctx, opts.Model, cfg.NumberOfNodes())
	start := time.Now()
	edges, err := r.Registry.GenerateValidated(cfg, generate.NewRand(opts.Seed))
	if err == nil {
		err = edges.Check(cfg.NumberOfNodes())
	}
	hooks.OnGenerateComplete(ctx, opts.Model, len(edges), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	logger.Debug("generated edges", "model", opts.Model, "edges", len(edges), "duration", time.Since(start))

	if data, err := json.Marshal(edges); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.edgesTTL()); err != nil {
			logger.Warn("cache store failed", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "edges", len(data))
		}
	}
	return edges, nil
}

// =============================================================================
// Execute - Full Run Into a Sink
// =============================================================================

// Execute validates opts, generates the edge list and materializes it into
// s. Every CreateNode call precedes every CreateRelationship call, and both
// phases commit every BatchSize operations and once more at the end of the
// phase when operations are pending.
//
// A configuration or generation error is returned before s is touched.
// Errors returned by s are wrapped as SINK_FAILURE. ctx is checked before
// each batch; on cancellation the context error is returned and the sink is
// left with the batches already committed. Execute never closes s.
func (r *Runner) Execute(ctx context.Context, opts Options, s sink.Sink) (*Result, error) {
	if s == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil sink")
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.applyLogger(&opts)

	ctx, span := observability.Tracer().Start(ctx, "synthgraph.execute",
		trace.WithAttributes(
			attribute.String("model", opts.Model),
			attribute.Int("batch_size", opts.BatchSize),
		))
	defer span.End()

	result, err := r.execute(ctx, &opts, s, logger)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("nodes", result.Nodes),
		attribute.Int("edges", result.Edges),
		attribute.Bool("cache_hit", result.CacheHit),
	)
	return result, nil
}

func (r *Runner) execute(ctx context.Context, opts *Options, s sink.Sink, logger *log.Logger) (*Result, error) {
	result := &Result{}
	result.Model = opts.Config().Model()
	n := opts.Config().NumberOfNodes()

	// Stage 1: Generate
	start := time.Now()
	edges, hit, err := r.GenerateWithCacheInfo(ctx, *opts)
	if err != nil {
		return nil, err
	}
	result.EdgeList = edges
	result.CacheHit = hit
	result.Stats.GenerateTime = time.Since(start)
	logger.Info("generated graph", "model", opts.String(), "nodes", n, "edges", len(edges), "cached", hit)

	// Stage 2: Nodes
	b := &batcher{sink: s, size: opts.BatchSize}
	ids := make([]sink.NodeID, 0, n)
	b.phase = observability.PhaseNodes
	err = r.runPhase(ctx, b, n, func(i int) error {
		id, err := s.CreateNode(ctx, opts.Label)
		if err != nil {
			return sinkFailure(ctx, err, "create node %d", i)
		}
		ids = append(ids, id)
		return nil
	})
	result.Stats.NodeTime = b.elapsed
	if err != nil {
		return nil, err
	}
	if len(ids) != n {
		return nil, errors.New(errors.ErrCodeInternalConsistency, "created %d nodes, want %d", len(ids), n)
	}
	result.NodeIDs = ids
	result.Nodes = n
	logger.Info("created nodes", "label", opts.Label, "count", n, "duration", b.elapsed)

	// Stage 3: Relationships
	b.phase = observability.PhaseRelationships
	err = r.runPhase(ctx, b, len(edges), func(i int) error {
		e := edges[i]
		if err := s.CreateRelationship(ctx, ids[e.From], ids[e.To], opts.RelType); err != nil {
			return sinkFailure(ctx, err, "create relationship %d-%d", e.From, e.To)
		}
		return nil
	})
	result.Stats.EdgeTime = b.elapsed
	if err != nil {
		return nil, err
	}
	result.Edges = len(edges)
	result.Stats.Batches = b.commits
	logger.Info("created relationships", "type", opts.RelType, "count", len(edges), "batches", b.commits, "duration", b.elapsed)

	return result, nil
}

// runPhase calls op for 0..total-1, committing through b.
func (r *Runner) runPhase(ctx context.Context, b *batcher, total int, op func(i int) error) error {
	hooks := observability.Generation()
	hooks.OnPhaseStart(ctx, b.phase, total)
	start := time.Now()
	done, err := b.run(ctx, total, op)
	b.elapsed = time.Since(start)
	hooks.OnPhaseComplete(ctx, b.phase, done, b.elapsed, err)
	return err
}

// batcher groups sink operations into commits.
type batcher struct {
	sink    sink.Sink
	size    int
	phase   string
	commits int
	elapsed time.Duration
}

func (b *batcher) run(ctx context.Context, total int, op func(i int) error) (int, error) {
	for lo := 0; lo < total; lo += b.size {
		if err := ctx.Err(); err != nil {
			return lo, err
		}
		hi := min(lo+b.size, total)
		for i := lo; i < hi; i++ {
			if err := op(i); err != nil {
				return i, err
			}
		}
		if err := b.commit(ctx, hi-lo); err != nil {
			return lo, err
		}
	}
	return total, nil
}

func (b *batcher) commit(ctx context.Context, size int) error {
	start := time.Now()
	if err := b.sink.Commit(ctx); err != nil {
		return sinkFailure(ctx, err, "commit %s batch %d", b.phase, b.commits+1)
	}
	b.commits++
	observability.Sink().OnBatchCommit(ctx, b.phase, b.commits, size, time.Since(start))
	return nil
}

// sinkFailure reports err to the sink hooks and wraps it as SINK_FAILURE
// unless the sink already returned a coded error.
func sinkFailure(ctx context.Context, err error, format string, args ...any) error {
	op := fmt.Sprintf(format, args...)
	observability.Sink().OnSinkError(ctx, op, err)
	if errors.GetCode(err) == errors.ErrCodeSinkFailure {
		return err
	}
	return errors.Wrap(errors.ErrCodeSinkFailure, err, "%s", op)
}

// =============================================================================
// Result Methods
// =============================================================================

// Graph materializes the result as a graph with the given node label and
// relationship type, using the sink-assigned ids.
func (res *Result) Graph(label, relType string) graph.Graph {
	g := graph.Graph{
		Nodes: make([]graph.Node, len(res.NodeIDs)),
		Edges: make([]graph.Edge, len(res.EdgeList)),
	}
	for i, id := range res.NodeIDs {
		g.Nodes[i] = graph.Node{ID: string(id), Label: label}
	}
	for i, e := range res.EdgeList {
		g.Edges[i] = graph.Edge{From: string(res.NodeIDs[e.From]), To: string(res.NodeIDs[e.To]), Type: relType}
	}
	return g
}
