// Package pipeline drives graph generation into a sink.
//
// This package implements the validate → generate → create nodes → create
// relationships sequence used by the CLI, the HTTP API and plan files. By
// centralizing it, every entry point shares the same defaults, batching
// and error semantics.
//
// # Architecture
//
// A run has three stages:
//
//  1. Generate: validate the options, build the model configuration and
//     produce the edge list (served from the cache when possible)
//  2. Nodes: call CreateNode exactly once per node, committing every
//     BatchSize calls, and record the returned ids by index
//  3. Relationships: call CreateRelationship once per edge with both
//     endpoints resolved through the id table, batching the same way
//
// Every node is created before the first relationship. Cancellation is
// observed between batches only; a generator call is never interrupted.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Model: "erdos-renyi",
//	    Nodes: 10,
//	    Edges: 20,
//	}
//	result, err := runner.Execute(ctx, opts, sink.NewMemory())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Nodes, result.Edges)
package pipeline

import (
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/synthgraph/pkg/cache"
	"github.com/matzehuels/synthgraph/pkg/errors"
	"github.com/matzehuels/synthgraph/pkg/generate"
	"github.com/matzehuels/synthgraph/pkg/model"
	"github.com/matzehuels/synthgraph/pkg/sink"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Plan Files
// =============================================================================

const (
	// DefaultNodes is the node count of the node-count based models.
	DefaultNodes = 1000

	// DefaultEdges is the Erdős–Rényi edge count.
	DefaultEdges = int64(10000)

	// DefaultEdgesPerNewNode is the Barabási–Albert attachment count.
	DefaultEdgesPerNewNode = 2

	// DefaultMeanDegree is the Watts–Strogatz lattice degree.
	DefaultMeanDegree = 4

	// DefaultBeta is the Watts–Strogatz rewiring probability.
	DefaultBeta = 0.5

	// DefaultLabel is the label of created nodes.
	DefaultLabel = "Person"

	// DefaultRelType is the type of created relationships.
	DefaultRelType = "FRIEND_OF"

	// DefaultBatchSize is the number of sink operations per commit.
	DefaultBatchSize = 10000

	// DefaultSeed is the default random seed for reproducibility.
	DefaultSeed = uint64(42)
)

// DefaultDegrees returns the default degree sequence of the distribution
// model, a 4-cycle.
func DefaultDegrees() []int { return []int{2, 2, 2, 2} }

// Format constants for rendered output.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, dot, svg)", format)
	}
	return nil
}

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options contains all configuration for one generation run.
// This struct supports JSON serialization for API requests and plan files.
type Options struct {
	// Model is a model tag or alias accepted by model.ParseModel.
	Model string `json:"model" toml:"model" yaml:"model"`

	// Model parameters; only those of the selected model are used.
	Nodes           int      `json:"nodes,omitempty" toml:"nodes" yaml:"nodes"`
	Edges           int64    `json:"edges,omitempty" toml:"edges" yaml:"edges"`
	EdgesPerNewNode int      `json:"edges_per_new_node,omitempty" toml:"edges_per_new_node" yaml:"edges_per_new_node"`
	MeanDegree      int      `json:"mean_degree,omitempty" toml:"mean_degree" yaml:"mean_degree"`
	Beta            *float64 `json:"beta,omitempty" toml:"beta" yaml:"beta"`
	Degrees         []int    `json:"degrees,omitempty" toml:"degrees" yaml:"degrees"`

	// Sink pass-through options; they never influence generation.
	Label     string `json:"label,omitempty" toml:"label" yaml:"label"`
	RelType   string `json:"rel_type,omitempty" toml:"rel_type" yaml:"rel_type"`
	BatchSize int    `json:"batch_size,omitempty" toml:"batch_size" yaml:"batch_size"`

	Seed    uint64 `json:"seed,omitempty" toml:"seed" yaml:"seed"`
	Refresh bool   `json:"refresh,omitempty" toml:"refresh" yaml:"refresh"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-" yaml:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outcome of a run.
type Result struct {
	// Model is the canonical model tag.
	Model model.Model

	// Nodes and Edges are the numbers of CreateNode and
	// CreateRelationship calls made.
	Nodes int
	Edges int

	// NodeIDs maps node index to the id the sink assigned.
	NodeIDs []sink.NodeID

	// EdgeList is the generated edge list in emission order.
	EdgeList generate.EdgeList

	// Stats contains timing and batching information.
	Stats Stats

	// CacheHit reports whether the edge list came from the cache.
	CacheHit bool
}

// Stats contains run statistics.
type Stats struct {
	GenerateTime time.Duration
	NodeTime     time.Duration
	EdgeTime     time.Duration
	// Batches is the number of Commit calls across both phases.
	Batches int
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults resolves the model tag, applies defaults and
// validates the resulting configuration. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	m, err := model.ParseModel(o.Model)
	if err != nil {
		return err
	}
	o.Model = string(m)
	o.SetModelDefaults()
	o.SetSinkDefaults()

	if err := errors.ValidateTag("label", o.Label); err != nil {
		return err
	}
	if err := errors.ValidateTag("relationship type", o.RelType); err != nil {
		return err
	}
	if err := errors.ValidateBatchSize(o.BatchSize); err != nil {
		return err
	}
	if err := o.Config().Validate(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetModelDefaults fills unset parameters of the selected model.
func (o *Options) SetModelDefaults() {
	switch model.Model(o.Model) {
	case model.ModelComplete:
		o.Nodes = orDefault(o.Nodes, DefaultNodes)
	case model.ModelErdosRenyi:
		o.Nodes = orDefault(o.Nodes, DefaultNodes)
		o.Edges = orDefault(o.Edges, DefaultEdges)
	case model.ModelBarabasiAlbert:
		o.Nodes = orDefault(o.Nodes, DefaultNodes)
		o.EdgesPerNewNode = orDefault(o.EdgesPerNewNode, DefaultEdgesPerNewNode)
	case model.ModelWattsStrogatz:
		o.Nodes = orDefault(o.Nodes, DefaultNodes)
		o.MeanDegree = orDefault(o.MeanDegree, DefaultMeanDegree)
		if o.Beta == nil {
			beta := DefaultBeta
			o.Beta = &beta
		}
	case model.ModelDistribution:
		if o.Degrees == nil {
			o.Degrees = DefaultDegrees()
		}
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
}

// SetSinkDefaults fills unset sink pass-through options and the logger.
func (o *Options) SetSinkDefaults() {
	if o.Label == "" {
		o.Label = DefaultLabel
	}
	if o.RelType == "" {
		o.RelType = DefaultRelType
	}
	if o.BatchSize == 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Config builds the model configuration. Call ValidateAndSetDefaults
// first; an unknown model yields a nil Config.
func (o *Options) Config() model.Config {
	switch model.Model(o.Model) {
	case model.ModelComplete:
		return model.Complete(o.Nodes)
	case model.ModelErdosRenyi:
		return model.ErdosRenyi(o.Nodes, o.Edges)
	case model.ModelBarabasiAlbert:
		return model.BarabasiAlbert(o.Nodes, o.EdgesPerNewNode)
	case model.ModelWattsStrogatz:
		return model.WattsStrogatz(o.Nodes, o.MeanDegree, o.beta())
	case model.ModelDistribution:
		return model.Distribution(o.Degrees...)
	}
	return nil
}

// NodeCount returns the node count of the selected model without
// validating the parameters. Call SetModelDefaults first.
func (o *Options) NodeCount() int {
	if model.Model(o.Model) == model.ModelDistribution {
		return len(o.Degrees)
	}
	return o.Nodes
}

// EdgeCount returns the number of edges the selected model produces for
// valid parameters. It runs in time linear in the degree list and never
// validates, so it can bound a request before validation. Call
// SetModelDefaults first.
func (o *Options) EdgeCount() *big.Int {
	n := big.NewInt(int64(o.Nodes))
	two := big.NewInt(2)
	switch model.Model(o.Model) {
	case model.ModelComplete:
		return model.MaxSimpleEdges(o.Nodes)
	case model.ModelErdosRenyi:
		return big.NewInt(o.Edges)
	case model.ModelBarabasiAlbert:
		m := big.NewInt(int64(o.EdgesPerNewNode))
		seed := new(big.Int).Mul(m, new(big.Int).Sub(m, big.NewInt(1)))
		seed.Quo(seed, two)
		rest := new(big.Int).Mul(new(big.Int).Sub(n, m), m)
		return seed.Add(seed, rest)
	case model.ModelWattsStrogatz:
		e := new(big.Int).Mul(n, big.NewInt(int64(o.MeanDegree)))
		return e.Quo(e, two)
	case model.ModelDistribution:
		sum := new(big.Int)
		for _, d := range o.Degrees {
			sum.Add(sum, big.NewInt(int64(d)))
		}
		return sum.Quo(sum, two)
	}
	return new(big.Int)
}

func (o *Options) beta() float64 {
	if o.Beta == nil {
		return DefaultBeta
	}
	return *o.Beta
}

// EdgesKeyOpts returns the cache key inputs of the selected model.
func (o *Options) EdgesKeyOpts() cache.EdgesKeyOpts {
	k := cache.EdgesKeyOpts{Seed: o.Seed}
	switch model.Model(o.Model) {
	case model.ModelComplete:
		k.Nodes = o.Nodes
	case model.ModelErdosRenyi:
		k.Nodes, k.Edges = o.Nodes, o.Edges
	case model.ModelBarabasiAlbert:
		k.Nodes, k.EdgesPerNewNode = o.Nodes, o.EdgesPerNewNode
	case model.ModelWattsStrogatz:
		k.Nodes, k.MeanDegree, k.Beta = o.Nodes, o.MeanDegree, o.beta()
	case model.ModelDistribution:
		k.Degrees = o.Degrees
	}
	return k
}

// String describes the run for log output.
func (o *Options) String() string {
	switch model.Model(o.Model) {
	case model.ModelErdosRenyi:
		return fmt.Sprintf("%s(n=%d, m=%d)", o.Model, o.Nodes, o.Edges)
	case model.ModelBarabasiAlbert:
		return fmt.Sprintf("%s(n=%d, m=%d)", o.Model, o.Nodes, o.EdgesPerNewNode)
	case model.ModelWattsStrogatz:
		return fmt.Sprintf("%s(n=%d, k=%d, beta=%g)", o.Model, o.Nodes, o.MeanDegree, o.beta())
	case model.ModelDistribution:
		return fmt.Sprintf("%s(%v)", o.Model, o.Degrees)
	}
	return fmt.Sprintf("%s(n=%d)", o.Model, o.Nodes)
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
