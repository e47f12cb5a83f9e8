package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/synthgraph/pkg/errors"
	"github.com/matzehuels/synthgraph/pkg/model"
	"github.com/matzehuels/synthgraph/pkg/pipeline"
	"github.com/matzehuels/synthgraph/pkg/render/nodelink"
	"github.com/matzehuels/synthgraph/pkg/sink"
)

// modelSpec describes one generation subcommand.
type modelSpec struct {
	model model.Model
	use   string
	short string
	long  string
	// flags registers the model parameters on cmd.
	flags func(cmd *cobra.Command, opts *pipeline.Options)
}

var modelCommands = []modelSpec{
	{
		model: model.ModelComplete,
		use:   "complete",
		short: "Generate a complete graph",
		long:  "Generate a complete graph: every pair of distinct nodes is connected.",
		flags: func(cmd *cobra.Command, opts *pipeline.Options) {
			cmd.Flags().IntVarP(&opts.Nodes, "nodes", "n", pipeline.DefaultNodes, "number of nodes (>= 2)")
		},
	},
	{
		model: model.ModelErdosRenyi,
		use:   "erdos-renyi",
		short: "Generate an Erdős–Rényi G(n,m) graph",
		long:  "Generate a graph with exactly m edges chosen uniformly among all node pairs.",
		flags: func(cmd *cobra.Command, opts *pipeline.Options) {
			cmd.Flags().IntVarP(&opts.Nodes, "nodes", "n", pipeline.DefaultNodes, "number of nodes (>= 2)")
			cmd.Flags().Int64VarP(&opts.Edges, "edges", "m", pipeline.DefaultEdges, "number of edges (<= n(n-1)/2)")
		},
	},
	{
		model: model.ModelBarabasiAlbert,
		use:   "barabasi-albert",
		short: "Generate a Barabási–Albert preferential attachment graph",
		long: `Generate a scale-free graph. The first edges-per-new-node nodes form a clique
of m(m-1)/2 edges; every later node attaches to m distinct existing nodes with
probability proportional to their degree, for m(m-1)/2 + (n-m)m edges in total.`,
		flags: func(cmd *cobra.Command, opts *pipeline.Options) {
			cmd.Flags().IntVarP(&opts.Nodes, "nodes", "n", pipeline.DefaultNodes, "number of nodes (>= 2)")
			cmd.Flags().IntVarP(&opts.EdgesPerNewNode, "edges-per-new-node", "m", pipeline.DefaultEdgesPerNewNode, "edges added per new node (>= 1)")
		},
	},
	{
		model: model.ModelWattsStrogatz,
		use:   "watts-strogatz",
		short: "Generate a Watts–Strogatz small-world graph",
		long: `Generate a ring lattice where every node connects to its mean-degree nearest
neighbours, then rewire each lattice edge with probability beta.`,
		flags: func(cmd *cobra.Command, opts *pipeline.Options) {
			cmd.Flags().IntVarP(&opts.Nodes, "nodes", "n", pipeline.DefaultNodes, "number of nodes (>= 2)")
			cmd.Flags().IntVarP(&opts.MeanDegree, "mean-degree", "k", pipeline.DefaultMeanDegree, "lattice degree (even, >= 4, <= n-1)")
			cmd.Flags().Float64("beta", pipeline.DefaultBeta, "rewiring probability in [0, 1]")
		},
	},
	{
		model: model.ModelDistribution,
		use:   "simple [degree...]",
		short: "Generate a simple graph realizing a degree sequence",
		long: `Generate a simple graph whose node i has exactly the i-th degree of the given
sequence. The sequence must be graphical (see 'synthgraph degrees').`,
		flags: func(cmd *cobra.Command, opts *pipeline.Options) {
			cmd.Flags().IntSliceVar(&opts.Degrees, "degrees", nil, "degree sequence (default 2,2,2,2)")
		},
	},
}

// outputFlags holds the flags shared by every generation command.
type outputFlags struct {
	sink     sink.Options
	format   string
	output   string
	engine   string
	detailed bool
	noCache  bool
}

// modelCommand creates a generation subcommand.
func (c *CLI) modelCommand(spec modelSpec) *cobra.Command {
	opts := pipeline.Options{Model: string(spec.model)}
	var out outputFlags

	cmd := &cobra.Command{
		Use:     spec.use,
		Aliases: commandAliases(spec),
		Short:   spec.short,
		Long:    spec.long,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			run := opts
			if spec.model == model.ModelWattsStrogatz {
				beta, _ := cmd.Flags().GetFloat64("beta")
				run.Beta = &beta
			}
			if len(args) > 0 {
				degrees, err := parseDegrees(args)
				if err != nil {
					return err
				}
				run.Degrees = degrees
			}
			return c.runGenerate(cmd.Context(), run, out)
		},
	}
	if spec.model == model.ModelDistribution {
		cmd.Args = cobra.ArbitraryArgs
	}

	spec.flags(cmd, &opts)

	cmd.Flags().StringVar(&opts.Label, "label", "", "node label (default Person)")
	cmd.Flags().StringVar(&opts.RelType, "rel-type", "", "relationship type (default FRIEND_OF)")
	cmd.Flags().IntVar(&opts.BatchSize, "batch-size", 0, "sink operations per commit (default 10000)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed (default 42)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "regenerate even when the edge list is cached")

	cmd.Flags().StringVar((*string)(&out.sink.Kind), "sink", "", "sink: memory, sqlite, redis, mongo, badger (default from config)")
	cmd.Flags().StringVar(&out.sink.Path, "sink-path", "", "sqlite database file or badger directory")
	cmd.Flags().StringVar(&out.sink.RedisURL, "redis-url", "", "redis sink URL")
	cmd.Flags().StringVar(&out.sink.MongoURI, "mongo-uri", "", "mongodb sink URI")
	cmd.Flags().StringVar(&out.sink.MongoDatabase, "mongo-db", "", "mongodb sink database")
	cmd.Flags().StringVarP(&out.format, "format", "f", "", "write the graph as json, dot or svg")
	cmd.Flags().StringVarP(&out.output, "output", "o", "", "output file (default: stdout when --format is set)")
	cmd.Flags().StringVar(&out.engine, "engine", "", "graphviz layout engine for dot/svg: "+strings.Join(nodelink.Engines, ", "))
	cmd.Flags().BoolVar(&out.detailed, "detailed", false, "show labels and relationship types in dot/svg")
	cmd.Flags().BoolVar(&out.noCache, "no-cache", false, "disable caching")

	return cmd
}

func commandAliases(spec modelSpec) []string {
	name := strings.Fields(spec.use)[0]
	var out []string
	if name != string(spec.model) {
		out = append(out, string(spec.model))
	}
	for _, a := range model.Aliases(spec.model) {
		if a != name {
			out = append(out, a)
		}
	}
	return out
}

// parseDegrees parses positional degree arguments.
func parseDegrees(args []string) ([]int, error) {
	degrees := make([]int, 0, len(args))
	for _, a := range args {
		for _, part := range strings.Split(a, ",") {
			if part == "" {
				continue
			}
			d, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidInput, "invalid degree %q", part)
			}
			degrees = append(degrees, d)
		}
	}
	return degrees, nil
}

// runGenerate validates opts, runs the pipeline into the selected sink and
// optionally writes the graph.
func (c *CLI) runGenerate(ctx context.Context, opts pipeline.Options, out outputFlags) error {
	c.config.Apply(&opts)
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	format, err := resolveFormat(out.format, out.output)
	if err != nil {
		return err
	}
	if err := nodelink.ValidateEngine(out.engine); err != nil {
		return err
	}
	if out.output != "" {
		if err := errors.ValidatePath(out.output); err != nil {
			return err
		}
	}

	sinkOpts := c.sinkOptions(out.sink)
	s, err := sink.Open(ctx, sinkOpts)
	if err != nil {
		return err
	}
	defer s.Close()

	runner, err := c.newRunner(ctx, out.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Generating %s...", opts.String()))
	spinner.Start()
	res, err := runner.Execute(ctx, opts, s)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()

	toStdout := format != "" && out.output == ""
	if format != "" {
		data, err := runner.Render(ctx, res.Graph(opts.Label, opts.RelType), pipeline.RenderOptions{
			Format:   format,
			Engine:   out.engine,
			Detailed: out.detailed,
		})
		if err != nil {
			return fmt.Errorf("render %s: %w", format, err)
		}
		if toStdout {
			_, err := os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(out.output, data, 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", out.output, err)
		}
	}

	printSuccess("Generated %s into %s sink", StyleValue.Render(opts.String()), sinkOpts.Kind)
	if out.output != "" {
		printFile(out.output)
	}
	printStats(res.Nodes, res.Edges, res.Stats.Batches, res.CacheHit)
	return nil
}

// sinkOptions merges sink flags over the configured sink.
func (c *CLI) sinkOptions(flags sink.Options) sink.Options {
	opts := c.config.Sink
	if flags.Kind != "" && flags.Kind != opts.Kind {
		// A different kind starts from a clean slate.
		opts = sink.Options{Kind: flags.Kind}
	}
	if flags.Path != "" {
		opts.Path = flags.Path
	}
	if flags.RedisURL != "" {
		opts.RedisURL = flags.RedisURL
	}
	if flags.MongoURI != "" {
		opts.MongoURI = flags.MongoURI
	}
	if flags.MongoDatabase != "" {
		opts.MongoDatabase = flags.MongoDatabase
	}
	return opts
}

// resolveFormat returns the output format from --format or the extension
// of --output. The empty string means no graph output.
func resolveFormat(format, output string) (string, error) {
	if format == "" && output != "" {
		switch strings.ToLower(filepath.Ext(output)) {
		case ".svg":
			format = pipeline.FormatSVG
		case ".dot", ".gv":
			format = pipeline.FormatDOT
		default:
			format = pipeline.FormatJSON
		}
	}
	if format == "" {
		return "", nil
	}
	return format, pipeline.ValidateFormat(format)
}
