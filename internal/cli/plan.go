package cli

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/matzehuels/synthgraph/pkg/config"
	"github.com/matzehuels/synthgraph/pkg/pipeline"
	"github.com/matzehuels/synthgraph/pkg/sink"
)

// planCommand creates the plan command for running several generations.
func (c *CLI) planCommand() *cobra.Command {
	var (
		noCache     bool
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "plan <file>",
		Short: "Run every generation listed in a plan file",
		Long: `Run every generation listed in a TOML or YAML plan file.

Runs execute concurrently, each with its own random source, so every run
produces the same graph it would produce on its own. The first failing run
cancels the others. Runs are open at the same time, so two runs may not
share a badger directory.

Example plan.toml:

  concurrency = 2

  [[runs]]
  name  = "social"
  model = "barabasi-albert"
  nodes = 5000
  edges_per_new_node = 3

  [runs.sink]
  kind = "sqlite"
  path = "social.db"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlan(cmd.Context(), args[0], concurrency, noCache)
		},
	}
	cmd.Flags().IntVarP(&concurrency, "concurrency", "j", 0, "runs in flight (default: plan value or number of CPUs)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runPlan(ctx context.Context, path string, concurrency int, noCache bool) error {
	plan, err := config.LoadPlan(path, c.config)
	if err != nil {
		return err
	}
	if concurrency == 0 {
		concurrency = plan.Concurrency
	}
	if concurrency == 0 {
		concurrency = runtime.NumCPU()
	}

	jobs := make([]pipeline.Job, 0, len(plan.Runs))
	defer func() {
		for _, j := range jobs {
			if err := j.Sink.Close(); err != nil {
				c.Logger.Warn("close sink", "run", j.Name, "error", err)
			}
		}
	}()
	for _, r := range plan.Runs {
		s, err := sink.Open(ctx, *r.Sink)
		if err != nil {
			return fmt.Errorf("run %q: %w", r.Name, err)
		}
		opts := r.Options
		opts.Logger = c.Logger.With("run", r.Name)
		jobs = append(jobs, pipeline.Job{Name: r.Name, Options: opts, Sink: s})
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Running %d generations...", len(jobs)))
	spinner.Start()
	results, err := runner.ExecuteAll(ctx, jobs, concurrency)
	if err != nil {
		spinner.StopWithError("Plan failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Completed %d runs", len(results)))

	for i, res := range results {
		j := jobs[i]
		printSuccess("%s %s", StyleValue.Render(j.Name), StyleDim.Render(j.Options.String()))
		printDetail("sink: %s", plan.Runs[i].Sink.Kind)
		printStats(res.Nodes, res.Edges, res.Stats.Batches, res.CacheHit)
	}
	return nil
}
