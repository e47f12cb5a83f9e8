package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/synthgraph/pkg/errors"
	"github.com/matzehuels/synthgraph/pkg/sink"
)

// Job pairs run options with the sink they write into.
type Job struct {
	Name    string
	Options Options
	Sink    sink.Sink
}

// ExecuteAll runs jobs concurrently, at most limit at a time (limit <= 0
// means unbounded). Each job draws from its own random source, so results
// are identical to running them one by one. The first failure cancels the
// remaining jobs; results of jobs that did not finish are nil.
func (r *Runner) ExecuteAll(ctx context.Context, jobs []Job, limit int) ([]*Result, error) {
	results := make([]*Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for i, job := range jobs {
		g.Go(func() error {
			res, err := r.Execute(ctx, job.Options, job.Sink)
			if err != nil {
				if code := errors.GetCode(err); code != "" {
					return errors.Wrap(code, err, "job %q", job.Name)
				}
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
