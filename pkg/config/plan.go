package config

import (
	"fmt"

	"github.com/matzehuels/synthgraph/pkg/errors"
	"github.com/matzehuels/synthgraph/pkg/pipeline"
	"github.com/matzehuels/synthgraph/pkg/sink"
)

// Plan is a list of generation runs executed together.
//
//	concurrency = 2
//
//	[[runs]]
//	name  = "social"
//	model = "barabasi-albert"
//	nodes = 5000
//	edges_per_new_node = 3
//
//	[runs.sink]
//	kind = "sqlite"
//	path = "social.db"
type Plan struct {
	// Concurrency bounds the number of runs in flight. Zero means one
	// run per CPU as decided by the caller.
	Concurrency int   `toml:"concurrency" yaml:"concurrency"`
	Runs        []Run `toml:"runs" yaml:"runs"`
}

// Run is one entry of a plan. Runs without a sink section share the
// configured sink; runs of one plan may not share a badger directory
// because they are open at the same time.
type Run struct {
	Name             string `toml:"name" yaml:"name"`
	pipeline.Options `yaml:",inline"`

	// Sink overrides the configured sink for this run.
	Sink *sink.Options `toml:"sink" yaml:"sink"`
}

// LoadPlan reads a plan file, applies cfg defaults to every run and
// validates each run's options.
func LoadPlan(path string, cfg *Config) (*Plan, error) {
	var p Plan
	if err := decodeFile(path, &p); err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = Default()
	}
	if err := p.prepare(cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &p, nil
}

func (p *Plan) prepare(cfg *Config) error {
	if len(p.Runs) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "plan has no runs")
	}
	if p.Concurrency < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "concurrency must be >= 0, got %d", p.Concurrency)
	}
	seen := make(map[string]bool, len(p.Runs))
	lockedBy := make(map[string]string)
	for i := range p.Runs {
		r := &p.Runs[i]
		if r.Name == "" {
			r.Name = fmt.Sprintf("run-%d", i+1)
		}
		if seen[r.Name] {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate run name %q", r.Name)
		}
		seen[r.Name] = true
		if r.Sink == nil {
			s := cfg.Sink
			r.Sink = &s
		}
		if _, err := sink.ParseKind(string(r.Sink.Kind)); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "run %q", r.Name)
		}
		if dir := r.Sink.LockedDir(); dir != "" {
			if other, ok := lockedBy[dir]; ok {
				return errors.New(errors.ErrCodeInvalidInput,
					"runs %q and %q both use badger directory %s; badger allows one open store per directory", other, r.Name, dir)
			}
			lockedBy[dir] = r.Name
		}
		cfg.Apply(&r.Options)
		if err := r.Options.ValidateAndSetDefaults(); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "run %q", r.Name)
		}
	}
	return nil
}
