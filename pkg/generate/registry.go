package generate

import (
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/synthgraph/pkg/errors"
	"github.com/matzehuels/synthgraph/pkg/model"
)

// Registry maps model tags to generators. A Registry is read-only after
// construction and safe for concurrent use.
type Registry struct {
	generators map[model.Model]Generator
}

// NewRegistry returns a registry holding gens. Registering two generators
// for the same model is an error.
func NewRegistry(gens ...Generator) (*Registry, error) {
	r := &Registry{generators: make(map[model.Model]Generator, len(gens))}
	for _, g := range gens {
		if g == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "nil generator")
		}
		if _, dup := r.generators[g.Model()]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate generator for model %s", g.Model())
		}
		r.generators[g.Model()] = g
	}
	return r, nil
}

// DefaultRegistry returns a registry with a generator for every model.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(Complete(), ErdosRenyi(), BarabasiAlbert(), WattsStrogatz(), Distribution())
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the generator for m, or an UNKNOWN_MODEL error.
func (r *Registry) Lookup(m model.Model) (Generator, error) {
	g, ok := r.generators[m]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownModel, "no generator registered for model %q", m)
	}
	return g, nil
}

// Models returns the registered model tags in sorted order.
func (r *Registry) Models() []model.Model {
	out := make([]model.Model, 0, len(r.generators))
	for m := range r.generators {
		out = append(out, m)
	}
	slices.Sort(out)
	return out
}

// Generate validates cfg once and dispatches to the generator of its
// model. An invalid config is reported even when no generator is
// registered for its model.
func (r *Registry) Generate(cfg model.Config, rng *rand.Rand) (EdgeList, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil configuration")
	}
	g, lookupErr := r.Lookup(cfg.Model())
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if lookupErr != nil {
		return nil, lookupErr
	}
	return g.build(cfg, rng)
}

// GenerateValidated dispatches cfg without validating it. The caller must
// have checked cfg with Validate; the pipeline does so once per run.
func (r *Registry) GenerateValidated(cfg model.Config, rng *rand.Rand) (EdgeList, error) {
	if cfg == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "nil configuration")
	}
	g, err := r.Lookup(cfg.Model())
	if err != nil {
		return nil, err
	}
	return g.build(cfg, rng)
}
