package generate

import (
	"math/rand/v2"

	"github.com/matzehuels/synthgraph/pkg/errors"
	"github.com/matzehuels/synthgraph/pkg/model"
)

// Generator produces the edge list of one model. Implementations live in
// this package only.
type Generator interface {
	// Model returns the model this generator handles.
	Model() model.Model
	// Generate validates cfg and returns its edges. It fails without
	// output when cfg belongs to another model or is invalid.
	Generate(cfg model.Config, rng *rand.Rand) (EdgeList, error)

	// build runs the algorithm on a config that already passed Validate.
	build(cfg model.Config, rng *rand.Rand) (EdgeList, error)
}

// builder is the algorithm half of a Generator.
type builder interface {
	Model() model.Model
	build(cfg model.Config, rng *rand.Rand) (EdgeList, error)
}

// validating puts the model and validity checks in front of a builder.
type validating struct {
	builder
}

func (v validating) Generate(cfg model.Config, rng *rand.Rand) (EdgeList, error) {
	if err := accept(v.Model(), cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return v.build(cfg, rng)
}

// accept checks that cfg is non-nil and belongs to model m.
func accept(m model.Model, cfg model.Config) error {
	if cfg == nil {
		return errors.New(errors.ErrCodeInvalidInput, "%s: nil configuration", m)
	}
	if cfg.Model() != m {
		return errors.New(errors.ErrCodeInvalidInput, "%s generator cannot run a %s configuration", m, cfg.Model())
	}
	return nil
}

// configAs asserts that cfg belongs to model m and has the concrete type T.
// It does not validate cfg.
func configAs[T model.Config](m model.Model, cfg model.Config) (T, error) {
	if err := accept(m, cfg); err != nil {
		var zero T
		return zero, err
	}
	c, ok := cfg.(T)
	if !ok {
		var zero T
		return zero, errors.New(errors.ErrCodeInvalidInput, "%s generator cannot run a %T configuration", m, cfg)
	}
	return c, nil
}
