package generate

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/matzehuels/synthgraph/pkg/errors"
	"github.com/matzehuels/synthgraph/pkg/model"
)

func TestDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	want := slices.Clone(model.Models)
	slices.Sort(want)
	if got := reg.Models(); !slices.Equal(got, want) {
		t.Errorf("Models() = %v, want %v", got, want)
	}
	for _, m := range model.Models {
		g, err := reg.Lookup(m)
		if err != nil {
			t.Errorf("Lookup(%s): %v", m, err)
			continue
		}
		if g.Model() != m {
			t.Errorf("Lookup(%s).Model() = %s", m, g.Model())
		}
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	if _, err := NewRegistry(Complete(), Complete()); err == nil {
		t.Error("expected duplicate registration error")
	}
	if _, err := NewRegistry(nil); err == nil {
		t.Error("expected nil generator error")
	}
}

func TestRegistryUnknownModel(t *testing.T) {
	reg, err := NewRegistry(Complete())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := reg.Lookup(model.ModelErdosRenyi); !errors.Is(err, errors.ErrCodeUnknownModel) {
		t.Errorf("Lookup() = %v, want UNKNOWN_MODEL", err)
	}
	if _, err := reg.Generate(model.ErdosRenyi(10, 20), NewRand(1)); !errors.Is(err, errors.ErrCodeUnknownModel) {
		t.Errorf("Generate() = %v, want UNKNOWN_MODEL", err)
	}
}

func TestRegistryValidatesFirst(t *testing.T) {
	reg, _ := NewRegistry(Complete())
	// Validation runs before lookup, so an invalid config of an
	// unregistered model still reports the configuration problem.
	if _, err := reg.Generate(model.ErdosRenyi(1, 20), NewRand(1)); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Generate() = %v, want INVALID_CONFIG", err)
	}
	if _, err := reg.Generate(nil, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Generate(nil) = %v, want INVALID_INPUT", err)
	}
}

func TestRegistryErdosRenyi10x20(t *testing.T) {
	edges, err := DefaultRegistry().Generate(model.ErdosRenyi(10, 20), NewRand(42))
	if err != nil {
		t.Fatal(err)
	}
	if len(edges) != 20 {
		t.Errorf("len = %d, want 20", len(edges))
	}
	if err := edges.Check(10); err != nil {
		t.Error(err)
	}
}

// countingConfig counts Validate calls on a complete-graph config.
type countingConfig struct {
	model.NumberOfNodesConfig
	validations *int
}

func (c countingConfig) Validate() error {
	*c.validations++
	return c.NumberOfNodesConfig.Validate()
}

type stubBuilder struct{}

func (stubBuilder) Model() model.Model { return model.ModelComplete }

func (stubBuilder) build(model.Config, *rand.Rand) (EdgeList, error) {
	return EdgeList{{From: 0, To: 1}}, nil
}

func TestConfigValidatedOnce(t *testing.T) {
	gen := validating{stubBuilder{}}
	reg, err := NewRegistry(gen)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		run  func(model.Config) (EdgeList, error)
		want int
	}{
		{"registry", func(c model.Config) (EdgeList, error) { return reg.Generate(c, nil) }, 1},
		{"generator", func(c model.Config) (EdgeList, error) { return gen.Generate(c, nil) }, 1},
		{"prevalidated", func(c model.Config) (EdgeList, error) { return reg.GenerateValidated(c, nil) }, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			edges, err := tt.run(countingConfig{model.Complete(2), &calls})
			if err != nil {
				t.Fatal(err)
			}
			if len(edges) != 1 {
				t.Errorf("len = %d, want 1", len(edges))
			}
			if calls != tt.want {
				t.Errorf("validations = %d, want %d", calls, tt.want)
			}
		})
	}
}

func TestGenerateValidatedSkipsValidation(t *testing.T) {
	// A non-graphical sequence that skipped validation fails inside the
	// construction instead of producing a wrong graph.
	edges, err := DefaultRegistry().GenerateValidated(model.Distribution(3, 3, 1, 1), nil)
	if !errors.Is(err, errors.ErrCodeInternalConsistency) {
		t.Errorf("err = %v, want INTERNAL_CONSISTENCY", err)
	}
	if edges != nil {
		t.Errorf("edges = %v, want nil", edges)
	}
	if _, err := DefaultRegistry().GenerateValidated(nil, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("GenerateValidated(nil) = %v, want INVALID_INPUT", err)
	}
}
