package model

import (
	"math"
	"slices"
	"strings"

	"github.com/matzehuels/synthgraph/pkg/errors"
)

// Model identifies a graph model.
type Model string

// Supported models.
const (
	ModelComplete       Model = "complete"
	ModelErdosRenyi     Model = "erdos-renyi"
	ModelBarabasiAlbert Model = "barabasi-albert"
	ModelWattsStrogatz  Model = "watts-strogatz"
	ModelDistribution   Model = "distribution"
)

// MaxNodes is the largest node count any configuration accepts.
const MaxNodes = math.MaxInt32

// minNodes is the smallest node count of the node-count based models.
const minNodes = 2

// Models lists every supported model in a stable order.
var Models = []Model{
	ModelComplete,
	ModelErdosRenyi,
	ModelBarabasiAlbert,
	ModelWattsStrogatz,
	ModelDistribution,
}

// aliases maps alternative spellings (the camelCase procedure names and
// "simple" for the distribution model) to their canonical tag.
var aliases = map[string]Model{
	"erdosrenyi":     ModelErdosRenyi,
	"barabasialbert": ModelBarabasiAlbert,
	"wattsstrogatz":  ModelWattsStrogatz,
	"simple":         ModelDistribution,
}

// ParseModel resolves a model tag. Canonical tags and the aliases
// erdosRenyi, barabasiAlbert, wattsStrogatz and simple are accepted,
// case-insensitively.
func ParseModel(s string) (Model, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	for _, m := range Models {
		if string(m) == tag {
			return m, nil
		}
	}
	if m, ok := aliases[strings.ReplaceAll(tag, "_", "")]; ok {
		return m, nil
	}
	return "", errors.New(errors.ErrCodeUnknownModel, "unknown model %q", s)
}

// Aliases returns the alternative tags of m in sorted order.
func Aliases(m Model) []string {
	var out []string
	for alias, target := range aliases {
		if target == m {
			out = append(out, alias)
		}
	}
	slices.Sort(out)
	return out
}

// String returns the canonical tag.
func (m Model) String() string { return string(m) }

// Config is implemented by every model configuration.
type Config interface {
	// Model returns the model this configuration drives.
	Model() Model
	// NumberOfNodes returns the node count of the generated graph.
	NumberOfNodes() int
	// IsValid reports whether Validate returns nil.
	IsValid() bool
	// Validate returns an INVALID_CONFIG error describing the first
	// violated constraint, or nil.
	Validate() error
}

func invalid(m Model, format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidConfig, string(m)+": "+format, args...)
}
