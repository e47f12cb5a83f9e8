package model

import (
	"github.com/matzehuels/synthgraph/pkg/degree"
	"github.com/matzehuels/synthgraph/pkg/errors"
)

// DistributionConfig configures the configuration model: a graph whose
// per-node degrees match an explicit sequence exactly.
type DistributionConfig struct {
	seq degree.Sequence
}

// Distribution returns the configuration for the given degrees. The slice
// is copied.
func Distribution(degrees ...int) DistributionConfig {
	return DistributionConfig{seq: degree.New(degrees...)}
}

// FromSequence wraps an existing sequence.
func FromSequence(s degree.Sequence) DistributionConfig {
	return DistributionConfig{seq: s}
}

// Model returns ModelDistribution.
func (c DistributionConfig) Model() Model { return ModelDistribution }

// NumberOfNodes returns the length of the sequence.
func (c DistributionConfig) NumberOfNodes() int { return c.seq.Len() }

// Sequence returns the immutable degree sequence.
func (c DistributionConfig) Sequence() degree.Sequence { return c.seq }

// IsValid reports whether the sequence passes the Erdős–Gallai test.
func (c DistributionConfig) IsValid() bool { return c.Validate() == nil }

// Validate runs the Erdős–Gallai test and reports the violated constraint.
func (c DistributionConfig) Validate() error {
	if c.seq.Len() > MaxNodes {
		return invalid(ModelDistribution, "degree sequence longer than %d", MaxNodes)
	}
	if err := degree.Check(c.seq); err != nil {
		return invalid(ModelDistribution, "%s", errors.UserMessage(err))
	}
	return nil
}
