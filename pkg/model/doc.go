// Package model defines the generator configurations, one per graph model.
//
// # Models
//
// The set of models is closed:
//
//   - [ModelComplete]: every unordered pair of nodes ([NumberOfNodesConfig])
//   - [ModelErdosRenyi]: a fixed number of uniformly sampled edges ([ErdosRenyiConfig])
//   - [ModelBarabasiAlbert]: preferential attachment ([BarabasiAlbertConfig])
//   - [ModelWattsStrogatz]: a rewired ring lattice ([WattsStrogatzConfig])
//   - [ModelDistribution]: an explicit degree sequence ([DistributionConfig])
//
// # Validation
//
// Every configuration implements [Config]. [Config.Validate] returns an
// INVALID_CONFIG error naming the failed constraint and the offending
// values; [Config.IsValid] is shorthand for a nil Validate. Generators
// refuse to run against an invalid configuration.
//
//	cfg := model.ErdosRenyi(10, 20)
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// Node counts are bounded by [MaxNodes] so that every count fits a signed
// 32-bit integer; edge caps are computed with arbitrary-precision
// arithmetic.
//
// Configurations are immutable values and safe to share between
// goroutines.
package model
