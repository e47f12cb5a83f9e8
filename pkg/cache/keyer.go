package cache

// Keyer derives cache keys from generation and rendering inputs.
type Keyer interface {
	// EdgesKey returns the key of the edge list generated for model with
	// the given parameters and seed.
	EdgesKey(model string, opts EdgesKeyOpts) string

	// ArtifactKey returns the key of a rendered artifact of the graph whose
	// content hash is graphHash.
	ArtifactKey(graphHash string, opts ArtifactKeyOpts) string
}

// EdgesKeyOpts holds every input that influences a generated edge list.
// Parameters a model does not use should be left at their zero value.
type EdgesKeyOpts struct {
	Nodes           int     `json:"n,omitempty"`
	Edges           int64   `json:"m,omitempty"`
	EdgesPerNewNode int     `json:"epn,omitempty"`
	MeanDegree      int     `json:"k,omitempty"`
	Beta            float64 `json:"beta,omitempty"`
	Degrees         []int   `json:"deg,omitempty"`
	Seed            uint64  `json:"seed"`
}

// ArtifactKeyOpts holds the rendering inputs of an artifact.
type ArtifactKeyOpts struct {
	Format   string `json:"format"`
	Engine   string `json:"engine,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
}

// DefaultKeyer hashes key inputs with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// EdgesKey returns "edges:<model>:<hash>".
func (DefaultKeyer) EdgesKey(model string, opts EdgesKeyOpts) string {
	return hashKey("edges:"+model, opts)
}

// ArtifactKey returns "artifact:<hash>".
func (DefaultKeyer) ArtifactKey(graphHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", graphHash, opts)
}

var _ Keyer = DefaultKeyer{}
