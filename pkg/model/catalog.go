package model

// Info describes a model for listings.
type Info struct {
	Model       Model    `json:"model"`
	Aliases     []string `json:"aliases,omitempty"`
	Parameters  []string `json:"parameters"`
	Description string   `json:"description"`
}

var parameters = map[Model][]string{
	ModelComplete:       {"nodes"},
	ModelErdosRenyi:     {"nodes", "edges"},
	ModelBarabasiAlbert: {"nodes", "edges_per_new_node"},
	ModelWattsStrogatz:  {"nodes", "mean_degree", "beta"},
	ModelDistribution:   {"degrees"},
}

var descriptions = map[Model]string{
	ModelComplete:       "every pair of nodes connected",
	ModelErdosRenyi:     "exactly m edges chosen uniformly at random",
	ModelBarabasiAlbert: "preferential attachment, scale-free degrees",
	ModelWattsStrogatz:  "ring lattice with random rewiring",
	ModelDistribution:   "simple graph realizing a degree sequence",
}

// Describe returns the listing entry of m.
func Describe(m Model) Info {
	return Info{
		Model:       m,
		Aliases:     Aliases(m),
		Parameters:  parameters[m],
		Description: descriptions[m],
	}
}

// Catalog describes every model in Models order.
func Catalog() []Info {
	out := make([]Info, len(Models))
	for i, m := range Models {
		out[i] = Describe(m)
	}
	return out
}
