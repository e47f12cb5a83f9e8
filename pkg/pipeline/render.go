package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/synthgraph/pkg/cache"
	"github.com/matzehuels/synthgraph/pkg/graph"
	"github.com/matzehuels/synthgraph/pkg/observability"
	"github.com/matzehuels/synthgraph/pkg/render/nodelink"
)

// RenderOptions configures artifact rendering.
type RenderOptions struct {
	Format   string `json:"format,omitempty"`
	Engine   string `json:"engine,omitempty"`
	Detailed bool   `json:"detailed,omitempty"`
	Refresh  bool   `json:"refresh,omitempty"`
}

// Render encodes g in the requested format. SVG output is cached by graph
// content hash since layout dominates the cost.
func (r *Runner) Render(ctx context.Context, g graph.Graph, opts RenderOptions) ([]byte, error) {
	data, _, err := r.RenderWithCacheInfo(ctx, g, opts)
	return data, err
}

// RenderWithCacheInfo is like Render but also reports a cache hit.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, g graph.Graph, opts RenderOptions) ([]byte, bool, error) {
	if opts.Format == "" {
		opts.Format = FormatJSON
	}
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, false, err
	}
	if err := nodelink.ValidateEngine(opts.Engine); err != nil {
		return nil, false, err
	}

	switch opts.Format {
	case FormatJSON:
		data, err := graph.MarshalGraph(g)
		return data, false, err
	case FormatDOT:
		dot := nodelink.ToDOT(g, nodelink.Options{Engine: opts.Engine, Detailed: opts.Detailed})
		return []byte(dot), false, nil
	}

	graphData, err := graph.MarshalGraph(g)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.ArtifactKey(cache.Hash(graphData), cache.ArtifactKeyOpts{
		Format:   opts.Format,
		Engine:   opts.Engine,
		Detailed: opts.Detailed,
	})
	if !opts.Refresh {
		if data, hit, _ := r.Cache.Get(ctx, key); hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	start := time.Now()
	dot := nodelink.ToDOT(g, nodelink.Options{Engine: opts.Engine, Detailed: opts.Detailed})
	svg, err := nodelink.RenderSVG(ctx, dot)
	if err != nil {
		return nil, false, err
	}
	r.Logger.Debug("rendered svg", "nodes", g.NodeCount(), "bytes", len(svg), "duration", time.Since(start))

	_ = r.Cache.Set(ctx, key, svg, cache.TTLArtifact)
	observability.Cache().OnCacheSet(ctx, "artifact", len(svg))
	return svg, false, nil
}
