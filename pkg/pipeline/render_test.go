package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/synthgraph/pkg/cache"
	"github.com/matzehuels/synthgraph/pkg/errors"
	"github.com/matzehuels/synthgraph/pkg/graph"
)

func triangle() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{{ID: "0", Label: "Person"}, {ID: "1", Label: "Person"}, {ID: "2", Label: "Person"}},
		Edges: []graph.Edge{
			{From: "0", To: "1", Type: "FRIEND_OF"},
			{From: "0", To: "2", Type: "FRIEND_OF"},
			{From: "1", To: "2", Type: "FRIEND_OF"},
		},
	}
}

func TestRenderFormats(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	ctx := context.Background()

	data, err := r.Render(ctx, triangle(), RenderOptions{})
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	g, err := graph.ReadGraph(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}
	if g.EdgeCount() != 3 {
		t.Errorf("edges = %d, want 3", g.EdgeCount())
	}

	data, err = r.Render(ctx, triangle(), RenderOptions{Format: FormatDOT, Engine: "circo"})
	if err != nil {
		t.Fatalf("dot: %v", err)
	}
	if !strings.HasPrefix(string(data), "graph G {") || !strings.Contains(string(data), "layout=circo;") {
		t.Errorf("dot output = %q", data)
	}
}

func TestRenderRejectsBadOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Render(context.Background(), triangle(), RenderOptions{Format: "png"})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
	if _, err := r.Render(context.Background(), triangle(), RenderOptions{Format: FormatDOT, Engine: "twopi"}); err == nil {
		t.Error("expected error for unsupported engine")
	}
}

func TestRenderSVGCached(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	opts := RenderOptions{Format: FormatSVG}

	first, hit, err := r.RenderWithCacheInfo(context.Background(), triangle(), opts)
	if err != nil || hit {
		t.Fatalf("first render: hit=%v err=%v", hit, err)
	}
	if !bytes.Contains(first, []byte("<svg")) {
		t.Fatalf("output is not svg: %.80s", first)
	}
	second, hit, err := r.RenderWithCacheInfo(context.Background(), triangle(), opts)
	if err != nil || !hit {
		t.Fatalf("second render: hit=%v err=%v", hit, err)
	}
	if !bytes.Equal(first, second) {
		t.Error("cached svg differs")
	}
}
