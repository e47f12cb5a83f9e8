package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"slices"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/synthgraph/pkg/graph"
)

// Graphviz layout engines.
const (
	EngineNeato = "neato"
	EngineFDP   = "fdp"
	EngineSFDP  = "sfdp"
	EngineCirco = "circo"
	EngineDot   = "dot"
)

// Engines lists the supported layout engines.
var Engines = []string{EngineNeato, EngineFDP, EngineSFDP, EngineCirco, EngineDot}

// LabelLimit is the node count above which labels are dropped.
const LabelLimit = 200

// Options configures node-link diagram rendering.
type Options struct {
	// Engine is the Graphviz layout engine. Defaults to neato.
	Engine string
	// Detailed adds the node label below the id and the relationship type
	// to every edge.
	Detailed bool
}

// ValidateEngine checks that engine is supported. The empty string is
// accepted and means neato.
func ValidateEngine(engine string) error {
	if engine == "" || slices.Contains(Engines, engine) {
		return nil
	}
	return fmt.Errorf("invalid engine: %q (must be one of: neato, fdp, sfdp, circo, dot)", engine)
}

// ToDOT converts a graph to undirected Graphviz DOT source.
func ToDOT(g graph.Graph, opts Options) string {
	engine := opts.Engine
	if engine == "" {
		engine = EngineNeato
	}
	labels := len(g.Nodes) <= LabelLimit

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  layout=%s;\n", engine)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=white, fontsize=10, width=0.3];\n")
	buf.WriteString("  edge [color=\"#555555\"];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		label := ""
		if labels {
			label = n.ID
			if opts.Detailed && n.Label != "" {
				label += "\n" + n.Label
			}
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", n.ID, label)
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		if opts.Detailed && e.Type != "" {
			fmt.Fprintf(&buf, "  %q -- %q [label=%q, fontsize=8];\n", e.From, e.To, e.Type)
			continue
		}
		fmt.Fprintf(&buf, "  %q -- %q;\n", e.From, e.To)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element so the SVG scales with its
// container.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
