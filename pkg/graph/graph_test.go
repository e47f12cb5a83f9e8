package graph

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func triangle() Graph {
	return Graph{
		Nodes: []Node{{ID: "0", Label: "Person"}, {ID: "1", Label: "Person"}, {ID: "2", Label: "Person"}},
		Edges: []Edge{
			{From: "0", To: "1", Type: "FRIEND_OF"},
			{From: "1", To: "2", Type: "FRIEND_OF"},
			{From: "0", To: "2", Type: "FRIEND_OF"},
		},
	}
}

func TestRoundTrip(t *testing.T) {
	g := triangle()
	data, err := MarshalGraph(g)
	if err != nil {
		t.Fatalf("MarshalGraph: %v", err)
	}
	got, err := ReadGraph(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}
	if !reflect.DeepEqual(got, g) {
		t.Errorf("round trip = %+v, want %+v", got, g)
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.json")
	if err := WriteGraphFile(triangle(), path); err != nil {
		t.Fatal(err)
	}
	got, err := ReadGraphFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.NodeCount() != 3 || got.EdgeCount() != 3 {
		t.Errorf("counts = %d/%d, want 3/3", got.NodeCount(), got.EdgeCount())
	}
	if _, err := ReadGraphFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestEmptyGraphEncodesArrays(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteGraph(Graph{}, &buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"nodes": []`) || !strings.Contains(buf.String(), `"edges": []`) {
		t.Errorf("WriteGraph(empty) = %s", buf.String())
	}
}

func TestReadGraphRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"syntax", `{"nodes": [`},
		{"empty-id", `{"nodes": [{"id": ""}]}`},
		{"duplicate", `{"nodes": [{"id": "a"}, {"id": "a"}]}`},
		{"unknown-endpoint", `{"nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "b"}]}`},
	}
	for _, tt := range tests {
		if _, err := ReadGraph(strings.NewReader(tt.in)); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestComputeStats(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}},
		Edges: []Edge{{From: "a", To: "b"}, {From: "a", To: "c"}, {From: "a", To: "d"}},
	}
	s := ComputeStats(g)
	if s.Nodes != 4 || s.Edges != 3 {
		t.Errorf("counts = %d/%d", s.Nodes, s.Edges)
	}
	if s.MinDegree != 1 || s.MaxDegree != 3 {
		t.Errorf("min/max = %d/%d, want 1/3", s.MinDegree, s.MaxDegree)
	}
	if s.MeanDegree != 1.5 {
		t.Errorf("MeanDegree = %v, want 1.5", s.MeanDegree)
	}
	if s.Density != 0.5 {
		t.Errorf("Density = %v, want 0.5", s.Density)
	}
	if want := []int{0, 3, 0, 1}; !reflect.DeepEqual(s.Histogram, want) {
		t.Errorf("Histogram = %v, want %v", s.Histogram, want)
	}

	if empty := ComputeStats(Graph{}); empty.Nodes != 0 || empty.Histogram != nil {
		t.Errorf("ComputeStats(empty) = %+v", empty)
	}
}
