package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/matzehuels/synthgraph/pkg/cache"
	"github.com/matzehuels/synthgraph/pkg/errors"
	"github.com/matzehuels/synthgraph/pkg/model"
	"github.com/matzehuels/synthgraph/pkg/sink"
)

// recordingSink logs every call as "node", "rel" or "commit".
type recordingSink struct {
	mu       sync.Mutex
	calls    []string
	nodes    int
	failAt   int // fail the failAt-th call (1-based); 0 never fails
	onCommit func(commits int)
	commits  int
}

func (s *recordingSink) record(op string) error {
	s.calls = append(s.calls, op)
	if s.failAt > 0 && len(s.calls) == s.failAt {
		return stderrors.New("boom")
	}
	return nil
}

func (s *recordingSink) CreateNode(_ context.Context, label string) (sink.NodeID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.record("node"); err != nil {
		return "", err
	}
	id := sink.NodeID(fmt.Sprintf("%s-%d", label, s.nodes))
	s.nodes++
	return id, nil
}

func (s *recordingSink) CreateRelationship(context.Context, sink.NodeID, sink.NodeID, string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record("rel")
}

func (s *recordingSink) Commit(context.Context) error {
	s.mu.Lock()
	err := s.record("commit")
	s.commits++
	n, hook := s.commits, s.onCommit
	s.mu.Unlock()
	if err == nil && hook != nil {
		hook(n)
	}
	return err
}

func (s *recordingSink) Close() error { return nil }

func (s *recordingSink) count(op string) int {
	n := 0
	for _, c := range s.calls {
		if c == op {
			n++
		}
	}
	return n
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Model: "watts_strogatz"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Model != string(model.ModelWattsStrogatz) {
		t.Errorf("Model = %q, want %q", opts.Model, model.ModelWattsStrogatz)
	}
	if opts.Nodes != DefaultNodes || opts.MeanDegree != DefaultMeanDegree {
		t.Errorf("Nodes, MeanDegree = %d, %d", opts.Nodes, opts.MeanDegree)
	}
	if opts.Beta == nil || *opts.Beta != DefaultBeta {
		t.Errorf("Beta = %v, want %v", opts.Beta, DefaultBeta)
	}
	if opts.Label != DefaultLabel || opts.RelType != DefaultRelType || opts.BatchSize != DefaultBatchSize {
		t.Errorf("sink defaults = %q %q %d", opts.Label, opts.RelType, opts.BatchSize)
	}
	if opts.Seed != DefaultSeed {
		t.Errorf("Seed = %d, want %d", opts.Seed, DefaultSeed)
	}
}

func TestOptionsZeroBetaIsKept(t *testing.T) {
	beta := 0.0
	opts := Options{Model: "watts-strogatz", Nodes: 10, Beta: &beta}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if *opts.Beta != 0 {
		t.Errorf("Beta = %v, want 0", *opts.Beta)
	}
}

func TestOptionsValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"unknown model", Options{Model: "lattice"}, errors.ErrCodeUnknownModel},
		{"too few nodes", Options{Model: "complete", Nodes: 1}, errors.ErrCodeInvalidConfig},
		{"too many edges", Options{Model: "erdos-renyi", Nodes: 4, Edges: 7}, errors.ErrCodeInvalidConfig},
		{"odd degree", Options{Model: "watts-strogatz", Nodes: 6, MeanDegree: 3}, errors.ErrCodeInvalidConfig},
		{"not graphical", Options{Model: "distribution", Degrees: []int{3, 1}}, errors.ErrCodeInvalidConfig},
		{"bad label", Options{Model: "complete", Label: "has space"}, errors.ErrCodeInvalidInput},
		{"bad batch", Options{Model: "complete", BatchSize: -1}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v (err = %v)", got, tt.code, err)
			}
		})
	}
}

func TestEdgesKeyOptsIgnoresUnusedParameters(t *testing.T) {
	a := Options{Model: "complete", Nodes: 5, Edges: 3}
	b := Options{Model: "complete", Nodes: 5, Edges: 9, Label: "Other"}
	for _, o := range []*Options{&a, &b} {
		if err := o.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
	}
	k := cache.NewDefaultKeyer()
	if k.EdgesKey(a.Model, a.EdgesKeyOpts()) != k.EdgesKey(b.Model, b.EdgesKeyOpts()) {
		t.Error("keys differ for parameters the model ignores")
	}
}

func TestExecuteErdosRenyi(t *testing.T) {
	s := &recordingSink{}
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{
		Model: "erdos-renyi", Nodes: 10, Edges: 20,
	}, s)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := s.count("node"); got != 10 {
		t.Errorf("CreateNode calls = %d, want 10", got)
	}
	if got := s.count("rel"); got != 20 {
		t.Errorf("CreateRelationship calls = %d, want 20", got)
	}
	seenRel := false
	for _, c := range s.calls {
		if c == "rel" {
			seenRel = true
		}
		if c == "node" && seenRel {
			t.Fatal("CreateNode called after CreateRelationship")
		}
	}
	if res.Nodes != 10 || res.Edges != 20 || len(res.NodeIDs) != 10 {
		t.Errorf("result = %d nodes, %d edges, %d ids", res.Nodes, res.Edges, len(res.NodeIDs))
	}
	if res.Stats.Batches != 2 {
		t.Errorf("Batches = %d, want 2", res.Stats.Batches)
	}
}

func TestExecuteBatching(t *testing.T) {
	s := &recordingSink{}
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{
		Model: "complete", Nodes: 5, BatchSize: 3,
	}, s)
	if err != nil {
		t.Fatal(err)
	}
	// 5 nodes -> batches of 3+2, 10 edges -> 3+3+3+1.
	want := "node node node commit node node commit " +
		"rel rel rel commit rel rel rel commit rel rel rel commit rel commit"
	if got := strings.Join(s.calls, " "); got != want {
		t.Errorf("calls =\n%s\nwant\n%s", got, want)
	}
	if res.Stats.Batches != 6 {
		t.Errorf("Batches = %d, want 6", res.Stats.Batches)
	}
}

func TestExecuteInvalidConfigLeavesSinkUntouched(t *testing.T) {
	s := &recordingSink{}
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{
		Model: "barabasi-albert", Nodes: 2, EdgesPerNewNode: 2,
	}, s)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("err = %v, want INVALID_CONFIG", err)
	}
	if len(s.calls) != 0 {
		t.Errorf("sink received %d calls, want 0", len(s.calls))
	}
}

func TestExecuteSinkFailure(t *testing.T) {
	tests := []struct {
		name   string
		failAt int
	}{
		{"node", 2},
		{"commit", 5},
		{"relationship", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &recordingSink{failAt: tt.failAt}
			_, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{
				Model: "complete", Nodes: 4,
			}, s)
			if !errors.Is(err, errors.ErrCodeSinkFailure) {
				t.Fatalf("err = %v, want SINK_FAILURE", err)
			}
			if len(s.calls) != tt.failAt {
				t.Errorf("calls after failure = %d, want %d", len(s.calls), tt.failAt)
			}
		})
	}
}

func TestExecuteCancellationAtBatchBoundary(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := &recordingSink{onCommit: func(n int) {
		if n == 1 {
			cancel()
		}
	}}
	_, err := NewRunner(nil, nil, nil).Execute(ctx, Options{
		Model: "complete", Nodes: 6, BatchSize: 2,
	}, s)
	if !stderrors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if got := strings.Join(s.calls, " "); got != "node node commit" {
		t.Errorf("calls = %q, want %q", got, "node node commit")
	}
}

func TestExecuteNilSink(t *testing.T) {
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Model: "complete"}, nil)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}

func TestExecuteMemorySinkGraph(t *testing.T) {
	mem := sink.NewMemory()
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{
		Model: "distribution", Degrees: []int{3, 3, 2, 2, 2},
	}, mem)
	if err != nil {
		t.Fatal(err)
	}
	g := mem.Graph()
	if g.NodeCount() != 5 || g.EdgeCount() != 6 {
		t.Errorf("graph = %d nodes, %d edges, want 5, 6", g.NodeCount(), g.EdgeCount())
	}
	got := res.Graph(DefaultLabel, DefaultRelType)
	if got.EdgeCount() != g.EdgeCount() {
		t.Errorf("Result.Graph edges = %d, want %d", got.EdgeCount(), g.EdgeCount())
	}
	for i, e := range got.Edges {
		if e != g.Edges[i] {
			t.Errorf("edge %d = %v, want %v", i, e, g.Edges[i])
		}
	}
}

func TestGenerateCacheHit(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(c, nil, nil)
	defer r.Close()
	opts := Options{Model: "barabasi-albert", Nodes: 50, EdgesPerNewNode: 3, Seed: 7}

	first, hit, err := r.GenerateWithCacheInfo(context.Background(), opts)
	if err != nil || hit {
		t.Fatalf("first run: hit=%v err=%v", hit, err)
	}
	second, hit, err := r.GenerateWithCacheInfo(context.Background(), opts)
	if err != nil || !hit {
		t.Fatalf("second run: hit=%v err=%v", hit, err)
	}
	if len(first) != len(second) {
		t.Fatalf("len = %d, want %d", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("edge %d = %v, want %v", i, second[i], first[i])
		}
	}

	opts.Refresh = true
	if _, hit, _ := r.GenerateWithCacheInfo(context.Background(), opts); hit {
		t.Error("Refresh served a cached edge list")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := Options{Model: "watts-strogatz", Nodes: 40, MeanDegree: 4, Seed: 99}
	a, err := r.Generate(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	b, err := r.Generate(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("edge %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestGenerateConcurrentCallersGetOwnLists(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	opts := Options{Model: "barabasi-albert", Nodes: 200, EdgesPerNewNode: 3}

	const callers = 8
	lists := make([][]string, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			edges, err := r.Generate(context.Background(), opts)
			if err != nil {
				t.Error(err)
				return
			}
			for _, e := range edges {
				lists[i] = append(lists[i], fmt.Sprint(e))
			}
			if len(edges) > 0 {
				edges[0].From = -1
			}
		}()
	}
	wg.Wait()

	want := 3 + 197*3
	for i, l := range lists {
		if len(l) != want {
			t.Fatalf("caller %d got %d edges, want %d", i, len(l), want)
		}
		if strings.Join(l, ",") != strings.Join(lists[0], ",") {
			t.Errorf("caller %d got a different edge list", i)
		}
	}
}

func TestEdgeCountMatchesGenerated(t *testing.T) {
	tests := []Options{
		{Model: "complete", Nodes: 9},
		{Model: "erdos-renyi", Nodes: 20, Edges: 33},
		{Model: "barabasi-albert", Nodes: 30, EdgesPerNewNode: 4},
		{Model: "watts-strogatz", Nodes: 25, MeanDegree: 6},
		{Model: "distribution", Degrees: []int{3, 3, 2, 2, 2, 1, 1}},
	}
	r := NewRunner(nil, nil, nil)
	for _, opts := range tests {
		t.Run(opts.Model, func(t *testing.T) {
			opts.SetModelDefaults()
			want := opts.EdgeCount()
			edges, err := r.Generate(context.Background(), opts)
			if err != nil {
				t.Fatal(err)
			}
			if got := int64(len(edges)); got != want.Int64() {
				t.Errorf("EdgeCount() = %v, generated %d", want, got)
			}
			if got := opts.NodeCount(); got != opts.Config().NumberOfNodes() {
				t.Errorf("NodeCount() = %d, want %d", got, opts.Config().NumberOfNodes())
			}
		})
	}
}

func TestEdgeCountDoesNotOverflow(t *testing.T) {
	tests := []struct {
		opts Options
		want string
	}{
		{Options{Model: "complete", Nodes: 100_000}, "4999950000"},
		{Options{Model: "watts-strogatz", Nodes: math.MaxInt32, MeanDegree: math.MaxInt32}, "2305843007066210304"},
		{Options{Model: "distribution", Degrees: []int{math.MaxInt64, math.MaxInt64}}, "9223372036854775807"},
	}
	for _, tt := range tests {
		if got := tt.opts.EdgeCount().String(); got != tt.want {
			t.Errorf("%s: EdgeCount() = %s, want %s", tt.opts.Model, got, tt.want)
		}
	}
}

func TestExecuteAll(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	sinks := []*sink.Memory{sink.NewMemory(), sink.NewMemory(), sink.NewMemory()}
	jobs := []Job{
		{Name: "a", Options: Options{Model: "complete", Nodes: 6}, Sink: sinks[0]},
		{Name: "b", Options: Options{Model: "erdos-renyi", Nodes: 20, Edges: 30}, Sink: sinks[1]},
		{Name: "c", Options: Options{Model: "erdos-renyi", Nodes: 20, Edges: 30}, Sink: sinks[2]},
	}
	results, err := r.ExecuteAll(context.Background(), jobs, 2)
	if err != nil {
		t.Fatal(err)
	}
	if results[0].Edges != 15 || results[1].Edges != 30 {
		t.Errorf("edges = %d, %d", results[0].Edges, results[1].Edges)
	}
	b, c := sinks[1].Graph(), sinks[2].Graph()
	for i := range b.Edges {
		if b.Edges[i] != c.Edges[i] {
			t.Fatalf("concurrent runs with the same seed diverged at edge %d", i)
		}
	}
}

func TestExecuteAllFailure(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	jobs := []Job{
		{Name: "good", Options: Options{Model: "complete", Nodes: 3}, Sink: sink.NewMemory()},
		{Name: "bad", Options: Options{Model: "complete", Nodes: 1}, Sink: sink.NewMemory()},
	}
	_, err := r.ExecuteAll(context.Background(), jobs, 0)
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Fatalf("err = %v, want INVALID_CONFIG", err)
	}
	if !strings.Contains(err.Error(), `"bad"`) {
		t.Errorf("err = %v, want job name", err)
	}
}
