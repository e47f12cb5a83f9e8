package sink

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
)

// Requires a reachable MongoDB; set SYNTHGRAPH_TEST_MONGO_URI to run.
func TestMongoBatches(t *testing.T) {
	uri := os.Getenv("SYNTHGRAPH_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("SYNTHGRAPH_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	m, err := NewMongo(ctx, MongoOptions{URI: uri, Database: "synthgraph_test_" + uuid.NewString()[:8]})
	if err != nil {
		t.Fatalf("NewMongo: %v", err)
	}
	defer func() {
		_ = m.nodes.Database().Drop(ctx)
		m.Close()
	}()

	a, _ := m.CreateNode(ctx, "Person")
	b, _ := m.CreateNode(ctx, "Person")
	if err := m.Commit(ctx); err != nil {
		t.Fatal(err)
	}
	if err := m.CreateRelationship(ctx, a, b, "FRIEND_OF"); err != nil {
		t.Fatal(err)
	}
	if err := m.Commit(ctx); err != nil {
		t.Fatal(err)
	}

	nodes, rels, err := m.Counts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if nodes != 2 || rels != 1 {
		t.Errorf("Counts() = %d, %d, want 2, 1", nodes, rels)
	}
}
