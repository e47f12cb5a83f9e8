package sink

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoOptions configures the MongoDB sink.
type MongoOptions struct {
	// URI is the connection string (e.g. "mongodb://localhost:27017").
	URI string
	// Database defaults to "synthgraph".
	Database string
	// ConnectTimeout bounds connection establishment and the initial ping.
	ConnectTimeout time.Duration
}

// Mongo buffers documents per batch and writes them with one InsertMany per
// collection on Commit.
type Mongo struct {
	client *mongo.Client
	nodes  *mongo.Collection
	rels   *mongo.Collection

	pendingNodes []any
	pendingRels  []any
}

// nodeDoc is the document stored in the nodes collection.
type nodeDoc struct {
	ID    string `bson:"_id"`
	Label string `bson:"label"`
}

// relDoc is the document stored in the relationships collection.
type relDoc struct {
	From string `bson:"from"`
	To   string `bson:"to"`
	Type string `bson:"type"`
}

// NewMongo connects to MongoDB and verifies the connection with a ping.
func NewMongo(ctx context.Context, opts MongoOptions) (*Mongo, error) {
	if opts.URI == "" {
		opts.URI = "mongodb://localhost:27017"
	}
	if opts.Database == "" {
		opts.Database = "synthgraph"
	}
	if opts.ConnectTimeout == 0 {
		opts.ConnectTimeout = 10 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()
	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(opts.URI))
	if err != nil {
		return nil, failure(err, "connect to mongo")
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, failure(err, "ping mongo")
	}

	db := client.Database(opts.Database)
	m := &Mongo{
		client: client,
		nodes:  db.Collection("nodes"),
		rels:   db.Collection("relationships"),
	}
	if _, err := m.rels.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "from", Value: 1}}}); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, failure(err, "create relationship index")
	}
	return m, nil
}

// CreateNode buffers a node document.
func (m *Mongo) CreateNode(_ context.Context, label string) (NodeID, error) {
	id := uuid.NewString()
	m.pendingNodes = append(m.pendingNodes, nodeDoc{ID: id, Label: label})
	return NodeID(id), nil
}

// CreateRelationship buffers a relationship document.
func (m *Mongo) CreateRelationship(_ context.Context, from, to NodeID, relType string) error {
	m.pendingRels = append(m.pendingRels, relDoc{From: string(from), To: string(to), Type: relType})
	return nil
}

// Commit writes the buffered documents.
func (m *Mongo) Commit(ctx context.Context) error {
	if len(m.pendingNodes) > 0 {
		if _, err := m.nodes.InsertMany(ctx, m.pendingNodes); err != nil {
			return failure(err, "insert %d nodes", len(m.pendingNodes))
		}
		m.pendingNodes = m.pendingNodes[:0]
	}
	if len(m.pendingRels) > 0 {
		if _, err := m.rels.InsertMany(ctx, m.pendingRels); err != nil {
			return failure(err, "insert %d relationships", len(m.pendingRels))
		}
		m.pendingRels = m.pendingRels[:0]
	}
	return nil
}

// Counts returns the number of stored node and relationship documents.
func (m *Mongo) Counts(ctx context.Context) (nodes, rels int64, err error) {
	if nodes, err = m.nodes.CountDocuments(ctx, bson.D{}); err != nil {
		return 0, 0, err
	}
	if rels, err = m.rels.CountDocuments(ctx, bson.D{}); err != nil {
		return 0, 0, err
	}
	return nodes, rels, nil
}

// Close drops buffered documents and disconnects.
func (m *Mongo) Close() error {
	m.pendingNodes, m.pendingRels = nil, nil
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return m.client.Disconnect(ctx)
}

var _ Sink = (*Mongo)(nil)
