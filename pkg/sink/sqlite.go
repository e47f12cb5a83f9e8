package sink

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/matzehuels/synthgraph/pkg/graph"
)

// SQLite writes nodes and relationships to a SQLite database. Each batch
// runs in its own transaction.
type SQLite struct {
	db *sql.DB
	tx *sql.Tx

	insertNode *sql.Stmt
	insertRel  *sql.Stmt
}

// NewSQLite opens (or creates) the database at path and applies the
// schema. An empty path or ":memory:" opens a private in-memory database.
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	dsn := path
	if path == "" || path == ":memory:" {
		dsn = ":memory:"
	} else {
		dsn = "file:" + path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, failure(err, "open sqlite %s", path)
	}
	// A single connection keeps an in-memory database alive and serializes
	// writers.
	db.SetMaxOpenConns(1)

	s := &SQLite{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, failure(err, "migrate sqlite schema")
	}
	return s, nil
}

func (s *SQLite) migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS nodes (
		id TEXT PRIMARY KEY,
		label TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS relationships (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		source_id TEXT NOT NULL REFERENCES nodes(id),
		target_id TEXT NOT NULL REFERENCES nodes(id),
		type TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_nodes_label ON nodes(label);
	CREATE INDEX IF NOT EXISTS idx_relationships_source ON relationships(source_id);
	CREATE INDEX IF NOT EXISTS idx_relationships_target ON relationships(target_id);
	CREATE INDEX IF NOT EXISTS idx_relationships_type ON relationships(type);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// begin opens the batch transaction on first use.
func (s *SQLite) begin(ctx context.Context) error {
	if s.tx != nil {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if s.insertNode, err = tx.PrepareContext(ctx, `INSERT INTO nodes (id, label) VALUES (?, ?)`); err != nil {
		tx.Rollback()
		return err
	}
	if s.insertRel, err = tx.PrepareContext(ctx,
		`INSERT INTO relationships (source_id, target_id, type) VALUES (?, ?, ?)`); err != nil {
		tx.Rollback()
		return err
	}
	s.tx = tx
	return nil
}

// CreateNode inserts a node with a fresh UUID.
func (s *SQLite) CreateNode(ctx context.Context, label string) (NodeID, error) {
	if err := s.begin(ctx); err != nil {
		return "", failure(err, "begin sqlite batch")
	}
	id := uuid.NewString()
	if _, err := s.insertNode.ExecContext(ctx, id, label); err != nil {
		return "", failure(err, "insert node")
	}
	return NodeID(id), nil
}

// CreateRelationship inserts a relationship row.
func (s *SQLite) CreateRelationship(ctx context.Context, from, to NodeID, relType string) error {
	if err := s.begin(ctx); err != nil {
		return failure(err, "begin sqlite batch")
	}
	if _, err := s.insertRel.ExecContext(ctx, string(from), string(to), relType); err != nil {
		return failure(err, "insert relationship %s-%s", from, to)
	}
	return nil
}

// Commit commits the open batch transaction, if any.
func (s *SQLite) Commit(context.Context) error {
	if s.tx == nil {
		return nil
	}
	tx := s.tx
	s.tx, s.insertNode, s.insertRel = nil, nil, nil
	return failure(tx.Commit(), "commit sqlite batch")
}

// Close rolls back uncommitted work and closes the database.
func (s *SQLite) Close() error {
	if s.tx != nil {
		_ = s.tx.Rollback()
		s.tx = nil
	}
	return s.db.Close()
}

// Counts returns the number of stored nodes and relationships.
func (s *SQLite) Counts(ctx context.Context) (nodes, rels int, err error) {
	row := s.db.QueryRowContext(ctx, `SELECT (SELECT COUNT(*) FROM nodes), (SELECT COUNT(*) FROM relationships)`)
	if err := row.Scan(&nodes, &rels); err != nil {
		return 0, 0, fmt.Errorf("count rows: %w", err)
	}
	return nodes, rels, nil
}

// Graph reads the committed graph in insertion order.
func (s *SQLite) Graph(ctx context.Context) (graph.Graph, error) {
	var g graph.Graph

	rows, err := s.db.QueryContext(ctx, `SELECT id, label FROM nodes ORDER BY rowid`)
	if err != nil {
		return g, fmt.Errorf("query nodes: %w", err)
	}
	for rows.Next() {
		var n graph.Node
		if err := rows.Scan(&n.ID, &n.Label); err != nil {
			rows.Close()
			return g, fmt.Errorf("scan node: %w", err)
		}
		g.Nodes = append(g.Nodes, n)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return g, err
	}

	rows, err = s.db.QueryContext(ctx, `SELECT source_id, target_id, type FROM relationships ORDER BY id`)
	if err != nil {
		return g, fmt.Errorf("query relationships: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e graph.Edge
		if err := rows.Scan(&e.From, &e.To, &e.Type); err != nil {
			return g, fmt.Errorf("scan relationship: %w", err)
		}
		g.Edges = append(g.Edges, e)
	}
	return g, rows.Err()
}

var _ Sink = (*SQLite)(nil)
