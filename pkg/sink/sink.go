package sink

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/matzehuels/synthgraph/pkg/errors"
)

// NodeID is the identity a sink assigns to a created node.
type NodeID string

// Sink creates nodes and relationships in an external store.
// Implementations are used by one run at a time.
type Sink interface {
	// CreateNode creates a node with the given label and returns its id.
	CreateNode(ctx context.Context, label string) (NodeID, error)

	// CreateRelationship creates an undirected relationship of relType
	// between two previously created nodes.
	CreateRelationship(ctx context.Context, from, to NodeID, relType string) error

	// Commit ends the current unit of work.
	Commit(ctx context.Context) error

	// Close releases the store. Uncommitted work is discarded.
	Close() error
}

// Kind names a sink adapter.
type Kind string

// Supported sink kinds.
const (
	KindMemory Kind = "memory"
	KindSQLite Kind = "sqlite"
	KindRedis  Kind = "redis"
	KindMongo  Kind = "mongo"
	KindBadger Kind = "badger"
)

// Kinds lists the supported sink kinds.
var Kinds = []Kind{KindMemory, KindSQLite, KindRedis, KindMongo, KindBadger}

// ParseKind validates a sink kind. The empty string means memory.
func ParseKind(s string) (Kind, error) {
	if s == "" {
		return KindMemory, nil
	}
	k := Kind(s)
	if !slices.Contains(Kinds, k) {
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown sink %q (must be one of: memory, sqlite, redis, mongo, badger)", s)
	}
	return k, nil
}

// Options selects and configures a sink.
type Options struct {
	Kind Kind `json:"kind" toml:"kind" yaml:"kind"`

	// Path is the SQLite database file or the Badger directory. An empty
	// path opens an in-memory store.
	Path string `json:"path,omitempty" toml:"path" yaml:"path"`

	RedisURL    string `json:"redis_url,omitempty" toml:"redis_url" yaml:"redis_url"`
	RedisPrefix string `json:"redis_prefix,omitempty" toml:"redis_prefix" yaml:"redis_prefix"`

	MongoURI      string `json:"mongo_uri,omitempty" toml:"mongo_uri" yaml:"mongo_uri"`
	MongoDatabase string `json:"mongo_database,omitempty" toml:"mongo_database" yaml:"mongo_database"`
}

// LockedDir returns the directory a Badger sink locks while open, or ""
// when opts holds no exclusive lock. Two open sinks may not share it.
func (o Options) LockedDir() string {
	if o.Kind != KindBadger || o.Path == "" {
		return ""
	}
	return filepath.Clean(o.Path)
}

// Open creates the sink described by opts.
func Open(ctx context.Context, opts Options) (Sink, error) {
	kind, err := ParseKind(string(opts.Kind))
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindMemory:
		return NewMemory(), nil
	case KindSQLite:
		return NewSQLite(ctx, opts.Path)
	case KindRedis:
		return NewRedis(ctx, RedisOptions{URL: opts.RedisURL, Prefix: opts.RedisPrefix})
	case KindMongo:
		return NewMongo(ctx, MongoOptions{URI: opts.MongoURI, Database: opts.MongoDatabase})
	case KindBadger:
		return NewBadger(opts.Path)
	}
	return nil, fmt.Errorf("unreachable sink kind %q", kind)
}

// failure wraps err as a SINK_FAILURE for operation op.
func failure(err error, op string, args ...any) error {
	if err == nil {
		return nil
	}
	return errors.Wrap(errors.ErrCodeSinkFailure, err, op, args...)
}
