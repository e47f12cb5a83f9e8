package sink

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisOptions configures the Redis sink.
type RedisOptions struct {
	// URL is the connection string (e.g. "redis://localhost:6379/0").
	URL string
	// Prefix is prepended to every key.
	Prefix string
	// DialTimeout bounds connection establishment and the initial ping.
	DialTimeout time.Duration
}

// Redis stores each node as a hash node:<id> with a label field, indexes
// nodes per label in the set label:<label> and appends relationships as
// "from|to" to the list rel:<type>. Each batch is one MULTI/EXEC.
type Redis struct {
	client *redis.Client
	pipe   redis.Pipeliner
	prefix string
}

// NewRedis connects to Redis and verifies the connection with PING.
func NewRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	if opts.URL == "" {
		opts.URL = "redis://localhost:6379"
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	ro, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, failure(err, "parse redis url")
	}
	ro.DialTimeout = opts.DialTimeout

	client := redis.NewClient(ro)
	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, failure(err, "connect to redis")
	}
	return &Redis{client: client, pipe: client.TxPipeline(), prefix: opts.Prefix}, nil
}

// NodeKey returns the key of the hash holding node id.
func (r *Redis) NodeKey(id NodeID) string { return r.prefix + "node:" + string(id) }

// LabelKey returns the key of the set of nodes with label.
func (r *Redis) LabelKey(label string) string { return r.prefix + "label:" + label }

// RelationshipKey returns the key of the list of relationships of relType.
func (r *Redis) RelationshipKey(relType string) string { return r.prefix + "rel:" + relType }

// CreateNode queues the node in the current batch.
func (r *Redis) CreateNode(ctx context.Context, label string) (NodeID, error) {
	id := NodeID(uuid.NewString())
	r.pipe.HSet(ctx, r.NodeKey(id), "label", label)
	r.pipe.SAdd(ctx, r.LabelKey(label), string(id))
	return id, nil
}

// CreateRelationship queues the relationship in the current batch.
func (r *Redis) CreateRelationship(ctx context.Context, from, to NodeID, relType string) error {
	r.pipe.RPush(ctx, r.RelationshipKey(relType), string(from)+"|"+string(to))
	return nil
}

// Commit executes the queued batch atomically.
func (r *Redis) Commit(ctx context.Context) error {
	if r.pipe.Len() == 0 {
		return nil
	}
	_, err := r.pipe.Exec(ctx)
	r.pipe = r.client.TxPipeline()
	return failure(err, "exec redis batch")
}

// Close discards queued commands and closes the client.
func (r *Redis) Close() error {
	r.pipe.Discard()
	return r.client.Close()
}

var _ Sink = (*Redis)(nil)
