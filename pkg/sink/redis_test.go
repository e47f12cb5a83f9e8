package sink

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/synthgraph/pkg/errors"
)

func setupRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	r, err := NewRedis(context.Background(), RedisOptions{
		URL:    fmt.Sprintf("redis://%s", mr.Addr()),
		Prefix: "g:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

func TestRedisBatches(t *testing.T) {
	ctx := context.Background()
	r, mr := setupRedis(t)

	a, err := r.CreateNode(ctx, "Person")
	require.NoError(t, err)
	b, err := r.CreateNode(ctx, "Person")
	require.NoError(t, err)

	// Nothing is visible before the batch commits.
	assert.False(t, mr.Exists(r.NodeKey(a)))

	require.NoError(t, r.Commit(ctx))
	assert.Equal(t, "Person", mr.HGet(r.NodeKey(a), "label"))
	members, err := mr.Members(r.LabelKey("Person"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{string(a), string(b)}, members)

	require.NoError(t, r.CreateRelationship(ctx, a, b, "FRIEND_OF"))
	require.NoError(t, r.Commit(ctx))
	rels, err := mr.List(r.RelationshipKey("FRIEND_OF"))
	require.NoError(t, err)
	assert.Equal(t, []string{string(a) + "|" + string(b)}, rels)
}

func TestRedisEmptyCommit(t *testing.T) {
	r, _ := setupRedis(t)
	assert.NoError(t, r.Commit(context.Background()))
}

func TestRedisCommitFailure(t *testing.T) {
	ctx := context.Background()
	r, mr := setupRedis(t)

	_, err := r.CreateNode(ctx, "Person")
	require.NoError(t, err)
	mr.Close()

	err = r.Commit(ctx)
	assert.True(t, errors.Is(err, errors.ErrCodeSinkFailure), "err = %v", err)
}

func TestNewRedisUnreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedis(context.Background(), RedisOptions{URL: "redis://" + addr})
	assert.True(t, errors.Is(err, errors.ErrCodeSinkFailure), "err = %v", err)
}
