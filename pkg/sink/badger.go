package sink

import (
	"bytes"
	"context"
	"strings"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
)

// Key prefixes of the Badger sink.
const (
	badgerNodePrefix = "n/"
	badgerRelPrefix  = "r/"
)

// Badger stores nodes under n/<id> (value: label) and relationships under
// r/<type>/<from>/<to>. Each batch is one write batch.
type Badger struct {
	db *badger.DB
	wb *badger.WriteBatch
}

// NewBadger opens a Badger store in dir. An empty dir keeps the store in
// memory.
func NewBadger(dir string) (*Badger, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	opts.MetricsEnabled = false
	if dir == "" {
		opts.InMemory = true
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, failure(err, "open badger %s", dir)
	}
	return &Badger{db: db, wb: db.NewWriteBatch()}, nil
}

// CreateNode adds the node to the current write batch.
func (b *Badger) CreateNode(_ context.Context, label string) (NodeID, error) {
	id := uuid.NewString()
	if err := b.wb.Set([]byte(badgerNodePrefix+id), []byte(label)); err != nil {
		return "", failure(err, "stage node")
	}
	return NodeID(id), nil
}

// CreateRelationship adds the relationship to the current write batch.
func (b *Badger) CreateRelationship(_ context.Context, from, to NodeID, relType string) error {
	key := badgerRelPrefix + relType + "/" + string(from) + "/" + string(to)
	if err := b.wb.Set([]byte(key), []byte{}); err != nil {
		return failure(err, "stage relationship %s-%s", from, to)
	}
	return nil
}

// Commit flushes the write batch and starts a new one.
func (b *Badger) Commit(context.Context) error {
	err := b.wb.Flush()
	b.wb = b.db.NewWriteBatch()
	return failure(err, "flush badger batch")
}

// Close cancels the pending batch and closes the store.
func (b *Badger) Close() error {
	b.wb.Cancel()
	return b.db.Close()
}

// Counts returns the number of stored nodes and relationships.
func (b *Badger) Counts() (nodes, rels int, err error) {
	err = b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: false})
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			k := it.Item().Key()
			switch {
			case bytes.HasPrefix(k, []byte(badgerNodePrefix)):
				nodes++
			case bytes.HasPrefix(k, []byte(badgerRelPrefix)):
				rels++
			}
		}
		return nil
	})
	return nodes, rels, err
}

// Label returns the stored label of node id.
func (b *Badger) Label(id NodeID) (string, error) {
	var label string
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerNodePrefix + string(id)))
		if err != nil {
			return err
		}
		return item.Value(func(v []byte) error {
			label = string(v)
			return nil
		})
	})
	return label, err
}

// Relationships returns the stored (from, to) pairs of relType.
func (b *Badger) Relationships(relType string) ([][2]NodeID, error) {
	var out [][2]NodeID
	prefix := []byte(badgerRelPrefix + relType + "/")
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: false, Prefix: prefix})
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			rest := strings.TrimPrefix(string(it.Item().Key()), string(prefix))
			from, to, ok := strings.Cut(rest, "/")
			if ok {
				out = append(out, [2]NodeID{NodeID(from), NodeID(to)})
			}
		}
		return nil
	})
	return out, err
}

var _ Sink = (*Badger)(nil)
