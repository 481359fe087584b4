// Package cache memoizes A-trail search verdicts on disk.
//
// Entries are keyed by a 64-bit xxhash of the rotation system, so the same
// edge code always maps to the same entry regardless of the file it came
// from. Only finished verdicts are stored: a found trail or a proven absence.
// Aborted searches say nothing about the graph and are never cached.
//
// The store is a badger database. An empty directory opens an in-memory
// store, which is what tests and one-shot runs use.
package cache

import (
	"encoding/binary"
	"encoding/json"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"

	"github.com/katalvlaran/atrail/rotation"
)

var (
	// ErrClosed is returned by operations on a closed Store.
	ErrClosed = errors.New("cache: store is closed")

	// ErrCorrupt indicates a stored value that does not decode.
	ErrCorrupt = errors.New("cache: corrupt entry")
)

// keyPrefix namespaces verdict keys; bump the version when Entry changes.
var keyPrefix = []byte("atrail/v1/")

// Entry is one cached verdict. Edges and Vertices are set only when Found.
type Entry struct {
	Found    bool  `json:"found"`
	Edges    []int `json:"edges,omitempty"`
	Vertices []int `json:"vertices,omitempty"`
}

// Store is a verdict cache. It is safe for concurrent use.
type Store struct {
	mu     sync.RWMutex
	db     *badger.DB
	closed bool
}

// Open opens (creating if needed) the store in dir, or an in-memory store if
// dir is empty.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "cache: open %q", dir)
	}

	return &Store{db: db}, nil
}

// Key hashes the rotation system of g: the vertex count, then every rotation
// prefixed by its length. Equal edge codes give equal keys.
func Key(g *rotation.Graph) uint64 {
	d := xxhash.New()
	var buf [binary.MaxVarintLen64]byte
	put := func(x int) {
		n := binary.PutUvarint(buf[:], uint64(x))
		_, _ = d.Write(buf[:n])
	}

	put(g.VertexCount())
	for v := 0; v < g.VertexCount(); v++ {
		put(g.Degree(v))
		for i := 0; i < g.Degree(v); i++ {
			put(g.EdgeAt(v, i))
		}
	}

	return d.Sum64()
}

func dbKey(key uint64) []byte {
	k := make([]byte, len(keyPrefix)+8)
	copy(k, keyPrefix)
	binary.BigEndian.PutUint64(k[len(keyPrefix):], key)

	return k
}

// Get returns the entry for key. ok is false if there is none.
func (s *Store) Get(key uint64) (e Entry, ok bool, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Entry{}, false, ErrClosed
	}

	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(dbKey(key))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		ok = true
		return item.Value(func(val []byte) error {
			if err := json.Unmarshal(val, &e); err != nil {
				return errors.Wrapf(ErrCorrupt, "key %016x: %v", key, err)
			}
			return nil
		})
	})
	if err != nil {
		return Entry{}, false, errors.Wrap(err, "cache: get")
	}

	return e, ok, nil
}

// Put stores e under key, replacing any previous entry.
func (s *Store) Put(key uint64, e Entry) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}

	val, err := json.Marshal(e)
	if err != nil {
		return errors.Wrap(err, "cache: encode")
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(dbKey(key), val)
	})

	return errors.Wrap(err, "cache: put")
}

// Close flushes and closes the store. Closing twice is a no-op.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	return errors.Wrap(s.db.Close(), "cache: close")
}
