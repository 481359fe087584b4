package cache

import "github.com/dgraph-io/badger/v3"

// PutRaw stores val under key as is, bypassing the entry encoding.
func (s *Store) PutRaw(key uint64, val []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(dbKey(key), val)
	})
}
