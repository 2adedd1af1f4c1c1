// Package store holds all persisted collections and the operations
// over them. Every mutation is a read-modify-write of whole
// collections; the kv layer replaces each value atomically.
package store

import (
	"database/sql"
	"encoding/json"

	"github.com/averix/kanvas/internal/db"
)

// Persisted collection keys. The names are load-bearing: they match
// the data the browser version of this tool left behind.
const (
	keyUsers       = "users"
	keyBoards      = "boards"
	keyColumns     = "columns"
	keyCards       = "cards"
	keyGrants      = "authorizedEmails"
	keyCurrentUser = "currentUser"
)

// Store provides typed access to the persisted collections.
type Store struct {
	kv *db.DB
}

// New creates a store over the given kv database.
func New(kv *db.DB) *Store {
	return &Store{kv: kv}
}

// loadInto decodes the collection stored under key into out. An
// absent or unparseable value leaves out untouched: a corrupt
// collection reads as empty rather than failing. Storage errors
// still propagate.
func (s *Store) loadInto(key string, out any) error {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		// Treat malformed data as an empty collection.
		return nil
	}
	return nil
}

// save overwrites the collection stored under key with the canonical
// JSON encoding of v.
func (s *Store) save(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.kv.Put(key, string(raw))
}

// saveTx is save within an open transaction, used when one operation
// must replace several collections atomically.
func (s *Store) saveTx(tx *sql.Tx, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return db.PutTx(tx, key, string(raw))
}
