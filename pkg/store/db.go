// Package store abstracts the persistent storage used by zem: the command
// history and the per-file marks.
package store

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/zem-editor/zem/pkg/logutil"
	"github.com/zem-editor/zem/pkg/store/storedefs"
)

var logger = logutil.GetLogger("[store] ")

const (
	bucketCmd  = "cmd"
	bucketMark = "mark"
)

// initDB contains the steps that prepare a fresh database, keyed by a
// description used in error messages. Files add their steps in init
// functions.
var initDB = map[string]func(*bolt.Tx) error{}

// DBStore is the permanent storage backend for the editor.
type DBStore interface {
	storedefs.Store
	Close() error
}

type dbStore struct {
	db *bolt.DB
}

// NewStore creates a new Store from the given file.
func NewStore(dbname string) (DBStore, error) {
	db, err := dbOpen(dbname)
	if err != nil {
		return nil, err
	}
	return NewStoreFromDB(db)
}

func dbOpen(dbname string) (*bolt.DB, error) {
	// The daemon holds the database open for as long as it runs, so fail
	// fast instead of blocking on the file lock.
	return bolt.Open(dbname, 0o644, &bolt.Options{
		Timeout: time.Second,
	})
}

// NewStoreFromDB creates a new Store from a bolt DB.
func NewStoreFromDB(db *bolt.DB) (DBStore, error) {
	logger.Println("initializing store")
	defer logger.Println("initialized store")
	st := &dbStore{db: db}

	err := db.Update(func(tx *bolt.Tx) error {
		for name, fn := range initDB {
			if err := fn(tx); err != nil {
				return fmt.Errorf("failed to %s: %v", name, err)
			}
		}
		return nil
	})
	return st, err
}

// Close closes the store.
func (s *dbStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
