package store

import (
	"fmt"
	"strconv"
	"strings"

	bolt "go.etcd.io/bbolt"
	. "github.com/zem-editor/zem/pkg/store/storedefs"
)

func init() {
	initDB["initialize mark table"] = func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucketMark))
		return err
	}
}

// Mark records are stored under the file path, as "line:col" in text so
// that dumping the database remains readable.
func marshalMark(line, col int) []byte {
	return []byte(strconv.Itoa(line) + ":" + strconv.Itoa(col))
}

func unmarshalMark(path string, data []byte) (Mark, error) {
	lineText, colText, ok := strings.Cut(string(data), ":")
	if !ok {
		return Mark{}, fmt.Errorf("bad mark record for %s: %q", path, data)
	}
	line, err := strconv.Atoi(lineText)
	if err != nil {
		return Mark{}, fmt.Errorf("bad mark record for %s: %q", path, data)
	}
	col, err := strconv.Atoi(colText)
	if err != nil {
		return Mark{}, fmt.Errorf("bad mark record for %s: %q", path, data)
	}
	return Mark{Path: path, Line: line, Col: col}, nil
}

// SetMark remembers the cursor position for a file, overwriting any
// previous mark.
func (s *dbStore) SetMark(path string, line, col int) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketMark))
		return b.Put([]byte(path), marshalMark(line, col))
	})
}

// Mark returns the remembered cursor position for a file.
func (s *dbStore) Mark(path string) (Mark, error) {
	var m Mark
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketMark))
		v := b.Get([]byte(path))
		if v == nil {
			return ErrNoMark
		}
		var err error
		m, err = unmarshalMark(path, v)
		return err
	})
	return m, err
}

// DelMark forgets the mark for a file.
func (s *dbStore) DelMark(path string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketMark))
		return b.Delete([]byte(path))
	})
}

// Marks lists all marks, ordered by path.
func (s *dbStore) Marks() ([]Mark, error) {
	var marks []Mark
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(bucketMark))
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			m, err := unmarshalMark(string(k), v)
			if err != nil {
				return err
			}
			marks = append(marks, m)
		}
		return nil
	})
	return marks, err
}
