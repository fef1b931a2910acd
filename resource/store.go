// Package resource stores named skeleton sources in a bbolt file so
// view specs can refer to animation data by name instead of shipping
// loose JSON files.
package resource

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
)

const skeletonsBucket = "skeletons"

// Store is a bbolt-backed blob store keyed by resource name.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) a resource file.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0666, nil)
	if err != nil {
		return nil, fmt.Errorf("resource: open %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Put stores a skeleton source under a name.
func (s *Store) Put(name string, data []byte) error {
	if name == "" {
		return fmt.Errorf("resource: empty name")
	}
	err := s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(skeletonsBucket))
		if err != nil {
			return err
		}
		return b.Put([]byte(name), data)
	})
	if err != nil {
		return fmt.Errorf("resource: put %s: %w", name, err)
	}
	return nil
}

// Get returns the skeleton source stored under a name.
func (s *Store) Get(name string) ([]byte, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(skeletonsBucket))
		if b == nil {
			return fmt.Errorf("resource: %s not found", name)
		}
		v := b.Get([]byte(name))
		if v == nil {
			return fmt.Errorf("resource: %s not found", name)
		}
		data = append([]byte(nil), v...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
