package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var bucketDocuments = []byte("documents")

// BoltStorage implements Storage on an embedded bbolt database. Every
// document lives in one bucket; writes are transactional.
type BoltStorage struct {
	db *bolt.DB
}

// NewBoltStorage opens (or creates) a bbolt database at path
func NewBoltStorage(path string) (*BoltStorage, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDocuments)
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("bbolt init: %w", err)
	}

	return &BoltStorage{db: db}, nil
}

// Save stores data as JSON under key
func (s *BoltStorage) Save(ctx context.Context, key string, data interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDocuments).Put([]byte(key), jsonData)
	})
}

// Load decodes the document stored under key into dest
func (s *BoltStorage) Load(ctx context.Context, key string, dest interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var jsonData []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		// bbolt slices are only valid within the transaction
		if v := tx.Bucket(bucketDocuments).Get([]byte(key)); v != nil {
			jsonData = make([]byte, len(v))
			copy(jsonData, v)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if jsonData == nil {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}

	if err := json.Unmarshal(jsonData, dest); err != nil {
		return fmt.Errorf("failed to unmarshal data: %w", err)
	}
	return nil
}

// Delete removes key; deleting a missing key is not an error
func (s *BoltStorage) Delete(ctx context.Context, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDocuments).Delete([]byte(key))
	})
}

// Exists reports whether key is stored
func (s *BoltStorage) Exists(ctx context.Context, key string) (bool, error) {
	var exists bool
	err := s.db.View(func(tx *bolt.Tx) error {
		exists = tx.Bucket(bucketDocuments).Get([]byte(key)) != nil
		return nil
	})
	return exists, err
}

// Keys returns keys with prefix in ascending byte order
func (s *BoltStorage) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	p := []byte(prefix)

	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketDocuments).Cursor()
		for k, _ := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = c.Next() {
			keys = append(keys, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Close closes the underlying bbolt database
func (s *BoltStorage) Close() error {
	return s.db.Close()
}
