package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/ndmitry/pricetrack/internal/client/storage"
)

// BoltDB bucket names
var bucketTokens = []byte("tokens")

// Storage represents BoltDB-backed token storage for the client
type Storage struct {
	db *bbolt.DB
}

// Compile-time check that Storage implements storage.TokenStorage
var _ storage.TokenStorage = (*Storage)(nil)

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db}

	// Инициализируем bucket для токенов
	if err := s.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketTokens); err != nil {
			return fmt.Errorf("failed to create tokens bucket: %w", err)
		}
		return nil
	})
}
