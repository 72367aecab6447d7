package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/ndmitry/pricetrack/internal/client/storage"
)

// SaveTokens stores the given fields in a single transaction
// Связка при refresh перезаписывается как одно целое, без
// промежуточных состояний видимых другим читателям
func (s *Storage) SaveTokens(ctx context.Context, tokens map[string][]byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketTokens)
		if bucket == nil {
			return fmt.Errorf("tokens bucket not found")
		}

		for name, value := range tokens {
			if err := bucket.Put([]byte(name), value); err != nil {
				return fmt.Errorf("failed to save token %s: %w", name, err)
			}
		}

		return nil
	})
}

// SaveToken stores a single field, overwriting any previous value
func (s *Storage) SaveToken(ctx context.Context, name string, value []byte) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketTokens)
		if bucket == nil {
			return fmt.Errorf("tokens bucket not found")
		}

		if err := bucket.Put([]byte(name), value); err != nil {
			return fmt.Errorf("failed to save token %s: %w", name, err)
		}

		return nil
	})
}

// GetToken retrieves one stored field as-is
func (s *Storage) GetToken(ctx context.Context, name string) ([]byte, error) {
	var value []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketTokens)
		if bucket == nil {
			return fmt.Errorf("tokens bucket not found")
		}

		data := bucket.Get([]byte(name))
		if data == nil {
			return storage.ErrTokenNotFound
		}

		// Копируем: данные bbolt валидны только внутри транзакции
		value = make([]byte, len(data))
		copy(value, data)

		return nil
	})

	if err != nil {
		return nil, err
	}

	return value, nil
}

// DeleteTokens removes all stored fields (logout)
// Идемпотентна: пустое хранилище не считается ошибкой
func (s *Storage) DeleteTokens(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketTokens)
		if bucket == nil {
			return fmt.Errorf("tokens bucket not found")
		}

		for _, name := range []string{storage.KeyAccessToken, storage.KeyIDToken, storage.KeyRefreshToken} {
			if err := bucket.Delete([]byte(name)); err != nil {
				return fmt.Errorf("failed to delete token %s: %w", name, err)
			}
		}

		return nil
	})
}
