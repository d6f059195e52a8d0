// Package boltdb реализует хранилище сессии клиента поверх bbolt.
package boltdb

import (
	"context"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var bucketAuth = []byte("auth")

// openTimeout ограничивает ожидание файловой блокировки, если клиент уже запущен
const openTimeout = time.Second

// Storage хранит данные клиента в одном файле bbolt
type Storage struct {
	db  *bbolt.DB
	now func() time.Time
}

// New открывает (или создает) базу по пути dbPath
func New(ctx context.Context, dbPath string) (*Storage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	db, err := bbolt.Open(dbPath, 0600, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	s := &Storage{db: db, now: time.Now}

	if err := s.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return s, nil
}

// Close закрывает базу. Повторный вызов безопасен.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketAuth); err != nil {
			return fmt.Errorf("failed to create auth bucket: %w", err)
		}
		return nil
	})
}
