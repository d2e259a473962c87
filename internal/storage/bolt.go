package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"

	"wardrobe/internal/logger"
	"wardrobe/internal/metrics"
)

// BoltBackend keeps each document in its own bucket, one bolt key per top-level
// document key. Save still replaces the whole bucket, so the round-trip semantics
// match the file backend.
type BoltBackend struct {
	db *bolt.DB
}

func NewBoltBackend(path string) (*BoltBackend, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt %s: %w", path, err)
	}
	return &BoltBackend{db: db}, nil
}

func (b *BoltBackend) Load(name string) (Document, error) {
	doc := Document{}
	corrupt := false
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(name))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, v []byte) error {
			if !json.Valid(v) {
				corrupt = true
				return nil
			}
			// bolt-owned memory is only valid inside the transaction
			doc[string(k)] = append(json.RawMessage(nil), v...)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("load document %s: %w", name, err)
	}
	if corrupt {
		metrics.StoreCorruptDocuments.WithLabelValues(name).Inc()
		logger.Named("storage").Warn("bolt document holds invalid JSON, treating as empty",
			zap.String("document", name))
		return Document{}, nil
	}
	return doc, nil
}

func (b *BoltBackend) Save(name string, doc Document) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket([]byte(name)); err != nil && err != bolt.ErrBucketNotFound {
			return err
		}
		bucket, err := tx.CreateBucket([]byte(name))
		if err != nil {
			return err
		}
		for k, v := range doc {
			if err := bucket.Put([]byte(k), v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save document %s: %w", name, err)
	}
	return nil
}

func (b *BoltBackend) Close() error {
	return b.db.Close()
}
