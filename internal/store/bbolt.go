package store

import (
	"errors"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"
)

// openTimeout bounds the wait for the file lock held by another process.
const openTimeout = time.Second

// BboltBackend implements Backend on a bbolt database file.
type BboltBackend struct {
	db *bolt.DB
}

// NewBboltBackend opens, or creates, the database at path.
func NewBboltBackend(path string) (*BboltBackend, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open store %q: %w", path, err)
	}

	return &BboltBackend{db: db}, nil
}

// CreateBucket creates a bucket if it does not exist yet.
func (b *BboltBackend) CreateBucket(name string) error {
	return b.Update(func(tx Transaction) error {
		return tx.CreateBucket(name)
	})
}

// BucketExists reports whether the bucket exists.
func (b *BboltBackend) BucketExists(name string) (bool, error) {
	exists := false
	err := b.db.View(func(tx *bolt.Tx) error {
		exists = tx.Bucket([]byte(name)) != nil
		return nil
	})
	return exists, err
}

// Put stores a value in a bucket.
func (b *BboltBackend) Put(bucket, key string, value []byte) error {
	return b.Update(func(tx Transaction) error {
		bkt, err := mustBucket(tx, bucket)
		if err != nil {
			return err
		}
		return bkt.Put(key, value)
	})
}

// Get retrieves a copy of a value from a bucket.
func (b *BboltBackend) Get(bucket, key string) ([]byte, error) {
	var value []byte
	err := b.View(func(tx Transaction) error {
		bkt, err := mustBucket(tx, bucket)
		if err != nil {
			return err
		}
		if v := bkt.Get(key); v != nil {
			// Only valid during the transaction.
			value = append([]byte{}, v...)
		}
		return nil
	})
	return value, err
}

// Delete removes a key from a bucket.
func (b *BboltBackend) Delete(bucket, key string) error {
	return b.Update(func(tx Transaction) error {
		bkt, err := mustBucket(tx, bucket)
		if err != nil {
			return err
		}
		return bkt.Delete(key)
	})
}

// ForEach iterates over a bucket in key order.
func (b *BboltBackend) ForEach(bucket string, fn func(k string, v []byte) error) error {
	return b.View(func(tx Transaction) error {
		bkt, err := mustBucket(tx, bucket)
		if err != nil {
			return err
		}
		return bkt.ForEach(fn)
	})
}

// Update executes fn within a read-write transaction.
func (b *BboltBackend) Update(fn func(tx Transaction) error) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		return fn(bboltTransaction{tx: tx})
	})
}

// View executes fn within a read-only transaction.
func (b *BboltBackend) View(fn func(tx Transaction) error) error {
	return b.db.View(func(tx *bolt.Tx) error {
		return fn(bboltTransaction{tx: tx})
	})
}

// Close closes the database.
func (b *BboltBackend) Close() error {
	return b.db.Close()
}

type bboltTransaction struct {
	tx *bolt.Tx
}

func (t bboltTransaction) CreateBucket(name string) error {
	_, err := t.tx.CreateBucketIfNotExists([]byte(name))
	return err
}

func (t bboltTransaction) Bucket(name string) Bucket {
	bkt := t.tx.Bucket([]byte(name))
	if bkt == nil {
		return nil
	}
	return bboltBucket{bucket: bkt}
}

type bboltBucket struct {
	bucket *bolt.Bucket
}

func (b bboltBucket) Put(key string, value []byte) error {
	err := b.bucket.Put([]byte(key), value)
	if errors.Is(err, berrors.ErrTxNotWritable) {
		return fmt.Errorf("cannot write %q in a read-only transaction: %w", key, err)
	}
	return err
}

func (b bboltBucket) Get(key string) []byte {
	return b.bucket.Get([]byte(key))
}

func (b bboltBucket) Delete(key string) error {
	return b.bucket.Delete([]byte(key))
}

func (b bboltBucket) ForEach(fn func(k string, v []byte) error) error {
	return b.bucket.ForEach(func(k, v []byte) error {
		return fn(string(k), v)
	})
}

// mustBucket returns the bucket or ErrBucketNotFound.
func mustBucket(tx Transaction, name string) (Bucket, error) {
	bkt := tx.Bucket(name)
	if bkt == nil {
		return nil, fmt.Errorf("%w: %s", ErrBucketNotFound, name)
	}
	return bkt, nil
}
