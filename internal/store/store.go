// Package store is the local key-value store fixtures are seeded into.
// Values are raw bytes grouped in named buckets. Callers choose the serialization.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrBucketNotFound is returned when an operation targets a bucket that was never created.
var ErrBucketNotFound = errors.New("bucket not found")

// Backend is a bucketed key-value store.
type Backend interface {
	CreateBucket(name string) error
	BucketExists(name string) (bool, error)

	Put(bucket, key string, value []byte) error
	// Get returns nil without error when the key is absent.
	Get(bucket, key string) ([]byte, error)
	Delete(bucket, key string) error
	// ForEach visits the bucket entries in key order.
	ForEach(bucket string, fn func(k string, v []byte) error) error

	// Update runs fn in a read-write transaction. Nothing is committed if fn returns an error.
	Update(fn func(tx Transaction) error) error
	// View runs fn in a read-only transaction.
	View(fn func(tx Transaction) error) error

	Close() error
}

// Transaction gives access to the buckets within Backend.Update or Backend.View.
type Transaction interface {
	CreateBucket(name string) error
	// Bucket returns nil if the bucket does not exist.
	Bucket(name string) Bucket
}

// Bucket is a single bucket within a transaction.
// Values returned by Get and passed to ForEach are only valid during the transaction.
// The bucket must not be modified from within ForEach.
type Bucket interface {
	Put(key string, value []byte) error
	Get(key string) []byte
	Delete(key string) error
	ForEach(fn func(k string, v []byte) error) error
}

// PutJSON stores the JSON encoding of v under key.
func PutJSON(b Bucket, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %q: %w", key, err)
	}
	return b.Put(key, data)
}

// GetJSON decodes the value stored under key into v.
// It reports false without error if the key is absent.
func GetJSON(b Bucket, key string, v any) (bool, error) {
	data := b.Get(key)
	if data == nil {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return true, fmt.Errorf("failed to decode %q: %w", key, err)
	}
	return true, nil
}
