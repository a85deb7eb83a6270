package store

import (
	"errors"
	"maps"
	"slices"
	"sync"
)

// errReadOnly is returned when writing within View.
var errReadOnly = errors.New("read-only transaction")

// MemoryBackend implements Backend in memory. Nothing is persisted.
// Update works on a copy of the buckets that replaces them only when fn succeeds.
type MemoryBackend struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		buckets: make(map[string]map[string][]byte),
	}
}

// CreateBucket creates a bucket if it does not exist yet.
func (m *MemoryBackend) CreateBucket(name string) error {
	return m.Update(func(tx Transaction) error {
		return tx.CreateBucket(name)
	})
}

// BucketExists reports whether the bucket exists.
func (m *MemoryBackend) BucketExists(name string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.buckets[name]
	return exists, nil
}

// Put stores a copy of value in a bucket.
func (m *MemoryBackend) Put(bucket, key string, value []byte) error {
	return m.Update(func(tx Transaction) error {
		bkt, err := mustBucket(tx, bucket)
		if err != nil {
			return err
		}
		return bkt.Put(key, value)
	})
}

// Get retrieves a copy of a value from a bucket.
func (m *MemoryBackend) Get(bucket, key string) ([]byte, error) {
	var value []byte
	err := m.View(func(tx Transaction) error {
		bkt, err := mustBucket(tx, bucket)
		if err != nil {
			return err
		}
		if v := bkt.Get(key); v != nil {
			value = append([]byte{}, v...)
		}
		return nil
	})
	return value, err
}

// Delete removes a key from a bucket.
func (m *MemoryBackend) Delete(bucket, key string) error {
	return m.Update(func(tx Transaction) error {
		bkt, err := mustBucket(tx, bucket)
		if err != nil {
			return err
		}
		return bkt.Delete(key)
	})
}

// ForEach iterates over a bucket in key order.
func (m *MemoryBackend) ForEach(bucket string, fn func(k string, v []byte) error) error {
	return m.View(func(tx Transaction) error {
		bkt, err := mustBucket(tx, bucket)
		if err != nil {
			return err
		}
		return bkt.ForEach(fn)
	})
}

// Update executes fn on a copy of the buckets, committed only if fn succeeds.
func (m *MemoryBackend) Update(fn func(tx Transaction) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	buckets := make(map[string]map[string][]byte, len(m.buckets))
	for name, bkt := range m.buckets {
		buckets[name] = maps.Clone(bkt)
	}

	if err := fn(&memoryTransaction{buckets: buckets, writable: true}); err != nil {
		return err
	}

	m.buckets = buckets
	return nil
}

// View executes fn within a read-only transaction.
func (m *MemoryBackend) View(fn func(tx Transaction) error) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return fn(&memoryTransaction{buckets: m.buckets})
}

// Close is a no-op.
func (m *MemoryBackend) Close() error {
	return nil
}

type memoryTransaction struct {
	buckets  map[string]map[string][]byte
	writable bool
}

func (t *memoryTransaction) CreateBucket(name string) error {
	if !t.writable {
		return errReadOnly
	}
	if _, exists := t.buckets[name]; !exists {
		t.buckets[name] = make(map[string][]byte)
	}
	return nil
}

func (t *memoryTransaction) Bucket(name string) Bucket {
	bkt, exists := t.buckets[name]
	if !exists {
		return nil
	}
	return memoryBucket{entries: bkt, writable: t.writable}
}

type memoryBucket struct {
	entries  map[string][]byte
	writable bool
}

func (b memoryBucket) Put(key string, value []byte) error {
	if !b.writable {
		return errReadOnly
	}
	// Stored values never alias caller memory.
	b.entries[key] = append([]byte{}, value...)
	return nil
}

func (b memoryBucket) Get(key string) []byte {
	return b.entries[key]
}

func (b memoryBucket) Delete(key string) error {
	if !b.writable {
		return errReadOnly
	}
	delete(b.entries, key)
	return nil
}

func (b memoryBucket) ForEach(fn func(k string, v []byte) error) error {
	for _, k := range slices.Sorted(maps.Keys(b.entries)) {
		if err := fn(k, b.entries[k]); err != nil {
			return err
		}
	}
	return nil
}
