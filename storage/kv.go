// Package storage provides the string-keyed record stores that back the
// estimator's persisted state (estimate document, price catalog, company
// profile and header image).
package storage

import (
	"errors"
	"sync"
)

// ErrNotFound is returned by Get when no record exists for the key.
var ErrNotFound = errors.New("storage: record not found")

// ErrQuotaExceeded is returned by Set when a write would push the store past
// its size limit.
var ErrQuotaExceeded = errors.New("storage: quota exceeded")

// KV is a durable string-keyed record store.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryKV is an in-process KV. A positive quota caps the total number of
// bytes (keys plus values) the store will hold.
type MemoryKV struct {
	mu     sync.Mutex
	quota  int
	values map[string]string
}

// NewMemoryKV returns an empty, unlimited MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{values: make(map[string]string)}
}

// WithQuota sets the byte limit and returns the store for chaining.
func (m *MemoryKV) WithQuota(bytes int) *MemoryKV {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quota = bytes
	return m
}

func (m *MemoryKV) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.quota > 0 {
		used := 0
		for k, v := range m.values {
			if k == key {
				continue
			}
			used += len(k) + len(v)
		}
		if used+len(key)+len(value) > m.quota {
			return ErrQuotaExceeded
		}
	}
	m.values[key] = value
	return nil
}

func (m *MemoryKV) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}
