// SPDX-License-Identifier: MIT
package kv

import (
	"sync"
)

// Memory is an in-process substrate. A positive capacity caps the total
// number of bytes held across all keys and values.
type Memory struct {
	mu       sync.RWMutex
	data     map[string]string
	capacity int
}

// NewMemory creates an empty in-memory substrate. capacity <= 0 means
// unlimited.
func NewMemory(capacity int) *Memory {
	return &Memory{
		data:     make(map[string]string),
		capacity: capacity,
	}
}

func (m *Memory) Read(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Write(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.capacity > 0 {
		used := 0
		for k, v := range m.data {
			if k == key {
				continue
			}
			used += len(k) + len(v)
		}
		if used+len(key)+len(value) > m.capacity {
			return ErrQuotaExceeded
		}
	}

	m.data[key] = value
	return nil
}

func (m *Memory) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

// Used returns the number of bytes currently stored
func (m *Memory) Used() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	used := 0
	for k, v := range m.data {
		used += len(k) + len(v)
	}
	return used
}
