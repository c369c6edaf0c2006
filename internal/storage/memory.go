package storage

import (
	"context"
	"sync"
)

// Memory keeps the encoded values in a map. It is safe for concurrent use.
type Memory struct {
	values map[string][]byte
	mutex  sync.RWMutex
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string, dst any) (bool, error) {
	if key == "" {
		return false, ErrInvalidKey
	}
	m.mutex.RLock()
	data, ok := m.values[key]
	m.mutex.RUnlock()
	if !ok {
		return false, nil
	}
	return true, decode(key, data, dst)
}

func (m *Memory) Set(_ context.Context, key string, value any) error {
	data, err := encode(key, value)
	if err != nil {
		return err
	}
	m.mutex.Lock()
	m.values[key] = data
	m.mutex.Unlock()
	return nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	m.mutex.Lock()
	delete(m.values, key)
	m.mutex.Unlock()
	return nil
}

// Len returns the number of stored keys
func (m *Memory) Len() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.values)
}
