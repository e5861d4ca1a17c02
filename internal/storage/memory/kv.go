// Package memory provides an in-memory storage driver. State does not
// survive a restart; it exists for tests and ephemeral runs.
package memory

import (
	"context"
	"sync"
)

// KV implements storage.KV over a map.
type KV struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewKV creates an empty in-memory driver.
func NewKV() *KV {
	return &KV{data: make(map[string][]byte)}
}

func (k *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	value, ok := k.data[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (k *KV) Set(ctx context.Context, key string, value []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	k.data[key] = stored
	return nil
}

func (k *KV) Delete(ctx context.Context, key string) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	delete(k.data, key)
	return nil
}

func (k *KV) Close() error {
	return nil
}
