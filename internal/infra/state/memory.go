// Package state provides the in-memory implementation of the PayGuard state
// store. Records are kept as JSON documents so the store stays agnostic of
// entity types and behaves like the external key-value collaborator it stands
// in for: whole-record replacement keyed by collection and id.
package state

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Memory is a thread-safe in-memory record store.
type Memory struct {
	mu          sync.RWMutex
	collections map[string]map[string]json.RawMessage
}

// NewMemory creates an empty store.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]map[string]json.RawMessage)}
}

// Set stores record under collection/id, replacing any previous record.
func (m *Memory) Set(_ context.Context, collection, id string, record any) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("state: marshal %s/%s: %w", collection, id, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	coll, ok := m.collections[collection]
	if !ok {
		coll = make(map[string]json.RawMessage)
		m.collections[collection] = coll
	}
	coll[id] = raw
	return nil
}

// Get loads the record at collection/id into out. Returns false when absent.
func (m *Memory) Get(_ context.Context, collection, id string, out any) (bool, error) {
	m.mu.RLock()
	raw, ok := m.collections[collection][id]
	m.mu.RUnlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("state: unmarshal %s/%s: %w", collection, id, err)
	}
	return true, nil
}

// GetGroup loads every record in collection into out, a pointer to a slice.
// Records are ordered by id so repeated scans see a stable iteration order.
func (m *Memory) GetGroup(_ context.Context, collection string, out any) error {
	m.mu.RLock()
	coll := m.collections[collection]
	ids := make([]string, 0, len(coll))
	for id := range coll {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, id := range ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(coll[id])
	}
	buf.WriteByte(']')
	m.mu.RUnlock()

	if err := json.Unmarshal(buf.Bytes(), out); err != nil {
		return fmt.Errorf("state: unmarshal group %s: %w", collection, err)
	}
	return nil
}

// Delete removes the record at collection/id. Absent records are a no-op.
func (m *Memory) Delete(_ context.Context, collection, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.collections[collection], id)
	return nil
}
