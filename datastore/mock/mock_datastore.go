/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory DocumentStore implementation for testing
package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/suparena/benchstore/errors"
	"github.com/suparena/benchstore/storagemodels"
)

// DocumentStore is an in-memory implementation of datastore.DocumentStore
// with builder-style error injection for testing failure paths.
type DocumentStore struct {
	mu          sync.RWMutex
	records     map[string]*storagemodels.DocumentRecord
	putError    error
	getError    error
	deleteError error
	listError   error
}

// New creates a new mock DocumentStore
func New() *DocumentStore {
	return &DocumentStore{
		records: make(map[string]*storagemodels.DocumentRecord),
	}
}

// WithPutError makes Put operations return an error
func (m *DocumentStore) WithPutError(err error) *DocumentStore {
	m.putError = err
	return m
}

// WithGetError makes Get operations return an error
func (m *DocumentStore) WithGetError(err error) *DocumentStore {
	m.getError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DocumentStore) WithDeleteError(err error) *DocumentStore {
	m.deleteError = err
	return m
}

// WithListError makes List operations return an error
func (m *DocumentStore) WithListError(err error) *DocumentStore {
	m.listError = err
	return m
}

// Put stores a record
func (m *DocumentStore) Put(ctx context.Context, record *storagemodels.DocumentRecord) error {
	if m.putError != nil {
		return m.putError
	}
	record.Touch()

	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *record
	m.records[record.Key] = &clone
	return nil
}

// Get retrieves a record by key
func (m *DocumentStore) Get(ctx context.Context, key string) (*storagemodels.DocumentRecord, error) {
	if m.getError != nil {
		return nil, m.getError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	record, exists := m.records[key]
	if !exists {
		return nil, errors.NewNotFoundError("DocumentRecord", key)
	}
	clone := *record
	return &clone, nil
}

// Delete removes a record by key
func (m *DocumentStore) Delete(ctx context.Context, key string) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, key)
	return nil
}

// List returns all records whose key starts with prefix
func (m *DocumentStore) List(ctx context.Context, prefix string) ([]*storagemodels.DocumentRecord, error) {
	if m.listError != nil {
		return nil, m.listError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*storagemodels.DocumentRecord
	for key, record := range m.records {
		if strings.HasPrefix(key, prefix) {
			clone := *record
			out = append(out, &clone)
		}
	}
	return out, nil
}

// Len returns the number of stored records
func (m *DocumentStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
