/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/benchstore/storagemodels"
)

// DocumentStore persists encoded document records. Implementations must be
// safe for concurrent use.
type DocumentStore interface {
	// Put stores a record, overwriting any existing record with the same key.
	Put(ctx context.Context, record *storagemodels.DocumentRecord) error

	// Get retrieves a record by key. Returns errors.ErrNotFound (via a typed
	// NotFoundError) when the key does not exist.
	Get(ctx context.Context, key string) (*storagemodels.DocumentRecord, error)

	// Delete removes a record by key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns all records whose key starts with prefix.
	List(ctx context.Context, prefix string) ([]*storagemodels.DocumentRecord, error)
}
