/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package redisstore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/suparena/benchstore/errors"
	"github.com/suparena/benchstore/storagemodels"
)

// DocumentStore implements datastore.DocumentStore on Redis. Records are
// stored as JSON strings under their key, optionally below a namespace.
type DocumentStore struct {
	client    redis.UniversalClient
	namespace string
}

// New constructs a DocumentStore around an existing Redis client. The
// namespace, when non-empty, prefixes every key as "<namespace>:<key>".
func New(client redis.UniversalClient, namespace string) *DocumentStore {
	return &DocumentStore{client: client, namespace: namespace}
}

func (s *DocumentStore) redisKey(key string) string {
	if s.namespace == "" {
		return key
	}
	return s.namespace + ":" + key
}

func (s *DocumentStore) recordKey(redisKey string) string {
	if s.namespace == "" {
		return redisKey
	}
	return redisKey[len(s.namespace)+1:]
}

func (s *DocumentStore) Put(ctx context.Context, record *storagemodels.DocumentRecord) error {
	record.Touch()
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record %q: %w", record.Key, err)
	}
	if err := s.client.Set(ctx, s.redisKey(record.Key), payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to put record %q: %w", record.Key, err)
	}
	return nil
}

func (s *DocumentStore) Get(ctx context.Context, key string) (*storagemodels.DocumentRecord, error) {
	payload, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if err == redis.Nil {
		return nil, errors.NewNotFoundError("DocumentRecord", key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record %q: %w", key, err)
	}
	var record storagemodels.DocumentRecord
	if err := json.Unmarshal(payload, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record %q: %w", key, err)
	}
	return &record, nil
}

func (s *DocumentStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete record %q: %w", key, err)
	}
	return nil
}

func (s *DocumentStore) List(ctx context.Context, prefix string) ([]*storagemodels.DocumentRecord, error) {
	pattern := s.redisKey(prefix) + "*"
	var records []*storagemodels.DocumentRecord

	iter := s.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		record, err := s.Get(ctx, s.recordKey(iter.Val()))
		if err != nil {
			if errors.IsNotFound(err) {
				// Key expired between SCAN and GET.
				continue
			}
			return nil, err
		}
		records = append(records, record)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list records with prefix %q: %w", prefix, err)
	}
	return records, nil
}
