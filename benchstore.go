/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package benchstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/suparena/benchstore/core"
	"github.com/suparena/benchstore/datastore"
	"github.com/suparena/benchstore/jsonstore"
	"github.com/suparena/benchstore/storagemodels"
)

// Key prefixes partition the document keyspace per stored object kind.
const (
	ExperimentKeyPrefix = "EXPERIMENT#"
	StrategyKeyPrefix   = "STRATEGY#"
)

// Store persists experiment object graphs through a serialization registry
// and a document backend. It is safe for concurrent use when the backend is.
type Store struct {
	registry *jsonstore.Registry
	docs     datastore.DocumentStore
}

// NewStore creates a Store over the given registry and backend. Most callers
// pass jsonstore.CoreRegistry().
func NewStore(registry *jsonstore.Registry, docs datastore.DocumentStore) *Store {
	return &Store{registry: registry, docs: docs}
}

// SaveExperiment encodes and persists an experiment under its name.
func (s *Store) SaveExperiment(ctx context.Context, experiment *core.Experiment) error {
	if experiment.Name == "" {
		return fmt.Errorf("cannot save experiment without a name")
	}
	return s.save(ctx, ExperimentKeyPrefix+experiment.Name, experiment)
}

// LoadExperiment retrieves and decodes an experiment by name.
func (s *Store) LoadExperiment(ctx context.Context, name string) (*core.Experiment, error) {
	obj, err := s.load(ctx, ExperimentKeyPrefix+name)
	if err != nil {
		return nil, err
	}
	experiment, ok := obj.(*core.Experiment)
	if !ok {
		return nil, fmt.Errorf("document under %q decoded to %T, want *core.Experiment", name, obj)
	}
	return experiment, nil
}

// DeleteExperiment removes a stored experiment.
func (s *Store) DeleteExperiment(ctx context.Context, name string) error {
	return s.docs.Delete(ctx, ExperimentKeyPrefix+name)
}

// ListExperimentNames returns the names of all stored experiments, sorted.
func (s *Store) ListExperimentNames(ctx context.Context) ([]string, error) {
	records, err := s.docs.List(ctx, ExperimentKeyPrefix)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(records))
	for _, record := range records {
		names = append(names, strings.TrimPrefix(record.Key, ExperimentKeyPrefix))
	}
	slices.Sort(names)
	return names, nil
}

// SaveGenerationStrategy encodes and persists a generation strategy under its
// name. Model references inside the strategy are stored as type handles.
func (s *Store) SaveGenerationStrategy(ctx context.Context, strategy *core.GenerationStrategy) error {
	if strategy.Name == "" {
		return fmt.Errorf("cannot save generation strategy without a name")
	}
	return s.save(ctx, StrategyKeyPrefix+strategy.Name, strategy)
}

// LoadGenerationStrategy retrieves and decodes a generation strategy by name.
func (s *Store) LoadGenerationStrategy(ctx context.Context, name string) (*core.GenerationStrategy, error) {
	obj, err := s.load(ctx, StrategyKeyPrefix+name)
	if err != nil {
		return nil, err
	}
	strategy, ok := obj.(*core.GenerationStrategy)
	if !ok {
		return nil, fmt.Errorf("document under %q decoded to %T, want *core.GenerationStrategy", name, obj)
	}
	return strategy, nil
}

func (s *Store) save(ctx context.Context, key string, obj any) error {
	doc, err := s.registry.Encode(obj)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling document for %q: %w", key, err)
	}
	return s.docs.Put(ctx, &storagemodels.DocumentRecord{
		Key:      key,
		TypeName: doc.TypeName(),
		Payload:  payload,
	})
}

func (s *Store) load(ctx context.Context, key string) (any, error) {
	record, err := s.docs.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var doc jsonstore.Document
	if err := json.Unmarshal(record.Payload, &doc); err != nil {
		return nil, fmt.Errorf("unmarshaling document for %q: %w", key, err)
	}
	return s.registry.Decode(&doc)
}
