/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"os"
	"testing"

	"github.com/joho/godotenv"

	"github.com/suparena/benchstore/errors"
	"github.com/suparena/benchstore/storagemodels"
)

// getDocumentStore builds a store from the environment. Tests skip when the
// AWS settings are absent so the suite runs without live credentials.
func getDocumentStore(t *testing.T) *DocumentStore {
	t.Helper()
	_ = godotenv.Load()

	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	region := os.Getenv("AWS_REGION")
	table := os.Getenv("AWS_DDB_TABLE")
	if accessKey == "" || secretKey == "" || region == "" || table == "" {
		t.Skip("AWS environment not configured, skipping DynamoDB integration test")
	}

	store, err := New(accessKey, secretKey, region, table)
	if err != nil {
		t.Fatalf("creating DynamoDB store: %v", err)
	}
	return store
}

func TestDynamoDBPutGetDelete(t *testing.T) {
	store := getDocumentStore(t)
	ctx := context.Background()

	record := &storagemodels.DocumentRecord{
		Key:      "EXPERIMENT#integration_test",
		TypeName: "Experiment",
		Payload:  []byte(`{"__type":"Experiment","name":"integration_test"}`),
	}
	if err := store.Put(ctx, record); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	defer func() {
		if err := store.Delete(ctx, record.Key); err != nil {
			t.Errorf("cleanup Delete failed: %v", err)
		}
	}()

	got, err := store.Get(ctx, record.Key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.TypeName != "Experiment" {
		t.Errorf("Expected Experiment type name, got %q", got.TypeName)
	}
	if string(got.Payload) != string(record.Payload) {
		t.Errorf("Payload mismatch: got %s", got.Payload)
	}
	if got.CreatedAt == nil || got.UpdatedAt == nil {
		t.Error("Expected Put to stamp timestamps")
	}
}

func TestDynamoDBGetNotFound(t *testing.T) {
	store := getDocumentStore(t)

	_, err := store.Get(context.Background(), "EXPERIMENT#does_not_exist")
	if !errors.IsNotFound(err) {
		t.Errorf("Expected NotFoundError, got %v", err)
	}
}

func TestDynamoDBListByPrefix(t *testing.T) {
	store := getDocumentStore(t)
	ctx := context.Background()

	keys := []string{"LISTTEST#a", "LISTTEST#b"}
	for _, key := range keys {
		record := &storagemodels.DocumentRecord{
			Key:      key,
			TypeName: "Experiment",
			Payload:  []byte(`{"__type":"Experiment"}`),
		}
		if err := store.Put(ctx, record); err != nil {
			t.Fatalf("Put %q failed: %v", key, err)
		}
	}
	defer func() {
		for _, key := range keys {
			if err := store.Delete(ctx, key); err != nil {
				t.Errorf("cleanup Delete %q failed: %v", key, err)
			}
		}
	}()

	records, err := store.List(ctx, "LISTTEST#")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(records) != len(keys) {
		t.Errorf("Expected %d records, got %d", len(keys), len(records))
	}
}
