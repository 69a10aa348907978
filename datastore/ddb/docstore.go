/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/benchstore/errors"
	"github.com/suparena/benchstore/storagemodels"
)

// DocumentStore implements datastore.DocumentStore on a DynamoDB table keyed
// by the record key ("Key" partition key, no sort key).
type DocumentStore struct {
	client    *sdk.Client
	tableName string
}

// NewDynamoDBClient initializes a DynamoDB client using static AWS credentials.
func NewDynamoDBClient(awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(context.TODO(),
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	return sdk.NewFromConfig(cfg), nil
}

// New constructs a DocumentStore for an existing table.
func New(awsAccessKey, awsSecretKey, awsRegion, tableName string) (*DocumentStore, error) {
	client, err := NewDynamoDBClient(awsAccessKey, awsSecretKey, awsRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return &DocumentStore{client: client, tableName: tableName}, nil
}

// NewWithClient constructs a DocumentStore around an existing client,
// e.g. one pointed at a local DynamoDB endpoint in tests.
func NewWithClient(client *sdk.Client, tableName string) *DocumentStore {
	return &DocumentStore{client: client, tableName: tableName}
}

func (s *DocumentStore) Put(ctx context.Context, record *storagemodels.DocumentRecord) error {
	record.Touch()
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record %q: %w", record.Key, err)
	}
	_, err = s.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to put record %q: %w", record.Key, err)
	}
	return nil
}

func (s *DocumentStore) Get(ctx context.Context, key string) (*storagemodels.DocumentRecord, error) {
	out, err := s.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"Key": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get record %q: %w", key, err)
	}
	if out.Item == nil {
		return nil, errors.NewNotFoundError("DocumentRecord", key)
	}
	var record storagemodels.DocumentRecord
	if err := attributevalue.UnmarshalMap(out.Item, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record %q: %w", key, err)
	}
	return &record, nil
}

func (s *DocumentStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"Key": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to delete record %q: %w", key, err)
	}
	return nil
}

func (s *DocumentStore) List(ctx context.Context, prefix string) ([]*storagemodels.DocumentRecord, error) {
	var records []*storagemodels.DocumentRecord
	var startKey map[string]types.AttributeValue

	for {
		out, err := s.client.Scan(ctx, &sdk.ScanInput{
			TableName:        aws.String(s.tableName),
			FilterExpression: aws.String("begins_with(#k, :prefix)"),
			ExpressionAttributeNames: map[string]string{
				"#k": "Key",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":prefix": &types.AttributeValueMemberS{Value: prefix},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to list records with prefix %q: %w", prefix, err)
		}
		for _, item := range out.Items {
			var record storagemodels.DocumentRecord
			if err := attributevalue.UnmarshalMap(item, &record); err != nil {
				return nil, fmt.Errorf("failed to unmarshal listed record: %w", err)
			}
			records = append(records, &record)
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return records, nil
}
