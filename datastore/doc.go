/*
Package datastore defines the DocumentStore interface over persisted document
records, with backend implementations in subpackages:

  - ddb: AWS DynamoDB
  - redisstore: Redis
  - mock: in-memory implementation with error injection for testing

All backends store the same storagemodels.DocumentRecord shape. Key patterns
are owned by the caller; the root benchstore package uses "EXPERIMENT#<name>"
and "STRATEGY#<name>".
*/
package datastore
