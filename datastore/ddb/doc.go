/*
Package ddb implements the DocumentStore interface on AWS DynamoDB.

Records live in a single table with a "Key" string partition key; the encoded
document JSON is stored in the "Payload" attribute. List scans with a
begins_with filter on the key, following pagination.

Integration tests require AWS credentials in the environment (see the
.env handling in the tests) and are skipped when they are absent.
*/
package ddb
