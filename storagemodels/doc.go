/*
Package storagemodels defines the shared stored form of encoded documents.

A DocumentRecord wraps the JSON payload produced by the jsonstore encoder with
its addressing key, root type name, and timestamps. Every datastore backend
(DynamoDB, Redis, mock) persists this one shape, so records move between
backends without translation.
*/
package storagemodels
