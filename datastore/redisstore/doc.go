/*
Package redisstore implements the DocumentStore interface on Redis.

Records are stored as JSON strings; List uses SCAN with a match pattern over
the namespaced key space. Suitable for local development and for deployments
that already run Redis alongside the experimentation service.
*/
package redisstore
