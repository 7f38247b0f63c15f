// Package store provides the SQLite-backed translation history.
//
// Each row records one translation attempt: the raw input and either the
// canonical JSON document with its content hash or the error message.
// Rows are append-only and identified by UUIDv7 strings; listing order
// uses the seq column (logical clock), never timestamps.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - One open connection: SQLite has a single writer
//
// Document hashes are computed by ir.DocumentHash over RFC 8785 canonical
// JSON, so identical documents share a hash across runs.
package store
