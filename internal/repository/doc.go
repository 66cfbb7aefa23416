// Package repository defines the data access interface for the dsforge
// project registry.
//
// This package provides the repository abstraction layer for persisting
// and retrieving generated-project records. The actual implementation is
// in the sqlite subpackage.
//
// # SQLite Implementation
//
// The sqlite implementation provides a complete registry using SQLite with
// WAL mode for concurrency. It handles:
//
// - CRUD operations for project records
// - JSON serialization of run manifests
// - Schema migration on startup
//
// # Testing
//
// The sqlite repository is tested with in-memory databases.
package repository
