// Package handler implements HTTP request handlers for the dsforge API.
//
// This package provides the HTTP layer for the dsforge REST API, handling
// template listing, project generation, registry queries, manifest export
// and archive downloads.
//
// # API Design
//
// All handlers follow REST conventions:
// - GET for retrieval
// - POST for creation
// - DELETE for removal
//
// Errors are returned as JSON with appropriate HTTP status codes.
// Request bodies are validated before processing.
//
// # Server-Sent Events
//
// The /events endpoint streams generation run progress via SSE, allowing
// clients to follow a run file by file.
package handler
