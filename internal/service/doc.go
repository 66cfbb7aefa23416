// Package service implements business logic for the dsforge application.
//
// This package provides the service layer that coordinates between the HTTP
// handlers / CLI and the repository layer, implementing validation and event
// publishing.
//
// # Services
//
// ProjectService manages the registry of generated projects: listing,
// lookups, manifest retrieval, archive export and record deletion.
//
// # Event System
//
// Services and the generation engine publish events via EventBus for
// real-time updates to connected clients via Server-Sent Events (SSE).
// Event types cover run lifecycle (started, file written, finished, failed)
// and registry changes.
//
// # Design Principles
//
// - Services own business logic and validation
// - Repository pattern for data access
// - Event-driven for real-time updates
// - Context-aware for cancellation and timeouts
package service
