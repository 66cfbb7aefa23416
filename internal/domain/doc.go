// Package domain defines the core domain types for the dsforge project scaffolder.
//
// This package contains the fundamental entities and value objects used by the
// generation engine: template packs, render contexts, licenses, generated
// project records, and file manifests.
//
// # Core Types
//
// Template represents a project template pack: variable declarations, the
// skeleton directory list, and the templated file tree.
//
// RenderContext holds the resolved variable values for one generation run.
// Path and content placeholders are substituted from this context, so a
// context must be complete before rendering begins.
//
// Project is the registry record of a generated project. Manifest records
// every file a run emitted, with size and content digest, and is written into
// the generated project itself as well as the registry.
//
// # Design Principles
//
// - Immutable value objects where possible
// - No database or external dependencies
// - Pure domain logic without infrastructure concerns
// - Rich type system with meaningful constants and enumerations
package domain
