package domain

import "errors"

// Sentinel errors shared across the generation engine and its callers.
var (
	// ErrMissingName indicates a template or project with no name.
	ErrMissingName = errors.New("name is required")
	// ErrEmptyTemplate indicates a template pack with no files or directories.
	ErrEmptyTemplate = errors.New("template has no files or directories")
	// ErrUnknownVariable indicates a supplied value for an undeclared variable.
	ErrUnknownVariable = errors.New("unknown template variable")
	// ErrInvalidValue indicates a variable value outside its accepted set.
	ErrInvalidValue = errors.New("invalid variable value")
	// ErrNotFound indicates a missing template or project record.
	ErrNotFound = errors.New("not found")
	// ErrOutputExists indicates the target project directory already exists.
	ErrOutputExists = errors.New("output directory already exists")
	// ErrPathEscape indicates a rendered path that escapes the project root.
	ErrPathEscape = errors.New("rendered path escapes project root")
)
