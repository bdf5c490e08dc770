// Package service provides application-level workflows for boards and tasks.
package service

import "errors"

// Common service errors - sentinel errors used across service implementations.
// These errors represent expected conditions that callers check for with
// errors.Is(); unexpected errors are wrapped in service-specific error types,
// and the API layer maps both to HTTP status codes.
var (
	// ErrTaskNotFound indicates that the referenced task does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrTaskNotFound = errors.New("task not found")

	// ErrBoardNotFound indicates that the referenced board does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrBoardNotFound = errors.New("board not found")
)
