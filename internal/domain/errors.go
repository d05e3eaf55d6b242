package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNotFound   = errors.New("not found")
	ErrBadPayload = errors.New("malformed response")
	ErrNoSession  = errors.New("no active session")
)

// ValidationError reports an empty required field, caught before any
// network call is made.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("%s is required", e.Field)
}

// StoreError represents a failed task store request.
type StoreError struct {
	Op     string // Operation: "list", "insert", "update", "delete"
	Table  string
	TaskID string // Optional: specific task ID
	Status int    // HTTP status, 0 when the request never completed
	Err    error  // Underlying error
}

func (e *StoreError) Error() string {
	if e.TaskID != "" {
		return fmt.Sprintf("store %s %s [%s]: %v", e.Op, e.Table, e.TaskID, e.Err)
	}
	if e.Status != 0 {
		return fmt.Sprintf("store %s %s: status %d", e.Op, e.Table, e.Status)
	}
	return fmt.Sprintf("store %s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// EnrichError represents a failed or malformed enrichment service
// response. Shape deviations fail closed through this type.
type EnrichError struct {
	Op      string
	Message string
	Err     error
}

func (e *EnrichError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("enrich %s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("enrich %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("enrich %s failed", e.Op)
}

func (e *EnrichError) Unwrap() error {
	return e.Err
}

// AuthError represents a failed session provider request.
type AuthError struct {
	Op      string // Operation: "signup", "signin", "signout"
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("auth %s: %s", e.Op, e.Message)
	}
	return fmt.Sprintf("auth %s: %v", e.Op, e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}
