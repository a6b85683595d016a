package storage

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrStudentNotFound    = errors.New("student not found")
	ErrFriendshipNotFound = errors.New("friendship not found")
	ErrDuplicateID        = errors.New("duplicate student ID")
	ErrInvalidWeight      = errors.New("invalid friendship weight")
	ErrInvalidID          = errors.New("invalid student ID")
	ErrSelfLoop           = errors.New("student cannot befriend itself")
)

// GraphError provides structured error information for graph operations.
type GraphError struct {
	Op      string // Operation that failed (e.g., "InsertStudent", "AddFriendship")
	Entity  string // "student" or "friendship"
	ID      string // Student ID, or first endpoint for friendships
	Peer    string // Second endpoint for friendships
	Context string // Additional context
	Cause   error  // Underlying error
}

// Error implements the error interface.
func (e *GraphError) Error() string {
	var subject string
	switch {
	case e.Peer != "":
		subject = fmt.Sprintf("%s %s-%s", e.Entity, e.ID, e.Peer)
	case e.ID != "":
		subject = fmt.Sprintf("%s %s", e.Entity, e.ID)
	default:
		subject = e.Entity
	}
	if e.Context != "" {
		return fmt.Sprintf("%s %s (%s): %v", e.Op, subject, e.Context, e.Cause)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, subject, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *GraphError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error's cause.
func (e *GraphError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}

// ErrorBuilder provides a fluent interface for building GraphErrors.
type ErrorBuilder struct {
	err GraphError
}

// NewError creates a new error builder with the given operation.
func NewError(op string) *ErrorBuilder {
	return &ErrorBuilder{err: GraphError{Op: op}}
}

// Student sets the entity to "student" with the given ID.
func (b *ErrorBuilder) Student(id string) *ErrorBuilder {
	b.err.Entity = "student"
	b.err.ID = id
	return b
}

// Friendship sets the entity to "friendship" between the two endpoints.
func (b *ErrorBuilder) Friendship(id1, id2 string) *ErrorBuilder {
	b.err.Entity = "friendship"
	b.err.ID = id1
	b.err.Peer = id2
	return b
}

// Context sets additional context information.
func (b *ErrorBuilder) Context(ctx string) *ErrorBuilder {
	b.err.Context = ctx
	return b
}

// Cause sets the underlying error cause.
func (b *ErrorBuilder) Cause(err error) *ErrorBuilder {
	b.err.Cause = err
	return b
}

// Build returns the constructed GraphError.
func (b *ErrorBuilder) Build() *GraphError {
	return &b.err
}

// Err returns the error as an error interface.
func (b *ErrorBuilder) Err() error {
	return &b.err
}

// Convenience functions for common error patterns

// StudentNotFoundError creates a student not found error.
func StudentNotFoundError(op, id string) error {
	return NewError(op).Student(id).Cause(ErrStudentNotFound).Err()
}

// FriendshipNotFoundError creates a friendship not found error.
func FriendshipNotFoundError(op, id1, id2 string) error {
	return NewError(op).Friendship(id1, id2).Cause(ErrFriendshipNotFound).Err()
}

// InvalidWeightError creates an invalid weight error.
func InvalidWeightError(op, id1, id2 string, w Weight) error {
	return NewError(op).Friendship(id1, id2).
		Context(fmt.Sprintf("weight %d not in [%d,%d]", w, MinWeight, MaxWeight)).
		Cause(ErrInvalidWeight).Err()
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrStudentNotFound) || errors.Is(err, ErrFriendshipNotFound)
}

// IsDuplicate returns true if the error reports an ID collision.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicateID)
}

// IsInvalidWeight returns true if the error reports a weight outside 1..3.
func IsInvalidWeight(err error) bool {
	return errors.Is(err, ErrInvalidWeight)
}
