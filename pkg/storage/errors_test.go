package storage

import (
	"errors"
	"fmt"
	"testing"
)

func TestGraphError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *GraphError
		expected string
	}{
		{
			name: "student",
			err: &GraphError{
				Op:     "InsertStudent",
				Entity: "student",
				ID:     "42",
				Cause:  ErrDuplicateID,
			},
			expected: "InsertStudent student 42: duplicate student ID",
		},
		{
			name: "friendship",
			err: &GraphError{
				Op:     "RemoveFriendship",
				Entity: "friendship",
				ID:     "1",
				Peer:   "2",
				Cause:  ErrFriendshipNotFound,
			},
			expected: "RemoveFriendship friendship 1-2: friendship not found",
		},
		{
			name: "with context",
			err: &GraphError{
				Op:      "AddFriendship",
				Entity:  "friendship",
				ID:      "1",
				Peer:    "2",
				Context: "weight 5 not in [1,3]",
				Cause:   ErrInvalidWeight,
			},
			expected: "AddFriendship friendship 1-2 (weight 5 not in [1,3]): invalid friendship weight",
		},
		{
			name: "minimal",
			err: &GraphError{
				Op:     "Load",
				Entity: "graph",
				Cause:  fmt.Errorf("boom"),
			},
			expected: "Load graph: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestGraphError_Unwrap(t *testing.T) {
	err := StudentNotFoundError("RemoveStudent", "7")

	if !errors.Is(err, ErrStudentNotFound) {
		t.Error("errors.Is should match ErrStudentNotFound")
	}
	if errors.Is(err, ErrFriendshipNotFound) {
		t.Error("errors.Is should not match ErrFriendshipNotFound")
	}

	var gerr *GraphError
	if !errors.As(err, &gerr) {
		t.Fatal("errors.As should extract *GraphError")
	}
	if gerr.Op != "RemoveStudent" || gerr.ID != "7" {
		t.Errorf("Unexpected fields: %+v", gerr)
	}
}

func TestErrorBuilder(t *testing.T) {
	err := NewError("UpdateFriendshipWeight").
		Friendship("a", "b").
		Context("retry").
		Cause(ErrFriendshipNotFound).
		Build()

	if err.Entity != "friendship" || err.ID != "a" || err.Peer != "b" || err.Context != "retry" {
		t.Errorf("Unexpected built error: %+v", err)
	}
	if !IsNotFound(err) {
		t.Error("IsNotFound should match the built error")
	}
}

func TestInvalidWeightError(t *testing.T) {
	err := InvalidWeightError("AddFriendship", "1", "2", 9)
	if !IsInvalidWeight(err) {
		t.Error("IsInvalidWeight should match")
	}
	if IsNotFound(err) || IsDuplicate(err) {
		t.Error("Invalid weight must not look like other error classes")
	}
}

func TestGraphError_IsNilTarget(t *testing.T) {
	err := &GraphError{Cause: ErrStudentNotFound}
	if err.Is(nil) {
		t.Error("Is(nil) should be false")
	}
}
