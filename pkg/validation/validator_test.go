package validation

import (
	"strings"
	"testing"
)

// TestValidateStudentRequest tests student request validation
func TestValidateStudentRequest(t *testing.T) {
	tests := []struct {
		name        string
		req         StudentRequest
		expectError bool
		errorField  string
	}{
		{
			name: "Valid student request",
			req: StudentRequest{
				ID:        "1",
				Name:      "Ana Garcia",
				Category:  "Ingenieria",
				Interests: []string{"Programacion", "Musica"},
			},
			expectError: false,
		},
		{
			name:        "No interests - valid",
			req:         StudentRequest{ID: "s-2", Name: "Luis", Category: "Medicina"},
			expectError: false,
		},
		{
			name:        "Missing ID - invalid",
			req:         StudentRequest{Name: "Luis", Category: "Medicina"},
			expectError: true,
			errorField:  "ID",
		},
		{
			name:        "Missing name - invalid",
			req:         StudentRequest{ID: "3", Category: "Medicina"},
			expectError: true,
			errorField:  "Name",
		},
		{
			name:        "Missing category - invalid",
			req:         StudentRequest{ID: "3", Name: "Maria"},
			expectError: true,
			errorField:  "Category",
		},
		{
			name:        "ID with spaces - invalid",
			req:         StudentRequest{ID: "student 3", Name: "Maria", Category: "Arte"},
			expectError: true,
			errorField:  "ID",
		},
		{
			name: "Duplicate interests - invalid",
			req: StudentRequest{
				ID: "4", Name: "Carlos", Category: "Arte",
				Interests: []string{"Cine", "Cine"},
			},
			expectError: true,
			errorField:  "Interests",
		},
		{
			name: "Blank interest - invalid",
			req: StudentRequest{
				ID: "4", Name: "Carlos", Category: "Arte",
				Interests: []string{"Cine", "  "},
			},
			expectError: true,
			errorField:  "Interests",
		},
		{
			name: "Interest too long - invalid",
			req: StudentRequest{
				ID: "4", Name: "Carlos", Category: "Arte",
				Interests: []string{strings.Repeat("x", 51)},
			},
			expectError: true,
			errorField:  "Interests",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStudentRequest(&tt.req)

			if tt.expectError && err == nil {
				t.Errorf("Expected error but got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}

			if tt.expectError && err != nil && tt.errorField != "" {
				if !strings.HasPrefix(err.Error(), tt.errorField) {
					t.Errorf("Expected error for field %s, got: %v", tt.errorField, err)
				}
			}
		})
	}
}

func TestValidateStudentRequest_Nil(t *testing.T) {
	if err := ValidateStudentRequest(nil); err == nil {
		t.Error("Expected error for nil request")
	}
}

// TestValidateFriendshipRequest tests friendship request validation
func TestValidateFriendshipRequest(t *testing.T) {
	tests := []struct {
		name        string
		req         FriendshipRequest
		expectError bool
		errorField  string
	}{
		{
			name:        "Normal friendship",
			req:         FriendshipRequest{StudentA: "1", StudentB: "2", Weight: 1},
			expectError: false,
		},
		{
			name:        "Closest friendship",
			req:         FriendshipRequest{StudentA: "1", StudentB: "2", Weight: 3},
			expectError: false,
		},
		{
			name:        "Weight zero - invalid",
			req:         FriendshipRequest{StudentA: "1", StudentB: "2", Weight: 0},
			expectError: true,
			errorField:  "Weight",
		},
		{
			name:        "Weight four - invalid",
			req:         FriendshipRequest{StudentA: "1", StudentB: "2", Weight: 4},
			expectError: true,
			errorField:  "Weight",
		},
		{
			name:        "Self friendship - invalid",
			req:         FriendshipRequest{StudentA: "1", StudentB: "1", Weight: 1},
			expectError: true,
			errorField:  "StudentB",
		},
		{
			name:        "Missing endpoint - invalid",
			req:         FriendshipRequest{StudentA: "1", Weight: 1},
			expectError: true,
			errorField:  "StudentB",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFriendshipRequest(&tt.req)

			if tt.expectError && err == nil {
				t.Errorf("Expected error but got nil")
			}

			if !tt.expectError && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}

			if tt.expectError && err != nil && !strings.HasPrefix(err.Error(), tt.errorField) {
				t.Errorf("Expected error for field %s, got: %v", tt.errorField, err)
			}
		})
	}
}

func TestValidateStudentID(t *testing.T) {
	valid := []string{"1", "s-10", "ana.garcia", "A_B"}
	for _, id := range valid {
		if err := ValidateStudentID(id); err != nil {
			t.Errorf("ValidateStudentID(%q) = %v, want nil", id, err)
		}
	}

	invalid := []string{"", "a b", "x/y", strings.Repeat("9", 65)}
	for _, id := range invalid {
		if err := ValidateStudentID(id); err == nil {
			t.Errorf("ValidateStudentID(%q) = nil, want error", id)
		}
	}
}
