package graphql

import (
	"testing"

	"github.com/graphql-go/graphql/language/parser"
)

func TestCalculateQueryDepth(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"scalar only", `{ health }`, 0},
		{"one level", `{ students { id name } }`, 1},
		{"nested", `{ student(id: "A") { friends { id } } }`, 2},
		{"widest branch wins", `{ health students { id } student(id: "A") { friends { id } } }`, 2},
		{"introspection ignored", `{ __schema { types { name } } }`, 0},
		{"inline fragment", `{ student(id: "A") { ... on Student { friends { id } } } }`, 2},
		{"named fragment", `
			query { student(id: "A") { ...F } }
			fragment F on Student { friends { id } }`, 2},
		{"cyclic fragments", `
			query { student(id: "A") { ...F } }
			fragment F on Student { ...G }
			fragment G on Student { ...F }`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parser.Parse(parser.ParseParams{Source: tt.query})
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got := calculateQueryDepth(doc); got != tt.want {
				t.Errorf("calculateQueryDepth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidateQueryDepth(t *testing.T) {
	if err := ValidateQueryDepth(`{ student(id: "A") { friends { id } } }`, 2); err != nil {
		t.Errorf("Expected depth 2 to pass, got %v", err)
	}
	if err := ValidateQueryDepth(`{ student(id: "A") { friends { id } } }`, 1); err == nil {
		t.Error("Expected depth 2 to exceed limit 1")
	}
	if err := ValidateQueryDepth(`{ student(`, 5); err == nil {
		t.Error("Expected parse error")
	}
}
