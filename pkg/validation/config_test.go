package validation

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestConfigValidator_Required(t *testing.T) {
	cv := NewConfigValidator("data")
	cv.Required("dir", "  ")

	if !cv.HasErrors() {
		t.Error("Expected error for blank required field")
	}

	cv2 := NewConfigValidator("data")
	cv2.Required("dir", "./data")

	if cv2.HasErrors() {
		t.Error("Expected no error for non-empty required field")
	}
}

func TestConfigValidator_RangeInt(t *testing.T) {
	tests := []struct {
		value   int
		wantErr bool
	}{
		{0, true},
		{1, false},
		{50, false},
		{100, false},
		{101, true},
	}

	for _, tt := range tests {
		cv := NewConfigValidator("analytics")
		cv.RangeInt("top_n", tt.value, 1, 100)
		if cv.HasErrors() != tt.wantErr {
			t.Errorf("RangeInt(%d) error = %v, want %v", tt.value, cv.HasErrors(), tt.wantErr)
		}
	}
}

func TestConfigValidator_Probability(t *testing.T) {
	for _, v := range []float64{0, 0.15, 1} {
		if NewConfigValidator("generator").Probability("density", v).HasErrors() {
			t.Errorf("Probability(%v) should be valid", v)
		}
	}
	for _, v := range []float64{-0.1, 1.01} {
		if !NewConfigValidator("generator").Probability("density", v).HasErrors() {
			t.Errorf("Probability(%v) should be rejected", v)
		}
	}
}

func TestConfigValidator_PositiveFloat(t *testing.T) {
	if !NewConfigValidator("analytics").PositiveFloat("tolerance", 0).HasErrors() {
		t.Error("Expected error for zero tolerance")
	}
	if NewConfigValidator("analytics").PositiveFloat("tolerance", 1e-6).HasErrors() {
		t.Error("Expected no error for positive tolerance")
	}
}

func TestConfigValidator_PositiveAndNonNegative(t *testing.T) {
	cv := NewConfigValidator("generator")
	cv.Positive("students", 0)
	if !cv.HasErrors() {
		t.Error("Expected error for zero with Positive")
	}

	cv2 := NewConfigValidator("generator")
	cv2.NonNegative("seed", 0)
	if cv2.HasErrors() {
		t.Error("Expected no error for zero with NonNegative")
	}
	cv2.NonNegative("seed", -1)
	if !cv2.HasErrors() {
		t.Error("Expected error for negative with NonNegative")
	}
}

func TestConfigValidator_OneOf(t *testing.T) {
	allowed := []string{"json", "csv", "snapshot"}

	if NewConfigValidator("data").OneOf("format", "csv", allowed).HasErrors() {
		t.Error("Expected no error for allowed value")
	}

	cv := NewConfigValidator("data").OneOf("format", "xml", allowed)
	if !cv.HasErrors() {
		t.Fatal("Expected error for disallowed value")
	}
	if !strings.Contains(cv.Errors()[0].Error(), "data.format") {
		t.Errorf("Error should name section and field, got %v", cv.Errors()[0])
	}
}

func TestConfigValidator_Custom(t *testing.T) {
	sentinel := errors.New("unreadable")
	cv := NewConfigValidator("data")
	cv.Custom("dir", func() error { return sentinel })

	if !errors.Is(cv.Validate(), sentinel) {
		t.Errorf("Custom errors should be wrapped, got %v", cv.Validate())
	}
}

func TestConfigValidator_Chaining(t *testing.T) {
	cv := NewConfigValidator("server")
	cv.Required("addr", ":8080").
		MinDuration("read_timeout", 5*time.Second, time.Second).
		Positive("students", 30)

	if err := cv.Validate(); err != nil {
		t.Errorf("Expected no errors for valid config, got: %v", err)
	}
}

func TestConfigValidator_MultipleErrors(t *testing.T) {
	cv := NewConfigValidator("generator")
	cv.Required("name", "").
		Positive("students", -1).
		MinDuration("timeout", 0, time.Second)

	if len(cv.Errors()) != 3 {
		t.Errorf("Expected 3 errors, got %d", len(cv.Errors()))
	}

	err := cv.Validate()
	if err == nil || !strings.Contains(err.Error(), "3 errors") {
		t.Errorf("Expected combined error, got %v", err)
	}
	for _, e := range cv.Errors() {
		if !errors.Is(err, e) {
			t.Errorf("Combined error should wrap %v", e)
		}
	}
}
