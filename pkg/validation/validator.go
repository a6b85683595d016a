package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	MaxInterests      = 20
	MaxInterestLength = 50
	MaxIDLength       = 64

	idPattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

func init() {
	validate = validator.New()
}

// StudentRequest represents a request to create or update a student
type StudentRequest struct {
	ID        string   `json:"id" validate:"required,max=64"`
	Name      string   `json:"name" validate:"required,max=100"`
	Category  string   `json:"category" validate:"required,max=50"`
	Interests []string `json:"interests" validate:"omitempty,max=20,dive,required,max=50"`
}

// FriendshipRequest represents a request to create or update a friendship
type FriendshipRequest struct {
	StudentA string `json:"studentA" validate:"required,max=64"`
	StudentB string `json:"studentB" validate:"required,max=64,nefield=StudentA"`
	Weight   int    `json:"weight" validate:"min=1,max=3"`
}

// ValidateStudentRequest validates a student creation/update request
func ValidateStudentRequest(req *StudentRequest) error {
	if req == nil {
		return errors.New("student request cannot be nil")
	}

	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	if err := ValidateStudentID(req.ID); err != nil {
		return fmt.Errorf("ID: %w", err)
	}

	seen := make(map[string]struct{}, len(req.Interests))
	for i, interest := range req.Interests {
		if strings.TrimSpace(interest) == "" {
			return fmt.Errorf("Interests: interest at index %d is blank", i)
		}
		if _, dup := seen[interest]; dup {
			return fmt.Errorf("Interests: '%s' is listed more than once", interest)
		}
		seen[interest] = struct{}{}
	}

	return nil
}

// ValidateFriendshipRequest validates a friendship creation/update request
func ValidateFriendshipRequest(req *FriendshipRequest) error {
	if req == nil {
		return errors.New("friendship request cannot be nil")
	}

	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	return nil
}

// ValidateStudentID validates a student identifier
func ValidateStudentID(id string) error {
	if id == "" {
		return errors.New("student id cannot be empty")
	}
	if len(id) > MaxIDLength {
		return fmt.Errorf("student id '%s' exceeds maximum length of %d characters", id, MaxIDLength)
	}
	if !idPattern.MatchString(id) {
		return fmt.Errorf("student id '%s' contains invalid characters (only alphanumeric, '.', '-' and '_' allowed)", id)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		param := e.Param()

		switch e.Tag() {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "nefield":
			return fmt.Errorf("%s: must differ from %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, e.Tag())
		}
	}

	return err
}
