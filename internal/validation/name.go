package validation

import (
	"errors"
	"fmt"
	"strings"
)

// ValidateName validates a profile, habit or meal name
func ValidateName(field, name string) error {
	trimmed := strings.TrimSpace(name)

	if trimmed == "" {
		return fmt.Errorf("%s is required", field)
	}

	if len(trimmed) > 100 {
		return fmt.Errorf("%s is too long (max 100 characters)", field)
	}

	return nil
}

// ValidateText bounds free text such as descriptions and notes.
func ValidateText(field, text string, maxLen int) error {
	if len(text) > maxLen {
		return fmt.Errorf("%s is too long (max %d characters)", field, maxLen)
	}
	return nil
}

var ErrInvalidRange = errors.New("value out of range")

// ValidateRange checks min <= v <= max.
func ValidateRange(field string, v, min, max float64) error {
	if v < min || v > max {
		return fmt.Errorf("%s must be between %g and %g: %w", field, min, max, ErrInvalidRange)
	}
	return nil
}
