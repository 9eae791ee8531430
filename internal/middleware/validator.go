package middleware

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Input validation and sanitization for incident submissions

// maxFieldLen caps each free-text field; the workbook renders badly far
// before this, it only guards against abuse.
const maxFieldLen = 500

// RequireField checks a single free-text field after sanitization.
func RequireField(name, value string) error {
	v := SanitizeString(value)
	if v == "" {
		return fmt.Errorf("%s is required", name)
	}
	if utf8.RuneCountInString(v) > maxFieldLen {
		return fmt.Errorf("%s exceeds %d characters", name, maxFieldLen)
	}
	return nil
}

// ValidateIncident checks all four required fields and returns the first
// problem found.
func ValidateIncident(unit, machine, technician, issue string) error {
	checks := []struct {
		name, value string
	}{
		{"unit", unit},
		{"machine", machine},
		{"technician_name", technician},
		{"issue", issue},
	}
	for _, c := range checks {
		if err := RequireField(c.name, c.value); err != nil {
			return err
		}
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove control characters
	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}
