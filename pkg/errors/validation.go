package errors

import (
	"regexp"
	"unicode"
)

// maxNameLength bounds object names written to AGP and FASTA headers.
const maxNameLength = 256

// objectNameRegex matches names allowed for objects created by a join.
var objectNameRegex = regexp.MustCompile(`^[A-Za-z0-9._]+$`)

// ValidateFieldName checks that name can be written as an AGP column: it
// must be non-empty, bounded, and free of tabs, newlines and other control
// characters. Anything else, including "-" and "|", is accepted.
func ValidateFieldName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "object name cannot be empty")
	}
	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "object name too long (max %d characters)", maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "object name %q contains control characters", name)
		}
	}
	return nil
}

// ValidateObjectName validates the name of an object created by a join.
// Join names are restricted to letters, digits, dots and underscores.
// Existing object names read from an AGP are never re-validated.
func ValidateObjectName(name string) error {
	if err := ValidateFieldName(name); err != nil {
		return err
	}
	if !objectNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "bad object name %q: only [A-Za-z0-9._] allowed", name)
	}
	return nil
}
