package domain

import (
	"fmt"
	"regexp"
)

// MaxSchemaNameLength bounds schema names so they stay usable as file names.
const MaxSchemaNameLength = 128

var schemaNamePattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateSchemaName checks that name can be used as a store key and as a
// file name on every supported platform.
func ValidateSchemaName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty", ErrInvalidSchemaName)
	}
	if len(name) > MaxSchemaNameLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidSchemaName, MaxSchemaNameLength)
	}
	if !schemaNamePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidSchemaName, name)
	}
	return nil
}
