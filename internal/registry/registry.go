// Package registry holds the process-wide in-memory tables for stocks,
// portfolios and strategies. One table of each is constructed at startup and
// injected into the engine; entries are created on first use and never
// removed during a run.
package registry

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrNotFound      = errors.New("not found in registry")
	ErrInvalidName   = errors.New("name must be non-empty and contain only letters, digits and spaces")
	ErrDuplicateName = errors.New("name is already in use")
)

var namePattern = regexp.MustCompile(`^[A-Za-z0-9 ]+$`)

// validateName enforces the shared naming rule for portfolios and
// strategies.
func validateName(name string) error {
	if strings.TrimSpace(name) == "" || !namePattern.MatchString(name) {
		return ErrInvalidName
	}
	return nil
}

// nameKey is the case-insensitive uniqueness key for a name.
func nameKey(name string) string {
	return strings.ToLower(name)
}
