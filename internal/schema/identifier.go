// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import (
	"regexp"
	"strings"
)

// identifierPattern mirrors the unquoted SQL identifier rules shared by
// Postgres and SQLite, restricted to lowercase.
var identifierPattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// MaxIdentifierLength is the Postgres NAMEDATALEN limit minus the terminator.
const MaxIdentifierLength = 63

// ValidateIdentifier accepts name only if it starts with a lowercase letter
// followed by lowercase letters, digits or underscores. It returns the name
// unchanged on success and an [*InvalidIdentifierError] otherwise.
func ValidateIdentifier(name string) (string, error) {
	if !identifierPattern.MatchString(name) {
		return "", &InvalidIdentifierError{Name: name, Reason: ErrInvalidIdentifier}
	}
	return name, nil
}

// QuoteIdentifier wraps an already validated identifier in double quotes so
// that keywords such as "order" or "user" remain usable as column names.
func QuoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
