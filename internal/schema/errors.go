// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package schema

import (
	"errors"
	"fmt"
)

// ErrInvalidIdentifier is matched by every [*InvalidIdentifierError] via
// [errors.Is].
var ErrInvalidIdentifier = errors.New("invalid identifier")

// Definition errors reported by the compiler in addition to identifier
// syntax errors.
var (
	ErrNoFields              = errors.New("at least one field is required")
	ErrDuplicateFieldName    = errors.New("duplicate field name")
	ErrReservedFieldName     = errors.New("field name is reserved")
	ErrReservedTableName     = errors.New("table name is reserved")
	ErrIdentifierTooLong     = errors.New("identifier is too long")
	ErrUnsupportedColumnType = errors.New("unsupported column type")
)

// InvalidIdentifierError describes a table or field name that cannot be used
// as a storage identifier.
type InvalidIdentifierError struct {
	// Kind is "table" or "field".
	Kind string
	// Name is the rejected value.
	Name string
	// Reason is the underlying sentinel (ErrInvalidIdentifier,
	// ErrIdentifierTooLong, ErrReservedFieldName, ...).
	Reason error
}

func (e *InvalidIdentifierError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("%q: %v", e.Name, e.Reason)
	}
	return fmt.Sprintf("%s name %q: %v", e.Kind, e.Name, e.Reason)
}

// Is makes every InvalidIdentifierError match [ErrInvalidIdentifier].
func (e *InvalidIdentifierError) Is(target error) bool {
	return target == ErrInvalidIdentifier
}

func (e *InvalidIdentifierError) Unwrap() error {
	return e.Reason
}
