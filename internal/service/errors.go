package service

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-form-keeper/models"
)

var (
	// ErrInvalidInput marks a request rejected before anything was written.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateTableName is returned when the requested table name is
	// held by another form or by an existing table.
	ErrDuplicateTableName = errors.New("table name already in use")

	// ErrTableProvisioning is returned when the provisioned table could not
	// be created. No form row exists afterwards.
	ErrTableProvisioning = errors.New("failed to provision form table")

	// ErrFormNotFound covers both missing forms and forms owned by somebody
	// else.
	ErrFormNotFound = errors.New("form not found")

	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
)

// SubmissionValidationError lists every violation of a rejected submission.
// It matches [ErrInvalidInput].
type SubmissionValidationError struct {
	Violations []models.Violation
}

func (e *SubmissionValidationError) Error() string {
	messages := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		messages = append(messages, v.Message)
	}
	return "submission is invalid: " + strings.Join(messages, "; ")
}

func (e *SubmissionValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
