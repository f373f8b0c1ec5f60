package validators

import (
	"errors"
	"strings"

	"github.com/MKhiriev/go-form-keeper/models"
)

var (
	ErrUnsupportedType    = errors.New("unsupported type for validation")
	ErrInvalidFormRequest = errors.New("invalid form request")
)

// RequestError carries every structural problem found in a request body.
// It matches [ErrInvalidFormRequest] via errors.Is.
type RequestError struct {
	Violations []models.Violation
}

func (e *RequestError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, v.Message)
	}
	return ErrInvalidFormRequest.Error() + ": " + strings.Join(parts, "; ")
}

func (e *RequestError) Is(target error) bool {
	return target == ErrInvalidFormRequest
}
