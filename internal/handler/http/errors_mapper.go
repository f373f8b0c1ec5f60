package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/schema"
	"github.com/MKhiriev/go-form-keeper/internal/service"
	"github.com/MKhiriev/go-form-keeper/internal/store"
	"github.com/MKhiriev/go-form-keeper/internal/utils"
	"github.com/MKhiriev/go-form-keeper/internal/validators"
	"github.com/MKhiriev/go-form-keeper/models"
)

var errorStatusMap = map[error]int{
	service.ErrInvalidInput:            http.StatusBadRequest,
	service.ErrDuplicateTableName:      http.StatusConflict,
	service.ErrTableProvisioning:       http.StatusInternalServerError,
	service.ErrFormNotFound:            http.StatusNotFound,
	service.ErrTokenIsExpiredOrInvalid: http.StatusUnauthorized,
	service.ErrVersionIsNotSpecified:   http.StatusBadRequest,

	validators.ErrInvalidFormRequest: http.StatusBadRequest,
	schema.ErrInvalidIdentifier:      http.StatusBadRequest,

	store.ErrDuplicateTableName: http.StatusConflict,
	store.ErrFormNotFound:       http.StatusNotFound,
	store.ErrResponseNotSaved:   http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// violationsFromError extracts per-field violations carried by validation
// errors. It returns nil for every other error.
func violationsFromError(err error) []models.Violation {
	var requestErr *validators.RequestError
	if errors.As(err, &requestErr) {
		return requestErr.Violations
	}

	var submissionErr *service.SubmissionValidationError
	if errors.As(err, &submissionErr) {
		return submissionErr.Violations
	}

	var identifierErr *schema.InvalidIdentifierError
	if errors.As(err, &identifierErr) {
		field := identifierErr.Kind + "Name"
		if identifierErr.Kind == "field" {
			field = identifierErr.Name
		}
		return []models.Violation{{Field: field, Message: identifierErr.Error()}}
	}

	return nil
}

// writeServiceError answers with the status mapped from err. Server-side
// failures are logged with the raw error and reported with a generic message.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		logger.FromRequest(r).Err(err).Msg("request failed")
		utils.WriteError(w, status, errStorageFailure.Error())
		return
	}

	violations := violationsFromError(err)
	if status == http.StatusBadRequest && len(violations) == 0 {
		violations = []models.Violation{{Message: err.Error()}}
	}
	utils.WriteError(w, status, err.Error(), violations...)
}
