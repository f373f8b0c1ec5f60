package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/metrics"
	"github.com/MKhiriev/go-form-keeper/internal/schema"
	"github.com/MKhiriev/go-form-keeper/internal/store"
	"github.com/MKhiriev/go-form-keeper/internal/utils"
	"github.com/MKhiriev/go-form-keeper/internal/validators"
	"github.com/MKhiriev/go-form-keeper/models"
)

// submissionService stores submissions twice: the response document is
// the durable record, the row in the provisioned table is a projection.
// Only the first write can fail a submission.
type submissionService struct {
	forms     store.FormRepository
	responses store.ResponseRepository
	tables    store.TableRepository

	validator validators.Validator

	ids     idGenerator
	now     func() time.Time
	metrics *metrics.Recorder
	logger  *logger.Logger
}

func NewSubmissionService(storages *store.Storages, recorder *metrics.Recorder, logger *logger.Logger) SubmissionService {
	return &submissionService{
		forms:     storages.FormRepository,
		responses: storages.ResponseRepository,
		tables:    storages.TableRepository,
		validator: validators.NewFormRequestValidator(),
		ids:       utils.NewUUIDGenerator(),
		now:       func() time.Time { return time.Now().UTC() },
		metrics:   recorder,
		logger:    logger,
	}
}

func (s *submissionService) Submit(ctx context.Context, request models.SubmitRequest) (models.SubmissionReceipt, error) {
	if err := s.validator.Validate(ctx, request); err != nil {
		return models.SubmissionReceipt{}, err
	}

	form, err := s.forms.GetForm(ctx, request.FormID)
	if errors.Is(err, store.ErrFormNotFound) {
		return models.SubmissionReceipt{}, ErrFormNotFound
	}
	if err != nil {
		return models.SubmissionReceipt{}, fmt.Errorf("getting form: %w", err)
	}

	payload := request.Data
	if payload == nil {
		payload = map[string]any{}
	}

	if violations := validators.ValidateSubmission(form.Fields, payload); len(violations) > 0 {
		return models.SubmissionReceipt{}, &SubmissionValidationError{Violations: violations}
	}

	response := models.FormResponse{
		ID:          s.ids.Generate(),
		FormID:      form.ID,
		Data:        payload,
		SubmittedAt: s.now(),
	}
	if err = s.responses.SaveResponse(ctx, response); err != nil {
		return models.SubmissionReceipt{}, fmt.Errorf("saving response: %w", err)
	}
	s.metrics.ResponseSaved()

	s.project(ctx, form, response)

	return response.Receipt(), nil
}

// project writes the response into the form's table. Failures are logged
// and counted; the response document is already committed.
func (s *submissionService) project(ctx context.Context, form models.Form, response models.FormResponse) {
	columns, values, err := schema.ProjectRow(form.Fields, response.Data)
	if err == nil {
		err = s.tables.InsertRow(context.WithoutCancel(ctx), form.TableName, columns, values)
	}
	if err == nil {
		return
	}

	logger.FromContext(ctx).Err(err).
		Str("func", "submissionService.project").
		Str("form_id", form.ID).
		Str("table_name", form.TableName).
		Str("response_id", response.ID).
		Msg("failed to project response into form table")
	s.metrics.ProjectionFailed()
}

// GetResponses returns the responses of a form owned by ownerID, newest
// first. Forms of other owners are reported as not found.
func (s *submissionService) GetResponses(ctx context.Context, formID, ownerID string) ([]models.FormResponse, error) {
	form, err := s.forms.GetForm(ctx, formID)
	if errors.Is(err, store.ErrFormNotFound) {
		return nil, ErrFormNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("getting form: %w", err)
	}
	if form.CreatedBy != ownerID {
		return nil, ErrFormNotFound
	}

	responses, err := s.responses.ListResponses(ctx, formID)
	if err != nil {
		return nil, fmt.Errorf("listing responses: %w", err)
	}
	return responses, nil
}
