package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/metrics"
	"github.com/MKhiriev/go-form-keeper/internal/mock"
	"github.com/MKhiriev/go-form-keeper/internal/store"
	"github.com/MKhiriev/go-form-keeper/internal/validators"
	"github.com/MKhiriev/go-form-keeper/models"
)

type submissionMocks struct {
	forms     *mock.MockFormRepository
	responses *mock.MockResponseRepository
	tables    *mock.MockTableRepository
	metrics   *metrics.Recorder
}

func newTestSubmissionService(t *testing.T) (*submissionService, submissionMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)

	m := submissionMocks{
		forms:     mock.NewMockFormRepository(ctrl),
		responses: mock.NewMockResponseRepository(ctrl),
		tables:    mock.NewMockTableRepository(ctrl),
		metrics:   metrics.New(),
	}
	svc := &submissionService{
		forms:     m.forms,
		responses: m.responses,
		tables:    m.tables,
		validator: validators.NewFormRequestValidator(),
		ids:       fixedID("resp-1"),
		now:       func() time.Time { return testNow },
		metrics:   m.metrics,
		logger:    logger.Nop(),
	}
	return svc, m
}

func surveyForm() models.Form {
	lower, upper := 18.0, 99.0
	return models.Form{
		ID:        "form-1",
		TableName: "survey",
		CreatedBy: "alice",
		Fields: []models.Field{
			{Name: "email", Label: "Email", Type: models.FieldEmail, Required: true},
			{Name: "age", Label: "Age", Type: models.FieldNumber, Validation: &models.FieldValidation{Min: &lower, Max: &upper}},
		},
	}
}

func TestSubmissionService_Submit_Success(t *testing.T) {
	svc, m := newTestSubmissionService(t)
	ctx := context.Background()
	payload := map[string]any{"email": "ada@example.com", "age": json.Number("36"), "extra": "kept"}

	gomock.InOrder(
		m.forms.EXPECT().GetForm(ctx, "form-1").Return(surveyForm(), nil),
		m.responses.EXPECT().SaveResponse(ctx, models.FormResponse{
			ID:          "resp-1",
			FormID:      "form-1",
			Data:        payload,
			SubmittedAt: testNow,
		}).Return(nil),
		m.tables.EXPECT().InsertRow(gomock.Any(), "survey", []string{"email", "age"}, []any{"ada@example.com", "36"}).Return(nil),
	)

	receipt, err := svc.Submit(ctx, models.SubmitRequest{FormID: "form-1", Data: payload})
	require.NoError(t, err)
	assert.Equal(t, models.SubmissionReceipt{ID: "resp-1", FormID: "form-1", SubmittedAt: testNow}, receipt)
	assert.Contains(t, scrape(t, m.metrics), "form_responses_total 1")
}

func TestSubmissionService_Submit_Violations(t *testing.T) {
	svc, m := newTestSubmissionService(t)
	m.forms.EXPECT().GetForm(gomock.Any(), "form-1").Return(surveyForm(), nil)

	_, err := svc.Submit(context.Background(), models.SubmitRequest{
		FormID: "form-1",
		Data:   map[string]any{"age": json.Number("7")},
	})

	var verr *SubmissionValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, []models.Violation{
		{Field: "email", Message: "Email is required"},
		{Field: "age", Message: "Age must be at least 18"},
	}, verr.Violations)
}

func TestSubmissionService_Submit_NilPayloadIsEmpty(t *testing.T) {
	svc, m := newTestSubmissionService(t)
	m.forms.EXPECT().GetForm(gomock.Any(), "form-1").Return(surveyForm(), nil)

	_, err := svc.Submit(context.Background(), models.SubmitRequest{FormID: "form-1"})

	var verr *SubmissionValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Violations, 1)
}

func TestSubmissionService_Submit_UnknownForm(t *testing.T) {
	svc, m := newTestSubmissionService(t)
	m.forms.EXPECT().GetForm(gomock.Any(), "nope").Return(models.Form{}, store.ErrFormNotFound)

	_, err := svc.Submit(context.Background(), models.SubmitRequest{FormID: "nope"})
	assert.ErrorIs(t, err, ErrFormNotFound)
}

func TestSubmissionService_Submit_MissingFormID(t *testing.T) {
	svc, _ := newTestSubmissionService(t)

	_, err := svc.Submit(context.Background(), models.SubmitRequest{})
	assert.ErrorIs(t, err, validators.ErrInvalidFormRequest)
}

func TestSubmissionService_Submit_SaveFailureIsSurfaced(t *testing.T) {
	svc, m := newTestSubmissionService(t)
	m.forms.EXPECT().GetForm(gomock.Any(), "form-1").Return(surveyForm(), nil)
	m.responses.EXPECT().SaveResponse(gomock.Any(), gomock.Any()).Return(store.ErrExecutingStatement)

	_, err := svc.Submit(context.Background(), models.SubmitRequest{
		FormID: "form-1",
		Data:   map[string]any{"email": "ada@example.com"},
	})
	assert.ErrorIs(t, err, store.ErrExecutingStatement)
}

func TestSubmissionService_Submit_ProjectionFailureIsNotSurfaced(t *testing.T) {
	svc, m := newTestSubmissionService(t)
	m.forms.EXPECT().GetForm(gomock.Any(), "form-1").Return(surveyForm(), nil)
	m.responses.EXPECT().SaveResponse(gomock.Any(), gomock.Any()).Return(nil)
	m.tables.EXPECT().InsertRow(gomock.Any(), "survey", gomock.Any(), gomock.Any()).Return(errors.New("relation does not exist"))

	receipt, err := svc.Submit(context.Background(), models.SubmitRequest{
		FormID: "form-1",
		Data:   map[string]any{"email": "ada@example.com"},
	})
	require.NoError(t, err)
	assert.Equal(t, "resp-1", receipt.ID)
	assert.Contains(t, scrape(t, m.metrics), "form_projection_failures_total 1")
}

func TestSubmissionService_GetResponses(t *testing.T) {
	responses := []models.FormResponse{{ID: "r2"}, {ID: "r1"}}

	t.Run("owner", func(t *testing.T) {
		svc, m := newTestSubmissionService(t)
		m.forms.EXPECT().GetForm(gomock.Any(), "form-1").Return(surveyForm(), nil)
		m.responses.EXPECT().ListResponses(gomock.Any(), "form-1").Return(responses, nil)

		got, err := svc.GetResponses(context.Background(), "form-1", "alice")
		require.NoError(t, err)
		assert.Equal(t, responses, got)
	})

	t.Run("someone else", func(t *testing.T) {
		svc, m := newTestSubmissionService(t)
		m.forms.EXPECT().GetForm(gomock.Any(), "form-1").Return(surveyForm(), nil)

		_, err := svc.GetResponses(context.Background(), "form-1", "mallory")
		assert.ErrorIs(t, err, ErrFormNotFound)
	})

	t.Run("missing", func(t *testing.T) {
		svc, m := newTestSubmissionService(t)
		m.forms.EXPECT().GetForm(gomock.Any(), "form-2").Return(models.Form{}, store.ErrFormNotFound)

		_, err := svc.GetResponses(context.Background(), "form-2", "alice")
		assert.ErrorIs(t, err, ErrFormNotFound)
	})
}
