package http

import (
	"context"

	"github.com/MKhiriev/go-form-keeper/models"
)

// ---- Mock: FormService ----

type mockFormService struct {
	createFn    func(ctx context.Context, ownerID string, req models.CreateFormRequest) (models.CreateFormResponse, error)
	listFn      func(ctx context.Context, ownerID string) ([]models.FormSummary, error)
	getPublicFn func(ctx context.Context, formID string) (models.PublicForm, error)
	deleteFn    func(ctx context.Context, formID, ownerID string) error
}

func (m *mockFormService) CreateForm(ctx context.Context, ownerID string, req models.CreateFormRequest) (models.CreateFormResponse, error) {
	return m.createFn(ctx, ownerID, req)
}

func (m *mockFormService) ListForms(ctx context.Context, ownerID string) ([]models.FormSummary, error) {
	return m.listFn(ctx, ownerID)
}

func (m *mockFormService) GetPublicForm(ctx context.Context, formID string) (models.PublicForm, error) {
	return m.getPublicFn(ctx, formID)
}

func (m *mockFormService) DeleteForm(ctx context.Context, formID, ownerID string) error {
	return m.deleteFn(ctx, formID, ownerID)
}

func (m *mockFormService) FindOrphanTables(context.Context) ([]string, error) {
	return nil, nil
}
func (m *mockFormService) DropOrphanTables(context.Context, []string) ([]string, error) {
	return nil, nil
}

// ---- Mock: SubmissionService ----

type mockSubmissionService struct {
	submitFn       func(ctx context.Context, req models.SubmitRequest) (models.SubmissionReceipt, error)
	getResponsesFn func(ctx context.Context, formID, ownerID string) ([]models.FormResponse, error)
}

func (m *mockSubmissionService) Submit(ctx context.Context, req models.SubmitRequest) (models.SubmissionReceipt, error) {
	return m.submitFn(ctx, req)
}

func (m *mockSubmissionService) GetResponses(ctx context.Context, formID, ownerID string) ([]models.FormResponse, error) {
	return m.getResponsesFn(ctx, formID, ownerID)
}

// ---- Mock: AuthService ----

type mockAuthService struct {
	parseTokenFn func(ctx context.Context, tokenString string) (models.Token, error)
}

func (m *mockAuthService) CreateToken(context.Context, string) (models.Token, error) {
	return models.Token{}, nil
}

func (m *mockAuthService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	return m.parseTokenFn(ctx, tokenString)
}

// acceptToken treats the token string itself as the owner id.
func acceptToken() *mockAuthService {
	return &mockAuthService{
		parseTokenFn: func(_ context.Context, tokenString string) (models.Token, error) {
			return models.Token{OwnerID: tokenString}, nil
		},
	}
}

// ---- Mock: AppInfoService ----

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(context.Context) string {
	return m.version
}

// ---- Mock: HealthService ----

type mockHealthService struct {
	err error
}

func (m *mockHealthService) Ping(context.Context) error {
	return m.err
}
