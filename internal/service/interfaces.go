package service

import (
	"context"

	"github.com/MKhiriev/go-form-keeper/models"
)

// FormService owns the form lifecycle: creation together with the
// provisioned table, listing, deletion with teardown, and reconciliation of
// tables left behind.
type FormService interface {
	CreateForm(ctx context.Context, ownerID string, request models.CreateFormRequest) (models.CreateFormResponse, error)
	ListForms(ctx context.Context, ownerID string) ([]models.FormSummary, error)
	GetPublicForm(ctx context.Context, formID string) (models.PublicForm, error)
	DeleteForm(ctx context.Context, formID, ownerID string) error

	// FindOrphanTables lists provisioned tables no form references.
	FindOrphanTables(ctx context.Context) ([]string, error)
	// DropOrphanTables drops the orphan tables that are also listed in
	// candidates (every orphan when candidates is nil) and returns the
	// dropped names.
	DropOrphanTables(ctx context.Context, candidates []string) ([]string, error)
}

// SubmissionService accepts respondent submissions and serves them back to
// the form owner.
type SubmissionService interface {
	Submit(ctx context.Context, request models.SubmitRequest) (models.SubmissionReceipt, error)
	GetResponses(ctx context.Context, formID, ownerID string) ([]models.FormResponse, error)
}

type AuthService interface {
	CreateToken(ctx context.Context, ownerID string) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// HealthService reports whether the storage backend is reachable.
type HealthService interface {
	Ping(ctx context.Context) error
}
