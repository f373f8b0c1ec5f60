package service

import (
	"github.com/MKhiriev/go-form-keeper/internal/config"
	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/metrics"
	"github.com/MKhiriev/go-form-keeper/internal/schema"
	"github.com/MKhiriev/go-form-keeper/internal/store"
)

type Services struct {
	AuthService       AuthService
	FormService       FormService
	SubmissionService SubmissionService
	AppInfoService    AppInfoService
	HealthService     HealthService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, recorder *metrics.Recorder, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	compiler := schema.NewCompiler(storages.DB.Dialect())

	return &Services{
		AuthService:       NewAuthService(cfg.App, logger),
		FormService:       NewFormService(storages, compiler, cfg.App, recorder, logger),
		SubmissionService: NewSubmissionService(storages, recorder, logger),
		AppInfoService:    appInfoService,
		HealthService:     storages.DB,
	}, nil
}
