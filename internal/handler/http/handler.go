package http

import (
	"github.com/MKhiriev/go-form-keeper/internal/logger"
	"github.com/MKhiriev/go-form-keeper/internal/metrics"
	"github.com/MKhiriev/go-form-keeper/internal/service"
)

type Handler struct {
	services *service.Services
	metrics  *metrics.Recorder

	logger *logger.Logger
}

// NewHandler builds the HTTP handler. recorder may be nil.
func NewHandler(services *service.Services, recorder *metrics.Recorder, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services: services,
		metrics:  recorder,
		logger:   logger,
	}
}
